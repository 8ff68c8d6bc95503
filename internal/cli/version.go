package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Version information set via ldflags at build time
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// SetVersionInfo sets the version information (called from main).
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}

func newVersionCmd(env *environment) *cobra.Command {
	var short bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			if short {
				fmt.Fprintln(env.stdout, version)
				return
			}
			fmt.Fprintf(env.stdout, "ping-monitor %s\n", version)
			fmt.Fprintf(env.stdout, "commit: %s\n", commit)
			fmt.Fprintf(env.stdout, "built: %s\n", date)
			fmt.Fprintf(env.stdout, "go: %s\n", runtime.Version())
			fmt.Fprintf(env.stdout, "os/arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
	cmd.Flags().BoolVar(&short, "short", false, "Print only the version number")
	return cmd
}
