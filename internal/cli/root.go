package cli

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"ping-monitor/internal/config"
	"ping-monitor/internal/monitor"
	"ping-monitor/internal/ping"
	"ping-monitor/internal/ui"
)

// Exit codes
const (
	exitFailure = 1
	exitUsage   = 2
)

// environment is what a command needs from the outside world.
type environment struct {
	stdout      io.Writer
	stderr      io.Writer
	interactive bool
	confirm     func() (bool, error)
	newProber   func(mode string, logger *log.Logger) (ping.Prober, error)
	clock       monitor.Clock
	now         func() time.Time
}

func defaultEnvironment() *environment {
	return &environment{
		stdout:      os.Stdout,
		stderr:      os.Stderr,
		interactive: ui.IsTerminal(os.Stdin) && ui.IsTerminal(os.Stdout),
		confirm:     ui.ConfirmStart,
		newProber:   ping.New,
		now:         time.Now,
	}
}

func newRootCmd(env *environment) *cobra.Command {
	root := &cobra.Command{
		Use:   "ping-monitor",
		Short: "Monitor reachability and latency of network targets",
		Long: `Probe a set of network targets once per second, keep per-target counters,
flag sustained high latency and log both to CSV files.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(env.stdout)
	root.SetErr(env.stderr)
	root.AddCommand(newRunCmd(env))
	root.AddCommand(newVersionCmd(env))
	return root
}

// Execute runs the root command and exits with a non-zero code on failure.
func Execute() {
	env := defaultEnvironment()
	os.Exit(run(newRootCmd(env), env, os.Args[1:]))
}

func run(root *cobra.Command, env *environment, args []string) int {
	root.SetArgs(args)
	err := root.Execute()
	if err == nil {
		return 0
	}
	fmt.Fprintf(env.stderr, "[!] Error: %v\n", err)
	if errors.Is(err, config.ErrUsage) {
		return exitUsage
	}
	return exitFailure
}
