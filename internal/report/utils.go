package report

import "strings"

var filenameReplacer = strings.NewReplacer(
	".", "_",
	":", "_",
	"/", "_",
	"\\", "_",
	" ", "_",
	"[", "",
	"]", "",
	"%", "_",
)

// sanitizeFilename turns a target (host name, IPv4 or IPv6 with zone) into a
// safe file name fragment
func sanitizeFilename(s string) string {
	return filenameReplacer.Replace(s)
}
