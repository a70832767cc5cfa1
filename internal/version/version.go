package version

import "fmt"

// Service is the name this backend reports about itself.
const Service = "battleforge"

// Build metadata, overridden at build time using -ldflags. The defaults
// cover local development builds.
var (
	Version = "dev"
	Commit  = "none"
	Date    = ""
)

// String renders a one-line identification for logs and diagnostics.
func String() string {
	if Date == "" {
		return fmt.Sprintf("%s %s (%s)", Service, Version, Commit)
	}
	return fmt.Sprintf("%s %s (%s, built %s)", Service, Version, Commit, Date)
}
