// Package version holds build metadata. Linker flags override the defaults:
//
//	-ldflags "-X github.com/Dicklesworthstone/progress_curve/pkg/version.Version=v0.2.0"
package version

import "runtime"

var (
	Version = "v0.1.0"
	Commit  = "none"
	Date    = "unknown"
)

// Runtime returns the Go runtime version the binary was built with.
func Runtime() string {
	return runtime.Version()
}
