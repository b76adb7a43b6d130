package types

import "runtime"

// Version information for the readablepub library.
const (
	Version = "0.1.0"
	Name    = "readablepub"
)

// BuildInfo contains version and build information for the readablepub library.
type BuildInfo struct {
	Version   string
	Name      string
	GoVersion string
}

// GetBuildInfo returns the current version information.
func GetBuildInfo() BuildInfo {
	return BuildInfo{
		Version:   Version,
		Name:      Name,
		GoVersion: runtime.Version(),
	}
}
