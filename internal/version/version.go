// Package version carries build identity, stamped via -ldflags at release
// time and reported on /api/version.
package version

var (
	// Version is the station release version.
	Version = "dev"
	// GitSHA is the git commit the binary was built from.
	GitSHA = "unknown"
	// BuildTime is the build timestamp.
	BuildTime = "unknown"
)
