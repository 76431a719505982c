// Package build carries version metadata stamped in at link time via
// -ldflags, the way most of the ecosystem's single-binary CLIs do it.
package build

// Version, Commit, and Date are overridden at build time with:
//
//	-ldflags "-X github.com/cidgate/cidgate/pkg/build.Version=... \
//	          -X github.com/cidgate/cidgate/pkg/build.Commit=... \
//	          -X github.com/cidgate/cidgate/pkg/build.Date=..."
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
