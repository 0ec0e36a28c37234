// Package version reports build information for infiniter binaries.
//
// Version, commit, branch and build time are set at link time:
//
//	go build -ldflags "-X github.com/kbukum/infiniter/version.Version=1.0.0" ./cmd/infiniter
//
// Fields left empty are filled from the module build info when the binary
// was built from a VCS checkout.
package version
