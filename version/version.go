// Package version holds the build metadata, set with -ldflags at build time.
package version

// Version is the released version of the arena.
var Version = "dev"

// Commit is the git commit the binary was built from.
var Commit = ""

// String returns the version with the commit when it is known.
func String() string {
	if Commit == "" {
		return Version
	}
	return Version + " (" + Commit + ")"
}
