package version

// Overridden with -ldflags "-X boltgen/internal/version.Version=..." in release builds.
var (
	Version   = "0.3.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
)
