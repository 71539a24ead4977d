package version

var (
	// These values are injected during build - DO NOT MODIFY
	Version   = "dev"
	CommitSHA = "unknown"
	BuildDate = "unknown"
)
