package main

// Version information - updated by build process
var (
	Version   = "v0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)
