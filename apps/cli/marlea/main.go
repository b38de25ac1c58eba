package main

import "github.com/nadaso8/MARlea-parser/apps/cli/cmd"

// Set with -ldflags "-X main.version=... -X main.buildTime=..."
var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	cmd.Execute(version, buildTime)
}
