// Package main provides the entry point for the duosync CLI tool.
package main

import "github.com/schoolkeuze/duosync/cmd/duosync/cmd"

// Version information populated by the build system.
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	cmd.Execute(version, commit)
}
