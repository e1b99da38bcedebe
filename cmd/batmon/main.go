// Package main is the entrypoint for batmon, a battery runtime monitor.
package main

import "github.com/tutu-network/batmon/internal/cli"

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.Execute(version)
}
