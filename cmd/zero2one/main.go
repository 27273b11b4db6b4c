// Package main is the single-binary entrypoint for zero2one.
package main

import "github.com/zero2one-app/zero2one/internal/cli"

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.Execute(version)
}
