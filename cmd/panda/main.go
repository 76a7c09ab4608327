// Package main provides the entry point for the panda CLI.
package main

import (
	"context"
	"os"

	"github.com/TomShaoquan/arduino-panda/internal/cli"
	"github.com/TomShaoquan/arduino-panda/internal/signal"
)

// Build information set at build time via ldflags:
//
//	go build -ldflags "-X main.version=1.0.0 -X main.commit=$(git rev-parse --short HEAD) -X main.date=$(date -u +%Y-%m-%d)"
//
//nolint:gochecknoglobals // ldflags injection requires package-level vars
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	handler := signal.NewHandler(context.Background())
	defer handler.Stop()

	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	err := cli.Execute(handler.Context(), info)
	os.Exit(cli.ExitCodeForError(err))
}
