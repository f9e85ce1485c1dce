// Package main provides the entry point for the mock DeepSeek API server.
package main

import (
	"context"
	"os"

	"github.com/aloundoye/paritygate/internal/cli"
	"github.com/aloundoye/paritygate/internal/signal"
)

// Build information set via ldflags at release time.
//
//nolint:gochecknoglobals // Populated by the linker
var (
	version = ""
	commit  = ""
	date    = ""
)

func main() {
	handler := signal.NewHandler(context.Background())
	defer handler.Stop()

	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	err := cli.ExecuteMockAPI(handler.Context(), info)
	cli.CloseLogFile()
	os.Exit(cli.ExitCodeForError(err))
}
