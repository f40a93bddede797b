package main

import (
	"log/slog"
	"os"

	"github.com/aryankumar/cmdpool/internal/cli"
	"github.com/aryankumar/cmdpool/internal/util"
)

func main() {
	// Setup signal handling so a SIGINT before launch aborts cleanly
	ctx := util.SetupSignalHandler()

	// Execute the CLI
	if err := cli.Execute(ctx); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}
