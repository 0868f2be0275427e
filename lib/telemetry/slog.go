package telemetry

import (
	"log/slog"
	"os"
)

// InitSlog installs the default slog handler for a binary. Verbose mode
// drops the level to debug, which also turns on raw request/response
// dumps in instrumented http clients.
func InitSlog(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))
}
