package observability

import (
	"log/slog"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/google/uuid"
)

// NewRunLogger creates the process logger, installs it as the slog default, and
// tags every line it writes with a fresh run_id so one roster run can be
// grouped in the logs.
func NewRunLogger(level, format string) *slog.Logger {
	logger := withRunID(sharedobs.NewLogger(level, format))
	slog.SetDefault(logger)
	return logger
}

func withRunID(logger *slog.Logger) *slog.Logger {
	return logger.With("run_id", uuid.NewString())
}
