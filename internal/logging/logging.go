// Package logging configures the process-wide zap logger. Migration
// failures and repository errors are logged here and never surfaced to the
// user beyond a transient message.
package logging

import (
	"os"

	"go.uber.org/zap"
)

var logger *zap.Logger = zap.NewNop()

// Init builds the global logger. Production config when MEALPLANNER_ENV is
// "production", development config otherwise.
func Init() error {
	var (
		l   *zap.Logger
		err error
	)
	if os.Getenv("MEALPLANNER_ENV") == "production" {
		l, err = zap.NewProduction()
	} else {
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		return err
	}
	logger = l
	return nil
}

// L returns the global logger. Defaults to a no-op logger until Init runs,
// so library code can log unconditionally.
func L() *zap.Logger {
	return logger
}

// Close flushes buffered log entries.
func Close() {
	_ = logger.Sync()
}
