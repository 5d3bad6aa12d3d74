package common

import (
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

var (
	loggerOnce sync.Once
	logger     *log.Logger
)

// Logger returns the process-wide logger.
func Logger() *log.Logger {
	loggerOnce.Do(func() {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			TimeFormat:      time.TimeOnly,
			Prefix:          "flagrun",
		})
	})
	return logger
}

// Log returns a child logger tagged with the given subsystem name.
func Log(subsystem string) *log.Logger {
	return Logger().WithPrefix("flagrun/" + subsystem)
}

// SetDebug toggles debug-level output. Loggers derived with Log copy the level
// at creation, so call this before building subsystems.
func SetDebug(enabled bool) {
	if enabled {
		Logger().SetLevel(log.DebugLevel)
		return
	}
	Logger().SetLevel(log.InfoLevel)
}
