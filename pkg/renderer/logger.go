package renderer

import (
	"fmt"

	"github.com/df07/image-synthesis/pkg/core"
)

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// NopLogger discards everything
type NopLogger struct{}

func (NopLogger) Printf(format string, args ...interface{}) {}

func loggerOrNop(logger core.Logger) core.Logger {
	if logger == nil {
		return NopLogger{}
	}
	return logger
}
