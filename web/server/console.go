package server

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/df07/image-synthesis/pkg/core"
)

// ConsoleMessage is one renderer log line forwarded to the browser
type ConsoleMessage struct {
	RenderID  string    `json:"renderId"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"` // "info" or "warning"
}

// WebLogger implements core.Logger by sending messages to a console channel
type WebLogger struct {
	renderID    string
	consoleChan chan<- ConsoleMessage
}

// NewWebLogger creates a logger for a single render
func NewWebLogger(renderID string, consoleChan chan<- ConsoleMessage) core.Logger {
	return &WebLogger{
		renderID:    renderID,
		consoleChan: consoleChan,
	}
}

// Printf writes to the server log and forwards the line to the console
// channel without blocking. Messages are dropped when the channel is full.
func (wl *WebLogger) Printf(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	log.Printf("[%s] %s", wl.renderID, strings.TrimRight(message, "\n"))

	if wl.consoleChan == nil {
		return
	}
	select {
	case wl.consoleChan <- ConsoleMessage{
		RenderID:  wl.renderID,
		Message:   message,
		Timestamp: time.Now(),
		Level:     levelOf(message),
	}:
	default:
	}
}

// Prefixes the renderers log when a render is interrupted
var warningPrefixes = []string{
	"Raytracing stopped after ",
	"Rasterizing cancelled: ",
}

// levelOf classifies renderer output; interrupted renders are warnings
func levelOf(message string) string {
	for _, prefix := range warningPrefixes {
		if strings.HasPrefix(message, prefix) {
			return "warning"
		}
	}
	return "info"
}
