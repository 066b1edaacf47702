package handlers

import (
	"fmt"
	"strings"
	"sync"

	plog "github.com/phuslu/log"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/arbor/levels"
	arbormodels "github.com/ternarybob/arbor/models"

	"github.com/ternarybob/augur/internal/common"
)

const (
	// Buffer size for the WebSocket log channel
	defaultWebSocketBufferSize = 100
)

// WebSocketWriter consumes log batches from arbor's context channel and
// broadcasts filtered entries to WebSocket clients.
type WebSocketWriter struct {
	handler         *WebSocketHandler
	logger          arbor.ILogger
	channel         chan []arbormodels.LogEvent
	minLevel        levels.LogLevel
	excludePatterns []string
	done            chan struct{}
	wg              sync.WaitGroup
}

// NewWebSocketWriter creates a log bridge for the given handler. Register
// the channel with the arbor logger via SetChannel, then call Start.
func NewWebSocketWriter(handler *WebSocketHandler, logger arbor.ILogger, wsConfig *common.WebSocketConfig) *WebSocketWriter {
	minLevel := levels.InfoLevel
	var excludePatterns []string

	if wsConfig != nil {
		minLevel = parseLogLevel(wsConfig.MinLevel)
		excludePatterns = wsConfig.ExcludePatterns
	}
	if len(excludePatterns) == 0 {
		// The handler's own connect/disconnect logs and the HTTP access
		// logs would flood clients with noise
		excludePatterns = []string{
			"WebSocket client connected",
			"WebSocket client disconnected",
			"HTTP request",
			"HTTP response",
			"Publishing event",
		}
	}

	return &WebSocketWriter{
		handler:         handler,
		logger:          logger,
		channel:         make(chan []arbormodels.LogEvent, defaultWebSocketBufferSize),
		minLevel:        minLevel,
		excludePatterns: excludePatterns,
		done:            make(chan struct{}),
	}
}

// Channel returns the channel for arbor to send log batches to
func (w *WebSocketWriter) Channel() chan []arbormodels.LogEvent {
	return w.channel
}

// Start launches the consumer goroutine
func (w *WebSocketWriter) Start() {
	w.wg.Add(1)
	go w.consume()
}

// Close stops the consumer and drains pending batches
func (w *WebSocketWriter) Close() error {
	close(w.done)
	w.wg.Wait()
	return nil
}

func (w *WebSocketWriter) consume() {
	defer w.wg.Done()

	defer func() {
		if r := recover(); r != nil {
			w.logger.Error().
				Str("panic", fmt.Sprintf("%v", r)).
				Msg("WebSocket log writer panic recovered")
		}
	}()

	for {
		select {
		case batch, ok := <-w.channel:
			if !ok {
				return
			}
			for _, event := range batch {
				w.process(event)
			}
		case <-w.done:
			return
		}
	}
}

// process filters one event and broadcasts it. Must not log through
// arbor itself or every broadcast would generate another log event.
func (w *WebSocketWriter) process(event arbormodels.LogEvent) {
	arborLevel := plogToArborLevel(event.Level)

	if arborLevel < w.minLevel {
		return
	}

	for _, pattern := range w.excludePatterns {
		if strings.Contains(event.Message, pattern) {
			return
		}
	}

	w.handler.BroadcastLog(LogEntry{
		Timestamp: event.Timestamp.Format("15:04:05"),
		Level:     mapLevel(arborLevel),
		Message:   event.Message,
	})
}

// plogToArborLevel converts phuslu/log.Level to arbor levels.LogLevel
func plogToArborLevel(level plog.Level) levels.LogLevel {
	switch level {
	case plog.ErrorLevel:
		return levels.ErrorLevel
	case plog.WarnLevel:
		return levels.WarnLevel
	case plog.InfoLevel:
		return levels.InfoLevel
	case plog.DebugLevel:
		return levels.DebugLevel
	default:
		return levels.InfoLevel
	}
}

// parseLogLevel converts string log level to arbor levels.LogLevel
func parseLogLevel(level string) levels.LogLevel {
	switch strings.ToLower(level) {
	case "error":
		return levels.ErrorLevel
	case "warn", "warning":
		return levels.WarnLevel
	case "info":
		return levels.InfoLevel
	case "debug":
		return levels.DebugLevel
	default:
		return levels.InfoLevel
	}
}

// mapLevel maps arbor log levels to UI strings
func mapLevel(level levels.LogLevel) string {
	switch level {
	case levels.ErrorLevel:
		return "error"
	case levels.WarnLevel:
		return "warn"
	case levels.InfoLevel:
		return "info"
	case levels.DebugLevel:
		return "debug"
	default:
		return "info"
	}
}
