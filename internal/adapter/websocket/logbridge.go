package websocket

import (
	"context"
	"log/slog"

	"github.com/centrifugal/centrifuge"
)

var centrifugeLevels = map[string]centrifuge.LogLevel{
	"debug": centrifuge.LogLevelDebug,
	"info":  centrifuge.LogLevelInfo,
	"warn":  centrifuge.LogLevelWarn,
	"error": centrifuge.LogLevelError,
}

var slogLevels = map[centrifuge.LogLevel]slog.Level{
	centrifuge.LogLevelTrace: slog.LevelDebug,
	centrifuge.LogLevelDebug: slog.LevelDebug,
	centrifuge.LogLevelInfo:  slog.LevelInfo,
	centrifuge.LogLevelWarn:  slog.LevelWarn,
	centrifuge.LogLevelError: slog.LevelError,
}

// centrifugeLogLevel maps LOG_LEVEL onto Centrifuge, defaulting to info.
func centrifugeLogLevel(level string) centrifuge.LogLevel {
	if l, ok := centrifugeLevels[level]; ok {
		return l
	}
	return centrifuge.LogLevelInfo
}

// logToSlog forwards Centrifuge's internal log entries to the default logger.
func logToSlog(entry centrifuge.LogEntry) {
	level, ok := slogLevels[entry.Level]
	if !ok {
		return
	}
	attrs := make([]any, 0, len(entry.Fields)*2+2)
	attrs = append(attrs, "component", "centrifuge")
	for k, v := range entry.Fields {
		attrs = append(attrs, k, v)
	}
	slog.Log(context.Background(), level, entry.Message, attrs...)
}
