package slogx

import (
	"fmt"
	"log/slog"

	"github.com/goccy/go-json"
)

const (
	// KeyLoggerName is the attribute key carrying the name of the component that logs.
	KeyLoggerName = "logger"
	// KeyRequestID is the attribute key carrying the id of a request context.
	KeyRequestID = "request_id"
	// KeyMethod is the attribute key carrying an API method name.
	KeyMethod = "method"
)

// Error returns a slog.Attr with the key "error" and the error's message as value.
// A nil error is rendered as an empty string.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "")
	}
	return slog.String("error", err.Error())
}

// Stringer creates a slog.Attr holding the String() form of value.
func Stringer(key string, value fmt.Stringer) slog.Attr {
	return slog.String(key, value.String())
}

// LoggerName creates a slog.Attr naming the logger of a component.
func LoggerName(name string) slog.Attr {
	return slog.String(KeyLoggerName, name)
}

// RequestID creates a slog.Attr for a request context id.
func RequestID(id string) slog.Attr {
	return slog.String(KeyRequestID, id)
}

// Method creates a slog.Attr for an API method name.
func Method[S ~string](name S) slog.Attr {
	return slog.String(KeyMethod, string(name))
}

// JSON renders value as a compact JSON string attribute.
// When value can't be marshaled the attribute holds the marshal error instead.
func JSON(key string, value any) slog.Attr {
	b, err := json.Marshal(value)
	if err != nil {
		return slog.String(key, fmt.Sprintf("!json(%v)", err))
	}
	return slog.String(key, string(b))
}
