package slogx

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stringerFunc func() string

func (s stringerFunc) String() string { return s() }

func TestAttrs(t *testing.T) {
	t.Run("error", func(t *testing.T) {
		attr := Error(errors.New("boom"))
		assert.Equal(t, "error", attr.Key)
		assert.Equal(t, "boom", attr.Value.String())
	})

	t.Run("nil error", func(t *testing.T) {
		attr := Error(nil)
		assert.Equal(t, "", attr.Value.String())
	})

	t.Run("stringer", func(t *testing.T) {
		attr := Stringer("state", stringerFunc(func() string { return "SENT" }))
		assert.Equal(t, slog.String("state", "SENT"), attr)
	})

	t.Run("method", func(t *testing.T) {
		type methodName string
		attr := Method(methodName("users.get"))
		assert.Equal(t, KeyMethod, attr.Key)
		assert.Equal(t, "users.get", attr.Value.String())
	})

	t.Run("logger name and request id", func(t *testing.T) {
		assert.Equal(t, slog.String(KeyLoggerName, "vkwave.client"), LoggerName("vkwave.client"))
		assert.Equal(t, slog.String(KeyRequestID, "abc"), RequestID("abc"))
	})
}

func TestJSON(t *testing.T) {
	t.Run("valid value", func(t *testing.T) {
		attr := JSON("params", map[string]any{"user_ids": 1})
		assert.Equal(t, `{"user_ids":1}`, attr.Value.String())
	})

	t.Run("unmarshalable value", func(t *testing.T) {
		attr := JSON("params", make(chan int))
		assert.Contains(t, attr.Value.String(), "!json(")
	})
}
