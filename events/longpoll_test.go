package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestNormalizeUserUpdate(t *testing.T) {
	t.Run("message new", func(t *testing.T) {
		out, err := NormalizeUserUpdate([]byte(`[4,10,1,2000000001,1700000000,"hi",{"title":""},{}]`))
		require.NoError(t, err)

		obj := gjson.GetBytes(out, "object")
		assert.Equal(t, int64(4), obj.Get("event_id").Int())
		assert.Equal(t, int64(10), obj.Get("message_id").Int())
		assert.Equal(t, int64(2000000001), obj.Get("peer_id").Int())
		assert.Equal(t, "hi", obj.Get("text").String())
		assert.True(t, obj.Get("extra").IsObject())
		assert.False(t, obj.Get("random_id").Exists())
	})

	t.Run("extra positions are dropped", func(t *testing.T) {
		out, err := NormalizeUserUpdate([]byte(`[80,3,0,"extra"]`))
		require.NoError(t, err)
		assert.JSONEq(t, `{"object":{"event_id":80,"count":3}}`, string(out))
	})

	t.Run("unknown event keeps only the id", func(t *testing.T) {
		out, err := NormalizeUserUpdate([]byte(`[999,1,2]`))
		require.NoError(t, err)
		assert.JSONEq(t, `{"object":{"event_id":999}}`, string(out))
	})

	t.Run("typing derives peer from user", func(t *testing.T) {
		out, err := NormalizeUserUpdate([]byte(`[61,15,1]`))
		require.NoError(t, err)
		assert.Equal(t, int64(15), gjson.GetBytes(out, "object.peer_id").Int())
	})

	t.Run("chat typing derives peer from chat", func(t *testing.T) {
		out, err := NormalizeUserUpdate([]byte(`[62,15,3]`))
		require.NoError(t, err)
		assert.Equal(t, int64(2000000003), gjson.GetBytes(out, "object.peer_id").Int())
	})

	t.Run("rejects invalid updates", func(t *testing.T) {
		for _, raw := range []string{`[4,`, `{"a":1}`, `[]`, `["4"]`} {
			_, err := NormalizeUserUpdate([]byte(raw))
			assert.ErrorIs(t, err, ErrInvalidEvent, raw)
		}
	})
}

func TestFromUserUpdate(t *testing.T) {
	e, err := FromUserUpdate([]byte(`[4,10,1,7,1700000000,"hello",{},{}]`))
	require.NoError(t, err)

	kind, err := Classify(e)
	require.NoError(t, err)
	assert.Equal(t, UserMessageNew, kind)

	peer, ok := e.PeerID()
	assert.True(t, ok)
	assert.Equal(t, int64(7), peer)
	assert.Equal(t, "hello", e.Text())
}
