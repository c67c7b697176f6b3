package dispatch

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/casualjim/vkwave/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessengerFunc(t *testing.T) {
	var got sentMessage
	m := MessengerFunc(func(_ context.Context, peerID int64, text string) error {
		got = sentMessage{peerID: peerID, text: text}
		return nil
	})
	require.NoError(t, m.SendMessage(context.Background(), 3, "x"))
	assert.Equal(t, sentMessage{peerID: 3, text: "x"}, got)
}

func TestAPIMessenger(t *testing.T) {
	t.Run("sends messages.send", func(t *testing.T) {
		var path string
		var form url.Values
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, _ := io.ReadAll(r.Body)
			path = r.URL.Path
			form, _ = url.ParseQuery(string(raw))
			_, _ = io.WriteString(w, `{"response":123}`)
		}))
		defer srv.Close()

		m := APIMessenger{API: client.NewHTTPClient(client.WithBaseURL(srv.URL), client.WithToken("tok"))}
		require.NoError(t, m.SendMessage(context.Background(), 2000000001, "hello"))

		assert.Equal(t, "/messages.send", path)
		assert.Equal(t, "2000000001", form.Get("peer_id"))
		assert.Equal(t, "hello", form.Get("message"))
		assert.Equal(t, "0", form.Get("random_id"))
	})

	t.Run("unhandled failures become errors", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = io.WriteString(w, `{"error":{"error_code":901,"error_msg":"Can't send messages for users without permission"}}`)
		}))
		defer srv.Close()

		m := APIMessenger{API: client.NewHTTPClient(client.WithBaseURL(srv.URL))}
		err := m.SendMessage(context.Background(), 1, "hello")
		require.ErrorIs(t, err, client.ErrAPI)
		assert.Contains(t, err.Error(), "901")
	})

	t.Run("end to end through the result caster", func(t *testing.T) {
		var texts []string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, _ := io.ReadAll(r.Body)
			form, _ := url.ParseQuery(string(raw))
			texts = append(texts, form.Get("message"))
			_, _ = io.WriteString(w, `{"response":1}`)
		}))
		defer srv.Close()

		rc := NewResultCaster(APIMessenger{API: client.NewHTTPClient(client.WithBaseURL(srv.URL))})
		require.NoError(t, rc.Cast(context.Background(), "pong", botEvent("message_new")))
		require.NoError(t, rc.Cast(context.Background(), nil, botEvent("message_new")))
		assert.Equal(t, []string{"pong"}, texts)
	})
}
