package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/casualjim/vkwave/client"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func apiServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func setupEnv(t *testing.T, baseURL string) {
	color.NoColor = true
	t.Setenv("VK_TOKEN", "token")
	t.Setenv("VK_BASE_URL", baseURL)
	t.Setenv("VK_API_VERSION", "")
	t.Setenv("VK_TIMEOUT", "")
	t.Setenv("VK_NATS_SUBJECT", "")
	t.Setenv("VK_NATS_INCLUDE_DATA", "")
}

func TestRun(t *testing.T) {
	t.Run("prints the response", func(t *testing.T) {
		srv := apiServer(t, `{"response":[{"id":1,"first_name":"Pavel"}]}`)
		setupEnv(t, srv.URL)

		var stdout, stderr bytes.Buffer
		err := run(context.Background(), []string{"-trace", "-metrics", "users.get", "user_ids=1"}, &stdout, &stderr)
		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Pavel")
		assert.Contains(t, stderr.String(), "SUCCESS")
		assert.Contains(t, stderr.String(), "vkwave_client_requests_total{method=users.get,result=SUCCESS} 1")
	})

	t.Run("api errors are reported", func(t *testing.T) {
		srv := apiServer(t, `{"error":{"error_code":5,"error_msg":"User authorization failed"}}`)
		setupEnv(t, srv.URL)

		var stdout, stderr bytes.Buffer
		err := run(context.Background(), []string{"users.get"}, &stdout, &stderr)
		require.Error(t, err)
		assert.ErrorIs(t, err, client.ErrAPI)
		assert.Contains(t, stderr.String(), "User authorization failed")
		assert.Empty(t, stdout.String())
	})

	t.Run("method is required", func(t *testing.T) {
		setupEnv(t, "http://127.0.0.1:1/")
		var stdout, stderr bytes.Buffer
		err := run(context.Background(), nil, &stdout, &stderr)
		assert.EqualError(t, err, "method is required")
	})
}

func TestParseParams(t *testing.T) {
	params, err := parseParams([]string{"user_ids=1,2", `fields=["photo_50","city"]`, "message=a=b", "empty="})
	require.NoError(t, err)
	assert.Equal(t, client.Params{
		"user_ids": "1,2",
		"fields":   []any{"photo_50", "city"},
		"message":  "a=b",
		"empty":    "",
	}, params)

	_, err = parseParams([]string{"novalue"})
	assert.Error(t, err)
	_, err = parseParams([]string{"=x"})
	assert.Error(t, err)
}
