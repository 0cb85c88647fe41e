package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWebhookSendPostsReminder(t *testing.T) {
	var got sendTextPayload
	var apiKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		apiKey = r.Header.Get("apikey")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	wh := NewWebhook(srv.URL, "secret")
	require.NoError(t, wh.Send(context.Background(), "+15550001111"))
	require.Equal(t, "secret", apiKey)
	require.Equal(t, "+15550001111", got.Number)
	require.Equal(t, ReminderText, got.Text)
}

func TestWebhookSendSurfacesServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "instance offline", http.StatusBadGateway)
	}))
	defer srv.Close()

	wh := NewWebhook(srv.URL, "")
	err := wh.Send(context.Background(), "+15550001111")
	require.Error(t, err)
	require.Contains(t, err.Error(), "502")
	require.Contains(t, err.Error(), "instance offline")
}

func TestWebhookSendRequiresURL(t *testing.T) {
	wh := &Webhook{}
	require.Error(t, wh.Send(context.Background(), "+15550001111"))
}
