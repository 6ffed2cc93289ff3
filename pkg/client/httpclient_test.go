package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "voltworks/pkg/errors"
)

func flakyServer(t *testing.T, failures int, failStatus int) (*httptest.Server, *int) {
	t.Helper()
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls <= failures {
			w.WriteHeader(failStatus)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"id":"apt-1"}}`))
	}))
	t.Cleanup(server.Close)
	return server, &calls
}

func TestGET_RetriesOnceOn5xx(t *testing.T) {
	server, calls := flakyServer(t, 1, http.StatusBadGateway)
	c := NewHttpClient(server.URL, time.Second)

	resp, err := c.GET(context.Background(), "/api/v1/appointments/apt-1")
	require.NoError(t, err)
	assert.True(t, resp.IsSuccess())
	assert.Equal(t, 2, *calls)
}

func TestGET_GivesUpAfterOneRetry(t *testing.T) {
	server, calls := flakyServer(t, 10, http.StatusInternalServerError)
	c := NewHttpClient(server.URL, time.Second)

	resp, err := c.GET(context.Background(), "/api/v1/appointments")
	require.NoError(t, err)
	assert.False(t, resp.IsSuccess())
	assert.Equal(t, 2, *calls)
}

func TestGET_NoRetryOn4xx(t *testing.T) {
	server, calls := flakyServer(t, 10, http.StatusNotFound)
	c := NewHttpClient(server.URL, time.Second)

	resp, err := c.GET(context.Background(), "/api/v1/appointments/missing")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, 1, *calls, "client errors are final")
}

func TestPOST_NeverRetried(t *testing.T) {
	server, calls := flakyServer(t, 10, http.StatusInternalServerError)
	c := NewHttpClient(server.URL, time.Second)

	resp, err := c.POST(context.Background(), "/api/v1/payments", map[string]string{"method": "card"})
	require.NoError(t, err)
	assert.False(t, resp.IsSuccess())
	assert.Equal(t, 1, *calls, "a failed write must not be repeated automatically")
}

func TestDecodeData_UnwrapsEnvelope(t *testing.T) {
	server, _ := flakyServer(t, 0, 0)
	c := NewHttpClient(server.URL, time.Second)

	resp, err := c.GET(context.Background(), "/api/v1/appointments/apt-1")
	require.NoError(t, err)

	var payload struct {
		ID string `json:"id"`
	}
	require.NoError(t, decodeData(resp, &payload))
	assert.Equal(t, "apt-1", payload.ID)
}

func TestUpstreamError_FallsBackToSharedCopy(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()
	c := NewHttpClient(server.URL, time.Second)

	resp, err := c.GET(context.Background(), "/api/v1/parts")
	require.NoError(t, err)

	appErr := apperrors.AsAppError(upstreamError(resp))
	assert.Equal(t, apperrors.FallbackUpstreamMessage, appErr.Message)
}

func TestUpstreamError_KeepsAPIMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"Slot already taken"}`))
	}))
	defer server.Close()
	c := NewHttpClient(server.URL, time.Second)

	resp, err := c.GET(context.Background(), "/api/v1/appointments")
	require.NoError(t, err)

	appErr := apperrors.AsAppError(upstreamError(resp))
	assert.Equal(t, "Slot already taken", appErr.Message)
}
