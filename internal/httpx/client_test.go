package httpx

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fastPolicy = Policy{MaxAttempts: 5, BaseDelay: time.Millisecond}

func TestSend_RetriesOn429ThenSucceeds(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		assert.Equal(t, "secret", r.Header.Get("api_key"))
		assert.Equal(t, "alice", r.URL.Query().Get("q"))
		_, _ = w.Write([]byte(`{"name":"alice"}`))
	}))
	defer srv.Close()

	c := NewClient("test", srv.URL, WithPolicy(fastPolicy), WithHeader("api_key", "secret"))
	var out struct {
		Name string `json:"name"`
	}
	err := c.GetJSON(context.Background(), "/search", url.Values{"q": {"alice"}}, &out)
	require.NoError(t, err)
	assert.Equal(t, "alice", out.Name)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestSend_ExhaustsRetries(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient("test", srv.URL, WithPolicy(fastPolicy))
	err := c.GetJSON(context.Background(), "/x", nil, nil)
	require.Error(t, err)
	assert.True(t, IsStatus(err, http.StatusTooManyRequests))
	assert.Equal(t, int32(5), atomic.LoadInt32(&calls))
}

func TestSend_NonRetryableStatusFailsImmediately(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient("test", srv.URL, WithPolicy(fastPolicy))
	err := c.GetJSON(context.Background(), "/x", nil, nil)

	var herr *HTTPError
	require.True(t, errors.As(err, &herr))
	assert.Equal(t, http.StatusInternalServerError, herr.Status)
	assert.Equal(t, "HTTP error! Status: 500", herr.Error())
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestPostJSON_SendsBodyAndHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "key-1", r.Header.Get("Idempotency-Key"))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := NewClient("test", srv.URL+"/", WithPolicy(NoRetry))
	var out struct {
		OK bool `json:"ok"`
	}
	err := c.Send(context.Background(), Request{
		Method: http.MethodPost,
		Path:   "/sessions",
		Header: http.Header{"Idempotency-Key": {"key-1"}},
		Body:   map[string]string{"a": "b"},
	}, &out)
	require.NoError(t, err)
	assert.True(t, out.OK)
}

func TestDo_StopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := Do(ctx, Policy{MaxAttempts: 10, BaseDelay: time.Hour}, func(ctx context.Context) error {
		calls++
		cancel()
		return Retryable(errors.New("busy"))
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestDo_NonRetryableReturnsImmediately(t *testing.T) {
	sentinel := errors.New("boom")
	calls := 0
	err := Do(context.Background(), fastPolicy, func(ctx context.Context) error {
		calls++
		return sentinel
	})
	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, 1, calls)
}
