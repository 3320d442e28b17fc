package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scheduleFixture = `{
	"events": [
		{
			"id": "401696183",
			"date": "2025-04-18T02:10Z",
			"name": "San Diego Padres at Los Angeles Dodgers",
			"competitions": [{
				"venue": {"fullName": "Dodger Stadium"},
				"status": {"period": 9, "type": {"state": "post"}},
				"competitors": [
					{"homeAway": "home", "score": {"value": 5}, "team": {"displayName": "Los Angeles Dodgers"}},
					{"homeAway": "away", "score": "3", "team": {"displayName": "San Diego Padres"}}
				]
			}]
		},
		{
			"id": "401696184",
			"date": "2025-04-19T02:10Z",
			"name": "San Diego Padres at Los Angeles Dodgers",
			"competitions": []
		}
	]
}`

func TestFetchSchedule(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/teams/19/schedule", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Write([]byte(scheduleFixture))
	}))
	defer srv.Close()

	c := NewESPNClient(srv.URL, "19", 5*time.Second)
	events, err := c.FetchSchedule(context.Background())
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, "401696183", events[0].ID)
	comp := events[0].Competition()
	require.NotNil(t, comp)
	assert.Equal(t, "post", comp.State())

	home := comp.Competitor("home")
	require.NotNil(t, home)
	v, ok := home.Score.Int()
	require.True(t, ok)
	assert.Equal(t, 5, v)

	away := comp.Competitor("away")
	require.NotNil(t, away)
	v, ok = away.Score.Int()
	require.True(t, ok)
	assert.Equal(t, 3, v, "string score decodes too")
}

func TestFetchScoreboard(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/scoreboard", r.URL.Path)
		w.Write([]byte(`{"events": []}`))
	}))
	defer srv.Close()

	c := NewESPNClient(srv.URL, "19", 5*time.Second)
	events, err := c.FetchScoreboard(context.Background())
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestGet_RetriesRetryableStatus(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"events": []}`))
	}))
	defer srv.Close()

	c := NewESPNClient(srv.URL, "19", 5*time.Second)
	c.retryDelay = time.Millisecond

	_, err := c.FetchScoreboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestGet_NoRetryOnClientError(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewESPNClient(srv.URL, "19", 5*time.Second)
	c.retryDelay = time.Millisecond

	_, err := c.FetchScoreboard(context.Background())
	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "4xx is not retryable")
}

func TestGet_RetriesExhausted(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewESPNClient(srv.URL, "19", 5*time.Second)
	c.retryDelay = time.Millisecond

	_, err := c.FetchScoreboard(context.Background())
	require.Error(t, err)
	assert.Equal(t, int32(4), atomic.LoadInt32(&calls), "initial try plus three retries")
}

func TestGet_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewESPNClient(srv.URL, "19", 5*time.Second)
	c.retryDelay = time.Minute

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.FetchScoreboard(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
