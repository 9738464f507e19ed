package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/energydash/auth"
	"github.com/kilianp07/energydash/core/factory"
	coresource "github.com/kilianp07/energydash/core/source"
)

func factoryConfig(typ string, conf map[string]any) factory.ModuleConfig {
	return factory.ModuleConfig{Type: typ, Conf: conf}
}

func factoryCreate(t *testing.T, typ string, conf map[string]any) (coresource.Source, error) {
	t.Helper()
	return coresource.New(factoryConfig(typ, conf))
}

func TestHTTPFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/data/2024-03-09", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(jsonSnapshot))
	}))
	defer srv.Close()

	src, err := NewHTTP(HTTPConfig{URL: srv.URL + "/data/{date}"})
	require.NoError(t, err)
	defer src.Close()
	d, err := src.Fetch(context.Background(), day)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.4, 0.6}, d.TodayConsumption)
}

func TestHTTPRetriesServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(jsonSnapshot))
	}))
	defer srv.Close()

	src, err := NewHTTP(HTTPConfig{URL: srv.URL, MaxRetries: 3, Backoff: time.Millisecond})
	require.NoError(t, err)
	_, err = src.Fetch(context.Background(), day)
	require.NoError(t, err)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestHTTPGivesUpAfterMaxRetries(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	src, err := NewHTTP(HTTPConfig{URL: srv.URL, MaxRetries: 2, Backoff: time.Millisecond})
	require.NoError(t, err)
	_, err = src.Fetch(context.Background(), day)
	assert.Error(t, err)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestHTTPSingleRetry(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	src, err := NewHTTP(HTTPConfig{URL: srv.URL, MaxRetries: 1, Backoff: time.Millisecond})
	require.NoError(t, err)
	_, err = src.Fetch(context.Background(), day)
	assert.ErrorContains(t, err, "502")
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestHTTPFetchStopsDuringBackoff(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	src, err := NewHTTP(HTTPConfig{URL: srv.URL, MaxRetries: 5, Backoff: 5 * time.Second})
	require.NoError(t, err)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err = src.Fetch(ctx, day)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 2*time.Second)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestHTTPClientErrorIsNotRetried(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	src, err := NewHTTP(HTTPConfig{URL: srv.URL, MaxRetries: 3, Backoff: time.Millisecond})
	require.NoError(t, err)
	_, err = src.Fetch(context.Background(), day)
	assert.ErrorContains(t, err, "404")
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestHTTPSendsBearerToken(t *testing.T) {
	idp := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"secret-token","token_type":"bearer","expires_in":3600}`))
	}))
	defer idp.Close()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer secret-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(jsonSnapshot))
	}))
	defer srv.Close()

	src, err := NewHTTP(HTTPConfig{URL: srv.URL, Auth: auth.Conf{ClientID: "id", ClientSecret: "s", AuthURL: idp.URL}})
	require.NoError(t, err)
	_, err = src.Fetch(context.Background(), day)
	require.NoError(t, err)
}

func TestHTTPFactoryDecodesDurations(t *testing.T) {
	src, err := factoryCreate(t, "http", map[string]any{"url": "http://backend/{date}", "timeout": "2s", "backoff": "10ms"})
	require.NoError(t, err)
	h := src.(*HTTP)
	assert.Equal(t, 2*time.Second, h.cfg.Timeout)
	assert.Equal(t, 10*time.Millisecond, h.cfg.Backoff)
	assert.Equal(t, 3, h.cfg.MaxRetries)
}
