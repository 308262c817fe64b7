package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouter_MiddlewareOrder(t *testing.T) {
	var order []string
	router := NewRouter()
	for _, name := range []string{"outer", "inner"} {
		router.Use(func(w http.ResponseWriter, r *http.Request, next http.Handler) {
			order = append(order, name)
			next.ServeHTTP(w, r)
		})
	}
	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, []string{"outer", "inner", "handler"}, order)
}

func TestRouter_ShortCircuit(t *testing.T) {
	router := NewRouter()
	router.Use(func(w http.ResponseWriter, r *http.Request, next http.Handler) {
		w.WriteHeader(http.StatusTeapot)
	})
	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run")
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func TestWithRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	router := NewRouter()
	router.Use(WithRequestID(logger))
	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		zerolog.Ctx(r.Context()).Info().Msg("inside")
	})

	t.Run("generated", func(t *testing.T) {
		buf.Reset()
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		id := rec.Header().Get(RequestIDHeader)
		_, err := uuid.Parse(id)
		require.NoError(t, err)

		var line map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
		assert.Equal(t, id, line["request_id"])
	})

	t.Run("client supplied", func(t *testing.T) {
		id := uuid.New().String()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, id)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, id, rec.Header().Get(RequestIDHeader))
	})

	t.Run("malformed replaced", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "not a uuid\n")

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.NotEqual(t, "not a uuid\n", rec.Header().Get(RequestIDHeader))
	})
}

func TestRecover(t *testing.T) {
	router := NewRouter()
	router.Use(Recover)
	router.HandleFunc("/boom", func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})
	router.HandleFunc("/abort", func(w http.ResponseWriter, r *http.Request) {
		panic(http.ErrAbortHandler)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, rec.Body.String())

	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/abort", nil))
	})
}

func TestAccessLog(t *testing.T) {
	var buf bytes.Buffer
	metrics := NewMetrics(prometheus.NewRegistry())

	router := NewRouter()
	router.Use(WithRequestID(zerolog.New(&buf)))
	router.Use(AccessLog(metrics))
	router.HandleFunc("/missing", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodDelete, "/missing", nil))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "http", line["sys"])
	assert.Equal(t, "DELETE", line["method"])
	assert.Equal(t, "/missing", line["path"])
	assert.InDelta(t, 404, line["status"], 0)
	assert.Contains(t, line, "duration_ms")
	assert.Contains(t, line, "request_id")

	assert.InDelta(t, 1, testutil.ToFloat64(metrics.Requests.WithLabelValues("DELETE", "404")), 0)
}

func TestRateLimiter(t *testing.T) {
	metrics := NewMetrics(prometheus.NewRegistry())
	limiter := NewRateLimiter(1, 2, metrics)

	router := NewRouter()
	router.Use(limiter.Middleware)
	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {})
	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {})

	request := func(path, remote string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.RemoteAddr = remote
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, request("/", "10.0.0.1:1000").Code)
	assert.Equal(t, http.StatusOK, request("/", "10.0.0.1:1001").Code)

	rec := request("/", "10.0.0.1:1002")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"error":"Too many requests"}`, rec.Body.String())

	assert.Equal(t, http.StatusOK, request("/", "10.0.0.2:1000").Code, "other clients have their own bucket")
	assert.Equal(t, http.StatusOK, request("/healthz", "10.0.0.1:1003").Code, "health checks are not limited")

	assert.InDelta(t, 1, testutil.ToFloat64(metrics.RateLimited), 0)
	assert.Equal(t, 2, limiter.Len())
}

func TestRateLimiter_EvictsIdleClients(t *testing.T) {
	limiter := NewRateLimiter(10, 10, NewMetrics(prometheus.NewRegistry()))
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	limiter.allow("10.0.0.1")
	limiter.allow("10.0.0.2")
	require.Equal(t, 2, limiter.Len())

	now = now.Add(idleLimiterTTL + time.Minute)
	limiter.allow("10.0.0.3")
	assert.Equal(t, 1, limiter.Len())
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		remote string
		want   string
	}{
		{"192.0.2.1:1234", "192.0.2.1"},
		{"[2001:db8::1]:80", "2001:db8::1"},
		{"unix", "unix"},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = tt.remote
		assert.Equal(t, tt.want, clientIP(req))
	}
}
