package server

import (
	"errors"
	"net"
	"net/http"
	"runtime/debug"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

// WithRequestID assigns every request an id, echoes it in the response and
// attaches a logger carrying it to the request context. A well-formed UUID
// sent by the client is reused.
func WithRequestID(logger zerolog.Logger) Middleware {
	return func(w http.ResponseWriter, r *http.Request, next http.Handler) {
		id := r.Header.Get(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.New().String()
		}
		w.Header().Set(RequestIDHeader, id)

		l := logger.With().Str("request_id", id).Logger()
		next.ServeHTTP(w, r.WithContext(l.WithContext(r.Context())))
	}
}

// Recover turns a panicking handler into a 500 response.
func Recover(w http.ResponseWriter, r *http.Request, next http.Handler) {
	defer func() {
		rec := recover()
		if rec == nil {
			return
		}
		if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
			panic(rec)
		}
		zerolog.Ctx(r.Context()).Error().
			Interface("panic", rec).
			Bytes("stack", debug.Stack()).
			Msg("handler panicked")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal server error"})
	}()
	next.ServeHTTP(w, r)
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Unwrap() http.ResponseWriter {
	return s.ResponseWriter
}

// AccessLog logs one line per request and counts it in metrics.
func AccessLog(metrics *Metrics) Middleware {
	return func(w http.ResponseWriter, r *http.Request, next http.Handler) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		metrics.Requests.WithLabelValues(r.Method, strconv.Itoa(rec.status)).Inc()
		zerolog.Ctx(r.Context()).Info().
			Str("sys", "http").
			Int("status", rec.status).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int64("duration_ms", time.Since(start).Milliseconds()).
			Msg("")
	}
}

// idleLimiterTTL is how long an unused client limiter is kept.
const idleLimiterTTL = 3 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter applies a token bucket per client IP.
type RateLimiter struct {
	limit   rate.Limit
	burst   int
	metrics *Metrics

	mu          sync.Mutex
	clients     map[string]*clientLimiter
	lastCleanup time.Time
	now         func() time.Time
}

// NewRateLimiter creates a limiter allowing rps requests per second per
// client with the given burst.
func NewRateLimiter(rps float64, burst int, metrics *Metrics) *RateLimiter {
	return &RateLimiter{
		limit:   rate.Limit(rps),
		burst:   burst,
		metrics: metrics,
		clients: make(map[string]*clientLimiter),
		now:     time.Now,
	}
}

// Middleware rejects requests over the client's budget with 429. Health and
// metrics scrapes are never limited.
func (l *RateLimiter) Middleware(w http.ResponseWriter, r *http.Request, next http.Handler) {
	if r.URL.Path == "/healthz" || r.URL.Path == "/metrics" {
		next.ServeHTTP(w, r)
		return
	}
	if !l.allow(clientIP(r)) {
		l.metrics.RateLimited.Inc()
		w.Header().Set("Retry-After", "1")
		writeJSON(w, http.StatusTooManyRequests, errorResponse{Error: "Too many requests"})
		return
	}
	next.ServeHTTP(w, r)
}

func (l *RateLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastCleanup) > time.Minute {
		for key, c := range l.clients {
			if now.Sub(c.lastSeen) > idleLimiterTTL {
				delete(l.clients, key)
			}
		}
		l.lastCleanup = now
	}

	c, ok := l.clients[ip]
	if !ok {
		c = &clientLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[ip] = c
	}
	c.lastSeen = now
	return c.limiter.AllowN(now, 1)
}

// Len returns the number of tracked clients.
func (l *RateLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

// clientIP returns the host part of the peer address. Forwarding headers are
// not trusted.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
