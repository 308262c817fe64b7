package dialect

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// RetryConfig controls how often and how patiently a table load is retried.
type RetryConfig struct {
	MaxRetries int           // Attempts after the first one
	BaseDelay  time.Duration // Delay before the first retry; doubles each time
	MaxDelay   time.Duration // Upper bound for a single delay
}

// DefaultRetryConfig returns the settings used for remote tables.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries: 3,
		BaseDelay:  500 * time.Millisecond,
		MaxDelay:   10 * time.Second,
	}
}

// delay returns the wait before retry number n, counting from zero.
func (c RetryConfig) delay(n int) time.Duration {
	d := c.BaseDelay << n
	if d > c.MaxDelay || d <= 0 {
		return c.MaxDelay
	}
	return d
}

// IsRetryable reports whether err is a TableError flagged as retryable.
// Context errors never are.
func IsRetryable(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var tableErr *TableError
	return errors.As(err, &tableErr) && tableErr.Retryable
}

// RetryingSource retries transient failures of another source with
// exponential backoff. It is the only retry layer for table loads: sources
// themselves make a single attempt.
type RetryingSource struct {
	source TableSource
	config RetryConfig
}

// NewRetryingSource wraps source.
func NewRetryingSource(source TableSource, cfg RetryConfig) *RetryingSource {
	return &RetryingSource{source: source, config: cfg}
}

// Load calls the wrapped source until it succeeds, fails permanently or
// runs out of attempts. Exhaustion is reported as a non-retryable
// TableError wrapping the last failure, so stacked wrappers do not multiply
// the attempts.
func (s *RetryingSource) Load(ctx context.Context) (*Tables, error) {
	var lastErr error
	for attempt := 0; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		tbl, err := s.source.Load(ctx)
		if err == nil {
			return tbl, nil
		}
		if !IsRetryable(err) {
			return nil, err
		}
		lastErr = err

		if attempt == s.config.MaxRetries {
			break
		}
		timer := time.NewTimer(s.config.delay(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	return nil, &TableError{
		Source:  s.source.Name(),
		Message: fmt.Sprintf("giving up after %d attempts", s.config.MaxRetries+1),
		Cause:   lastErr,
	}
}

// Name returns the wrapped source's name.
func (s *RetryingSource) Name() string {
	return s.source.Name()
}

var _ TableSource = (*RetryingSource)(nil)
