package tables

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ZaguanLabs/dialect"
)

// maxDocumentSize bounds the size of a remote table document.
const maxDocumentSize = 8 << 20

// HTTP loads tables from a YAML document served over HTTP(S).
// It makes one request per Load; wrap it in dialect.RetryingSource to
// retry transient failures.
type HTTP struct {
	URL    string
	Client *http.Client // Defaults to a client with a 30s timeout
}

// NewHTTP creates an HTTP source with the default client.
func NewHTTP(url string) *HTTP {
	return &HTTP{
		URL:    url,
		Client: &http.Client{Timeout: 30 * time.Second},
	}
}

// Load fetches and parses the document. Network failures, 429 and 5xx
// responses are reported as retryable TableErrors.
func (h *HTTP) Load(ctx context.Context) (*Tables, error) {
	data, err := h.fetch(ctx)
	if err != nil {
		return nil, err
	}
	return Parse(h.URL, data)
}

// Name returns the document URL.
func (h *HTTP) Name() string {
	return h.URL
}

func (h *HTTP) fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.URL, nil)
	if err != nil {
		return nil, &dialect.TableError{Source: h.URL, Message: "invalid request", Cause: err}
	}
	req.Header.Set("User-Agent", dialect.UserAgent())
	req.Header.Set("Accept", "application/yaml, text/yaml, text/plain")

	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, &dialect.TableError{
			Source:    h.URL,
			Message:   "request failed",
			Cause:     err,
			Retryable: ctx.Err() == nil,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &dialect.TableError{
			Source:    h.URL,
			Message:   fmt.Sprintf("unexpected status %d", resp.StatusCode),
			Retryable: resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500,
		}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize+1))
	if err != nil {
		return nil, &dialect.TableError{Source: h.URL, Message: "reading body", Cause: err, Retryable: true}
	}
	if len(data) > maxDocumentSize {
		return nil, &dialect.TableError{Source: h.URL, Message: "document too large"}
	}
	return data, nil
}

var _ Source = (*HTTP)(nil)
