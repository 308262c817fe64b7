package dialect

import (
	"context"
	"sync"
)

// testTables is a small rule set covering every table kind.
func testTables() *Tables {
	return &Tables{
		AmericanOnly: map[string]string{
			"parking lot":  "car park",
			"trash":        "rubbish",
			"trash can":    "bin",
			"french fries": "chips",
			"math":         "maths",
		},
		BritishOnly: map[string]string{
			"car park": "parking lot",
			"bin":      "trash can",
			"rubbish":  "trash",
			"maths":    "math",
			"queue":    "line",
		},
		Spelling: map[string]string{
			"color":    "colour",
			"favorite": "favourite",
			"gray":     "grey",
			"organize": "organise",
		},
		Titles: map[string]string{
			"mr.":  "mr",
			"mrs.": "mrs",
			"dr.":  "dr",
		},
	}
}

// stubSource is a TableSource returning fixed tables or a fixed error.
type stubSource struct {
	tables *Tables
	err    error
	calls  int
}

func (s *stubSource) Load(ctx context.Context) (*Tables, error) {
	s.calls++
	return s.tables, s.err
}

func (s *stubSource) Name() string {
	return "stub"
}

// mockCache is a simple map-backed cache that counts lookups.
type mockCache struct {
	mu     sync.Mutex
	data   map[string][]byte
	gets   int
	hits   int
	setErr error
}

func newMockCache() *mockCache {
	return &mockCache{data: make(map[string][]byte)}
}

func (c *mockCache) Get(ctx context.Context, key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	val, ok := c.data[key]
	if ok {
		c.hits++
	}
	return val, ok
}

func (c *mockCache) Set(ctx context.Context, key string, value []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.setErr != nil {
		return c.setErr
	}
	c.data[key] = value
	return nil
}
