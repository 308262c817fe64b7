package tables

import (
	"context"
	"maps"
	"sync"
)

// Static serves a fixed set of tables. It is mostly useful in tests.
type Static struct {
	Tables *Tables
	Err    error // Returned by Load instead of the tables when set

	mu        sync.Mutex
	callCount int
}

// NewStatic creates a static source serving t.
func NewStatic(t *Tables) *Static {
	return &Static{Tables: t}
}

// Load returns a deep copy of the configured tables.
func (s *Static) Load(_ context.Context) (*Tables, error) {
	s.mu.Lock()
	s.callCount++
	s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}
	if s.Tables == nil {
		return nil, nil
	}
	return &Tables{
		AmericanOnly: maps.Clone(s.Tables.AmericanOnly),
		BritishOnly:  maps.Clone(s.Tables.BritishOnly),
		Spelling:     maps.Clone(s.Tables.Spelling),
		Titles:       maps.Clone(s.Tables.Titles),
	}, nil
}

// Name returns "static".
func (s *Static) Name() string {
	return "static"
}

// CallCount returns how many times Load was called.
func (s *Static) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.callCount
}

var _ Source = (*Static)(nil)
