package dialect

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Tables holds the four lookup tables the engine composes from.
// Spelling and Titles are oriented American to British; the reverse direction
// is derived by inversion. A loaded Tables value is never mutated.
type Tables struct {
	AmericanOnly map[string]string `yaml:"american_only" json:"american_only"`
	BritishOnly  map[string]string `yaml:"british_only"  json:"british_only"`
	Spelling     map[string]string `yaml:"spelling"      json:"spelling"`
	Titles       map[string]string `yaml:"titles"        json:"titles"`
}

// TableSource loads a set of lookup tables.
type TableSource interface {
	Load(ctx context.Context) (*Tables, error)
	Name() string
}

// LoadTables loads tables from src, then validates and normalises them.
func LoadTables(ctx context.Context, src TableSource) (*Tables, error) {
	t, err := src.Load(ctx)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, &TableError{Source: src.Name(), Message: "source returned no tables"}
	}
	normalized, err := t.Normalize()
	if err != nil {
		var tableErr *TableError
		if errors.As(err, &tableErr) {
			tableErr.Source = src.Name()
		}
		return nil, err
	}
	return normalized, nil
}

// Normalize returns a copy with lowercased, trimmed keys and trimmed values.
// Empty keys or values are rejected, as are titles containing whitespace.
func (t *Tables) Normalize() (*Tables, error) {
	out := &Tables{}
	var err error
	if out.AmericanOnly, err = normalizeTable("american_only", t.AmericanOnly); err != nil {
		return nil, err
	}
	if out.BritishOnly, err = normalizeTable("british_only", t.BritishOnly); err != nil {
		return nil, err
	}
	if out.Spelling, err = normalizeTable("spelling", t.Spelling); err != nil {
		return nil, err
	}
	if out.Titles, err = normalizeTable("titles", t.Titles); err != nil {
		return nil, err
	}
	for from, to := range out.Titles {
		if strings.ContainsAny(from, " \t") || strings.ContainsAny(to, " \t") {
			return nil, &TableError{Message: fmt.Sprintf("title %q -> %q must be a single word", from, to)}
		}
	}
	return out, nil
}

func normalizeTable(name string, in map[string]string) (map[string]string, error) {
	out := make(map[string]string, len(in))
	for k, v := range in {
		key := strings.ToLower(strings.TrimSpace(k))
		value := strings.TrimSpace(v)
		if key == "" || value == "" {
			return nil, &TableError{Message: fmt.Sprintf("%s: empty entry %q -> %q", name, k, v)}
		}
		out[key] = value
	}
	return out, nil
}

// Len returns the total number of rules across all tables.
func (t *Tables) Len() int {
	return len(t.AmericanOnly) + len(t.BritishOnly) + len(t.Spelling) + len(t.Titles)
}

// Fingerprint returns a stable digest of the table contents.
// Cache keys include it so a reload never serves results built from older tables.
func (t *Tables) Fingerprint() string {
	h := sha256.New()
	for _, section := range []struct {
		name  string
		table map[string]string
	}{
		{"american_only", t.AmericanOnly},
		{"british_only", t.BritishOnly},
		{"spelling", t.Spelling},
		{"titles", t.Titles},
	} {
		keys := make([]string, 0, len(section.table))
		for k := range section.table {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		h.Write([]byte(section.name))
		h.Write([]byte{0})
		for _, k := range keys {
			h.Write([]byte(k))
			h.Write([]byte{0})
			h.Write([]byte(section.table[k]))
			h.Write([]byte{0})
		}
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}
