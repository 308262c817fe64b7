package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"time"
)

// FormatVersion is written into every snapshot.
const FormatVersion = "1.0"

// ExportFormat represents the JSON structure for cache snapshots.
type ExportFormat struct {
	Version    string            `json:"version"`
	ExportedAt string            `json:"exported_at"`
	Entries    []ExportEntry     `json:"entries"`
	Skipped    int               `json:"skipped,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// ExportEntry represents a single cache entry. Values are stored as raw JSON.
type ExportEntry struct {
	Key   string          `json:"key"`
	Value json.RawMessage `json:"value"`
}

// Exporter writes cache snapshots.
type Exporter struct {
	cache ExportableCache
}

// NewExporter creates a new cache exporter.
func NewExporter(cache ExportableCache) *Exporter {
	return &Exporter{cache: cache}
}

// Export writes the cache contents to w as indented JSON, sorted by key.
// Values that are not valid JSON are counted in Skipped and left out.
func (e *Exporter) Export(ctx context.Context, w io.Writer, metadata map[string]string) (*ExportFormat, error) {
	data, err := e.cache.Entries(ctx)
	if err != nil {
		return nil, fmt.Errorf("getting cache entries: %w", err)
	}

	export := &ExportFormat{
		Version:    FormatVersion,
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Entries:    make([]ExportEntry, 0, len(data)),
		Metadata:   metadata,
	}

	for key, value := range data {
		if !json.Valid(value) {
			export.Skipped++
			continue
		}
		export.Entries = append(export.Entries, ExportEntry{Key: key, Value: value})
	}
	sort.Slice(export.Entries, func(i, j int) bool {
		return export.Entries[i].Key < export.Entries[j].Key
	})

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(export); err != nil {
		return nil, fmt.Errorf("encoding JSON: %w", err)
	}

	return export, nil
}

// ExportToFile exports the cache to a file.
// The path is provided by the caller and is intentionally user-controlled.
func (e *Exporter) ExportToFile(ctx context.Context, path string, metadata map[string]string) (*ExportFormat, error) {
	f, err := os.Create(path) // #nosec G304 - path is intentionally user-provided
	if err != nil {
		return nil, fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	return e.Export(ctx, f, metadata)
}

// Importer loads cache snapshots.
type Importer struct {
	cache TranslationCache
}

// NewImporter creates a new cache importer.
func NewImporter(cache TranslationCache) *Importer {
	return &Importer{cache: cache}
}

// ImportResult contains statistics about the import operation.
type ImportResult struct {
	Version  string
	Metadata map[string]string
	Imported int
	Failed   int
}

// Import reads a snapshot from r and stores every entry in the cache.
func (i *Importer) Import(ctx context.Context, r io.Reader) (*ImportResult, error) {
	var export ExportFormat
	if err := json.NewDecoder(r).Decode(&export); err != nil {
		return nil, fmt.Errorf("decoding JSON: %w", err)
	}
	if export.Version != FormatVersion {
		return nil, fmt.Errorf("unsupported snapshot version %q", export.Version)
	}

	result := &ImportResult{
		Version:  export.Version,
		Metadata: export.Metadata,
	}

	for _, entry := range export.Entries {
		if entry.Key == "" {
			result.Failed++
			continue
		}
		if err := i.cache.Set(ctx, entry.Key, entry.Value); err != nil {
			result.Failed++
			continue
		}
		result.Imported++
	}

	return result, nil
}

// ImportFromFile imports a snapshot file. A missing file is reported with an
// error wrapping os.ErrNotExist so callers can treat it as an empty snapshot.
func (i *Importer) ImportFromFile(ctx context.Context, path string) (*ImportResult, error) {
	f, err := os.Open(path) // #nosec G304 - path is intentionally user-provided
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return i.Import(ctx, f)
}
