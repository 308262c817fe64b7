package tables

import (
	"context"
	"os"

	"github.com/ZaguanLabs/dialect"
)

// File loads tables from a YAML file on disk.
type File struct {
	Path string
}

// Load reads and parses the file.
func (f File) Load(_ context.Context) (*Tables, error) {
	data, err := os.ReadFile(f.Path) // #nosec G304 - path comes from operator configuration
	if err != nil {
		return nil, &dialect.TableError{
			Source:  f.Path,
			Message: "failed to read table file",
			Cause:   err,
		}
	}
	return Parse(f.Path, data)
}

// Name returns the file path.
func (f File) Name() string {
	return f.Path
}

var _ Source = File{}
