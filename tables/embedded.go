package tables

import (
	"context"
	_ "embed"
)

//go:embed data/en.yaml
var embeddedTables []byte

// embeddedSource serves the tables bundled with the binary.
type embeddedSource struct{}

// Embedded returns the source for the bundled American/British tables.
func Embedded() Source {
	return embeddedSource{}
}

// Load parses the bundled document. Every call returns fresh maps.
func (embeddedSource) Load(_ context.Context) (*Tables, error) {
	return Parse("embedded", embeddedTables)
}

// Name returns "embedded".
func (embeddedSource) Name() string {
	return "embedded"
}

var _ Source = embeddedSource{}
