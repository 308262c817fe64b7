// Package tables provides lookup table sources for the translation engine.
package tables

import (
	"bytes"

	"github.com/goccy/go-yaml"

	"github.com/ZaguanLabs/dialect"
)

// Source is an alias to the main package interface.
type Source = dialect.TableSource

// Tables is an alias to the main package type.
type Tables = dialect.Tables

// Parse decodes a YAML table document. Unknown sections are rejected so a
// typo in a section name does not silently drop a table.
func Parse(name string, data []byte) (*Tables, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &dialect.TableError{Source: name, Message: "empty table document"}
	}

	var t Tables
	if err := yaml.UnmarshalWithOptions(data, &t, yaml.Strict()); err != nil {
		return nil, &dialect.TableError{
			Source:  name,
			Message: "failed to parse YAML",
			Cause:   err,
		}
	}

	return &t, nil
}

// Marshal encodes tables back into the YAML document format.
func Marshal(t *Tables) ([]byte, error) {
	return yaml.Marshal(t)
}
