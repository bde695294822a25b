package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// =============================================================================
// Model Serialization API
// =============================================================================

// MarshalModel converts a model to indented JSON bytes.
func MarshalModel(m *Model) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteModel(m, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalModel decodes JSON bytes into a model and validates it.
func UnmarshalModel(data []byte) (*Model, error) {
	return ReadModel(bytes.NewReader(data))
}

// WriteModel writes a model as JSON to an io.Writer.
func WriteModel(m *Model, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteModelFile writes a model to a JSON file.
func WriteModelFile(m *Model, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteModel(m, f)
}

// ReadModel decodes a JSON model from an io.Reader.
// Returns an error if an edge references an unknown node.
func ReadModel(r io.Reader) (*Model, error) {
	var m Model
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// ReadModelFile reads a JSON model file.
func ReadModelFile(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadModel(f)
}

// Validate checks that node IDs are unique and every edge endpoint exists.
func (m *Model) Validate() error {
	ids := make(map[string]bool, len(m.Nodes))
	for _, n := range m.Nodes {
		if n.ID == "" {
			return fmt.Errorf("node with empty id")
		}
		if ids[n.ID] {
			return fmt.Errorf("duplicate node %s", n.ID)
		}
		ids[n.ID] = true
	}
	for _, e := range m.Edges {
		if !ids[e.Source] || !ids[e.Target] {
			return fmt.Errorf("edge %s references unknown node", e.Key())
		}
	}
	return nil
}
