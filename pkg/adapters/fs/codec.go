package fs

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/aretw0/silo/pkg/core"
)

// Codec converts a store to and from its on-disk representation.
type Codec interface {
	// Encode renders the store as storage bytes.
	Encode(store *core.Store) ([]byte, error)
	// Decode parses storage bytes. Empty input is an error, not an empty
	// store, so a truncated file is treated as corruption.
	Decode(data []byte) (*core.Store, error)
}

// JSONCodec reads and writes the versioned JSON envelope. Decode also
// accepts the legacy layout, a bare entry array with no envelope around it.
// A legacy file keeps that layout on disk until the next successful persist
// rewrites it in the current envelope.
type JSONCodec struct{}

// NewJSONCodec creates a new JSON codec.
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{}
}

func (c *JSONCodec) Encode(store *core.Store) ([]byte, error) {
	return json.MarshalIndent(store, "", "  ")
}

func (c *JSONCodec) Decode(data []byte) (*core.Store, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("storage payload is empty")
	}

	if trimmed[0] == '[' {
		var entries []core.Entry
		if err := json.Unmarshal(trimmed, &entries); err != nil {
			return nil, fmt.Errorf("invalid legacy entry list: %w", err)
		}
		return &core.Store{Version: "1.0", Entries: entries}, nil
	}

	var store core.Store
	if err := json.Unmarshal(trimmed, &store); err != nil {
		return nil, fmt.Errorf("invalid storage payload: %w", err)
	}
	if store.Entries == nil {
		store.Entries = []core.Entry{}
	}
	return &store, nil
}
