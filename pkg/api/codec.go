// Package api holds the request and response messages of the tabsplit RPC
// services together with the codec that carries them.
package api

import (
	"encoding/json"
	"fmt"
)

// CodecName is registered under the same name Connect uses for protojson, so
// clients send and accept application/json.
const CodecName = "json"

// Codec marshals the plain message structs in this package as JSON.
type Codec struct{}

// Name implements connect.Codec.
func (Codec) Name() string { return CodecName }

// Marshal implements connect.Codec.
func (Codec) Marshal(msg any) ([]byte, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %T: %w", msg, err)
	}
	return data, nil
}

// Unmarshal implements connect.Codec. An empty body leaves msg at its zero value.
func (Codec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, msg); err != nil {
		return fmt.Errorf("failed to unmarshal %T: %w", msg, err)
	}
	return nil
}
