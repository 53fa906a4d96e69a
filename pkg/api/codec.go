// Package api defines the request and response messages exchanged with the
// splitledger RPC services. Messages are plain Go structs carried as JSON.
package api

import (
	"encoding/json"
	"fmt"
)

// CodecName is registered with connect in place of its protobuf JSON codec.
const CodecName = "json"

// JSONCodec marshals api messages with encoding/json. It satisfies
// connect.Codec.
type JSONCodec struct{}

// Name implements connect.Codec.
func (JSONCodec) Name() string { return CodecName }

// Marshal implements connect.Codec.
func (JSONCodec) Marshal(msg any) ([]byte, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %T: %w", msg, err)
	}
	return data, nil
}

// Unmarshal implements connect.Codec. An empty payload leaves msg at its
// zero value.
func (JSONCodec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, msg); err != nil {
		return fmt.Errorf("failed to unmarshal %T: %w", msg, err)
	}
	return nil
}
