package common

import (
	"encoding/json"
	"fmt"

	"github.com/lithammer/shortuuid/v4"
)

// --------------------------------------------------------------------------
// Routing Tokens
// --------------------------------------------------------------------------

// TokenLength is the length of a routing token in bytes. Tokens are
// shortuuid strings, which are always 22 characters long. Binary relay
// frames longer than TokenLength are split at this boundary.
const TokenLength = 22

// NewDerivedToken deterministically derives a routing token from a seed
// string. The same seed always yields the same 22 character token.
func NewDerivedToken(seed string) string {
	return shortuuid.NewWithNamespace(seed)
}

// NewToken generates a fresh random 22 character routing token.
func NewToken() string {
	return shortuuid.New()
}

// ValidateToken checks that a token can be used as a routing prefix
func ValidateToken(token string) error {
	if len(token) == 0 {
		return fmt.Errorf("empty token")
	}
	if len(token) > TokenLength {
		return fmt.Errorf("token %q exceeds %d bytes", token, TokenLength)
	}
	return nil
}

// --------------------------------------------------------------------------
// Header Structure
// --------------------------------------------------------------------------

// Header is the text message describing the tensor that follows it.
// Shape and DType must match the payload; Hash carries the routing token
// and is omitted from the serialized form when empty.
type Header struct {
	Shape []int  `json:"shape"`
	DType string `json:"dtype"`
	Hash  string `json:"hash,omitempty"`
}

// NewHeader creates a new Header for the given shape, dtype and token
func NewHeader(shape []int, dtype string, hash string) *Header {
	return &Header{
		Shape: shape,
		DType: dtype,
		Hash:  hash,
	}
}

// NumElements returns the number of elements the declared shape holds
func (h *Header) NumElements() int {
	n := 1
	for _, dim := range h.Shape {
		n *= dim
	}
	return n
}

// Validate checks the header for structural consistency
func (h *Header) Validate() error {
	if len(h.Shape) == 0 {
		return fmt.Errorf("header has empty shape")
	}
	for i, dim := range h.Shape {
		if dim <= 0 {
			return fmt.Errorf("header shape dimension %d is %d, must be positive", i, dim)
		}
	}
	if h.DType == "" {
		return fmt.Errorf("header has empty dtype")
	}
	return nil
}

// --------------------------------------------------------------------------
// Handshake Structure
// --------------------------------------------------------------------------

// Handshake is sent by a viewer to register for a routing token. Payloads
// whose leading token matches the registered hash are delivered to the
// viewer with the token stripped.
type Handshake struct {
	Connected bool   `json:"connected"`
	Hash      string `json:"hash"`
}

// NewHandshake creates a new viewer registration handshake
func NewHandshake(hash string) *Handshake {
	return &Handshake{
		Connected: true,
		Hash:      hash,
	}
}

// Encode serializes the handshake as JSON
func (h *Handshake) Encode() ([]byte, error) {
	return json.Marshal(h)
}

// ParseHandshake decodes a text message as a viewer handshake. The second
// return value reports whether the message actually is one: both fields
// must be present so that tensor headers (which also arrive as JSON text)
// are not mistaken for registrations.
func ParseHandshake(data []byte) (*Handshake, bool) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, false
	}
	if _, ok := raw["connected"]; !ok {
		return nil, false
	}
	if _, ok := raw["hash"]; !ok {
		return nil, false
	}

	var hs Handshake
	if err := json.Unmarshal(data, &hs); err != nil {
		return nil, false
	}
	if hs.Hash == "" {
		return nil, false
	}
	return &hs, true
}
