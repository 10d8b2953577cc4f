package codec

import (
	"bytes"
	"encoding/json"
	"reflect"
	"testing"

	"github.com/tunnelvision/tunnelvision/lib/tensor"
	"github.com/tunnelvision/tunnelvision/relay/common"
)

// testCodecs is a map of codec name to factory function
var testCodecs = map[string]func() IFrameCodec{
	"JSON":   NewJSONCodec,
	"Marker": NewMarkerCodec,
}

// TestHeaderRoundTrip tests that headers survive encode/decode with each codec
func TestHeaderRoundTrip(t *testing.T) {
	for name, factory := range testCodecs {
		t.Run(name, func(t *testing.T) {
			c := factory()

			h := common.NewHeader([]int{25, 1, 512, 512, 1}, "uint16", "dev")
			data, err := c.EncodeHeader(h)
			if err != nil {
				t.Fatalf("Failed to encode header: %v", err)
			}

			var result common.Header
			if err := c.DecodeHeader(data, &result); err != nil {
				t.Fatalf("Failed to decode header: %v", err)
			}

			if !reflect.DeepEqual(result.Shape, h.Shape) {
				t.Errorf("Shape after round trip = %v, want %v", result.Shape, h.Shape)
			}
			if result.DType != h.DType {
				t.Errorf("DType after round trip = %q, want %q", result.DType, h.DType)
			}

			// Only the json framing carries the token in the header
			if c.Name() == "json" && result.Hash != h.Hash {
				t.Errorf("Hash after round trip = %q, want %q", result.Hash, h.Hash)
			}
			if c.Name() == "marker" && result.Hash != "" {
				t.Errorf("Marker framing carried a hash: %q", result.Hash)
			}
		})
	}
}

// TestJSONHeaderFormat tests the exact serialized form of the json framing
func TestJSONHeaderFormat(t *testing.T) {
	c := NewJSONCodec()

	data, err := c.EncodeHeader(common.NewHeader([]int{2, 3}, "uint16", "abc"))
	if err != nil {
		t.Fatalf("Failed to encode header: %v", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Header is not valid JSON: %v", err)
	}

	for _, key := range []string{"shape", "dtype", "hash"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("Header is missing key %q: %s", key, data)
		}
	}
}

// TestMarkerHeaderFormat tests that marker headers are the 4 character
// marker followed by JSON containing exactly the keys shape and dtype
func TestMarkerHeaderFormat(t *testing.T) {
	c := NewMarkerCodec()

	data, err := c.EncodeHeader(common.NewHeader([]int{25, 1, 512, 512, 1}, "uint16", "ignored"))
	if err != nil {
		t.Fatalf("Failed to encode header: %v", err)
	}

	if !bytes.HasPrefix(data, []byte("JSON")) {
		t.Fatalf("Header does not start with the JSON marker: %s", data)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data[4:], &raw); err != nil {
		t.Fatalf("Header body is not valid JSON: %v", err)
	}

	if len(raw) != 2 {
		t.Errorf("Header body has %d keys, want exactly 2: %s", len(raw), data[4:])
	}
	for _, key := range []string{"shape", "dtype"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("Header body is missing key %q: %s", key, data[4:])
		}
	}
}

// TestJSONPayloadLength tests that the json payload frame is the token
// followed by the raw tensor bytes
func TestJSONPayloadLength(t *testing.T) {
	c := NewJSONCodec()
	token := common.NewDerivedToken("seed")

	payload, err := tensor.NewDemo(1)
	if err != nil {
		t.Fatalf("Failed to create demo tensor: %v", err)
	}

	frame, err := c.EncodePayload(token, payload.Bytes())
	if err != nil {
		t.Fatalf("Failed to encode payload: %v", err)
	}

	want := len(token) + 25*1*512*512*1*2
	if len(frame) != want {
		t.Errorf("Frame length = %d, want %d", len(frame), want)
	}
	if !bytes.HasPrefix(frame, []byte(token)) {
		t.Errorf("Frame does not start with the token")
	}

	raw, err := c.DecodePayload(frame, token)
	if err != nil {
		t.Fatalf("Failed to decode payload: %v", err)
	}
	if !bytes.Equal(raw, payload.Bytes()) {
		t.Errorf("Decoded payload differs from the original buffer")
	}
}

// TestMarkerPayloadBare tests that the marker framing never prefixes the payload
func TestMarkerPayloadBare(t *testing.T) {
	c := NewMarkerCodec()
	raw := []byte{1, 2, 3, 4}

	frame, err := c.EncodePayload("", raw)
	if err != nil {
		t.Fatalf("Failed to encode payload: %v", err)
	}
	if !bytes.Equal(frame, raw) {
		t.Errorf("Frame = %v, want bare payload %v", frame, raw)
	}

	decoded, err := c.DecodePayload(frame, "")
	if err != nil {
		t.Fatalf("Failed to decode payload: %v", err)
	}
	if !bytes.Equal(decoded, raw) {
		t.Errorf("Decoded payload = %v, want %v", decoded, raw)
	}
}

// TestDecodeErrors tests that malformed input is rejected
func TestDecodeErrors(t *testing.T) {
	jsonCodec := NewJSONCodec()
	markerCodec := NewMarkerCodec()

	var h common.Header
	if err := jsonCodec.DecodeHeader([]byte("not json"), &h); err == nil {
		t.Errorf("json DecodeHeader accepted garbage")
	}
	if err := jsonCodec.DecodeHeader([]byte(`{"shape": [], "dtype": "uint16"}`), &h); err == nil {
		t.Errorf("json DecodeHeader accepted empty shape")
	}
	if err := markerCodec.DecodeHeader([]byte(`{"shape": [2], "dtype": "uint16"}`), &h); err == nil {
		t.Errorf("marker DecodeHeader accepted a header without the marker")
	}
	if err := markerCodec.DecodeHeader([]byte("JSO"), &h); err == nil {
		t.Errorf("marker DecodeHeader accepted a truncated message")
	}

	if _, err := jsonCodec.DecodePayload([]byte("ab"), "abcdef"); err == nil {
		t.Errorf("json DecodePayload accepted a frame shorter than the token")
	}
	if _, err := jsonCodec.DecodePayload([]byte("xyz123"), "abc"); err == nil {
		t.Errorf("json DecodePayload accepted a mismatched token prefix")
	}
}

// TestEncodeErrors tests that invalid headers and tokens are rejected
func TestEncodeErrors(t *testing.T) {
	jsonCodec := NewJSONCodec()

	if _, err := jsonCodec.EncodeHeader(common.NewHeader([]int{2}, "uint16", "")); err == nil {
		t.Errorf("json EncodeHeader accepted an empty token")
	}
	if _, err := jsonCodec.EncodeHeader(common.NewHeader(nil, "uint16", "dev")); err == nil {
		t.Errorf("json EncodeHeader accepted an empty shape")
	}
	if _, err := jsonCodec.EncodePayload("", []byte{1}); err == nil {
		t.Errorf("json EncodePayload accepted an empty token")
	}
}
