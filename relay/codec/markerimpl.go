package codec

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/tunnelvision/tunnelvision/relay/common"
)

// Marker is the fixed 4 character prefix of marker-framed headers
const Marker = "JSON"

// NewMarkerCodec creates a codec using the marker framing convention:
// the header is the literal 4 characters "JSON" followed by a JSON object
// carrying only shape and dtype, and the binary frame is the bare tensor
// bytes with no token prefix.
func NewMarkerCodec() IFrameCodec {
	return &markerCodecImpl{}
}

// markerCodecImpl implements the IFrameCodec interface using marker-prefixed headers
type markerCodecImpl struct {
}

// markerHeader is the serialized form of a marker-framed header. It never
// carries the routing token.
type markerHeader struct {
	Shape []int  `json:"shape"`
	DType string `json:"dtype"`
}

// --------------------------------------------------------------------------
// Interface Methods (docu see codec.IFrameCodec)
// --------------------------------------------------------------------------

func (c markerCodecImpl) Name() string {
	return "marker"
}

func (c markerCodecImpl) EncodeHeader(h *common.Header) ([]byte, error) {
	if err := h.Validate(); err != nil {
		return nil, err
	}

	body, err := json.Marshal(markerHeader{
		Shape: h.Shape,
		DType: h.DType,
	})
	if err != nil {
		return nil, err
	}

	msg := make([]byte, 0, len(Marker)+len(body))
	msg = append(msg, Marker...)
	msg = append(msg, body...)
	return msg, nil
}

func (c markerCodecImpl) DecodeHeader(b []byte, h *common.Header) error {
	if len(b) < len(Marker) || !bytes.HasPrefix(b, []byte(Marker)) {
		return fmt.Errorf("header does not start with %q marker", Marker)
	}

	var mh markerHeader
	if err := json.Unmarshal(b[len(Marker):], &mh); err != nil {
		return fmt.Errorf("failed to decode header: %v", err)
	}

	h.Shape = mh.Shape
	h.DType = mh.DType
	h.Hash = ""
	return h.Validate()
}

func (c markerCodecImpl) EncodePayload(_ string, raw []byte) ([]byte, error) {
	// Marker framing never prefixes the payload
	return raw, nil
}

func (c markerCodecImpl) DecodePayload(frame []byte, _ string) ([]byte, error) {
	return frame, nil
}
