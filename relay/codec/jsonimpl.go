package codec

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/tunnelvision/tunnelvision/relay/common"
)

// NewJSONCodec creates a codec using the plain JSON framing convention:
// the header is a bare JSON object carrying shape, dtype and the routing
// token, and the binary frame is the token bytes followed by the raw
// tensor bytes.
func NewJSONCodec() IFrameCodec {
	return &jsonCodecImpl{}
}

// jsonCodecImpl implements the IFrameCodec interface using plain JSON headers
type jsonCodecImpl struct {
}

// --------------------------------------------------------------------------
// Interface Methods (docu see codec.IFrameCodec)
// --------------------------------------------------------------------------

func (c jsonCodecImpl) Name() string {
	return "json"
}

func (c jsonCodecImpl) EncodeHeader(h *common.Header) ([]byte, error) {
	if err := h.Validate(); err != nil {
		return nil, err
	}
	if h.Hash == "" {
		return nil, fmt.Errorf("json framing requires a routing token in the header")
	}
	return json.Marshal(h)
}

func (c jsonCodecImpl) DecodeHeader(b []byte, h *common.Header) error {
	if err := json.Unmarshal(b, h); err != nil {
		return fmt.Errorf("failed to decode header: %v", err)
	}
	return h.Validate()
}

func (c jsonCodecImpl) EncodePayload(token string, raw []byte) ([]byte, error) {
	if err := common.ValidateToken(token); err != nil {
		return nil, err
	}

	frame := make([]byte, 0, len(token)+len(raw))
	frame = append(frame, token...)
	frame = append(frame, raw...)
	return frame, nil
}

func (c jsonCodecImpl) DecodePayload(frame []byte, token string) ([]byte, error) {
	if len(frame) < len(token) {
		return nil, fmt.Errorf("frame of %d bytes is shorter than token", len(frame))
	}
	if !bytes.Equal(frame[:len(token)], []byte(token)) {
		return nil, fmt.Errorf("frame token prefix does not match %q", token)
	}
	return frame[len(token):], nil
}
