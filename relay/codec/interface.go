package codec

import "github.com/tunnelvision/tunnelvision/relay/common"

// IFrameCodec is the interface for all wire framing implementations.
// A codec turns a tensor transmission into exactly two messages: a text
// header describing the payload, and a binary frame carrying the raw
// tensor bytes.
type IFrameCodec interface {
	// Name returns the name of the framing convention (e.g. "json", "marker")
	Name() string

	// EncodeHeader serializes a header into the text message sent first
	EncodeHeader(h *common.Header) ([]byte, error)

	// DecodeHeader deserializes a text message into a header
	// It takes the raw message and a pointer to a Header as parameters
	DecodeHeader(b []byte, h *common.Header) error

	// EncodePayload builds the binary frame sent second from the routing
	// token and the raw tensor bytes
	EncodePayload(token string, raw []byte) ([]byte, error)

	// DecodePayload strips the framing from a binary frame and returns
	// the raw tensor bytes. The token must match the one used to encode.
	DecodePayload(frame []byte, token string) ([]byte, error)
}
