// Package codec provides wire framing for tensor transmissions. It
// defines a common interface and two implementations for turning a header
// and a raw tensor buffer into the two messages that travel over a
// WebSocket connection.
//
// The package focuses on:
//   - A single, documented framing contract per codec
//   - Symmetric encode/decode with strict validation on the decode path
//   - Keeping the relay server independent of the framing choice
//
// Key Components:
//
//   - IFrameCodec: Core interface that all framing implementations must
//     satisfy.
//
//   - jsonCodecImpl: Plain JSON framing. The header is a bare JSON object
//     with shape, dtype and the routing token; the binary frame carries
//     the token bytes immediately followed by the raw tensor bytes. This
//     is the default and the only framing the relay can route, since the
//     token prefix is what the relay splits on.
//
//   - markerCodecImpl: Marker framing. The header is the literal four
//     characters "JSON" followed by a JSON object with only shape and
//     dtype; the binary frame is the bare tensor bytes. Useful for
//     point-to-point receivers that do not need routing.
//
// Thread Safety:
//
//	All codec implementations are stateless and safe for concurrent use
//	across multiple goroutines without additional synchronization.
package codec
