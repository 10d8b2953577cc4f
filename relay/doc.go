// Package relay provides the WebSocket communication layer of
// tunnelvision. It connects tensor producers with viewers through a
// broadcasting relay server.
//
// The package is organized into several subpackages:
//
//   - common: Core data structures and utilities used across the relay
//     system, including the Header and Handshake records, routing tokens,
//     configuration structures, and logging.
//
//   - codec: Wire framing with pluggable implementations (plain JSON,
//     marker-prefixed JSON) for converting tensors and headers into the
//     two messages that travel over a connection.
//
//   - client: The transmitter that pushes tensors into the relay and the
//     receiver that registers a routing token and consumes them.
//
//   - server: The relay server that rebroadcasts text messages and routes
//     token-prefixed binary payloads to their registered viewers.
package relay
