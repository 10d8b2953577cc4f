// Package server implements the tunnelvision relay. It terminates
// WebSocket connections, rebroadcasts text messages to every connected
// peer, and routes token-prefixed binary payloads to the single peer that
// registered the token.
//
// The package focuses on:
//   - Goroutine-per-connection handling with a dedicated writer per peer
//   - A lock-free token registry and subscriber map (xsync)
//   - Backpressure by dropping messages to slow subscribers instead of
//     stalling the hub
//   - Prometheus metrics and static SPA serving on the same listener
//
// Key Components:
//
//   - RelayServer: HTTP server exposing /ws (the relay), /api/hello
//     (liveness), /metrics (Prometheus text format), and a static file
//     fallback with index.html SPA routing.
//
//   - hub: Fan-out of relayed messages plus the token registry. Binary
//     frames longer than common.TokenLength are split at that boundary on
//     delivery; the remainder reaches only the owner of the leading
//     token, with the token stripped.
//
// Lifecycle:
//
//	On upgrade each peer gets an initial ping, a hub subscription, and a
//	writer goroutine. The read loop rebroadcasts everything it receives;
//	a handshake text message additionally claims a routing token. When
//	the peer disconnects its tokens are released and the close code and
//	reason are logged.
//
// Thread Safety:
//
//	The hub maps are safe for concurrent use. Each connection has exactly
//	one writer goroutine; control frames are written via WriteControl,
//	which gorilla/websocket allows concurrently with a writer.
package server
