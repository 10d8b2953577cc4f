// Package common provides core data structures and utilities shared across
// the tunnelvision relay system. It defines wire records, configuration
// structures, and the logging implementation used by other packages.
//
// The package focuses on:
//   - Wire record definitions (Header, Handshake) for relay communication
//   - Routing token generation and validation
//   - Configuration structures for client and server components
//   - Custom named logger implementation with consistent formatting
//
// Key Components:
//
//   - Header: The text message describing shape, element type, and routing
//     token of the tensor payload that follows it. Carries validation of
//     the shape/dtype declaration.
//
//   - Handshake: Registration message sent by viewers to claim a routing
//     token. Parsing is strict so that tensor headers (which also arrive
//     as JSON text) are never mistaken for registrations.
//
//   - TokenLength: Routing tokens are fixed at 22 characters (the length
//     of a shortuuid). Binary relay frames are split at this boundary.
//
//   - ServerConfig: Configuration for the relay server, including the
//     listen endpoint, static asset directory, message size limits, and
//     broadcast buffering.
//
//   - ClientConfig: Configuration for the transmitter client, controlling
//     the target address, routing token, and timeout behavior.
//
//   - Logger: Named, leveled logger with a consistent line format shared
//     by all relay components.
package common
