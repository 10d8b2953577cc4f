// Package cmd implements the command-line interface for the tunnelvision
// WebSocket tensor relay. It provides a hierarchical command structure
// with operations for running the relay server and transmitting to it.
//
// The package is organized into several subpackages:
//
//   - send: Commands for transmitting the demonstration tensor (and a
//     perf subcommand for throughput testing)
//   - serve: Commands for starting and configuring the relay server
//   - util: Shared utilities for command-line processing and configuration (internal use)
//
// See tunnelvision -help for a list of all commands.
package cmd
