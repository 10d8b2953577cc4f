package common

import (
	"fmt"
	"strconv"
	"strings"
)

// --------------------------------------------------------------------------
// Relay server configuration struct
// --------------------------------------------------------------------------

// ServerConfig holds all configuration parameters for the relay server.
type ServerConfig struct {
	// Address the HTTP/WebSocket listener binds to (e.g. "0.0.0.0:8765")
	Endpoint string

	// Directory served as SPA fallback for non-API routes
	StaticDir string

	// Maximum size of a single WebSocket message in bytes
	MaxMessageBytes int64

	// Capacity of each subscriber's outgoing message buffer
	BroadcastBuffer int

	// Logging configuration
	LogLevel string
}

// String returns a formatted string representation of the configuration
func (c *ServerConfig) String() string {
	var sb strings.Builder

	// Create helper functions for consistent formatting
	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	addSection("Relay Server")
	addField("Endpoint", c.Endpoint)
	addField("Static Directory", c.StaticDir)
	addField("Max Message Size", fmt.Sprintf("%d MB", c.MaxMessageBytes/(1024*1024)))
	addField("Broadcast Buffer", strconv.Itoa(c.BroadcastBuffer))

	addSection("Logging")
	addField("Log Level", c.LogLevel)

	return sb.String()
}

// --------------------------------------------------------------------------
// Transmitter client configuration struct
// --------------------------------------------------------------------------

// ClientConfig holds all configuration parameters for the transmitter client.
type ClientConfig struct {
	// Target server
	Host string
	Port int

	// Routing token attached to each transmission
	Hash string

	// Wall clock timeout for the complete send sequence
	TimeoutSecond int
}

// URL builds the WebSocket endpoint URL for the configured server
func (c *ClientConfig) URL() string {
	return fmt.Sprintf("ws://%s:%d/ws", c.Host, c.Port)
}

// String returns a formatted string representation of the client configuration
func (c *ClientConfig) String() string {
	var sb strings.Builder

	// Create helper functions for consistent formatting
	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	addSection("Client Configuration")
	addField("Host", c.Host)
	addField("Port", strconv.Itoa(c.Port))
	addField("Hash", c.Hash)
	addField("Timeout", fmt.Sprintf("%d sec", c.TimeoutSecond))

	return sb.String()
}
