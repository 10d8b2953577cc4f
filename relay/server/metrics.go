package server

import (
	"github.com/VictoriaMetrics/metrics"
)

// Relay metrics, exposed in Prometheus text format on /metrics
var (
	connectionsActive = metrics.NewCounter(`tunnelvision_connections_active`)
	connectionsTotal  = metrics.NewCounter(`tunnelvision_connections_total`)

	textMessagesTotal   = metrics.NewCounter(`tunnelvision_messages_total{type="text"}`)
	binaryMessagesTotal = metrics.NewCounter(`tunnelvision_messages_total{type="binary"}`)

	relayedBytesTotal = metrics.NewCounter(`tunnelvision_relayed_bytes_total`)
	tokensRegistered  = metrics.NewCounter(`tunnelvision_tokens_registered_total`)
)
