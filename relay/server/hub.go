package server

import (
	"sync/atomic"

	"github.com/puzpuzpuz/xsync/v3"
	"github.com/tunnelvision/tunnelvision/relay/common"
)

var hubLogger = common.GetLogger("relay/hub")

// hubMessage is a single relayed message. Text messages fan out to every
// subscriber; binary messages are routed by their leading token at
// delivery time.
type hubMessage struct {
	msgType int
	data    []byte
}

// subscriber represents one connected peer from the hub's point of view
type subscriber struct {
	id   uint64
	ch   chan hubMessage
	done chan struct{}
}

// hub fans messages out to all connected peers and keeps the registry of
// routing tokens. Tokens map to the id of the connection that registered
// them, so binary payloads reach only their owner.
type hub struct {
	subscribers *xsync.MapOf[uint64, *subscriber]
	tokens      *xsync.MapOf[string, uint64]
	nextID      uint64
	buffer      int
}

// newHub creates a hub with the given per-subscriber buffer capacity
func newHub(buffer int) *hub {
	if buffer < 1 {
		buffer = 1
	}
	return &hub{
		subscribers: xsync.NewMapOf[uint64, *subscriber](),
		tokens:      xsync.NewMapOf[string, uint64](),
		buffer:      buffer,
	}
}

// subscribe adds a new peer to the hub and returns its subscription
func (h *hub) subscribe() *subscriber {
	sub := &subscriber{
		id:   atomic.AddUint64(&h.nextID, 1),
		ch:   make(chan hubMessage, h.buffer),
		done: make(chan struct{}),
	}
	h.subscribers.Store(sub.id, sub)
	return sub
}

// unsubscribe removes a peer and releases every token it registered.
// The subscription channel is never closed; the done channel stops the
// peer's writer instead, so a concurrent broadcast can not panic.
func (h *hub) unsubscribe(sub *subscriber) {
	h.subscribers.Delete(sub.id)
	h.tokens.Range(func(token string, owner uint64) bool {
		if owner == sub.id {
			h.tokens.Delete(token)
		}
		return true
	})
	close(sub.done)
}

// register claims a routing token for a connection. A later registration
// of the same token takes the token over.
func (h *hub) register(token string, id uint64) {
	h.tokens.Store(token, id)
}

// owner returns the connection id that registered the given token
func (h *hub) owner(token string) (uint64, bool) {
	return h.tokens.Load(token)
}

// broadcast delivers a message to every subscriber. Subscribers whose
// buffer is full lose the message instead of blocking the hub.
func (h *hub) broadcast(msg hubMessage) {
	h.subscribers.Range(func(_ uint64, sub *subscriber) bool {
		select {
		case sub.ch <- msg:
		default:
			hubLogger.Warningf("Subscriber %d is too slow, dropping %d byte message", sub.id, len(msg.data))
		}
		return true
	})
}

// routeBinary splits a binary frame into routing token and payload.
// Frames of TokenLength bytes or less carry no token and are not routable.
func routeBinary(data []byte) (token string, payload []byte, ok bool) {
	if len(data) <= common.TokenLength {
		return "", nil, false
	}
	return string(data[:common.TokenLength]), data[common.TokenLength:], true
}
