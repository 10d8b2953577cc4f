package server

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/VictoriaMetrics/metrics"
	"github.com/gorilla/websocket"
	"github.com/tunnelvision/tunnelvision/relay/common"
)

var Logger = common.GetLogger("relay")

const (
	// writeWait is the deadline for a single outgoing message
	writeWait = 10 * time.Second
)

// NewRelayServer creates a new relay server
// It takes a server config as parameter
//
// Usage:
//
//	s := server.NewRelayServer(config)
//
//	if err := s.Serve(); err != nil {
//		panic(err)
//	}
func NewRelayServer(config common.ServerConfig) *RelayServer {
	return &RelayServer{
		config: config,
		hub:    newHub(config.BroadcastBuffer),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  64 * 1024,
			WriteBufferSize: 64 * 1024,
			// The relay fronts arbitrary local producers and viewers
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// RelayServer accepts WebSocket connections, rebroadcasts text messages to
// every peer and routes token-prefixed binary payloads to the peer that
// registered the token.
type RelayServer struct {
	config   common.ServerConfig
	hub      *hub
	upgrader websocket.Upgrader
}

// Serve starts the HTTP listener and blocks until it fails
func (s *RelayServer) Serve() error {
	Logger.Infof("Created relay server")
	Logger.Infof(s.config.String())

	Logger.Infof("Starting relay server on %s", s.config.Endpoint)
	return http.ListenAndServe(s.config.Endpoint, s.Handler())
}

// Handler builds the HTTP handler tree. Exposed separately so tests can
// mount the relay on an httptest server.
func (s *RelayServer) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/hello", s.handleHello)
	mux.HandleFunc("GET /ws", s.handleWS)
	mux.HandleFunc("GET /metrics", func(w http.ResponseWriter, _ *http.Request) {
		metrics.WritePrometheus(w, true)
	})
	mux.HandleFunc("/", s.handleStatic)

	return corsMiddleware(mux)
}

// --------------------------------------------------------------------------
// HTTP Handlers
// --------------------------------------------------------------------------

// handleHello is a trivial liveness endpoint
func (s *RelayServer) handleHello(w http.ResponseWriter, _ *http.Request) {
	fmt.Fprint(w, "Hello, Client!")
}

// handleStatic serves the SPA directory and falls back to index.html for
// client-side routes
func (s *RelayServer) handleStatic(w http.ResponseWriter, r *http.Request) {
	path := filepath.Join(s.config.StaticDir, filepath.Clean("/"+r.URL.Path))

	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		http.ServeFile(w, r, path)
		return
	}

	index := filepath.Join(s.config.StaticDir, "index.html")
	content, err := os.ReadFile(index)
	if err != nil {
		http.Error(w, "index.html not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(content)
}

// handleWS upgrades the connection and hands it to the relay loop
func (s *RelayServer) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		Logger.Errorf("Upgrade failed for %s: %v", r.RemoteAddr, err)
		return
	}

	Logger.Infof("`%s` at %s connected", userAgent(r), r.RemoteAddr)
	go s.handleConn(conn, r.RemoteAddr)
}

// --------------------------------------------------------------------------
// Connection Handling
// --------------------------------------------------------------------------

// handleConn runs the read loop for one connection and spawns its writer
func (s *RelayServer) handleConn(conn *websocket.Conn, who string) {
	defer conn.Close()

	conn.SetReadLimit(s.config.MaxMessageBytes)

	// Initial ping so dead peers surface early
	if err := conn.WriteControl(websocket.PingMessage, []byte{1, 2, 3}, time.Now().Add(writeWait)); err != nil {
		Logger.Errorf("Failed to ping %s: %v", who, err)
		return
	}

	connectionsActive.Inc()
	connectionsTotal.Inc()
	defer connectionsActive.Dec()

	sub := s.hub.subscribe()
	defer s.hub.unsubscribe(sub)

	// Writer goroutine: drains the subscription and applies binary routing
	go s.writeLoop(conn, sub)

	// Read loop
	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			var closeErr *websocket.CloseError
			if errors.As(err, &closeErr) {
				Logger.Infof("%s closed: %d %q", who, closeErr.Code, closeErr.Text)
			} else {
				Logger.Infof("%s disconnected: %v", who, err)
			}
			return
		}

		switch msgType {
		case websocket.TextMessage:
			textMessagesTotal.Inc()

			// Viewer registrations claim a routing token before the
			// text is rebroadcast
			if hs, ok := common.ParseHandshake(data); ok {
				s.hub.register(hs.Hash, sub.id)
				tokensRegistered.Inc()
				Logger.Debugf("%s registered token %s", who, hs.Hash)
			}
			s.hub.broadcast(hubMessage{msgType: websocket.TextMessage, data: data})

		case websocket.BinaryMessage:
			binaryMessagesTotal.Inc()
			s.hub.broadcast(hubMessage{msgType: websocket.BinaryMessage, data: data})
		}
	}
}

// writeLoop delivers hub messages to one peer. Binary frames are split at
// the token boundary and delivered, token stripped, only to the peer that
// registered the token. Unroutable binary frames are dropped.
func (s *RelayServer) writeLoop(conn *websocket.Conn, sub *subscriber) {
	for {
		select {
		case <-sub.done:
			return
		case msg := <-sub.ch:
			var out []byte

			switch msg.msgType {
			case websocket.TextMessage:
				out = msg.data

			case websocket.BinaryMessage:
				token, payload, ok := routeBinary(msg.data)
				if !ok {
					continue
				}
				if owner, found := s.hub.owner(token); !found || owner != sub.id {
					continue
				}
				out = payload
			}

			if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := conn.WriteMessage(msg.msgType, out); err != nil {
				return
			}
			relayedBytesTotal.Add(len(out))
		}
	}
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// userAgent extracts the peer's user agent for connection logging
func userAgent(r *http.Request) string {
	if ua := r.UserAgent(); ua != "" {
		return ua
	}
	return "Unknown"
}

// corsMiddleware allows any origin to issue GET requests
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", http.MethodGet)
		next.ServeHTTP(w, r)
	})
}
