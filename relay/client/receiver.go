package client

import (
	"context"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
	"github.com/tunnelvision/tunnelvision/lib/tensor"
	"github.com/tunnelvision/tunnelvision/relay/codec"
	"github.com/tunnelvision/tunnelvision/relay/common"
)

// IReceiver is the interface for a viewer client. A receiver registers a
// routing token with the relay and is handed every tensor whose payload
// frame carries that token.
type IReceiver interface {
	// Connect dials the relay and registers the configured routing token
	Connect(ctx context.Context) error

	// Next blocks until a complete tensor addressed to this receiver has
	// arrived. Text messages that are not headers for this receiver's
	// token are ignored; binary frames without a preceding header are
	// discarded since they cannot be interpreted.
	Next(ctx context.Context) (*tensor.Tensor, error)

	// Close performs a clean close handshake and releases the connection
	Close() error
}

// NewReceiver creates a new viewer client with the given config and codec
func NewReceiver(config common.ClientConfig, codec codec.IFrameCodec) IReceiver {
	return &receiver{
		config: config,
		codec:  codec,
	}
}

// receiver implements the IReceiver interface
type receiver struct {
	config common.ClientConfig
	codec  codec.IFrameCodec
	conn   *websocket.Conn
}

// --------------------------------------------------------------------------
// Interface Methods (docu see client.IReceiver)
// --------------------------------------------------------------------------

func (r *receiver) Connect(ctx context.Context) error {
	url := r.config.URL()

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", url, err)
	}

	// Register our routing token with the relay
	handshake, err := common.NewHandshake(r.config.Hash).Encode()
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to encode handshake: %v", err)
	}

	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetWriteDeadline(deadline); err != nil {
			conn.Close()
			return err
		}
	}

	if err := conn.WriteMessage(websocket.TextMessage, handshake); err != nil {
		conn.Close()
		return fmt.Errorf("failed to send handshake: %w", err)
	}

	Logger.Infof("Registered token %s at %s", r.config.Hash, url)

	r.conn = conn
	return nil
}

func (r *receiver) Next(ctx context.Context) (*tensor.Tensor, error) {
	if r.conn == nil {
		return nil, fmt.Errorf("receiver is not connected")
	}

	var header *common.Header

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if deadline, ok := ctx.Deadline(); ok {
			if err := r.conn.SetReadDeadline(deadline); err != nil {
				return nil, err
			}
		}

		msgType, data, err := r.conn.ReadMessage()
		if err != nil {
			return nil, fmt.Errorf("failed to read message: %w", err)
		}

		switch msgType {
		case websocket.TextMessage:
			// Headers for other tokens and rebroadcast handshakes are not ours
			h := &common.Header{}
			if err := r.codec.DecodeHeader(data, h); err != nil {
				continue
			}
			if h.Hash != "" && h.Hash != r.config.Hash {
				continue
			}
			header = h

		case websocket.BinaryMessage:
			if header == nil {
				Logger.Warningf("Discarding %d byte frame without header", len(data))
				continue
			}

			dtype, err := tensor.ParseDType(header.DType)
			if err != nil {
				return nil, fmt.Errorf("header declares %v", err)
			}

			// The relay strips the routing token before delivery
			t, err := tensor.New(header.Shape, dtype, data)
			if err != nil {
				return nil, fmt.Errorf("payload does not match header: %v", err)
			}
			return t, nil
		}
	}
}

func (r *receiver) Close() error {
	if r.conn == nil {
		return nil
	}

	closeMsg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = r.conn.WriteControl(websocket.CloseMessage, closeMsg, time.Now().Add(time.Second))

	err := r.conn.Close()
	r.conn = nil
	return err
}
