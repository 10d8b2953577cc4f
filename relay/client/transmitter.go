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

var Logger = common.GetLogger("client")

// CloseReason is the close reason sent after a completed transmission
const CloseReason = "Goodbye!"

// ITransmitter is the interface for the demonstration transmitter
type ITransmitter interface {
	// Send opens one connection to the configured server, transmits the
	// header and the payload frame for the given tensor, and closes the
	// connection. Any failure propagates to the caller unchanged; there
	// is no retry. The whole sequence runs under the given context.
	Send(ctx context.Context, t *tensor.Tensor) error
}

// NewTransmitter creates a new transmitter
// It takes a client config and a frame codec as parameters
//
// Usage:
//
//	tx := client.NewTransmitter(config, codec.NewJSONCodec())
//
//	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
//	defer cancel()
//
//	if err := tx.Send(ctx, payload); err != nil {
//		panic(err)
//	}
func NewTransmitter(config common.ClientConfig, codec codec.IFrameCodec) ITransmitter {
	return &transmitter{
		config: config,
		codec:  codec,
	}
}

// transmitter implements the ITransmitter interface on top of a WebSocket
// connection. Each Send uses a fresh connection.
type transmitter struct {
	config common.ClientConfig
	codec  codec.IFrameCodec
}

// --------------------------------------------------------------------------
// Interface Methods (docu see client.ITransmitter)
// --------------------------------------------------------------------------

func (t *transmitter) Send(ctx context.Context, payload *tensor.Tensor) error {
	url := t.config.URL()

	// Encode both messages up front so a framing error never opens a connection
	header := common.NewHeader(payload.Shape(), string(payload.DType()), t.config.Hash)
	headerMsg, err := t.codec.EncodeHeader(header)
	if err != nil {
		return fmt.Errorf("failed to encode header: %v", err)
	}

	frame, err := t.codec.EncodePayload(t.config.Hash, payload.Bytes())
	if err != nil {
		return fmt.Errorf("failed to encode payload: %v", err)
	}

	// Establish the connection
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", url, err)
	}
	defer conn.Close()

	// Propagate the context deadline to the write path
	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetWriteDeadline(deadline); err != nil {
			return err
		}
	}

	Logger.Debugf("Connected to %s using %s framing", url, t.codec.Name())

	// Send the header first
	if err := conn.WriteMessage(websocket.TextMessage, headerMsg); err != nil {
		return fmt.Errorf("failed to send header: %w", err)
	}

	// Send the payload frame
	if err := conn.WriteMessage(websocket.BinaryMessage, frame); err != nil {
		return fmt.Errorf("failed to send payload: %w", err)
	}

	Logger.Infof("Sent %v %s tensor (%d bytes) to %s",
		payload.Shape(), payload.DType(), len(frame), url)

	// Close the connection cleanly
	closeMsg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, CloseReason)
	closeDeadline := time.Now().Add(time.Second)
	if deadline, ok := ctx.Deadline(); ok && deadline.Before(closeDeadline) {
		closeDeadline = deadline
	}
	if err := conn.WriteControl(websocket.CloseMessage, closeMsg, closeDeadline); err != nil {
		return fmt.Errorf("failed to close connection: %w", err)
	}

	return nil
}
