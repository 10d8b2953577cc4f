// Package client implements the WebSocket clients of the tunnelvision
// relay: the transmitter that pushes tensors in, and the receiver that
// registers a routing token and gets them back out.
//
// The package focuses on:
//   - One-shot tensor transmission with a clean close handshake
//   - Token-based registration and delivery for viewers
//   - Context-driven timeout for the complete send sequence
//
// Key Components:
//
//   - ITransmitter: Opens one outbound connection per Send, transmits the
//     codec-framed header and payload, and closes the connection with the
//     reason "Goodbye!". Failures propagate unchanged; there is no retry
//     and no partial-failure recovery.
//
//   - IReceiver: Dials the relay, registers a routing token via the
//     handshake message, and reassembles header/payload pairs into
//     tensors as they arrive.
//
// Usage Example:
//
//	config := common.ClientConfig{
//		Host:          "localhost",
//		Port:          8765,
//		Hash:          "dev",
//		TimeoutSecond: 5,
//	}
//
//	payload, _ := tensor.NewDemo(time.Now().UnixNano())
//
//	tx := client.NewTransmitter(config, codec.NewJSONCodec())
//
//	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
//	defer cancel()
//
//	if err := tx.Send(ctx, payload); err != nil {
//		// connection, framing and timeout errors all surface here
//	}
//
// Thread Safety:
//
//	Transmitters are stateless and safe for concurrent use. A receiver
//	owns a single connection and must not be shared between goroutines.
package client
