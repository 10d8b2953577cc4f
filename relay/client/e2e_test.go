package client

import (
	"bytes"
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tunnelvision/tunnelvision/lib/tensor"
	"github.com/tunnelvision/tunnelvision/relay/codec"
	"github.com/tunnelvision/tunnelvision/relay/common"
	"github.com/tunnelvision/tunnelvision/relay/server"
)

// startRelay mounts a real relay server on an httptest listener
func startRelay(t *testing.T) common.ClientConfig {
	t.Helper()

	s := server.NewRelayServer(common.ServerConfig{
		StaticDir:       t.TempDir(),
		MaxMessageBytes: 256 * 1024 * 1024,
		BroadcastBuffer: 1000,
		LogLevel:        "error",
	})
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)

	return clientConfigFor(t, ts.URL)
}

// TestEndToEndDemoTransmission sends the full demonstration tensor
// through a live relay to a registered receiver
func TestEndToEndDemoTransmission(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping 13 MB end-to-end transfer in short mode")
	}

	config := startRelay(t)
	config.Hash = common.NewDerivedToken("seed")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Register the viewer before anything is transmitted
	rx := NewReceiver(config, codec.NewJSONCodec())
	if err := rx.Connect(ctx); err != nil {
		t.Fatalf("Receiver failed to connect: %v", err)
	}
	defer rx.Close()

	// Give the relay a moment to process the registration
	time.Sleep(100 * time.Millisecond)

	sent, err := tensor.NewDemo(99)
	if err != nil {
		t.Fatalf("Failed to create demo tensor: %v", err)
	}

	tx := NewTransmitter(config, codec.NewJSONCodec())
	if err := tx.Send(ctx, sent); err != nil {
		t.Fatalf("Send failed: %v", err)
	}

	got, err := rx.Next(ctx)
	if err != nil {
		t.Fatalf("Receiver did not get the tensor: %v", err)
	}

	if got.DType() != sent.DType() {
		t.Errorf("Received dtype %s, want %s", got.DType(), sent.DType())
	}
	if got.ByteLen() != sent.ByteLen() {
		t.Errorf("Received %d bytes, want %d", got.ByteLen(), sent.ByteLen())
	}
	if !bytes.Equal(got.Bytes(), sent.Bytes()) {
		t.Errorf("Received buffer differs from the transmitted one")
	}
}

// TestEndToEndSmallTensor exercises the same path with a small payload
func TestEndToEndSmallTensor(t *testing.T) {
	config := startRelay(t)
	config.Hash = common.NewDerivedToken("small")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	rx := NewReceiver(config, codec.NewJSONCodec())
	if err := rx.Connect(ctx); err != nil {
		t.Fatalf("Receiver failed to connect: %v", err)
	}
	defer rx.Close()

	time.Sleep(100 * time.Millisecond)

	sent, err := tensor.NewRandom([]int{3, 4}, tensor.Uint16, 2048, 5)
	if err != nil {
		t.Fatalf("Failed to create tensor: %v", err)
	}

	tx := NewTransmitter(config, codec.NewJSONCodec())
	if err := tx.Send(ctx, sent); err != nil {
		t.Fatalf("Send failed: %v", err)
	}

	got, err := rx.Next(ctx)
	if err != nil {
		t.Fatalf("Receiver did not get the tensor: %v", err)
	}
	if !bytes.Equal(got.Bytes(), sent.Bytes()) {
		t.Errorf("Received buffer differs from the transmitted one")
	}
}
