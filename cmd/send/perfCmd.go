package send

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"testing"
	"time"

	gometrics "github.com/rcrowley/go-metrics"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tunnelvision/tunnelvision/cmd/util"
	"github.com/tunnelvision/tunnelvision/lib/tensor"
	"github.com/tunnelvision/tunnelvision/relay/client"
)

var (
	perfCmd = &cobra.Command{
		Use:     "perf",
		Short:   "Throughput testing tool for relay servers",
		RunE:    runPerf,
		PreRunE: processPerfConfig,
	}

	perfDims = tensor.DemoShape
)

func init() {
	// add flags
	key := "dims"
	perfCmd.Flags().String(key, "25,1,512,512,1", util.WrapString("Tensor shape to send, as a comma-separated dimension list"))
}

func processPerfConfig(cmd *cobra.Command, _ []string) error {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	// Parse the tensor shape
	parts := strings.Split(viper.GetString("dims"), ",")
	dims := make([]int, 0, len(parts))
	for _, part := range parts {
		dim, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return fmt.Errorf("invalid dimension %q: %v", part, err)
		}
		dims = append(dims, dim)
	}
	perfDims = dims

	return nil
}

func runPerf(_ *cobra.Command, _ []string) error {

	fmt.Println("Throughput testing tool for relay servers")

	// Print configuration
	fmt.Println()
	fmt.Println("Configuration:")
	fmt.Println(sendConfig.String())
	fmt.Printf("Shape: %v\n", perfDims)
	fmt.Println()

	payload, err := tensor.NewRandom(perfDims, tensor.DemoDType, tensor.DemoMax, time.Now().UnixNano())
	if err != nil {
		return err
	}
	tx := client.NewTransmitter(*sendConfig, sendCodec)

	timeout := time.Duration(sendConfig.TimeoutSecond) * time.Second
	timer := gometrics.NewTimer()

	fmt.Println("starting test...")

	result := testing.Benchmark(func(b *testing.B) {
		b.SetBytes(int64(payload.ByteLen()))
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			timer.Time(func() {
				ctx, cancel := context.WithTimeout(context.Background(), timeout)
				defer cancel()

				if err := tx.Send(ctx, payload); err != nil {
					b.Fatalf("send failed: %v", err)
				}
			})
		}
	})

	// Print results
	snapshot := timer.Snapshot()
	perSend := time.Duration(result.NsPerOp())
	mbPerSec := float64(payload.ByteLen()) / perSend.Seconds() / (1024 * 1024)

	fmt.Println()
	fmt.Printf("  %-12s: %d\n", "sends", result.N)
	fmt.Printf("  %-12s: %s\n", "per send", perSend)
	fmt.Printf("  %-12s: %.2f MB/s\n", "throughput", mbPerSec)
	fmt.Printf("  %-12s: %s\n", "p50", time.Duration(int64(snapshot.Percentile(0.5))))
	fmt.Printf("  %-12s: %s\n", "p95", time.Duration(int64(snapshot.Percentile(0.95))))
	fmt.Printf("  %-12s: %s\n", "p99", time.Duration(int64(snapshot.Percentile(0.99))))

	return nil
}
