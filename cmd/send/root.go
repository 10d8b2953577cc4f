package send

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/tunnelvision/tunnelvision/cmd/util"
	"github.com/tunnelvision/tunnelvision/lib/tensor"
	"github.com/tunnelvision/tunnelvision/relay/client"
	"github.com/tunnelvision/tunnelvision/relay/codec"
	"github.com/tunnelvision/tunnelvision/relay/common"
)

var (
	sendConfig *common.ClientConfig
	sendCodec  codec.IFrameCodec

	// SendCmd represents the send command group
	SendCmd = &cobra.Command{
		Use:               "send",
		Short:             "Transmit the demonstration tensor to a relay server",
		PersistentPreRunE: setupSendClient,
		RunE:              runSend,
	}
)

func init() {
	// Initialize viper
	cobra.OnInitialize(util.InitConfig)

	// Add common client flags to the send command
	util.SetupClientFlags(SendCmd)

	// Add subcommands
	SendCmd.AddCommand(perfCmd)
}

// setupSendClient reads the client configuration shared by send and its subcommands
func setupSendClient(cmd *cobra.Command, _ []string) error {
	// Bind command flags to viper
	if err := util.BindCommandFlags(cmd); err != nil {
		return err
	}

	sendConfig = util.GetClientConfig()

	var err error
	sendCodec, err = util.GetCodec()
	return err
}

// runSend performs one demonstration transmission
func runSend(_ *cobra.Command, _ []string) error {
	payload, err := tensor.NewDemo(time.Now().UnixNano())
	if err != nil {
		return err
	}

	tx := client.NewTransmitter(*sendConfig, sendCodec)

	ctx := context.Background()
	if sendConfig.TimeoutSecond > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(sendConfig.TimeoutSecond)*time.Second)
		defer cancel()
	}

	if err := tx.Send(ctx, payload); err != nil {
		return err
	}

	fmt.Printf("sent %v %s tensor to %s\n", payload.Shape(), payload.DType(), sendConfig.URL())
	return nil
}
