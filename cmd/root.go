package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tunnelvision/tunnelvision/cmd/send"
	"github.com/tunnelvision/tunnelvision/cmd/serve"
	"github.com/tunnelvision/tunnelvision/cmd/util"
)

const (
	Version = "0.3.0"
)

var (

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "tunnelvision",
		Short: "WebSocket tensor relay",
		Long: fmt.Sprintf(`tunnelvision (v%s)

A relay that moves numeric arrays from producers to viewers over
WebSocket. Producers send a self-describing header followed by raw
tensor bytes; the relay routes payloads to viewers by token.`, Version),
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of tunnelvision",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("tunnelvision v%s\n", Version)
		},
	}
)

func init() {
	// Add Commands
	RootCmd.AddCommand(serve.ServeCmd)
	RootCmd.AddCommand(send.SendCmd)
	RootCmd.AddCommand(versionCmd)

	// Add Flags
	key := "codec"
	RootCmd.PersistentFlags().String(key, "json", util.WrapString("framing codec to use (json, marker)"))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
