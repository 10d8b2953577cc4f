package serve

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	cmdUtil "github.com/tunnelvision/tunnelvision/cmd/util"
	"github.com/tunnelvision/tunnelvision/relay/common"
	"github.com/tunnelvision/tunnelvision/relay/server"
)

var (
	serveCmdConfig = &common.ServerConfig{}
	ServeCmd       = &cobra.Command{
		Use:     "serve",
		Short:   "Start the tunnelvision relay server",
		Long:    `Start the tunnelvision relay server with the specified configuration. The configuration can be set via command line flags or environment variables. The format of the environment variables is TV_<flag> (e.g. TV_LOG_LEVEL=debug)`,
		PreRunE: processConfig,
		RunE:    run,
	}
)

func init() {
	// initialize viper
	cobra.OnInitialize(cmdUtil.InitConfig)

	// add flags
	key := "endpoint"
	ServeCmd.PersistentFlags().String(key, "0.0.0.0:8765", cmdUtil.WrapString("The address on which the relay will listen"))

	key = "static-dir"
	ServeCmd.PersistentFlags().String(key, "./dist", cmdUtil.WrapString("Path to the SPA/dist directory served for non-API routes"))

	key = "max-message-mb"
	ServeCmd.PersistentFlags().Int(key, 256, cmdUtil.WrapString("Maximum size of a single WebSocket message in megabytes"))

	key = "broadcast-buffer"
	ServeCmd.PersistentFlags().Int(key, 1000, cmdUtil.WrapString("Capacity of each subscriber's outgoing message buffer - slow subscribers beyond this lose messages"))

	key = "log-level"
	ServeCmd.PersistentFlags().String(key, "info", cmdUtil.WrapString("LogLevel is the level at which logs will be output (debug, info, warn, error)"))
}

// processConfig reads the configuration from the command line flags and environment variables and converts them to the server configuration
func processConfig(cmd *cobra.Command, _ []string) error {
	// bind the flags to viper
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	// read the configuration from the command line flags and environment variables
	serveCmdConfig.Endpoint = viper.GetString("endpoint")
	serveCmdConfig.StaticDir = viper.GetString("static-dir")
	serveCmdConfig.MaxMessageBytes = int64(viper.GetInt("max-message-mb")) * 1024 * 1024
	serveCmdConfig.BroadcastBuffer = viper.GetInt("broadcast-buffer")
	serveCmdConfig.LogLevel = viper.GetString("log-level")

	// configure all loggers with the requested level
	return common.InitLoggers(*serveCmdConfig)
}

// run starts the relay server
func run(_ *cobra.Command, _ []string) error {
	s := server.NewRelayServer(*serveCmdConfig)
	return s.Serve()
}
