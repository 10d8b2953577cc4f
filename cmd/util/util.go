package util

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tunnelvision/tunnelvision/relay/codec"
	"github.com/tunnelvision/tunnelvision/relay/common"
)

const (
	// Wrap is the number of characters to Wrap the help text at
	Wrap int = 50
)

// WrapString wraps a string at Wrap characters
func WrapString(text string) string {
	var wrappedLines []string
	var currentLine strings.Builder
	lineWidth := 0

	for _, word := range strings.Fields(text) {
		wordWidth := len(word)

		// Check if we need to wrap
		if lineWidth > 0 && lineWidth+1+wordWidth > Wrap {
			wrappedLines = append(wrappedLines, currentLine.String())
			currentLine.Reset()
			lineWidth = 0
		}

		// Add space before word (if not first word on line)
		if lineWidth > 0 {
			currentLine.WriteString(" ")
			lineWidth++
		}

		// Add the word
		currentLine.WriteString(word)
		lineWidth += wordWidth
	}

	// Add any remaining text
	if currentLine.Len() > 0 {
		wrappedLines = append(wrappedLines, currentLine.String())
	}

	return strings.Join(wrappedLines, "\n")
}

// SetupClientFlags adds common transmitter connection flags to a command
func SetupClientFlags(cmd *cobra.Command) {
	key := "host"
	cmd.PersistentFlags().String(key, "localhost", WrapString("The host of the relay server"))

	key = "port"
	cmd.PersistentFlags().Int(key, 8765, WrapString("The port of the relay server"))

	key = "hash"
	cmd.PersistentFlags().String(key, "dev", WrapString("Routing token to attach to the transmission"))

	key = "seed"
	cmd.PersistentFlags().String(key, "", WrapString("Derive the routing token from this seed string instead of using --hash"))

	key = "timeout"
	cmd.PersistentFlags().Int(key, 5, WrapString("Wall clock timeout in seconds for the complete send sequence"))
}

// InitConfig initializes configuration from environment variables
func InitConfig() {
	// load env files
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	// initialize viper
	viper.SetEnvPrefix("tv")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match
}

// GetClientConfig reads client configuration from viper. When a seed is
// configured the routing token is derived from it, otherwise the --hash
// value is used as supplied.
func GetClientConfig() *common.ClientConfig {
	hash := viper.GetString("hash")
	if seed := viper.GetString("seed"); seed != "" {
		hash = common.NewDerivedToken(seed)
	}

	return &common.ClientConfig{
		Host:          viper.GetString("host"),
		Port:          viper.GetInt("port"),
		Hash:          hash,
		TimeoutSecond: viper.GetInt("timeout"),
	}
}

// GetCodec creates a frame codec based on configuration
func GetCodec() (codec.IFrameCodec, error) {
	switch viper.GetString("codec") {
	case "json":
		return codec.NewJSONCodec(), nil
	case "marker":
		return codec.NewMarkerCodec(), nil
	default:
		return nil, fmt.Errorf("invalid codec %s", viper.GetString("codec"))
	}
}

// BindCommandFlags binds a command's flags to viper
func BindCommandFlags(cmd *cobra.Command) error {
	return viper.BindPFlags(cmd.Flags())
}
