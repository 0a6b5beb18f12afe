package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/magmaskv/casttompv/internal/logging"
	"github.com/magmaskv/casttompv/internal/receiver"
)

// Receive command flags
var (
	receiveAddr      string
	receivePlayer    string
	receivePlayerArg []string
	receiveDryRun    bool
	receiveAdvertise bool
	receiveName      string
	receiveSampleURL string
)

func init() {
	receiveCmd.Flags().StringVar(&receiveAddr, "addr", receiver.DefaultAddr, "Listen address")
	receiveCmd.Flags().StringVar(&receivePlayer, "player", receiver.DefaultPlayerPath, "Player binary")
	receiveCmd.Flags().StringArrayVar(&receivePlayerArg, "player-arg", nil, "Extra player argument (repeatable)")
	receiveCmd.Flags().BoolVar(&receiveDryRun, "dry-run", false, "Log links instead of playing them")
	receiveCmd.Flags().BoolVar(&receiveAdvertise, "advertise", false, "Advertise the receiver over mDNS")
	receiveCmd.Flags().StringVar(&receiveName, "name", "", "Advertised name (default: hostname)")
	receiveCmd.Flags().StringVar(&receiveSampleURL, "sample-url", receiver.DefaultSampleURL, "Video played by /testVideo")

	rootCmd.AddCommand(receiveCmd)
}

var receiveCmd = &cobra.Command{
	Use:   "receive",
	Short: "Run a receiver that plays links with mpv",
	Long: `Run the desktop side: accept /play, /test and /testVideo and start the
player for each link.

Use --dry-run to log links without playing them, and --advertise so that
'casttompv scan' can find this receiver. Requests are logged to stderr at
info level unless --log-level or $CASTTOMPV_LOG_LEVEL says otherwise.
Stops on Ctrl+C.`,
	Example: `  # Play in fullscreen
  casttompv receive --player-arg=--fs

  # Test setup without a player
  casttompv receive --dry-run --advertise --log-level debug`,
	Args: cobra.NoArgs,
	RunE: runReceive,
}

// receiveLogLevel picks --log-level, then the environment, then info.
func receiveLogLevel() string {
	if logLevel != "" {
		return logLevel
	}
	if level := os.Getenv(logging.LogLevelEnvVar); level != "" {
		return level
	}
	return "info"
}

func runReceive(cmd *cobra.Command, args []string) error {
	if err := logging.Initialize(receiveLogLevel()); err != nil {
		return err
	}

	var player receiver.Player
	if receiveDryRun {
		player = &receiver.DryRun{}
	} else {
		mpv := receiver.NewMPV(receivePlayer, receivePlayerArg...)
		if err := mpv.Check(); err != nil {
			return fmt.Errorf("%w (use --dry-run to run without a player)", err)
		}
		player = mpv
	}

	srv := receiver.New(receiver.Config{
		Addr:      receiveAddr,
		Instance:  receiveName,
		Advertise: receiveAdvertise,
		SampleURL: receiveSampleURL,
		Player:    player,
	})

	fmt.Fprintf(cmd.OutOrStdout(), "Receiver listening on %s (Ctrl+C to stop)\n", receiveAddr)
	return srv.Run(cmd.Context())
}
