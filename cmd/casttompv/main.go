// Casttompv sends video links to a desktop player.
//
// It forwards a URL, or the first link found in shared text, to a receiver
// on the local network with one HTTP POST. The receiver hands it to mpv.
// The same binary can run that receiver.
//
// Usage:
//
//	casttompv [command] [flags]
//
// Running without arguments on a terminal opens the interactive shell.
// See 'casttompv --help' for available commands.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/magmaskv/casttompv/internal/config"
	"github.com/magmaskv/casttompv/internal/debuglog"
	"github.com/magmaskv/casttompv/internal/logging"
	"github.com/magmaskv/casttompv/internal/ui"
	"github.com/magmaskv/casttompv/internal/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	logging.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// Global flags
var (
	configPath   string
	hostOverride string
	portOverride string
	debugFlag    bool
	logLevel     string
)

var rootCmd = &cobra.Command{
	Use:   "casttompv",
	Short: "Send video links to mpv on your PC",
	Long: `Send a video link to a desktop player with one HTTP POST.

The receiver address is stored in the configuration file. Links can be
passed directly, or found in shared text such as "look at this
https://youtu.be/..." where the first http link is used.

If no command is specified and stdout is a terminal, the interactive
shell will launch automatically.`,
	Version:       version.Get().Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := logLevel
		if level == "" {
			level = os.Getenv(logging.LogLevelEnvVar)
		}
		return logging.Initialize(level)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if !ui.IsTerminal() {
			return cmd.Help()
		}
		return runShell(cmd, nil)
	},
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Configuration file (default: OS config dir, or $"+config.PathEnvVar+")")
	rootCmd.PersistentFlags().StringVar(&hostOverride, "host", "", "Receiver IP or hostname for this run")
	rootCmd.PersistentFlags().StringVar(&portOverride, "port", "", "Receiver port for this run")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Record and print the debug log for this run")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level on stderr (debug, info, warn, error)")

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "casttompv "+version.Full())
	},
}

// openStore returns the store selected by --config, or the default one.
func openStore() (*config.Store, error) {
	if configPath != "" {
		return config.NewStore(configPath), nil
	}
	return config.DefaultStore()
}

// loadConfig loads the persisted record and applies the one-run overrides
// from --host, --port and --debug. Overrides are never saved.
func loadConfig() (*config.Store, *config.Config, error) {
	store, err := openStore()
	if err != nil {
		return nil, nil, err
	}

	cfg, err := store.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration from %s: %w", store.Path(), err)
	}

	if hostOverride != "" {
		cfg.Host = hostOverride
	}
	if portOverride != "" {
		cfg.Port = portOverride
	}
	if debugFlag {
		cfg.DebugEnabled = true
	}

	return store, cfg, nil
}

func newDebugLog(cfg *config.Config) *debuglog.Log {
	return debuglog.New(cfg.DebugEnabled)
}
