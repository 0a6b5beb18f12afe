package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/magmaskv/casttompv/internal/device"
	"github.com/magmaskv/casttompv/internal/ui"
)

var deviceNameFlag string

func init() {
	configSetCmd.Flags().StringVar(&deviceNameFlag, "device-name", "", "Name sent to the receiver (empty uses the hostname)")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change the stored configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the stored configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		cfg, err := store.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		info := device.Resolve(cfg.DeviceName)
		p := ui.NewPrinter(cmd.OutOrStdout())
		p.PrintHeader("Configuration",
			ui.Detail{Key: "File", Value: store.Path()},
			ui.Detail{Key: "Receiver", Value: cfg.Address()},
			ui.Detail{Key: "Debug", Value: fmt.Sprintf("%t", cfg.DebugEnabled)},
			ui.Detail{Key: "Device name", Value: info.Name},
			ui.Detail{Key: "Device model", Value: info.Model},
			ui.Detail{Key: "OS version", Value: info.OSVersion},
		)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Store receiver address and preferences",
	Long: `Store the values given with --host, --port, --debug and --device-name.

Only flags that are given change; everything else keeps its stored value.
An empty host or port is rejected and nothing is written.`,
	Example: `  casttompv config set --host 192.168.1.20 --port 8080
  casttompv config set --debug
  casttompv config set --debug=false --device-name "Living Room Laptop"`,
	Args: cobra.NoArgs,
	RunE: runConfigSet,
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	cfg, err := store.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	flags := cmd.Flags()
	changed := false
	if flags.Changed("host") {
		cfg.Host = hostOverride
		changed = true
	}
	if flags.Changed("port") {
		cfg.Port = portOverride
		changed = true
	}
	if flags.Changed("debug") {
		cfg.DebugEnabled = debugFlag
		changed = true
	}
	if flags.Changed("device-name") {
		cfg.DeviceName = deviceNameFlag
		changed = true
	}
	if !changed {
		return fmt.Errorf("nothing to set, pass --host, --port, --debug or --device-name")
	}

	if err := store.Save(cfg); err != nil {
		return fmt.Errorf("configuration not saved: %w", err)
	}

	cfg.Normalize()
	ui.NewPrinter(cmd.OutOrStdout()).PrintSuccess(fmt.Sprintf("Saved: %s", cfg.Address()),
		ui.Detail{Key: "File", Value: store.Path()},
		ui.Detail{Key: "Debug", Value: fmt.Sprintf("%t", cfg.DebugEnabled)},
	)
	return nil
}
