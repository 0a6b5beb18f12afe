package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/magmaskv/casttompv/internal/discovery"
	"github.com/magmaskv/casttompv/internal/ui"
)

var (
	scanTimeout  time.Duration
	scanService  string
	scanSave     bool
	scanInstance string
)

func init() {
	scanCmd.Flags().DurationVar(&scanTimeout, "timeout", discovery.DefaultScanTimeout, "How long to listen for answers")
	scanCmd.Flags().StringVar(&scanService, "service", discovery.ServiceType, "mDNS service type to browse")
	scanCmd.Flags().BoolVar(&scanSave, "save", false, "Store the found receiver as host and port")
	scanCmd.Flags().StringVar(&scanInstance, "instance", "", "Pick the receiver with this name (with --save)")

	rootCmd.AddCommand(scanCmd)
}

type receiverScanner interface {
	Scan(ctx context.Context) ([]*discovery.Receiver, error)
	WaitFor(ctx context.Context, instance string) (*discovery.Receiver, error)
}

// newScanner is replaced in tests.
var newScanner = func(timeout time.Duration, service string) receiverScanner {
	scanner := discovery.NewScanner()
	scanner.Timeout = timeout
	scanner.Service = service
	return scanner
}

// scanCmd discovers receivers on the network
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Find receivers on the local network",
	Long: `Browse mDNS for receivers started with 'casttompv receive --advertise'.

With --save, the receiver found is stored as host and port. When more than
one answers, choose one with --instance; the scan then stops as soon as that
receiver answers.`,
	Example: `  casttompv scan
  casttompv scan --timeout 10s
  casttompv scan --save --instance "Living Room PC"`,
	Args: cobra.NoArgs,
	RunE: runScan,
}

func runScan(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	scanner := newScanner(scanTimeout, scanService)

	if scanSave && scanInstance != "" {
		fmt.Fprintf(out, "Waiting for %q (timeout: %s)...\n\n", scanInstance, scanTimeout)
		chosen, err := scanner.WaitFor(cmd.Context(), scanInstance)
		if err != nil {
			return fmt.Errorf("scan failed: %w", err)
		}
		return saveReceiver(out, chosen)
	}

	fmt.Fprintf(out, "Scanning for receivers (timeout: %s)...\n\n", scanTimeout)

	receivers, err := scanner.Scan(cmd.Context())
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if len(receivers) == 0 {
		fmt.Fprintln(out, "No receivers found.")
		fmt.Fprintln(out, "\nTroubleshooting:")
		fmt.Fprintln(out, "  - Start the receiver with 'casttompv receive --advertise'")
		fmt.Fprintln(out, "  - Check that both machines are on the same network")
		fmt.Fprintln(out, "  - Allow mDNS (UDP 5353) through the firewall")
		fmt.Fprintln(out, "  - Try increasing --timeout for slower networks")
		return nil
	}

	fmt.Fprintf(out, "Found %d receiver(s):\n\n", len(receivers))
	for i, r := range receivers {
		fmt.Fprintf(out, "%d. %s\n", i+1, r.Instance)
		fmt.Fprintf(out, "   Host:    %s\n", r.Host)
		fmt.Fprintf(out, "   Address: %s\n", r.Address())
		if v := r.GetMetadata("version"); v != "" {
			fmt.Fprintf(out, "   Version: %s\n", v)
		}
		fmt.Fprintln(out)
	}

	if !scanSave {
		fmt.Fprintln(out, "Use 'casttompv scan --save' to store a receiver")
		return nil
	}

	chosen, err := pickReceiver(receivers, scanInstance)
	if err != nil {
		return err
	}
	return saveReceiver(out, chosen)
}

// saveReceiver stores r as the configured host and port.
func saveReceiver(out io.Writer, r *discovery.Receiver) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	cfg, err := store.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	cfg.Host = r.URLHost()
	cfg.Port = r.PortString()
	if err := store.Save(cfg); err != nil {
		return fmt.Errorf("configuration not saved: %w", err)
	}

	ui.NewPrinter(out).PrintSuccess("Saved: "+cfg.Address(), ui.Detail{Key: "Receiver", Value: r.Instance})
	return nil
}

// pickReceiver returns the receiver to store: the one named instance, or
// the only one found.
func pickReceiver(receivers []*discovery.Receiver, instance string) (*discovery.Receiver, error) {
	if instance != "" {
		for _, r := range receivers {
			if strings.EqualFold(r.Instance, instance) {
				return r, nil
			}
		}
		return nil, fmt.Errorf("no receiver named %q found", instance)
	}

	if len(receivers) != 1 {
		return nil, fmt.Errorf("found %d receivers, choose one with --instance", len(receivers))
	}
	return receivers[0], nil
}
