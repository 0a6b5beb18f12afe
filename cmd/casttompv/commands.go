package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/magmaskv/casttompv/internal/cast"
	"github.com/magmaskv/casttompv/internal/config"
	"github.com/magmaskv/casttompv/internal/debuglog"
	"github.com/magmaskv/casttompv/internal/device"
	"github.com/magmaskv/casttompv/internal/intent"
	"github.com/magmaskv/casttompv/internal/ui"
)

// Cast command flags
var (
	shareType   string
	openShell   bool
	callTimeout time.Duration
)

func init() {
	shareCmd.Flags().StringVar(&shareType, "type", intent.MIMETextPlain, "MIME type of the shared text")

	for _, c := range []*cobra.Command{shareCmd, viewCmd} {
		c.Flags().BoolVar(&openShell, "shell", false, "Open the interactive shell and cast from there")
	}
	for _, c := range []*cobra.Command{shareCmd, viewCmd, testCmd, testVideoCmd} {
		c.Flags().DurationVar(&callTimeout, "timeout", 0, "Connect and read timeout (default 10s for casts, 5s for tests)")
	}

	rootCmd.AddCommand(shareCmd)
	rootCmd.AddCommand(viewCmd)
	rootCmd.AddCommand(testCmd)
	rootCmd.AddCommand(testVideoCmd)
	rootCmd.AddCommand(shellCmd)
}

// shareCmd casts the first link found in shared text
var shareCmd = &cobra.Command{
	Use:   "share <text...>",
	Short: "Cast the first link found in some text",
	Long: `Share text with casttompv the way another app would.

The first occurrence of "http" starts the link and the next whitespace ends
it. Text without a link is reported as "No URL found".`,
	Example: `  # Cast a link pasted from a chat message
  casttompv share "check this out https://youtu.be/dQw4w9WgXcQ lol"

  # One-off receiver address
  casttompv share --host 10.0.0.5 --port 9000 https://example.com/v.mp4`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in := intent.Intent{Action: intent.ActionSend, Type: shareType, Text: strings.Join(args, " ")}
		return runIntent(cmd, in)
	},
}

// viewCmd casts a link opened with casttompv
var viewCmd = &cobra.Command{
	Use:   "view <url>",
	Short: "Cast a link opened with casttompv",
	Example: `  # Register as a URL handler that runs:
  casttompv view %u`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntent(cmd, intent.View(args[0]))
	},
}

var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Check that the receiver answers",
	Long: `Send an empty POST to /test on the receiver and report the status.
Nothing is played.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEndpoint(cmd, cast.EndpointTest)
	},
}

var testVideoCmd = &cobra.Command{
	Use:   "test-video",
	Short: "Ask the receiver to play its sample video",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEndpoint(cmd, cast.EndpointTestVideo)
	},
}

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Open the interactive shell",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShell(cmd, nil)
	},
}

func runShell(cmd *cobra.Command, in *intent.Intent) error {
	store, cfg, err := loadConfig()
	if err != nil {
		return err
	}

	return ui.Run(ui.Options{
		Store:  store,
		Config: cfg,
		Log:    newDebugLog(cfg),
		Intent: in,
	})
}

func runIntent(cmd *cobra.Command, in intent.Intent) error {
	if openShell {
		return runShell(cmd, &in)
	}

	_, cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newDebugLog(cfg)

	url, outcome := intent.Resolve(in)
	switch outcome {
	case intent.Found:
		req := cast.PlayRequest(url, device.Resolve(cfg.DeviceName))
		return send(cmd, cfg, log, req)
	case intent.NoURL:
		return fmt.Errorf("no video URL found")
	default:
		return fmt.Errorf("unsupported action %q", in.Action)
	}
}

func runEndpoint(cmd *cobra.Command, endpoint cast.Endpoint) error {
	_, cfg, err := loadConfig()
	if err != nil {
		return err
	}
	req := &cast.Request{Endpoint: endpoint, Info: device.Resolve(cfg.DeviceName)}
	return send(cmd, cfg, newDebugLog(cfg), req)
}

// send issues req, prints the outcome and returns an error for anything
// but a 200 reply.
func send(cmd *cobra.Command, cfg *config.Config, log *debuglog.Log, req *cast.Request) error {
	p := ui.NewPrinter(cmd.OutOrStdout())
	req.Timeout = callTimeout

	params := []ui.Detail{{Key: "Receiver", Value: cfg.Address()}}
	if req.Endpoint == cast.EndpointPlay {
		params = append(params, ui.Detail{Key: "URL", Value: req.URL})
	}
	params = append(params, ui.Detail{Key: "Device", Value: req.Name})
	p.PrintHeader(req.Endpoint.Title(), params...)

	client := cast.NewClient(log)
	res, err := client.Send(cmd.Context(), cfg, req)
	notice := cast.Describe(req, res, err)

	defer func() {
		if log.Enabled() {
			p.PrintDebugLog(log.Render())
		}
	}()

	if err != nil {
		p.PrintError(plainNotice(notice.Toast), err, hintLines(err))
		return fmt.Errorf("%s: %s", req.Endpoint, cast.GetShortErrorMessage(err))
	}

	details := []ui.Detail{
		{Key: "Status", Value: fmt.Sprintf("%d %s", res.StatusCode, res.Status)},
		{Key: "Time", Value: res.Duration.Round(time.Millisecond).String()},
	}
	if body := strings.TrimSpace(res.Body); body != "" {
		details = append(details, ui.Detail{Key: "Response", Value: body})
	}

	if !notice.Success {
		p.PrintError(plainNotice(notice.Status), res.Err(), hintLines(res.Err()))
		return fmt.Errorf("%s: %s", req.Endpoint, cast.GetShortErrorMessage(res.Err()))
	}

	p.PrintSuccess(plainNotice(firstLine(notice.Status)), details...)
	return nil
}

func hintLines(err error) []string {
	return strings.Split(cast.GetTroubleshootingHint(err), "\n")
}

// plainNotice drops the leading status emoji, which the boxes replace.
func plainNotice(s string) string {
	return strings.TrimSpace(strings.TrimLeft(s, "✅❌⚠️📡🔄🎬 "))
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}
