package receiver

import (
	"fmt"
	"os/exec"
	"sync"

	"go.uber.org/zap"

	"github.com/magmaskv/casttompv/internal/logging"
)

// Player starts playback of a URL. Play returns once playback has been
// started; it does not wait for the player to exit.
type Player interface {
	Play(url string) error
}

// DefaultPlayerPath is the player binary used when none is configured.
const DefaultPlayerPath = "mpv"

// MPV launches an external player process per URL.
type MPV struct {
	Path string
	Args []string

	start func(*exec.Cmd) error
}

// NewMPV returns an MPV player for the binary at path with extra arguments.
func NewMPV(path string, args ...string) *MPV {
	if path == "" {
		path = DefaultPlayerPath
	}
	return &MPV{Path: path, Args: args}
}

// Check reports whether the player binary can be found.
func (p *MPV) Check() error {
	if _, err := exec.LookPath(p.Path); err != nil {
		return fmt.Errorf("player %q not found: %w", p.Path, err)
	}
	return nil
}

// Command builds the command that plays url. Options end before the URL so
// a URL starting with "-" is never read as a flag.
func (p *MPV) Command(url string) *exec.Cmd {
	args := append([]string{}, p.Args...)
	args = append(args, "--", url)
	return exec.Command(p.Path, args...)
}

func (p *MPV) Play(url string) error {
	cmd := p.Command(url)

	start := p.start
	if start == nil {
		start = (*exec.Cmd).Start
	}
	if err := start(cmd); err != nil {
		return fmt.Errorf("failed to start player: %w", err)
	}

	logging.Info("Player started",
		zap.String("player", p.Path),
		zap.String("url", url),
	)

	if cmd.Process != nil {
		go func() {
			if err := cmd.Wait(); err != nil {
				logging.Warn("Player exited with error", zap.String("url", url), zap.Error(err))
			}
		}()
	}
	return nil
}

// DryRun records URLs instead of playing them.
type DryRun struct {
	mu     sync.Mutex
	played []string
}

func (d *DryRun) Play(url string) error {
	d.mu.Lock()
	d.played = append(d.played, url)
	d.mu.Unlock()

	logging.Info("Dry run, not playing", zap.String("url", url))
	return nil
}

// Played returns the URLs received so far, oldest first.
func (d *DryRun) Played() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.played...)
}
