package receiver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/grandcat/zeroconf"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/magmaskv/casttompv/internal/discovery"
	"github.com/magmaskv/casttompv/internal/logging"
	"github.com/magmaskv/casttompv/internal/version"
)

const (
	// DefaultAddr listens on all interfaces on the sender's default port.
	DefaultAddr = ":8080"

	// DefaultSampleURL is played by /testVideo.
	DefaultSampleURL = "https://test-videos.co.uk/vids/bigbuckbunny/mp4/h264/360/Big_Buck_Bunny_360_10s_1MB.mp4"

	shutdownTimeout = 10 * time.Second
)

// Config holds the receiver configuration
type Config struct {
	Addr      string
	Instance  string // advertised name, hostname when empty
	Service   string // mDNS service type, discovery.ServiceType when empty
	Advertise bool
	SampleURL string
	Player    Player // DryRun when nil
}

// Server is the reference receiver
type Server struct {
	cfg    Config
	player Player
	hs     *http.Server
}

// New creates a Server, filling in defaults for unset fields.
func New(cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.Instance == "" {
		if host, err := os.Hostname(); err == nil && host != "" {
			cfg.Instance = host
		} else {
			cfg.Instance = "casttompv"
		}
	}
	if cfg.Service == "" {
		cfg.Service = discovery.ServiceType
	}
	if cfg.SampleURL == "" {
		cfg.SampleURL = DefaultSampleURL
	}

	s := &Server{cfg: cfg, player: cfg.Player}
	if s.player == nil {
		s.player = &DryRun{}
	}
	s.hs = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Run listens on the configured address and serves until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve runs the HTTP listener on ln, and the mDNS advertisement when
// enabled, until ctx is done or either of them fails.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	addr := ln.Addr().String()
	logging.Info("Starting receiver",
		zap.String("addr", addr),
		zap.String("instance", s.cfg.Instance),
		zap.Bool("advertise", s.cfg.Advertise),
	)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := s.hs.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	if s.cfg.Advertise {
		port := 0
		if tcpAddr, ok := ln.Addr().(*net.TCPAddr); ok {
			port = tcpAddr.Port
		}
		g.Go(func() error {
			return s.advertise(ctx, port)
		})
	}

	g.Go(func() error {
		<-ctx.Done()
		logging.Info("Shutting down receiver...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.hs.Shutdown(shutdownCtx); err != nil {
			logging.Warn("Shutdown timeout, forcing close", zap.Error(err))
			return s.hs.Close()
		}
		return nil
	})

	err := g.Wait()
	logging.Sync()
	return err
}

// advertise registers the receiver over mDNS until ctx is done.
func (s *Server) advertise(ctx context.Context, port int) error {
	txt := []string{
		"version=" + version.Get().Version,
		"path=/play",
	}

	zc, err := zeroconf.Register(s.cfg.Instance, s.cfg.Service, discovery.ServiceDomain, port, txt, nil)
	if err != nil {
		return fmt.Errorf("failed to advertise receiver: %w", err)
	}

	logging.Info("Advertising receiver",
		zap.String("instance", s.cfg.Instance),
		zap.String("service", s.cfg.Service),
		zap.Int("port", port),
	)

	<-ctx.Done()
	zc.Shutdown()
	return nil
}
