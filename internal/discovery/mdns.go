package discovery

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/grandcat/zeroconf"
	"go.uber.org/zap"

	"github.com/magmaskv/casttompv/internal/logging"
)

const (
	// ServiceType is the mDNS service type receivers advertise
	ServiceType = "_casttompv._tcp"

	// ServiceDomain is the mDNS domain (typically "local.")
	ServiceDomain = "local."

	// DefaultScanTimeout is the default timeout for receiver discovery
	DefaultScanTimeout = 5 * time.Second

	// DefaultPort is used when an entry carries no port
	DefaultPort = 8080
)

// Scanner handles mDNS receiver discovery
type Scanner struct {
	// Timeout is the maximum time to wait for answers
	Timeout time.Duration

	// Service is the service type to browse, ServiceType when empty
	Service string

	// browse streams entries until ctx is done, then closes entries
	browse func(ctx context.Context, service string, entries chan *zeroconf.ServiceEntry) error
}

// NewScanner creates a new mDNS scanner with default settings
func NewScanner() *Scanner {
	return &Scanner{
		Timeout: DefaultScanTimeout,
		Service: ServiceType,
		browse:  browseMDNS,
	}
}

func browseMDNS(ctx context.Context, service string, entries chan *zeroconf.ServiceEntry) error {
	resolver, err := zeroconf.NewResolver(nil)
	if err != nil {
		return fmt.Errorf("failed to create mDNS resolver: %w", err)
	}
	if err := resolver.Browse(ctx, service, ServiceDomain, entries); err != nil {
		return fmt.Errorf("failed to browse for mDNS services: %w", err)
	}
	return nil
}

func (s *Scanner) start(ctx context.Context, entries chan *zeroconf.ServiceEntry) error {
	browse := s.browse
	if browse == nil {
		browse = browseMDNS
	}
	return browse(ctx, s.service(), entries)
}

func (s *Scanner) service() string {
	if s.Service == "" {
		return ServiceType
	}
	return s.Service
}

// Scan browses until the timeout or ctx expires and returns every receiver
// that answered, in arrival order.
func (s *Scanner) Scan(ctx context.Context) ([]*Receiver, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	entries := make(chan *zeroconf.ServiceEntry)
	receivers := make([]*Receiver, 0)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		seen := make(map[string]bool)
		for entry := range entries {
			r := parseServiceEntry(entry)
			if r == nil || seen[r.Instance+"|"+r.Address()] {
				continue
			}
			seen[r.Instance+"|"+r.Address()] = true
			logging.Debug("Receiver discovered",
				zap.String("instance", r.Instance),
				zap.String("address", r.Address()),
			)
			receivers = append(receivers, r)
		}
	}()

	if err := s.start(ctx, entries); err != nil {
		return nil, err
	}

	<-ctx.Done()
	// the resolver closes entries once ctx is done
	wg.Wait()

	return receivers, nil
}

// WaitFor browses until a receiver with the given instance name answers,
// returning as soon as it does. The name is matched case-insensitively.
func (s *Scanner) WaitFor(ctx context.Context, instance string) (*Receiver, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	entries := make(chan *zeroconf.ServiceEntry)
	found := make(chan *Receiver, 1)

	go func() {
		for entry := range entries {
			r := parseServiceEntry(entry)
			if r != nil && strings.EqualFold(r.Instance, instance) {
				found <- r
				cancel()
				return
			}
		}
	}()

	if err := s.start(ctx, entries); err != nil {
		return nil, err
	}

	select {
	case r := <-found:
		return r, nil
	case <-ctx.Done():
		select {
		case r := <-found:
			return r, nil
		default:
		}
		return nil, fmt.Errorf("receiver %q not found within %s", instance, s.Timeout)
	}
}

// parseServiceEntry converts a zeroconf entry to a Receiver.
// Returns nil when the entry has no usable address.
func parseServiceEntry(entry *zeroconf.ServiceEntry) *Receiver {
	if entry == nil {
		return nil
	}

	var ip string
	for _, addr := range entry.AddrIPv4 {
		ip = addr.String()
		break
	}
	if ip == "" && len(entry.AddrIPv6) > 0 {
		ip = entry.AddrIPv6[0].String()
	}
	if ip == "" {
		return nil
	}

	port := entry.Port
	if port == 0 {
		port = DefaultPort
	}

	metadata := make(map[string]string)
	for _, txt := range entry.Text {
		key, value, _ := strings.Cut(txt, "=")
		if key == "" {
			continue
		}
		metadata[key] = value
	}

	instance := entry.Instance
	if instance == "" {
		instance = strings.TrimSuffix(entry.HostName, ".")
	}

	return &Receiver{
		Instance:     instance,
		Host:         entry.HostName,
		IP:           ip,
		Port:         port,
		Metadata:     metadata,
		DiscoveredAt: time.Now(),
	}
}
