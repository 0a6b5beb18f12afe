package discovery

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

// Receiver is a desktop player found on the local network.
type Receiver struct {
	// Instance is the advertised service instance name (e.g., "Living Room PC")
	Instance string

	// Host is the mDNS hostname (e.g., "desktop.local.")
	Host string

	// IP is the preferred address, IPv4 when the receiver has one
	IP string

	// Port is the HTTP port the receiver listens on
	Port int

	// Metadata holds the TXT record, e.g. "version=1.0"
	Metadata map[string]string

	// DiscoveredAt is when the receiver answered
	DiscoveredAt time.Time
}

func (r *Receiver) String() string {
	return fmt.Sprintf("%s (%s) at %s", r.Instance, r.Host, r.Address())
}

// Address returns ip:port, bracketing IPv6 addresses.
func (r *Receiver) Address() string {
	return net.JoinHostPort(r.IP, strconv.Itoa(r.Port))
}

// URLHost returns the IP in the form a URL authority needs: IPv6 addresses
// are bracketed so that host + ":" + port stays parseable.
func (r *Receiver) URLHost() string {
	if strings.Contains(r.IP, ":") {
		return "[" + r.IP + "]"
	}
	return r.IP
}

// PortString returns the port in the text form the configuration stores.
func (r *Receiver) PortString() string {
	return strconv.Itoa(r.Port)
}

// GetMetadata retrieves a metadata value by key, or returns empty string if not found
func (r *Receiver) GetMetadata(key string) string {
	if r.Metadata == nil {
		return ""
	}
	return r.Metadata[key]
}
