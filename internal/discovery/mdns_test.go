package discovery

import (
	"context"
	"errors"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/grandcat/zeroconf"
)

func newEntry(instance, host string, port int, v4, v6 []net.IP, text ...string) *zeroconf.ServiceEntry {
	entry := zeroconf.NewServiceEntry(instance, ServiceType, ServiceDomain)
	entry.HostName = host
	entry.Port = port
	entry.AddrIPv4 = v4
	entry.AddrIPv6 = v6
	entry.Text = text
	return entry
}

// fakeBrowse answers with entries, then closes the channel once ctx is done,
// the way the zeroconf resolver does.
func fakeBrowse(entries ...*zeroconf.ServiceEntry) func(context.Context, string, chan *zeroconf.ServiceEntry) error {
	return func(ctx context.Context, service string, out chan *zeroconf.ServiceEntry) error {
		go func() {
			defer close(out)
			for _, e := range entries {
				select {
				case out <- e:
				case <-ctx.Done():
					return
				}
			}
			<-ctx.Done()
		}()
		return nil
	}
}

func TestParseServiceEntry(t *testing.T) {
	tests := []struct {
		name         string
		entry        *zeroconf.ServiceEntry
		wantNil      bool
		wantInstance string
		wantIP       string
		wantPort     int
	}{
		{
			name:         "receiver with IPv4",
			entry:        newEntry("Living Room PC", "desktop.local.", 8080, []net.IP{net.ParseIP("192.168.1.101")}, nil, "version=1.0"),
			wantInstance: "Living Room PC",
			wantIP:       "192.168.1.101",
			wantPort:     8080,
		},
		{
			name:         "custom port",
			entry:        newEntry("Office", "office.local.", 9000, []net.IP{net.ParseIP("10.0.0.5")}, nil),
			wantInstance: "Office",
			wantIP:       "10.0.0.5",
			wantPort:     9000,
		},
		{
			name:         "no port specified (should default to 8080)",
			entry:        newEntry("Den", "den.local.", 0, []net.IP{net.ParseIP("172.16.0.1")}, nil),
			wantInstance: "Den",
			wantIP:       "172.16.0.1",
			wantPort:     8080,
		},
		{
			name:         "missing instance falls back to hostname",
			entry:        newEntry("", "desktop.local.", 8080, []net.IP{net.ParseIP("192.168.1.2")}, nil),
			wantInstance: "desktop.local",
			wantIP:       "192.168.1.2",
			wantPort:     8080,
		},
		{
			name:    "no IP address",
			entry:   newEntry("Ghost", "ghost.local.", 8080, nil, nil),
			wantNil: true,
		},
		{
			name:         "IPv6 only receiver",
			entry:        newEntry("Attic", "attic.local.", 8080, nil, []net.IP{net.ParseIP("fe80::1")}),
			wantInstance: "Attic",
			wantIP:       "fe80::1",
			wantPort:     8080,
		},
		{
			name:         "both IPv4 and IPv6 (should prefer IPv4)",
			entry:        newEntry("Dual", "dual.local.", 8080, []net.IP{net.ParseIP("192.168.1.50")}, []net.IP{net.ParseIP("fe80::2")}),
			wantInstance: "Dual",
			wantIP:       "192.168.1.50",
			wantPort:     8080,
		},
		{
			name:    "nil entry",
			entry:   nil,
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := parseServiceEntry(tt.entry)

			if tt.wantNil {
				if r != nil {
					t.Errorf("parseServiceEntry() = %v, want nil", r)
				}
				return
			}

			if r == nil {
				t.Fatal("parseServiceEntry() = nil, want receiver")
			}
			if r.Instance != tt.wantInstance {
				t.Errorf("Instance = %v, want %v", r.Instance, tt.wantInstance)
			}
			if r.IP != tt.wantIP {
				t.Errorf("IP = %v, want %v", r.IP, tt.wantIP)
			}
			if r.Port != tt.wantPort {
				t.Errorf("Port = %v, want %v", r.Port, tt.wantPort)
			}
			if r.Host != tt.entry.HostName {
				t.Errorf("Host = %v, want %v", r.Host, tt.entry.HostName)
			}
			if time.Since(r.DiscoveredAt) > time.Second {
				t.Errorf("DiscoveredAt is not recent: %v", r.DiscoveredAt)
			}
		})
	}
}

func TestParseServiceEntry_Metadata(t *testing.T) {
	entry := newEntry("PC", "pc.local.", 8080, []net.IP{net.ParseIP("192.168.4.16")}, nil,
		"path=/play", "version=1.0", "flag", "=orphan", "player=mpv --fs")

	r := parseServiceEntry(entry)
	if r == nil {
		t.Fatal("parseServiceEntry() = nil, want receiver")
	}

	want := map[string]string{
		"path":    "/play",
		"version": "1.0",
		"flag":    "",
		"player":  "mpv --fs",
	}

	if len(r.Metadata) != len(want) {
		t.Errorf("Metadata has %d entries, want %d: %v", len(r.Metadata), len(want), r.Metadata)
	}
	for key, value := range want {
		if got, ok := r.Metadata[key]; !ok {
			t.Errorf("Metadata missing key %q", key)
		} else if got != value {
			t.Errorf("Metadata[%q] = %q, want %q", key, got, value)
		}
	}
}

func TestNewScanner(t *testing.T) {
	scanner := NewScanner()

	if scanner.Timeout != DefaultScanTimeout {
		t.Errorf("Timeout = %v, want %v", scanner.Timeout, DefaultScanTimeout)
	}
	if scanner.service() != ServiceType {
		t.Errorf("service() = %v, want %v", scanner.service(), ServiceType)
	}

	scanner.Service = ""
	if scanner.service() != ServiceType {
		t.Errorf("empty Service should fall back to %v", ServiceType)
	}
}

func TestReceiver_Address(t *testing.T) {
	tests := []struct {
		name string
		r    *Receiver
		want string
	}{
		{name: "ipv4", r: &Receiver{IP: "192.168.1.101", Port: 8080}, want: "192.168.1.101:8080"},
		{name: "ipv6", r: &Receiver{IP: "fe80::1", Port: 9000}, want: "[fe80::1]:9000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.Address(); got != tt.want {
				t.Errorf("Address() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReceiver_String(t *testing.T) {
	r := &Receiver{Instance: "Living Room PC", Host: "desktop.local.", IP: "192.168.1.101", Port: 8080}

	want := "Living Room PC (desktop.local.) at 192.168.1.101:8080"
	if r.String() != want {
		t.Errorf("String() = %v, want %v", r.String(), want)
	}
	if r.PortString() != "8080" {
		t.Errorf("PortString() = %v", r.PortString())
	}
}

func TestReceiver_GetMetadata(t *testing.T) {
	r := &Receiver{}
	if r.GetMetadata("version") != "" {
		t.Error("GetMetadata on nil map should be empty")
	}

	r.Metadata = map[string]string{"version": "1.0"}
	if r.GetMetadata("version") != "1.0" {
		t.Errorf("GetMetadata(version) = %q", r.GetMetadata("version"))
	}
}

func TestScanner_Scan(t *testing.T) {
	pc := newEntry("Living Room PC", "desktop.local.", 8080, []net.IP{net.ParseIP("192.168.1.101")}, nil, "version=1.0")
	laptop := newEntry("Laptop", "laptop.local.", 9000, []net.IP{net.ParseIP("192.168.1.102")}, nil)
	noAddr := newEntry("Broken", "broken.local.", 8080, nil, nil)

	scanner := &Scanner{
		Timeout: 100 * time.Millisecond,
		browse:  fakeBrowse(pc, noAddr, pc, laptop),
	}

	receivers, err := scanner.Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	var got []string
	for _, r := range receivers {
		got = append(got, r.Instance)
	}
	if strings.Join(got, ",") != "Living Room PC,Laptop" {
		t.Errorf("Scan() = %v, want [Living Room PC Laptop]", got)
	}
}

func TestScanner_ScanBrowseError(t *testing.T) {
	scanner := &Scanner{
		Timeout: time.Second,
		browse: func(ctx context.Context, service string, out chan *zeroconf.ServiceEntry) error {
			return errors.New("no multicast interface")
		},
	}

	if _, err := scanner.Scan(context.Background()); err == nil {
		t.Error("Scan() should return the browse error")
	}
}

func TestScanner_WaitForReturnsEarly(t *testing.T) {
	other := newEntry("Laptop", "laptop.local.", 9000, []net.IP{net.ParseIP("192.168.1.102")}, nil)
	want := newEntry("Living Room PC", "desktop.local.", 8080, []net.IP{net.ParseIP("192.168.1.101")}, nil)

	var service string
	scanner := &Scanner{
		Timeout: 10 * time.Second,
		Service: "_custom._tcp",
	}
	browse := fakeBrowse(other, want)
	scanner.browse = func(ctx context.Context, s string, out chan *zeroconf.ServiceEntry) error {
		service = s
		return browse(ctx, s, out)
	}

	start := time.Now()
	r, err := scanner.WaitFor(context.Background(), "living room pc")
	if err != nil {
		t.Fatalf("WaitFor() error = %v", err)
	}
	if r.Instance != "Living Room PC" || r.Address() != "192.168.1.101:8080" {
		t.Errorf("WaitFor() = %v", r)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("WaitFor() took %v, want an early return", elapsed)
	}
	if service != "_custom._tcp" {
		t.Errorf("browsed %q, want _custom._tcp", service)
	}
}

func TestScanner_WaitForNotFound(t *testing.T) {
	other := newEntry("Laptop", "laptop.local.", 9000, []net.IP{net.ParseIP("192.168.1.102")}, nil)
	scanner := &Scanner{
		Timeout: 100 * time.Millisecond,
		browse:  fakeBrowse(other),
	}

	r, err := scanner.WaitFor(context.Background(), "Living Room PC")
	if err == nil {
		t.Fatalf("WaitFor() = %v, want not-found error", r)
	}
	if !strings.Contains(err.Error(), "Living Room PC") {
		t.Errorf("error = %v, should name the receiver", err)
	}
}

func TestReceiver_URLHost(t *testing.T) {
	tests := []struct {
		ip   string
		want string
	}{
		{ip: "192.168.1.101", want: "192.168.1.101"},
		{ip: "fe80::1", want: "[fe80::1]"},
	}

	for _, tt := range tests {
		r := &Receiver{IP: tt.ip, Port: 8080}
		if got := r.URLHost(); got != tt.want {
			t.Errorf("URLHost(%s) = %v, want %v", tt.ip, got, tt.want)
		}
		if got := r.URLHost() + ":" + r.PortString(); got != r.Address() {
			t.Errorf("URLHost():port = %v, want %v", got, r.Address())
		}
	}
}
