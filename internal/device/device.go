// Package device reports the identity strings the sender puts in the
// X-Device-* request headers.
package device

import (
	"os"
	"runtime"
	"strings"
)

// Info identifies the sending device to the receiver.
type Info struct {
	Name      string // X-Device-Name, also the "device" form field
	Model     string // X-Device-Model
	OSVersion string // X-Device-Android
}

// Files probed for hardware and OS details. Vars so tests can point them at
// fixtures.
var (
	productNamePath = "/sys/devices/virtual/dmi/id/product_name"
	osReleasePath   = "/proc/sys/kernel/osrelease"
	hostname        = os.Hostname
)

// Resolve returns the device identity. configuredName wins when set;
// otherwise the host name is used, then the model.
func Resolve(configuredName string) Info {
	model := Model()
	return Info{
		Name:      Name(configuredName, model),
		Model:     model,
		OSVersion: OSVersion(),
	}
}

// Name picks the device name: configured, then host name, then model.
func Name(configuredName, model string) string {
	if name := strings.TrimSpace(configuredName); name != "" {
		return name
	}
	if h, err := hostname(); err == nil && strings.TrimSpace(h) != "" {
		return strings.TrimSpace(h)
	}
	return model
}

// Model returns the hardware product name when the platform exposes it,
// else GOOS/GOARCH.
func Model() string {
	if v := readTrimmed(productNamePath); v != "" {
		return v
	}
	return runtime.GOOS + "/" + runtime.GOARCH
}

// OSVersion returns the kernel release where readable, else GOOS.
func OSVersion() string {
	if v := readTrimmed(osReleasePath); v != "" {
		return v
	}
	return runtime.GOOS
}

func readTrimmed(path string) string {
	if runtime.GOOS != "linux" {
		return ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
