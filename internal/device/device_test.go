package device

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func stubHostname(t *testing.T, name string, err error) {
	t.Helper()
	orig := hostname
	hostname = func() (string, error) { return name, err }
	t.Cleanup(func() { hostname = orig })
}

func TestName(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		host       string
		hostErr    error
		want       string
	}{
		{name: "configured wins", configured: "Living Room", host: "laptop", want: "Living Room"},
		{name: "configured trimmed", configured: "  Phone  ", host: "laptop", want: "Phone"},
		{name: "falls back to host", configured: "", host: "laptop", want: "laptop"},
		{name: "blank configured falls back", configured: "   ", host: "laptop", want: "laptop"},
		{name: "falls back to model", configured: "", host: "", want: "Model X"},
		{name: "host error falls back to model", configured: "", hostErr: errors.New("boom"), want: "Model X"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stubHostname(t, tt.host, tt.hostErr)
			if got := Name(tt.configured, "Model X"); got != tt.want {
				t.Errorf("Name() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestModelAndOSVersion_FromFiles(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("platform files are only read on linux")
	}

	dir := t.TempDir()
	product := filepath.Join(dir, "product_name")
	release := filepath.Join(dir, "osrelease")
	if err := os.WriteFile(product, []byte("ThinkPad X1\n"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(release, []byte("6.8.0-generic\n"), 0600); err != nil {
		t.Fatal(err)
	}

	origProduct, origRelease := productNamePath, osReleasePath
	productNamePath, osReleasePath = product, release
	defer func() { productNamePath, osReleasePath = origProduct, origRelease }()

	if got := Model(); got != "ThinkPad X1" {
		t.Errorf("Model() = %q", got)
	}
	if got := OSVersion(); got != "6.8.0-generic" {
		t.Errorf("OSVersion() = %q", got)
	}
}

func TestModelAndOSVersion_Fallback(t *testing.T) {
	origProduct, origRelease := productNamePath, osReleasePath
	productNamePath = filepath.Join(t.TempDir(), "missing")
	osReleasePath = filepath.Join(t.TempDir(), "missing")
	defer func() { productNamePath, osReleasePath = origProduct, origRelease }()

	if got, want := Model(), runtime.GOOS+"/"+runtime.GOARCH; got != want {
		t.Errorf("Model() = %q, want %q", got, want)
	}
	if got := OSVersion(); got != runtime.GOOS {
		t.Errorf("OSVersion() = %q, want %q", got, runtime.GOOS)
	}
}

func TestResolve(t *testing.T) {
	stubHostname(t, "desk", nil)

	info := Resolve("")
	if info.Name != "desk" {
		t.Errorf("Name = %q, want desk", info.Name)
	}
	if info.Model == "" || info.OSVersion == "" {
		t.Errorf("Resolve() left fields empty: %+v", info)
	}
}
