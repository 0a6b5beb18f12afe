package ui

import (
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/magmaskv/casttompv/internal/config"
	"github.com/magmaskv/casttompv/internal/device"
	"github.com/magmaskv/casttompv/internal/intent"
)

var testDevice = device.Info{Name: "Pixel", Model: "Pixel 7", OSVersion: "14"}

type receiverStub struct {
	server *httptest.Server
	hits   int32
	status int
	lastPath atomic.Value
}

func newReceiverStub(t *testing.T, status int) *receiverStub {
	t.Helper()
	r := &receiverStub{status: status}
	r.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		atomic.AddInt32(&r.hits, 1)
		r.lastPath.Store(req.URL.Path)
		w.WriteHeader(r.status)
	}))
	t.Cleanup(r.server.Close)
	return r
}

func (r *receiverStub) config(t *testing.T) *config.Config {
	t.Helper()
	u, err := url.Parse(r.server.URL)
	if err != nil {
		t.Fatal(err)
	}
	host, port, err := net.SplitHostPort(u.Host)
	if err != nil {
		t.Fatal(err)
	}
	return &config.Config{Host: host, Port: port}
}

func newShell(t *testing.T, cfg *config.Config, in *intent.Intent) (Model, *config.Store) {
	t.Helper()
	store := config.NewStore(filepath.Join(t.TempDir(), "config.yaml"))
	m := New(Options{
		Store:         store,
		Config:        cfg,
		Intent:        in,
		Device:        func(string) device.Info { return testDevice },
		ToastDuration: time.Millisecond,
	})
	return m, store
}

// drive runs cmd and feeds cast results back into the model until no
// command is left. Toast expiry and animation ticks are dropped so the
// final state can be inspected.
func drive(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	for _, msg := range collect(cmd) {
		switch msg.(type) {
		case castDoneMsg, intentMsg:
			next, nextCmd := m.Update(msg)
			m = drive(t, next.(Model), nextCmd)
		}
	}
	return m
}

func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var msgs []tea.Msg
		for _, c := range batch {
			msgs = append(msgs, collect(c)...)
		}
		return msgs
	}
	return []tea.Msg{msg}
}

func press(t *testing.T, m Model, k tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(k)
	return next.(Model), cmd
}

func TestNew_ShowsConfiguredReceiver(t *testing.T) {
	m, _ := newShell(t, &config.Config{Host: "10.0.0.5", Port: "9000", DebugEnabled: true}, nil)

	if m.Status() != "✅ Configured: 10.0.0.5:9000" {
		t.Errorf("Status() = %q", m.Status())
	}
	lines := m.log.Render()
	if len(lines) != 1 || !strings.HasSuffix(lines[0], ": === APP STARTED ===") {
		t.Errorf("debug log = %v, want the startup line", lines)
	}
	if !strings.Contains(m.View(), "Debug log") {
		t.Error("debug panel should be visible when debug is enabled")
	}
}

func TestNew_DebugPanelHiddenWhenOff(t *testing.T) {
	m, _ := newShell(t, config.Default(), nil)

	if m.log.Len() != 0 {
		t.Errorf("debug log has %d entries, want 0 with debug off", m.log.Len())
	}
	if strings.Contains(m.View(), "Debug log") {
		t.Error("debug panel should be hidden when debug is disabled")
	}
}

func TestSave(t *testing.T) {
	m, store := newShell(t, config.Default(), nil)
	m.hostInput.SetValue(" 10.0.0.7 ")
	m.portInput.SetValue("9001")

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if cmd == nil {
		t.Fatal("save should schedule a toast expiry")
	}

	if m.Status() != "✅ Saved: 10.0.0.7:9001" {
		t.Errorf("Status() = %q", m.Status())
	}
	if m.Toast() != "Configuration saved" {
		t.Errorf("Toast() = %q", m.Toast())
	}

	saved, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if saved.Host != "10.0.0.7" || saved.Port != "9001" {
		t.Errorf("saved = %+v", saved)
	}
}

func TestSave_EmptyFields(t *testing.T) {
	m, store := newShell(t, config.Default(), nil)
	m.portInput.SetValue("  ")

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	if m.Toast() != "Complete all fields" {
		t.Errorf("Toast() = %q", m.Toast())
	}
	if m.Status() != "✅ Configured: 192.168.1.101:8080" {
		t.Errorf("Status() = %q, want it unchanged", m.Status())
	}
	loaded, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Port != config.DefaultPort {
		t.Errorf("record changed: %+v", loaded)
	}
}

func TestToggleDebug(t *testing.T) {
	m, store := newShell(t, config.Default(), nil)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlD})

	if !m.Config().DebugEnabled || !m.log.Enabled() {
		t.Fatal("debug should be enabled")
	}
	saved, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if !saved.DebugEnabled {
		t.Error("debug flag should be persisted immediately")
	}
	if lines := m.log.Render(); len(lines) == 0 || !strings.HasSuffix(lines[0], "Debug mode: ENABLED") {
		t.Errorf("debug log = %v", lines)
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlD})
	if m.log.Enabled() {
		t.Error("debug should be disabled again")
	}
}

func TestIntent_CastsFoundURL(t *testing.T) {
	receiver := newReceiverStub(t, http.StatusOK)
	in := intent.Share("watch this https://youtu.be/abc?t=1 now")
	m, _ := newShell(t, receiver.config(t), &in)

	next, cmd := m.Update(intentMsg{in: in})
	m = next.(Model)

	if m.Status() != "📡 Sending video..." {
		t.Errorf("pending Status() = %q", m.Status())
	}
	if m.InFlight() != 1 {
		t.Errorf("InFlight() = %d, want 1", m.InFlight())
	}

	m = drive(t, m, cmd)

	if m.Status() != "✅ Video sent from Pixel!" {
		t.Errorf("Status() = %q", m.Status())
	}
	if m.Toast() != "✅ Video sent to PC" {
		t.Errorf("Toast() = %q", m.Toast())
	}
	if m.InFlight() != 0 {
		t.Errorf("InFlight() = %d, want 0", m.InFlight())
	}
	if got := receiver.lastPath.Load(); got != "/play" {
		t.Errorf("receiver path = %v, want /play", got)
	}
}

func TestInit_ResolvesStartupIntent(t *testing.T) {
	receiver := newReceiverStub(t, http.StatusOK)
	in := intent.View("https://example.com/v.mp4")
	m, _ := newShell(t, receiver.config(t), &in)

	m = drive(t, m, m.Init())

	if atomic.LoadInt32(&receiver.hits) != 1 {
		t.Errorf("receiver hits = %d, want 1", atomic.LoadInt32(&receiver.hits))
	}
	if m.Status() != "✅ Video sent from Pixel!" {
		t.Errorf("Status() = %q", m.Status())
	}
}

func TestIntent_NoURL(t *testing.T) {
	receiver := newReceiverStub(t, http.StatusOK)
	m, _ := newShell(t, receiver.config(t), nil)

	next, _ := m.Update(intentMsg{in: intent.Share("nothing to see")})
	m = next.(Model)

	if m.Status() != "❌ No URL found" {
		t.Errorf("Status() = %q", m.Status())
	}
	if m.Toast() != "No video URL found" {
		t.Errorf("Toast() = %q", m.Toast())
	}
	if atomic.LoadInt32(&receiver.hits) != 0 {
		t.Error("no request should be sent without a URL")
	}
}

func TestIntent_Ignored(t *testing.T) {
	m, _ := newShell(t, config.Default(), nil)
	before := m.Status()

	next, cmd := m.Update(intentMsg{in: intent.Intent{Action: "edit", Text: "https://x"}})
	m = next.(Model)

	if m.Status() != before || m.Toast() != "" || cmd != nil {
		t.Errorf("ignored intent changed the shell: status %q toast %q", m.Status(), m.Toast())
	}
}

func TestCastFromURLField(t *testing.T) {
	receiver := newReceiverStub(t, http.StatusOK)
	m, _ := newShell(t, receiver.config(t), nil)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("https://example.com/a.mkv")})
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = drive(t, m, cmd)

	if atomic.LoadInt32(&receiver.hits) != 1 {
		t.Errorf("receiver hits = %d, want 1", atomic.LoadInt32(&receiver.hits))
	}
	if m.Status() != "✅ Video sent from Pixel!" {
		t.Errorf("Status() = %q", m.Status())
	}
}

func TestTest_HTTPError(t *testing.T) {
	receiver := newReceiverStub(t, http.StatusInternalServerError)
	m, _ := newShell(t, receiver.config(t), nil)

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyCtrlT})
	if m.Status() != "🔄 Testing detailed connection..." {
		t.Errorf("pending Status() = %q", m.Status())
	}
	m = drive(t, m, cmd)

	if m.Status() != "⚠️ Test error: 500" {
		t.Errorf("Status() = %q", m.Status())
	}
	if m.Toast() != "Test error: 500" {
		t.Errorf("Toast() = %q", m.Toast())
	}
}

func TestTestVideo_Succeeds(t *testing.T) {
	receiver := newReceiverStub(t, http.StatusOK)
	m, _ := newShell(t, receiver.config(t), nil)

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyCtrlP})
	m = drive(t, m, cmd)

	if m.Status() != "✅ TestVideo completed!\nDevice: Pixel" {
		t.Errorf("Status() = %q", m.Status())
	}
	if got := receiver.lastPath.Load(); got != "/testVideo" {
		t.Errorf("receiver path = %v", got)
	}
}

func TestTest_NotConfigured(t *testing.T) {
	receiver := newReceiverStub(t, http.StatusOK)
	m, _ := newShell(t, receiver.config(t), nil)
	m.portInput.SetValue("")
	before := m.Status()

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlT})

	if m.Toast() != "Configure IP and port first" {
		t.Errorf("Toast() = %q", m.Toast())
	}
	if m.Status() != before {
		t.Errorf("Status() = %q, want it unchanged", m.Status())
	}
	if m.InFlight() != 0 || atomic.LoadInt32(&receiver.hits) != 0 {
		t.Error("no request should be sent")
	}
}

func TestToastExpiry(t *testing.T) {
	m, _ := newShell(t, config.Default(), nil)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	first := m.toastID
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	next, _ := m.Update(toastExpiredMsg{id: first})
	m = next.(Model)
	if m.Toast() == "" {
		t.Error("an older toast expiry should not clear the newer toast")
	}

	next, _ = m.Update(toastExpiredMsg{id: m.toastID})
	m = next.(Model)
	if m.Toast() != "" {
		t.Errorf("Toast() = %q, want cleared", m.Toast())
	}
}

func TestFocusCycle(t *testing.T) {
	m, _ := newShell(t, config.Default(), nil)
	if m.focus != focusURL {
		t.Fatalf("initial focus = %v, want URL field", m.focus)
	}

	for i := 0; i < int(focusCount); i++ {
		m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	}
	if m.focus != focusURL {
		t.Errorf("focus after a full cycle = %v", m.focus)
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.focus != focusPort {
		t.Errorf("focus = %v, want port", m.focus)
	}
}

func TestQuit(t *testing.T) {
	m, _ := newShell(t, config.Default(), nil)

	_, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit should return tea.Quit")
	}
}
