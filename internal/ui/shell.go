package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/magmaskv/casttompv/internal/cast"
	"github.com/magmaskv/casttompv/internal/config"
	"github.com/magmaskv/casttompv/internal/debuglog"
	"github.com/magmaskv/casttompv/internal/device"
	"github.com/magmaskv/casttompv/internal/intent"
	"github.com/magmaskv/casttompv/internal/logging"
	"github.com/magmaskv/casttompv/internal/version"
)

// DefaultToastDuration is how long a toast stays visible.
const DefaultToastDuration = 2500 * time.Millisecond

// focus positions, in tab order
type focusable int

const (
	focusHost focusable = iota
	focusPort
	focusURL
	focusDebug
	focusSave
	focusTest
	focusTestVideo
	focusCast
	focusCount
)

// Messages
type castDoneMsg struct {
	taskID string
	req    *cast.Request
	res    *cast.Result
	err    error
}

type toastExpiredMsg struct{ id int }

type intentMsg struct{ in intent.Intent }

// Options configures a shell.
type Options struct {
	Store  *config.Store
	Config *config.Config // loaded record, Default() when nil
	Log    *debuglog.Log  // created from Config.DebugEnabled when nil
	Client *cast.Client   // created on Log when nil

	// Intent is resolved and cast as soon as the shell starts.
	Intent *intent.Intent

	// Device resolves the sender identity for a configured name.
	Device func(configuredName string) device.Info

	ToastDuration time.Duration
}

// Model is the interactive shell
type Model struct {
	store  *config.Store
	cfg    *config.Config
	log    *debuglog.Log
	client *cast.Client
	device func(string) device.Info

	hostInput textinput.Model
	portInput textinput.Model
	urlInput  textinput.Model
	focus     focusable

	status        string
	toast         string
	toastID       int
	toastDuration time.Duration

	tasks   map[string]*cast.Task
	spinner spinner.Model
	pending *intent.Intent

	keys  shellKeyMap
	help  help.Model
	width int
}

// New creates a shell. It records "=== APP STARTED ===" and shows the
// configured receiver.
func New(opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	cfg = cfg.Clone()

	log := opts.Log
	if log == nil {
		log = debuglog.New(cfg.DebugEnabled)
	}
	log.SetEnabled(cfg.DebugEnabled)

	client := opts.Client
	if client == nil {
		client = cast.NewClient(log)
	}

	resolve := opts.Device
	if resolve == nil {
		resolve = device.Resolve
	}

	toastDuration := opts.ToastDuration
	if toastDuration <= 0 {
		toastDuration = DefaultToastDuration
	}

	hostInput := textinput.New()
	hostInput.Placeholder = config.DefaultHost
	hostInput.CharLimit = 253
	hostInput.Width = 40
	hostInput.SetValue(cfg.Host)

	portInput := textinput.New()
	portInput.Placeholder = config.DefaultPort
	portInput.CharLimit = 5
	portInput.Width = 10
	portInput.SetValue(cfg.Port)

	urlInput := textinput.New()
	urlInput.Placeholder = "paste a link or text containing one"
	urlInput.Width = 60

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(WarningColor)

	m := Model{
		store:         opts.Store,
		cfg:           cfg,
		log:           log,
		client:        client,
		device:        resolve,
		hostInput:     hostInput,
		portInput:     portInput,
		urlInput:      urlInput,
		toastDuration: toastDuration,
		tasks:         make(map[string]*cast.Task),
		spinner:       s,
		pending:       opts.Intent,
		keys:          newShellKeyMap(),
		help:          help.New(),
		width:         MaxContentWidth,
	}

	m.log.Debug("=== APP STARTED ===")
	m.status = fmt.Sprintf("✅ Configured: %s:%s", cfg.Host, cfg.Port)
	m.setFocus(focusURL)
	if opts.Intent != nil {
		m.setFocus(focusCast)
	}

	return m
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.pending != nil {
		in := *m.pending
		cmds = append(cmds, func() tea.Msg { return intentMsg{in: in} })
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = clampWidth(msg.Width)
		m.help.Width = m.width
		return m, nil

	case intentMsg:
		m.pending = nil
		return m.handleIntent(msg.in)

	case castDoneMsg:
		delete(m.tasks, msg.taskID)
		return m.applyNotice(cast.Describe(msg.req, msg.res, msg.err))

	case toastExpiredMsg:
		if msg.id == m.toastID {
			m.toast = ""
		}
		return m, nil

	case spinner.TickMsg:
		if len(m.tasks) == 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateFocusedInput(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.cancelAll()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Next):
		m.setFocus((m.focus + 1) % focusCount)
		return m, nil

	case key.Matches(msg, m.keys.Prev):
		m.setFocus((m.focus + focusCount - 1) % focusCount)
		return m, nil

	case key.Matches(msg, m.keys.Save):
		return m.save()

	case key.Matches(msg, m.keys.Test):
		return m.startCast(cast.TestRequest(m.device(m.cfg.DeviceName)))

	case key.Matches(msg, m.keys.TestVideo):
		return m.startCast(cast.TestVideoRequest(m.device(m.cfg.DeviceName)))

	case key.Matches(msg, m.keys.Debug):
		return m.toggleDebug()

	case key.Matches(msg, m.keys.Activate):
		return m.activate()
	}

	return m.updateFocusedInput(msg)
}

// activate runs the focused button. Enter in the host or port field saves;
// enter in the URL field casts.
func (m Model) activate() (tea.Model, tea.Cmd) {
	switch m.focus {
	case focusHost, focusPort, focusSave:
		return m.save()
	case focusDebug:
		return m.toggleDebug()
	case focusTest:
		return m.startCast(cast.TestRequest(m.device(m.cfg.DeviceName)))
	case focusTestVideo:
		return m.startCast(cast.TestVideoRequest(m.device(m.cfg.DeviceName)))
	case focusURL, focusCast:
		return m.handleIntent(intent.Share(m.urlInput.Value()))
	}
	return m, nil
}

func (m Model) updateFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case focusHost:
		m.hostInput, cmd = m.hostInput.Update(msg)
	case focusPort:
		m.portInput, cmd = m.portInput.Update(msg)
	case focusURL:
		m.urlInput, cmd = m.urlInput.Update(msg)
	}
	return m, cmd
}

func (m *Model) setFocus(f focusable) {
	m.focus = f
	m.hostInput.Blur()
	m.portInput.Blur()
	m.urlInput.Blur()
	switch f {
	case focusHost:
		m.hostInput.Focus()
	case focusPort:
		m.portInput.Focus()
	case focusURL:
		m.urlInput.Focus()
	}
}

// handleIntent casts the URL found in in, or reports that there is none.
func (m Model) handleIntent(in intent.Intent) (tea.Model, tea.Cmd) {
	url, outcome := intent.Resolve(in)

	logging.Debug("Intent resolved",
		zap.String("action", string(in.Action)),
		zap.String("outcome", outcome.String()),
	)

	switch outcome {
	case intent.Found:
		m.status = cast.Pending(cast.EndpointPlay)
		return m.startCast(cast.PlayRequest(url, m.device(m.cfg.DeviceName)))
	case intent.NoURL:
		m.status = "❌ No URL found"
		return m, m.showToast("No video URL found")
	default:
		return m, nil
	}
}

// fieldConfig is the configuration as currently typed, which is what the
// buttons act on even before it is saved.
func (m Model) fieldConfig() *config.Config {
	cfg := m.cfg.Clone()
	cfg.Host = strings.TrimSpace(m.hostInput.Value())
	cfg.Port = strings.TrimSpace(m.portInput.Value())
	return cfg
}

// startCast dispatches req. A request that cannot pass validation is
// resolved on the spot and never shows a pending status.
func (m Model) startCast(req *cast.Request) (tea.Model, tea.Cmd) {
	cfg := m.fieldConfig()

	if err := cfg.Validate(); err != nil {
		res, sendErr := m.client.Send(context.Background(), cfg, req)
		return m.applyNotice(cast.Describe(req, res, sendErr))
	}

	m.status = cast.Pending(req.Endpoint)
	task := m.client.Dispatch(context.Background(), cfg, req)

	wasIdle := len(m.tasks) == 0
	m.tasks[task.ID] = task

	wait := func() tea.Msg {
		res, err := task.Wait()
		return castDoneMsg{taskID: task.ID, req: req, res: res, err: err}
	}
	if wasIdle {
		return m, tea.Batch(wait, m.spinner.Tick)
	}
	return m, wait
}

func (m Model) applyNotice(n cast.Notice) (tea.Model, tea.Cmd) {
	if n.Status != "" {
		m.status = n.Status
	}
	if n.Toast == "" {
		return m, nil
	}
	return m, m.showToast(n.Toast)
}

func (m *Model) showToast(text string) tea.Cmd {
	m.toastID++
	m.toast = text
	id := m.toastID
	return tea.Tick(m.toastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}

// save persists the typed host and port with the current debug flag.
func (m Model) save() (tea.Model, tea.Cmd) {
	cfg := m.fieldConfig()
	if cfg.Validate() != nil {
		return m, m.showToast("Complete all fields")
	}

	if m.store != nil {
		if err := m.store.Save(cfg); err != nil {
			logging.Error("Failed to save configuration", zap.Error(err))
			m.log.Force("Save failed: " + err.Error())
			return m, m.showToast("❌ Save failed")
		}
	}

	m.cfg = cfg
	m.status = fmt.Sprintf("✅ Saved: %s:%s", cfg.Host, cfg.Port)
	return m, m.showToast("Configuration saved")
}

func (m Model) toggleDebug() (tea.Model, tea.Cmd) {
	m.cfg.DebugEnabled = !m.cfg.DebugEnabled
	m.log.SetEnabled(m.cfg.DebugEnabled)

	// a failed save still leaves debug mode switched for this session
	next, cmd := m.save()
	m = next.(Model)

	state := "DISABLED"
	if m.cfg.DebugEnabled {
		state = "ENABLED"
	}
	m.log.Debug("Debug mode: " + state)

	return m, cmd
}

func (m *Model) cancelAll() {
	for _, task := range m.tasks {
		task.Cancel()
	}
}

// View implements tea.Model
func (m Model) View() string {
	var sections []string

	title := TitleStyle.Render("CastToMPV") + " " + SubtitleStyle.Render(version.Get().Version)
	sections = append(sections, title, "")

	sections = append(sections,
		m.renderField("Receiver IP", m.hostInput.View(), focusHost),
		m.renderField("Port", m.portInput.View(), focusPort),
		m.renderField("Video URL", m.urlInput.View(), focusURL),
		"",
		m.renderButtons(),
		"",
	)

	status := m.status
	if len(m.tasks) > 0 {
		status = m.spinner.View() + " " + status
	}
	sections = append(sections, StatusStyle.Render(status))

	if m.toast != "" {
		sections = append(sections, ToastStyle.Render(m.toast))
	}

	if m.log.Enabled() {
		sections = append(sections, "", DebugTitleStyle.Render("Debug log"))
		for _, line := range m.log.Render() {
			sections = append(sections, DebugLineStyle.Render(line))
		}
	}

	sections = append(sections, HelpStyle.Render(m.help.View(m.keys)))

	return lipgloss.NewStyle().Width(m.width).Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m Model) renderField(label, input string, f focusable) string {
	style := LabelStyle
	if m.focus == f {
		style = FocusedLabelStyle
	}
	return style.Render(label+":") + " " + input
}

func (m Model) renderButtons() string {
	debugLabel := "Debug: OFF"
	if m.cfg.DebugEnabled {
		debugLabel = "Debug: ON"
	}

	buttons := []struct {
		label string
		f     focusable
	}{
		{debugLabel, focusDebug},
		{"Save", focusSave},
		{"Test", focusTest},
		{"Test video", focusTestVideo},
		{"Cast", focusCast},
	}

	rendered := make([]string, 0, len(buttons))
	for _, b := range buttons {
		style := ButtonStyle
		if m.focus == b.f {
			style = FocusedButtonStyle
		}
		rendered = append(rendered, style.Render("["+b.label+"]"))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

// Status returns the status line text.
func (m Model) Status() string { return m.status }

// Toast returns the visible toast, empty when none is shown.
func (m Model) Toast() string { return m.toast }

// Config returns the configuration the shell last saved or loaded.
func (m Model) Config() *config.Config { return m.cfg.Clone() }

// InFlight returns the number of requests still running.
func (m Model) InFlight() int { return len(m.tasks) }

// Run starts the shell on the terminal and blocks until the user quits.
func Run(opts Options) error {
	p := tea.NewProgram(New(opts), tea.WithAltScreen())
	final, err := p.Run()
	if m, ok := final.(Model); ok {
		m.cancelAll()
	}
	return err
}
