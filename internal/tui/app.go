// Package tui provides a Bubble Tea console that toggles controller flags
// and shows the window configuration they produce.
package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mj1618/statusbar-window/internal/controller"
	"github.com/mj1618/statusbar-window/internal/model"
)

const barHeightStep = 8

// Options configures the console.
type Options struct {
	Controller *controller.Controller
	// PollTick is how often the view re-reads the controller, so
	// preference reloads show up without a key press.
	PollTick time.Duration
	// AltScreen runs the program in the alternate screen buffer.
	AltScreen bool
}

// lastAction is the most recent mutation and what it applied.
type lastAction struct {
	label  string
	result controller.ApplyResult
	err    error
}

// Model is the root console state for Bubble Tea.
type Model struct {
	ctrl     *controller.Controller
	pollTick time.Duration
	keys     keyMap
	styles   Styles

	rows   []string
	cursor int

	width    int
	height   int
	showHelp bool
	showDump bool

	last *lastAction
}

// New creates a console model over opts.Controller.
func New(opts Options) Model {
	pollTick := opts.PollTick
	if pollTick == 0 {
		pollTick = time.Second
	}
	return Model{
		ctrl:     opts.Controller,
		pollTick: pollTick,
		keys:     DefaultKeyMap(),
		styles:   DefaultStyles(),
		rows:     model.FieldNames(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.pollTick)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		// The view reads the controller directly; the tick only redraws.
		return m, tickCmd(m.pollTick)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Top):
		m.cursor = 0
	case key.Matches(msg, m.keys.Bottom):
		m.cursor = len(m.rows) - 1
	case key.Matches(msg, m.keys.Toggle):
		m.toggleSelected()
	case key.Matches(msg, m.keys.BarTaller):
		m.changeBarHeight(barHeightStep)
	case key.Matches(msg, m.keys.BarShorter):
		m.changeBarHeight(-barHeightStep)
	case key.Matches(msg, m.keys.ToggleMedia):
		showing := !m.ctrl.Prefs().ShowingMedia
		m.ctrl.SetShowingMedia(showing)
		m.last = &lastAction{label: fmt.Sprintf("showingMedia = %v", showing)}
	case key.Matches(msg, m.keys.ConfigChanged):
		m.ctrl.OnConfigurationChanged()
		m.last = &lastAction{label: "configuration changed"}
	case key.Matches(msg, m.keys.ToggleDump):
		m.showDump = !m.showDump
	}
	return m, nil
}

// toggleSelected flips the boolean under the cursor, or advances the bar
// state when the cursor is on statusBarState.
func (m *Model) toggleSelected() {
	name := m.rows[m.cursor]
	var value string
	if name == "statusBarState" {
		next := (m.ctrl.State().StatusBarState + 1) % (model.BarStateShadeLocked + 1)
		value = next.String()
	} else {
		current := false
		for _, f := range m.ctrl.State().Fields() {
			if f.Name == name {
				current, _ = strconv.ParseBool(f.Value)
				break
			}
		}
		value = strconv.FormatBool(!current)
	}
	res, err := m.ctrl.Set(name, value)
	m.last = &lastAction{label: name + " = " + value, result: res, err: err}
}

func (m *Model) changeBarHeight(delta int) {
	next := m.ctrl.BarHeight() + delta
	if next < barHeightStep {
		next = barHeightStep
	}
	res := m.ctrl.SetBarHeight(next)
	m.last = &lastAction{label: fmt.Sprintf("barHeight = %d", next), result: res}
}

// View implements tea.Model.
func (m Model) View() string {
	if m.showHelp {
		return m.renderHelp()
	}

	left := m.renderFlags()
	right := m.renderConfiguration()
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("sbwin status bar window"))
	b.WriteString("\n")
	b.WriteString(body)
	b.WriteString("\n")
	if m.showDump {
		var dump strings.Builder
		_ = m.ctrl.Dump(&dump)
		b.WriteString(m.styles.Panel.Render(strings.TrimRight(dump.String(), "\n")))
		b.WriteString("\n")
	}
	b.WriteString(m.renderLast())
	b.WriteString(m.styles.Muted.Render("space toggle · +/- height · m media · c config · d dump · ? help · q quit"))
	return b.String()
}

func (m Model) renderFlags() string {
	fields := m.ctrl.State().Fields()
	st := m.ctrl.State()

	var b strings.Builder
	b.WriteString(m.styles.Section.Render("State"))
	for i, f := range fields {
		b.WriteString("\n")
		cursor := "  "
		if i == m.cursor {
			cursor = m.styles.Cursor.Render("> ")
		}
		b.WriteString(cursor)
		b.WriteString(m.styles.Name.Render(fmt.Sprintf("%-22s", f.Name)))
		switch f.Value {
		case "true":
			b.WriteString(m.styles.On.Render("on"))
		case "false":
			b.WriteString(m.styles.Off.Render("off"))
		default:
			b.WriteString(m.styles.Value.Render(st.StatusBarState.String()))
		}
	}
	return m.styles.Panel.Render(b.String())
}

func (m Model) renderConfiguration() string {
	cfg := m.ctrl.Configuration()
	prefs := m.ctrl.Prefs()
	lp := cfg.Layout

	height := strconv.Itoa(lp.Height)
	if lp.Expanded() {
		height = "match_parent"
	}
	timeout := "default"
	if lp.UserActivityTimeoutMS != model.NoTimeoutOverride {
		timeout = fmt.Sprintf("%dms", lp.UserActivityTimeoutMS)
	}
	brightness := "default"
	if lp.Brightness != model.BrightnessOverrideNone {
		brightness = strconv.FormatFloat(float64(lp.Brightness), 'f', 3, 32)
	}

	rows := [][2]string{
		{"height", height},
		{"focus", string(lp.Focus)},
		{"keyguard", strconv.FormatBool(lp.Keyguard)},
		{"forceStatusBarVisible", strconv.FormatBool(lp.ForceStatusBarVisible)},
		{"showWallpaper", strconv.FormatBool(lp.ShowWallpaper)},
		{"orientation", string(lp.Orientation)},
		{"userActivityTimeout", timeout},
		{"disableUserActivity", strconv.FormatBool(lp.DisableUserActivity)},
		{"notTouchModal", strconv.FormatBool(lp.NotTouchModal)},
		{"brightness", brightness},
		{"fitsSystemWindows", strconv.FormatBool(cfg.FitsSystemWindows)},
		{"hasTopUi", strconv.FormatBool(cfg.HasTopUI)},
	}

	var b strings.Builder
	b.WriteString(m.styles.Section.Render("Applied configuration"))
	for _, r := range rows {
		b.WriteString("\n")
		b.WriteString(m.styles.Name.Render(fmt.Sprintf("%-22s", r[0])))
		b.WriteString(m.styles.Value.Render(r[1]))
	}
	b.WriteString("\n\n")
	b.WriteString(m.styles.Section.Render("Preferences"))
	b.WriteString("\n")
	b.WriteString(m.styles.Name.Render(fmt.Sprintf("%-22s", "keyguardRotation")))
	b.WriteString(m.styles.Value.Render(strconv.FormatBool(prefs.KeyguardScreenRotation)))
	b.WriteString("\n")
	b.WriteString(m.styles.Name.Render(fmt.Sprintf("%-22s", "keyguardBlur")))
	b.WriteString(m.styles.Value.Render(strconv.FormatBool(prefs.KeyguardBlurEnabled)))
	b.WriteString("\n")
	b.WriteString(m.styles.Name.Render(fmt.Sprintf("%-22s", "showingMedia")))
	b.WriteString(m.styles.Value.Render(strconv.FormatBool(prefs.ShowingMedia)))
	return m.styles.Panel.Render(b.String())
}

func (m Model) renderLast() string {
	if m.last == nil {
		return ""
	}
	var b strings.Builder
	if m.last.err != nil {
		b.WriteString(m.styles.Error.Render(m.last.label + ": " + m.last.err.Error()))
		b.WriteString("\n")
		return b.String()
	}
	b.WriteString(m.styles.Muted.Render(m.last.label))
	if len(m.last.result.Changes) == 0 {
		b.WriteString(m.styles.Muted.Render(" (no layout change)"))
	}
	b.WriteString("\n")
	for _, c := range m.last.result.Changes {
		b.WriteString(m.styles.Changed.Render(fmt.Sprintf("  %s: %s -> %s", c.Field, c.From, c.To)))
		b.WriteString("\n")
	}
	if m.last.result.TopUIErr != nil {
		b.WriteString(m.styles.Error.Render("  foreground ui: " + m.last.result.TopUIErr.Error()))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderHelp() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Keyboard Shortcuts"))
	b.WriteString("\n\n")
	for _, binding := range m.keys.helpItems() {
		h := binding.Help()
		b.WriteString(m.styles.HelpKey.Render(fmt.Sprintf("%-10s", h.Key)))
		b.WriteString(m.styles.HelpDesc.Render(h.Desc))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render("Press any key to close"))
	return m.styles.Panel.Render(b.String())
}

// Messages

type tickMsg time.Time

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	if opts.Controller == nil {
		return fmt.Errorf("tui requires a controller")
	}
	m := New(opts)
	var progOpts []tea.ProgramOption
	if opts.AltScreen {
		progOpts = append(progOpts, tea.WithAltScreen())
	}
	p := tea.NewProgram(m, progOpts...)
	_, err := p.Run()
	return err
}
