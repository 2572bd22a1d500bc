// Package ui is the terminal slideshow frontend: a bubbletea model that
// shows the current item, auto-advances on a timer, and routes key and
// mouse input through the binding resolvers to the action dispatcher.
package ui

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/qss/internal/action"
	"github.com/llehouerou/qss/internal/gesture"
	"github.com/llehouerou/qss/internal/keymap"
	"github.com/llehouerou/qss/internal/session"
	"github.com/llehouerou/qss/internal/stderr"
)

var (
	frameStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Align(lipgloss.Center, lipgloss.Center)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("236")).
			Padding(0, 1)

	messageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203"))

	titleStyle = lipgloss.NewStyle().Bold(true)
)

type tickMsg time.Time

type stderrMsg string

// listenStderr waits for the next captured stderr line. Lines end up in
// the message area instead of tearing up the alternate screen.
func listenStderr() tea.Cmd {
	return func() tea.Msg {
		line, ok := <-stderr.Messages
		if !ok {
			return nil
		}
		return stderrMsg(line)
	}
}

// Model is the slideshow TUI.
type Model struct {
	session    *session.Session
	dispatcher *action.Dispatcher
	hotkeys    *keymap.Resolver
	gestures   *keymap.Resolver

	width  int
	height int

	noteInput textinput.Model
	noting    bool

	message string
	isError bool
}

// New creates the TUI over an existing session. Resolvers must be the
// GUI-context ones.
func New(sess *session.Session, dispatcher *action.Dispatcher, hotkeys, gestures *keymap.Resolver) Model {
	ti := textinput.New()
	ti.Placeholder = "note"
	ti.CharLimit = 200
	return Model{
		session:    sess,
		dispatcher: dispatcher,
		hotkeys:    hotkeys,
		gestures:   gestures,
		noteInput:  ti,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.tickCmd(), listenStderr())
}

// tickCmd schedules the next auto-advance at the current speed.
func (m Model) tickCmd() tea.Cmd {
	d := time.Duration(m.session.Speed() * float64(time.Second))
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		if !m.session.Paused() {
			_, _ = m.dispatcher.Execute("navigate_next", action.GUI, m.session, nil)
		}
		return m, m.tickCmd()

	case tea.KeyMsg:
		if m.noting {
			return m.updateNote(msg)
		}
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case stderrMsg:
		m.message = string(msg)
		m.isError = true
		return m, listenStderr()
	}
	return m, nil
}

// handleKey resolves a key press to an action and runs it.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	name := m.hotkeys.ResolveToken(keyToken(msg))
	if name == "" {
		return m, nil
	}

	// Note entry needs the text first; switch to input mode instead of
	// dispatching immediately.
	if name == "note" {
		m.noting = true
		m.noteInput.SetValue("")
		m.noteInput.Focus()
		return m, textinput.Blink
	}

	return m.execute(name, nil)
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	var typ gesture.MouseEventType
	switch msg.Action { //nolint:exhaustive // motion without a held button is ignored below
	case tea.MouseActionPress:
		typ = gesture.MouseDown
	case tea.MouseActionMotion:
		typ = gesture.MouseMove
	case tea.MouseActionRelease:
		typ = gesture.MouseUp
	default:
		return m, nil
	}

	var g gesture.Gesture
	_ = m.session.Exec(func() error {
		g = m.session.Detector().ProcessMouse(typ, float64(msg.X), float64(msg.Y), time.Now())
		return nil
	})
	if g == gesture.None {
		return m, nil
	}
	name := m.gestures.ResolveToken(string(g))
	if name == "" {
		return m, nil
	}
	return m.execute(name, nil)
}

func (m Model) updateNote(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		text := m.noteInput.Value()
		m.noting = false
		m.noteInput.Blur()
		if text == "" {
			return m, nil
		}
		return m.execute("note", action.Params{"text": text})
	case "esc":
		m.noting = false
		m.noteInput.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.noteInput, cmd = m.noteInput.Update(msg)
	return m, cmd
}

// execute dispatches an action in the GUI context and records the
// outcome for the message line. Inapplicable actions are silently
// ignored, matching the no-action rule for unresolvable input.
func (m Model) execute(name string, p action.Params) (tea.Model, tea.Cmd) {
	result, err := m.dispatcher.Execute(name, action.GUI, m.session, p)
	switch {
	case errors.Is(err, action.ErrNotApplicable) || errors.Is(err, action.ErrUnknownAction):
		return m, nil
	case err != nil:
		m.message = err.Error()
		m.isError = true
		return m, nil
	}

	m.isError = false
	m.message = resultMessage(name, result)
	if result["action"] == "quit" {
		return m, tea.Quit
	}
	return m, nil
}

func resultMessage(name string, result action.Result) string {
	switch {
	case result["remembered"] != nil:
		return fmt.Sprintf("remembered %v", filepath.Base(fmt.Sprint(result["remembered"])))
	case result["noted"] != nil:
		return "note saved"
	case result["action"] == "deleted":
		return fmt.Sprintf("deleted %v", filepath.Base(fmt.Sprint(result["removed_path"])))
	case result["undone"] != nil:
		return fmt.Sprintf("undid %v", result["undone"])
	case result["redone"] != nil:
		return fmt.Sprintf("redid %v", result["redone"])
	case result["action"] == "removed":
		return fmt.Sprintf("tool %v removed %v", result["tool"], filepath.Base(fmt.Sprint(result["removed_path"])))
	case name == "quit", name == "navigate_next", name == "navigate_previous":
		return ""
	default:
		return ""
	}
}

func (m Model) View() string {
	if m.width == 0 {
		return ""
	}

	status := m.session.FormatStatus()
	if status == "" {
		status = m.defaultStatus()
	}
	statusBar := statusStyle.Width(m.width).Render(status)

	var footer string
	switch {
	case m.noting:
		footer = "note: " + m.noteInput.View()
	case m.message != "" && m.isError:
		footer = errorStyle.Render(m.message)
	case m.message != "":
		footer = messageStyle.Render(m.message)
	}

	frameHeight := m.height - 2 // status bar + footer line
	if frameHeight < 3 {
		frameHeight = 3
	}

	var body string
	if path, ok := m.session.CurrentPath(); ok {
		body = titleStyle.Render(filepath.Base(path)) + "\n" + path
	} else {
		body = "no images"
	}
	frame := frameStyle.Width(m.width - 2).Height(frameHeight - 2).Render(body)

	return frame + "\n" + statusBar + "\n" + footer
}

// defaultStatus is the bar shown when no custom format is configured.
func (m Model) defaultStatus() string {
	st := m.session.Snapshot()
	s := fmt.Sprintf("%d/%d  %.1fs", st.CurrentIndex+1, st.TotalItems, st.Speed)
	if st.Paused {
		s += "  PAUSED"
	}
	if st.Repeat {
		s += "  REPEAT"
	}
	if st.Shuffle {
		s += "  SHUFFLE"
	}
	if st.RepeatCount > 0 {
		s += fmt.Sprintf("  (loop %d)", st.RepeatCount)
	}
	return s
}

// keyToken converts a bubbletea key into a binding token.
func keyToken(msg tea.KeyMsg) string {
	s := msg.String()
	if s == " " {
		return "space"
	}
	return s
}
