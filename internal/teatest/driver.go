// Package teatest drives bubbletea models synchronously in tests.
//
// A Driver calls Update directly and runs every returned Cmd on the calling
// goroutine, feeding the produced message back in until nothing is left.
// Models under test must therefore only return Cmds that complete promptly.
package teatest

import (
	"regexp"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

// MaxDrainDepth bounds how many chained Cmds one Send may run.
const MaxDrainDepth = 100

// Driver is a synchronous test harness for any tea.Model.
type Driver struct {
	T     *testing.T
	Model tea.Model

	// Quitting is set once a Cmd produced tea.QuitMsg.
	Quitting bool
}

type Option func(*Driver)

// WithSize sends a WindowSizeMsg before anything else.
func WithSize(w, h int) Option {
	return func(d *Driver) {
		d.Model, _ = d.Model.Update(tea.WindowSizeMsg{Width: w, Height: h})
	}
}

// New creates a Driver and runs the model's Init command.
func New(t *testing.T, model tea.Model, opts ...Option) *Driver {
	t.Helper()
	d := &Driver{T: t, Model: model}
	for _, opt := range opts {
		opt(d)
	}
	d.drain(d.Model.Init(), 0)
	return d
}

// Send dispatches msg through Update and drains the resulting Cmds.
func (d *Driver) Send(msg tea.Msg) {
	d.T.Helper()
	if d.Quitting {
		return
	}
	var cmd tea.Cmd
	d.Model, cmd = d.Model.Update(msg)
	d.drain(cmd, 0)
}

var namedKeys = map[string]tea.KeyType{
	"enter":  tea.KeyEnter,
	"esc":    tea.KeyEsc,
	"up":     tea.KeyUp,
	"down":   tea.KeyDown,
	"left":   tea.KeyLeft,
	"right":  tea.KeyRight,
	"tab":    tea.KeyTab,
	"ctrl+c": tea.KeyCtrlC,
}

// Press sends each key in turn. Names such as "enter", "left" or "ctrl+c"
// map to special keys; anything else is typed as runes.
func (d *Driver) Press(keys ...string) {
	d.T.Helper()
	for _, k := range keys {
		if typ, ok := namedKeys[k]; ok {
			d.Send(tea.KeyMsg{Type: typ})
			continue
		}
		d.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
	}
}

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// View returns the current rendered output with ANSI styling removed.
func (d *Driver) View() string {
	return ansiPattern.ReplaceAllString(d.Model.View(), "")
}

// RequireView fails the test unless the view contains every fragment.
func (d *Driver) RequireView(fragments ...string) {
	d.T.Helper()
	view := d.View()
	for _, f := range fragments {
		if !strings.Contains(view, f) {
			d.T.Fatalf("view does not contain %q:\n%s", f, view)
		}
	}
}

func (d *Driver) drain(cmd tea.Cmd, depth int) {
	d.T.Helper()
	if cmd == nil {
		return
	}
	if depth >= MaxDrainDepth {
		d.T.Logf("teatest: drain depth limit (%d) reached", MaxDrainDepth)
		return
	}

	msg := cmd()
	switch msg := msg.(type) {
	case nil:
		return
	case tea.BatchMsg:
		for _, sub := range msg {
			d.drain(sub, depth+1)
		}
		return
	case tea.QuitMsg:
		d.Quitting = true
		return
	}

	var next tea.Cmd
	d.Model, next = d.Model.Update(msg)
	d.drain(next, depth+1)
}
