// Package progress shows a spinner while GHunt runs.
package progress

import (
	"context"
	"io"
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Indicator shows activity until the returned stop func is called.
type Indicator interface {
	Start(ctx context.Context, label string) (stop func())
}

// None is an Indicator that draws nothing.
type None struct{}

// Start implements Indicator.
func (None) Start(context.Context, string) func() { return func() {} }

// Spinner draws a bubbletea spinner to Out.
type Spinner struct {
	Out   io.Writer
	Style lipgloss.Style
}

// Start implements Indicator. The program runs until stop is called or ctx
// is canceled; stop blocks until the spinner line has been cleared.
func (s Spinner) Start(ctx context.Context, label string) func() {
	p := tea.NewProgram(newModel(label, s.Style),
		tea.WithContext(ctx),
		tea.WithOutput(s.Out),
		tea.WithInput(nil),
		tea.WithoutSignalHandler(),
	)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = p.Run()
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			p.Send(stopMsg{})
			<-done
		})
	}
}

type stopMsg struct{}

type model struct {
	spinner spinner.Model
	label   string
	done    bool
}

func newModel(label string, style lipgloss.Style) model {
	sp := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(style))
	return model{spinner: sp, label: label}
}

func (m model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stopMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) View() string {
	if m.done {
		return ""
	}
	return m.spinner.View() + " " + m.label
}
