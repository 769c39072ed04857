// Package tui provides the Bubble Tea terminal UI for mdlinkcheck,
// displaying live probe progress and a styled summary of results.
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lukemcguire/mdlinkcheck/checker"
	"github.com/lukemcguire/mdlinkcheck/docs"
	"github.com/lukemcguire/mdlinkcheck/result"
)

// Runner runs a link check over a reference map.
type Runner interface {
	Run(ctx context.Context, refs docs.ReferenceMap) (*result.Result, error)
}

// Model is the Bubble Tea model for the link check TUI.
type Model struct {
	ctx        context.Context
	cancel     context.CancelFunc
	runner     Runner
	refs       docs.ReferenceMap
	spinner    spinner.Model
	progressCh <-chan checker.Event

	checked  int
	broken   int
	total    int
	current  string
	quitting bool
	done     bool
	result   *result.Result
	err      error
	width    int
}

// NewModel creates a TUI model wired to the given runner and progress channel.
func NewModel(ctx context.Context, cancel context.CancelFunc, runner Runner, refs docs.ReferenceMap, progressCh <-chan checker.Event) Model {
	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	return Model{
		ctx:        ctx,
		cancel:     cancel,
		runner:     runner,
		refs:       refs,
		spinner:    spin,
		progressCh: progressCh,
		total:      len(refs),
	}
}

// Init starts the spinner, the run, and the progress listener concurrently.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.startRun(), waitForProgress(m.progressCh))
}

// startRun returns a tea.Cmd that runs the check and sends RunDoneMsg.
func (m Model) startRun() tea.Cmd {
	return func() tea.Msg {
		res, err := m.runner.Run(m.ctx, m.refs)
		if err != nil {
			err = fmt.Errorf("link check: %w", err)
		}
		return RunDoneMsg{Result: res, Err: err}
	}
}

// Update handles messages from the Bubble Tea runtime.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			m.cancel()
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width

	case ProgressMsg:
		m.checked = msg.Checked
		m.broken = msg.Broken
		m.current = msg.URL
		if msg.Total > 0 {
			m.total = msg.Total
		}
		return m, waitForProgress(m.progressCh)

	case RunDoneMsg:
		// A closed progress channel also yields an empty RunDoneMsg; the
		// real outcome always arrives from startRun.
		if msg.Result == nil && msg.Err == nil {
			return m, nil
		}
		m.done = true
		m.result = msg.Result
		m.err = msg.Err
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the current TUI state.
func (m Model) View() string {
	if m.done && m.result != nil {
		return RenderSummary(m.result)
	}
	if m.done && m.err != nil {
		return errorStyle.Render("Error: "+m.err.Error()) + "\n"
	}
	if m.quitting {
		return dimStyle.Render("Cancelled.") + "\n"
	}
	return fmt.Sprintf("%s Checking links... %d/%d, broken %d\n%s\n",
		m.spinner.View(), m.checked, m.total, m.broken,
		dimStyle.Render("  "+m.current))
}

// GetResult returns the run result for output formatting.
func (m Model) GetResult() *result.Result {
	return m.result
}

// Err returns the error that ended the run, if any.
func (m Model) Err() error {
	return m.err
}
