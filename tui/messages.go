package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lukemcguire/mdlinkcheck/checker"
	"github.com/lukemcguire/mdlinkcheck/result"
)

// ProgressMsg reports progress for a single probed URL.
type ProgressMsg struct {
	Checked int
	Broken  int
	Total   int
	URL     string
}

// RunDoneMsg signals the link check has completed.
type RunDoneMsg struct {
	Result *result.Result
	Err    error
}

// waitForProgress returns a tea.Cmd that reads one event from the progress
// channel. When the channel closes, it returns a RunDoneMsg with nil Result
// (the actual result comes from startRun).
func waitForProgress(ch <-chan checker.Event) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-ch
		if !ok {
			return RunDoneMsg{}
		}
		return ProgressMsg{
			Checked: evt.Checked,
			Broken:  evt.Broken,
			Total:   evt.Total,
			URL:     evt.URL,
		}
	}
}
