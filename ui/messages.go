package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lepinkainen/binforge/gen"
)

// TUI message types bridged from the generator's event channel
type WorkerStartedMsg struct {
	WorkerID int
	Name     string
	Size     int64
}

type WorkerProgressMsg struct {
	WorkerID int
	Name     string
	Written  int64
	Size     int64
	Rate     float64 // MB/s
}

// WorkerDoneMsg covers both terminal outcomes; Err is nil on success.
type WorkerDoneMsg struct {
	WorkerID int
	Name     string
	Size     int64
	Rate     float64
	Err      error
}

// FromEvent converts a generator event into its TUI message.
func FromEvent(ev gen.Event) tea.Msg {
	switch ev := ev.(type) {
	case gen.Started:
		return WorkerStartedMsg{WorkerID: ev.Worker, Name: ev.Name, Size: ev.Size}
	case gen.Progress:
		return WorkerProgressMsg{WorkerID: ev.Worker, Name: ev.Name, Written: ev.Written, Size: ev.Size, Rate: ev.Rate}
	case gen.Completed:
		return WorkerDoneMsg{WorkerID: ev.Worker, Name: ev.Name, Size: ev.Size, Rate: ev.Rate}
	case gen.Failed:
		return WorkerDoneMsg{WorkerID: ev.Worker, Name: ev.Name, Err: ev.Err}
	}
	return nil
}
