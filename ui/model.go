package ui

import (
	"fmt"
	"strings"

	"code.cloudfoundry.org/bytefmt"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
)

// File log entry for the finished files list
type FileLogEntry struct {
	Name  string
	Size  int64
	Error string
}

func (f FileLogEntry) FilterValue() string { return f.Name }
func (f FileLogEntry) Title() string       { return f.Name }
func (f FileLogEntry) Description() string {
	if f.Error != "" {
		return fmt.Sprintf("❌ %s", f.Error)
	}
	return fmt.Sprintf("✓ %s", bytefmt.ByteSize(uint64(f.Size)))
}

// Worker slot state tracking
type WorkerState struct {
	ID      int
	Name    string
	Written int64
	Size    int64
	Rate    float64
	Status  string // "idle", "writing"
}

// Model is the full-screen progress view for a generation run.
type Model struct {
	// Run state
	totalItems int
	totalBytes int64
	doneItems  int
	doneBytes  int64
	failed     int
	workers    map[int]*WorkerState
	entries    []FileLogEntry

	// UI components
	overallProgress progress.Model
	workerProgress  []progress.Model
	fileList        list.Model

	// Layout
	width  int
	height int

	quitting bool

	Version string
}

// NewModel creates the TUI model for a run of totalItems files summing to
// totalBytes, generated by numWorkers slots.
func NewModel(totalItems int, totalBytes int64, numWorkers int, version string) Model {
	overallProg := progress.New(progress.WithDefaultGradient())
	workerProgs := make([]progress.Model, numWorkers)
	for i := range workerProgs {
		workerProgs[i] = progress.New(progress.WithDefaultGradient())
	}

	workers := make(map[int]*WorkerState, numWorkers)
	for i := 0; i < numWorkers; i++ {
		workers[i] = &WorkerState{
			ID:     i,
			Status: "idle",
		}
	}

	fileList := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	fileList.Title = "Finished Files"

	return Model{
		totalItems:      totalItems,
		totalBytes:      totalBytes,
		workers:         workers,
		overallProgress: overallProg,
		workerProgress:  workerProgs,
		fileList:        fileList,
		Version:         version,
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.fileList.SetSize(msg.Width-4, msg.Height/3)

	case WorkerStartedMsg:
		if worker, ok := m.workers[msg.WorkerID]; ok {
			worker.Name = msg.Name
			worker.Size = msg.Size
			worker.Written = 0
			worker.Rate = 0
			worker.Status = "writing"
		}

	case WorkerProgressMsg:
		if worker, ok := m.workers[msg.WorkerID]; ok {
			worker.Written = msg.Written
			worker.Size = msg.Size
			worker.Rate = msg.Rate
		}

	case WorkerDoneMsg:
		if worker, ok := m.workers[msg.WorkerID]; ok {
			worker.Status = "idle"
			worker.Name = ""
			worker.Written = 0
			worker.Rate = 0
		}

		entry := FileLogEntry{
			Name: msg.Name,
			Size: msg.Size,
		}
		if msg.Err != nil {
			entry.Error = msg.Err.Error()
			m.failed++
		} else {
			m.doneItems++
			m.doneBytes += msg.Size
		}

		m.entries = append(m.entries, entry)
		items := make([]list.Item, len(m.entries))
		for i, entry := range m.entries {
			items[i] = entry
		}
		m.fileList.SetItems(items)

		// All items terminal, nothing left to watch
		if m.doneItems+m.failed >= m.totalItems {
			m.quitting = true
			return m, tea.Quit
		}
	}

	return m, nil
}

// View implements tea.Model
func (m Model) View() string {
	if m.quitting {
		return "Shutting down...\n"
	}

	// Header
	header := HeaderStyle.Render(fmt.Sprintf("binforge %s", m.Version))

	// Overall progress by completed bytes
	overallPercent := 0.0
	if m.totalBytes > 0 {
		overallPercent = float64(m.doneBytes) / float64(m.totalBytes)
	}
	overallView := fmt.Sprintf("Overall Progress: %s (%d/%d files, %s/%s)",
		m.overallProgress.ViewAs(overallPercent),
		m.doneItems+m.failed,
		m.totalItems,
		bytefmt.ByteSize(uint64(m.doneBytes)),
		bytefmt.ByteSize(uint64(m.totalBytes)))

	// Worker status
	workerViews := []string{"Worker Status:"}
	for i := 0; i < len(m.workerProgress); i++ {
		worker := m.workers[i]
		status := fmt.Sprintf("Worker %d: ", i+1)
		if worker.Status == "writing" {
			percent := 0.0
			if worker.Size > 0 {
				percent = float64(worker.Written) / float64(worker.Size)
			}
			progBar := m.workerProgress[i].ViewAs(percent)
			status += fmt.Sprintf("%s %s (%5.2f MB/s)", progBar, worker.Name, worker.Rate)
		} else {
			status += worker.Status
		}
		workerViews = append(workerViews, status)
	}

	// File list
	fileListView := m.fileList.View()

	// Controls
	controls := "Controls: [q] Quit display (generation continues)"

	sections := []string{
		header,
		overallView,
		strings.Join(workerViews, "\n"),
		fileListView,
		controls,
	}

	return strings.Join(sections, "\n\n")
}
