package ui

import (
	"errors"
	"testing"

	"github.com/lepinkainen/binforge/gen"
)

func TestNewModel(t *testing.T) {
	m := NewModel(10, 1000, 3, "test")

	if m.totalItems != 10 {
		t.Errorf("totalItems = %d, expected 10", m.totalItems)
	}
	if m.totalBytes != 1000 {
		t.Errorf("totalBytes = %d, expected 1000", m.totalBytes)
	}
	if len(m.workers) != 3 {
		t.Errorf("Expected 3 worker slots, got %d", len(m.workers))
	}
	if len(m.workerProgress) != 3 {
		t.Errorf("Expected 3 worker progress bars, got %d", len(m.workerProgress))
	}
	for i, w := range m.workers {
		if w.Status != "idle" {
			t.Errorf("Worker %d status = %q, expected idle", i, w.Status)
		}
	}
}

func TestUpdateWorkerLifecycle(t *testing.T) {
	m := NewModel(2, 300, 1, "test")

	model, _ := m.Update(WorkerStartedMsg{WorkerID: 0, Name: "d0000.bin", Size: 100})
	m = model.(Model)
	if m.workers[0].Status != "writing" || m.workers[0].Name != "d0000.bin" {
		t.Errorf("After Started: status=%q name=%q", m.workers[0].Status, m.workers[0].Name)
	}

	model, _ = m.Update(WorkerProgressMsg{WorkerID: 0, Name: "d0000.bin", Written: 60, Size: 100, Rate: 1.5})
	m = model.(Model)
	if m.workers[0].Written != 60 {
		t.Errorf("After Progress: written=%d, expected 60", m.workers[0].Written)
	}

	model, cmd := m.Update(WorkerDoneMsg{WorkerID: 0, Name: "d0000.bin", Size: 100})
	m = model.(Model)
	if m.doneItems != 1 {
		t.Errorf("After Done: doneItems=%d, expected 1", m.doneItems)
	}
	if m.doneBytes != 100 {
		t.Errorf("After Done: doneBytes=%d, expected 100", m.doneBytes)
	}
	if m.workers[0].Status != "idle" {
		t.Errorf("After Done: worker status=%q, expected idle", m.workers[0].Status)
	}
	if cmd != nil {
		t.Error("Expected no quit command while items remain")
	}
}

func TestUpdateQuitsWhenAllTerminal(t *testing.T) {
	m := NewModel(1, 100, 1, "test")

	model, _ := m.Update(WorkerStartedMsg{WorkerID: 0, Name: "d0000.bin", Size: 100})
	m = model.(Model)
	_, cmd := m.Update(WorkerDoneMsg{WorkerID: 0, Name: "d0000.bin", Size: 100})
	if cmd == nil {
		t.Error("Expected quit command once every item is terminal")
	}
}

func TestUpdateCountsFailures(t *testing.T) {
	m := NewModel(2, 200, 1, "test")

	model, _ := m.Update(WorkerDoneMsg{WorkerID: 0, Name: "d0000.bin", Err: errors.New("boom")})
	m = model.(Model)
	if m.failed != 1 {
		t.Errorf("failed=%d, expected 1", m.failed)
	}
	if m.doneItems != 0 {
		t.Errorf("doneItems=%d, expected 0", m.doneItems)
	}
	if m.doneBytes != 0 {
		t.Errorf("doneBytes=%d, expected 0 for a failed item", m.doneBytes)
	}
	if len(m.entries) != 1 || m.entries[0].Error == "" {
		t.Error("Expected one failed file entry")
	}
}

func TestFromEvent(t *testing.T) {
	tests := []struct {
		name string
		ev   gen.Event
		want string
	}{
		{"Started", gen.Started{Worker: 1, Name: "a"}, "ui.WorkerStartedMsg"},
		{"Progress", gen.Progress{Worker: 1, Name: "a"}, "ui.WorkerProgressMsg"},
		{"Completed", gen.Completed{Worker: 1, Name: "a"}, "ui.WorkerDoneMsg"},
		{"Failed", gen.Failed{Worker: 1, Name: "a", Err: errors.New("boom")}, "ui.WorkerDoneMsg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := FromEvent(tt.ev)
			switch tt.ev.(type) {
			case gen.Started:
				if _, ok := msg.(WorkerStartedMsg); !ok {
					t.Errorf("Got %T, expected %s", msg, tt.want)
				}
			case gen.Progress:
				if _, ok := msg.(WorkerProgressMsg); !ok {
					t.Errorf("Got %T, expected %s", msg, tt.want)
				}
			default:
				done, ok := msg.(WorkerDoneMsg)
				if !ok {
					t.Errorf("Got %T, expected %s", msg, tt.want)
					return
				}
				if _, failed := tt.ev.(gen.Failed); failed && done.Err == nil {
					t.Error("Failed event lost its error in conversion")
				}
			}
		})
	}
}
