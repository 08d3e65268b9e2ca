package wizard

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/ezhumalaisanjay/go-rentalform/pkg/application"
	"github.com/ezhumalaisanjay/go-rentalform/pkg/validation"
)

// SaveKey names the single progress slot. One draft per slot; saving again
// overwrites.
const SaveKey = "rental-application-progress"

// ErrNoProgress is returned by a SaveSlot when nothing has been saved.
var ErrNoProgress = errors.New("wizard: no saved progress")

// SaveSlot persists one serialized draft. Implementations return
// ErrNoProgress from Read when the slot is empty.
type SaveSlot interface {
	Write(data []byte) error
	Read() ([]byte, error)
	Clear() error
}

// FileSlot stores the draft as a JSON file in a directory, named after
// SaveKey.
type FileSlot struct {
	path string
}

// NewFileSlot returns a slot writing to dir. The directory is created on
// first write.
func NewFileSlot(dir string) *FileSlot {
	return &FileSlot{path: filepath.Join(dir, SaveKey+".json")}
}

// Path returns the file the slot writes to.
func (s *FileSlot) Path() string { return s.path }

func (s *FileSlot) Write(data []byte) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("wizard: create save directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("wizard: write progress: %w", err)
	}
	return nil
}

func (s *FileSlot) Read() ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNoProgress
	}
	if err != nil {
		return nil, fmt.Errorf("wizard: read progress: %w", err)
	}
	return data, nil
}

func (s *FileSlot) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("wizard: clear progress: %w", err)
	}
	return nil
}

// MemorySlot is an in-process SaveSlot for tests and ephemeral sessions.
type MemorySlot struct {
	data []byte
}

func (s *MemorySlot) Write(data []byte) error {
	s.data = append([]byte(nil), data...)
	return nil
}

func (s *MemorySlot) Read() ([]byte, error) {
	if s.data == nil {
		return nil, ErrNoProgress
	}
	return append([]byte(nil), s.data...), nil
}

func (s *MemorySlot) Clear() error {
	s.data = nil
	return nil
}

type progress struct {
	Step        int                     `json:"step"`
	Application application.Application `json:"application"`
	SavedAt     time.Time               `json:"savedAt"`
}

// SaveProgress writes the current step and document to the save slot.
func (w *Wizard) SaveProgress() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.slot == nil {
		return fmt.Errorf("wizard: no save slot configured")
	}
	data, err := json.MarshalIndent(progress{
		Step:        w.step,
		Application: w.app,
		SavedAt:     w.now(),
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("wizard: encode progress: %w", err)
	}
	if err := w.slot.Write(data); err != nil {
		return err
	}
	w.log.Info("progress saved", zap.Int("step", w.step))
	return nil
}

// RestoreProgress loads a saved draft into the wizard. It reports whether a
// draft was restored; an empty or corrupt slot leaves the wizard untouched
// and is not an error, matching the "start fresh" behavior applicants expect
// when nothing usable was saved.
func (w *Wizard) RestoreProgress() (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.slot == nil {
		return false, nil
	}
	data, err := w.slot.Read()
	if errors.Is(err, ErrNoProgress) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	var saved progress
	if err := json.Unmarshal(data, &saved); err != nil {
		w.log.Warn("discarding corrupt saved progress", zap.Error(err))
		return false, nil
	}
	if saved.Step < validation.StepApplicationDetails || saved.Step > validation.StepCount {
		w.log.Warn("discarding saved progress with invalid step", zap.Int("step", saved.Step))
		return false, nil
	}

	w.step = saved.Step
	w.app = saved.Application
	w.log.Info("progress restored", zap.Int("step", w.step))
	return true, nil
}

// ClearProgress empties the save slot without touching the working document.
func (w *Wizard) ClearProgress() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.slot == nil {
		return nil
	}
	return w.slot.Clear()
}
