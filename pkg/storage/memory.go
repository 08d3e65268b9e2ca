package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ezhumalaisanjay/go-rentalform/pkg/application"
)

// Memory is an in-process Store. Records survive for the life of the process
// only; it backs the CLI, the dev server, and the tests.
type Memory struct {
	mu     sync.RWMutex
	nextID int
	apps   map[int]Stored
	now    func() time.Time
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		nextID: 1,
		apps:   make(map[int]Stored),
		now:    time.Now,
	}
}

// Create assigns the next ID and stores the application as a draft.
func (m *Memory) Create(ctx context.Context, app application.Application) (Stored, error) {
	if err := ctx.Err(); err != nil {
		return Stored{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	rec := Stored{
		ID:          m.nextID,
		Application: application.Clone(app),
		Status:      application.StatusDraft,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	m.nextID++
	m.apps[rec.ID] = rec
	return cloneStored(rec), nil
}

// Get returns the record with the given ID or ErrNotFound.
func (m *Memory) Get(ctx context.Context, id int) (Stored, error) {
	if err := ctx.Err(); err != nil {
		return Stored{}, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.apps[id]
	if !ok {
		return Stored{}, ErrNotFound
	}
	return cloneStored(rec), nil
}

// Update replaces the stored application and status, bumping UpdatedAt.
func (m *Memory) Update(ctx context.Context, id int, app application.Application, status application.Status) (Stored, error) {
	if err := ctx.Err(); err != nil {
		return Stored{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.apps[id]
	if !ok {
		return Stored{}, ErrNotFound
	}
	rec.Application = application.Clone(app)
	rec.Status = status
	rec.UpdatedAt = m.now()
	m.apps[id] = rec
	return cloneStored(rec), nil
}

// List returns every record ordered by ID.
func (m *Memory) List(ctx context.Context) ([]Stored, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Stored, 0, len(m.apps))
	for _, rec := range m.apps {
		out = append(out, cloneStored(rec))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func cloneStored(rec Stored) Stored {
	out := rec
	out.Application = application.Clone(rec.Application)
	return out
}

// MemoryFiles is an in-process Files backend.
type MemoryFiles struct {
	mu    sync.RWMutex
	files map[string]File
	now   func() time.Time
}

// NewMemoryFiles creates an empty in-memory file store.
func NewMemoryFiles() *MemoryFiles {
	return &MemoryFiles{
		files: make(map[string]File),
		now:   time.Now,
	}
}

// Put stores an uploaded file, overwriting any previous file with the name.
func (m *MemoryFiles) Put(ctx context.Context, file File) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if file.UploadedAt.IsZero() {
		file.UploadedAt = m.now()
	}
	file.Size = int64(len(file.Data))
	m.files[file.Name] = file
	return nil
}

// Get returns the file with the given name or ErrNotFound.
func (m *MemoryFiles) Get(ctx context.Context, name string) (File, error) {
	if err := ctx.Err(); err != nil {
		return File{}, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	file, ok := m.files[name]
	if !ok {
		return File{}, ErrNotFound
	}
	out := file
	out.Data = append([]byte(nil), file.Data...)
	return out, nil
}
