// Package storage defines where submitted applications and uploaded documents
// live. The interfaces are small on purpose: backends range from the in-memory
// store used by tests to whatever database a deployment wires in.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/ezhumalaisanjay/go-rentalform/pkg/application"
)

// ErrNotFound is returned when a record or file does not exist.
var ErrNotFound = errors.New("storage: not found")

// Stored is a persisted application with the metadata the backend maintains.
type Stored struct {
	ID          int                     `json:"id"`
	Application application.Application `json:"application"`
	Status      application.Status      `json:"status"`
	CreatedAt   time.Time               `json:"createdAt"`
	UpdatedAt   time.Time               `json:"updatedAt"`
}

// Store persists application records. IDs are assigned by the backend on
// Create and are stable for the life of the record.
type Store interface {
	Create(ctx context.Context, app application.Application) (Stored, error)
	Get(ctx context.Context, id int) (Stored, error)
	Update(ctx context.Context, id int, app application.Application, status application.Status) (Stored, error)
	List(ctx context.Context) ([]Stored, error)
}

// File is an uploaded supporting document.
type File struct {
	Name        string    `json:"name"`
	ContentType string    `json:"contentType"`
	Data        []byte    `json:"-"`
	Size        int64     `json:"size"`
	UploadedAt  time.Time `json:"uploadedAt"`
}

// Files stores uploaded supporting documents by name.
type Files interface {
	Put(ctx context.Context, file File) error
	Get(ctx context.Context, name string) (File, error)
}
