// Package store persists named ZX diagrams for the HTTP server.
//
// A [Store] keeps serialized diagrams ([graph.Graph] documents) under
// generated ids. Two backends are provided: [MemoryStore] for tests and
// single-process serving, and [MongoStore] for deployments that need the
// collection to outlive the process.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/zxtools/zxviz/pkg/graph"
)

// ErrNotFound is returned when no document exists under the given id.
var ErrNotFound = errors.New("diagram not found")

// Document is one stored diagram with its metadata.
type Document struct {
	ID        string      `json:"id" bson:"_id"`
	Name      string      `json:"name" bson:"name"`
	Graph     graph.Graph `json:"graph" bson:"graph"`
	CreatedAt time.Time   `json:"created_at" bson:"created_at"`
}

// Store is the interface diagram store backends implement.
type Store interface {
	// Save stores a new document and returns its generated id.
	Save(ctx context.Context, name string, g graph.Graph) (string, error)

	// Get retrieves a document by id. Returns ErrNotFound if absent.
	Get(ctx context.Context, id string) (*Document, error)

	// List returns all documents ordered by creation time.
	List(ctx context.Context) ([]Document, error)

	// Delete removes a document. Returns ErrNotFound if absent.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// newID generates a document id.
func newID() string {
	return uuid.NewString()
}
