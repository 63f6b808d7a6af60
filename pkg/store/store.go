// Package store persists named board plans.
//
// This package defines an interface for plan storage with implementations
// for different backends:
//   - memory: In-memory storage for development/testing
//   - file: File-based storage for CLI applications
//   - mongo: MongoDB-backed storage for shared deployments
//
// Plans are stored as [plan.Document] values keyed by a generated ID, and
// can additionally be looked up by their user-assigned name. Saving a
// document whose name already exists replaces the previous plan.
package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/ringforge/ringforge/pkg/errors"
	"github.com/ringforge/ringforge/pkg/plan"
)

// Store persists board plan documents.
type Store interface {
	// Save stores a document. If the document has no ID one is assigned.
	// A document with the same name replaces the stored one. The saved
	// document is returned with its ID and creation time populated.
	Save(ctx context.Context, doc plan.Document) (plan.Document, error)

	// Get retrieves a document by ID.
	Get(ctx context.Context, id string) (plan.Document, error)

	// GetByName retrieves a document by its user-assigned name.
	GetByName(ctx context.Context, name string) (plan.Document, error)

	// List returns all stored documents, newest first.
	List(ctx context.Context) ([]plan.Document, error)

	// Delete removes a document by ID. Deleting a missing ID returns
	// ErrCodePlanNotFound.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// newID generates a store ID for a document.
func newID() string {
	return uuid.NewString()
}

// notFound builds the standard lookup error.
func notFound(what, key string) error {
	return errors.New(errors.ErrCodePlanNotFound, "plan not found: %s %s", what, key)
}
