// Package store persists computed layout plans as an archive.
//
// The archive is distinct from the plan cache in pkg/cache: the cache is a
// content-addressed byte store with TTL eviction, while the archive keeps a
// queryable history of plans per workspace so earlier layouts can be
// inspected after their inputs change. Handler code depends on the Store
// interface, so the in-memory implementation (tests, local dev) and the
// MongoDB implementation (deployments) are interchangeable.
package store

import (
	"context"
	"time"

	"github.com/manwithacat/dazzle-sub005/pkg/layout"
)

// Entry is one archived plan together with its archive metadata.
type Entry struct {
	// ID uniquely identifies the archive entry.
	ID string `json:"id" bson:"_id"`

	// WorkspaceID and PersonaID identify the plan inputs. PersonaID is
	// empty for plans computed without a persona.
	WorkspaceID string `json:"workspace_id" bson:"workspace_id"`
	PersonaID   string `json:"persona_id,omitempty" bson:"persona_id,omitempty"`

	// Fingerprint is the content hash of the workspace declaration the
	// plan was computed from. Entries are upserted by fingerprint, so
	// re-archiving an unchanged workspace never duplicates.
	Fingerprint string `json:"fingerprint" bson:"fingerprint"`

	Plan *layout.LayoutPlan `json:"plan" bson:"plan"`

	StoredAt time.Time `json:"stored_at" bson:"stored_at"`
}

// Store is the plan archive interface.
type Store interface {
	// Put archives a plan, upserting by fingerprint.
	Put(ctx context.Context, entry *Entry) error

	// GetByFingerprint returns the archived plan for a workspace fingerprint.
	GetByFingerprint(ctx context.Context, fingerprint string) (*Entry, error)

	// ListByWorkspace returns archived plans for a workspace, newest first.
	// limit <= 0 means no limit.
	ListByWorkspace(ctx context.Context, workspaceID string, limit int) ([]Entry, error)

	// Delete removes an archived plan by fingerprint.
	Delete(ctx context.Context, fingerprint string) error

	// Ping checks if the backing store is reachable.
	Ping(ctx context.Context) error

	// Close releases all resources held by the store.
	Close(ctx context.Context) error
}

// ErrNotFound is returned when a requested entry does not exist.
type ErrNotFound struct {
	Key string
}

func (e *ErrNotFound) Error() string {
	return "plan not found: " + e.Key
}
