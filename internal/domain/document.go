package domain

import (
	"context"
	"time"
)

// Document is the full layout of one storefront: an ordered list of
// sections plus the theme. Section IDs are unique within a document and
// list order is render order.
type Document struct {
	Sections []Section `json:"sections"`
	Theme    Theme     `json:"theme"`
}

// NewDocument returns an empty document with the default theme.
func NewDocument() Document {
	return Document{Sections: []Section{}, Theme: DefaultTheme()}
}

// Clone returns a deep copy of the document.
func (d Document) Clone() Document {
	out := Document{Theme: d.Theme, Sections: make([]Section, len(d.Sections))}
	for i, s := range d.Sections {
		out.Sections[i] = s.Clone()
	}
	return out
}

// FindSection returns the index of the section with the given ID, or -1.
func (d Document) FindSection(id string) int {
	for i, s := range d.Sections {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// Store is one tenant storefront: the record the document hangs off.
type Store struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenantId"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Published bool      `json:"published"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DocumentStore is the persistence gateway the builder core talks to.
// Implementations live in internal/storage (SQLite for local use, Postgres
// for hosted deployments).
type DocumentStore interface {
	// LoadDocument returns the current draft document for a store.
	// Returns ErrNotFound when the store does not exist.
	LoadDocument(ctx context.Context, storeID string) (Document, error)

	// SaveDraft persists a full draft snapshot.
	SaveDraft(ctx context.Context, storeID string, doc Document) error

	// Publish persists the document as the live version and flips the
	// store's public-visibility flag.
	Publish(ctx context.Context, storeID string, doc Document) error

	// Unpublish clears the public-visibility flag. The published copy is
	// kept so re-publishing without edits is cheap.
	Unpublish(ctx context.Context, storeID string) error

	// SlugAvailable reports whether no store currently claims slug.
	SlugAvailable(ctx context.Context, slug string) (bool, error)

	// CreateStore creates a storefront for a tenant, spending one store
	// credit. Returns ErrSlugTaken or ErrNoCredits on the respective
	// failures.
	CreateStore(ctx context.Context, tenantID, name, slug string) (*Store, error)

	// GetStore returns a store record by ID. Returns ErrNotFound when absent.
	GetStore(ctx context.Context, storeID string) (*Store, error)
}
