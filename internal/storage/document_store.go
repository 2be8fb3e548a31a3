package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"storefront/internal/domain"
)

// DefaultStoreCredits is the number of storefronts a new tenant may create
// before topping up.
const DefaultStoreCredits = 3

// DocumentStore implements domain.DocumentStore using SQLite. Documents
// are persisted as full JSON snapshots: the gateway contract is
// snapshot-in, snapshot-out, so there is nothing to gain from a
// per-section table.
type DocumentStore struct {
	db *DB
}

// NewDocumentStore creates a DocumentStore.
func NewDocumentStore(db *DB) *DocumentStore {
	return &DocumentStore{db: db}
}

var _ domain.DocumentStore = (*DocumentStore)(nil)

// LoadDocument returns the draft document for a store.
func (s *DocumentStore) LoadDocument(ctx context.Context, storeID string) (domain.Document, error) {
	var raw string
	err := s.db.Conn().QueryRowContext(ctx,
		`SELECT draft_json FROM documents WHERE store_id = ?`, storeID,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Document{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Document{}, fmt.Errorf("load document: %w", err)
	}

	var doc domain.Document
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return domain.Document{}, fmt.Errorf("decode document: %w", err)
	}
	if doc.Sections == nil {
		doc.Sections = []domain.Section{}
	}
	return doc, nil
}

// SaveDraft persists a full draft snapshot.
func (s *DocumentStore) SaveDraft(ctx context.Context, storeID string, doc domain.Document) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	res, err := s.db.Conn().ExecContext(ctx,
		`UPDATE documents SET draft_json = ?, updated_at = ? WHERE store_id = ?`,
		string(raw), time.Now(), storeID,
	)
	if err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Publish persists the document as the live version and flips the store's
// public-visibility flag. Draft and published copy are written together so
// "publish" never leaves the draft behind.
func (s *DocumentStore) Publish(ctx context.Context, storeID string, doc domain.Document) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	tx, err := s.db.Conn().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()
	res, err := tx.ExecContext(ctx,
		`UPDATE documents SET draft_json = ?, published_json = ?, updated_at = ? WHERE store_id = ?`,
		string(raw), string(raw), now, storeID,
	)
	if err != nil {
		return fmt.Errorf("publish document: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE stores SET published = 1, updated_at = ? WHERE id = ?`, now, storeID,
	); err != nil {
		return fmt.Errorf("flip published flag: %w", err)
	}
	return tx.Commit()
}

// Unpublish clears the public-visibility flag, keeping the published copy.
func (s *DocumentStore) Unpublish(ctx context.Context, storeID string) error {
	res, err := s.db.Conn().ExecContext(ctx,
		`UPDATE stores SET published = 0, updated_at = ? WHERE id = ?`, time.Now(), storeID,
	)
	if err != nil {
		return fmt.Errorf("unpublish: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SlugAvailable reports whether no store currently claims slug.
func (s *DocumentStore) SlugAvailable(ctx context.Context, slug string) (bool, error) {
	var count int
	err := s.db.Conn().QueryRowContext(ctx,
		`SELECT COUNT(*) FROM stores WHERE slug = ?`, slug,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check slug: %w", err)
	}
	return count == 0, nil
}

// CreateStore creates a storefront for a tenant, spending one store credit.
// New tenants are seeded with DefaultStoreCredits on first use.
func (s *DocumentStore) CreateStore(ctx context.Context, tenantID, name, slug string) (*domain.Store, error) {
	tx, err := s.db.Conn().BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO tenant_credits (tenant_id, credits) VALUES (?, ?)
		 ON CONFLICT(tenant_id) DO NOTHING`,
		tenantID, DefaultStoreCredits,
	); err != nil {
		return nil, fmt.Errorf("seed credits: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE tenant_credits SET credits = credits - 1 WHERE tenant_id = ? AND credits > 0`,
		tenantID,
	)
	if err != nil {
		return nil, fmt.Errorf("spend credit: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, domain.ErrNoCredits
	}

	now := time.Now()
	store := &domain.Store{
		ID:        uuid.New().String(),
		TenantID:  tenantID,
		Name:      name,
		Slug:      slug,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO stores (id, tenant_id, name, slug, published, created_at, updated_at)
		 VALUES (?, ?, ?, ?, 0, ?, ?)`,
		store.ID, store.TenantID, store.Name, store.Slug, now, now,
	); err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrSlugTaken
		}
		return nil, fmt.Errorf("insert store: %w", err)
	}

	raw, err := json.Marshal(domain.NewDocument())
	if err != nil {
		return nil, fmt.Errorf("encode starter document: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO documents (store_id, draft_json, updated_at) VALUES (?, ?, ?)`,
		store.ID, string(raw), now,
	); err != nil {
		return nil, fmt.Errorf("insert document: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return store, nil
}

// GetStore returns a store record by ID.
func (s *DocumentStore) GetStore(ctx context.Context, storeID string) (*domain.Store, error) {
	st := &domain.Store{}
	var published int
	err := s.db.Conn().QueryRowContext(ctx,
		`SELECT id, tenant_id, name, slug, published, created_at, updated_at FROM stores WHERE id = ?`,
		storeID,
	).Scan(&st.ID, &st.TenantID, &st.Name, &st.Slug, &published, &st.CreatedAt, &st.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get store: %w", err)
	}
	st.Published = published != 0
	return st, nil
}

// Credits returns the remaining store credits for a tenant. Tenants that
// never created a store report the default grant.
func (s *DocumentStore) Credits(ctx context.Context, tenantID string) (int, error) {
	var credits int
	err := s.db.Conn().QueryRowContext(ctx,
		`SELECT credits FROM tenant_credits WHERE tenant_id = ?`, tenantID,
	).Scan(&credits)
	if errors.Is(err, sql.ErrNoRows) {
		return DefaultStoreCredits, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get credits: %w", err)
	}
	return credits, nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "unique")
}
