package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"storefront/internal/domain"
)

// PostgresDocumentStore implements domain.DocumentStore on Postgres for
// hosted deployments. Same shape as the SQLite store: full JSON snapshots
// per store.
type PostgresDocumentStore struct {
	conn *sql.DB
}

var _ domain.DocumentStore = (*PostgresDocumentStore)(nil)

// NewPostgresDocumentStore opens a Postgres connection from a DSN and runs
// the schema migrations.
func NewPostgresDocumentStore(dsn string) (*PostgresDocumentStore, error) {
	conn, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	s := &PostgresDocumentStore{conn: conn}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *PostgresDocumentStore) Close() error {
	return s.conn.Close()
}

func (s *PostgresDocumentStore) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS stores (
			id TEXT PRIMARY KEY,
			tenant_id TEXT NOT NULL,
			name TEXT NOT NULL,
			slug TEXT NOT NULL UNIQUE,
			published BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS documents (
			store_id TEXT PRIMARY KEY REFERENCES stores(id),
			draft_json TEXT NOT NULL DEFAULT '{}',
			published_json TEXT NOT NULL DEFAULT '',
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS tenant_credits (
			tenant_id TEXT PRIMARY KEY,
			credits INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_stores_tenant ON stores(tenant_id)`,
	}
	for _, m := range migrations {
		if _, err := s.conn.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// LoadDocument returns the draft document for a store.
func (s *PostgresDocumentStore) LoadDocument(ctx context.Context, storeID string) (domain.Document, error) {
	var raw string
	err := s.conn.QueryRowContext(ctx,
		`SELECT draft_json FROM documents WHERE store_id = $1`, storeID,
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
func (s *PostgresDocumentStore) SaveDraft(ctx context.Context, storeID string, doc domain.Document) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	res, err := s.conn.ExecContext(ctx,
		`UPDATE documents SET draft_json = $1, updated_at = NOW() WHERE store_id = $2`,
		string(raw), storeID,
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
// public-visibility flag.
func (s *PostgresDocumentStore) Publish(ctx context.Context, storeID string, doc domain.Document) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE documents SET draft_json = $1, published_json = $1, updated_at = NOW() WHERE store_id = $2`,
		string(raw), storeID,
	)
	if err != nil {
		return fmt.Errorf("publish document: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE stores SET published = TRUE, updated_at = NOW() WHERE id = $1`, storeID,
	); err != nil {
		return fmt.Errorf("flip published flag: %w", err)
	}
	return tx.Commit()
}

// Unpublish clears the public-visibility flag.
func (s *PostgresDocumentStore) Unpublish(ctx context.Context, storeID string) error {
	res, err := s.conn.ExecContext(ctx,
		`UPDATE stores SET published = FALSE, updated_at = NOW() WHERE id = $1`, storeID,
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
func (s *PostgresDocumentStore) SlugAvailable(ctx context.Context, slug string) (bool, error) {
	var count int
	err := s.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM stores WHERE slug = $1`, slug,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check slug: %w", err)
	}
	return count == 0, nil
}

// CreateStore creates a storefront for a tenant, spending one store credit.
func (s *PostgresDocumentStore) CreateStore(ctx context.Context, tenantID, name, slug string) (*domain.Store, error) {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO tenant_credits (tenant_id, credits) VALUES ($1, $2)
		 ON CONFLICT (tenant_id) DO NOTHING`,
		tenantID, DefaultStoreCredits,
	); err != nil {
		return nil, fmt.Errorf("seed credits: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE tenant_credits SET credits = credits - 1 WHERE tenant_id = $1 AND credits > 0`,
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
		 VALUES ($1, $2, $3, $4, FALSE, $5, $5)`,
		store.ID, store.TenantID, store.Name, store.Slug, now,
	); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return nil, domain.ErrSlugTaken
		}
		return nil, fmt.Errorf("insert store: %w", err)
	}

	raw, err := json.Marshal(domain.NewDocument())
	if err != nil {
		return nil, fmt.Errorf("encode starter document: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO documents (store_id, draft_json, updated_at) VALUES ($1, $2, $3)`,
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
func (s *PostgresDocumentStore) GetStore(ctx context.Context, storeID string) (*domain.Store, error) {
	st := &domain.Store{}
	err := s.conn.QueryRowContext(ctx,
		`SELECT id, tenant_id, name, slug, published, created_at, updated_at FROM stores WHERE id = $1`,
		storeID,
	).Scan(&st.ID, &st.TenantID, &st.Name, &st.Slug, &st.Published, &st.CreatedAt, &st.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get store: %w", err)
	}
	return st, nil
}
