package service

import (
	"context"
	"fmt"

	"storefront/internal/domain"
	"storefront/internal/slug"
)

// ─────────────────────────────────────────────────────────────
// Store Service — storefront creation and lookup
// ─────────────────────────────────────────────────────────────

// StoreService handles storefront creation: slug suggestion, the
// three-rule slug validation, and the credit-spending create call.
type StoreService struct {
	gateway domain.DocumentStore
	emitter EventEmitter
}

// NewStoreService creates a StoreService.
func NewStoreService(gateway domain.DocumentStore, emitter EventEmitter) *StoreService {
	return &StoreService{gateway: gateway, emitter: emitter}
}

// CreateStore creates a storefront for a tenant. An empty proposed slug is
// auto-generated from the display name; either way the slug passes the
// full validation (length, pattern, uniqueness) before the create call.
func (s *StoreService) CreateStore(ctx context.Context, tenantID, name, proposedSlug string) (*domain.Store, error) {
	if name == "" {
		return nil, fmt.Errorf("store name is required")
	}
	candidate := proposedSlug
	if candidate == "" {
		candidate = slug.Generate(name)
	}
	if err := slug.Validate(ctx, candidate, s.gateway.SlugAvailable); err != nil {
		return nil, err
	}

	store, err := s.gateway.CreateStore(ctx, tenantID, name, candidate)
	if err != nil {
		return nil, fmt.Errorf("create store: %w", err)
	}
	s.emitter.Emit(ctx, "store:created", store)
	return store, nil
}

// CheckSlug validates a proposed slug without creating anything, for
// inline form feedback.
func (s *StoreService) CheckSlug(ctx context.Context, proposed string) error {
	return slug.Validate(ctx, proposed, s.gateway.SlugAvailable)
}

// SuggestSlug derives a slug candidate from a display name. The
// suggestion is not pre-validated.
func (s *StoreService) SuggestSlug(name string) string {
	return slug.Generate(name)
}

// GetStore returns a store record.
func (s *StoreService) GetStore(ctx context.Context, storeID string) (*domain.Store, error) {
	return s.gateway.GetStore(ctx, storeID)
}
