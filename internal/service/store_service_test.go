package service_test

import (
	"context"
	"errors"
	"testing"

	"storefront/internal/service"
	"storefront/internal/slug"
)

func TestStoreService_CreateWithGeneratedSlug(t *testing.T) {
	ctx := context.Background()
	gw := newMemGateway()
	svc := service.NewStoreService(gw, &service.MockEmitter{})

	store, err := svc.CreateStore(ctx, "tenant-1", "My Store!", "")
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	if store.Slug != "my-store" {
		t.Fatalf("expected generated slug my-store, got %q", store.Slug)
	}
}

func TestStoreService_RejectsBadSlug(t *testing.T) {
	ctx := context.Background()
	svc := service.NewStoreService(newMemGateway(), &service.MockEmitter{})

	// The raw display name fails the pattern even though its generated
	// form would pass.
	_, err := svc.CreateStore(ctx, "tenant-1", "My Store!", "My Store!")
	if !errors.Is(err, slug.ErrInvalidFormat) {
		t.Fatalf("expected ErrInvalidFormat, got %v", err)
	}

	_, err = svc.CreateStore(ctx, "tenant-1", "Ab", "ab")
	if !errors.Is(err, slug.ErrTooShort) {
		t.Fatalf("expected ErrTooShort, got %v", err)
	}
}

func TestStoreService_RejectsTakenSlug(t *testing.T) {
	ctx := context.Background()
	gw := newMemGateway()
	svc := service.NewStoreService(gw, &service.MockEmitter{})

	if _, err := svc.CreateStore(ctx, "tenant-1", "Green Leaf", "green-leaf"); err != nil {
		t.Fatalf("create store: %v", err)
	}
	_, err := svc.CreateStore(ctx, "tenant-2", "Copycat", "green-leaf")
	if !errors.Is(err, slug.ErrTaken) {
		t.Fatalf("expected ErrTaken, got %v", err)
	}
}

func TestStoreService_CheckSlug(t *testing.T) {
	ctx := context.Background()
	gw := newMemGateway()
	svc := service.NewStoreService(gw, &service.MockEmitter{})

	if err := svc.CheckSlug(ctx, "green-leaf-99"); err != nil {
		t.Fatalf("expected available slug, got %v", err)
	}
	if err := svc.CheckSlug(ctx, "ab"); !errors.Is(err, slug.ErrTooShort) {
		t.Fatalf("expected ErrTooShort, got %v", err)
	}
}

func TestStoreService_SuggestSlug(t *testing.T) {
	svc := service.NewStoreService(newMemGateway(), &service.MockEmitter{})
	if got := svc.SuggestSlug("Green  Leaf 99!"); got != "green-leaf-99" {
		t.Fatalf("expected green-leaf-99, got %q", got)
	}
}
