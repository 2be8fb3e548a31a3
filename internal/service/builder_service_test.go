package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"storefront/internal/builder"
	"storefront/internal/domain"
	"storefront/internal/service"
)

func newBuilder(gw *memGateway) (*service.BuilderService, *service.MockEmitter) {
	emitter := &service.MockEmitter{}
	reg := service.NewTemplateRegistry("")
	return service.NewBuilderService(gw, reg, emitter), emitter
}

func TestBuilderService_EditFlow(t *testing.T) {
	ctx := context.Background()
	gw := newMemGateway()
	gw.seed("st-1")
	svc, emitter := newBuilder(gw)

	id, doc, err := svc.AddSection(ctx, "st-1", domain.SectionHero)
	if err != nil {
		t.Fatalf("add section: %v", err)
	}
	if len(doc.Sections) != 1 || doc.Sections[0].ID != id {
		t.Fatalf("unexpected document after add: %+v", doc.Sections)
	}

	if err := svc.UpdateField(ctx, "st-1", id, builder.FieldContent, "title", "Flash Sale"); err != nil {
		t.Fatalf("update field: %v", err)
	}
	if err := svc.Checkpoint(ctx, "st-1"); err != nil {
		t.Fatalf("checkpoint: %v", err)
	}

	doc, ok, err := svc.Undo(ctx, "st-1")
	if err != nil || !ok {
		t.Fatalf("undo: ok=%v err=%v", ok, err)
	}
	if doc.Sections[0].Content["title"] == "Flash Sale" {
		t.Fatal("undo must revert the checkpointed edit")
	}

	doc, ok, err = svc.Redo(ctx, "st-1")
	if err != nil || !ok {
		t.Fatalf("redo: ok=%v err=%v", ok, err)
	}
	if doc.Sections[0].Content["title"] != "Flash Sale" {
		t.Fatal("redo must restore the edit")
	}

	if len(emitter.Events) == 0 {
		t.Fatal("edits must emit document-changed events")
	}
}

func TestBuilderService_UnknownStore(t *testing.T) {
	svc, _ := newBuilder(newMemGateway())
	_, _, err := svc.AddSection(context.Background(), "ghost", domain.SectionHero)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestBuilderService_SaveGuardRejectsConcurrentSave(t *testing.T) {
	ctx := context.Background()
	gw := newMemGateway()
	gw.seed("st-1")
	gw.saveDelay = 150 * time.Millisecond
	svc, _ := newBuilder(gw)

	if _, _, err := svc.AddSection(ctx, "st-1", domain.SectionHero); err != nil {
		t.Fatalf("add section: %v", err)
	}

	first := make(chan error, 1)
	go func() { first <- svc.SaveDraft(ctx, "st-1") }()

	// Give the first save time to take the guard and hit the slow gateway.
	time.Sleep(30 * time.Millisecond)

	if err := svc.SaveDraft(ctx, "st-1"); !errors.Is(err, service.ErrSaveInFlight) {
		t.Fatalf("expected ErrSaveInFlight for the second submission, got %v", err)
	}

	if err := <-first; err != nil {
		t.Fatalf("first save failed: %v", err)
	}
	if gw.saves != 1 {
		t.Fatalf("expected exactly one save to reach the gateway, got %d", gw.saves)
	}

	// After completion the store is saveable again.
	if err := svc.SaveDraft(ctx, "st-1"); err != nil {
		t.Fatalf("save after completion: %v", err)
	}
}

func TestBuilderService_ApplyTemplate(t *testing.T) {
	ctx := context.Background()
	gw := newMemGateway()
	gw.seed("st-1")
	svc, _ := newBuilder(gw)

	for i := 0; i < 3; i++ {
		if _, _, err := svc.AddSection(ctx, "st-1", domain.SectionFAQ); err != nil {
			t.Fatalf("add section: %v", err)
		}
	}

	doc, err := svc.ApplyTemplate(ctx, "st-1", "minimal")
	if err != nil {
		t.Fatalf("apply template: %v", err)
	}
	if len(doc.Sections) != 2 ||
		doc.Sections[0].Type != domain.SectionHero ||
		doc.Sections[1].Type != domain.SectionProductGrid {
		t.Fatalf("minimal template must yield hero+product_grid, got %+v", doc.Sections)
	}

	if _, err := svc.ApplyTemplate(ctx, "st-1", "bogus"); !errors.Is(err, service.ErrUnknownTemplate) {
		t.Fatalf("expected ErrUnknownTemplate, got %v", err)
	}
}

func TestBuilderService_RemovalFlow(t *testing.T) {
	ctx := context.Background()
	gw := newMemGateway()
	gw.seed("st-1")
	svc, _ := newBuilder(gw)

	id, _, err := svc.AddSection(ctx, "st-1", domain.SectionHero)
	if err != nil {
		t.Fatalf("add section: %v", err)
	}

	if err := svc.RequestRemoval(ctx, "st-1", id); err != nil {
		t.Fatalf("request removal: %v", err)
	}
	_, _, pending, err := svc.UndoState(ctx, "st-1")
	if err != nil || pending != id {
		t.Fatalf("expected pending removal %s, got %q err=%v", id, pending, err)
	}

	removed, err := svc.ConfirmRemoval(ctx, "st-1")
	if err != nil || !removed {
		t.Fatalf("confirm removal: removed=%v err=%v", removed, err)
	}
	doc, err := svc.Document(ctx, "st-1")
	if err != nil || len(doc.Sections) != 0 {
		t.Fatalf("expected empty document after removal, got %d sections", len(doc.Sections))
	}
}

func TestBuilderService_SaveDirty(t *testing.T) {
	ctx := context.Background()
	gw := newMemGateway()
	gw.seed("st-1")
	gw.seed("st-2")
	svc, _ := newBuilder(gw)

	if _, _, err := svc.AddSection(ctx, "st-1", domain.SectionHero); err != nil {
		t.Fatalf("add section: %v", err)
	}
	if _, err := svc.OpenSession(ctx, "st-2"); err != nil { // open but clean
		t.Fatalf("open session: %v", err)
	}

	if errs := svc.SaveDirty(ctx); len(errs) != 0 {
		t.Fatalf("save dirty: %v", errs)
	}
	if gw.saves != 1 {
		t.Fatalf("expected only the dirty session to save, got %d saves", gw.saves)
	}
	if errs := svc.SaveDirty(ctx); len(errs) != 0 || gw.saves != 1 {
		t.Fatal("a clean session must not save again")
	}
}
