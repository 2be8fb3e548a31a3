package builder_test

import (
	"fmt"
	"testing"

	"storefront/internal/builder"
	"storefront/internal/domain"
)

func snapWithTitle(title string) builder.Snapshot {
	doc := domain.NewDocument()
	doc.Sections = []domain.Section{{
		ID:      title,
		Type:    domain.SectionHero,
		Content: map[string]any{"title": title},
		Styles:  map[string]any{},
		Visible: true,
	}}
	return builder.SnapshotOf(doc)
}

func titleOf(s builder.Snapshot) string {
	if len(s.Sections) == 0 {
		return ""
	}
	t, _ := s.Sections[0].Content["title"].(string)
	return t
}

func TestHistory_UndoRedoSymmetry(t *testing.T) {
	const n = 5
	h := builder.NewHistory(snapWithTitle("initial"))
	for i := 1; i <= n; i++ {
		h.Commit(snapWithTitle(fmt.Sprintf("v%d", i)))
	}

	// N undos return to the initial state.
	var last builder.Snapshot
	for i := 0; i < n; i++ {
		snap, ok := h.Undo()
		if !ok {
			t.Fatalf("undo %d failed", i+1)
		}
		last = snap
	}
	if titleOf(last) != "initial" {
		t.Fatalf("after %d undos expected initial state, got %q", n, titleOf(last))
	}

	// N redos return to the final committed state.
	for i := 0; i < n; i++ {
		snap, ok := h.Redo()
		if !ok {
			t.Fatalf("redo %d failed", i+1)
		}
		last = snap
	}
	if titleOf(last) != fmt.Sprintf("v%d", n) {
		t.Fatalf("after %d redos expected v%d, got %q", n, n, titleOf(last))
	}
}

func TestHistory_BoundaryNoOps(t *testing.T) {
	h := builder.NewHistory(snapWithTitle("only"))
	if _, ok := h.Undo(); ok {
		t.Fatal("undo at oldest state should be a no-op")
	}
	if _, ok := h.Redo(); ok {
		t.Fatal("redo at newest state should be a no-op")
	}
	if h.Len() != 1 {
		t.Fatalf("expected 1 snapshot, got %d", h.Len())
	}
}

func TestHistory_CommitTruncatesRedo(t *testing.T) {
	h := builder.NewHistory(snapWithTitle("a"))
	h.Commit(snapWithTitle("b"))
	h.Commit(snapWithTitle("c"))

	if _, ok := h.Undo(); !ok {
		t.Fatal("undo failed")
	}
	if !h.CanRedo() {
		t.Fatal("expected redo to be available after undo")
	}

	h.Commit(snapWithTitle("d"))
	if h.CanRedo() {
		t.Fatal("commit must discard the redo tail")
	}
	if _, ok := h.Redo(); ok {
		t.Fatal("redo after truncating commit should be a no-op")
	}

	// The discarded "c" is unreachable; undoing walks a-b-d only.
	snap, _ := h.Undo()
	if titleOf(snap) != "b" {
		t.Fatalf("expected b under d, got %q", titleOf(snap))
	}
}

func TestHistory_ResetDiscardsEverything(t *testing.T) {
	h := builder.NewHistory(snapWithTitle("a"))
	h.Commit(snapWithTitle("b"))
	h.Commit(snapWithTitle("c"))

	h.Reset(snapWithTitle("loaded"))
	if h.Len() != 1 {
		t.Fatalf("expected 1 snapshot after reset, got %d", h.Len())
	}
	if h.CanUndo() || h.CanRedo() {
		t.Fatal("reset history must have no undo or redo")
	}
	if titleOf(h.Current()) != "loaded" {
		t.Fatalf("expected loaded snapshot, got %q", titleOf(h.Current()))
	}
}

func TestSnapshot_IsolatedFromLiveDocument(t *testing.T) {
	doc := domain.NewDocument()
	doc.Sections = []domain.Section{{
		ID:      "s1",
		Type:    domain.SectionHero,
		Content: map[string]any{"title": "before"},
		Visible: true,
	}}
	snap := builder.SnapshotOf(doc)

	doc.Sections[0].Content["title"] = "mutated"
	if titleOf(snap) != "before" {
		t.Fatal("snapshot must not share content maps with the live document")
	}
}
