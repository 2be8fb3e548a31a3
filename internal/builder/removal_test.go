package builder_test

import (
	"testing"

	"storefront/internal/builder"
)

func TestRemovalGate_RequestConfirm(t *testing.T) {
	var g builder.RemovalGate

	if _, ok := g.Pending(); ok {
		t.Fatal("zero-value gate must be idle")
	}

	g.Request("s1")
	if id, ok := g.Pending(); !ok || id != "s1" {
		t.Fatalf("expected pending s1, got %q ok=%v", id, ok)
	}

	id, ok := g.Confirm()
	if !ok || id != "s1" {
		t.Fatalf("expected confirmed s1, got %q ok=%v", id, ok)
	}
	if _, ok := g.Pending(); ok {
		t.Fatal("gate must return to idle after confirm")
	}
}

func TestRemovalGate_Cancel(t *testing.T) {
	var g builder.RemovalGate
	g.Request("s1")
	g.Cancel()
	if _, ok := g.Confirm(); ok {
		t.Fatal("confirm after cancel must be a no-op")
	}
}

func TestRemovalGate_SecondRequestReplacesPending(t *testing.T) {
	var g builder.RemovalGate
	g.Request("s1")
	g.Request("s2")
	if id, _ := g.Pending(); id != "s2" {
		t.Fatalf("expected pending s2, got %q", id)
	}
	// Exactly one removal is pending at a time.
	if id, _ := g.Confirm(); id != "s2" {
		t.Fatalf("expected s2 to confirm, got %q", id)
	}
	if _, ok := g.Confirm(); ok {
		t.Fatal("only one pending removal may confirm")
	}
}

func TestRemovalGate_ConfirmWhileIdle(t *testing.T) {
	var g builder.RemovalGate
	if _, ok := g.Confirm(); ok {
		t.Fatal("confirm on an idle gate must be a no-op")
	}
}
