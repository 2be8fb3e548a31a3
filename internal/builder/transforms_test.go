package builder_test

import (
	"testing"

	"storefront/internal/builder"
	"storefront/internal/domain"
)

func typesOf(list []domain.Section) []domain.SectionType {
	out := make([]domain.SectionType, len(list))
	for i, s := range list {
		out[i] = s.Type
	}
	return out
}

func TestAddSection_AppendsWithDefaults(t *testing.T) {
	list, id := builder.AddSection(nil, domain.SectionHero)
	if len(list) != 1 {
		t.Fatalf("expected 1 section, got %d", len(list))
	}
	if list[0].ID != id {
		t.Fatal("returned ID must match the appended section")
	}
	if !list[0].Visible {
		t.Fatal("new sections default to visible")
	}
	if list[0].Content["title"] == nil {
		t.Fatal("hero defaults should include a title")
	}
}

func TestAddSection_UnknownTypeGetsEmptyMaps(t *testing.T) {
	list, _ := builder.AddSection(nil, domain.SectionType("hologram"))
	if len(list[0].Content) != 0 || len(list[0].Styles) != 0 {
		t.Fatal("unknown section types get empty content and styles")
	}
}

func TestIDUniqueness_AddAndDuplicate(t *testing.T) {
	var list []domain.Section
	var lastID string
	for i := 0; i < 10; i++ {
		list, lastID = builder.AddSection(list, domain.SectionFeatures)
		list = builder.DuplicateSection(list, lastID)
	}

	seen := map[string]bool{}
	for _, s := range list {
		if seen[s.ID] {
			t.Fatalf("duplicate section ID %s", s.ID)
		}
		seen[s.ID] = true
	}
}

func TestDuplicateSection_Placement(t *testing.T) {
	list, _ := builder.AddSection(nil, domain.SectionHero)
	list, midID := builder.AddSection(list, domain.SectionGallery)
	list, _ = builder.AddSection(list, domain.SectionFAQ)

	out := builder.DuplicateSection(list, midID)
	if len(out) != len(list)+1 {
		t.Fatalf("expected length %d, got %d", len(list)+1, len(out))
	}
	if out[1].ID != midID {
		t.Fatal("original must stay in place")
	}
	if out[2].Type != domain.SectionGallery {
		t.Fatal("copy must sit immediately after the original")
	}
	if out[2].ID == midID {
		t.Fatal("copy must get a fresh ID")
	}
}

func TestDuplicateSection_DeepCopiesContent(t *testing.T) {
	list, id := builder.AddSection(nil, domain.SectionFeatures)
	out := builder.DuplicateSection(list, id)

	items := out[1].Content["items"].([]any)
	items[0].(map[string]any)["title"] = "changed"

	orig := out[0].Content["items"].([]any)[0].(map[string]any)["title"]
	if orig == "changed" {
		t.Fatal("duplicate must not share nested content with the original")
	}
}

func TestDuplicateSection_AbsentIDIsNoOp(t *testing.T) {
	list, _ := builder.AddSection(nil, domain.SectionHero)
	out := builder.DuplicateSection(list, "nope")
	if len(out) != len(list) {
		t.Fatalf("expected unchanged length %d, got %d", len(list), len(out))
	}
	if out[0].ID != list[0].ID {
		t.Fatal("contents must be identical for absent IDs")
	}
}

func TestRemoveSection(t *testing.T) {
	list, a := builder.AddSection(nil, domain.SectionHero)
	list, b := builder.AddSection(list, domain.SectionFAQ)

	out := builder.RemoveSection(list, a)
	if len(out) != 1 {
		t.Fatalf("expected 1 section after remove, got %d", len(out))
	}
	if out[0].ID != b {
		t.Fatal("the wrong section was removed")
	}

	// Absent ID leaves the list unchanged.
	same := builder.RemoveSection(out, "ghost")
	if len(same) != 1 || same[0].ID != b {
		t.Fatal("removing an absent ID must not change the list")
	}
}

func TestToggleVisibility_Idempotent(t *testing.T) {
	list, id := builder.AddSection(nil, domain.SectionNewsletter)

	once := builder.ToggleVisibility(list, id)
	if once[0].Visible {
		t.Fatal("first toggle should hide the section")
	}
	twice := builder.ToggleVisibility(once, id)
	if !twice[0].Visible {
		t.Fatal("second toggle must restore the original visibility")
	}
	// Input list untouched.
	if !list[0].Visible {
		t.Fatal("transforms must not mutate their input")
	}
}

func TestUpdateField(t *testing.T) {
	list, id := builder.AddSection(nil, domain.SectionHero)

	out, err := builder.UpdateField(list, id, builder.FieldContent, "title", "Hot Deals")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out[0].Content["title"] != "Hot Deals" {
		t.Fatalf("expected title update, got %v", out[0].Content["title"])
	}
	if list[0].Content["title"] == "Hot Deals" {
		t.Fatal("input list must stay unchanged")
	}

	out, err = builder.UpdateField(out, id, builder.FieldStyles, "background", "#000")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out[0].Styles["background"] != "#000" {
		t.Fatal("expected styles update")
	}
}

func TestUpdateField_RejectsUnknownField(t *testing.T) {
	list, id := builder.AddSection(nil, domain.SectionHero)
	if _, err := builder.UpdateField(list, id, "layout", "k", "v"); err == nil {
		t.Fatal("unknown field names are a caller bug and must error")
	}
}

func TestMoveSection(t *testing.T) {
	list, a := builder.AddSection(nil, domain.SectionHero)
	list, b := builder.AddSection(list, domain.SectionFeatures)
	list, c := builder.AddSection(list, domain.SectionFAQ)

	out := builder.MoveSection(list, c, 0)
	if out[0].ID != c || out[1].ID != a || out[2].ID != b {
		t.Fatalf("unexpected order after move: %v", typesOf(out))
	}

	// Relative order of the others is preserved when moving to the end.
	out = builder.MoveSection(list, a, 2)
	if out[0].ID != b || out[1].ID != c || out[2].ID != a {
		t.Fatalf("unexpected order after move to end: %v", typesOf(out))
	}
}

func TestMoveSection_ClampsIndex(t *testing.T) {
	list, a := builder.AddSection(nil, domain.SectionHero)
	list, _ = builder.AddSection(list, domain.SectionFAQ)

	out := builder.MoveSection(list, a, 99)
	if out[len(out)-1].ID != a {
		t.Fatal("over-range index clamps to the end")
	}
	out = builder.MoveSection(list, a, -5)
	if out[0].ID != a {
		t.Fatal("negative index clamps to the start")
	}
}

func TestBuildFromTemplate(t *testing.T) {
	var minimal domain.Template
	for _, tpl := range domain.BuiltinTemplates() {
		if tpl.Key == "minimal" {
			minimal = tpl
		}
	}

	list := builder.BuildFromTemplate(minimal)
	got := typesOf(list)
	want := []domain.SectionType{domain.SectionHero, domain.SectionProductGrid}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
	if list[0].ID == list[1].ID {
		t.Fatal("template sections must get fresh unique IDs")
	}
}
