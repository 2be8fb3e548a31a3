package builder

import (
	"fmt"

	"storefront/internal/domain"
)

// ─────────────────────────────────────────────────────────────
// Transforms — pure functions over the section list
// ─────────────────────────────────────────────────────────────
//
// Every transform returns a freshly allocated list and never mutates its
// input, so the history manager can keep old snapshots safely immutable.

// Field names accepted by UpdateField.
const (
	FieldContent = "content"
	FieldStyles  = "styles"
)

// AddSection appends a new section of the given type with type defaults
// and returns the new list plus the generated section ID, so the caller
// can auto-select it.
func AddSection(list []domain.Section, t domain.SectionType) ([]domain.Section, string) {
	s := domain.NewSection(t)
	out := make([]domain.Section, 0, len(list)+1)
	out = append(out, list...)
	out = append(out, s)
	return out, s.ID
}

// RemoveSection returns the list with the matching ID filtered out. The
// transform is unconditional; confirmation gating is the RemovalGate's
// concern.
func RemoveSection(list []domain.Section, id string) []domain.Section {
	out := make([]domain.Section, 0, len(list))
	for _, s := range list {
		if s.ID != id {
			out = append(out, s)
		}
	}
	return out
}

// DuplicateSection deep-copies the section with the given ID under a new
// ID and inserts the copy immediately after the original. An absent ID
// leaves the list unchanged.
func DuplicateSection(list []domain.Section, id string) []domain.Section {
	idx := indexOf(list, id)
	if idx < 0 {
		return list
	}
	dup := list[idx].Clone()
	dup.ID = domain.NewSection(dup.Type).ID

	out := make([]domain.Section, 0, len(list)+1)
	out = append(out, list[:idx+1]...)
	out = append(out, dup)
	out = append(out, list[idx+1:]...)
	return out
}

// ToggleVisibility flips the Visible flag of the matching section.
func ToggleVisibility(list []domain.Section, id string) []domain.Section {
	out := make([]domain.Section, len(list))
	copy(out, list)
	for i := range out {
		if out[i].ID == id {
			out[i].Visible = !out[i].Visible
		}
	}
	return out
}

// UpdateField sets section[field][key] = value for the matching section.
// field must be FieldContent or FieldStyles; anything else is a caller bug.
func UpdateField(list []domain.Section, id, field, key string, value any) ([]domain.Section, error) {
	if field != FieldContent && field != FieldStyles {
		return nil, fmt.Errorf("update field: unknown field %q (want %q or %q)", field, FieldContent, FieldStyles)
	}
	out := make([]domain.Section, len(list))
	copy(out, list)
	for i := range out {
		if out[i].ID != id {
			continue
		}
		s := out[i].Clone()
		target := s.Content
		if field == FieldStyles {
			target = s.Styles
		}
		if target == nil {
			target = map[string]any{}
			if field == FieldStyles {
				s.Styles = target
			} else {
				s.Content = target
			}
		}
		target[key] = value
		out[i] = s
	}
	return out, nil
}

// MoveSection relocates the section with the given ID to toIndex,
// preserving the relative order of everything else. Out-of-range indexes
// clamp to the list bounds; an absent ID leaves the list unchanged.
func MoveSection(list []domain.Section, id string, toIndex int) []domain.Section {
	idx := indexOf(list, id)
	if idx < 0 {
		return list
	}
	if toIndex < 0 {
		toIndex = 0
	}
	if toIndex > len(list)-1 {
		toIndex = len(list) - 1
	}

	out := make([]domain.Section, 0, len(list))
	out = append(out, list[:idx]...)
	out = append(out, list[idx+1:]...)

	moved := list[idx]
	out = append(out[:toIndex], append([]domain.Section{moved}, out[toIndex:]...)...)
	return out
}

// BuildFromTemplate builds a fresh section list from a template's ordered
// type sequence, each section with a fresh ID and type defaults.
func BuildFromTemplate(tpl domain.Template) []domain.Section {
	out := make([]domain.Section, 0, len(tpl.Sections))
	for _, t := range tpl.Sections {
		out = append(out, domain.NewSection(t))
	}
	return out
}

func indexOf(list []domain.Section, id string) int {
	for i, s := range list {
		if s.ID == id {
			return i
		}
	}
	return -1
}
