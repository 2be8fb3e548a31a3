package builder

import "storefront/internal/domain"

// ─────────────────────────────────────────────────────────────
// History — linear undo/redo stack over document snapshots
// ─────────────────────────────────────────────────────────────

// Snapshot is an immutable copy of the document (sections and theme) at
// one point in edit history. Theme is versioned together with the section
// list so theme edits undo like any other edit.
type Snapshot struct {
	Sections []domain.Section `json:"sections"`
	Theme    domain.Theme     `json:"theme"`
}

// SnapshotOf deep-copies a document into a snapshot.
func SnapshotOf(doc domain.Document) Snapshot {
	c := doc.Clone()
	return Snapshot{Sections: c.Sections, Theme: c.Theme}
}

// Document converts the snapshot back into a live document (deep copy, so
// the snapshot stays immutable).
func (s Snapshot) Document() domain.Document {
	return domain.Document{Sections: s.Sections, Theme: s.Theme}.Clone()
}

// History is a linear, branch-free undo/redo stack. The cursor always
// points at the active snapshot; snapshots after it are redoable and are
// discarded on the next commit.
type History struct {
	snapshots []Snapshot
	cursor    int
}

// NewHistory creates a history holding a single initial snapshot.
func NewHistory(initial Snapshot) *History {
	return &History{snapshots: []Snapshot{initial}}
}

// Commit truncates any redo tail, appends the snapshot, and advances the
// cursor to it.
func (h *History) Commit(s Snapshot) {
	h.snapshots = append(h.snapshots[:h.cursor+1], s)
	h.cursor = len(h.snapshots) - 1
}

// Undo steps the cursor back and returns the now-active snapshot.
// At the oldest snapshot it is a silent no-op and returns ok=false.
func (h *History) Undo() (Snapshot, bool) {
	if h.cursor == 0 {
		return Snapshot{}, false
	}
	h.cursor--
	return h.snapshots[h.cursor], true
}

// Redo steps the cursor forward and returns the now-active snapshot.
// At the newest snapshot it is a silent no-op and returns ok=false.
func (h *History) Redo() (Snapshot, bool) {
	if h.cursor >= len(h.snapshots)-1 {
		return Snapshot{}, false
	}
	h.cursor++
	return h.snapshots[h.cursor], true
}

// Reset discards all history and starts over from a single snapshot.
// Used when a document is loaded: loading is not an undoable action.
func (h *History) Reset(s Snapshot) {
	h.snapshots = []Snapshot{s}
	h.cursor = 0
}

// Current returns the active snapshot.
func (h *History) Current() Snapshot {
	return h.snapshots[h.cursor]
}

// CanUndo reports whether an undo step is available.
func (h *History) CanUndo() bool { return h.cursor > 0 }

// CanRedo reports whether a redo step is available.
func (h *History) CanRedo() bool { return h.cursor < len(h.snapshots)-1 }

// Len returns the number of stored snapshots.
func (h *History) Len() int { return len(h.snapshots) }
