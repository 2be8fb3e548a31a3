package builder

import (
	"context"
	"fmt"

	"storefront/internal/domain"
)

// ─────────────────────────────────────────────────────────────
// Session — one editing session over one storefront document
// ─────────────────────────────────────────────────────────────

// Session owns a single storefront document, its undo history, and the
// pending-removal gate. A session is single-threaded: callers serialize
// access (the service layer holds one session per store behind a lock).
// Only the gateway calls do I/O.
type Session struct {
	storeID string
	gateway domain.DocumentStore

	doc     domain.Document
	history *History
	removal RemovalGate

	// pendingEdits tracks field edits not yet folded into a history step;
	// unsaved tracks any change since the last successful save.
	pendingEdits bool
	unsaved      bool
}

// NewSession creates a session for a store with an empty document. Call
// Load or Init before editing.
func NewSession(storeID string, gateway domain.DocumentStore) *Session {
	doc := domain.NewDocument()
	return &Session{
		storeID: storeID,
		gateway: gateway,
		doc:     doc,
		history: NewHistory(SnapshotOf(doc)),
	}
}

// StoreID returns the store this session edits.
func (s *Session) StoreID() string { return s.storeID }

// Load fetches the draft document from the gateway and resets history to a
// single snapshot of it. Prior history is intentionally discarded: loading
// is not an undoable action.
func (s *Session) Load(ctx context.Context) error {
	doc, err := s.gateway.LoadDocument(ctx, s.storeID)
	if err != nil {
		return fmt.Errorf("load document: %w", err)
	}
	s.Init(doc)
	return nil
}

// Init seeds the session with a document (used for brand-new stores where
// there is nothing to load yet).
func (s *Session) Init(doc domain.Document) {
	s.doc = doc.Clone()
	s.history.Reset(SnapshotOf(s.doc))
	s.removal.Cancel()
	s.pendingEdits = false
	s.unsaved = false
}

// Document returns a deep copy of the live document.
func (s *Session) Document() domain.Document {
	return s.doc.Clone()
}

// Dirty reports whether the session holds changes not yet saved.
func (s *Session) Dirty() bool {
	return s.unsaved || s.pendingEdits
}

// ── Structural edits (each is one history step) ────────────

// AddSection appends a section of the given type and returns its ID.
func (s *Session) AddSection(t domain.SectionType) string {
	s.Checkpoint()
	list, id := AddSection(s.doc.Sections, t)
	s.doc.Sections = list
	s.commit()
	return id
}

// DuplicateSection copies a section in place after the original.
// Unknown IDs are a no-op and do not produce a history step.
func (s *Session) DuplicateSection(id string) {
	list := DuplicateSection(s.doc.Sections, id)
	if len(list) == len(s.doc.Sections) {
		return
	}
	s.Checkpoint()
	s.doc.Sections = list
	s.commit()
}

// ToggleVisibility flips a section's visibility.
func (s *Session) ToggleVisibility(id string) error {
	if s.doc.FindSection(id) < 0 {
		return fmt.Errorf("toggle visibility: %w", domain.ErrNotFound)
	}
	s.Checkpoint()
	s.doc.Sections = ToggleVisibility(s.doc.Sections, id)
	s.commit()
	return nil
}

// MoveSection relocates a section to the target index.
func (s *Session) MoveSection(id string, toIndex int) error {
	if s.doc.FindSection(id) < 0 {
		return fmt.Errorf("move section: %w", domain.ErrNotFound)
	}
	s.Checkpoint()
	s.doc.Sections = MoveSection(s.doc.Sections, id, toIndex)
	s.commit()
	return nil
}

// ApplyTemplate replaces the entire section list from a template as a
// single history step, so one undo restores the prior full list.
func (s *Session) ApplyTemplate(tpl domain.Template) {
	s.Checkpoint()
	s.doc.Sections = BuildFromTemplate(tpl)
	s.commit()
}

// SetTheme replaces the theme wholesale (preset selection) as one step.
func (s *Session) SetTheme(theme domain.Theme) {
	s.Checkpoint()
	s.doc.Theme = theme
	s.commit()
}

// ── Field edits (batched, committed on Checkpoint) ─────────

// UpdateField sets one content or styles key on a section without pushing
// a history step. Edits accumulate until Checkpoint so keystroke-level
// changes don't flood the undo stack.
func (s *Session) UpdateField(id, field, key string, value any) error {
	if s.doc.FindSection(id) < 0 {
		return fmt.Errorf("update field: %w", domain.ErrNotFound)
	}
	list, err := UpdateField(s.doc.Sections, id, field, key, value)
	if err != nil {
		return err
	}
	s.doc.Sections = list
	s.pendingEdits = true
	return nil
}

// Checkpoint folds any accumulated field edits into a single history step.
// Called on blur/save by the UI, and implicitly before every structural
// edit so a structural step never swallows field edits.
func (s *Session) Checkpoint() {
	if !s.pendingEdits {
		return
	}
	s.pendingEdits = false
	s.commit()
}

// ── Removal gate ───────────────────────────────────────────

// RequestRemoval marks a section as pending deletion. The section must
// exist; requesting again replaces the pending ID.
func (s *Session) RequestRemoval(id string) error {
	if s.doc.FindSection(id) < 0 {
		return fmt.Errorf("request removal: %w", domain.ErrNotFound)
	}
	s.removal.Request(id)
	return nil
}

// PendingRemoval returns the section awaiting delete confirmation, if any.
func (s *Session) PendingRemoval() (string, bool) {
	return s.removal.Pending()
}

// ConfirmRemoval applies the pending removal as one history step.
// Returns false when nothing was pending.
func (s *Session) ConfirmRemoval() bool {
	id, ok := s.removal.Confirm()
	if !ok {
		return false
	}
	s.Checkpoint()
	s.doc.Sections = RemoveSection(s.doc.Sections, id)
	s.commit()
	return true
}

// CancelRemoval dismisses the pending removal.
func (s *Session) CancelRemoval() {
	s.removal.Cancel()
}

// ── Undo / redo ────────────────────────────────────────────

// Undo steps back one history entry. Pending field edits are checkpointed
// first so they become the step being undone. Returns false at the oldest
// state.
func (s *Session) Undo() bool {
	s.Checkpoint()
	snap, ok := s.history.Undo()
	if !ok {
		return false
	}
	s.doc = snap.Document()
	s.unsaved = true
	return true
}

// Redo steps forward one history entry. Returns false at the newest state.
func (s *Session) Redo() bool {
	snap, ok := s.history.Redo()
	if !ok {
		return false
	}
	s.doc = snap.Document()
	s.unsaved = true
	return true
}

// CanUndo reports whether an undo step is available.
func (s *Session) CanUndo() bool { return s.history.CanUndo() }

// CanRedo reports whether a redo step is available.
func (s *Session) CanRedo() bool { return s.history.CanRedo() }

// ── Persistence ────────────────────────────────────────────

// SaveDraft persists the full document through the gateway.
func (s *Session) SaveDraft(ctx context.Context) error {
	s.Checkpoint()
	if err := s.gateway.SaveDraft(ctx, s.storeID, s.doc); err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	s.unsaved = false
	return nil
}

// Publish persists the document as the live version.
func (s *Session) Publish(ctx context.Context) error {
	s.Checkpoint()
	if err := s.gateway.Publish(ctx, s.storeID, s.doc); err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	s.unsaved = false
	return nil
}

// Unpublish takes the store offline without touching the draft.
func (s *Session) Unpublish(ctx context.Context) error {
	if err := s.gateway.Unpublish(ctx, s.storeID); err != nil {
		return fmt.Errorf("unpublish: %w", err)
	}
	return nil
}

func (s *Session) commit() {
	s.history.Commit(SnapshotOf(s.doc))
	s.unsaved = true
}
