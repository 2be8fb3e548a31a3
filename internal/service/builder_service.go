package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"storefront/internal/builder"
	"storefront/internal/domain"
)

// ─────────────────────────────────────────────────────────────
// Builder Service — editing sessions over storefront documents
// ─────────────────────────────────────────────────────────────

// ErrSaveInFlight is returned when a save or publish for the same store is
// already pending. The caller re-attempts once the first completes; no
// queueing.
var ErrSaveInFlight = errors.New("save already in flight")

// BuilderService holds one editing session per store and routes edit
// operations to it. Sessions are single-threaded; the service mutex
// serializes access, and the saving guard rejects double-submitted
// gateway calls before they ever queue on the mutex.
type BuilderService struct {
	gateway   domain.DocumentStore
	templates *TemplateRegistry
	emitter   EventEmitter
	saving    savingGuard

	mu       sync.Mutex
	sessions map[string]*builder.Session
}

// NewBuilderService creates a BuilderService.
func NewBuilderService(gateway domain.DocumentStore, templates *TemplateRegistry, emitter EventEmitter) *BuilderService {
	return &BuilderService{
		gateway:   gateway,
		templates: templates,
		emitter:   emitter,
		sessions:  make(map[string]*builder.Session),
	}
}

// session returns the session for a store, loading the document on first
// access. Callers hold s.mu.
func (s *BuilderService) session(ctx context.Context, storeID string) (*builder.Session, error) {
	if sess, ok := s.sessions[storeID]; ok {
		return sess, nil
	}
	sess := builder.NewSession(storeID, s.gateway)
	if err := sess.Load(ctx); err != nil {
		return nil, err
	}
	s.sessions[storeID] = sess
	return sess, nil
}

// OpenSession loads (or returns) the editing session for a store and
// hands back the current document.
func (s *BuilderService) OpenSession(ctx context.Context, storeID string) (domain.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.session(ctx, storeID)
	if err != nil {
		return domain.Document{}, err
	}
	return sess.Document(), nil
}

// CloseSession drops a session, discarding unsaved edits and history.
func (s *BuilderService) CloseSession(storeID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, storeID)
}

// Document returns the current document for a store.
func (s *BuilderService) Document(ctx context.Context, storeID string) (domain.Document, error) {
	return s.OpenSession(ctx, storeID)
}

// ── Edit operations ────────────────────────────────────────

// AddSection appends a section and returns its ID and the new document.
func (s *BuilderService) AddSection(ctx context.Context, storeID string, t domain.SectionType) (string, domain.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.session(ctx, storeID)
	if err != nil {
		return "", domain.Document{}, err
	}
	id := sess.AddSection(t)
	s.emitChanged(ctx, storeID)
	return id, sess.Document(), nil
}

// RequestRemoval marks a section as pending deletion.
func (s *BuilderService) RequestRemoval(ctx context.Context, storeID, sectionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.session(ctx, storeID)
	if err != nil {
		return err
	}
	return sess.RequestRemoval(sectionID)
}

// ConfirmRemoval applies the pending deletion, if any.
func (s *BuilderService) ConfirmRemoval(ctx context.Context, storeID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.session(ctx, storeID)
	if err != nil {
		return false, err
	}
	removed := sess.ConfirmRemoval()
	if removed {
		s.emitChanged(ctx, storeID)
	}
	return removed, nil
}

// CancelRemoval dismisses the pending deletion.
func (s *BuilderService) CancelRemoval(ctx context.Context, storeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.session(ctx, storeID)
	if err != nil {
		return err
	}
	sess.CancelRemoval()
	return nil
}

// DuplicateSection copies a section in place.
func (s *BuilderService) DuplicateSection(ctx context.Context, storeID, sectionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.session(ctx, storeID)
	if err != nil {
		return err
	}
	sess.DuplicateSection(sectionID)
	s.emitChanged(ctx, storeID)
	return nil
}

// ToggleVisibility flips a section's visibility.
func (s *BuilderService) ToggleVisibility(ctx context.Context, storeID, sectionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.session(ctx, storeID)
	if err != nil {
		return err
	}
	if err := sess.ToggleVisibility(sectionID); err != nil {
		return err
	}
	s.emitChanged(ctx, storeID)
	return nil
}

// MoveSection relocates a section to the target index.
func (s *BuilderService) MoveSection(ctx context.Context, storeID, sectionID string, toIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.session(ctx, storeID)
	if err != nil {
		return err
	}
	if err := sess.MoveSection(sectionID, toIndex); err != nil {
		return err
	}
	s.emitChanged(ctx, storeID)
	return nil
}

// UpdateField sets one content or styles key without creating a history
// step; call Checkpoint to fold accumulated edits into one.
func (s *BuilderService) UpdateField(ctx context.Context, storeID, sectionID, field, key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.session(ctx, storeID)
	if err != nil {
		return err
	}
	return sess.UpdateField(sectionID, field, key, value)
}

// Checkpoint commits accumulated field edits as a single history step.
func (s *BuilderService) Checkpoint(ctx context.Context, storeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.session(ctx, storeID)
	if err != nil {
		return err
	}
	sess.Checkpoint()
	s.emitChanged(ctx, storeID)
	return nil
}

// ApplyTemplate replaces the whole section list from a named template.
func (s *BuilderService) ApplyTemplate(ctx context.Context, storeID, templateKey string) (domain.Document, error) {
	tpl, ok := s.templates.Get(templateKey)
	if !ok {
		return domain.Document{}, fmt.Errorf("apply template: %w: %q", ErrUnknownTemplate, templateKey)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.session(ctx, storeID)
	if err != nil {
		return domain.Document{}, err
	}
	sess.ApplyTemplate(tpl)
	s.emitChanged(ctx, storeID)
	return sess.Document(), nil
}

// SetThemePreset replaces the theme with a named preset.
func (s *BuilderService) SetThemePreset(ctx context.Context, storeID, preset string) error {
	theme, ok := domain.ThemePreset(preset)
	if !ok {
		return fmt.Errorf("set theme: unknown preset %q", preset)
	}
	return s.SetTheme(ctx, storeID, theme)
}

// SetTheme replaces the theme wholesale.
func (s *BuilderService) SetTheme(ctx context.Context, storeID string, theme domain.Theme) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.session(ctx, storeID)
	if err != nil {
		return err
	}
	sess.SetTheme(theme)
	s.emitChanged(ctx, storeID)
	return nil
}

// ── Undo / redo ────────────────────────────────────────────

// Undo steps the store's document back one history entry.
func (s *BuilderService) Undo(ctx context.Context, storeID string) (domain.Document, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.session(ctx, storeID)
	if err != nil {
		return domain.Document{}, false, err
	}
	ok := sess.Undo()
	if ok {
		s.emitChanged(ctx, storeID)
	}
	return sess.Document(), ok, nil
}

// Redo steps the store's document forward one history entry.
func (s *BuilderService) Redo(ctx context.Context, storeID string) (domain.Document, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.session(ctx, storeID)
	if err != nil {
		return domain.Document{}, false, err
	}
	ok := sess.Redo()
	if ok {
		s.emitChanged(ctx, storeID)
	}
	return sess.Document(), ok, nil
}

// ── Persistence ────────────────────────────────────────────

// SaveDraft persists the store's document. A save already in flight for
// the same store is rejected with ErrSaveInFlight.
func (s *BuilderService) SaveDraft(ctx context.Context, storeID string) error {
	if !s.saving.TryLock(storeID) {
		return ErrSaveInFlight
	}
	defer s.saving.Unlock(storeID)

	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.session(ctx, storeID)
	if err != nil {
		return err
	}
	if err := sess.SaveDraft(ctx); err != nil {
		return err
	}
	s.emitter.Emit(ctx, "builder:saved", map[string]string{"storeId": storeID})
	return nil
}

// Publish persists the document as the live version. Shares the saving
// guard with SaveDraft so save and publish never race for one store.
func (s *BuilderService) Publish(ctx context.Context, storeID string) error {
	if !s.saving.TryLock(storeID) {
		return ErrSaveInFlight
	}
	defer s.saving.Unlock(storeID)

	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.session(ctx, storeID)
	if err != nil {
		return err
	}
	if err := sess.Publish(ctx); err != nil {
		return err
	}
	s.emitter.Emit(ctx, "builder:published", map[string]string{"storeId": storeID})
	return nil
}

// Unpublish takes the store offline without touching the draft.
func (s *BuilderService) Unpublish(ctx context.Context, storeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.session(ctx, storeID)
	if err != nil {
		return err
	}
	if err := sess.Unpublish(ctx); err != nil {
		return err
	}
	s.emitter.Emit(ctx, "builder:unpublished", map[string]string{"storeId": storeID})
	return nil
}

// SaveDirty saves every open session holding unsaved changes. Called by
// the autosave scheduler; per-store failures are reported but don't stop
// the sweep.
func (s *BuilderService) SaveDirty(ctx context.Context) []error {
	s.mu.Lock()
	var dirty []string
	for id, sess := range s.sessions {
		if sess.Dirty() {
			dirty = append(dirty, id)
		}
	}
	s.mu.Unlock()

	var errs []error
	for _, id := range dirty {
		if err := s.SaveDraft(ctx, id); err != nil && !errors.Is(err, ErrSaveInFlight) {
			errs = append(errs, fmt.Errorf("autosave %s: %w", id, err))
		}
	}
	return errs
}

// WaitSaves blocks until in-flight saves finish or ctx is cancelled.
// Used for graceful shutdown.
func (s *BuilderService) WaitSaves(ctx context.Context) {
	s.saving.WaitAll(ctx)
}

// UndoState reports undo/redo availability and any pending removal for a
// store's session, for the toolbar.
func (s *BuilderService) UndoState(ctx context.Context, storeID string) (canUndo, canRedo bool, pendingRemoval string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.session(ctx, storeID)
	if err != nil {
		return false, false, "", err
	}
	pending, _ := sess.PendingRemoval()
	return sess.CanUndo(), sess.CanRedo(), pending, nil
}

func (s *BuilderService) emitChanged(ctx context.Context, storeID string) {
	s.emitter.Emit(ctx, "builder:document-changed", map[string]string{"storeId": storeID})
}
