package service

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"
)

// ─────────────────────────────────────────────────────────────
// AutosaveScheduler — periodic draft saves of dirty sessions
// ─────────────────────────────────────────────────────────────

// AutosaveScheduler periodically sweeps open editing sessions and saves
// any that hold unsaved changes, so a crashed browser tab loses at most
// one interval of work. Explicit saves remain the primary path; autosave
// is a backstop.
type AutosaveScheduler struct {
	builder *BuilderService
	sched   *cron.Cron
}

// NewAutosaveScheduler creates a scheduler over a builder service.
func NewAutosaveScheduler(builder *BuilderService) *AutosaveScheduler {
	return &AutosaveScheduler{builder: builder}
}

// Start begins the sweep on the given cron expression (e.g. "@every 30s").
func (a *AutosaveScheduler) Start(ctx context.Context, spec string) error {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		for _, err := range a.builder.SaveDirty(ctx) {
			log.Printf("autosave: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("autosave: invalid schedule %q: %w", spec, err)
	}
	c.Start()
	a.sched = c
	log.Printf("autosave: scheduled %q", spec)
	return nil
}

// Stop halts the sweep. Running saves finish.
func (a *AutosaveScheduler) Stop() {
	if a.sched != nil {
		a.sched.Stop()
		a.sched = nil
	}
}
