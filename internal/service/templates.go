package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"storefront/internal/domain"
)

// ErrUnknownTemplate is returned when a template key resolves to nothing.
var ErrUnknownTemplate = errors.New("unknown template")

// ─────────────────────────────────────────────────────────────
// TemplateRegistry — built-in + file-based layout templates
// ─────────────────────────────────────────────────────────────

// TemplateRegistry serves layout templates: the built-ins plus any *.json
// files in the templates directory. File templates shadow built-ins with
// the same key, so operators can override the stock layouts without a
// deploy.
type TemplateRegistry struct {
	dir string

	mu        sync.RWMutex
	templates map[string]domain.Template

	watchCancel context.CancelFunc
	watcher     *fsnotify.Watcher
}

// NewTemplateRegistry creates a registry. dir may be empty to serve only
// the built-ins.
func NewTemplateRegistry(dir string) *TemplateRegistry {
	r := &TemplateRegistry{dir: dir}
	r.Reload()
	return r
}

// Get returns a template by key.
func (r *TemplateRegistry) Get(key string) (domain.Template, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tpl, ok := r.templates[key]
	return tpl, ok
}

// List returns all templates, built-ins first, file templates after.
func (r *TemplateRegistry) List() []domain.Template {
	r.mu.RLock()
	defer r.mu.RUnlock()

	builtins := domain.BuiltinTemplates()
	seen := make(map[string]bool, len(builtins))
	out := make([]domain.Template, 0, len(r.templates))
	for _, b := range builtins {
		out = append(out, r.templates[b.Key])
		seen[b.Key] = true
	}
	for key, tpl := range r.templates {
		if !seen[key] {
			out = append(out, tpl)
		}
	}
	return out
}

// Reload rebuilds the registry from built-ins plus the templates dir.
func (r *TemplateRegistry) Reload() {
	templates := make(map[string]domain.Template)
	for _, tpl := range domain.BuiltinTemplates() {
		templates[tpl.Key] = tpl
	}

	if r.dir != "" {
		entries, err := os.ReadDir(r.dir)
		if err != nil && !os.IsNotExist(err) {
			log.Printf("template registry: read dir %q: %v", r.dir, err)
		}
		for _, e := range entries {
			if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
				continue
			}
			tpl, err := loadTemplateFile(filepath.Join(r.dir, e.Name()))
			if err != nil {
				log.Printf("template registry: skip %s: %v", e.Name(), err)
				continue
			}
			templates[tpl.Key] = tpl
		}
	}

	r.mu.Lock()
	r.templates = templates
	r.mu.Unlock()
}

// Watch starts watching the templates dir and reloads on change. Events
// are debounced so editors that write twice don't trigger double reloads.
func (r *TemplateRegistry) Watch(ctx context.Context) error {
	if r.dir == "" {
		return nil
	}
	if err := os.MkdirAll(r.dir, 0755); err != nil {
		return fmt.Errorf("create templates dir: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(r.dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watch templates dir: %w", err)
	}
	r.watcher = watcher

	watchCtx, cancel := context.WithCancel(ctx)
	r.watchCancel = cancel

	go func() {
		var reload *time.Timer
		for {
			select {
			case <-watchCtx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) {
					continue
				}
				if reload != nil {
					reload.Stop()
				}
				reload = time.AfterFunc(500*time.Millisecond, func() {
					log.Printf("template registry: %s changed, reloading", event.Name)
					r.Reload()
				})
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("template registry: watcher error: %v", err)
			}
		}
	}()

	log.Printf("template registry: watching %s", r.dir)
	return nil
}

// Stop tears down the watcher.
func (r *TemplateRegistry) Stop() {
	if r.watchCancel != nil {
		r.watchCancel()
		r.watchCancel = nil
	}
	if r.watcher != nil {
		r.watcher.Close()
		r.watcher = nil
	}
}

func loadTemplateFile(path string) (domain.Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Template{}, err
	}
	var tpl domain.Template
	if err := json.Unmarshal(data, &tpl); err != nil {
		return domain.Template{}, fmt.Errorf("parse template: %w", err)
	}
	if tpl.Key == "" {
		return domain.Template{}, errors.New("template is missing a key")
	}
	if len(tpl.Sections) == 0 {
		return domain.Template{}, errors.New("template has no sections")
	}
	return tpl, nil
}
