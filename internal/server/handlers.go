package server

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"storefront/internal/domain"
	"storefront/internal/service"
	"storefront/internal/slug"
)

// fail maps service errors onto HTTP statuses with a JSON error body.
func fail(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, slug.ErrTooShort), errors.Is(err, slug.ErrInvalidFormat):
		status = fiber.StatusUnprocessableEntity
	case errors.Is(err, slug.ErrTaken), errors.Is(err, domain.ErrSlugTaken),
		errors.Is(err, service.ErrSaveInFlight):
		status = fiber.StatusConflict
	case errors.Is(err, domain.ErrNoCredits):
		status = fiber.StatusPaymentRequired
	case errors.Is(err, service.ErrUnknownTemplate):
		status = fiber.StatusBadRequest
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

// ── Stores ─────────────────────────────────────────────────

type createStoreRequest struct {
	TenantID string `json:"tenantId"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
}

func CreateStoreHandler(stores *service.StoreService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req createStoreRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
		}
		if req.TenantID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "tenantId is required"})
		}
		store, err := stores.CreateStore(c.Context(), req.TenantID, req.Name, req.Slug)
		if err != nil {
			return fail(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(store)
	}
}

func GetStoreHandler(stores *service.StoreService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		store, err := stores.GetStore(c.Context(), c.Params("id"))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(store)
	}
}

func SlugCheckHandler(stores *service.StoreService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		proposed := c.Query("slug")
		if proposed == "" {
			proposed = stores.SuggestSlug(c.Query("name"))
		}
		if err := stores.CheckSlug(c.Context(), proposed); err != nil {
			if errors.Is(err, slug.ErrTooShort) || errors.Is(err, slug.ErrInvalidFormat) || errors.Is(err, slug.ErrTaken) {
				return c.JSON(fiber.Map{"slug": proposed, "available": false, "reason": err.Error()})
			}
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"slug": proposed, "available": true})
	}
}

// ── Document lifecycle ─────────────────────────────────────

func DocumentHandler(b *service.BuilderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		doc, err := b.Document(c.Context(), c.Params("id"))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(doc)
	}
}

func SaveDraftHandler(b *service.BuilderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := b.SaveDraft(c.Context(), c.Params("id")); err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"saved": true})
	}
}

func PublishHandler(b *service.BuilderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := b.Publish(c.Context(), c.Params("id")); err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"published": true})
	}
}

func UnpublishHandler(b *service.BuilderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := b.Unpublish(c.Context(), c.Params("id")); err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"published": false})
	}
}

// ── Section edits ──────────────────────────────────────────

type addSectionRequest struct {
	Type string `json:"type"`
}

func AddSectionHandler(b *service.BuilderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req addSectionRequest
		if err := c.BodyParser(&req); err != nil || req.Type == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "section type is required"})
		}
		id, doc, err := b.AddSection(c.Context(), c.Params("id"), domain.SectionType(req.Type))
		if err != nil {
			return fail(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"sectionId": id, "document": doc})
	}
}

// RemoveSectionHandler drives the two-phase removal gate in one request:
// the HTTP client confirmed in its own UI, so request and confirm happen
// back to back.
func RemoveSectionHandler(b *service.BuilderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		storeID := c.Params("id")
		if err := b.RequestRemoval(c.Context(), storeID, c.Params("sectionId")); err != nil {
			return fail(c, err)
		}
		removed, err := b.ConfirmRemoval(c.Context(), storeID)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"removed": removed})
	}
}

func DuplicateSectionHandler(b *service.BuilderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := b.DuplicateSection(c.Context(), c.Params("id"), c.Params("sectionId")); err != nil {
			return fail(c, err)
		}
		doc, err := b.Document(c.Context(), c.Params("id"))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(doc)
	}
}

func ToggleSectionHandler(b *service.BuilderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := b.ToggleVisibility(c.Context(), c.Params("id"), c.Params("sectionId")); err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"toggled": true})
	}
}

type moveSectionRequest struct {
	ToIndex int `json:"toIndex"`
}

func MoveSectionHandler(b *service.BuilderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req moveSectionRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
		}
		if err := b.MoveSection(c.Context(), c.Params("id"), c.Params("sectionId"), req.ToIndex); err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"moved": true})
	}
}

type updateFieldRequest struct {
	Field string `json:"field"`
	Key   string `json:"key"`
	Value any    `json:"value"`
}

func UpdateFieldHandler(b *service.BuilderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req updateFieldRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
		}
		if err := b.UpdateField(c.Context(), c.Params("id"), c.Params("sectionId"), req.Field, req.Key, req.Value); err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"updated": true})
	}
}

func CheckpointHandler(b *service.BuilderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := b.Checkpoint(c.Context(), c.Params("id")); err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"checkpointed": true})
	}
}

// ── Templates and theme ────────────────────────────────────

func TemplatesHandler(templates *service.TemplateRegistry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(templates.List())
	}
}

type applyTemplateRequest struct {
	Key string `json:"key"`
}

func ApplyTemplateHandler(b *service.BuilderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req applyTemplateRequest
		if err := c.BodyParser(&req); err != nil || req.Key == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "template key is required"})
		}
		doc, err := b.ApplyTemplate(c.Context(), c.Params("id"), req.Key)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(doc)
	}
}

type setThemeRequest struct {
	Preset string        `json:"preset"`
	Theme  *domain.Theme `json:"theme"`
}

func SetThemeHandler(b *service.BuilderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req setThemeRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
		}
		var err error
		switch {
		case req.Preset != "":
			err = b.SetThemePreset(c.Context(), c.Params("id"), req.Preset)
		case req.Theme != nil:
			err = b.SetTheme(c.Context(), c.Params("id"), *req.Theme)
		default:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "preset or theme is required"})
		}
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"themed": true})
	}
}

// ── History ────────────────────────────────────────────────

func UndoHandler(b *service.BuilderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		doc, ok, err := b.Undo(c.Context(), c.Params("id"))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"undone": ok, "document": doc})
	}
}

func RedoHandler(b *service.BuilderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		doc, ok, err := b.Redo(c.Context(), c.Params("id"))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"redone": ok, "document": doc})
	}
}

func HistoryStateHandler(b *service.BuilderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		canUndo, canRedo, pending, err := b.UndoState(c.Context(), c.Params("id"))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{
			"canUndo":        canUndo,
			"canRedo":        canRedo,
			"pendingRemoval": pending,
		})
	}
}
