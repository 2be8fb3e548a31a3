// Package server exposes the builder over a JSON HTTP API.
package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"storefront/internal/service"
)

// New builds the fiber app with all builder routes wired.
func New(builderSvc *service.BuilderService, storeSvc *service.StoreService, templates *service.TemplateRegistry) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "Storefront Builder",
	})

	app.Use(logger.New())

	// Stores
	app.Post("/stores", CreateStoreHandler(storeSvc))
	app.Get("/stores/:id", GetStoreHandler(storeSvc))
	app.Get("/slug-check", SlugCheckHandler(storeSvc))

	// Document lifecycle
	app.Get("/stores/:id/document", DocumentHandler(builderSvc))
	app.Post("/stores/:id/save", SaveDraftHandler(builderSvc))
	app.Post("/stores/:id/publish", PublishHandler(builderSvc))
	app.Post("/stores/:id/unpublish", UnpublishHandler(builderSvc))

	// Section edits
	app.Post("/stores/:id/sections", AddSectionHandler(builderSvc))
	app.Delete("/stores/:id/sections/:sectionId", RemoveSectionHandler(builderSvc))
	app.Post("/stores/:id/sections/:sectionId/duplicate", DuplicateSectionHandler(builderSvc))
	app.Post("/stores/:id/sections/:sectionId/toggle", ToggleSectionHandler(builderSvc))
	app.Post("/stores/:id/sections/:sectionId/move", MoveSectionHandler(builderSvc))
	app.Patch("/stores/:id/sections/:sectionId", UpdateFieldHandler(builderSvc))
	app.Post("/stores/:id/checkpoint", CheckpointHandler(builderSvc))

	// Templates and theme
	app.Get("/templates", TemplatesHandler(templates))
	app.Post("/stores/:id/template", ApplyTemplateHandler(builderSvc))
	app.Post("/stores/:id/theme", SetThemeHandler(builderSvc))

	// History
	app.Post("/stores/:id/undo", UndoHandler(builderSvc))
	app.Post("/stores/:id/redo", RedoHandler(builderSvc))
	app.Get("/stores/:id/history", HistoryStateHandler(builderSvc))

	return app
}
