package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"storefront/internal/builder"
	"storefront/internal/domain"
)

func (s *Server) registerSectionTools() {
	// ── get_document ───────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("get_document",
		mcp.WithDescription("Get the full draft document (sections and theme) for a store"),
		mcp.WithString("storeId", mcp.Description("Store ID (optional, defaults to active store)")),
	), s.handleGetDocument)

	// ── add_section ────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("add_section",
		mcp.WithDescription("Append a new section to the storefront. Types: hero, features, product_grid, testimonials, newsletter, gallery, faq, custom_html"),
		mcp.WithString("type", mcp.Description("Section type"), mcp.Required()),
		mcp.WithString("storeId", mcp.Description("Store ID (optional, defaults to active store)")),
	), s.handleAddSection)

	// ── remove_section (destructive) ───────────────────
	s.mcp.AddTool(mcp.NewTool("remove_section",
		mcp.WithDescription("🛑 DESTRUCTIVE: Remove a section from the storefront."),
		mcp.WithString("sectionId", mcp.Description("Section ID to remove"), mcp.Required()),
		mcp.WithString("storeId", mcp.Description("Store ID (optional, defaults to active store)")),
		mcp.WithToolAnnotation(mcp.ToolAnnotation{DestructiveHint: boolPtr(true)}),
	), s.handleRemoveSection)

	// ── duplicate_section ──────────────────────────────
	s.mcp.AddTool(mcp.NewTool("duplicate_section",
		mcp.WithDescription("Duplicate a section in place (the copy lands right after the original)"),
		mcp.WithString("sectionId", mcp.Description("Section ID"), mcp.Required()),
		mcp.WithString("storeId", mcp.Description("Store ID (optional, defaults to active store)")),
	), s.handleDuplicateSection)

	// ── move_section ───────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("move_section",
		mcp.WithDescription("Move a section to a new position in the render order"),
		mcp.WithString("sectionId", mcp.Description("Section ID"), mcp.Required()),
		mcp.WithNumber("toIndex", mcp.Description("Target index (0-based)"), mcp.Required()),
		mcp.WithString("storeId", mcp.Description("Store ID (optional, defaults to active store)")),
	), s.handleMoveSection)

	// ── toggle_section ─────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("toggle_section",
		mcp.WithDescription("Toggle a section's visibility without removing it"),
		mcp.WithString("sectionId", mcp.Description("Section ID"), mcp.Required()),
		mcp.WithString("storeId", mcp.Description("Store ID (optional, defaults to active store)")),
	), s.handleToggleSection)

	// ── update_section_field ───────────────────────────
	s.mcp.AddTool(mcp.NewTool("update_section_field",
		mcp.WithDescription("Set one content or styles key on a section. Edits batch into a single undo step; call checkpoint (or save) when done."),
		mcp.WithString("sectionId", mcp.Description("Section ID"), mcp.Required()),
		mcp.WithString("field", mcp.Description("Either 'content' or 'styles'"), mcp.Required()),
		mcp.WithString("key", mcp.Description("Field key, e.g. 'title'"), mcp.Required()),
		mcp.WithString("value", mcp.Description("New value. JSON is decoded (42, true, [\"a\"]); anything else is stored as the literal string."), mcp.Required()),
		mcp.WithString("storeId", mcp.Description("Store ID (optional, defaults to active store)")),
	), s.handleUpdateSectionField)

	// ── apply_template ─────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("apply_template",
		mcp.WithDescription("Replace the entire section list from a named layout template (one undo step)"),
		mcp.WithString("key", mcp.Description("Template key, e.g. 'minimal'"), mcp.Required()),
		mcp.WithString("storeId", mcp.Description("Store ID (optional, defaults to active store)")),
	), s.handleApplyTemplate)

	// ── list_templates ─────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("list_templates",
		mcp.WithDescription("List the available layout templates"),
	), s.handleListTemplates)

	// ── set_theme ──────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("set_theme",
		mcp.WithDescription("Replace the storefront theme with a named preset (fresh, midnight, earthy)"),
		mcp.WithString("preset", mcp.Description("Preset name"), mcp.Required()),
		mcp.WithString("storeId", mcp.Description("Store ID (optional, defaults to active store)")),
	), s.handleSetTheme)

	// ── undo / redo ────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("undo",
		mcp.WithDescription("Undo the last edit on the store's document"),
		mcp.WithString("storeId", mcp.Description("Store ID (optional, defaults to active store)")),
	), s.handleUndo)

	s.mcp.AddTool(mcp.NewTool("redo",
		mcp.WithDescription("Redo the last undone edit on the store's document"),
		mcp.WithString("storeId", mcp.Description("Store ID (optional, defaults to active store)")),
	), s.handleRedo)

	// ── save / publish ─────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("save_draft",
		mcp.WithDescription("Persist the current draft document"),
		mcp.WithString("storeId", mcp.Description("Store ID (optional, defaults to active store)")),
	), s.handleSaveDraft)

	s.mcp.AddTool(mcp.NewTool("publish",
		mcp.WithDescription("Publish the current document as the live storefront"),
		mcp.WithString("storeId", mcp.Description("Store ID (optional, defaults to active store)")),
	), s.handlePublish)
}

// ── Handlers ───────────────────────────────────────────────

func (s *Server) handleGetDocument(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	storeID, err := s.resolveStoreID(req.GetArguments())
	if err != nil {
		return nil, err
	}
	doc, err := s.builder.Document(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}
	return jsonResult(doc)
}

func (s *Server) handleAddSection(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	sectionType, _ := args["type"].(string)
	if sectionType == "" {
		return nil, fmt.Errorf("type is required")
	}
	storeID, err := s.resolveStoreID(args)
	if err != nil {
		return nil, err
	}

	id, doc, err := s.builder.AddSection(ctx, storeID, domain.SectionType(sectionType))
	if err != nil {
		return nil, fmt.Errorf("add section: %w", err)
	}

	s.emitDocumentChanged(ctx, storeID)
	return jsonResult(map[string]any{"sectionId": id, "sections": len(doc.Sections)})
}

func (s *Server) handleRemoveSection(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	sectionID, _ := args["sectionId"].(string)
	storeID, err := s.resolveStoreID(args)
	if err != nil {
		return nil, err
	}

	// The destructive-tool annotation is the agent-side confirmation;
	// request and confirm run back to back here.
	if err := s.builder.RequestRemoval(ctx, storeID, sectionID); err != nil {
		return nil, fmt.Errorf("remove section: %w", err)
	}
	removed, err := s.builder.ConfirmRemoval(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("remove section: %w", err)
	}
	if !removed {
		return textResult("Nothing was pending removal"), nil
	}

	s.emitDocumentChanged(ctx, storeID)
	return textResult(fmt.Sprintf("Section %s removed", sectionID)), nil
}

func (s *Server) handleDuplicateSection(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	sectionID, _ := args["sectionId"].(string)
	storeID, err := s.resolveStoreID(args)
	if err != nil {
		return nil, err
	}
	if err := s.builder.DuplicateSection(ctx, storeID, sectionID); err != nil {
		return nil, fmt.Errorf("duplicate section: %w", err)
	}
	s.emitDocumentChanged(ctx, storeID)
	return textResult(fmt.Sprintf("Section %s duplicated", sectionID)), nil
}

func (s *Server) handleMoveSection(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	sectionID, _ := args["sectionId"].(string)
	toIndex, ok := args["toIndex"].(float64)
	if !ok {
		return nil, fmt.Errorf("toIndex is required")
	}
	storeID, err := s.resolveStoreID(args)
	if err != nil {
		return nil, err
	}
	if err := s.builder.MoveSection(ctx, storeID, sectionID, int(toIndex)); err != nil {
		return nil, fmt.Errorf("move section: %w", err)
	}
	s.emitDocumentChanged(ctx, storeID)
	return textResult(fmt.Sprintf("Section %s moved to index %d", sectionID, int(toIndex))), nil
}

func (s *Server) handleToggleSection(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	sectionID, _ := args["sectionId"].(string)
	storeID, err := s.resolveStoreID(args)
	if err != nil {
		return nil, err
	}
	if err := s.builder.ToggleVisibility(ctx, storeID, sectionID); err != nil {
		return nil, fmt.Errorf("toggle section: %w", err)
	}
	s.emitDocumentChanged(ctx, storeID)
	return textResult(fmt.Sprintf("Section %s visibility toggled", sectionID)), nil
}

func (s *Server) handleUpdateSectionField(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	sectionID, _ := args["sectionId"].(string)
	field, _ := args["field"].(string)
	key, _ := args["key"].(string)
	raw, _ := args["value"].(string)
	value := parseFieldValue(raw)
	if field != builder.FieldContent && field != builder.FieldStyles {
		return nil, fmt.Errorf("field must be %q or %q", builder.FieldContent, builder.FieldStyles)
	}
	storeID, err := s.resolveStoreID(args)
	if err != nil {
		return nil, err
	}
	if err := s.builder.UpdateField(ctx, storeID, sectionID, field, key, value); err != nil {
		return nil, fmt.Errorf("update field: %w", err)
	}
	return textResult(fmt.Sprintf("Set %s.%s on section %s", field, key, sectionID)), nil
}

// parseFieldValue decodes raw as JSON so agents can set numbers, booleans,
// and structured values through the string-typed tool argument. Values that
// are not valid JSON are kept as the literal string.
func parseFieldValue(raw string) any {
	var decoded any
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return raw
	}
	return decoded
}

func (s *Server) handleApplyTemplate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	key, _ := args["key"].(string)
	storeID, err := s.resolveStoreID(args)
	if err != nil {
		return nil, err
	}
	doc, err := s.builder.ApplyTemplate(ctx, storeID, key)
	if err != nil {
		return nil, fmt.Errorf("apply template: %w", err)
	}
	s.emitDocumentChanged(ctx, storeID)
	return jsonResult(doc)
}

func (s *Server) handleListTemplates(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.templates.List())
}

func (s *Server) handleSetTheme(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	preset, _ := args["preset"].(string)
	storeID, err := s.resolveStoreID(args)
	if err != nil {
		return nil, err
	}
	if err := s.builder.SetThemePreset(ctx, storeID, preset); err != nil {
		return nil, fmt.Errorf("set theme: %w", err)
	}
	s.emitDocumentChanged(ctx, storeID)
	return textResult(fmt.Sprintf("Theme set to %s", preset)), nil
}

func (s *Server) handleUndo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	storeID, err := s.resolveStoreID(req.GetArguments())
	if err != nil {
		return nil, err
	}
	doc, ok, err := s.builder.Undo(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("undo: %w", err)
	}
	if !ok {
		return textResult("Nothing to undo"), nil
	}
	s.emitDocumentChanged(ctx, storeID)
	return jsonResult(doc)
}

func (s *Server) handleRedo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	storeID, err := s.resolveStoreID(req.GetArguments())
	if err != nil {
		return nil, err
	}
	doc, ok, err := s.builder.Redo(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("redo: %w", err)
	}
	if !ok {
		return textResult("Nothing to redo"), nil
	}
	s.emitDocumentChanged(ctx, storeID)
	return jsonResult(doc)
}

func (s *Server) handleSaveDraft(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	storeID, err := s.resolveStoreID(req.GetArguments())
	if err != nil {
		return nil, err
	}
	if err := s.builder.SaveDraft(ctx, storeID); err != nil {
		return nil, fmt.Errorf("save draft: %w", err)
	}
	return textResult("Draft saved"), nil
}

func (s *Server) handlePublish(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	storeID, err := s.resolveStoreID(req.GetArguments())
	if err != nil {
		return nil, err
	}
	if err := s.builder.Publish(ctx, storeID); err != nil {
		return nil, fmt.Errorf("publish: %w", err)
	}
	return textResult("Storefront published"), nil
}
