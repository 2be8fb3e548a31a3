package domain

import (
	"encoding/json"

	"github.com/google/uuid"
)

type SectionType string

const (
	SectionHero         SectionType = "hero"
	SectionFeatures     SectionType = "features"
	SectionProductGrid  SectionType = "product_grid"
	SectionTestimonials SectionType = "testimonials"
	SectionNewsletter   SectionType = "newsletter"
	SectionGallery      SectionType = "gallery"
	SectionFAQ          SectionType = "faq"
	SectionCustomHTML   SectionType = "custom_html"
)

// Section is one visual block (hero, product grid, etc.) within a
// storefront page document. Content and Styles are open maps whose shape
// depends on Type; only the type defaults give them structure, so new
// section types can be added without a schema change.
type Section struct {
	ID      string         `json:"id"`
	Type    SectionType    `json:"type"`
	Content map[string]any `json:"content"`
	Styles  map[string]any `json:"styles"`
	Visible bool           `json:"visible"`
}

// NewSection creates a section of the given type with a fresh ID and
// type-specific default content and styles.
func NewSection(t SectionType) Section {
	content, styles := SectionDefaults(t)
	return Section{
		ID:      uuid.New().String(),
		Type:    t,
		Content: content,
		Styles:  styles,
		Visible: true,
	}
}

// Clone returns a deep copy of the section. Content and Styles are copied
// recursively so snapshots never share mutable state with the live document.
func (s Section) Clone() Section {
	c := s
	c.Content = cloneMap(s.Content)
	c.Styles = cloneMap(s.Styles)
	return c
}

// UnmarshalJSON decodes a section, defaulting an absent "visible" field to
// true. Documents written before the visibility toggle existed have no
// "visible" key at all.
func (s *Section) UnmarshalJSON(data []byte) error {
	type alias Section
	aux := struct {
		*alias
		Visible *bool `json:"visible"`
	}{alias: (*alias)(s)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	s.Visible = aux.Visible == nil || *aux.Visible
	return nil
}

// SectionDefaults returns the default content and styles for a section type.
// Unknown types get empty maps.
func SectionDefaults(t SectionType) (content, styles map[string]any) {
	switch t {
	case SectionHero:
		return map[string]any{
				"title":    "Welcome to our store",
				"subtitle": "Premium products, delivered fast",
				"ctaText":  "Shop Now",
				"ctaLink":  "#products",
			}, map[string]any{
				"background": "gradient",
				"textAlign":  "center",
				"minHeight":  "480px",
			}
	case SectionFeatures:
		return map[string]any{
				"title": "Why shop with us",
				"items": []any{
					map[string]any{"icon": "truck", "title": "Fast Delivery", "text": "Same-day delivery in your area"},
					map[string]any{"icon": "shield", "title": "Lab Tested", "text": "Every product verified"},
					map[string]any{"icon": "star", "title": "Top Quality", "text": "Curated selection"},
				},
			}, map[string]any{
				"columns": float64(3),
				"padding": "64px",
			}
	case SectionProductGrid:
		return map[string]any{
				"title":      "Featured Products",
				"columns":    float64(4),
				"showPrices": true,
				"category":   "all",
			}, map[string]any{
				"gap":     "24px",
				"padding": "48px",
			}
	case SectionTestimonials:
		return map[string]any{
				"title": "What customers say",
				"items": []any{},
			}, map[string]any{
				"background": "muted",
			}
	case SectionNewsletter:
		return map[string]any{
				"title":       "Stay in the loop",
				"placeholder": "Your email",
				"buttonText":  "Subscribe",
			}, map[string]any{
				"background": "accent",
				"padding":    "48px",
			}
	case SectionGallery:
		return map[string]any{
				"title":  "Gallery",
				"images": []any{},
			}, map[string]any{
				"columns": float64(3),
			}
	case SectionFAQ:
		return map[string]any{
				"title": "Frequently Asked Questions",
				"items": []any{},
			}, map[string]any{
				"maxWidth": "720px",
			}
	case SectionCustomHTML:
		return map[string]any{
				"html": "",
			}, map[string]any{}
	}
	return map[string]any{}, map[string]any{}
}

// cloneMap deep-copies a JSON-shaped map (nested maps and slices included).
func cloneMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return cloneMap(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}
