package domain

// ThemeColors holds the fixed color slots every storefront theme defines.
type ThemeColors struct {
	Primary    string `json:"primary"`
	Secondary  string `json:"secondary"`
	Accent     string `json:"accent"`
	Background string `json:"background"`
	Text       string `json:"text"`
}

// Typography holds font settings for a theme.
type Typography struct {
	FontFamily string `json:"fontFamily"`
}

// Theme is the storefront-wide look: one instance per document, replaced
// wholesale when a preset is selected, individual fields patchable.
type Theme struct {
	Colors     ThemeColors `json:"colors"`
	Typography Typography  `json:"typography"`
}

// DefaultTheme returns the theme a new storefront starts with.
func DefaultTheme() Theme {
	t, _ := ThemePreset("fresh")
	return t
}

// ThemePreset looks up a named full theme. The second return is false for
// unknown names.
func ThemePreset(name string) (Theme, bool) {
	switch name {
	case "fresh":
		return Theme{
			Colors: ThemeColors{
				Primary:    "#16a34a",
				Secondary:  "#15803d",
				Accent:     "#facc15",
				Background: "#ffffff",
				Text:       "#1f2937",
			},
			Typography: Typography{FontFamily: "Inter"},
		}, true
	case "midnight":
		return Theme{
			Colors: ThemeColors{
				Primary:    "#8b5cf6",
				Secondary:  "#6d28d9",
				Accent:     "#22d3ee",
				Background: "#0f0f14",
				Text:       "#e5e7eb",
			},
			Typography: Typography{FontFamily: "Space Grotesk"},
		}, true
	case "earthy":
		return Theme{
			Colors: ThemeColors{
				Primary:    "#92400e",
				Secondary:  "#78350f",
				Accent:     "#d97706",
				Background: "#fefce8",
				Text:       "#292524",
			},
			Typography: Typography{FontFamily: "Lora"},
		}, true
	}
	return Theme{}, false
}

// ThemePresetNames lists the available preset names in display order.
func ThemePresetNames() []string {
	return []string{"fresh", "midnight", "earthy"}
}
