package domain

// Template is a named ordered sequence of section types. Applying one
// rebuilds the whole section list with fresh IDs and type defaults.
type Template struct {
	Key      string        `json:"key"`
	Name     string        `json:"name"`
	Sections []SectionType `json:"sections"`
}

// BuiltinTemplates returns the layouts that ship with the builder.
// More can be loaded from disk via the template registry.
func BuiltinTemplates() []Template {
	return []Template{
		{
			Key:      "minimal",
			Name:     "Minimal",
			Sections: []SectionType{SectionHero, SectionProductGrid},
		},
		{
			Key:  "classic",
			Name: "Classic",
			Sections: []SectionType{
				SectionHero,
				SectionFeatures,
				SectionProductGrid,
				SectionTestimonials,
				SectionNewsletter,
			},
		},
		{
			Key:  "full",
			Name: "Everything",
			Sections: []SectionType{
				SectionHero,
				SectionFeatures,
				SectionProductGrid,
				SectionGallery,
				SectionTestimonials,
				SectionFAQ,
				SectionNewsletter,
			},
		},
	}
}
