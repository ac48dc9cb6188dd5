package plantid

// Canned suggestion set used in simulation mode, mirroring common meadow
// species. The first entries sit above the significance threshold, the last
// ones below it, so the full pipeline can be exercised offline.
var simulatedSuggestions = []Suggestion{
	{
		PlantName:   "Taraxacum officinale",
		Probability: 0.95,
		PlantDetails: PlantDetails{
			CommonNames: []string{"Võilill", "Dandelion", "Common dandelion"},
			Taxonomy:    Taxonomy{Family: "Asteraceae", Genus: "Taraxacum"},
			URL:         "https://en.wikipedia.org/wiki/Taraxacum_officinale",
		},
	},
	{
		PlantName:   "Bellis perennis",
		Probability: 0.92,
		PlantDetails: PlantDetails{
			CommonNames: []string{"Kirikakar", "Common daisy", "Lawn daisy"},
			Taxonomy:    Taxonomy{Family: "Asteraceae", Genus: "Bellis"},
			URL:         "https://en.wikipedia.org/wiki/Bellis_perennis",
		},
	},
	{
		PlantName:   "Tulipa gesneriana",
		Probability: 0.98,
		PlantDetails: PlantDetails{
			CommonNames: []string{"Tulp", "Garden tulip", "Didier's tulip"},
			Taxonomy:    Taxonomy{Family: "Liliaceae", Genus: "Tulipa"},
			URL:         "https://en.wikipedia.org/wiki/Tulipa_gesneriana",
		},
	},
	{
		PlantName:   "Primula veris",
		Probability: 0.91,
		PlantDetails: PlantDetails{
			CommonNames: []string{"Nurmenukk", "Cowslip", "Spring primrose"},
			Taxonomy:    Taxonomy{Family: "Primulaceae", Genus: "Primula"},
			URL:         "https://en.wikipedia.org/wiki/Primula_veris",
		},
	},
	{
		PlantName:   "Convallaria majalis",
		Probability: 0.94,
		PlantDetails: PlantDetails{
			CommonNames: []string{"Maikelluke", "Lily of the valley"},
			Taxonomy:    Taxonomy{Family: "Asparagaceae", Genus: "Convallaria"},
			URL:         "https://en.wikipedia.org/wiki/Lily_of_the_valley",
		},
	},
	{
		PlantName:   "Leucanthemum vulgare",
		Probability: 0.42,
		PlantDetails: PlantDetails{
			CommonNames: []string{"Härjasilm", "Oxeye daisy", "Marguerite"},
			Taxonomy:    Taxonomy{Family: "Asteraceae", Genus: "Leucanthemum"},
			URL:         "https://en.wikipedia.org/wiki/Leucanthemum_vulgare",
		},
	},
	{
		PlantName:   "Trifolium repens",
		Probability: 0.38,
		PlantDetails: PlantDetails{
			CommonNames: []string{"Valge ristik", "White clover", "Dutch clover"},
			Taxonomy:    Taxonomy{Family: "Fabaceae", Genus: "Trifolium"},
			URL:         "https://en.wikipedia.org/wiki/Trifolium_repens",
		},
	},
	{
		PlantName:   "Campanula patula",
		Probability: 0.45,
		PlantDetails: PlantDetails{
			CommonNames: []string{"Harilik kellukas", "Spreading bellflower"},
			Taxonomy:    Taxonomy{Family: "Campanulaceae", Genus: "Campanula"},
			URL:         "https://en.wikipedia.org/wiki/Campanula_patula",
		},
	},
}

func simulatedResponse() *Response {
	suggestions := make([]Suggestion, len(simulatedSuggestions))
	copy(suggestions, simulatedSuggestions)
	return &Response{Suggestions: suggestions}
}
