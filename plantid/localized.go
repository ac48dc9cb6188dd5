package plantid

import "strings"

// Estonian common names keyed by lowercased scientific name.
var estonianNames = map[string]string{
	"taraxacum officinale": "Võilill",
	"bellis perennis":      "Kirikakar",
	"tulipa gesneriana":    "Tulp",
	"primula veris":        "Nurmenukk",
	"convallaria majalis":  "Maikelluke",
	"leucanthemum vulgare": "Härjasilm",
	"trifolium repens":     "Valge ristik",
	"campanula patula":     "Harilik kellukas",
}

// LocalizedCommonName resolves a localized common name for a species. Unmapped
// names fall back to the first service-provided common name containing
// Estonian vowels; otherwise the result is empty.
func LocalizedCommonName(scientificName string, commonNames []string) string {
	if scientificName == "" {
		return ""
	}
	if name, ok := estonianNames[strings.ToLower(scientificName)]; ok {
		return name
	}
	for _, cn := range commonNames {
		if strings.ContainsAny(strings.ToLower(cn), "õäöü") {
			return cn
		}
	}
	return ""
}
