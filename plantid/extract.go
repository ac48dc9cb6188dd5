package plantid

import "log"

// Candidate is the canonical species candidate produced from a service
// response. Every consumer of identification results works with this one
// type; nothing downstream needs to shape-check raw service output.
type Candidate struct {
	ScientificName string   `json:"scientific_name"`
	CommonNames    []string `json:"common_names"`
	Probability    float64  `json:"probability"`
	Family         string   `json:"family"`
	Genus          string   `json:"genus"`
	Description    string   `json:"description"`
}

// ExtractCandidates converts a service response into an ordered candidate
// list, preserving the service's confidence ranking. A response carrying an
// error indicator, lacking suggestions, or a suggestion without a name, just
// yields fewer (or zero) candidates; this never fails.
func ExtractCandidates(resp *Response) []Candidate {
	candidates := []Candidate{}
	if resp == nil {
		return candidates
	}
	if resp.Error != "" {
		log.Printf("plantid: error in identification result: %s", resp.Error)
		return candidates
	}

	for _, suggestion := range resp.Suggestions {
		if suggestion.PlantName == "" {
			continue
		}
		candidates = append(candidates, Candidate{
			ScientificName: suggestion.PlantName,
			CommonNames:    suggestion.PlantDetails.CommonNames,
			Probability:    suggestion.Probability,
			Family:         suggestion.PlantDetails.Taxonomy.Family,
			Genus:          suggestion.PlantDetails.Taxonomy.Genus,
			Description:    suggestion.PlantDetails.WikiDescription.Value,
		})
	}
	return candidates
}
