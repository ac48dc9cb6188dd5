package plantid

import "encoding/json"

// Response is the recognition service's reply: an optional error indicator
// plus an ordered list of suggestions, ranked by confidence on the service
// side.
type Response struct {
	Error       string       `json:"error,omitempty"`
	Suggestions []Suggestion `json:"suggestions"`
}

// Suggestion is one ranked candidate as reported by the service.
type Suggestion struct {
	PlantName    string       `json:"plant_name"`
	Probability  float64      `json:"probability"`
	PlantDetails PlantDetails `json:"plant_details"`
}

// PlantDetails carries descriptive metadata for a suggestion. The service is
// not always well-behaved here, so malformed blocks decode to zero values
// rather than failing the whole response.
type PlantDetails struct {
	CommonNames     []string        `json:"common_names"`
	Taxonomy        Taxonomy        `json:"taxonomy"`
	WikiDescription WikiDescription `json:"wiki_description"`
	URL             string          `json:"url"`
}

type Taxonomy struct {
	Family string `json:"family"`
	Genus  string `json:"genus"`
}

type WikiDescription struct {
	Value string `json:"value"`
}

func (d *PlantDetails) UnmarshalJSON(data []byte) error {
	type alias PlantDetails
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		// non-mapping details block degrades to empty defaults
		*d = PlantDetails{}
		return nil
	}
	*d = PlantDetails(a)
	return nil
}

func (t *Taxonomy) UnmarshalJSON(data []byte) error {
	type alias Taxonomy
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		*t = Taxonomy{}
		return nil
	}
	*t = Taxonomy(a)
	return nil
}

func (w *WikiDescription) UnmarshalJSON(data []byte) error {
	type alias WikiDescription
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		*w = WikiDescription{}
		return nil
	}
	*w = WikiDescription(a)
	return nil
}
