package model

import "strings"

// Suggestion represents a geocoding match offered in the autocomplete dropdown
type Suggestion struct {
	Name        string  `json:"name"`
	State       string  `json:"state"`
	Country     string  `json:"country"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	DisplayName string  `json:"display_name"`
}

// NewSuggestion builds a suggestion and derives its display name
func NewSuggestion(name, state, country string, lat, lon float64) Suggestion {
	return Suggestion{
		Name:        name,
		State:       state,
		Country:     country,
		Lat:         lat,
		Lon:         lon,
		DisplayName: JoinNonEmpty(name, state, country),
	}
}

// Details returns the secondary dropdown line ("State, Country")
func (s Suggestion) Details() string {
	return JoinNonEmpty(s.State, s.Country)
}

// JoinNonEmpty joins the non-empty parts with ", "
func JoinNonEmpty(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ", ")
}

// SuggestResponse represents the response for city search
type SuggestResponse struct {
	Results []Suggestion `json:"results"`
}
