// Package models contains shared domain types used across the service layer.
package models

// TripPreferences captures the trip facts supplied once at session creation.
// The record is read-only after the session starts.
type TripPreferences struct {
	Destination         string `json:"destination" yaml:"destination" binding:"required"`
	DepartingFrom       string `json:"departing_from" yaml:"departing_from"`
	Nationality         string `json:"nationality" yaml:"nationality"`
	Days                int    `json:"days" yaml:"days"`
	TravelDates         string `json:"travel_dates" yaml:"travel_dates"`
	Travelers           string `json:"travelers" yaml:"travelers"`
	Budget              string `json:"budget" yaml:"budget"`
	TravelStyle         string `json:"travel_style" yaml:"travel_style"`
	Interests           string `json:"interests" yaml:"interests"`
	SpecialRequirements string `json:"special_requirements" yaml:"special_requirements"`
}

// ApplyDefaults fills unset optional fields with their documented defaults.
func (p *TripPreferences) ApplyDefaults() {
	if p.DepartingFrom == "" {
		p.DepartingFrom = "N/A"
	}
	if p.Nationality == "" {
		p.Nationality = "N/A"
	}
	if p.Days <= 0 {
		p.Days = 5
	}
	if p.TravelDates == "" {
		p.TravelDates = "flexible"
	}
	if p.Travelers == "" {
		p.Travelers = "1 adult"
	}
	if p.Budget == "" {
		p.Budget = "mid-range"
	}
	if p.TravelStyle == "" {
		p.TravelStyle = "mixed"
	}
	if p.Interests == "" {
		p.Interests = "general sightseeing"
	}
	if p.SpecialRequirements == "" {
		p.SpecialRequirements = "none"
	}
}
