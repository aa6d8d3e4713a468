package research

import "github.com/wayfarer-ai/wayfarer/pkg/config"

// PhaseMaxTokens computes the output budget for one phase. The itinerary
// phase scales with trip duration between the floor and its cap, hotels
// scales more modestly, and every other phase uses the flat floor.
func PhaseMaxTokens(cfg config.ResearchConfig, phaseID string, tripDays int) int {
	switch phaseID {
	case PhaseItinerary:
		return clamp(tripDays*cfg.ItineraryTokensPerDay, cfg.PhaseTokensFloor, cfg.ItineraryTokensCap)
	case PhaseHotels:
		return clamp(tripDays*cfg.HotelsTokensPerDay, cfg.PhaseTokensFloor, cfg.HotelsTokensCap)
	default:
		return cfg.PhaseTokensFloor
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
