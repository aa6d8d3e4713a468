package research

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wayfarer-ai/wayfarer/pkg/config"
)

func TestPhaseMaxTokens(t *testing.T) {
	cfg := config.Default().Research

	tests := []struct {
		name    string
		phaseID string
		days    int
		want    int
	}{
		{"flights uses flat floor", PhaseFlights, 14, 8000},
		{"rules uses flat floor", PhaseRules, 30, 8000},
		{"itinerary short trip clamps to floor", PhaseItinerary, 2, 8000},
		{"itinerary scales with duration", PhaseItinerary, 7, 14000},
		{"itinerary long trip clamps to cap", PhaseItinerary, 30, 32000},
		{"hotels short trip clamps to floor", PhaseHotels, 4, 8000},
		{"hotels scales with duration", PhaseHotels, 20, 10000},
		{"hotels long trip clamps to cap", PhaseHotels, 60, 16000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PhaseMaxTokens(cfg, tt.phaseID, tt.days))
		})
	}
}

func TestCatalog_OrderAndLookup(t *testing.T) {
	cat := Catalog()
	ids := make([]string, 0, len(cat))
	for _, p := range cat {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{PhaseFlights, PhaseHotels, PhaseTransport, PhaseRules, PhaseItinerary}, ids)

	phase, ok := PhaseByID(PhaseTransport)
	assert.True(t, ok)
	assert.Equal(t, "Local Transport & Vehicle Rentals", phase.Title)

	_, ok = PhaseByID("restaurants")
	assert.False(t, ok)
}
