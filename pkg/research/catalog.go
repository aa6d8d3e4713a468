// Package research implements the phase sequencer: the static phase
// catalog, per-phase prompt assembly and output budgets, and the runner
// that drives each phase through the agentic loop while streaming
// lifecycle events.
package research

// PhaseDefinition is one entry of the static research catalog: a stable
// identifier, a display title, and the system instruction for that phase's
// research task. The catalog is process-wide, read-only configuration.
type PhaseDefinition struct {
	ID           string
	Title        string
	SystemPrompt string
}

// Phase identifiers. The itinerary and hotels phases get duration-scaled
// output budgets (see budget.go).
const (
	PhaseFlights   = "flights"
	PhaseHotels    = "hotels"
	PhaseTransport = "transport"
	PhaseRules     = "rules"
	PhaseItinerary = "itinerary"
)

// catalog is ordered: later phases receive excerpts of every earlier
// phase's results, so the order is a correctness requirement.
var catalog = []PhaseDefinition{
	{
		ID:    PhaseFlights,
		Title: "Flights & Travel Options",
		SystemPrompt: "You are a flight and travel research agent with a web_search tool. " +
			"Research the top options to reach the destination: airlines and routes from the " +
			"origin, approximate prices and durations, alternative transport (trains, buses, " +
			"ferries) where applicable, and booking tips. Present results as Markdown with a " +
			"top-3 recommended flights table. Use real carrier names and realistic prices, and " +
			"construct parameterized deep links (search URLs with the traveler's origin, " +
			"destination, dates and passenger count baked in) rather than bare homepages.",
	},
	{
		ID:    PhaseHotels,
		Title: "Hotels & Accommodation",
		SystemPrompt: "You are a hotel and accommodation research agent with a web_search tool. " +
			"Research the best places to stay: top neighborhoods with pros and cons, and " +
			"recommendations across luxury, mid-range, budget and vacation-rental tiers with " +
			"ratings, nightly prices, locations and highlights. Present results as Markdown " +
			"tables per tier. Use real property names and construct booking deep links with " +
			"the traveler's check-in/check-out dates and guest count baked in.",
	},
	{
		ID:    PhaseTransport,
		Title: "Local Transport & Vehicle Rentals",
		SystemPrompt: "You are a local transport research agent with a web_search tool. " +
			"Research every way to get around at the destination: public transport with fares " +
			"and travel cards, taxi and ride-hailing apps, car rentals with daily rates, " +
			"scooter and bike rentals with requirements, and intercity options. Present " +
			"results as Markdown tables with real company names, realistic prices, and a " +
			"direct actionable link per service.",
	},
	{
		ID:    PhaseRules,
		Title: "Local Rules, Laws & Customs",
		SystemPrompt: "You are a travel safety and local rules research agent with a web_search " +
			"tool. Research entry requirements, laws tourists commonly break, cultural customs " +
			"and etiquette, health and safety guidance, common tourist scams, emergency " +
			"numbers, and useful apps. Present results as Markdown sections specific to this " +
			"destination — no generic advice.",
	},
	{
		ID:    PhaseItinerary,
		Title: "Day-by-Day Itinerary",
		SystemPrompt: "You are an expert travel itinerary planner with a web_search tool. " +
			"Create a detailed day-by-day itinerary: for each day, morning, afternoon and " +
			"evening blocks with timed activities, ticket prices, durations and addresses, " +
			"plus a per-day cost estimate and a total trip cost table. Use real places, real " +
			"opening hours and realistic prices, and give every attraction or restaurant a " +
			"specific deep link (maps or booking page), never a bare homepage.",
	},
}

// Catalog returns the ordered phase catalog.
func Catalog() []PhaseDefinition {
	out := make([]PhaseDefinition, len(catalog))
	copy(out, catalog)
	return out
}

// PhaseByID looks up a catalog entry.
func PhaseByID(id string) (PhaseDefinition, bool) {
	for _, p := range catalog {
		if p.ID == id {
			return p, true
		}
	}
	return PhaseDefinition{}, false
}
