package research

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/wayfarer-ai/wayfarer/pkg/models"
	"github.com/wayfarer-ai/wayfarer/pkg/session"
)

// BuildTripContext renders the trip facts block included in every phase's
// opening message.
func BuildTripContext(prefs models.TripPreferences) string {
	return fmt.Sprintf(`Trip Details:
- Destination: %s
- Departing from: %s
- Nationality: %s
- Duration: %d days
- Travel dates: %s
- Travelers: %s
- Budget: %s
- Travel style: %s
- Interests: %s
- Special requirements: %s`,
		prefs.Destination,
		prefs.DepartingFrom,
		prefs.Nationality,
		prefs.Days,
		prefs.TravelDates,
		prefs.Travelers,
		prefs.Budget,
		prefs.TravelStyle,
		prefs.Interests,
		prefs.SpecialRequirements,
	)
}

// buildPhaseUserMessage assembles a phase's opening message: trip facts,
// identifier-tagged excerpts of every previously completed phase (each
// truncated to excerptChars to bound instruction size), and the research
// directive.
func buildPhaseUserMessage(prefs models.TripPreferences, previous []session.PhaseResult, excerptChars int) string {
	var b strings.Builder
	b.WriteString(BuildTripContext(prefs))
	b.WriteString("\n")

	if len(previous) > 0 {
		b.WriteString("\n## Previous Research (use this context):\n")
		for _, res := range previous {
			b.WriteString(fmt.Sprintf("\n### %s:\n%s...\n", res.PhaseID, truncate(res.Markdown, excerptChars)))
		}
	}

	b.WriteString("\nNow complete your research. Use the web_search tool multiple times to find real,\n" +
		"current information. Search for specific airlines, hotels, rental companies, etc.\n" +
		"Provide detailed results with actual links and prices.")
	return b.String()
}

// BuildQASystemPrompt synthesizes the follow-up Q&A instruction from the
// finished result set, capped at contextChars.
func BuildQASystemPrompt(prefs models.TripPreferences, results []session.PhaseResult, contextChars int) string {
	sections := make([]string, 0, len(results))
	for _, res := range results {
		sections = append(sections, fmt.Sprintf("## %s\n%s", strings.ToUpper(res.PhaseID), res.Markdown))
	}
	fullResearch := strings.Join(sections, "\n\n")

	return fmt.Sprintf(`You are a helpful travel assistant. You have a web_search tool.
You have detailed research about a trip to %s.
Answer questions using the research AND new web searches when needed.
Always provide specific names, prices, links, and actionable info.

Previous research summary:
%s`, prefs.Destination, truncate(fullResearch, contextChars))
}

// truncate caps s at n bytes, backing up to a rune boundary so a multi-byte
// character is never split.
func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
