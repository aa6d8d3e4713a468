// Package export renders a session's accumulated research into one
// concatenated markdown travel plan.
package export

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/wayfarer-ai/wayfarer/pkg/models"
	"github.com/wayfarer-ai/wayfarer/pkg/research"
)

// ErrNoResults is returned when the result mapping is empty. Exporting a
// partially completed session is fine; exporting nothing is a caller error.
var ErrNoResults = errors.New("no results to export")

var unsafeFilenameChars = regexp.MustCompile(`[^\w\s-]`)

// Document is a rendered travel plan with its suggested filename.
type Document struct {
	Filename string
	Content  string
}

// Render builds the plan document deterministically in catalog order,
// skipping phases absent from the result mapping. now supplies the
// generation timestamp so output is reproducible in tests.
func Render(prefs models.TripPreferences, results map[string]string, now time.Time) (*Document, error) {
	if len(results) == 0 {
		return nil, ErrNoResults
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Complete Trip Plan: %s\n", prefs.Destination)
	fmt.Fprintf(&b, "_Generated on %s_\n\n", now.Format("January 2, 2006 at 15:04"))
	fmt.Fprintf(&b, "**Traveler:** %s | **From:** %s | **Dates:** %s | **Budget:** %s\n\n",
		prefs.Nationality, prefs.DepartingFrom, prefs.TravelDates, prefs.Budget)
	b.WriteString("---\n\n")

	for _, phase := range research.Catalog() {
		markdown, ok := results[phase.ID]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "\n%s\n\n---\n\n", markdown)
	}

	return &Document{
		Filename: filename(prefs.Destination, now),
		Content:  b.String(),
	}, nil
}

// filename derives a safe markdown filename from the destination and
// generation time.
func filename(destination string, now time.Time) string {
	safe := unsafeFilenameChars.ReplaceAllString(destination, "")
	safe = strings.ToLower(strings.ReplaceAll(strings.TrimSpace(safe), " ", "_"))
	return fmt.Sprintf("trip_%s_%s.md", safe, now.Format("20060102_1504"))
}
