// Package extractor derives typed profile fields from the natural-language
// facts the graph store extracts out of conversation turns. Matching is
// heuristic and pattern-ordered; changing pattern order changes output.
package extractor

import (
	"regexp"
	"strings"
)

// Extraction is the partial contribution a single fact makes to a user
// profile. Zero values mean the fact contributed nothing for that
// category; a fact may contribute to several categories at once.
type Extraction struct {
	Name           string
	Budget         string
	FirstTimeBuyer bool
	PropertyType   string
	Location       string
}

// namePatterns are tried in order against the lower-cased fact; the first
// match wins.
var namePatterns = []*regexp.Regexp{
	regexp.MustCompile(`name is (\w+)`),
	regexp.MustCompile(`called (\w+)`),
	regexp.MustCompile(`user (\w+)`),
}

var (
	budgetTrigger = regexp.MustCompile(`(?i)budget|afford|spend`)
	// An optional currency symbol followed by a plain or
	// thousands-separated amount. Separators are stripped on output.
	amountPattern = regexp.MustCompile(`[£$€]?\s*(\d{1,3}(?:,\d{3})+|\d+)`)

	firstTimeBuyerPattern = regexp.MustCompile(`(?i)first[-\s]?time[-\s]?buyer`)

	propertyTrigger     = regexp.MustCompile(`(?i)flat|apartment|house|property`)
	propertyTypePattern = regexp.MustCompile(`(?i)(flat|apartment|house|terraced|detached|semi)`)

	locationPattern = regexp.MustCompile(`(?i)(london|manchester|birmingham|leeds|bristol)`)
)

// Extract maps one fact's text to its profile contributions. It performs
// no I/O and is safe to run concurrently across facts.
func Extract(fact string) Extraction {
	var ex Extraction

	lower := strings.ToLower(fact)
	for _, pattern := range namePatterns {
		if m := pattern.FindStringSubmatch(lower); m != nil {
			ex.Name = titleCase(m[1])
			break
		}
	}

	if budgetTrigger.MatchString(fact) {
		if m := amountPattern.FindStringSubmatch(fact); m != nil {
			ex.Budget = strings.ReplaceAll(m[1], ",", "")
		}
	}

	if firstTimeBuyerPattern.MatchString(fact) {
		// Absence of the pattern is distinct from negation; the flag is
		// only ever set, never cleared, at this stage.
		ex.FirstTimeBuyer = true
	}

	if propertyTrigger.MatchString(fact) {
		if m := propertyTypePattern.FindStringSubmatch(fact); m != nil {
			ex.PropertyType = strings.ToLower(m[1])
		}
	}

	if m := locationPattern.FindStringSubmatch(fact); m != nil {
		ex.Location = m[1]
	}

	return ex
}

// titleCase upper-cases the first letter and leaves the remainder
// unchanged.
func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
