package quiz

import (
	"fmt"
	"strings"

	"github.com/pep299/club-recommender/internal/session"
)

// Category is one of the fixed persona types a quiz run resolves to.
type Category string

const (
	Explorer  Category = "Explorer"
	Innovator Category = "Innovator"
	Creator   Category = "Creator"
	Connector Category = "Connector"
)

// Categories lists every persona in priority order. The order doubles as
// the tie-break: when tallies are equal the earlier category wins, so an
// empty answer set always resolves to Explorer.
var Categories = []Category{Explorer, Innovator, Creator, Connector}

// PersonaResult describes the persona derived from a session's answers.
// It is recomputed on every request and never stored.
type PersonaResult struct {
	Type        Category `json:"type"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

var personaDetails = map[Category]PersonaResult{
	Explorer: {
		Type:        Explorer,
		Description: "You love discovering new communities, causes, and experiences on and beyond campus.",
		Tags:        []string{"Global", "Outdoors", "Curious"},
	},
	Innovator: {
		Type:        Innovator,
		Description: "You get energy from building new things, solving problems, and experimenting with ideas.",
		Tags:        []string{"Builder", "Analytical", "Ambitious"},
	},
	Creator: {
		Type:        Creator,
		Description: "You express yourself through art, design, and creative projects, and care about aesthetics.",
		Tags:        []string{"Artistic", "Expressive", "Visual"},
	},
	Connector: {
		Type:        Connector,
		Description: "You thrive when bringing people together and building a sense of community.",
		Tags:        []string{"Social", "Supportive", "Community-Oriented"},
	},
}

// optionCategory maps every option id to exactly one persona category.
var optionCategory = map[string]Category{
	"q1a": Innovator, "q1b": Creator, "q1c": Explorer, "q1d": Connector,
	"q2a": Innovator, "q2b": Creator, "q2c": Explorer, "q2d": Connector,
	"q3a": Innovator, "q3b": Creator, "q3c": Explorer, "q3d": Connector,
	"q4a": Innovator, "q4b": Creator, "q4c": Explorer, "q4d": Connector,
	"q5a": Innovator, "q5b": Creator, "q5c": Explorer, "q5d": Connector,
	"q6a": Innovator, "q6b": Creator, "q6c": Explorer, "q6d": Connector,
}

// Classify tallies the persona category of each answered option and returns
// the persona with the highest tally. Options without a mapping are skipped
// rather than failing the request, and ties fall back to the fixed category
// order, so Classify never errors: an empty answer set yields the first
// category.
func Classify(answers []session.Answer) PersonaResult {
	tally := make(map[Category]int, len(Categories))
	for _, c := range Categories {
		tally[c] = 0
	}

	for _, a := range answers {
		if c, ok := optionCategory[a.OptionID]; ok {
			tally[c]++
		}
	}

	best := Categories[0]
	for _, c := range Categories[1:] {
		if tally[c] > tally[best] {
			best = c
		}
	}
	return personaDetails[best]
}

// AnswerSummary renders answered question/option pairs as one line each,
// suitable for a text-generation prompt. Answers that no longer resolve to
// a known question or option are skipped.
func AnswerSummary(answers []session.Answer) string {
	var b strings.Builder
	for _, a := range answers {
		q, o, ok := LookupOption(a.QuestionID, a.OptionID)
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "- %s %s\n", q.Text, o.Text)
	}
	return b.String()
}
