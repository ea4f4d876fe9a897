package catalog

import "strings"

// Vocabulary is the closed set of keyword terms. Keyword profiles and
// organization tags are both restricted to it; anything outside the set is
// rejected before it can influence scoring.
var Vocabulary = []string{
	"Technology",
	"Community Service",
	"Arts",
	"Design",
	"Entrepreneurship",
	"Outdoors",
	"Travel",
	"Social Impact",
	"Media",
	"Music",
	"Science",
	"Sports",
	"Culture",
	"Debate",
	"Sustainability",
	"Gaming",
	"Writing",
	"Health",
	"Finance",
	"Volunteering",
}

var canonicalTerms = buildCanonical()

func buildCanonical() map[string]string {
	m := make(map[string]string, len(Vocabulary))
	for _, term := range Vocabulary {
		m[strings.ToLower(term)] = term
	}
	return m
}

// Canonical maps a term to its canonical casing. The second return value is
// false for terms outside the vocabulary.
func Canonical(term string) (string, bool) {
	c, ok := canonicalTerms[strings.ToLower(strings.TrimSpace(term))]
	return c, ok
}

// InVocabulary reports whether the term is part of the controlled
// vocabulary, ignoring case and surrounding whitespace.
func InVocabulary(term string) bool {
	_, ok := Canonical(term)
	return ok
}
