package recommend

import (
	"sort"
	"strings"

	"github.com/pep299/club-recommender/internal/catalog"
)

// ScoredOrganization annotates an organization with its relevance score
// against a keyword profile.
type ScoredOrganization struct {
	catalog.Organization
	Score   int      `json:"score"`
	Matched []string `json:"matched_keywords,omitempty"`
}

// ScoreCatalog scores every organization against the ranked profile. The
// keyword at rank i contributes weight MaxProfileKeywords-i (5, 4, 3, 2, 1)
// to each organization whose keyword set contains a case-insensitive exact
// match. No organization is filtered out here; the result is sorted by
// score descending with ties kept in catalog order.
func ScoreCatalog(profile []string, orgs []catalog.Organization) []ScoredOrganization {
	scored := make([]ScoredOrganization, 0, len(orgs))
	for _, org := range orgs {
		keywords := make(map[string]bool, len(org.Keywords))
		for _, kw := range org.Keywords {
			keywords[strings.ToLower(kw)] = true
		}

		s := ScoredOrganization{Organization: org}
		for i, term := range profile {
			if i >= MaxProfileKeywords {
				break
			}
			if keywords[strings.ToLower(term)] {
				s.Score += MaxProfileKeywords - i
				s.Matched = append(s.Matched, term)
			}
		}
		scored = append(scored, s)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}
