package recommend

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/pep299/club-recommender/internal/catalog"
	"github.com/pep299/club-recommender/internal/quiz"
)

// MaxResults caps each result group regardless of catalog size.
const MaxResults = 5

// Recommendation is one organization in the final result, with a
// human-readable label explaining the match.
type Recommendation struct {
	ScoredOrganization
	MatchLabel string `json:"matchLabel"`
}

// Result is the full recommendation response: the derived persona plus the
// two result groups. Campus entries are relevance-ranked; external entries
// are sampled from the pool, which carries no per-user scoring.
type Result struct {
	Persona  quiz.PersonaResult `json:"persona"`
	Profile  []string           `json:"keywords"`
	Campus   []Recommendation   `json:"campus"`
	External []Recommendation   `json:"external"`
}

// Compose builds the final result from the scored campus list and the
// external pool. The external selection is a shuffle-then-take over the
// pool using the supplied randomness source. Empty inputs yield empty
// groups, never an error.
func Compose(persona quiz.PersonaResult, profile []string, scored []ScoredOrganization, pool []catalog.Organization, rng *rand.Rand) *Result {
	result := &Result{
		Persona:  persona,
		Profile:  profile,
		Campus:   make([]Recommendation, 0, MaxResults),
		External: make([]Recommendation, 0, MaxResults),
	}

	for _, s := range scored {
		if len(result.Campus) == MaxResults {
			break
		}
		result.Campus = append(result.Campus, Recommendation{
			ScoredOrganization: s,
			MatchLabel:         campusLabel(persona, s),
		})
	}

	shuffled := make([]catalog.Organization, len(pool))
	copy(shuffled, pool)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	for _, org := range shuffled {
		if len(result.External) == MaxResults {
			break
		}
		result.External = append(result.External, Recommendation{
			ScoredOrganization: ScoredOrganization{Organization: org},
			MatchLabel:         fmt.Sprintf("Opportunity beyond campus for a %s", persona.Type),
		})
	}

	return result
}

func campusLabel(persona quiz.PersonaResult, s ScoredOrganization) string {
	if len(s.Matched) > 0 {
		return fmt.Sprintf("Matches your interest in %s", strings.Join(s.Matched, ", "))
	}
	return fmt.Sprintf("Something new for your %s side", persona.Type)
}
