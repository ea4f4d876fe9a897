package recommend

import (
	"math/rand"
	"reflect"
	"strings"
	"testing"

	"github.com/pep299/club-recommender/internal/catalog"
	"github.com/pep299/club-recommender/internal/quiz"
)

func testPersona() quiz.PersonaResult {
	return quiz.Classify(nil)
}

func externalOrg(name string) catalog.Organization {
	return catalog.Organization{Name: name, Scope: catalog.External, Keywords: []string{"Culture"}}
}

func TestComposeCapsResultGroups(t *testing.T) {
	var scored []ScoredOrganization
	var pool []catalog.Organization
	for i := 0; i < 50; i++ {
		scored = append(scored, ScoredOrganization{
			Organization: org("Campus"+string(rune('A'+i%26)), "Technology"),
			Score:        50 - i,
		})
		pool = append(pool, externalOrg("Ext"+string(rune('A'+i%26))))
	}

	result := Compose(testPersona(), []string{"Technology"}, scored, pool, rand.New(rand.NewSource(1)))

	if len(result.Campus) != MaxResults {
		t.Errorf("campus group should cap at %d, got %d", MaxResults, len(result.Campus))
	}
	if len(result.External) != MaxResults {
		t.Errorf("external group should cap at %d, got %d", MaxResults, len(result.External))
	}
}

func TestComposeTakesTopScorers(t *testing.T) {
	scored := []ScoredOrganization{
		{Organization: org("High", "Technology"), Score: 9},
		{Organization: org("Mid", "Arts"), Score: 4},
		{Organization: org("Low", "Music"), Score: 0},
	}

	result := Compose(testPersona(), nil, scored, nil, rand.New(rand.NewSource(1)))

	if len(result.Campus) != 3 {
		t.Fatalf("expected all 3 campus entries, got %d", len(result.Campus))
	}
	if result.Campus[0].Name != "High" || result.Campus[2].Name != "Low" {
		t.Errorf("campus entries should keep scorer order: %v", result.Campus)
	}
}

func TestComposeEmptyInputs(t *testing.T) {
	result := Compose(testPersona(), nil, nil, nil, rand.New(rand.NewSource(1)))

	if len(result.Campus) != 0 || len(result.External) != 0 {
		t.Errorf("empty inputs should yield empty groups: %+v", result)
	}
}

func TestComposeExternalSelectionSeeded(t *testing.T) {
	pool := []catalog.Organization{
		externalOrg("A"), externalOrg("B"), externalOrg("C"),
		externalOrg("D"), externalOrg("E"), externalOrg("F"),
	}

	first := Compose(testPersona(), nil, nil, pool, rand.New(rand.NewSource(42)))
	second := Compose(testPersona(), nil, nil, pool, rand.New(rand.NewSource(42)))

	var firstNames, secondNames []string
	for _, r := range first.External {
		firstNames = append(firstNames, r.Name)
	}
	for _, r := range second.External {
		secondNames = append(secondNames, r.Name)
	}
	if !reflect.DeepEqual(firstNames, secondNames) {
		t.Errorf("same seed should select the same externals: %v vs %v", firstNames, secondNames)
	}
}

func TestComposeShuffleDoesNotMutatePool(t *testing.T) {
	pool := []catalog.Organization{externalOrg("A"), externalOrg("B"), externalOrg("C")}
	original := make([]catalog.Organization, len(pool))
	copy(original, pool)

	Compose(testPersona(), nil, nil, pool, rand.New(rand.NewSource(7)))

	if !reflect.DeepEqual(pool, original) {
		t.Error("composing must not reorder the caller's pool slice")
	}
}

func TestComposeMatchLabels(t *testing.T) {
	scored := []ScoredOrganization{
		{Organization: org("Matched", "Technology"), Score: 5, Matched: []string{"Technology"}},
		{Organization: org("Unmatched", "Music"), Score: 0},
	}
	pool := []catalog.Organization{externalOrg("Ext")}

	result := Compose(testPersona(), nil, scored, pool, rand.New(rand.NewSource(1)))

	if !strings.Contains(result.Campus[0].MatchLabel, "Technology") {
		t.Errorf("matched label should name the keywords: %q", result.Campus[0].MatchLabel)
	}
	if result.Campus[1].MatchLabel == "" {
		t.Error("zero-score entries still get a label")
	}
	if !strings.Contains(result.External[0].MatchLabel, "beyond campus") {
		t.Errorf("external label should be the generic opportunity label: %q", result.External[0].MatchLabel)
	}
}
