package catalog

import (
	"strings"
	"testing"
)

func TestDefaultCatalogIsValid(t *testing.T) {
	cat := Default()

	if len(cat.InScope()) == 0 {
		t.Error("default catalog has no campus organizations")
	}
	if len(cat.ExternalPool()) == 0 {
		t.Error("default catalog has no external organizations")
	}

	for _, org := range append(cat.InScope(), cat.ExternalPool()...) {
		for _, kw := range org.Keywords {
			if !InVocabulary(kw) {
				t.Errorf("organization %q carries out-of-vocabulary keyword %q", org.Name, kw)
			}
		}
	}
}

func TestNewRejectsUnknownKeyword(t *testing.T) {
	_, err := New([]Organization{
		{Name: "Bad Club", Scope: Campus, Keywords: []string{"Quantum Juggling"}},
	})
	if err == nil {
		t.Fatal("expected error for out-of-vocabulary keyword")
	}
	if !strings.Contains(err.Error(), "Quantum Juggling") {
		t.Errorf("error should name the offending keyword: %v", err)
	}
}

func TestNewSynthesizesExternalURL(t *testing.T) {
	cat, err := New([]Organization{
		{Name: "Boston Chess Circle", Scope: External, Keywords: []string{"Culture"}},
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	pool := cat.ExternalPool()
	if len(pool) != 1 {
		t.Fatalf("expected 1 external organization, got %d", len(pool))
	}
	if !strings.Contains(pool[0].URL, "google.com/search") {
		t.Errorf("expected synthesized search URL, got %q", pool[0].URL)
	}
}

func TestCanonical(t *testing.T) {
	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{"Technology", "Technology", true},
		{"technology", "Technology", true},
		{" COMMUNITY SERVICE ", "Community Service", true},
		{"Underwater Basket Weaving", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := Canonical(tt.input)
		if ok != tt.ok || got != tt.want {
			t.Errorf("Canonical(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParseCSV(t *testing.T) {
	input := `name,url,scope,keywords,description
Robotics Club,https://example.edu/robotics,campus,Technology;Science,Builds robots.
City Makers,,external,Entrepreneurship,Maker meetup.
`
	cat, err := parseCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parseCSV failed: %v", err)
	}

	campus := cat.InScope()
	if len(campus) != 1 || campus[0].Name != "Robotics Club" {
		t.Fatalf("unexpected campus list: %+v", campus)
	}
	if len(campus[0].Keywords) != 2 {
		t.Errorf("expected 2 keywords, got %v", campus[0].Keywords)
	}

	external := cat.ExternalPool()
	if len(external) != 1 || external[0].URL == "" {
		t.Errorf("external org should get a synthesized URL: %+v", external)
	}
}

func TestParseCSVRejectsBadRows(t *testing.T) {
	cases := map[string]string{
		"unknown scope":   "name,url,scope,keywords,description\nX,,galactic,Technology,desc\n",
		"unknown keyword": "name,url,scope,keywords,description\nX,,campus,Telepathy,desc\n",
		"missing name":    "name,url,scope,keywords,description\n,,campus,Technology,desc\n",
	}

	for label, input := range cases {
		if _, err := parseCSV(strings.NewReader(input)); err == nil {
			t.Errorf("%s: expected parse error", label)
		}
	}
}

func TestParseCSVKeywordsCanonicalized(t *testing.T) {
	input := "name,url,scope,keywords,description\nX,,campus,technology; arts ,desc\n"

	cat, err := parseCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parseCSV failed: %v", err)
	}

	got := cat.InScope()[0].Keywords
	if got[0] != "Technology" || got[1] != "Arts" {
		t.Errorf("keywords not canonicalized: %v", got)
	}
}
