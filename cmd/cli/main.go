package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/pep299/club-recommender/internal/application"
	"github.com/pep299/club-recommender/internal/catalog"
	"github.com/pep299/club-recommender/internal/recommend"
)

// One-shot catalog scoring tool. Loads the configured catalog, scores
// every in-scope organization against a comma-separated keyword profile
// and prints the ranked result. Useful for checking catalog data before
// deploying it.
func main() {
	keywordsFlag := flag.String("keywords", "", "Comma-separated ranked keyword profile (most important first)")
	flag.Parse()

	if *keywordsFlag == "" {
		log.Fatalf("Usage: %s -keywords Technology,Arts,...", flag.CommandLine.Name())
	}

	var profile []string
	for _, raw := range strings.Split(*keywordsFlag, ",") {
		term, ok := catalog.Canonical(raw)
		if !ok {
			log.Fatalf("Unknown keyword %q (not in the controlled vocabulary)", strings.TrimSpace(raw))
		}
		profile = append(profile, term)
	}
	if len(profile) > recommend.MaxProfileKeywords {
		profile = profile[:recommend.MaxProfileKeywords]
	}

	app, err := application.New(context.Background())
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}
	defer app.Close()

	scored := recommend.ScoreCatalog(profile, app.Catalog.InScope())

	fmt.Printf("Profile: %s\n\n", strings.Join(profile, ", "))
	for i, s := range scored {
		matched := "-"
		if len(s.Matched) > 0 {
			matched = strings.Join(s.Matched, ", ")
		}
		fmt.Printf("%2d. %-40s score=%d matched=%s\n", i+1, s.Name, s.Score, matched)
	}
}
