package recommend

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pep299/club-recommender/internal/catalog"
	"github.com/pep299/club-recommender/internal/metrics"
	"github.com/pep299/club-recommender/internal/quiz"
	"github.com/pep299/club-recommender/internal/session"
)

// MaxProfileKeywords caps the keyword profile length. Rank weights are
// defined for exactly this many positions.
const MaxProfileKeywords = 5

// FallbackProfile is the fixed keyword list used whenever the
// text-generation collaborator is unavailable or returns nothing usable.
// Every term is part of the controlled vocabulary.
var FallbackProfile = []string{
	"Community Service",
	"Technology",
	"Arts",
	"Outdoors",
	"Culture",
}

// KeywordGenerator is the narrow contract to the text-generation
// collaborator. *gemini.Client satisfies it; tests substitute stubs.
type KeywordGenerator interface {
	GenerateKeywords(ctx context.Context, prompt string) ([]string, error)
}

// Profiler turns a session's answers into a ranked keyword profile. It
// never fails: any collaborator problem degrades to FallbackProfile so the
// recommendation flow always has a usable profile.
type Profiler struct {
	generator KeywordGenerator
	logger    *zap.Logger
}

// NewProfiler creates a profiler. A nil generator (no API credential
// configured) is allowed and selects the fallback path unconditionally.
func NewProfiler(generator KeywordGenerator, logger *zap.Logger) *Profiler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Profiler{generator: generator, logger: logger}
}

// Profile returns up to MaxProfileKeywords vocabulary terms ordered by
// relevance, and whether the fallback list was used.
func (p *Profiler) Profile(ctx context.Context, answers []session.Answer) ([]string, bool) {
	summary := quiz.AnswerSummary(answers)
	if p.generator == nil || summary == "" {
		metrics.ProfilerFallbacksTotal.Inc()
		return fallback(), true
	}

	start := time.Now()
	raw, err := p.generator.GenerateKeywords(ctx, BuildPrompt(summary))
	metrics.GenerateKeywordsDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		p.logger.Warn("keyword generation failed, using fallback profile", zap.Error(err))
		metrics.ProfilerFallbacksTotal.Inc()
		return fallback(), true
	}

	profile := filterProfile(raw)
	if len(profile) == 0 {
		p.logger.Warn("keyword generation returned no vocabulary terms, using fallback profile",
			zap.Strings("raw", raw))
		metrics.ProfilerFallbacksTotal.Inc()
		return fallback(), true
	}
	return profile, false
}

// filterProfile keeps only controlled-vocabulary terms, canonicalizes
// casing, drops duplicates while preserving order, and caps the length.
func filterProfile(raw []string) []string {
	seen := make(map[string]bool, len(raw))
	var profile []string
	for _, term := range raw {
		canonical, ok := catalog.Canonical(term)
		if !ok || seen[canonical] {
			continue
		}
		seen[canonical] = true
		profile = append(profile, canonical)
		if len(profile) == MaxProfileKeywords {
			break
		}
	}
	return profile
}

// BuildPrompt assembles the text-generation prompt: the answered
// question/option pairs plus an instruction to pick exactly five terms from
// the enumerated vocabulary as a JSON array.
func BuildPrompt(answerSummary string) string {
	return fmt.Sprintf(`A student answered a short quiz about what kind of student organization would suit them. Their answers:

%s
From the following list of interest keywords, select exactly %d that best describe this student, ordered from most to least relevant:

%s

Respond with only a JSON array of the selected keyword strings, exactly as they appear in the list. No other text.`,
		answerSummary, MaxProfileKeywords, strings.Join(catalog.Vocabulary, ", "))
}

func fallback() []string {
	out := make([]string, len(FallbackProfile))
	copy(out, FallbackProfile)
	return out
}
