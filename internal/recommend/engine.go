package recommend

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/pep299/club-recommender/internal/cache"
	"github.com/pep299/club-recommender/internal/catalog"
	"github.com/pep299/club-recommender/internal/metrics"
	"github.com/pep299/club-recommender/internal/quiz"
	"github.com/pep299/club-recommender/internal/session"
)

// Engine wires the classifier, profiler, scorer, and composer into the one
// operation the HTTP layer consumes. It holds no per-session state: the
// answer store and catalog are injected collaborators, so concurrent
// requests for different sessions are independent.
type Engine struct {
	store        session.Store
	catalog      *catalog.Catalog
	profiler     *Profiler
	profileCache cache.Cache
	logger       *zap.Logger

	mutex sync.Mutex
	rng   *rand.Rand
}

// NewEngine creates the recommendation engine. profileCache may be nil to
// disable profile caching; rng may be nil to use a time-seeded source.
func NewEngine(store session.Store, cat *catalog.Catalog, profiler *Profiler, profileCache cache.Cache, logger *zap.Logger, rng *rand.Rand) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Engine{
		store:        store,
		catalog:      cat,
		profiler:     profiler,
		profileCache: profileCache,
		logger:       logger,
		rng:          rng,
	}
}

// Recommend computes the full recommendation result for a session. A
// session with no recorded answers still produces a result (default
// persona, fallback profile). Only answer-store failures propagate;
// collaborator and cache failures degrade locally.
func (e *Engine) Recommend(ctx context.Context, sessionID string) (*Result, error) {
	answers, err := e.store.Answers(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("loading answers: %w", err)
	}

	persona := quiz.Classify(answers)
	profile := e.profile(ctx, answers)
	scored := ScoreCatalog(profile, e.catalog.InScope())

	e.mutex.Lock()
	result := Compose(persona, profile, scored, e.catalog.ExternalPool(), e.rng)
	e.mutex.Unlock()

	metrics.RecommendationsTotal.Inc()
	e.logger.Debug("recommendations computed",
		zap.String("session", sessionID),
		zap.String("persona", string(persona.Type)),
		zap.Strings("profile", profile),
		zap.Int("campus", len(result.Campus)),
		zap.Int("external", len(result.External)))
	return result, nil
}

// profile returns the keyword profile for the answer set, consulting the
// cache first. Fallback profiles are not cached so a recovered collaborator
// is retried on the next request.
func (e *Engine) profile(ctx context.Context, answers []session.Answer) []string {
	if e.profileCache == nil {
		profile, _ := e.profiler.Profile(ctx, answers)
		return profile
	}

	key := cache.ProfileKey(answers)
	if entry, err := e.profileCache.Get(ctx, key); err == nil {
		metrics.ProfileCacheHitsTotal.Inc()
		return entry.Profile
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		e.logger.Warn("profile cache lookup failed", zap.Error(err))
	}
	metrics.ProfileCacheMissesTotal.Inc()

	profile, fromFallback := e.profiler.Profile(ctx, answers)
	if !fromFallback {
		if err := e.profileCache.Set(ctx, key, &cache.Entry{Profile: profile}); err != nil {
			e.logger.Warn("profile cache store failed", zap.Error(err))
		}
	}
	return profile
}
