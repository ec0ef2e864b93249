// Package matchmaking orchestrates candidate search: the eligible pool is
// narrowed by an explicit filter spec, every survivor is scored against the
// reference profile, and the ranked result is cached briefly in redis.
package matchmaking

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"sort"
	"time"

	"github.com/mawadda-app/agency-backend/internal/domain"
	"github.com/mawadda-app/agency-backend/internal/infrastructure/gemini"
	"github.com/mawadda-app/agency-backend/internal/matching"
	"github.com/mawadda-app/agency-backend/internal/repository"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type UseCase struct {
	profileRepo repository.ProfileRepository
	scorer      *matching.Scorer
	redis       *redis.Client
	gemini      *gemini.Client
	logger      *zap.Logger
	cacheTTL    time.Duration
	now         func() time.Time
}

func NewUseCase(
	profileRepo repository.ProfileRepository,
	scorer *matching.Scorer,
	redisClient *redis.Client,
	geminiClient *gemini.Client,
	logger *zap.Logger,
	cacheTTL time.Duration,
) *UseCase {
	return &UseCase{
		profileRepo: profileRepo,
		scorer:      scorer,
		redis:       redisClient,
		gemini:      geminiClient,
		logger:      logger,
		cacheTTL:    cacheTTL,
		now:         time.Now,
	}
}

// CandidateResult is one ranked candidate. Completeness is display-only and
// never part of the score.
type CandidateResult struct {
	CandidateID  int                                `json:"candidate_id"`
	DisplayName  string                             `json:"display_name"`
	Total        float64                            `json:"total"`
	Breakdown    map[string]matching.CriterionScore `json:"breakdown"`
	Completeness int                                `json:"completeness"`
}

// ScoreCandidates filters the eligible pool, ranks it against the reference
// and returns the ordered results. Ties break on completeness, then id, so
// repeated calls return the same order.
func (uc *UseCase) ScoreCandidates(ctx context.Context, referenceID int, spec matching.FilterSpec) ([]CandidateResult, error) {
	reference, err := uc.profileRepo.GetByID(ctx, referenceID)
	if err != nil {
		return nil, err
	}
	seeks := reference.SeeksGender()
	if seeks == "" {
		return nil, domain.ValidationError("reference profile has no gender set")
	}

	cacheKey := uc.cacheKey(referenceID, spec)
	if cached, ok := uc.fromCache(ctx, cacheKey); ok {
		return cached, nil
	}

	pool, err := uc.profileRepo.ListEligible(ctx, seeks, referenceID)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	eligible := matching.Apply(reference, pool, spec, now)

	results := make([]CandidateResult, 0, len(eligible))
	for _, candidate := range eligible {
		score := uc.scorer.Score(reference, candidate, now)
		results = append(results, CandidateResult{
			CandidateID:  candidate.ID,
			DisplayName:  candidate.DisplayName,
			Total:        score.Total,
			Breakdown:    score.Breakdown,
			Completeness: matching.Completeness(candidate),
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Total != results[j].Total {
			return results[i].Total > results[j].Total
		}
		if results[i].Completeness != results[j].Completeness {
			return results[i].Completeness > results[j].Completeness
		}
		return results[i].CandidateID < results[j].CandidateID
	})

	uc.toCache(ctx, cacheKey, results)
	return results, nil
}

// SuggestIntroduction drafts an introduction message for a scored pair.
// Requires the optional Gemini client.
func (uc *UseCase) SuggestIntroduction(ctx context.Context, referenceID, candidateID int) (string, error) {
	if uc.gemini == nil {
		return "", domain.ValidationError("message suggestions are not enabled")
	}
	reference, err := uc.profileRepo.GetByID(ctx, referenceID)
	if err != nil {
		return "", err
	}
	candidate, err := uc.profileRepo.GetByID(ctx, candidateID)
	if err != nil {
		return "", err
	}

	now := uc.now()
	score := uc.scorer.Score(reference, candidate, now)
	var matched []string
	for name, cs := range score.Breakdown {
		if cs.Matched {
			matched = append(matched, name)
		}
	}
	sort.Strings(matched)

	return uc.gemini.SuggestIntroduction(ctx, summarize(reference, now), summarize(candidate, now), matched)
}

func summarize(p *domain.Profile, now time.Time) gemini.PairSummary {
	s := gemini.PairSummary{
		DisplayName: p.DisplayName,
		Age:         p.AgeAt(now),
		Hobbies:     p.Hobbies,
	}
	if p.CityResidence != nil {
		s.City = *p.CityResidence
	}
	if p.MaritalStatus != nil {
		s.MaritalStatus = *p.MaritalStatus
	}
	return s
}

func (uc *UseCase) cacheKey(referenceID int, spec matching.FilterSpec) string {
	raw, _ := json.Marshal(spec)
	h := fnv.New64a()
	h.Write(raw)
	return fmt.Sprintf("match:scores:%d:%x", referenceID, h.Sum64())
}

// fromCache and toCache are best-effort: redis being down never fails a
// search.
func (uc *UseCase) fromCache(ctx context.Context, key string) ([]CandidateResult, bool) {
	if uc.redis == nil {
		return nil, false
	}
	raw, err := uc.redis.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	var results []CandidateResult
	if err := json.Unmarshal(raw, &results); err != nil {
		uc.logger.Warn("dropping unreadable score cache entry", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return results, true
}

func (uc *UseCase) toCache(ctx context.Context, key string, results []CandidateResult) {
	if uc.redis == nil {
		return
	}
	raw, err := json.Marshal(results)
	if err != nil {
		return
	}
	if err := uc.redis.Set(ctx, key, raw, uc.cacheTTL).Err(); err != nil {
		uc.logger.Warn("failed to cache scores", zap.String("key", key), zap.Error(err))
	}
}
