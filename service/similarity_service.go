package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"
	"sort"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/ludo-technologies/patchsim/domain"
	"github.com/ludo-technologies/patchsim/internal/comparer"
	"github.com/ludo-technologies/patchsim/internal/version"
)

// SimilarityServiceImpl implements the SimilarityService interface
type SimilarityServiceImpl struct {
	cache *resourceCache
}

// NewSimilarityService creates a new similarity service implementation
func NewSimilarityService() *SimilarityServiceImpl {
	return &SimilarityServiceImpl{cache: newResourceCache()}
}

// Score compares one patched snippet with its original
func (s *SimilarityServiceImpl) Score(ctx context.Context, req domain.ScoreRequest) (*domain.ScoreResponse, error) {
	opts := req.Settings.Options
	pair, err := s.Vectorize(ctx, opts, req.Original, req.Patched)
	if err != nil {
		return nil, err
	}

	cmp := newComparer(opts.Strategy, opts.MinkowskiP, opts.CanberraNaN)
	raw, err := cmp.Compare(pair.Original, pair.Patched)
	if err != nil {
		return nil, comparerError(err)
	}
	score, err := cmp.Score(pair.Original, pair.Patched)
	if err != nil {
		return nil, comparerError(err)
	}

	resp := &domain.ScoreResponse{
		Original:    req.Original.Name,
		Patched:     req.Patched.Name,
		Strategy:    cmp.Name(),
		Score:       score,
		Raw:         raw,
		Region:      pair.Region,
		GeneratedAt: time.Now().Format(time.RFC3339),
		Version:     version.Version,
	}
	if req.Settings.ShowVectors {
		resp.OriginalVector = pair.Original
		resp.PatchedVector = pair.Patched
	}
	return resp, nil
}

// Vectorize aligns two snippets and encodes the region where they diverge
func (s *SimilarityServiceImpl) Vectorize(ctx context.Context, opts domain.SimilarityOptions, original, patched domain.Snippet) (*domain.VectorizedPair, error) {
	vz, err := s.cache.vectorizer(opts)
	if err != nil {
		return nil, err
	}
	a, err := vz.parse(ctx, original)
	if err != nil {
		return nil, err
	}
	b, err := vz.parse(ctx, patched)
	if err != nil {
		return nil, err
	}
	return vz.pair(a, b)
}

// candidateResult is the vectorization outcome of one candidate
type candidateResult struct {
	pair *domain.VectorizedPair
	err  error
}

// Rank scores every candidate against the original. Each candidate is aligned
// with the original on its own, so every pair compares its own divergent region.
func (s *SimilarityServiceImpl) Rank(ctx context.Context, req domain.RankRequest) (*domain.RankResponse, error) {
	if len(req.Candidates) == 0 {
		return nil, domain.NewInvalidCandidatesError("no candidates to rank", nil)
	}

	settings := req.Settings
	opts := settings.Options
	vz, err := s.cache.vectorizer(opts)
	if err != nil {
		return nil, err
	}

	original, err := vz.parse(ctx, req.Original)
	if err != nil {
		return nil, err
	}

	total := len(req.Candidates)
	if req.Progress != nil {
		req.Progress.Initialize(total)
		req.Progress.Start()
	}

	workers := settings.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]candidateResult, total)
	var processed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, candidate := range req.Candidates {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			patched, err := vz.parse(gctx, candidate)
			if err == nil {
				var pair *domain.VectorizedPair
				pair, err = vz.pair(original, patched)
				results[i] = candidateResult{pair: pair, err: err}
			} else {
				results[i] = candidateResult{err: err}
			}

			if req.Progress != nil {
				req.Progress.Update(int(processed.Add(1)), total)
			}

			if err != nil {
				if !settings.SkipInvalid {
					return fmt.Errorf("candidate %q: %w", candidate.Name, err)
				}
				log.Warn().Err(err).Str("candidate", candidate.Name).Msg("Candidate could not be vectorized, scoring 0")
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if req.Progress != nil {
			req.Progress.Complete(false)
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("ranking cancelled: %w", err)
		}
		return nil, err
	}

	cmp := newComparer(opts.Strategy, opts.MinkowskiP, opts.CanberraNaN)
	scores, err := s.scoreCandidates(cmp, results, settings)
	if err != nil {
		if req.Progress != nil {
			req.Progress.Complete(false)
		}
		return nil, err
	}
	if req.Progress != nil {
		req.Progress.Complete(true)
	}

	ranked := make([]domain.RankedCandidate, total)
	for i, candidate := range req.Candidates {
		rc := domain.RankedCandidate{
			Name:  candidate.Name,
			Index: i,
			Score: scores[i].score,
		}
		if r := results[i]; r.pair != nil {
			region := r.pair.Region
			rc.Region = &region
			if settings.ShowVectors {
				rc.Vector = r.pair.Patched
			}
		}
		if scores[i].err != nil {
			rc.Error = scores[i].err.Error()
		}
		ranked[i] = rc
	}

	// NaN scores, possible with canberra_nan, rank last
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i].Score, ranked[j].Score
		if math.IsNaN(b) {
			return !math.IsNaN(a)
		}
		return a > b
	})
	for i := range ranked {
		ranked[i].Rank = i + 1
	}

	return &domain.RankResponse{
		Original:    req.Original.Name,
		Strategy:    cmp.Name(),
		Bulk:        settings.Bulk,
		Candidates:  ranked,
		Summary:     summarize(ranked),
		GeneratedAt: time.Now().Format(time.RFC3339),
		Version:     version.Version,
	}, nil
}

type candidateScore struct {
	score float64
	err   error
}

// scoreCandidates scores vectorized candidates. Failed candidates score 0.
//
// Bulk scoring needs one shared reference, so the original region aligned
// with the last vectorized candidate serves as the reference for all of them.
func (s *SimilarityServiceImpl) scoreCandidates(cmp *comparer.Comparer, results []candidateResult, settings domain.SimilaritySettings) ([]candidateScore, error) {
	scores := make([]candidateScore, len(results))

	if !settings.Bulk {
		for i, r := range results {
			if r.err != nil {
				scores[i].err = r.err
				continue
			}
			score, err := cmp.Score(r.pair.Original, r.pair.Patched)
			if err != nil {
				if !settings.SkipInvalid {
					return nil, comparerError(err)
				}
				scores[i].err = err
				continue
			}
			scores[i].score = score
		}
		return scores, nil
	}

	var ref comparer.Vector
	var others []comparer.Vector
	var index []int
	for i, r := range results {
		if r.err != nil {
			scores[i].err = r.err
			continue
		}
		ref = r.pair.Original
		others = append(others, r.pair.Patched)
		index = append(index, i)
	}
	if len(others) == 0 {
		return scores, nil
	}

	bulk, err := cmp.BulkScore(ref, others)
	if err != nil {
		return nil, comparerError(err)
	}
	for j, i := range index {
		scores[i].score = bulk[j]
	}
	return scores, nil
}

func summarize(ranked []domain.RankedCandidate) domain.RankSummary {
	summary := domain.RankSummary{Total: len(ranked)}
	sum := 0.0
	for _, rc := range ranked {
		if rc.Error != "" {
			summary.Failed++
			continue
		}
		if summary.Scored == 0 || rc.Score > summary.BestScore {
			summary.BestScore = rc.Score
		}
		summary.Scored++
		sum += rc.Score
	}
	if summary.Scored > 0 {
		summary.MeanScore = sum / float64(summary.Scored)
	}
	return summary
}

// Compare scores precomputed vectors
func (s *SimilarityServiceImpl) Compare(ctx context.Context, req domain.CompareRequest) (*domain.CompareResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ref, err := comparer.ParseVector(req.Reference)
	if err != nil {
		return nil, comparerError(err)
	}
	candidates, err := comparer.ParseVectors(req.Candidates)
	if err != nil {
		return nil, comparerError(err)
	}

	cmp := newComparer(req.Strategy, req.MinkowskiP, req.CanberraNaN)

	var scores []float64
	if req.Bulk {
		scores, err = cmp.BulkScore(ref, candidates)
		if err != nil {
			return nil, comparerError(err)
		}
	} else {
		scores = make([]float64, len(candidates))
		for i, c := range candidates {
			scores[i], err = cmp.Score(ref, c)
			if err != nil {
				return nil, comparerError(err)
			}
		}
	}

	return &domain.CompareResponse{
		Strategy: cmp.Name(),
		Bulk:     req.Bulk,
		Scores:   scores,
	}, nil
}

func newComparer(strategy string, p float64, canberraNaN bool) *comparer.Comparer {
	if strategy == "" {
		strategy = comparer.DefaultStrategy
	}
	return comparer.New(strategy, comparer.Options{
		MinkowskiP:           p,
		CanberraPropagateNaN: canberraNaN,
	})
}

// comparerError maps vector validation failures onto domain error codes
func comparerError(err error) error {
	switch {
	case errors.Is(err, comparer.ErrInvalidReference):
		return domain.NewInvalidReferenceError("invalid reference vector", err)
	case errors.Is(err, comparer.ErrInvalidCandidates):
		return domain.NewInvalidCandidatesError("invalid candidate vectors", err)
	default:
		return domain.NewSimilarityError("comparison failed", err)
	}
}
