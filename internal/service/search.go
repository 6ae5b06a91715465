package service

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"homematch/internal/config"
	"homematch/internal/geo"
	"homematch/internal/model"
	"homematch/internal/repository"
	"homematch/internal/scoring"
)

// scoreConcurrency bounds the scoring worker pool per request.
const scoreConcurrency = 8

// SearchOptions carries the tunables of the search pipeline.
type SearchOptions struct {
	PageSize        int
	MinMatchScore   float64
	MaxCandidates   int
	CompRadiusMiles float64
	MatchWeight     float64
	TransactWeight  float64
}

// OptionsFromConfig maps application config onto search options.
func OptionsFromConfig(cfg *config.Config) SearchOptions {
	return SearchOptions{
		PageSize:        cfg.Search.PageSize,
		MinMatchScore:   cfg.Search.MinMatchScore,
		MaxCandidates:   cfg.Search.MaxCandidates,
		CompRadiusMiles: cfg.Search.CompRadius,
		MatchWeight:     cfg.Ranking.MatchWeight,
		TransactWeight:  cfg.Ranking.TransactWeight,
	}
}

// SearchService handles search business logic
type SearchService struct {
	repo   *repository.PostgresRepository
	intent *IntentParser
	scorer *scoring.Scorer
	opts   SearchOptions
}

// NewSearchService creates a new search service
func NewSearchService(
	repo *repository.PostgresRepository,
	intentParser *IntentParser,
	scorer *scoring.Scorer,
	opts SearchOptions,
) *SearchService {
	if opts.PageSize <= 0 {
		opts.PageSize = 25
	}
	return &SearchService{
		repo:   repo,
		intent: intentParser,
		scorer: scorer,
		opts:   opts,
	}
}

// SearchEventCallback is called for streaming search events
type SearchEventCallback func(event string, data any) error

// Search performs a complete search: intent parsing, candidate loading,
// scoring, and ranking.
func (s *SearchService) Search(ctx context.Context, req *model.SearchRequest) (*model.SearchResponse, error) {
	startTime := time.Now()

	intentResult := s.intent.Parse(ctx, req.Query)
	intent := mergeIntent(req.Intent, intentResult.Intent)

	candidates, err := s.loadCandidates(ctx, intent)
	if err != nil {
		return nil, err
	}

	page, err := s.Rank(ctx, candidates, intent, req.Page)
	if err != nil {
		return nil, err
	}

	took := time.Since(startTime).Milliseconds()
	searchID := uuid.NewString()

	s.logSearchAsync(searchID, req.Query, intent, page, int(took))

	return &model.SearchResponse{
		SearchID:   searchID,
		SearchPage: *page,
		Intent:     intentResult,
		Took:       took,
	}, nil
}

// SearchStream performs a search with streaming intent parsing, emitting
// progress events through the callback.
func (s *SearchService) SearchStream(ctx context.Context, req *model.SearchRequest, callback SearchEventCallback) (*model.SearchResponse, error) {
	startTime := time.Now()

	if err := callback("parsing", map[string]any{
		"status": "Parsing your query...",
	}); err != nil {
		return nil, err
	}

	intentResult, err := s.intent.ParseStream(ctx, req.Query, func(thinking, content string) error {
		if thinking != "" {
			return callback("thinking", map[string]any{"content": thinking})
		}
		if content != "" {
			return callback("content", map[string]any{"content": content})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := callback("intent", intentResult); err != nil {
		return nil, err
	}

	intent := mergeIntent(req.Intent, intentResult.Intent)

	if err := callback("searching", map[string]any{
		"status": "Scoring properties...",
	}); err != nil {
		return nil, err
	}

	candidates, err := s.loadCandidates(ctx, intent)
	if err != nil {
		return nil, err
	}

	page, err := s.Rank(ctx, candidates, intent, req.Page)
	if err != nil {
		return nil, err
	}

	took := time.Since(startTime).Milliseconds()
	searchID := uuid.NewString()

	s.logSearchAsync(searchID, req.Query, intent, page, int(took))

	return &model.SearchResponse{
		SearchID:   searchID,
		SearchPage: *page,
		Intent:     intentResult,
		Took:       took,
	}, nil
}

// loadCandidates pulls the candidate set with coarse database-side cuts.
// The budget ceiling is deliberately generous: over-budget properties still
// score, they just score lower.
func (s *SearchService) loadCandidates(ctx context.Context, intent *model.ParsedIntent) ([]model.PropertyRecord, error) {
	filter := repository.CandidateFilter{
		PropertyTypes: intent.PropertyTypes,
		Limit:         s.opts.MaxCandidates,
	}
	if intent.BudgetMax != nil {
		ceiling := *intent.BudgetMax * 1.5
		filter.PriceMax = &ceiling
	}

	candidates, err := s.repo.ListCandidates(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to load candidates: %w", err)
	}
	return candidates, nil
}

// rankedHit pairs a scored result with its composite ranking key.
type rankedHit struct {
	result    model.ScoredResult
	composite float64
}

// Rank scores every candidate against the intent, discards weak matches,
// orders by the composite key, and returns the requested page.
func (s *SearchService) Rank(ctx context.Context, candidates []model.PropertyRecord, intent *model.ParsedIntent, page int) (*model.SearchPage, error) {
	if intent == nil {
		return nil, fmt.Errorf("intent must not be nil")
	}
	if page < 1 {
		page = 1
	}

	nearby := s.nearbySaleFlags(candidates)

	hits := make([]*rankedHit, len(candidates))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(scoreConcurrency)

	for i := range candidates {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			p := &candidates[i]

			match, err := s.scorer.Score(p, intent)
			if err != nil {
				return fmt.Errorf("scoring property %s: %w", p.ID, err)
			}
			if match.Score < s.opts.MinMatchScore {
				return nil
			}

			transact, err := scoring.TransactScore(p, nearby[i])
			if err != nil {
				return fmt.Errorf("transact scoring property %s: %w", p.ID, err)
			}

			composite := s.opts.MatchWeight*match.Score + s.opts.TransactWeight*scoring.TransactNumeric(transact.Level)
			hits[i] = &rankedHit{
				result: model.ScoredResult{
					Property:        *p,
					MatchScore:      match.Score,
					TransactScore:   transact.Score,
					TransactLevel:   string(transact.Level),
					TransactSignals: transact.Signals,
					Explanation:     match.Explanation,
				},
				composite: composite,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	kept := make([]*rankedHit, 0, len(hits))
	for _, h := range hits {
		if h != nil {
			kept = append(kept, h)
		}
	}

	// Composite descending; ties break on property ID so pagination is stable.
	sort.Slice(kept, func(a, b int) bool {
		if kept[a].composite != kept[b].composite {
			return kept[a].composite > kept[b].composite
		}
		return kept[a].result.Property.ID < kept[b].result.Property.ID
	})

	total := len(kept)
	start := (page - 1) * s.opts.PageSize
	if start > total {
		start = total
	}
	end := start + s.opts.PageSize
	if end > total {
		end = total
	}

	results := make([]model.ScoredResult, 0, end-start)
	for _, h := range kept[start:end] {
		results = append(results, h.result)
	}

	return &model.SearchPage{
		Results:  results,
		Total:    total,
		Page:     page,
		PageSize: s.opts.PageSize,
	}, nil
}

// nearbySaleFlags marks each candidate that has a recently sold comp within
// the configured radius. Quadratic over the candidate set, which stays small
// enough after the database-side cuts.
func (s *SearchService) nearbySaleFlags(candidates []model.PropertyRecord) []bool {
	flags := make([]bool, len(candidates))
	radius := s.opts.CompRadiusMiles
	if radius <= 0 {
		radius = 1.0
	}

	var sold []*model.PropertyRecord
	for i := range candidates {
		if candidates[i].ListingStatus == model.ListingStatusRecentlySold && candidates[i].HasLocation() {
			sold = append(sold, &candidates[i])
		}
	}
	if len(sold) == 0 {
		return flags
	}

	for i := range candidates {
		p := &candidates[i]
		if !p.HasLocation() {
			continue
		}
		for _, c := range sold {
			if c.ID == p.ID {
				continue
			}
			if geo.Distance(p.Latitude, p.Longitude, c.Latitude, c.Longitude) <= radius {
				flags[i] = true
				break
			}
		}
	}
	return flags
}

// GetProperty retrieves a single property by ID
func (s *SearchService) GetProperty(ctx context.Context, id string) (*model.PropertyRecord, error) {
	return s.repo.GetProperty(ctx, id)
}

// UpdateEmbeddings updates embeddings for multiple properties
func (s *SearchService) UpdateEmbeddings(ctx context.Context, items []model.EmbeddingItem) (int, []string) {
	return s.repo.BatchUpdateEmbeddings(ctx, items)
}

// LogFeedback logs a buyer action against a search result
func (s *SearchService) LogFeedback(ctx context.Context, searchID, propertyID, action string) error {
	return s.repo.LogFeedback(ctx, searchID, propertyID, action)
}

func (s *SearchService) logSearchAsync(searchID, query string, intent *model.ParsedIntent, page *model.SearchPage, tookMs int) {
	ids := make([]string, len(page.Results))
	for i, r := range page.Results {
		ids[i] = r.Property.ID
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.repo.LogSearch(ctx, searchID, query, intent, page.Total, ids, tookMs); err != nil {
			log.Printf("Failed to log search %s: %v", searchID, err)
		}
	}()
}

// mergeIntent overlays the buyer's explicit intent onto the parsed one.
// Explicit fields win; parsed fields fill the gaps.
func mergeIntent(explicit, parsed *model.ParsedIntent) *model.ParsedIntent {
	if explicit == nil {
		if parsed == nil {
			return &model.ParsedIntent{}
		}
		return parsed
	}
	if parsed == nil {
		return explicit
	}

	merged := *explicit
	if len(merged.Styles) == 0 {
		merged.Styles = parsed.Styles
	}
	if len(merged.Features) == 0 {
		merged.Features = parsed.Features
	}
	if merged.BudgetMin == nil {
		merged.BudgetMin = parsed.BudgetMin
	}
	if merged.BudgetMax == nil {
		merged.BudgetMax = parsed.BudgetMax
	}
	if len(merged.Locations) == 0 {
		merged.Locations = parsed.Locations
	}
	if merged.BedsMin == nil {
		merged.BedsMin = parsed.BedsMin
	}
	if merged.BedsMax == nil {
		merged.BedsMax = parsed.BedsMax
	}
	if merged.BathsMin == nil {
		merged.BathsMin = parsed.BathsMin
	}
	if merged.BathsMax == nil {
		merged.BathsMax = parsed.BathsMax
	}
	if merged.SqftMin == nil {
		merged.SqftMin = parsed.SqftMin
	}
	if merged.SqftMax == nil {
		merged.SqftMax = parsed.SqftMax
	}
	if len(merged.PropertyTypes) == 0 {
		merged.PropertyTypes = parsed.PropertyTypes
	}
	if len(merged.LifestyleTags) == 0 {
		merged.LifestyleTags = parsed.LifestyleTags
	}
	if merged.Summary == "" {
		merged.Summary = parsed.Summary
	}
	return &merged
}
