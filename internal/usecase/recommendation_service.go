package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/stylefinder/backend/internal/domain"
)

// Package-level compiled regex patterns for performance
var (
	nonAlphanumericRegex = regexp.MustCompile(`[^a-z0-9\s]`)
	multipleSpacesRegex  = regexp.MustCompile(`\s+`)
)

// RecommendationConfig holds configuration for the recommendation service
type RecommendationConfig struct {
	CacheTTL           time.Duration
	MaxResults         int
	EnableDebugLogging bool
}

// OutfitRequest is the full profile a wizard session submits for a search.
type OutfitRequest struct {
	SessionID   string                 `json:"sessionId"`
	UserID      string                 `json:"userId"`
	Raw         domain.RawMeasurement  `json:"measurements"`
	Demographic domain.Demographic     `json:"demographic"`
	Style       domain.StylePreference `json:"style"`
	Occasion    domain.OccasionContext `json:"occasion"`
}

// RecommendationService runs the full pipeline: normalize, classify, build
// query, search the product source, filter by budget. One meaningful search
// per session: a newer request supersedes any still in flight, and the stale
// one's response is discarded instead of overwriting fresher results.
type RecommendationService struct {
	classifier *SizeClassifier
	builder    *QueryBuilder
	source     domain.ProductSource
	cache      domain.CacheRepository
	history    domain.HistoryRepository
	advisor    domain.StyleAdvisor
	cacheTTL   time.Duration
	maxResults int
	debug      bool

	mu         sync.Mutex
	sessionSeq map[string]uint64
}

// NewRecommendationService creates the service. history and advisor may be
// nil; the advisor is the optional generative strategy and the deterministic
// rule tables are always the fallback.
func NewRecommendationService(
	classifier *SizeClassifier,
	builder *QueryBuilder,
	source domain.ProductSource,
	cache domain.CacheRepository,
	history domain.HistoryRepository,
	advisor domain.StyleAdvisor,
	config RecommendationConfig,
) *RecommendationService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 24 * time.Hour
	}
	maxResults := config.MaxResults
	if maxResults <= 0 {
		maxResults = 24
	}

	return &RecommendationService{
		classifier: classifier,
		builder:    builder,
		source:     source,
		cache:      cache,
		history:    history,
		advisor:    advisor,
		cacheTTL:   cacheTTL,
		maxResults: maxResults,
		debug:      config.EnableDebugLogging,
		sessionSeq: make(map[string]uint64),
	}
}

// Search runs one recommendation pipeline pass.
// Flow: validate -> normalize -> classify -> build query -> history ->
// cache -> product source -> filter -> truncate.
func (s *RecommendationService) Search(ctx context.Context, req *OutfitRequest) (*domain.RecommendationResult, error) {
	if req == nil {
		return nil, domain.ErrInvalidRequest
	}
	if err := req.Demographic.Validate(); err != nil {
		return nil, domain.ErrProfileIncomplete
	}
	if !req.Style.Budget.Valid() || strings.TrimSpace(req.Occasion.Occasion) == "" {
		return nil, domain.ErrProfileIncomplete
	}

	measurement, ready := NormalizeMeasurement(req.Raw)
	if !ready {
		return nil, domain.ErrProfileIncomplete
	}

	seq := s.beginSearch(req.SessionID)

	size := s.resolveSize(ctx, measurement, req.Demographic)
	style := req.Style
	style.Size = size.Label

	spec := s.resolveSpec(ctx, style, req.Occasion)

	s.recordHistory(ctx, req, size, spec)

	cacheKey := s.generateCacheKey(req, size)
	if cached := s.getFromCache(ctx, cacheKey); cached != nil {
		if s.stale(req.SessionID, seq) {
			return nil, domain.ErrSearchSuperseded
		}
		cached.Source = "Cache"
		return cached, nil
	}

	// Any product-source failure means zero candidates, never a crash; the
	// UI shows its empty state and the caller is free to retry.
	candidates, err := s.source.Search(ctx, spec)
	if err != nil {
		if s.debug {
			log.Printf("[RECOMMEND] catalog lookup failed, returning empty set: %v", err)
		}
		candidates = nil
	}

	filtered := FilterByBudget(candidates, spec)
	filtered = Truncate(filtered, s.maxResults)

	if s.stale(req.SessionID, seq) {
		return nil, domain.ErrSearchSuperseded
	}

	result := &domain.RecommendationResult{
		Products:     filtered,
		Size:         size,
		Terms:        spec.Terms,
		TotalResults: len(filtered),
		Source:       "Catalog",
	}

	if len(filtered) > 0 {
		s.setInCache(ctx, cacheKey, result)
	}

	return result, nil
}

// PreviewSize exposes the classifier for the wizard's live size preview.
func (s *RecommendationService) PreviewSize(raw domain.RawMeasurement, d domain.Demographic) (domain.SizeResult, error) {
	if err := d.Validate(); err != nil {
		return domain.SizeResult{}, domain.ErrProfileIncomplete
	}
	measurement, ready := NormalizeMeasurement(raw)
	if !ready {
		return domain.SizeResult{}, domain.ErrProfileIncomplete
	}
	return s.classifier.Classify(measurement, d), nil
}

// resolveSize asks the generative advisor first when one is configured and
// falls back to the deterministic tables on any error or unparseable output.
func (s *RecommendationService) resolveSize(ctx context.Context, m domain.CanonicalMeasurement, d domain.Demographic) domain.SizeResult {
	if s.advisor != nil {
		label, err := s.advisor.DetermineSize(ctx, m, d)
		if err == nil {
			return domain.SizeResult{Label: label, Match: domain.MatchExactBand}
		}
		if s.debug {
			log.Printf("[RECOMMEND] advisor size failed, using rule tables: %v", err)
		}
	}
	return s.classifier.Classify(m, d)
}

// resolveSpec mirrors resolveSize for query generation. Advisor terms are
// trimmed to the fan-out cap; an empty or failed response falls back to the
// deterministic builder.
func (s *RecommendationService) resolveSpec(ctx context.Context, style domain.StylePreference, occasion domain.OccasionContext) domain.SearchSpec {
	if s.advisor != nil {
		terms, err := s.advisor.GenerateQueries(ctx, style, occasion)
		if err == nil && len(terms) > 0 {
			if len(terms) > domain.MaxQueryTerms {
				terms = terms[:domain.MaxQueryTerms]
			}
			return domain.SearchSpec{Terms: terms, Budget: style.Budget}
		}
		if err != nil && s.debug {
			log.Printf("[RECOMMEND] advisor queries failed, using rule builder: %v", err)
		}
	}
	return s.builder.BuildQuery(style, occasion)
}

// recordHistory appends to the search log. History failures never fail a
// search.
func (s *RecommendationService) recordHistory(ctx context.Context, req *OutfitRequest, size domain.SizeResult, spec domain.SearchSpec) {
	if s.history == nil {
		return
	}
	record := domain.HistoryRecord{
		UserID:    req.UserID,
		Timestamp: time.Now().UTC(),
		Occasion:  req.Occasion.Occasion,
		Season:    req.Occasion.Season,
		Size:      size.Label.String(),
		Budget:    string(spec.Budget),
		Terms:     spec.Terms,
	}
	if err := s.history.Append(ctx, record); err != nil && s.debug {
		log.Printf("[RECOMMEND] history append failed: %v", err)
	}
}

// beginSearch bumps the session's sequence number and returns this search's
// ticket. stale compares the ticket against the latest.
func (s *RecommendationService) beginSearch(sessionID string) uint64 {
	if sessionID == "" {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessionSeq[sessionID]++
	return s.sessionSeq[sessionID]
}

func (s *RecommendationService) stale(sessionID string, seq uint64) bool {
	if sessionID == "" {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessionSeq[sessionID] != seq
}

// generateCacheKey builds a normalized key from everything that affects the
// result set: occasion context, budget, resolved size, and the style, color
// and brand preferences the query terms are derived from. Advisor-built
// terms get their own keyspace so they never alias rule-built ones.
// Format: "outfits:{strategy}:{occasion}:{season}:{budget}:{size}:{styles}:{colors}:{brands}"
func (s *RecommendationService) generateCacheKey(req *OutfitRequest, size domain.SizeResult) string {
	strategy := "rules"
	if s.advisor != nil {
		strategy = "advisor"
	}
	return fmt.Sprintf("outfits:%s:%s:%s:%s:%s:%s:%s:%s",
		strategy,
		normalizeForCacheKey(req.Occasion.Occasion),
		normalizeForCacheKey(req.Occasion.Season),
		normalizeForCacheKey(string(req.Style.Budget)),
		normalizeForCacheKey(size.Label.String()),
		normalizeListForCacheKey(req.Style.Styles),
		normalizeListForCacheKey(req.Style.Colors),
		normalizeListForCacheKey(req.Style.Brands),
	)
}

// normalizeListForCacheKey joins normalized values with commas, which
// normalizeForCacheKey never emits, so list entries cannot collide.
func normalizeListForCacheKey(values []string) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		if n := normalizeForCacheKey(v); n != "" {
			parts = append(parts, n)
		}
	}
	return strings.Join(parts, ",")
}

// normalizeForCacheKey lowercases and strips special characters so
// equivalent inputs share a key.
func normalizeForCacheKey(s string) string {
	if s == "" {
		return ""
	}
	result := strings.ToLower(s)
	result = nonAlphanumericRegex.ReplaceAllString(result, "")
	result = multipleSpacesRegex.ReplaceAllString(result, " ")
	return strings.TrimSpace(result)
}

func (s *RecommendationService) getFromCache(ctx context.Context, key string) *domain.RecommendationResult {
	if s.cache == nil {
		return nil
	}
	value, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil
	}
	raw, ok := value.([]byte)
	if !ok {
		return nil
	}
	var result domain.RecommendationResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil
	}
	return &result
}

func (s *RecommendationService) setInCache(ctx context.Context, key string, result *domain.RecommendationResult) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, raw, s.cacheTTL); err != nil && s.debug {
		log.Printf("[RECOMMEND] cache set failed: %v", err)
	}
}
