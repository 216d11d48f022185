package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// ProductSource is the outbound contract to the product catalog. The
// implementation (catalog API, generative service, static fixtures) is
// substitutable; the core only needs ranked candidates for a SearchSpec.
type ProductSource interface {
	Search(ctx context.Context, spec SearchSpec) ([]Product, error)
}

// StyleAdvisor is the optional generative strategy: a service that infers
// the size and search queries directly from the profile. The deterministic
// rule tables remain the default and the fallback when the advisor errors
// or returns unparseable output.
type StyleAdvisor interface {
	DetermineSize(ctx context.Context, m CanonicalMeasurement, d Demographic) (SizeLabel, error)
	GenerateQueries(ctx context.Context, style StylePreference, occasion OccasionContext) ([]string, error)
}

// HistoryRepository appends search-history records keyed by user and
// timestamp. Persistence details are a collaborator concern; failures here
// must never fail a search.
type HistoryRepository interface {
	Append(ctx context.Context, record HistoryRecord) error
}

// HistoryRecord is one line of the append-only search log.
type HistoryRecord struct {
	UserID    string    `json:"user_id"`
	Timestamp time.Time `json:"timestamp"`
	Occasion  string    `json:"occasion"`
	Season    string    `json:"season"`
	Size      string    `json:"size"`
	Budget    string    `json:"budget"`
	Terms     []string  `json:"terms"`
}
