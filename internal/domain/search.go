package domain

// BudgetTier is one of the five fixed price ranges selectable in the wizard.
type BudgetTier string

const (
	BudgetUnder50  BudgetTier = "under-50"
	Budget50To100  BudgetTier = "50-100"
	Budget100To200 BudgetTier = "100-200"
	Budget200To500 BudgetTier = "200-500"
	BudgetOver500  BudgetTier = "over-500"
)

// budgetBounds are half-open [lo, hi) dollar ranges. Half-open intervals mean
// a boundary price like $50.00 belongs to exactly one tier ($50 is in 50-100,
// not under-50); the tiers partition all non-negative prices.
var budgetBounds = map[BudgetTier][2]float64{
	BudgetUnder50:  {0, 50},
	Budget50To100:  {50, 100},
	Budget100To200: {100, 200},
	Budget200To500: {200, 500},
	BudgetOver500:  {500, -1}, // no upper bound
}

// Valid reports whether the tier is one of the five known ranges.
func (t BudgetTier) Valid() bool {
	_, ok := budgetBounds[t]
	return ok
}

// Contains reports whether a price falls inside the tier's range.
// Unknown tiers accept everything so a malformed tier degrades to "no filter"
// rather than an empty result set.
func (t BudgetTier) Contains(price float64) bool {
	bounds, ok := budgetBounds[t]
	if !ok {
		return true
	}
	if price < bounds[0] {
		return false
	}
	return bounds[1] < 0 || price < bounds[1]
}

// MaxQueryTerms bounds the fan-out handed to the product source per search.
const MaxQueryTerms = 8

// SearchSpec is the normalized product-search request: a bounded, ordered
// list of category-scoped query terms plus the budget predicate. Produced
// once per query-build and consumed exactly once by the product source.
type SearchSpec struct {
	Terms  []string   `json:"terms"`
	Budget BudgetTier `json:"budget"`
}

// InBudget is the budget predicate applied by the result filter.
func (s SearchSpec) InBudget(price float64) bool {
	return s.Budget.Contains(price)
}
