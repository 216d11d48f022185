package usecase

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/stylefinder/backend/internal/domain"
)

// priceRegex pulls the first decimal number out of a currency-formatted
// string like "$1,299.99" or "USD 45".
var priceRegex = regexp.MustCompile(`\d+(?:\.\d+)?`)

// ParsePrice parses a currency-formatted price string into dollars. The
// second return is false when no numeric value can be extracted.
func ParsePrice(price string) (float64, bool) {
	cleaned := strings.ReplaceAll(price, ",", "")
	match := priceRegex.FindString(cleaned)
	if match == "" {
		return 0, false
	}
	value, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

// FilterByBudget drops candidates whose parsed price falls outside the
// spec's budget tier. Candidates with unparseable prices are dropped too:
// a price we cannot verify is not shown against a budget the user set.
// The source order of survivors is preserved; filtering never reorders.
// An empty result is a valid terminal state, not an error.
func FilterByBudget(candidates []domain.Product, spec domain.SearchSpec) []domain.Product {
	filtered := make([]domain.Product, 0, len(candidates))
	for _, p := range candidates {
		price, ok := ParsePrice(p.Price)
		if !ok {
			continue
		}
		if spec.InBudget(price) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// Truncate caps the result set for display. The product source's ranking is
// authoritative; truncation keeps the head of the list.
func Truncate(candidates []domain.Product, max int) []domain.Product {
	if max <= 0 || len(candidates) <= max {
		return candidates
	}
	return candidates[:max]
}
