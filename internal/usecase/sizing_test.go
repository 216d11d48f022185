package usecase

import (
	"testing"

	"github.com/stylefinder/backend/internal/domain"
)

func TestClassifyAdultMen(t *testing.T) {
	c := NewSizeClassifier(SizingConfig{})

	testCases := []struct {
		name      string
		weightLb  float64
		heightIn  float64
		wantLabel string
		wantMatch domain.MatchKind
	}{
		{
			name:     "average build lands in medium",
			weightLb: 140, heightIn: 66,
			wantLabel: "Mens M", wantMatch: domain.MatchExactBand,
		},
		{
			name:     "bottom of shortest bracket",
			weightLb: 115, heightIn: 64,
			wantLabel: "Mens S", wantMatch: domain.MatchExactBand,
		},
		{
			name:     "tall heavy build",
			weightLb: 280, heightIn: 74,
			wantLabel: "Mens XXL", wantMatch: domain.MatchExactBand,
		},
		{
			name:     "heaviest band of tallest bracket",
			weightLb: 400, heightIn: 79,
			wantLabel: "Mens 6XL", wantMatch: domain.MatchExactBand,
		},
		{
			name:     "under a hundred pounds short-circuits to XS",
			weightLb: 95, heightIn: 70,
			wantLabel: "Mens XS", wantMatch: domain.MatchLowWeight,
		},
		{
			name:     "just over a hundred short-circuits to S",
			weightLb: 105, heightIn: 70,
			wantLabel: "Mens S", wantMatch: domain.MatchLowWeight,
		},
		{
			name:     "tallest bracket is unbounded",
			weightLb: 200, heightIn: 82,
			wantLabel: "Mens L", wantMatch: domain.MatchExactBand,
		},
		{
			name:     "very tall heavy build keeps the full band range",
			weightLb: 300, heightIn: 85,
			wantLabel: "Mens 4XL", wantMatch: domain.MatchExactBand,
		},
		{
			name:     "weight exactly on band boundary takes next band up",
			weightLb: 160, heightIn: 66,
			wantLabel: "Mens L", wantMatch: domain.MatchExactBand,
		},
		{
			name:     "height exactly on bracket boundary stays in bracket",
			weightLb: 165, heightIn: 68,
			wantLabel: "Mens M", wantMatch: domain.MatchExactBand,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := c.Classify(
				domain.CanonicalMeasurement{WeightLb: tc.weightLb, HeightIn: tc.heightIn},
				domain.Demographic{AgeYears: 30, Gender: domain.GenderMale},
			)
			if got.Label.String() != tc.wantLabel {
				t.Errorf("Classify() = %q, want %q", got.Label.String(), tc.wantLabel)
			}
			if got.Match != tc.wantMatch {
				t.Errorf("Match = %q, want %q", got.Match, tc.wantMatch)
			}
		})
	}
}

func TestClassifyAdultWomen(t *testing.T) {
	c := NewSizeClassifier(SizingConfig{})

	testCases := []struct {
		name      string
		weightLb  float64
		heightIn  float64
		wantLabel string
		wantMatch domain.MatchKind
	}{
		{
			name:     "light build short-circuits to XS regardless of height",
			weightLb: 95, heightIn: 67,
			wantLabel: "Womens XS", wantMatch: domain.MatchLowWeight,
		},
		{
			name:     "petite medium",
			weightLb: 120, heightIn: 61,
			wantLabel: "Womens M", wantMatch: domain.MatchExactBand,
		},
		{
			name:     "average build lands in medium",
			weightLb: 140, heightIn: 66,
			wantLabel: "Womens M", wantMatch: domain.MatchExactBand,
		},
		{
			name:     "heavy build tops out at XXL",
			weightLb: 230, heightIn: 70,
			wantLabel: "Womens XXL", wantMatch: domain.MatchExactBand,
		},
		{
			name:     "tallest bracket is unbounded",
			weightLb: 150, heightIn: 77,
			wantLabel: "Womens M", wantMatch: domain.MatchExactBand,
		},
		{
			name:     "very tall build keeps the full band range",
			weightLb: 200, heightIn: 79,
			wantLabel: "Womens XL", wantMatch: domain.MatchExactBand,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := c.Classify(
				domain.CanonicalMeasurement{WeightLb: tc.weightLb, HeightIn: tc.heightIn},
				domain.Demographic{AgeYears: 28, Gender: domain.GenderFemale},
			)
			if got.Label.String() != tc.wantLabel {
				t.Errorf("Classify() = %q, want %q", got.Label.String(), tc.wantLabel)
			}
			if got.Match != tc.wantMatch {
				t.Errorf("Match = %q, want %q", got.Match, tc.wantMatch)
			}
		})
	}
}

func TestClassifyMinor(t *testing.T) {
	c := NewSizeClassifier(SizingConfig{})

	testCases := []struct {
		name      string
		gender    domain.GenderTag
		weightLb  float64
		heightIn  float64
		wantLabel string
		wantMatch domain.MatchKind
	}{
		{
			name:   "toddler joint match",
			gender: domain.GenderBoy, weightLb: 28, heightIn: 32,
			wantLabel: "Boys 2T", wantMatch: domain.MatchExactBand,
		},
		{
			name:   "grade schooler joint match",
			gender: domain.GenderGirl, weightLb: 60, heightIn: 50,
			wantLabel: "Girls S (Size 6-8)", wantMatch: domain.MatchExactBand,
		},
		{
			name:   "teen at top kids band",
			gender: domain.GenderBoy, weightLb: 120, heightIn: 64,
			wantLabel: "Boys XL (Size 18-20)", wantMatch: domain.MatchExactBand,
		},
		{
			name:   "heavy for height degrades to height-only",
			gender: domain.GenderGirl, weightLb: 70, heightIn: 44,
			wantLabel: "Girls XS (Size 4-5)", wantMatch: domain.MatchHeightFallback,
		},
		{
			name:   "tall teen boy transitions to adult sizes",
			gender: domain.GenderBoy, weightLb: 145, heightIn: 69,
			wantLabel: "Mens S", wantMatch: domain.MatchAdultTransition,
		},
		{
			name:   "tall teen girl transitions to womens sizes",
			gender: domain.GenderGirl, weightLb: 135, heightIn: 68,
			wantLabel: "Womens M", wantMatch: domain.MatchAdultTransition,
		},
		{
			name:   "heavy teen transitions even when height fits a band",
			gender: domain.GenderBoy, weightLb: 145, heightIn: 65,
			wantLabel: "Mens M", wantMatch: domain.MatchAdultTransition,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := c.Classify(
				domain.CanonicalMeasurement{WeightLb: tc.weightLb, HeightIn: tc.heightIn},
				domain.Demographic{AgeYears: 12, Gender: tc.gender},
			)
			if got.Label.String() != tc.wantLabel {
				t.Errorf("Classify() = %q, want %q", got.Label.String(), tc.wantLabel)
			}
			if got.Match != tc.wantMatch {
				t.Errorf("Match = %q, want %q", got.Match, tc.wantMatch)
			}
		})
	}
}

func TestClassifyBMIPolicy(t *testing.T) {
	c := NewSizeClassifier(SizingConfig{Policy: PolicyBMI})

	testCases := []struct {
		name      string
		d         domain.Demographic
		weightLb  float64
		heightIn  float64
		wantLabel string
	}{
		{
			name: "underweight adult male",
			d:    domain.Demographic{AgeYears: 30, Gender: domain.GenderMale},
			// BMI ~17.8
			weightLb: 110, heightIn: 66,
			wantLabel: "Mens XS",
		},
		{
			name: "average adult female",
			d:    domain.Demographic{AgeYears: 30, Gender: domain.GenderFemale},
			// BMI ~22.6
			weightLb: 140, heightIn: 66,
			wantLabel: "Womens M",
		},
		{
			name: "heavy adult male",
			d:    domain.Demographic{AgeYears: 45, Gender: domain.GenderMale},
			// BMI ~32
			weightLb: 250, heightIn: 74,
			wantLabel: "Mens XXL",
		},
		{
			name: "minor girl maps to girls department",
			d:    domain.Demographic{AgeYears: 10, Gender: domain.GenderGirl},
			// BMI ~16
			weightLb: 70, heightIn: 55,
			wantLabel: "Girls XS",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := c.Classify(
				domain.CanonicalMeasurement{WeightLb: tc.weightLb, HeightIn: tc.heightIn},
				tc.d,
			)
			if got.Label.String() != tc.wantLabel {
				t.Errorf("Classify() = %q, want %q", got.Label.String(), tc.wantLabel)
			}
			if got.Match != domain.MatchBMIFallback {
				t.Errorf("Match = %q, want %q", got.Match, domain.MatchBMIFallback)
			}
		})
	}
}

func TestClassifyUnisexUsesBMI(t *testing.T) {
	// Table policy configured, but unisex has no demographic table.
	c := NewSizeClassifier(SizingConfig{Policy: PolicyTable})

	got := c.Classify(
		domain.CanonicalMeasurement{WeightLb: 140, HeightIn: 66},
		domain.Demographic{AgeYears: 30, Gender: domain.GenderUnisex},
	)
	if got.Match != domain.MatchBMIFallback {
		t.Errorf("Match = %q, want %q", got.Match, domain.MatchBMIFallback)
	}
	if got.Label.Department != domain.DeptWomens {
		t.Errorf("Department = %q, want %q", got.Label.Department, domain.DeptWomens)
	}
}

// Within a single height bracket, more weight must never mean a smaller size.
func TestClassifyWeightMonotonic(t *testing.T) {
	c := NewSizeClassifier(SizingConfig{})

	for _, heightIn := range []float64{64, 67, 69, 71, 73, 78} {
		prevRank := -1
		for weightLb := 110.0; weightLb <= 380; weightLb += 5 {
			got := c.Classify(
				domain.CanonicalMeasurement{WeightLb: weightLb, HeightIn: heightIn},
				domain.Demographic{AgeYears: 30, Gender: domain.GenderMale},
			)
			rank := got.Label.Rank()
			if rank < 0 {
				t.Fatalf("unranked token %q at %v lb, %v in", got.Label.Token, weightLb, heightIn)
			}
			if rank < prevRank {
				t.Fatalf("size shrank with weight at %v lb, %v in: rank %d after %d",
					weightLb, heightIn, rank, prevRank)
			}
			prevRank = rank
		}
	}
}

func TestClassifyDeterministic(t *testing.T) {
	c := NewSizeClassifier(SizingConfig{})
	m := domain.CanonicalMeasurement{WeightLb: 172.4, HeightIn: 69.5}
	d := domain.Demographic{AgeYears: 41, Gender: domain.GenderMale}

	first := c.Classify(m, d)
	for i := 0; i < 3; i++ {
		if got := c.Classify(m, d); got != first {
			t.Fatalf("classification not stable: %+v vs %+v", got, first)
		}
	}
}
