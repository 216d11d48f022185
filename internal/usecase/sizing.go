package usecase

import (
	"log"
	"math"

	"github.com/stylefinder/backend/internal/domain"
)

// SizingPolicy selects the default classification policy. A classifier
// instance applies exactly one policy; table-based and BMI-based give
// different answers and must never be mixed within a call.
type SizingPolicy string

const (
	PolicyTable SizingPolicy = "table"
	PolicyBMI   SizingPolicy = "bmi"
)

// SizingConfig holds configuration for the size classifier
type SizingConfig struct {
	Policy             SizingPolicy
	EnableDebugLogging bool
}

// SizeClassifier maps canonical measurements plus demographics to a size
// label. It never fails: every valid input yields a label through the
// fallback chain, degrading precision rather than erroring.
type SizeClassifier struct {
	policy SizingPolicy
	debug  bool
}

// NewSizeClassifier creates a classifier with the given configuration,
// defaulting to the table-based policy.
func NewSizeClassifier(config SizingConfig) *SizeClassifier {
	policy := config.Policy
	if policy != PolicyBMI {
		policy = PolicyTable
	}
	return &SizeClassifier{policy: policy, debug: config.EnableDebugLogging}
}

// weightBand maps an exclusive upper weight bound to a size token. A
// negative bound means unbounded (the band catches everything above).
type weightBand struct {
	maxLb float64
	token string
}

// heightBracket groups weight bands under an inclusive upper height bound.
// A negative bound means unbounded, so the tallest bracket catches every
// height above the one before it.
type heightBracket struct {
	maxIn float64
	bands []weightBand
}

const unbounded = -1

// mensBrackets is the canonical adult-male table. The sizing bands that
// shipped in earlier wizard revisions disagreed with each other; this table
// supersedes them all rather than merging them. Brackets are scanned in
// ascending height order, bands in ascending weight order, first match wins.
var mensBrackets = []heightBracket{
	{66, []weightBand{{130, "S"}, {160, "M"}, {190, "L"}, {220, "XL"}, {unbounded, "XXL"}}},
	{68, []weightBand{{140, "S"}, {170, "M"}, {200, "L"}, {230, "XL"}, {260, "XXL"}, {unbounded, "3XL"}}},
	{70, []weightBand{{150, "S"}, {180, "M"}, {210, "L"}, {240, "XL"}, {270, "XXL"}, {300, "3XL"}, {unbounded, "4XL"}}},
	{72, []weightBand{{160, "S"}, {190, "M"}, {220, "L"}, {250, "XL"}, {280, "XXL"}, {310, "3XL"}, {340, "4XL"}, {unbounded, "5XL"}}},
	{74, []weightBand{{170, "S"}, {200, "M"}, {230, "L"}, {260, "XL"}, {290, "XXL"}, {320, "3XL"}, {350, "4XL"}, {unbounded, "5XL"}}},
	{unbounded, []weightBand{{180, "M"}, {210, "L"}, {240, "XL"}, {270, "XXL"}, {300, "3XL"}, {330, "4XL"}, {360, "5XL"}, {unbounded, "6XL"}}},
}

// womensBrackets is the canonical adult-female table, structured like the
// male table with its own bracket boundaries.
var womensBrackets = []heightBracket{
	{62, []weightBand{{110, "S"}, {135, "M"}, {160, "L"}, {185, "XL"}, {unbounded, "XXL"}}},
	{65, []weightBand{{120, "S"}, {145, "M"}, {170, "L"}, {195, "XL"}, {unbounded, "XXL"}}},
	{68, []weightBand{{130, "S"}, {155, "M"}, {180, "L"}, {205, "XL"}, {unbounded, "XXL"}}},
	{unbounded, []weightBand{{140, "S"}, {165, "M"}, {190, "L"}, {215, "XL"}, {unbounded, "XXL"}}},
}

// Low-weight short-circuits: below these weights the height brackets are
// skipped entirely and the smallest adult sizes apply regardless of height.
const (
	mensXSWeightLb   = 100
	mensSWeightLb    = 110
	womensXSWeightLb = 100
)

// Weight-only thresholds guard a bracket table whose tail is bounded. The
// shipped tables end in an unbounded bracket, so these only fire if a table
// revision reintroduces a height cap.
var (
	mensWeightFallback   = []weightBand{{150, "S"}, {190, "M"}, {unbounded, "L"}}
	womensWeightFallback = []weightBand{{125, "S"}, {160, "M"}, {unbounded, "L"}}
)

// kidsBand is one row of the minor table: a joint height and weight band.
type kidsBand struct {
	maxHeightIn float64
	maxWeightLb float64
	token       string
}

// kidsBands covers toddler sizes through kids XL. Both height and weight
// must fit for a joint match; scanned in ascending order, first match wins.
var kidsBands = []kidsBand{
	{33, 30, "2T"},
	{36, 34, "3T"},
	{39, 38, "4T"},
	{45, 50, "XS (Size 4-5)"},
	{51, 65, "S (Size 6-8)"},
	{57, 85, "M (Size 10-12)"},
	{62, 110, "L (Size 14-16)"},
	{66, 130, "XL (Size 18-20)"},
}

// bmiBands is the BMI fallback ladder, the policy of record when no
// demographic-aware table applies (gender unspecified) or when the BMI
// policy is configured.
var bmiBands = []struct {
	maxBMI float64
	token  string
}{
	{18.5, "XS"},
	{20, "S"},
	{24, "M"},
	{27, "L"},
	{30, "XL"},
	{unbounded, "XXL"},
}

// Classify maps (measurement, demographic) to a size label. It always
// returns a label; the MatchKind on the result records which rule tier
// produced it.
func (c *SizeClassifier) Classify(m domain.CanonicalMeasurement, d domain.Demographic) domain.SizeResult {
	result := c.classify(m, d)
	if c.debug {
		log.Printf("[SIZING] age=%d gender=%s weight=%.1flb height=%.1fin -> %s (%s)",
			d.AgeYears, d.Gender, m.WeightLb, m.HeightIn, result.Label, result.Match)
	}
	return result
}

func (c *SizeClassifier) classify(m domain.CanonicalMeasurement, d domain.Demographic) domain.SizeResult {
	// Unisex has no demographic table; BMI is the only applicable policy.
	if c.policy == PolicyBMI || d.Gender == domain.GenderUnisex {
		return classifyByBMI(m, d)
	}

	if d.IsMinor() {
		return classifyMinor(m, d)
	}

	switch d.Gender {
	case domain.GenderMale:
		return classifyAdult(m, domain.DeptMens)
	case domain.GenderFemale:
		return classifyAdult(m, domain.DeptWomens)
	}

	// Minor tags on an adult age slip through Validate only in tests;
	// degrade to BMI rather than guessing a table.
	return classifyByBMI(m, d)
}

// classifyMinor picks the kids band by height, checks the joint weight bound,
// and hands tall or heavy minors to the adult path. The early adult transition
// is intentional: a minor taller or heavier than the top kids band wears adult
// sizes, so the declared gender maps to the nearest adult bracket (boy to
// male, girl to female) and the label carries the adult department.
func classifyMinor(m domain.CanonicalMeasurement, d domain.Demographic) domain.SizeResult {
	dept := domain.DeptBoys
	if d.Gender == domain.GenderGirl {
		dept = domain.DeptGirls
	}

	top := kidsBands[len(kidsBands)-1]
	if m.HeightIn > top.maxHeightIn || m.WeightLb > top.maxWeightLb {
		adultDept := domain.DeptMens
		if d.Gender == domain.GenderGirl {
			adultDept = domain.DeptWomens
		}
		result := classifyAdult(m, adultDept)
		result.Match = domain.MatchAdultTransition
		return result
	}

	for _, band := range kidsBands {
		if m.HeightIn > band.maxHeightIn {
			continue
		}
		if m.WeightLb <= band.maxWeightLb {
			return domain.SizeResult{
				Label: domain.SizeLabel{Department: dept, Token: band.token},
				Match: domain.MatchExactBand,
			}
		}
		// Weight busts the band for this height: keep the height-chosen
		// band rather than upsizing past the child's frame.
		return domain.SizeResult{
			Label: domain.SizeLabel{Department: dept, Token: band.token},
			Match: domain.MatchHeightFallback,
		}
	}

	// Unreachable: the transition check above covers heights beyond the table.
	return domain.SizeResult{
		Label: domain.SizeLabel{Department: dept, Token: top.token},
		Match: domain.MatchHeightFallback,
	}
}

func classifyAdult(m domain.CanonicalMeasurement, dept domain.Department) domain.SizeResult {
	var (
		brackets []heightBracket
		fallback []weightBand
	)

	switch dept {
	case domain.DeptWomens:
		if m.WeightLb < womensXSWeightLb {
			return domain.SizeResult{
				Label: domain.SizeLabel{Department: dept, Token: "XS"},
				Match: domain.MatchLowWeight,
			}
		}
		brackets = womensBrackets
		fallback = womensWeightFallback
	default:
		if m.WeightLb < mensXSWeightLb {
			return domain.SizeResult{
				Label: domain.SizeLabel{Department: domain.DeptMens, Token: "XS"},
				Match: domain.MatchLowWeight,
			}
		}
		if m.WeightLb < mensSWeightLb {
			return domain.SizeResult{
				Label: domain.SizeLabel{Department: domain.DeptMens, Token: "S"},
				Match: domain.MatchLowWeight,
			}
		}
		dept = domain.DeptMens
		brackets = mensBrackets
		fallback = mensWeightFallback
	}

	for _, bracket := range brackets {
		if bracket.maxIn >= 0 && m.HeightIn > bracket.maxIn {
			continue
		}
		return domain.SizeResult{
			Label: domain.SizeLabel{Department: dept, Token: pickBand(bracket.bands, m.WeightLb)},
			Match: domain.MatchExactBand,
		}
	}

	// Taller than every bracket: weight-only thresholds.
	return domain.SizeResult{
		Label: domain.SizeLabel{Department: dept, Token: pickBand(fallback, m.WeightLb)},
		Match: domain.MatchWeightFallback,
	}
}

func pickBand(bands []weightBand, weightLb float64) string {
	for _, band := range bands {
		if band.maxLb < 0 || weightLb < band.maxLb {
			return band.token
		}
	}
	return bands[len(bands)-1].token
}

// classifyByBMI is the simpler alternative policy. The department falls back
// to the wizard's historical mapping: explicit male/boy tags keep their
// department, everything else (female, girl, unisex) maps to the
// female-department label.
func classifyByBMI(m domain.CanonicalMeasurement, d domain.Demographic) domain.SizeResult {
	bmi := m.BMI()
	if math.IsNaN(bmi) || math.IsInf(bmi, 0) {
		bmi = 0
	}

	token := bmiBands[len(bmiBands)-1].token
	for _, band := range bmiBands {
		if band.maxBMI < 0 || bmi < band.maxBMI {
			token = band.token
			break
		}
	}

	return domain.SizeResult{
		Label: domain.SizeLabel{Department: bmiDepartment(d), Token: token},
		Match: domain.MatchBMIFallback,
	}
}

func bmiDepartment(d domain.Demographic) domain.Department {
	if d.IsMinor() {
		if d.Gender == domain.GenderBoy {
			return domain.DeptBoys
		}
		return domain.DeptGirls
	}
	if d.Gender == domain.GenderMale {
		return domain.DeptMens
	}
	return domain.DeptWomens
}
