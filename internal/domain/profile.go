package domain

import "strings"

// GenderTag is the closed set of demographic tags the wizard can submit.
// The classifier and query builder switch on this exhaustively; adding a tag
// here means every switch stops compiling until it handles the new case.
type GenderTag string

const (
	GenderBoy    GenderTag = "boy"
	GenderGirl   GenderTag = "girl"
	GenderMale   GenderTag = "male"
	GenderFemale GenderTag = "female"
	GenderUnisex GenderTag = "unisex"
)

// ParseGenderTag maps free-form wizard input to a GenderTag.
func ParseGenderTag(s string) (GenderTag, bool) {
	switch GenderTag(strings.ToLower(strings.TrimSpace(s))) {
	case GenderBoy:
		return GenderBoy, true
	case GenderGirl:
		return GenderGirl, true
	case GenderMale:
		return GenderMale, true
	case GenderFemale:
		return GenderFemale, true
	case GenderUnisex:
		return GenderUnisex, true
	}
	return "", false
}

// Demographic is the age/gender pair collected in the first wizard step.
type Demographic struct {
	AgeYears int       `json:"ageYears"`
	Gender   GenderTag `json:"gender"`
}

// IsMinor reports whether the minor sizing path applies.
func (d Demographic) IsMinor() bool {
	return d.AgeYears < 18
}

// Validate enforces the age/gender pairing: minors use boy/girl/unisex,
// adults use male/female/unisex.
func (d Demographic) Validate() error {
	if d.AgeYears < 0 {
		return ErrInvalidRequest
	}
	switch d.Gender {
	case GenderBoy, GenderGirl:
		if !d.IsMinor() {
			return ErrInvalidRequest
		}
	case GenderMale, GenderFemale:
		if d.IsMinor() {
			return ErrInvalidRequest
		}
	case GenderUnisex:
	default:
		return ErrInvalidRequest
	}
	return nil
}

// Department is the demographic category prefixing every size label.
type Department string

const (
	DeptBoys   Department = "Boys"
	DeptGirls  Department = "Girls"
	DeptMens   Department = "Mens"
	DeptWomens Department = "Womens"
)

// SizeLabel is the classifier output: a department plus a size token,
// e.g. {Mens, "M"} or {Girls, "S (Size 6-8)"}.
type SizeLabel struct {
	Department Department `json:"department"`
	Token      string     `json:"token"`
}

func (s SizeLabel) String() string {
	return string(s.Department) + " " + s.Token
}

// sizeRanks orders the adult tokens so tests can assert monotonicity.
// XXL and 2XL are the same rank; vendors spell it both ways.
var sizeRanks = map[string]int{
	"XS": 0, "S": 1, "M": 2, "L": 3, "XL": 4,
	"XXL": 5, "2XL": 5, "3XL": 6, "4XL": 7, "5XL": 8, "6XL": 9,
}

// Rank returns the ordinal position of the size token, or -1 for tokens
// outside the adult ladder (toddler and numeric kids sizes).
func (s SizeLabel) Rank() int {
	token := s.Token
	if idx := strings.Index(token, " ("); idx > 0 {
		token = token[:idx]
	}
	if r, ok := sizeRanks[token]; ok {
		return r
	}
	return -1
}

// MatchKind records which rule tier produced a size label. Exact band matches
// and the various fallbacks yield different kinds so degradation stays
// observable in tests without surfacing to the user.
type MatchKind string

const (
	MatchExactBand       MatchKind = "exact_band"
	MatchLowWeight       MatchKind = "low_weight"
	MatchHeightFallback  MatchKind = "height_fallback"
	MatchWeightFallback  MatchKind = "weight_fallback"
	MatchAdultTransition MatchKind = "adult_transition"
	MatchBMIFallback     MatchKind = "bmi_fallback"
)

// SizeResult pairs the label with the tier that produced it.
type SizeResult struct {
	Label SizeLabel `json:"label"`
	Match MatchKind `json:"match"`
}

// OccasionContext is the wizard's occasion step. Season may be the sentinel
// "indoor", in which case it is ignored by the query builder.
type OccasionContext struct {
	Occasion      string `json:"occasion"`
	Season        string `json:"season"`
	Activity      string `json:"activity,omitempty"`
	SpecificNeeds string `json:"specificNeeds,omitempty"`
}

// SeasonIndoor is the sentinel meaning season is irrelevant for this occasion.
const SeasonIndoor = "indoor"

// StylePreference is the wizard's style step joined with the computed size.
type StylePreference struct {
	Styles []string   `json:"styles,omitempty"`
	Colors []string   `json:"colors,omitempty"`
	Brands []string   `json:"brands,omitempty"`
	Budget BudgetTier `json:"budget"`
	Size   SizeLabel  `json:"size"`
}
