package domain

// WeightUnit identifies how the wizard collected the weight input
type WeightUnit string

const (
	WeightPounds    WeightUnit = "lb"
	WeightKilograms WeightUnit = "kg"
)

// HeightUnit identifies how the wizard collected the height input
type HeightUnit string

const (
	HeightFeetInches  HeightUnit = "ft_in"
	HeightCentimeters HeightUnit = "cm"
)

// RawMeasurement carries the wizard's measurement fields exactly as entered.
// Values stay strings until the normalizer validates them; a half-filled form
// is a normal state here, not an error.
type RawMeasurement struct {
	Weight      string     `json:"weight"`
	WeightUnit  WeightUnit `json:"weightUnit"`
	Feet        string     `json:"feet,omitempty"`
	Inches      string     `json:"inches,omitempty"`
	Centimeters string     `json:"centimeters,omitempty"`
	HeightUnit  HeightUnit `json:"heightUnit"`
}

// CanonicalMeasurement is the single unit system the classifiers consume:
// pounds and total inches. Immutable once computed; recompute, don't patch.
type CanonicalMeasurement struct {
	WeightLb float64 `json:"weightLb"`
	HeightIn float64 `json:"heightIn"`
}

// BMI returns weight_kg / height_m^2 for the BMI fallback classifier.
func (m CanonicalMeasurement) BMI() float64 {
	weightKg := m.WeightLb * 0.453592
	heightM := m.HeightIn * 2.54 / 100
	return weightKg / (heightM * heightM)
}
