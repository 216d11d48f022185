package usecase

import (
	"math"
	"strconv"
	"strings"

	"github.com/stylefinder/backend/internal/domain"
)

// Unit conversion constants. All unit conversion happens in this file; the
// classifiers only ever see pounds and total inches.
const (
	inchesPerFoot = 12
	cmPerInch     = 2.54
	lbPerKg       = 0.453592
)

// NormalizeMeasurement converts raw wizard measurement input into the
// canonical unit system (pounds, total inches). The second return is false
// when any field is missing, non-numeric, or non-positive: that is the
// ordinary "form not yet complete" state, not an error. No rounding is
// applied; classifiers receive full precision.
func NormalizeMeasurement(raw domain.RawMeasurement) (domain.CanonicalMeasurement, bool) {
	weightLb, ok := normalizeWeight(raw)
	if !ok {
		return domain.CanonicalMeasurement{}, false
	}

	heightIn, ok := normalizeHeight(raw)
	if !ok {
		return domain.CanonicalMeasurement{}, false
	}

	return domain.CanonicalMeasurement{WeightLb: weightLb, HeightIn: heightIn}, true
}

func normalizeWeight(raw domain.RawMeasurement) (float64, bool) {
	value, ok := parsePositive(raw.Weight)
	if !ok {
		return 0, false
	}

	switch raw.WeightUnit {
	case domain.WeightPounds:
		return value, true
	case domain.WeightKilograms:
		return value / lbPerKg, true
	}
	return 0, false
}

func normalizeHeight(raw domain.RawMeasurement) (float64, bool) {
	switch raw.HeightUnit {
	case domain.HeightFeetInches:
		feet, ok := parsePositive(raw.Feet)
		if !ok {
			return 0, false
		}
		// Zero inches is a complete entry ("exactly 5 feet"), so inches only
		// needs to be a non-negative number.
		inches, ok := parseNonNegative(raw.Inches)
		if !ok {
			return 0, false
		}
		return feet*inchesPerFoot + inches, true
	case domain.HeightCentimeters:
		cm, ok := parsePositive(raw.Centimeters)
		if !ok {
			return 0, false
		}
		return cm / cmPerInch, true
	}
	return 0, false
}

func parsePositive(s string) (float64, bool) {
	v, ok := parseNonNegative(s)
	if !ok || v == 0 {
		return 0, false
	}
	return v, true
}

func parseNonNegative(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, false
	}
	return v, true
}
