package usecase

import (
	"strings"

	"github.com/stylefinder/backend/internal/domain"
)

// WizardStep is the wizard's position. Steps advance strictly forward;
// Reset returns to the start.
type WizardStep int

const (
	StepDemographics WizardStep = iota
	StepMeasurements
	StepStyle
	StepOccasion
	StepResults
)

// WizardState is the accumulated wizard session. It is immutable: every
// transition returns a new state and leaves the receiver untouched, so a
// stale UI callback can never corrupt a newer state.
type WizardState struct {
	Step        WizardStep
	Demographic domain.Demographic
	Raw         domain.RawMeasurement
	Measurement domain.CanonicalMeasurement
	Size        domain.SizeResult
	Style       domain.StylePreference
	Occasion    domain.OccasionContext
}

// NewWizardState returns the initial state.
func NewWizardState() WizardState {
	return WizardState{Step: StepDemographics}
}

// WithDemographic validates and records the age/gender step. An invalid
// pairing blocks the transition with ErrProfileIncomplete.
func (s WizardState) WithDemographic(d domain.Demographic) (WizardState, error) {
	if s.Step != StepDemographics {
		return s, domain.ErrInvalidRequest
	}
	if err := d.Validate(); err != nil {
		return s, domain.ErrProfileIncomplete
	}
	next := s
	next.Demographic = d
	next.Step = StepMeasurements
	return next, nil
}

// WithMeasurements normalizes the raw measurement input and computes the
// size via the given classifier. A form that does not yet parse blocks the
// transition; that is the normal incomplete-input state.
func (s WizardState) WithMeasurements(raw domain.RawMeasurement, classifier *SizeClassifier) (WizardState, error) {
	if s.Step != StepMeasurements {
		return s, domain.ErrInvalidRequest
	}
	canonical, ready := NormalizeMeasurement(raw)
	if !ready {
		return s, domain.ErrProfileIncomplete
	}
	next := s
	next.Raw = raw
	next.Measurement = canonical
	next.Size = classifier.Classify(canonical, s.Demographic)
	next.Step = StepStyle
	return next, nil
}

// WithStyle records the style step. Budget is required before query
// building; the computed size is attached here so the preference snapshot
// is self-contained.
func (s WizardState) WithStyle(style domain.StylePreference) (WizardState, error) {
	if s.Step != StepStyle {
		return s, domain.ErrInvalidRequest
	}
	if !style.Budget.Valid() {
		return s, domain.ErrProfileIncomplete
	}
	next := s
	next.Style = style
	next.Style.Size = s.Size.Label
	next.Step = StepOccasion
	return next, nil
}

// WithOccasion records the occasion step. Occasion is always required;
// season is required unless the occasion is indoor.
func (s WizardState) WithOccasion(occasion domain.OccasionContext) (WizardState, error) {
	if s.Step != StepOccasion {
		return s, domain.ErrInvalidRequest
	}
	if strings.TrimSpace(occasion.Occasion) == "" {
		return s, domain.ErrProfileIncomplete
	}
	if strings.TrimSpace(occasion.Season) == "" && !IsIndoorOccasion(occasion) {
		return s, domain.ErrProfileIncomplete
	}
	next := s
	next.Occasion = occasion
	if IsIndoorOccasion(occasion) {
		next.Occasion.Season = domain.SeasonIndoor
	}
	next.Step = StepResults
	return next, nil
}

// Reset returns to the initial state, discarding all accumulated answers.
func (s WizardState) Reset() WizardState {
	return NewWizardState()
}
