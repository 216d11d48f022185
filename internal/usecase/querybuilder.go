package usecase

import (
	"log"
	"strings"

	"github.com/stylefinder/backend/internal/domain"
)

// OccasionClass is the coarse bucket derived from the free-text occasion.
type OccasionClass string

const (
	OccasionFormal OccasionClass = "formal"
	OccasionWork   OccasionClass = "work"
	OccasionParty  OccasionClass = "party"
	OccasionCasual OccasionClass = "casual"
)

// occasionRules are scanned in order; the first keyword hit wins. Formal and
// work keywords come before party/date, casual is the default. The workout
// family sits first because "workout" would otherwise hit the bare "work"
// substring.
var occasionRules = []struct {
	keywords []string
	class    OccasionClass
}{
	{[]string{"workout", "gym", "sport", "athletic"}, OccasionCasual},
	{[]string{"wedding", "interview", "formal", "black tie"}, OccasionFormal},
	{[]string{"work", "office", "business", "meeting"}, OccasionWork},
	{[]string{"party", "date", "dinner", "club", "concert", "night"}, OccasionParty},
}

// ClassifyOccasion buckets a free-text occasion value, case-insensitively.
func ClassifyOccasion(occasion string) OccasionClass {
	lower := strings.ToLower(occasion)
	for _, rule := range occasionRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.class
			}
		}
	}
	return OccasionCasual
}

// indoorKeywords catch inside venues the occasion class alone does not
// imply: the workout family classifies as casual but happens in a gym.
var indoorKeywords = []string{"workout", "gym", "sport", "athletic", "indoor"}

// IsIndoorOccasion reports whether season qualifiers should be suppressed.
// Formal and party occasions happen inside regardless of wording, so
// indoorness follows the occasion class; work-class occasions keep their
// season.
func IsIndoorOccasion(occasion domain.OccasionContext) bool {
	if strings.EqualFold(occasion.Season, domain.SeasonIndoor) {
		return true
	}
	switch ClassifyOccasion(occasion.Occasion) {
	case OccasionFormal, OccasionParty:
		return true
	}
	lower := strings.ToLower(occasion.Occasion)
	for _, kw := range indoorKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// garmentSlot is one category to fill for an occasion class. Dress slots
// only apply to the female departments.
type garmentSlot struct {
	garment   string
	dressOnly bool
	colorable bool
}

// slotTables hold the category slots per occasion class. One query term is
// emitted per applicable slot, in this order.
var slotTables = map[OccasionClass][]garmentSlot{
	OccasionFormal: {
		{garment: "formal dress", dressOnly: true, colorable: true},
		{garment: "suit jacket", colorable: true},
		{garment: "dress shirt"},
		{garment: "dress pants"},
		{garment: "dress shoes"},
	},
	OccasionWork: {
		{garment: "work dress", dressOnly: true, colorable: true},
		{garment: "dress shirt", colorable: true},
		{garment: "dress pants"},
		{garment: "blazer"},
		{garment: "loafers"},
	},
	OccasionParty: {
		{garment: "party dress", dressOnly: true, colorable: true},
		{garment: "button down shirt", colorable: true},
		{garment: "chinos"},
		{garment: "casual blazer"},
	},
	OccasionCasual: {
		{garment: "casual dress", dressOnly: true, colorable: true},
		{garment: "t shirt", colorable: true},
		{garment: "jeans"},
		{garment: "jacket"},
		{garment: "sneakers"},
	},
}

// QueryBuilder turns style preferences plus occasion context into a
// normalized SearchSpec.
type QueryBuilder struct {
	debug bool
}

// NewQueryBuilder creates a query builder.
func NewQueryBuilder(enableDebugLogging bool) *QueryBuilder {
	return &QueryBuilder{debug: enableDebugLogging}
}

// BuildQuery produces the bounded term list and budget predicate. Each term
// is department + garment keyword + size token, with a season qualifier for
// outdoor occasions and a color qualifier on the leading slots. Brand-scoped
// terms fill the remaining capacity up to the cap.
func (b *QueryBuilder) BuildQuery(style domain.StylePreference, occasion domain.OccasionContext) domain.SearchSpec {
	class := ClassifyOccasion(occasion.Occasion)
	indoor := IsIndoorOccasion(occasion)

	dept := strings.ToLower(string(style.Size.Department))
	token := strings.ToLower(style.Size.Token)
	season := ""
	if !indoor {
		season = strings.ToLower(strings.TrimSpace(occasion.Season))
	}

	styleTag := firstOrDefault(style.Styles, "casual")
	color := firstOrDefault(style.Colors, "")

	var terms []string
	for _, slot := range slotTables[class] {
		if len(terms) == domain.MaxQueryTerms {
			break
		}
		if slot.dressOnly && !isFemaleDepartment(style.Size.Department) {
			continue
		}

		parts := []string{dept}
		if class == OccasionCasual && slot.colorable {
			// The style tag only qualifies casual tops; formal/work slots
			// are already specific enough.
			parts = append(parts, styleTag)
		}
		if slot.colorable && color != "" {
			parts = append(parts, strings.ToLower(color))
		}
		parts = append(parts, slot.garment, token)
		if season != "" {
			parts = append(parts, season)
		}
		terms = append(terms, strings.Join(parts, " "))
	}

	// Brand-scoped supplemental terms, one per preferred brand.
	for _, brand := range style.Brands {
		if len(terms) == domain.MaxQueryTerms {
			break
		}
		brand = strings.ToLower(strings.TrimSpace(brand))
		if brand == "" {
			continue
		}
		terms = append(terms, strings.Join([]string{dept, brand, "clothing", token}, " "))
	}

	if b.debug {
		log.Printf("[QUERY] occasion=%q class=%s indoor=%v terms=%v", occasion.Occasion, class, indoor, terms)
	}

	return domain.SearchSpec{Terms: terms, Budget: style.Budget}
}

func isFemaleDepartment(dept domain.Department) bool {
	return dept == domain.DeptWomens || dept == domain.DeptGirls
}

func firstOrDefault(values []string, fallback string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.ToLower(strings.TrimSpace(v))
		}
	}
	return fallback
}
