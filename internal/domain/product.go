package domain

// Product is a candidate item returned by the external product source.
// The core filters and orders these; it never mutates fields. Price stays the
// currency-formatted string the source returned; the result filter parses it.
type Product struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Price       string  `json:"price"`
	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"reviews"`
	ImageURL    string  `json:"image"`
	DetailURL   string  `json:"url"`
	Brand       string  `json:"brand"`
	Description string  `json:"description"`
}

// RecommendationResult is the display model handed back to the wizard.
type RecommendationResult struct {
	Products     []Product  `json:"products"`
	Size         SizeResult `json:"size"`
	Terms        []string   `json:"terms"`
	TotalResults int        `json:"totalResults"`
	Source       string     `json:"source"` // "Catalog" or "Cache"
}
