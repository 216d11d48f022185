package catalog

import "github.com/stylefinder/backend/internal/domain"

// searchResponse is the catalog API's search payload
type searchResponse struct {
	Products     []wireProduct `json:"products"`
	TotalResults int           `json:"totalResults"`
}

// wireProduct is one catalog item as it arrives on the wire
type wireProduct struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Price       string  `json:"price"`
	Rating      float64 `json:"rating"`
	Reviews     int     `json:"reviews"`
	Image       string  `json:"image"`
	URL         string  `json:"url"`
	Brand       string  `json:"brand"`
	Description string  `json:"description"`
}

// mapProducts converts wire items to the domain model. Ratings are clamped
// to the 0-5 scale some sources overflow.
func mapProducts(wire []wireProduct) []domain.Product {
	if len(wire) == 0 {
		return nil
	}
	products := make([]domain.Product, 0, len(wire))
	for _, w := range wire {
		products = append(products, domain.Product{
			ID:          w.ID,
			Title:       w.Title,
			Price:       w.Price,
			Rating:      clampRating(w.Rating),
			ReviewCount: w.Reviews,
			ImageURL:    w.Image,
			DetailURL:   w.URL,
			Brand:       w.Brand,
			Description: w.Description,
		})
	}
	return products
}

func clampRating(r float64) float64 {
	if r < 0 {
		return 0
	}
	if r > 5 {
		return 5
	}
	return r
}
