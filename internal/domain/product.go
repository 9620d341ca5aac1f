package domain

import "strings"

// PlaceholderImageURL is rendered whenever a product carries no usable
// image candidate.
const PlaceholderImageURL = "https://via.placeholder.com/150"

// Product is a catalog entry as the backend serializes it. Field names on
// the wire are fixed by the backend dataset; do not rename the JSON tags.
// A Product is immutable once fetched.
type Product struct {
	ProdID      int64   `json:"ProdID"`
	Name        string  `json:"Name"`
	Brand       string  `json:"Brand"`
	Rating      float64 `json:"Rating"`
	ReviewCount int     `json:"ReviewCount"`
	ImageURL    string  `json:"ImageURL"`
	Description string  `json:"description,omitempty"`
}

// ImageURLOrPlaceholder resolves the product's pipe-delimited image
// candidate list to a single renderable URL.
func (p Product) ImageURLOrPlaceholder() string {
	return ResolveImageURL(p.ImageURL)
}

// ResolveImageURL picks the first non-empty candidate from a pipe-delimited
// URL list. The dataset encodes missing images as "", "nan" or a list of
// blank segments; all of those resolve to the placeholder.
func ResolveImageURL(raw string) string {
	if raw == "" || raw == "nan" {
		return PlaceholderImageURL
	}
	for _, candidate := range strings.Split(raw, "|") {
		if url := strings.TrimSpace(candidate); url != "" {
			return url
		}
	}
	return PlaceholderImageURL
}

// BrandRating is one row of the admin summary: a brand and the mean rating
// across its products.
type BrandRating struct {
	Brand         string  `json:"Brand"`
	AverageRating float64 `json:"AverageRating"`
}
