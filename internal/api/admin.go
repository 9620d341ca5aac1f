package api

import (
	"context"

	"github.com/shopease/go_shop/internal/domain"
)

// AdminSummary is the admin dashboard payload: the ten top-rated products
// and the ten brands with the highest average rating.
type AdminSummary struct {
	TopProducts []domain.Product     `json:"top_products"`
	TopBrands   []domain.BrandRating `json:"top_brands"`
}

// AdminDashboard fetches the admin summary. Not user-scoped; access control
// is the caller's concern.
func (c *Client) AdminDashboard(ctx context.Context) (*AdminSummary, error) {
	var summary AdminSummary
	if err := c.getJSON(ctx, "/admin-dashboard-data", nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}
