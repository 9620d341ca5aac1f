package api

import "context"

// Review is the full payload the backend expects for a product comment.
// The mixed field casing mirrors the backend contract.
type Review struct {
	UserID      string  `json:"user_id"`
	ProductID   int64   `json:"product_id"`
	Username    string  `json:"username"`
	Comment     string  `json:"comment"`
	ProductName string  `json:"productname"`
	Brand       string  `json:"Brand"`
	Rating      float64 `json:"Rating"`
	ReviewCount int     `json:"ReviewCount"`
	Description string  `json:"description"`
}

// AddComment submits a product review.
func (c *Client) AddComment(ctx context.Context, review Review) error {
	return c.postJSON(ctx, "/addcomment", review, nil)
}
