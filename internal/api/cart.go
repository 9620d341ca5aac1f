package api

import (
	"context"
	"net/url"

	"github.com/shopease/go_shop/internal/domain"
)

type cartResponse struct {
	Cart []domain.CartItem `json:"cart"`
}

// GetCart fetches the user's persisted cart.
func (c *Client) GetCart(ctx context.Context, userID string) ([]domain.CartItem, error) {
	query := url.Values{"user_id": {userID}}
	var resp cartResponse
	if err := c.getJSON(ctx, "/get_cart", query, &resp); err != nil {
		return nil, err
	}
	return resp.Cart, nil
}

type addToCartRequest struct {
	UserID  string         `json:"user_id"`
	Product domain.Product `json:"product"`
}

// AddToCart sends the full product payload. The backend increments the
// count when the product is already in the cart, so callers need not check
// membership first.
func (c *Client) AddToCart(ctx context.Context, userID string, product domain.Product) error {
	return c.postJSON(ctx, "/add_to_cart", addToCartRequest{UserID: userID, Product: product}, nil)
}

type cartItemRequest struct {
	UserID      string `json:"user_id"`
	ProductName string `json:"product_name"`
}

// RemoveFromCart drops the named product from the remote cart entirely,
// regardless of its count. The backend keys cart items by product name.
func (c *Client) RemoveFromCart(ctx context.Context, userID, productName string) error {
	return c.postJSON(ctx, "/remove_from_cart", cartItemRequest{UserID: userID, ProductName: productName}, nil)
}

// DecreaseQuantity decrements the named product's count by one; the backend
// removes the item when the count reaches zero.
func (c *Client) DecreaseQuantity(ctx context.Context, userID, productName string) error {
	return c.postJSON(ctx, "/decrease_cart_quantity", cartItemRequest{UserID: userID, ProductName: productName}, nil)
}

type increaseCountRequest struct {
	UserID      string `json:"user_id"`
	ProductID   int64  `json:"product_id"`
	ProductName string `json:"product_name"`
}

// IncreaseCount increments the product's count by one.
func (c *Client) IncreaseCount(ctx context.Context, userID string, productID int64, productName string) error {
	return c.postJSON(ctx, "/increase_cart_count", increaseCountRequest{
		UserID:      userID,
		ProductID:   productID,
		ProductName: productName,
	}, nil)
}
