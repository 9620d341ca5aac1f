package api

import (
	"context"
	"net/url"

	"github.com/shopease/go_shop/internal/domain"
)

// CollaborativeRecommendations returns products picked for the user from
// similar users' ratings.
func (c *Client) CollaborativeRecommendations(ctx context.Context, userID string) ([]domain.Product, error) {
	query := url.Values{"user_id": {userID}}
	var products []domain.Product
	if err := c.getJSON(ctx, "/recommendations", query, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// BrandRecommendations returns products from the brands already present in
// the user's cart.
func (c *Client) BrandRecommendations(ctx context.Context, userID string) ([]domain.Product, error) {
	query := url.Values{"user_id": {userID}}
	var products []domain.Product
	if err := c.getJSON(ctx, "/recommend-by-brand", query, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// TopRated returns the globally top-rated products. Not user-scoped.
func (c *Client) TopRated(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if err := c.getJSON(ctx, "/rating-recommendation", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

type hybridResponse struct {
	Hybrid []domain.Product `json:"hybrid"`
}

// HybridRecommendations blends content similarity around the seed item with
// collaborative filtering for the user. Only the hybrid slice of the
// response is kept.
func (c *Client) HybridRecommendations(ctx context.Context, userID, seedItem string) ([]domain.Product, error) {
	query := url.Values{"user_id": {userID}, "item_name": {seedItem}}
	var resp hybridResponse
	if err := c.getJSON(ctx, "/hybrid-recommendation", query, &resp); err != nil {
		return nil, err
	}
	return resp.Hybrid, nil
}
