package api

import (
	"context"
	"net/url"

	"github.com/shopease/go_shop/internal/domain"
)

// Brands lists every brand name in the catalog.
func (c *Client) Brands(ctx context.Context) ([]string, error) {
	var brands []string
	if err := c.getJSON(ctx, "/brands", nil, &brands); err != nil {
		return nil, err
	}
	return brands, nil
}

// ProductsByBrand returns the catalog entries for one brand.
func (c *Client) ProductsByBrand(ctx context.Context, brand string) ([]domain.Product, error) {
	query := url.Values{"brand": {brand}}
	var products []domain.Product
	if err := c.getJSON(ctx, "/products/brand", query, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// ContentRecommendations looks up products similar to the named item.
func (c *Client) ContentRecommendations(ctx context.Context, itemName string) ([]domain.Product, error) {
	query := url.Values{"item_name": {itemName}}
	var products []domain.Product
	if err := c.getJSON(ctx, "/content-recommendation", query, &products); err != nil {
		return nil, err
	}
	return products, nil
}
