package shopify

import (
	"context"
	"strings"
)

// ListProducts returns up to limit products, newest first. A non-positive
// limit means DefaultProductLimit.
func (c *Client) ListProducts(ctx context.Context, limit int) ([]Product, error) {
	if err := c.Ready(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultProductLimit
	}

	var data productsData
	if err := c.execute(ctx, opProducts, productsQuery, map[string]any{"first": limit}, &data); err != nil {
		return nil, err
	}

	products := make([]Product, 0, len(data.Products.Edges))
	for _, edge := range data.Products.Edges {
		if len(products) == limit {
			break
		}
		products = append(products, *edge.Node.toProduct())
	}
	return products, nil
}

// GetProductByHandle returns nil without an error when no product matches.
func (c *Client) GetProductByHandle(ctx context.Context, handle string) (*Product, error) {
	if err := c.Ready(); err != nil {
		return nil, err
	}
	handle = strings.TrimSpace(handle)
	if handle == "" {
		return nil, invalidInput("product handle is required")
	}

	var data productByHandleData
	if err := c.execute(ctx, opProductByHandle, productByHandleQuery, map[string]any{"handle": handle}, &data); err != nil {
		return nil, err
	}
	return data.Product.toProduct(), nil
}
