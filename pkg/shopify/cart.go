package shopify

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var errCartMissing = errors.New("payload carried neither a cart nor user errors")

// CreateCart creates a cart holding lines, which may be empty.
func (c *Client) CreateCart(ctx context.Context, lines []CartLineInput) (*Cart, error) {
	if err := c.Ready(); err != nil {
		return nil, err
	}
	if err := validateLines(lines); err != nil {
		return nil, err
	}
	if lines == nil {
		lines = []CartLineInput{}
	}

	var data cartCreateData
	if err := c.execute(ctx, opCartCreate, cartCreateMutation, map[string]any{"lines": lines}, &data); err != nil {
		return nil, err
	}
	return cartFromPayload(opCartCreate, data.CartCreate)
}

// AddLines appends lines to an existing cart and returns the updated snapshot.
// An unknown cart id comes back from the store as a user error.
func (c *Client) AddLines(ctx context.Context, cartID string, lines []CartLineInput) (*Cart, error) {
	if err := c.Ready(); err != nil {
		return nil, err
	}
	cartID = strings.TrimSpace(cartID)
	if cartID == "" {
		return nil, invalidInput("cart id is required")
	}
	if len(lines) == 0 {
		return nil, invalidInput("at least one cart line is required")
	}
	if err := validateLines(lines); err != nil {
		return nil, err
	}

	vars := map[string]any{"cartId": cartID, "lines": lines}
	var data cartLinesAddData
	if err := c.execute(ctx, opCartLinesAdd, cartLinesAddMutation, vars, &data); err != nil {
		return nil, err
	}
	return cartFromPayload(opCartLinesAdd, data.CartLinesAdd)
}

// GetCart returns nil without an error when the store does not know cartID.
func (c *Client) GetCart(ctx context.Context, cartID string) (*Cart, error) {
	if err := c.Ready(); err != nil {
		return nil, err
	}
	cartID = strings.TrimSpace(cartID)
	if cartID == "" {
		return nil, nil
	}

	var data cartData
	if err := c.execute(ctx, opCartQuery, cartQuery, map[string]any{"cartId": cartID}, &data); err != nil {
		return nil, err
	}
	return data.Cart.toCart(), nil
}

func validateLines(lines []CartLineInput) error {
	for i, line := range lines {
		if strings.TrimSpace(line.MerchandiseID) == "" {
			return invalidInput(fmt.Sprintf("line %d: merchandise id is required", i))
		}
		if line.Quantity < 1 {
			return invalidInput(fmt.Sprintf("line %d: quantity must be at least 1", i))
		}
	}
	return nil
}

func cartFromPayload(op string, payload *cartPayload) (*Cart, error) {
	if len(payload.UserErrors) > 0 {
		return nil, cartOperation(op, payload.UserErrors[0])
	}
	if payload.Cart == nil {
		return nil, malformed(op, errCartMissing)
	}
	return payload.Cart.toCart(), nil
}
