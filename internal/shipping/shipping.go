// Package shipping holds the static shipping options shown in the cart.
// Nothing here is sent to the store; checkout computes the real rates.
package shipping

import (
	"strings"

	"github.com/angelmondragon/obsidian-storefront/pkg/shopify"
	"github.com/shopspring/decimal"
)

const (
	Standard = "standard"
	Express  = "express"
)

// DefaultFreeThreshold is the subtotal at which standard shipping becomes free.
var DefaultFreeThreshold = decimal.NewFromInt(150)

type Option struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Days  string          `json:"days"`
}

var options = []Option{
	{ID: Standard, Name: "Standard Shipping", Price: decimal.NewFromInt(20), Days: "10-15 business days"},
	{ID: Express, Name: "Express Shipping", Price: decimal.NewFromInt(40), Days: "3-6 business days"},
}

// Options returns a copy of the option table in display order.
func Options() []Option {
	return append([]Option(nil), options...)
}

// Lookup returns the option with id, falling back to standard.
func Lookup(id string) Option {
	id = strings.ToLower(strings.TrimSpace(id))
	for _, opt := range options {
		if opt.ID == id {
			return opt
		}
	}
	return options[0]
}

// Summary is the display-only order total for a cart subtotal.
type Summary struct {
	Option       Option        `json:"option"`
	Subtotal     shopify.Money `json:"subtotal"`
	Shipping     shopify.Money `json:"shipping"`
	Total        shopify.Money `json:"total"`
	FreeShipping bool          `json:"free_shipping"`
	Qualifies    bool          `json:"qualifies_for_free_standard"`
}

// Table quotes options against a free-shipping threshold.
type Table struct {
	threshold decimal.Decimal
}

func NewTable(threshold decimal.Decimal) Table {
	if threshold.IsNegative() {
		threshold = DefaultFreeThreshold
	}
	return Table{threshold: threshold}
}

// Threshold is the configured free-shipping subtotal.
func (t Table) Threshold() decimal.Decimal {
	return t.threshold
}

// Quote prices optionID for subtotal. Standard shipping is free once the
// subtotal reaches the threshold; express is always charged.
func (t Table) Quote(subtotal shopify.Money, optionID string) Summary {
	opt := Lookup(optionID)
	qualifies := subtotal.Amount.GreaterThanOrEqual(t.threshold)
	free := qualifies && opt.ID == Standard

	cost := opt.Price
	if free {
		cost = decimal.Zero
	}
	return Summary{
		Option:       opt,
		Subtotal:     subtotal,
		Shipping:     shopify.Money{Amount: cost, CurrencyCode: subtotal.CurrencyCode},
		Total:        shopify.Money{Amount: subtotal.Amount.Add(cost), CurrencyCode: subtotal.CurrencyCode},
		FreeShipping: free,
		Qualifies:    qualifies,
	}
}

// PriceLabel renders an option's price the way the cart selector shows it.
func (t Table) PriceLabel(opt Option, subtotal shopify.Money) string {
	if opt.ID == Standard && subtotal.Amount.GreaterThanOrEqual(t.threshold) {
		return "FREE"
	}
	return "$" + opt.Price.String()
}
