package shopify

import (
	"github.com/shopspring/decimal"
)

// Money is an amount in a given currency as reported by the storefront.
type Money struct {
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currency_code"`
}

// Display renders the amount with two decimals followed by the currency code.
func (m Money) Display() string {
	if m.CurrencyCode == "" {
		return m.Amount.StringFixed(2)
	}
	return m.Amount.StringFixed(2) + " " + m.CurrencyCode
}

type Image struct {
	URL     string `json:"url"`
	AltText string `json:"alt_text,omitempty"`
	Width   int    `json:"width,omitempty"`
	Height  int    `json:"height,omitempty"`
}

type ProductVariant struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	AvailableForSale bool   `json:"available_for_sale"`
	Price            Money  `json:"price"`
}

// Product is a read-only projection of a catalog product. Images and Variants
// are only populated by GetProductByHandle.
type Product struct {
	ID              string           `json:"id"`
	Handle          string           `json:"handle"`
	Title           string           `json:"title"`
	Description     string           `json:"description,omitempty"`
	DescriptionHTML string           `json:"description_html,omitempty"`
	Tags            []string         `json:"tags"`
	FeaturedImage   *Image           `json:"featured_image,omitempty"`
	MinPrice        *Money           `json:"min_price,omitempty"`
	Images          []Image          `json:"images,omitempty"`
	Variants        []ProductVariant `json:"variants,omitempty"`
}

type MerchandiseProduct struct {
	ID            string `json:"id,omitempty"`
	Title         string `json:"title"`
	Handle        string `json:"handle"`
	FeaturedImage *Image `json:"featured_image,omitempty"`
}

// Merchandise is the variant snapshot the storefront embeds in a cart line.
type Merchandise struct {
	ID      string             `json:"id"`
	Title   string             `json:"title"`
	Price   *Money             `json:"price,omitempty"`
	Product MerchandiseProduct `json:"product"`
}

type CartLine struct {
	ID          string      `json:"id"`
	Quantity    int         `json:"quantity"`
	Total       *Money      `json:"total,omitempty"`
	Merchandise Merchandise `json:"merchandise"`
}

type Cart struct {
	ID            string     `json:"id"`
	CheckoutURL   string     `json:"checkout_url"`
	TotalQuantity int        `json:"total_quantity"`
	Subtotal      *Money     `json:"subtotal,omitempty"`
	Total         *Money     `json:"total,omitempty"`
	Lines         []CartLine `json:"lines"`
}

// CartLineInput is one (variant, quantity) pair sent to cart mutations.
type CartLineInput struct {
	MerchandiseID string `json:"merchandiseId"`
	Quantity      int    `json:"quantity"`
}
