package views

import (
	"github.com/angelmondragon/obsidian-storefront/internal/catalog"
	"github.com/angelmondragon/obsidian-storefront/internal/shipping"
	"github.com/angelmondragon/obsidian-storefront/pkg/shopify"
)

type CatalogPage struct {
	Listing *catalog.Listing
	Tabs    []catalog.TabOption
}

type ProductPage struct {
	Detail *catalog.Detail
}

// ShippingChoice is one entry of the cart's shipping selector.
type ShippingChoice struct {
	Option   shipping.Option
	Label    string
	Selected bool
}

type CartPage struct {
	Cart     *shopify.Cart
	Summary  shipping.Summary
	Choices  []ShippingChoice
	Notice   string
	Currency string
}
