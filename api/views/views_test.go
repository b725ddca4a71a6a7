package views

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/angelmondragon/obsidian-storefront/internal/catalog"
	"github.com/angelmondragon/obsidian-storefront/internal/shipping"
	pkgerrors "github.com/angelmondragon/obsidian-storefront/pkg/errors"
	"github.com/angelmondragon/obsidian-storefront/pkg/logger"
	"github.com/angelmondragon/obsidian-storefront/pkg/shopify"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := New(Site{Name: "Obsidian Cult Merch", Description: "Black metal shirts", Announcement: "Free shipping on orders over $150"}, logger.Nop())
	require.NoError(t, err)
	return r
}

func usd(amount int64) shopify.Money {
	return shopify.Money{Amount: decimal.NewFromInt(amount), CurrencyCode: "USD"}
}

func TestRenderCatalog(t *testing.T) {
	price := usd(35)
	rec := httptest.NewRecorder()
	newTestRenderer(t).Render(context.Background(), rec, http.StatusOK, PageCatalog, "", CatalogPage{
		Tabs: catalog.Tabs,
		Listing: &catalog.Listing{
			Filter: catalog.Filter{Query: "void", Tab: catalog.TabAll},
			Products: []catalog.Card{{
				Handle:   "void-tee",
				Title:    "Void Tee",
				Image:    &shopify.Image{URL: "https://cdn.shopify.com/void.jpg"},
				MinPrice: &price,
			}},
		},
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	body := rec.Body.String()
	assert.Contains(t, body, "<title>Obsidian Cult Merch</title>")
	assert.Contains(t, body, "Free shipping on orders over $150")
	assert.Contains(t, body, `href="/product/void-tee"`)
	assert.Contains(t, body, "35.00 USD")
	assert.Contains(t, body, `value="void"`)
	assert.Contains(t, body, "Hoodies")
}

func TestRenderProduct(t *testing.T) {
	variants := []shopify.ProductVariant{
		{ID: "gid://shopify/ProductVariant/s", Title: "S", Price: usd(35)},
		{ID: "gid://shopify/ProductVariant/m", Title: "M", AvailableForSale: true, Price: usd(35)},
	}
	price := usd(35)
	detail := &catalog.Detail{
		Product: shopify.Product{
			Title:           "Void Tee",
			DescriptionHTML: "<p>Printed <em>front</em></p>",
			Variants:        variants,
		},
		DefaultVariant: &variants[1],
		Price:          &price,
	}

	rec := httptest.NewRecorder()
	newTestRenderer(t).Render(context.Background(), rec, http.StatusOK, PageProduct, "Void Tee", ProductPage{Detail: detail})

	body := rec.Body.String()
	assert.Contains(t, body, "<title>Void Tee | Obsidian Cult Merch</title>")
	assert.Contains(t, body, "<p>Printed <em>front</em></p>")
	assert.Contains(t, body, "S (Sold out)")
	assert.Contains(t, body, `value="gid://shopify/ProductVariant/m" selected`)
	assert.Contains(t, body, "Add to cart")
}

func TestRenderSoldOutProduct(t *testing.T) {
	variants := []shopify.ProductVariant{{ID: "v1", Title: "S", Price: usd(35)}}
	detail := &catalog.Detail{Product: shopify.Product{Title: "Void Tee", Variants: variants}, DefaultVariant: &variants[0], SoldOut: true}

	rec := httptest.NewRecorder()
	newTestRenderer(t).Render(context.Background(), rec, http.StatusOK, PageProduct, "Void Tee", ProductPage{Detail: detail})

	assert.Contains(t, rec.Body.String(), "Sold out</button>")
	assert.Contains(t, rec.Body.String(), "disabled>")
}

func TestRenderCart(t *testing.T) {
	table := shipping.NewTable(shipping.DefaultFreeThreshold)
	subtotal := usd(160)
	cart := &shopify.Cart{
		ID:          "gid://shopify/Cart/1",
		CheckoutURL: "https://obsidian.myshopify.com/cart/c/1",
		Subtotal:    &subtotal,
		Lines: []shopify.CartLine{{
			Quantity: 2,
			Merchandise: shopify.Merchandise{
				Title:   "M",
				Product: shopify.MerchandiseProduct{Title: "Void Tee", Handle: "void-tee"},
			},
		}},
	}
	summary := table.Quote(subtotal, shipping.Standard)

	rec := httptest.NewRecorder()
	newTestRenderer(t).Render(context.Background(), rec, http.StatusOK, PageCart, "Cart", CartPage{
		Cart:    cart,
		Summary: summary,
		Choices: []ShippingChoice{{Option: shipping.Lookup(shipping.Standard), Label: "FREE", Selected: true}},
	})

	body := rec.Body.String()
	assert.Contains(t, body, "x2")
	assert.Contains(t, body, "You qualify for free standard shipping!")
	assert.Contains(t, body, "160.00 USD")
	assert.Contains(t, body, `href="https://obsidian.myshopify.com/cart/c/1"`)
}

func TestRenderEmptyCart(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRenderer(t).Render(context.Background(), rec, http.StatusOK, PageCart, "Cart", CartPage{Cart: &shopify.Cart{Lines: []shopify.CartLine{}}})

	assert.Contains(t, rec.Body.String(), "Your cart is empty.")
}

func TestWriteErrorPages(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		want   string
	}{
		{
			name: "not configured shows setup",
			err: pkgerrors.New(pkgerrors.CodeNotConfigured, "shopify storefront is not configured").
				WithDetails(map[string]any{"missing": []string{"shopify storefront access token is not set"}}),
			status: http.StatusServiceUnavailable,
			want:   "shopify storefront access token is not set",
		},
		{
			name:   "upstream shows connection error",
			err:    pkgerrors.New(pkgerrors.CodeUpstream, "Products request failed"),
			status: http.StatusBadGateway,
			want:   "Connection error",
		},
		{
			name:   "not found",
			err:    pkgerrors.New(pkgerrors.CodeNotFound, "Product not found."),
			status: http.StatusNotFound,
			want:   "Product not found.",
		},
		{
			name:   "cart operation message is verbatim",
			err:    pkgerrors.New(pkgerrors.CodeCartOperation, "The product 'Void Tee' is already sold out."),
			status: http.StatusUnprocessableEntity,
			want:   "The product &#39;Void Tee&#39; is already sold out.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			newTestRenderer(t).WriteError(context.Background(), rec, tt.err)
			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.want)
		})
	}
}

func TestRenderUnknownPage(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRenderer(t).Render(context.Background(), rec, http.StatusOK, "nope", "", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
