package controllers

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/obsidian-storefront/api/views"
	"github.com/angelmondragon/obsidian-storefront/internal/cart"
	"github.com/angelmondragon/obsidian-storefront/internal/catalog"
	pkgerrors "github.com/angelmondragon/obsidian-storefront/pkg/errors"
	"github.com/angelmondragon/obsidian-storefront/pkg/logger"
	"github.com/angelmondragon/obsidian-storefront/pkg/shopify"
)

const soldOutMessage = "The product 'Void Tee' is already sold out."

// stubGateway serves a fixed catalog and keeps carts in memory.
type stubGateway struct {
	products []shopify.Product
	carts    map[string]*shopify.Cart
	soldOut  map[string]bool
	listErr  error
	created  int
}

func newStubGateway() *stubGateway {
	return &stubGateway{
		products: []shopify.Product{
			{
				ID: "gid://shopify/Product/1", Handle: "void-tee", Title: "Void Tee", Tags: []string{"tee"},
				MinPrice: &shopify.Money{Amount: decimal.NewFromInt(35), CurrencyCode: "USD"},
				Variants: []shopify.ProductVariant{{
					ID: "gid://shopify/ProductVariant/11", Title: "M", AvailableForSale: true,
					Price: shopify.Money{Amount: decimal.NewFromInt(35), CurrencyCode: "USD"},
				}},
			},
			{
				ID: "gid://shopify/Product/2", Handle: "crypt-hoodie", Title: "Crypt Hoodie", Tags: []string{"hoodie"},
				MinPrice: &shopify.Money{Amount: decimal.NewFromInt(80), CurrencyCode: "USD"},
			},
		},
		carts:   map[string]*shopify.Cart{},
		soldOut: map[string]bool{},
	}
}

func (g *stubGateway) ListProducts(ctx context.Context, limit int) ([]shopify.Product, error) {
	if g.listErr != nil {
		return nil, g.listErr
	}
	return g.products, nil
}

func (g *stubGateway) GetProductByHandle(ctx context.Context, handle string) (*shopify.Product, error) {
	for i := range g.products {
		if g.products[i].Handle == handle {
			p := g.products[i]
			return &p, nil
		}
	}
	return nil, nil
}

func (g *stubGateway) CreateCart(ctx context.Context, lines []shopify.CartLineInput) (*shopify.Cart, error) {
	g.created++
	id := fmt.Sprintf("gid://shopify/Cart/c%d", g.created)
	c := &shopify.Cart{ID: id, CheckoutURL: "https://shop.example.com/checkouts/" + id, Lines: []shopify.CartLine{}}
	g.carts[id] = c
	return c, nil
}

func (g *stubGateway) AddLines(ctx context.Context, cartID string, lines []shopify.CartLineInput) (*shopify.Cart, error) {
	c, ok := g.carts[cartID]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeCartOperation, "The specified cart does not exist.")
	}
	for _, line := range lines {
		if g.soldOut[line.MerchandiseID] {
			return nil, pkgerrors.New(pkgerrors.CodeCartOperation, soldOutMessage)
		}
		c.TotalQuantity += line.Quantity
		subtotal := decimal.NewFromInt(int64(35 * c.TotalQuantity))
		c.Subtotal = &shopify.Money{Amount: subtotal, CurrencyCode: "USD"}
		c.Lines = append(c.Lines, shopify.CartLine{
			ID:       fmt.Sprintf("line-%d", len(c.Lines)+1),
			Quantity: line.Quantity,
			Merchandise: shopify.Merchandise{
				ID:      line.MerchandiseID,
				Title:   "M",
				Product: shopify.MerchandiseProduct{Title: "Void Tee", Handle: "void-tee"},
			},
		})
	}
	return c, nil
}

func (g *stubGateway) GetCart(ctx context.Context, cartID string) (*shopify.Cart, error) {
	return g.carts[cartID], nil
}

type fixture struct {
	gateway  *stubGateway
	catalog  catalog.Service
	resolver cart.Resolver
	renderer *views.Renderer
	logg     *logger.Logger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gateway := newStubGateway()
	svc, err := catalog.NewService(gateway, catalog.Options{})
	if err != nil {
		t.Fatalf("catalog service: %v", err)
	}
	resolver, err := cart.NewResolver(gateway, cart.CookieOptions{})
	if err != nil {
		t.Fatalf("cart resolver: %v", err)
	}
	renderer, err := views.New(views.Site{Name: "Obsidian Cult Merch"}, logger.Nop())
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	return &fixture{gateway: gateway, catalog: svc, resolver: resolver, renderer: renderer, logg: logger.Nop()}
}
