package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/obsidian-storefront/api/validators"
	"github.com/angelmondragon/obsidian-storefront/api/views"
	"github.com/angelmondragon/obsidian-storefront/internal/cart"
	"github.com/angelmondragon/obsidian-storefront/internal/catalog"
	"github.com/angelmondragon/obsidian-storefront/internal/shipping"
	"github.com/angelmondragon/obsidian-storefront/pkg/shopify"
)

const (
	maxQueryLen     = 100
	maxLineQuantity = 99
)

// CatalogPage renders the product grid filtered by ?q= and ?tab=.
func CatalogPage(svc catalog.Service, renderer *views.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		filter, err := parseFilter(r)
		if err != nil {
			renderer.WriteError(ctx, w, err)
			return
		}

		listing, err := svc.List(ctx, filter)
		if err != nil {
			renderer.WriteError(ctx, w, err)
			return
		}

		renderer.Render(ctx, w, http.StatusOK, views.PageCatalog, "Shop", views.CatalogPage{
			Listing: listing,
			Tabs:    catalog.Tabs,
		})
	}
}

func ProductPage(svc catalog.Service, renderer *views.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		detail, err := svc.Detail(ctx, chi.URLParam(r, "handle"))
		if err != nil {
			renderer.WriteError(ctx, w, err)
			return
		}
		renderer.Render(ctx, w, http.StatusOK, views.PageProduct, detail.Product.Title, views.ProductPage{Detail: detail})
	}
}

// CartPage renders the session cart with the shipping selector from ?shipping=.
func CartPage(resolver cart.Resolver, table shipping.Table, renderer *views.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		current, err := resolver.Resolve(ctx, cart.HTTPCookies(w, r))
		if err != nil {
			renderer.WriteError(ctx, w, err)
			return
		}
		renderCart(w, r, renderer, table, current, http.StatusOK, "")
	}
}

// AddToCartForm handles the product page form post. Storefront rejections
// such as sold-out variants re-render the cart with the message shown verbatim.
func AddToCartForm(resolver cart.Resolver, table shipping.Table, renderer *views.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if err := r.ParseForm(); err != nil {
			renderer.WriteError(ctx, w, badForm(err))
			return
		}
		quantity, err := validators.ParseFormInt(r, "quantity", 1, 1, maxLineQuantity)
		if err != nil {
			renderer.WriteError(ctx, w, err)
			return
		}

		cookies := cart.HTTPCookies(w, r)
		if _, err := resolver.AddToCart(ctx, cookies, r.PostFormValue("variantId"), quantity); err != nil {
			if !shopify.IsCartOperation(err) {
				renderer.WriteError(ctx, w, err)
				return
			}
			current, resolveErr := resolver.Resolve(ctx, cookies)
			if resolveErr != nil {
				renderer.WriteError(ctx, w, resolveErr)
				return
			}
			renderCart(w, r, renderer, table, current, http.StatusUnprocessableEntity, notice(err))
			return
		}

		http.Redirect(w, r, "/cart", http.StatusSeeOther)
	}
}

func renderCart(w http.ResponseWriter, r *http.Request, renderer *views.Renderer, table shipping.Table, current *shopify.Cart, status int, msg string) {
	subtotal := cartSubtotal(current)
	summary := table.Quote(subtotal, r.URL.Query().Get("shipping"))

	opts := shipping.Options()
	choices := make([]views.ShippingChoice, 0, len(opts))
	for _, opt := range opts {
		choices = append(choices, views.ShippingChoice{
			Option:   opt,
			Label:    table.PriceLabel(opt, subtotal),
			Selected: opt.ID == summary.Option.ID,
		})
	}

	renderer.Render(r.Context(), w, status, views.PageCart, "Cart", views.CartPage{
		Cart:     current,
		Summary:  summary,
		Choices:  choices,
		Notice:   msg,
		Currency: subtotal.CurrencyCode,
	})
}

// cartSubtotal falls back to a zero amount for a fresh cart with no cost yet.
func cartSubtotal(c *shopify.Cart) shopify.Money {
	if c != nil && c.Subtotal != nil {
		return *c.Subtotal
	}
	return shopify.Money{}
}

func parseFilter(r *http.Request) (catalog.Filter, error) {
	query := r.URL.Query()
	tab, err := catalog.ParseTab(query.Get("tab"))
	if err != nil {
		return catalog.Filter{}, err
	}
	return catalog.Filter{
		Query: validators.SanitizeString(query.Get("q"), maxQueryLen),
		Tab:   tab,
	}, nil
}
