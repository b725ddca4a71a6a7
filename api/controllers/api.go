package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/obsidian-storefront/api/responses"
	"github.com/angelmondragon/obsidian-storefront/api/validators"
	"github.com/angelmondragon/obsidian-storefront/internal/cart"
	"github.com/angelmondragon/obsidian-storefront/internal/catalog"
	"github.com/angelmondragon/obsidian-storefront/internal/shipping"
	"github.com/angelmondragon/obsidian-storefront/pkg/logger"
)

const maxListLimit = 250

// addLineRequest is the body of POST /api/v1/cart/lines. A zero quantity means one.
type addLineRequest struct {
	VariantID string `json:"variant_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gte=0,lte=99"`
}

type shippingOptionsResponse struct {
	FreeThreshold decimal.Decimal   `json:"free_threshold"`
	Options       []shipping.Option `json:"options"`
}

// ListProducts returns the filtered catalog, optionally truncated by ?limit=.
func ListProducts(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		filter, err := parseFilter(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", 0, 1, maxListLimit)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		listing, err := svc.List(ctx, filter)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if limit > 0 && len(listing.Products) > limit {
			listing.Products = listing.Products[:limit]
		}
		responses.WriteSuccess(w, listing)
	}
}

func GetProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		detail, err := svc.Detail(r.Context(), chi.URLParam(r, "handle"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, detail)
	}
}

// GetCart returns the session cart, creating one when the cookie is absent or stale.
func GetCart(resolver cart.Resolver, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		current, err := resolver.Resolve(r.Context(), cart.HTTPCookies(w, r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, current)
	}
}

func AddCartLine(resolver cart.Resolver, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var payload addLineRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		updated, err := resolver.AddToCart(ctx, cart.HTTPCookies(w, r), payload.VariantID, payload.Quantity)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

func ShippingOptions(table shipping.Table) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, shippingOptionsResponse{
			FreeThreshold: table.Threshold(),
			Options:       shipping.Options(),
		})
	}
}
