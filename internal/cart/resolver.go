package cart

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	pkgerrors "github.com/angelmondragon/obsidian-storefront/pkg/errors"
	"github.com/angelmondragon/obsidian-storefront/pkg/shopify"
)

// DefaultCookieName is the cookie holding the remote cart id.
const DefaultCookieName = "sf_cart_id"

// A cookie is only looked up when it carries this prefix; any other value,
// non-empty or not, is treated as no cart and replaced with a fresh one.
const cartIDPrefix = "gid://shopify/Cart/"

// Gateway is the subset of the Storefront client the resolver relies on.
type Gateway interface {
	CreateCart(ctx context.Context, lines []shopify.CartLineInput) (*shopify.Cart, error)
	AddLines(ctx context.Context, cartID string, lines []shopify.CartLineInput) (*shopify.Cart, error)
	GetCart(ctx context.Context, cartID string) (*shopify.Cart, error)
}

// Resolver maps a browser's cart cookie to a live remote cart.
type Resolver interface {
	// Resolve returns the cart referenced by the cookie, creating a new one
	// and rewriting the cookie when there is none or it went stale.
	Resolve(ctx context.Context, cookies CookieStore) (*shopify.Cart, error)
	// AddToCart resolves the session cart and adds quantity of variantID to it.
	AddToCart(ctx context.Context, cookies CookieStore, variantID string, quantity int) (*shopify.Cart, error)
}

// CookieOptions controls the cookie written after a cart is created.
type CookieOptions struct {
	Name   string
	Secure bool
}

type resolver struct {
	gateway Gateway
	cookie  CookieOptions
}

// NewResolver builds a cart session resolver. Concurrent first requests from
// one browser may each create a cart; the last cookie write wins.
func NewResolver(gateway Gateway, opts CookieOptions) (Resolver, error) {
	if gateway == nil {
		return nil, fmt.Errorf("cart gateway required")
	}
	if strings.TrimSpace(opts.Name) == "" {
		opts.Name = DefaultCookieName
	}
	return &resolver{gateway: gateway, cookie: opts}, nil
}

func (r *resolver) Resolve(ctx context.Context, cookies CookieStore) (*shopify.Cart, error) {
	if cookies == nil {
		return nil, fmt.Errorf("cookie store required")
	}

	if existing, ok := cookies.Get(r.cookie.Name); ok && strings.HasPrefix(existing, cartIDPrefix) {
		current, err := r.gateway.GetCart(ctx, existing)
		if err != nil {
			return nil, err
		}
		if current != nil {
			return current, nil
		}
	}

	created, err := r.gateway.CreateCart(ctx, nil)
	if err != nil {
		return nil, err
	}
	cookies.Set(r.sessionCookie(created.ID))
	return created, nil
}

func (r *resolver) AddToCart(ctx context.Context, cookies CookieStore, variantID string, quantity int) (*shopify.Cart, error) {
	variantID = strings.TrimSpace(variantID)
	if variantID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "variant id is required")
	}
	if quantity <= 0 {
		quantity = 1
	}

	current, err := r.Resolve(ctx, cookies)
	if err != nil {
		return nil, err
	}
	return r.gateway.AddLines(ctx, current.ID, []shopify.CartLineInput{{
		MerchandiseID: variantID,
		Quantity:      quantity,
	}})
}

// No Expires or MaxAge: the cookie lives for the browser session.
func (r *resolver) sessionCookie(cartID string) *http.Cookie {
	return &http.Cookie{
		Name:     r.cookie.Name,
		Value:    cartID,
		Path:     "/",
		HttpOnly: true,
		Secure:   r.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}
