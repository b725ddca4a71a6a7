package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/obsidian-storefront/internal/cart"
	"github.com/angelmondragon/obsidian-storefront/internal/shipping"
	pkgerrors "github.com/angelmondragon/obsidian-storefront/pkg/errors"
)

func withHandle(req *http.Request, handle string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("handle", handle)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func formPost(values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/cart/add", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestCatalogPage(t *testing.T) {
	f := newFixture(t)
	handler := CatalogPage(f.catalog, f.renderer)

	t.Run("filters by tab", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?tab=hoodie", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		body := rec.Body.String()
		if !strings.Contains(body, "Crypt Hoodie") || strings.Contains(body, "Void Tee") {
			t.Fatalf("unexpected listing: %s", body)
		}
	})

	t.Run("unknown tab", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?tab=vinyl", nil))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("upstream failure", func(t *testing.T) {
		f.gateway.listErr = pkgerrors.New(pkgerrors.CodeUpstream, "Products request failed")
		defer func() { f.gateway.listErr = nil }()

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		if rec.Code != http.StatusBadGateway {
			t.Fatalf("expected 502, got %d", rec.Code)
		}
	})
}

func TestProductPage(t *testing.T) {
	f := newFixture(t)
	handler := ProductPage(f.catalog, f.renderer)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, withHandle(httptest.NewRequest(http.MethodGet, "/product/void-tee", nil), "void-tee"))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "gid://shopify/ProductVariant/11") {
		t.Fatalf("expected variant option in form: %s", rec.Body.String())
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, withHandle(httptest.NewRequest(http.MethodGet, "/product/missing", nil), "missing"))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Product not found.") {
		t.Fatalf("expected not found message: %s", rec.Body.String())
	}
}

func TestCartPageCreatesSessionCart(t *testing.T) {
	f := newFixture(t)
	handler := CartPage(f.resolver, shipping.NewTable(shipping.DefaultFreeThreshold), f.renderer)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/cart", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != cart.DefaultCookieName {
		t.Fatalf("expected cart cookie, got %v", cookies)
	}
	if !strings.Contains(rec.Body.String(), "Your cart is empty") {
		t.Fatalf("expected empty cart view: %s", rec.Body.String())
	}

	// A second visit with the cookie reuses the cart.
	req := httptest.NewRequest(http.MethodGet, "/cart?shipping=express", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if f.gateway.created != 1 {
		t.Fatalf("expected one cart, created %d", f.gateway.created)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatalf("did not expect cookie rewrite")
	}
}

func TestAddToCartFormRedirects(t *testing.T) {
	f := newFixture(t)
	handler := AddToCartForm(f.resolver, shipping.NewTable(shipping.DefaultFreeThreshold), f.renderer)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, formPost(url.Values{"variantId": {"gid://shopify/ProductVariant/11"}, "quantity": {"2"}}))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/cart" {
		t.Fatalf("unexpected location %q", loc)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected cart cookie, got %v", cookies)
	}
	if got := f.gateway.carts[cookies[0].Value].TotalQuantity; got != 2 {
		t.Fatalf("expected quantity 2, got %d", got)
	}
}

func TestAddToCartFormShowsSoldOutVerbatim(t *testing.T) {
	f := newFixture(t)
	f.gateway.soldOut["gid://shopify/ProductVariant/11"] = true
	handler := AddToCartForm(f.resolver, shipping.NewTable(shipping.DefaultFreeThreshold), f.renderer)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, formPost(url.Values{"variantId": {"gid://shopify/ProductVariant/11"}}))

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "The product &#39;Void Tee&#39; is already sold out.") {
		t.Fatalf("expected verbatim message: %s", rec.Body.String())
	}
	if f.gateway.created != 1 {
		t.Fatalf("expected the resolved cart to be reused, created %d", f.gateway.created)
	}
}

func TestAddToCartFormValidation(t *testing.T) {
	f := newFixture(t)
	handler := AddToCartForm(f.resolver, shipping.NewTable(shipping.DefaultFreeThreshold), f.renderer)

	for name, values := range map[string]url.Values{
		"missing variant":  {"quantity": {"1"}},
		"bad quantity":     {"variantId": {"gid://shopify/ProductVariant/11"}, "quantity": {"lots"}},
		"quantity too big": {"variantId": {"gid://shopify/ProductVariant/11"}, "quantity": {"1000"}},
	} {
		t.Run(name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, formPost(values))
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
		})
	}
}
