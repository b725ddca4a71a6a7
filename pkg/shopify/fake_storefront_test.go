package shopify

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// fakeStorefront is an in-memory stand-in for the Storefront GraphQL endpoint.
type fakeStorefront struct {
	mu         sync.Mutex
	token      string
	products   []map[string]any
	carts      map[string]*fakeCart
	soldOut    map[string]bool
	nextID     int
	operations []string
	lastVars   map[string]any
	lastQuery  string
	lastHeader http.Header
}

type fakeCart struct {
	id    string
	lines []fakeLine
}

type fakeLine struct {
	id      string
	variant string
	qty     int
}

type gqlRequest struct {
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables"`
	OperationName string         `json:"operationName"`
}

func newFakeStorefront(t *testing.T) (*fakeStorefront, *Client) {
	t.Helper()
	fake := &fakeStorefront{
		token:   "test-token",
		carts:   map[string]*fakeCart{},
		soldOut: map[string]bool{},
		products: []map[string]any{
			productJSON("gid://shopify/Product/3", "sigil-longsleeve", "Sigil Longsleeve", "longsleeve"),
			productJSON("gid://shopify/Product/2", "goat-hoodie", "Goat Hoodie", "hoodie"),
			productJSON("gid://shopify/Product/1", "void-tee", "Void Tee", "t-shirt"),
		},
	}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	client := NewClient(
		Config{StoreDomain: "obsidian.myshopify.com", AccessToken: fake.token},
		WithEndpoint(srv.URL),
		WithHTTPClient(srv.Client()),
	)
	return fake, client
}

func (f *fakeStorefront) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.lastHeader = r.Header.Clone()
	if r.Header.Get(tokenHeader) != f.token {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"errors":[{"message":"Unauthorized"}]}`))
		return
	}

	var req gqlRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	f.operations = append(f.operations, req.OperationName)
	f.lastVars = req.Variables
	f.lastQuery = req.Query

	var data any
	switch req.OperationName {
	case opProducts:
		first := int(req.Variables["first"].(float64))
		edges := []any{}
		for i, p := range f.products {
			if i == first {
				break
			}
			edges = append(edges, map[string]any{"node": p})
		}
		data = map[string]any{"products": map[string]any{"edges": edges}}
	case opProductByHandle:
		var found any
		for _, p := range f.products {
			if p["handle"] == req.Variables["handle"] {
				found = detailJSON(p)
			}
		}
		data = map[string]any{"product": found}
	case opCartCreate:
		f.nextID++
		cart := &fakeCart{id: fmt.Sprintf("gid://shopify/Cart/c%d", f.nextID)}
		f.carts[cart.id] = cart
		data = map[string]any{"cartCreate": map[string]any{"cart": f.cartJSON(cart), "userErrors": []any{}}}
	case opCartLinesAdd:
		data = map[string]any{"cartLinesAdd": f.addLines(req.Variables)}
	case opCartQuery:
		var found any
		if cart, ok := f.carts[req.Variables["cartId"].(string)]; ok {
			found = f.cartJSON(cart)
		}
		data = map[string]any{"cart": found}
	default:
		http.Error(w, "unknown operation", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"data": data})
}

func (f *fakeStorefront) addLines(vars map[string]any) map[string]any {
	cart, ok := f.carts[vars["cartId"].(string)]
	if !ok {
		return userErrorPayload([]any{"cartId"}, "The specified cart does not exist.")
	}
	for i, raw := range vars["lines"].([]any) {
		line := raw.(map[string]any)
		variant := line["merchandiseId"].(string)
		if f.soldOut[variant] {
			return userErrorPayload([]any{"lines", fmt.Sprint(i), "merchandiseId"}, "The product 'Void Tee' is already sold out.")
		}
		f.nextID++
		cart.lines = append(cart.lines, fakeLine{
			id:      fmt.Sprintf("gid://shopify/CartLine/l%d", f.nextID),
			variant: variant,
			qty:     int(line["quantity"].(float64)),
		})
	}
	return map[string]any{"cart": f.cartJSON(cart), "userErrors": []any{}}
}

func (f *fakeStorefront) cartJSON(cart *fakeCart) map[string]any {
	total := 0
	edges := []any{}
	for _, line := range cart.lines {
		total += line.qty
		edges = append(edges, map[string]any{"node": map[string]any{
			"id":       line.id,
			"quantity": line.qty,
			"cost":     map[string]any{"totalAmount": money(fmt.Sprintf("%d.0", 35*line.qty))},
			"merchandise": map[string]any{
				"id":    line.variant,
				"title": "M",
				"price": money("35.0"),
				"product": map[string]any{
					"id":            "gid://shopify/Product/1",
					"title":         "Void Tee",
					"handle":        "void-tee",
					"featuredImage": nil,
				},
			},
		}})
	}
	amount := money(fmt.Sprintf("%d.0", 35*total))
	return map[string]any{
		"id":            cart.id,
		"checkoutUrl":   "https://obsidian.myshopify.com/cart/c/" + cart.id[len("gid://shopify/Cart/"):],
		"totalQuantity": total,
		"cost":          map[string]any{"subtotalAmount": amount, "totalAmount": amount},
		"lines":         map[string]any{"edges": edges},
	}
}

func (f *fakeStorefront) ops() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.operations...)
}

func userErrorPayload(field []any, message string) map[string]any {
	return map[string]any{
		"cart":       nil,
		"userErrors": []any{map[string]any{"field": field, "message": message}},
	}
}

func money(amount string) map[string]any {
	return map[string]any{"amount": amount, "currencyCode": "USD"}
}

func productJSON(id, handle, title, tag string) map[string]any {
	return map[string]any{
		"id":          id,
		"handle":      handle,
		"title":       title,
		"description": title + " description",
		"tags":        []any{tag},
		"featuredImage": map[string]any{
			"url":     "https://cdn.shopify.com/s/files/" + handle + ".jpg",
			"altText": title,
			"width":   800,
			"height":  800,
		},
		"priceRange": map[string]any{"minVariantPrice": money("35.0")},
	}
}

func detailJSON(p map[string]any) map[string]any {
	out := map[string]any{}
	for k, v := range p {
		out[k] = v
	}
	out["descriptionHtml"] = "<p>" + p["description"].(string) + "</p>"
	images := []any{}
	for i := 0; i < 8; i++ {
		images = append(images, map[string]any{"node": map[string]any{
			"url": fmt.Sprintf("https://cdn.shopify.com/s/files/%s-%d.jpg", p["handle"], i),
		}})
	}
	out["images"] = map[string]any{"edges": images}
	out["variants"] = map[string]any{"edges": []any{
		map[string]any{"node": map[string]any{"id": "gid://shopify/ProductVariant/s", "title": "S", "availableForSale": false, "price": money("35.0")}},
		map[string]any{"node": map[string]any{"id": "gid://shopify/ProductVariant/m", "title": "M", "availableForSale": true, "price": money("35.0")}},
	}}
	return out
}
