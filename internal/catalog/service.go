package catalog

import (
	"context"
	"fmt"

	pkgerrors "github.com/angelmondragon/obsidian-storefront/pkg/errors"
	"github.com/angelmondragon/obsidian-storefront/pkg/shopify"
)

const thumbnailLimit = 5

// Gateway is the read side of the Storefront client.
type Gateway interface {
	ListProducts(ctx context.Context, limit int) ([]shopify.Product, error)
	GetProductByHandle(ctx context.Context, handle string) (*shopify.Product, error)
}

// Service shapes catalog data for the storefront pages and API.
type Service interface {
	List(ctx context.Context, f Filter) (*Listing, error)
	Detail(ctx context.Context, handle string) (*Detail, error)
}

type Options struct {
	PageSize    int
	StoreDomain string
}

// Card is one product tile in the listing grid.
type Card struct {
	ID       string         `json:"id"`
	Handle   string         `json:"handle"`
	Title    string         `json:"title"`
	Tags     []string       `json:"tags"`
	Image    *shopify.Image `json:"image,omitempty"`
	MinPrice *shopify.Money `json:"min_price,omitempty"`
}

// Listing is the filtered catalog plus the total before filtering.
type Listing struct {
	Filter   Filter `json:"filter"`
	Products []Card `json:"products"`
	Total    int    `json:"total"`
}

// Detail is a product page: the product, its default variant and the gallery.
type Detail struct {
	Product        shopify.Product         `json:"product"`
	DefaultVariant *shopify.ProductVariant `json:"default_variant,omitempty"`
	Price          *shopify.Money          `json:"price,omitempty"`
	SoldOut        bool                    `json:"sold_out"`
	Hero           *shopify.Image          `json:"hero,omitempty"`
	Thumbnails     []shopify.Image         `json:"thumbnails"`
}

type service struct {
	gateway  Gateway
	pageSize int
	images   imagePolicy
}

// NewService builds a catalog service over the gateway.
func NewService(gateway Gateway, opts Options) (Service, error) {
	if gateway == nil {
		return nil, fmt.Errorf("catalog gateway required")
	}
	if opts.PageSize <= 0 {
		opts.PageSize = shopify.DefaultProductLimit
	}
	return &service{
		gateway:  gateway,
		pageSize: opts.PageSize,
		images:   newImagePolicy(opts.StoreDomain),
	}, nil
}

func (s *service) List(ctx context.Context, f Filter) (*Listing, error) {
	if f.Tab == "" {
		f.Tab = TabAll
	}
	products, err := s.gateway.ListProducts(ctx, s.pageSize)
	if err != nil {
		return nil, err
	}

	matched := Apply(products, f)
	cards := make([]Card, 0, len(matched))
	for _, p := range matched {
		cards = append(cards, Card{
			ID:       p.ID,
			Handle:   p.Handle,
			Title:    p.Title,
			Tags:     p.Tags,
			Image:    s.images.image(p.FeaturedImage),
			MinPrice: p.MinPrice,
		})
	}
	return &Listing{Filter: f, Products: cards, Total: len(products)}, nil
}

func (s *service) Detail(ctx context.Context, handle string) (*Detail, error) {
	product, err := s.gateway.GetProductByHandle(ctx, handle)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Product not found.")
	}

	detail := &Detail{Product: *product}
	detail.Product.FeaturedImage = s.images.image(product.FeaturedImage)
	detail.Product.Images = s.images.images(product.Images)

	detail.DefaultVariant = defaultVariant(product.Variants)
	if detail.DefaultVariant != nil {
		price := detail.DefaultVariant.Price
		detail.Price = &price
		detail.SoldOut = !detail.DefaultVariant.AvailableForSale
	} else {
		detail.Price = product.MinPrice
		detail.SoldOut = true
	}

	gallery := detail.Product.Images
	switch {
	case len(gallery) > 0:
		hero := gallery[0]
		detail.Hero = &hero
		rest := gallery[1:]
		if len(rest) > thumbnailLimit {
			rest = rest[:thumbnailLimit]
		}
		detail.Thumbnails = append([]shopify.Image{}, rest...)
	case detail.Product.FeaturedImage != nil:
		detail.Hero = detail.Product.FeaturedImage
	}
	if detail.Thumbnails == nil {
		detail.Thumbnails = []shopify.Image{}
	}
	return detail, nil
}

// defaultVariant picks the first variant for sale, else the first one.
func defaultVariant(variants []shopify.ProductVariant) *shopify.ProductVariant {
	if len(variants) == 0 {
		return nil
	}
	for i := range variants {
		if variants[i].AvailableForSale {
			v := variants[i]
			return &v
		}
	}
	v := variants[0]
	return &v
}
