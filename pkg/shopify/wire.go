package shopify

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Response payloads as returned by the Storefront API. Every field the
// storefront relies on is tagged so a schema drift fails at this boundary.

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	_ = v.RegisterValidation("decimal", func(fl validator.FieldLevel) bool {
		_, err := decimal.NewFromString(fl.Field().String())
		return err == nil
	})
	return v
}

type moneyNode struct {
	Amount       string `json:"amount" validate:"required,decimal"`
	CurrencyCode string `json:"currencyCode" validate:"required"`
}

type imageNode struct {
	URL     string  `json:"url" validate:"required,url"`
	AltText *string `json:"altText"`
	Width   *int    `json:"width" validate:"omitempty,gte=0"`
	Height  *int    `json:"height" validate:"omitempty,gte=0"`
}

type priceRangeNode struct {
	MinVariantPrice *moneyNode `json:"minVariantPrice"`
}

type productNode struct {
	ID              string             `json:"id" validate:"required"`
	Handle          string             `json:"handle" validate:"required"`
	Title           string             `json:"title" validate:"required"`
	Description     string             `json:"description"`
	DescriptionHTML string             `json:"descriptionHtml"`
	Tags            []string           `json:"tags"`
	FeaturedImage   *imageNode         `json:"featuredImage"`
	PriceRange      *priceRangeNode    `json:"priceRange"`
	Images          *imageConnection   `json:"images"`
	Variants        *variantConnection `json:"variants"`
}

type imageConnection struct {
	Edges []struct {
		Node imageNode `json:"node"`
	} `json:"edges" validate:"dive"`
}

type variantNode struct {
	ID               string    `json:"id" validate:"required"`
	Title            string    `json:"title" validate:"required"`
	AvailableForSale bool      `json:"availableForSale"`
	Price            moneyNode `json:"price"`
}

type variantConnection struct {
	Edges []struct {
		Node variantNode `json:"node"`
	} `json:"edges" validate:"dive"`
}

type productsData struct {
	Products *struct {
		Edges []struct {
			Node productNode `json:"node"`
		} `json:"edges" validate:"dive"`
	} `json:"products" validate:"required"`
}

type productByHandleData struct {
	Product *productNode `json:"product"`
}

type cartCostNode struct {
	SubtotalAmount *moneyNode `json:"subtotalAmount"`
	TotalAmount    *moneyNode `json:"totalAmount"`
}

type cartLineNode struct {
	ID       string `json:"id" validate:"required"`
	Quantity int    `json:"quantity" validate:"gte=1"`
	Cost     *struct {
		TotalAmount *moneyNode `json:"totalAmount"`
	} `json:"cost"`
	Merchandise struct {
		ID      string     `json:"id" validate:"required"`
		Title   string     `json:"title"`
		Price   *moneyNode `json:"price"`
		Product struct {
			ID            string     `json:"id"`
			Title         string     `json:"title" validate:"required"`
			Handle        string     `json:"handle"`
			FeaturedImage *imageNode `json:"featuredImage"`
		} `json:"product"`
	} `json:"merchandise"`
}

type cartNode struct {
	ID            string        `json:"id" validate:"required"`
	CheckoutURL   string        `json:"checkoutUrl" validate:"required,url"`
	TotalQuantity int           `json:"totalQuantity" validate:"gte=0"`
	Cost          *cartCostNode `json:"cost"`
	Lines         *struct {
		Edges []struct {
			Node cartLineNode `json:"node"`
		} `json:"edges" validate:"dive"`
	} `json:"lines"`
}

type userErrorNode struct {
	Field   []string `json:"field"`
	Message string   `json:"message"`
}

type cartPayload struct {
	Cart       *cartNode       `json:"cart"`
	UserErrors []userErrorNode `json:"userErrors"`
}

type cartCreateData struct {
	CartCreate *cartPayload `json:"cartCreate" validate:"required"`
}

type cartLinesAddData struct {
	CartLinesAdd *cartPayload `json:"cartLinesAdd" validate:"required"`
}

type cartData struct {
	Cart *cartNode `json:"cart"`
}

func (m *moneyNode) toMoney() *Money {
	if m == nil {
		return nil
	}
	// Amount passed the decimal validator already.
	amount, err := decimal.NewFromString(m.Amount)
	if err != nil {
		return nil
	}
	return &Money{Amount: amount, CurrencyCode: m.CurrencyCode}
}

func (i *imageNode) toImage() *Image {
	if i == nil {
		return nil
	}
	img := &Image{URL: i.URL}
	if i.AltText != nil {
		img.AltText = *i.AltText
	}
	if i.Width != nil {
		img.Width = *i.Width
	}
	if i.Height != nil {
		img.Height = *i.Height
	}
	return img
}

func (p *productNode) toProduct() *Product {
	if p == nil {
		return nil
	}
	product := &Product{
		ID:              p.ID,
		Handle:          p.Handle,
		Title:           p.Title,
		Description:     p.Description,
		DescriptionHTML: p.DescriptionHTML,
		Tags:            append([]string{}, p.Tags...),
		FeaturedImage:   p.FeaturedImage.toImage(),
	}
	if p.PriceRange != nil {
		product.MinPrice = p.PriceRange.MinVariantPrice.toMoney()
	}
	if p.Images != nil {
		for _, edge := range p.Images.Edges {
			if len(product.Images) == productImageLimit {
				break
			}
			product.Images = append(product.Images, *edge.Node.toImage())
		}
	}
	if p.Variants != nil {
		for _, edge := range p.Variants.Edges {
			if len(product.Variants) == productVariantLimit {
				break
			}
			variant := ProductVariant{
				ID:               edge.Node.ID,
				Title:            edge.Node.Title,
				AvailableForSale: edge.Node.AvailableForSale,
			}
			if price := edge.Node.Price.toMoney(); price != nil {
				variant.Price = *price
			}
			product.Variants = append(product.Variants, variant)
		}
	}
	return product
}

func (c *cartNode) toCart() *Cart {
	if c == nil {
		return nil
	}
	cart := &Cart{
		ID:            c.ID,
		CheckoutURL:   c.CheckoutURL,
		TotalQuantity: c.TotalQuantity,
		Lines:         []CartLine{},
	}
	if c.Cost != nil {
		cart.Subtotal = c.Cost.SubtotalAmount.toMoney()
		cart.Total = c.Cost.TotalAmount.toMoney()
	}
	if c.Lines != nil {
		for _, edge := range c.Lines.Edges {
			if len(cart.Lines) == cartLineLimit {
				break
			}
			node := edge.Node
			line := CartLine{
				ID:       node.ID,
				Quantity: node.Quantity,
				Merchandise: Merchandise{
					ID:    node.Merchandise.ID,
					Title: node.Merchandise.Title,
					Price: node.Merchandise.Price.toMoney(),
					Product: MerchandiseProduct{
						ID:            node.Merchandise.Product.ID,
						Title:         node.Merchandise.Product.Title,
						Handle:        node.Merchandise.Product.Handle,
						FeaturedImage: node.Merchandise.Product.FeaturedImage.toImage(),
					},
				},
			}
			if node.Cost != nil {
				line.Total = node.Cost.TotalAmount.toMoney()
			}
			cart.Lines = append(cart.Lines, line)
		}
	}
	return cart
}
