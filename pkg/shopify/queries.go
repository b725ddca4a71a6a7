package shopify

// Operation names double as metric and log labels.
const (
	opProducts        = "Products"
	opProductByHandle = "ProductByHandle"
	opCartCreate      = "CartCreate"
	opCartLinesAdd    = "CartLinesAdd"
	opCartQuery       = "CartQuery"
)

const (
	// DefaultProductLimit is the page size used when callers pass a non-positive limit.
	DefaultProductLimit = 24

	productImageLimit   = 6
	productVariantLimit = 50
	cartLineLimit       = 50
)

const imageFields = `url altText width height`

const moneyFields = `amount currencyCode`

const cartFragment = `
fragment CartFields on Cart {
  id
  checkoutUrl
  totalQuantity
  cost {
    subtotalAmount { ` + moneyFields + ` }
    totalAmount { ` + moneyFields + ` }
  }
  lines(first: 50) {
    edges {
      node {
        id
        quantity
        cost { totalAmount { ` + moneyFields + ` } }
        merchandise {
          ... on ProductVariant {
            id
            title
            price { ` + moneyFields + ` }
            product { id title handle featuredImage { ` + imageFields + ` } }
          }
        }
      }
    }
  }
}
`

const productsQuery = `
query Products($first: Int = 24) {
  products(first: $first, sortKey: CREATED_AT, reverse: true) {
    edges {
      node {
        id
        handle
        title
        description
        tags
        featuredImage { ` + imageFields + ` }
        priceRange { minVariantPrice { ` + moneyFields + ` } }
      }
    }
  }
}
`

const productByHandleQuery = `
query ProductByHandle($handle: String!) {
  product(handle: $handle) {
    id
    title
    description
    descriptionHtml
    handle
    tags
    featuredImage { ` + imageFields + ` }
    priceRange { minVariantPrice { ` + moneyFields + ` } }
    images(first: 6) { edges { node { ` + imageFields + ` } } }
    variants(first: 50) {
      edges {
        node {
          id
          title
          availableForSale
          price { ` + moneyFields + ` }
        }
      }
    }
  }
}
`

const cartCreateMutation = `
mutation CartCreate($lines: [CartLineInput!]) {
  cartCreate(input: { lines: $lines }) {
    cart { ...CartFields }
    userErrors { field message }
  }
}
` + cartFragment

const cartLinesAddMutation = `
mutation CartLinesAdd($cartId: ID!, $lines: [CartLineInput!]!) {
  cartLinesAdd(cartId: $cartId, lines: $lines) {
    cart { ...CartFields }
    userErrors { field message }
  }
}
` + cartFragment

const cartQuery = `
query CartQuery($cartId: ID!) {
  cart(id: $cartId) { ...CartFields }
}
` + cartFragment
