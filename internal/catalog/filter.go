package catalog

import (
	"strings"

	pkgerrors "github.com/angelmondragon/obsidian-storefront/pkg/errors"
	"github.com/angelmondragon/obsidian-storefront/pkg/shopify"
)

// Tab is one of the fixed catalog groupings.
type Tab string

const (
	TabAll        Tab = "all"
	TabTShirt     Tab = "t-shirt"
	TabLongsleeve Tab = "longsleeve"
	TabHoodie     Tab = "hoodie"
)

// TabOption pairs a tab with its label for rendering.
type TabOption struct {
	Key   Tab    `json:"key"`
	Label string `json:"label"`
}

// Tabs lists the catalog tabs in display order.
var Tabs = []TabOption{
	{Key: TabAll, Label: "All"},
	{Key: TabTShirt, Label: "T-Shirts"},
	{Key: TabLongsleeve, Label: "Longsleeves"},
	{Key: TabHoodie, Label: "Hoodies"},
}

// ParseTab maps a raw query value to a Tab. Empty means TabAll.
func ParseTab(raw string) (Tab, error) {
	value := Tab(strings.ToLower(strings.TrimSpace(raw)))
	if value == "" {
		return TabAll, nil
	}
	for _, opt := range Tabs {
		if opt.Key == value {
			return value, nil
		}
	}
	return "", pkgerrors.New(pkgerrors.CodeValidation, "unknown catalog tab").
		WithDetails(map[string]any{"tab": raw})
}

// Filter narrows an already fetched product list.
type Filter struct {
	Query string `json:"query,omitempty"`
	Tab   Tab    `json:"tab"`
}

// Apply returns the products matching f, preserving order.
func Apply(products []shopify.Product, f Filter) []shopify.Product {
	query := strings.ToLower(strings.TrimSpace(f.Query))
	out := make([]shopify.Product, 0, len(products))
	for _, p := range products {
		if query != "" && !strings.Contains(strings.ToLower(p.Title), query) {
			continue
		}
		if !matchesTab(p, f.Tab) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matchesTab(p shopify.Product, tab Tab) bool {
	switch tab {
	case "", TabAll:
		return true
	case TabTShirt:
		return hasTag(p, "t-shirt") || hasTag(p, "tee")
	case TabLongsleeve:
		// Every product is a longsleeve until the catalog is tagged for it.
		return true
	case TabHoodie:
		return hasTag(p, "hoodie")
	default:
		return false
	}
}

func hasTag(p shopify.Product, tag string) bool {
	for _, t := range p.Tags {
		if strings.EqualFold(strings.TrimSpace(t), tag) {
			return true
		}
	}
	return false
}
