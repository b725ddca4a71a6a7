package catalog

import (
	"net/url"
	"strings"

	"github.com/angelmondragon/obsidian-storefront/pkg/shopify"
)

const shopifyCDNHost = "cdn.shopify.com"

// imagePolicy keeps only https images served from the Shopify CDN or the store itself.
type imagePolicy struct {
	hosts map[string]struct{}
}

func newImagePolicy(storeDomain string) imagePolicy {
	hosts := map[string]struct{}{shopifyCDNHost: {}}
	if domain := strings.ToLower(strings.TrimSpace(storeDomain)); domain != "" {
		hosts[domain] = struct{}{}
	}
	return imagePolicy{hosts: hosts}
}

func (p imagePolicy) allowed(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme != "https" {
		return false
	}
	_, ok := p.hosts[strings.ToLower(u.Hostname())]
	return ok
}

func (p imagePolicy) image(img *shopify.Image) *shopify.Image {
	if img == nil || !p.allowed(img.URL) {
		return nil
	}
	return img
}

func (p imagePolicy) images(in []shopify.Image) []shopify.Image {
	out := make([]shopify.Image, 0, len(in))
	for _, img := range in {
		if p.allowed(img.URL) {
			out = append(out, img)
		}
	}
	return out
}
