package views

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/angelmondragon/obsidian-storefront/api/responses"
	pkgerrors "github.com/angelmondragon/obsidian-storefront/pkg/errors"
	"github.com/angelmondragon/obsidian-storefront/pkg/logger"
	"github.com/angelmondragon/obsidian-storefront/pkg/shopify"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	PageCatalog         = "catalog"
	PageProduct         = "product"
	PageCart            = "cart"
	PageSetup           = "setup"
	PageConnectionError = "connection_error"
	PageNotFound        = "not_found"
	PageError           = "error"
)

var pages = []string{
	PageCatalog,
	PageProduct,
	PageCart,
	PageSetup,
	PageConnectionError,
	PageNotFound,
	PageError,
}

// Site is the branding shown on every page.
type Site struct {
	Name         string
	Description  string
	Announcement string
}

// Page is the data handed to the layout; Data is page specific.
type Page struct {
	Site  Site
	Title string
	Data  any
}

// Renderer renders the storefront's HTML pages.
type Renderer struct {
	site  Site
	pages map[string]*template.Template
	logg  *logger.Logger
}

func New(site Site, logg *logger.Logger) (*Renderer, error) {
	funcs := template.FuncMap{
		"money":    formatMoney,
		"safeHTML": func(s string) template.HTML { return template.HTML(s) },
	}

	parsed := make(map[string]*template.Template, len(pages))
	for _, name := range pages {
		tmpl, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		parsed[name] = tmpl
	}
	return &Renderer{site: site, pages: parsed, logg: logg}, nil
}

// Site returns the branding the renderer was built with.
func (r *Renderer) Site() Site {
	return r.site
}

// Render writes page with status. The page is rendered into a buffer first so
// a template failure never leaves a half-written response.
func (r *Renderer) Render(ctx context.Context, w http.ResponseWriter, status int, page, title string, data any) {
	tmpl, ok := r.pages[page]
	if !ok {
		responses.WriteError(ctx, r.logg, w, pkgerrors.New(pkgerrors.CodeInternal, "unknown page "+page))
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", Page{Site: r.site, Title: title, Data: data}); err != nil {
		r.logg.Error(ctx, "view.render_failed", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// ErrorPage is the data of the setup, connection-error and generic error pages.
type ErrorPage struct {
	Code    string
	Message string
	Missing []string
}

// WriteError renders the page matching err's code: setup instructions when the
// store is not configured, a connection error for upstream failures and a
// not-found page for absent products.
func (r *Renderer) WriteError(ctx context.Context, w http.ResponseWriter, err error) {
	typed := responses.Normalize(err)
	status := pkgerrors.MetadataFor(typed.Code()).HTTPStatus
	responses.LogError(ctx, r.logg, err)

	data := ErrorPage{Code: string(typed.Code()), Message: responses.PublicMessage(typed)}
	switch typed.Code() {
	case pkgerrors.CodeNotConfigured:
		if details, ok := typed.Details().(map[string]any); ok {
			if missing, ok := details["missing"].([]string); ok {
				data.Missing = missing
			}
		}
		r.Render(ctx, w, status, PageSetup, "Setup required", data)
	case pkgerrors.CodeUpstream, pkgerrors.CodeDependency:
		r.Render(ctx, w, status, PageConnectionError, "Connection error", data)
	case pkgerrors.CodeNotFound:
		r.Render(ctx, w, status, PageNotFound, "Not found", data)
	default:
		r.Render(ctx, w, status, PageError, "Something went wrong", data)
	}
}

func formatMoney(v any) string {
	switch m := v.(type) {
	case shopify.Money:
		return m.Display()
	case *shopify.Money:
		if m != nil {
			return m.Display()
		}
	}
	return ""
}
