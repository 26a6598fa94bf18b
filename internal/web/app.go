// Package web serves the storefront pages and the cart endpoints.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/neon-eshop/internal/cart"
	"github.com/nikolayk812/neon-eshop/internal/catalog"
	"github.com/nikolayk812/neon-eshop/internal/events"
	"github.com/nikolayk812/neon-eshop/internal/present"
	"github.com/nikolayk812/neon-eshop/internal/theme"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var orderNumberPattern = regexp.MustCompile(`^#[0-9A-F]{8}$`)

type Deps struct {
	Catalog  *catalog.Catalog
	Registry *cart.Registry
	Hub      *present.Hub
	Tracker  *events.AddedTracker
	Logger   *zap.Logger
}

type App struct {
	catalog  *catalog.Catalog
	registry *cart.Registry
	hub      *present.Hub
	tracker  *events.AddedTracker
	logger   *zap.Logger

	pages       map[string]*template.Template
	commands    map[string]command
	orderNumber func() string
}

func NewApp(d Deps) (*App, error) {
	if d.Catalog == nil || d.Registry == nil || d.Hub == nil || d.Tracker == nil {
		return nil, fmt.Errorf("catalog, registry, hub and tracker are required")
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}

	pages, err := parsePages(templateFS)
	if err != nil {
		return nil, fmt.Errorf("parsePages: %w", err)
	}

	a := &App{
		catalog:     d.Catalog,
		registry:    d.Registry,
		hub:         d.Hub,
		tracker:     d.Tracker,
		logger:      d.Logger,
		pages:       pages,
		orderNumber: NewOrderNumber,
	}
	a.commands = a.commandTable()

	return a, nil
}

// NewOrderNumber returns a demo order number like "#A8F3D92B".
func NewOrderNumber() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "#" + strings.ToUpper(id[:8])
}

var funcs = template.FuncMap{
	"rating": catalog.FormatRating,
	"date": func(t time.Time) string {
		return t.Format("Jan 2, 2006")
	},
	"has": func(list []string, v string) bool {
		for _, s := range list {
			if strings.EqualFold(s, v) {
				return true
			}
		}
		return false
	},
	"withSort": func(q catalog.Query, s string) template.URL {
		q.Sort = catalog.Sort(s)
		if encoded := q.Encode(); encoded != "" {
			return template.URL("/products?" + encoded)
		}
		return "/products"
	},
}

func parsePages(fsys fs.FS) (map[string]*template.Template, error) {
	layout, err := template.New("layout.html").Funcs(funcs).ParseFS(fsys, "templates/layout.html")
	if err != nil {
		return nil, fmt.Errorf("template.ParseFS[layout]: %w", err)
	}

	names, err := fs.Glob(fsys, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("fs.Glob: %w", err)
	}

	pages := make(map[string]*template.Template, len(names))
	for _, name := range names {
		page := strings.TrimSuffix(strings.TrimPrefix(name, "templates/"), ".html")
		if page == "layout" {
			continue
		}

		clone, err := layout.Clone()
		if err != nil {
			return nil, fmt.Errorf("layout.Clone: %w", err)
		}
		if _, err := clone.ParseFS(fsys, name); err != nil {
			return nil, fmt.Errorf("template.ParseFS[%s]: %w", page, err)
		}
		pages[page] = clone
	}

	return pages, nil
}

type pageData struct {
	Title     string
	Path      string
	Theme     theme.Theme
	Fragments map[string]template.HTML
	View      present.View
	Notices   []cart.Notice
	Data      any
}

func (a *App) store(r *http.Request) (*cart.Store, error) {
	store, err := a.registry.Get(r.Context(), SessionFromContext(r.Context()))
	if err != nil {
		return nil, fmt.Errorf("registry.Get: %w", err)
	}
	return store, nil
}

// frame returns the latest rendered frame of store, rendering one on the spot
// when the hub has none.
func (a *App) frame(store *cart.Store) *present.Frame {
	if f := a.hub.Frame(store.OwnerID()); f != nil {
		return f
	}

	s := present.NewSync(a.logger)
	s.Handle(cart.Update{State: store.State()})
	if f := s.Frame(); f != nil {
		return f
	}
	return &present.Frame{Fragments: map[string]template.HTML{}}
}

func (a *App) render(w http.ResponseWriter, r *http.Request, status int, page, title string, data any) {
	a.renderWith(w, r, status, page, title, data, nil)
}

// rejectedPromo shows the invalid code message on f's promo surface.
func (a *App) rejectedPromo(f *present.Frame) *present.Frame {
	next, err := f.WithRejectedPromo()
	if err != nil {
		a.logger.Error("promo surface render failed", zap.Error(err))
		return f
	}
	return next
}

// renderWith renders page; adjust, when set, rewrites the cart frame shown on it.
func (a *App) renderWith(w http.ResponseWriter, r *http.Request, status int, page, title string, data any, adjust func(*present.Frame) *present.Frame) {
	tmpl, ok := a.pages[page]
	if !ok {
		a.logger.Error("page template missing", zap.String("page", page))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	store, err := a.store(r)
	if err != nil {
		a.logger.Error("cart unavailable", zap.Error(err), zap.String("request_id", RequestIDFromContext(r.Context())))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	frame := a.frame(store)
	if adjust != nil {
		frame = adjust(frame)
	}
	pd := pageData{
		Title:     title,
		Path:      r.URL.Path,
		Theme:     theme.FromRequest(r),
		Fragments: frame.Fragments,
		View:      frame.View,
		Notices:   store.TakeNotices(),
		Data:      data,
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", pd); err != nil {
		a.logger.Error("page render failed", zap.String("page", page), zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
