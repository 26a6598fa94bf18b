package web

import (
	"encoding/json"
	"net/http"

	"github.com/nikolayk812/neon-eshop/internal/catalog"
	"github.com/nikolayk812/neon-eshop/internal/domain"
	"github.com/nikolayk812/neon-eshop/internal/present"
	"go.uber.org/zap"
)

func (a *App) homeHandler(w http.ResponseWriter, r *http.Request) {
	a.render(w, r, http.StatusOK, "home", "Home", struct {
		Featured     []domain.Product
		Categories   []domain.Category
		Testimonials []domain.Testimonial
	}{
		Featured:     a.catalog.Featured(),
		Categories:   a.catalog.Categories(),
		Testimonials: a.catalog.Testimonials(),
	})
}

func (a *App) productsHandler(w http.ResponseWriter, r *http.Request) {
	q, err := catalog.ParseQuery(r.URL.Query())
	if err != nil {
		a.logger.Debug("invalid product filter, using defaults", zap.Error(err))
		q = catalog.DefaultQuery()
	}

	products := catalog.Apply(a.catalog.Products(), q)

	a.render(w, r, http.StatusOK, "products", "All Games", struct {
		Products []domain.Product
		Facets   catalog.Facets
		Query    catalog.Query
		Count    int
		Sorts    []catalog.Sort
	}{
		Products: products,
		Facets:   a.catalog.Facets(),
		Query:    q,
		Count:    len(products),
		Sorts: []catalog.Sort{
			catalog.SortFeatured,
			catalog.SortPriceAsc,
			catalog.SortPriceDesc,
			catalog.SortNameAsc,
			catalog.SortNameDesc,
			catalog.SortNewest,
			catalog.SortRating,
		},
	})
}

func (a *App) productHandler(w http.ResponseWriter, r *http.Request) {
	product := a.catalog.BySlug(r.PathValue("slug"))

	a.render(w, r, http.StatusOK, "product", product.Title, struct {
		Product domain.Product
		Related []domain.Product
	}{
		Product: product,
		Related: a.catalog.Related(),
	})
}

func (a *App) cartHandler(w http.ResponseWriter, r *http.Request) {
	var adjust func(*present.Frame) *present.Frame
	if r.URL.Query().Get("promo") == promoInvalid {
		adjust = a.rejectedPromo
	}
	a.renderWith(w, r, http.StatusOK, "cart", "Shopping Cart", nil, adjust)
}

func (a *App) checkoutHandler(w http.ResponseWriter, r *http.Request) {
	a.render(w, r, http.StatusOK, "checkout", "Checkout", nil)
}

func (a *App) checkoutSuccessHandler(w http.ResponseWriter, r *http.Request) {
	order := r.URL.Query().Get("order")
	if !orderNumberPattern.MatchString(order) {
		order = a.orderNumber()
	}

	a.render(w, r, http.StatusOK, "success", "Order Confirmed", struct {
		OrderNumber string
	}{
		OrderNumber: order,
	})
}

func (a *App) ordersHandler(w http.ResponseWriter, r *http.Request) {
	a.render(w, r, http.StatusOK, "orders", "My Orders", struct {
		Orders []domain.Order
	}{
		Orders: a.catalog.Orders(),
	})
}

func (a *App) wishlistHandler(w http.ResponseWriter, r *http.Request) {
	a.render(w, r, http.StatusOK, "wishlist", "Wishlist", struct {
		Products []domain.Product
	}{
		Products: a.catalog.Wishlist(),
	})
}

func (a *App) staticPage(page, title string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a.render(w, r, http.StatusOK, page, title, nil)
	}
}

func (a *App) notFoundHandler(w http.ResponseWriter, r *http.Request) {
	a.render(w, r, http.StatusNotFound, "notfound", "Page Not Found", nil)
}

func (a *App) healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
