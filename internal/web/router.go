package web

import (
	"net/http"

	"go.uber.org/zap"
)

// NewRouter registers HTTP routes and returns the handler with middleware.
func NewRouter(app *App, logger *zap.Logger) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", app.homeHandler)
	mux.HandleFunc("GET /products", app.productsHandler)
	mux.HandleFunc("GET /product/{slug}", app.productHandler)
	mux.HandleFunc("GET /cart", app.cartHandler)
	mux.HandleFunc("POST /cart/actions", app.cartActionHandler)
	mux.HandleFunc("GET /cart/fragments", app.fragmentsHandler)
	mux.HandleFunc("GET /api/cart", app.apiCartHandler)
	mux.HandleFunc("GET /checkout", app.checkoutHandler)
	mux.HandleFunc("POST /checkout", app.placeOrderHandler)
	mux.HandleFunc("GET /checkout/success", app.checkoutSuccessHandler)
	mux.HandleFunc("GET /account", app.staticPage("account", "My Account"))
	mux.HandleFunc("GET /account/orders", app.ordersHandler)
	mux.HandleFunc("GET /account/wishlist", app.wishlistHandler)
	mux.HandleFunc("GET /login", app.staticPage("login", "Login"))
	mux.HandleFunc("GET /register", app.staticPage("register", "Register"))
	mux.HandleFunc("POST /theme/toggle", app.themeToggleHandler)
	mux.HandleFunc("GET /healthz", app.healthHandler)
	mux.Handle("GET /static/", http.FileServerFS(staticFS))
	mux.HandleFunc("/", app.notFoundHandler)

	return WithRequestID(WithLogging(logger)(WithSession(mux)))
}
