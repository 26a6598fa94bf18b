package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/nikolayk812/neon-eshop/internal/cart"
	"github.com/nikolayk812/neon-eshop/internal/domain"
	"github.com/nikolayk812/neon-eshop/internal/theme"
	"go.uber.org/zap"
)

var (
	errUnknownAction   = errors.New("unknown action")
	errProductNotFound = errors.New("product not found")
	errQuantity        = errors.New("quantity must be an integer")
)

const promoInvalid = "invalid"

type actionRequest struct {
	Action   string `json:"action"`
	ID       string `json:"id"`
	Quantity *int   `json:"quantity"`
	Code     string `json:"code"`
}

type command func(ctx context.Context, store *cart.Store, req actionRequest) error

func (a *App) commandTable() map[string]command {
	return map[string]command{
		"add": func(ctx context.Context, store *cart.Store, req actionRequest) error {
			product, ok := a.catalog.ByID(req.ID)
			if !ok {
				return fmt.Errorf("%w: %s", errProductNotFound, req.ID)
			}
			return store.AddItem(ctx, product.Ref())
		},
		"remove": func(ctx context.Context, store *cart.Store, req actionRequest) error {
			store.RemoveItem(ctx, req.ID)
			return nil
		},
		"increase": func(ctx context.Context, store *cart.Store, req actionRequest) error {
			store.IncreaseQuantity(ctx, req.ID)
			return nil
		},
		"decrease": func(ctx context.Context, store *cart.Store, req actionRequest) error {
			store.DecreaseQuantity(ctx, req.ID)
			return nil
		},
		"set-quantity": func(ctx context.Context, store *cart.Store, req actionRequest) error {
			if req.Quantity == nil {
				return errQuantity
			}
			store.UpdateQuantity(ctx, req.ID, *req.Quantity)
			return nil
		},
		"clear": func(ctx context.Context, store *cart.Store, _ actionRequest) error {
			store.Clear(ctx)
			return nil
		},
		"apply-promo": func(ctx context.Context, store *cart.Store, req actionRequest) error {
			return store.ApplyPromoCode(ctx, req.Code)
		},
	}
}

type frameJSON struct {
	Version   uint64                   `json:"version"`
	Fragments map[string]template.HTML `json:"fragments"`
}

type actionResponse struct {
	Frame   frameJSON     `json:"frame"`
	Notices []cart.Notice `json:"notices"`
	Added   []string      `json:"added"`
	Count   int           `json:"count"`
	Total   string        `json:"total"`
}

func (a *App) cartActionHandler(w http.ResponseWriter, r *http.Request) {
	wantJSON := isJSONRequest(r)

	req, err := decodeAction(r)
	if err != nil {
		a.fail(w, wantJSON, http.StatusBadRequest, "invalid_request", err)
		return
	}

	cmd, ok := a.commands[req.Action]
	if !ok {
		a.fail(w, wantJSON, http.StatusBadRequest, "unknown_action", fmt.Errorf("%w: %q", errUnknownAction, req.Action))
		return
	}

	store, err := a.store(r)
	if err != nil {
		a.logger.Error("cart unavailable", zap.Error(err))
		a.fail(w, wantJSON, http.StatusInternalServerError, "internal_error", nil)
		return
	}

	err = cmd(r.Context(), store, req)
	rejected := errors.Is(err, cart.ErrInvalidPromoCode)
	switch {
	case err == nil:
	case rejected, errors.Is(err, cart.ErrPromoAlreadyApplied):
		// rejection is reported through the notices
	case errors.Is(err, errProductNotFound):
		a.fail(w, wantJSON, http.StatusNotFound, "product_not_found", err)
		return
	case errors.Is(err, cart.ErrEmptyProductID),
		errors.Is(err, cart.ErrNegativePrice),
		errors.Is(err, cart.ErrCurrencyMismatch),
		errors.Is(err, cart.ErrEmptyPromoCode),
		errors.Is(err, errQuantity):
		a.fail(w, wantJSON, http.StatusBadRequest, "validation_error", err)
		return
	default:
		a.logger.Error("cart action failed", zap.String("action", req.Action), zap.Error(err))
		a.fail(w, wantJSON, http.StatusInternalServerError, "internal_error", nil)
		return
	}

	if !wantJSON {
		target := backTo(r, "/cart")
		if rejected {
			target = "/cart?promo=" + promoInvalid
		}
		http.Redirect(w, r, target, http.StatusSeeOther)
		return
	}

	frame := a.frame(store)
	if rejected {
		frame = a.rejectedPromo(frame)
	}
	writeJSON(w, http.StatusOK, actionResponse{
		Frame:   frameJSON{Version: frame.Version, Fragments: frame.Fragments},
		Notices: store.TakeNotices(),
		Added:   a.tracker.Take(store.OwnerID()),
		Count:   frame.View.Badge.Count,
		Total:   frame.View.Summary.Total,
	})
}

func (a *App) fragmentsHandler(w http.ResponseWriter, r *http.Request) {
	store, err := a.store(r)
	if err != nil {
		a.logger.Error("cart unavailable", zap.Error(err))
		WriteJSONError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}

	frame := a.frame(store)
	writeJSON(w, http.StatusOK, actionResponse{
		Frame:   frameJSON{Version: frame.Version, Fragments: frame.Fragments},
		Notices: store.TakeNotices(),
		Count:   frame.View.Badge.Count,
		Total:   frame.View.Summary.Total,
	})
}

type cartItemJSON struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Price     string `json:"price"`
	Image     string `json:"image"`
	Platform  string `json:"platform"`
	Quantity  int    `json:"quantity"`
	LineTotal string `json:"line_total"`
}

type cartJSON struct {
	Items     []cartItemJSON `json:"items"`
	PromoCode string         `json:"promo_code,omitempty"`
	Count     int            `json:"count"`
	Currency  string         `json:"currency"`
	Subtotal  string         `json:"subtotal"`
	Shipping  string         `json:"shipping"`
	Tax       string         `json:"tax"`
	Discount  string         `json:"discount"`
	Total     string         `json:"total"`
}

func (a *App) apiCartHandler(w http.ResponseWriter, r *http.Request) {
	store, err := a.store(r)
	if err != nil {
		a.logger.Error("cart unavailable", zap.Error(err))
		WriteJSONError(w, http.StatusInternalServerError, "internal_error", "")
		return
	}

	writeJSON(w, http.StatusOK, mapStateToJSON(store.State()))
}

func mapStateToJSON(state cart.State) cartJSON {
	items := make([]cartItemJSON, 0, len(state.Items))
	for _, item := range state.Items {
		items = append(items, cartItemJSON{
			ID:        item.ID,
			Title:     item.Title,
			Price:     amount(item.Price),
			Image:     item.Image,
			Platform:  item.Platform,
			Quantity:  item.Quantity,
			LineTotal: amount(item.LineTotal()),
		})
	}

	p := state.Pricing
	return cartJSON{
		Items:     items,
		PromoCode: state.PromoCode,
		Count:     state.ItemCount(),
		Currency:  p.Total.Currency.String(),
		Subtotal:  amount(p.Subtotal),
		Shipping:  amount(p.Shipping),
		Tax:       amount(p.Tax),
		Discount:  amount(p.Discount),
		Total:     amount(p.Total),
	}
}

func amount(m domain.Money) string {
	return m.Amount.StringFixed(2)
}

func (a *App) placeOrderHandler(w http.ResponseWriter, r *http.Request) {
	wantJSON := isJSONRequest(r)

	store, err := a.store(r)
	if err != nil {
		a.logger.Error("cart unavailable", zap.Error(err))
		a.fail(w, wantJSON, http.StatusInternalServerError, "internal_error", nil)
		return
	}

	state := store.State()
	if state.IsEmpty() {
		if wantJSON {
			WriteJSONError(w, http.StatusBadRequest, "cart_empty", "")
			return
		}
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}

	order := a.orderNumber()
	store.Clear(r.Context())
	// the confirmation page replaces the "cart cleared" toast
	store.TakeNotices()

	a.logger.Info("order placed",
		zap.String("order", order),
		zap.String("owner_id", store.OwnerID()),
		zap.String("total", state.Pricing.Total.Format()),
		zap.Int("items", state.ItemCount()))

	if wantJSON {
		writeJSON(w, http.StatusCreated, map[string]string{"order": order, "total": amount(state.Pricing.Total)})
		return
	}
	http.Redirect(w, r, "/checkout/success?order="+url.QueryEscape(order), http.StatusSeeOther)
}

func (a *App) themeToggleHandler(w http.ResponseWriter, r *http.Request) {
	next := theme.FromRequest(r).Toggle()
	http.SetCookie(w, next.Cookie())

	if isJSONRequest(r) {
		writeJSON(w, http.StatusOK, map[string]string{
			"theme":      string(next),
			"icon":       next.Icon(),
			"aria_label": next.AriaLabel(),
		})
		return
	}
	http.Redirect(w, r, backTo(r, "/"), http.StatusSeeOther)
}

func (a *App) fail(w http.ResponseWriter, wantJSON bool, status int, message string, err error) {
	details := ""
	if err != nil {
		details = err.Error()
	}

	if wantJSON {
		WriteJSONError(w, status, message, details)
		return
	}
	http.Error(w, strings.TrimSpace(message+" "+details), status)
}

func decodeAction(r *http.Request) (actionRequest, error) {
	var req actionRequest

	if isJSONBody(r) {
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			return actionRequest{}, fmt.Errorf("json.Decode: %w", err)
		}
		return req, nil
	}

	if err := r.ParseForm(); err != nil {
		return actionRequest{}, fmt.Errorf("r.ParseForm: %w", err)
	}

	req.Action = r.PostForm.Get("action")
	req.ID = r.PostForm.Get("id")
	req.Code = r.PostForm.Get("code")

	if v := r.PostForm.Get("quantity"); v != "" {
		q, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return actionRequest{}, fmt.Errorf("%w: %q", errQuantity, v)
		}
		req.Quantity = &q
	}

	return req, nil
}

func isJSONBody(r *http.Request) bool {
	return strings.HasPrefix(strings.ToLower(r.Header.Get("Content-Type")), "application/json")
}

func isJSONRequest(r *http.Request) bool {
	return isJSONBody(r) || strings.Contains(r.Header.Get("Accept"), "application/json")
}

// backTo returns the local part of the referer, or fallback.
func backTo(r *http.Request, fallback string) string {
	ref, err := url.Parse(r.Referer())
	if err != nil || !strings.HasPrefix(ref.Path, "/") || strings.HasPrefix(ref.Path, "//") {
		return fallback
	}
	return ref.RequestURI()
}
