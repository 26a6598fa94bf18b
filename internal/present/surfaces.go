package present

import (
	"fmt"
	"html/template"
	"io"
)

// Surface renders one region of the page. Every DOM node marked with
// data-surface="<Name>" receives the same fragment.
type Surface interface {
	Name() string
	Render(w io.Writer, v View) error
}

const (
	SurfaceBadge    = "badge"
	SurfaceCart     = "cart-items"
	SurfaceMiniCart = "mini-cart-items"
	SurfaceSummary  = "cart-summary"
	SurfacePromo    = "cart-promo"
	SurfaceActions  = "cart-actions"
)

type templateSurface struct {
	name string
	tmpl *template.Template
}

func (s templateSurface) Name() string {
	return s.name
}

func (s templateSurface) Render(w io.Writer, v View) error {
	if err := s.tmpl.Execute(w, v); err != nil {
		return fmt.Errorf("tmpl.Execute[%s]: %w", s.name, err)
	}
	return nil
}

// NewTemplateSurface parses text as an html/template executed with a View.
func NewTemplateSurface(name, text string) (Surface, error) {
	tmpl, err := template.New(name).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("template.Parse[%s]: %w", name, err)
	}
	return templateSurface{name: name, tmpl: tmpl}, nil
}

func DefaultSurfaces() []Surface {
	return []Surface{
		mustSurface(SurfaceBadge, badgeTemplate),
		mustSurface(SurfaceCart, cartTemplate),
		mustSurface(SurfaceMiniCart, miniCartTemplate),
		mustSurface(SurfaceSummary, summaryTemplate),
		promoSurface,
		mustSurface(SurfaceActions, actionsTemplate),
	}
}

var promoSurface = mustSurface(SurfacePromo, promoTemplate)

func mustSurface(name, text string) Surface {
	s, err := NewTemplateSurface(name, text)
	if err != nil {
		panic(err)
	}
	return s
}

const badgeTemplate = `<span class="navbar__cart-badge{{if .Badge.Hidden}} d-none{{end}}">{{.Badge.Count}}</span>`

const cartTemplate = `{{if .Empty}}<div class="cart-empty">
  <div class="cart-empty__icon">🛒</div>
  <h2 class="cart-empty__title">Your cart is empty</h2>
  <p class="cart-empty__text">Start adding some awesome games to your collection!</p>
  <a href="/products" class="btn btn--primary">Browse Games</a>
</div>{{else}}{{range .Items}}<div class="cart-item{{if .Fresh}} cart-item--enter{{end}}" data-item-id="{{.ID}}">
  <div class="cart-item__image"><img src="{{.Image}}" alt="{{.Title}}"></div>
  <div class="cart-item__content">
    <div class="cart-item__header">
      <div>
        <h3 class="cart-item__title">{{.Title}}</h3>
        <p class="cart-item__platform">{{.Platform}}</p>
      </div>
      <form method="post" action="/cart/actions">
        <input type="hidden" name="action" value="remove"><input type="hidden" name="id" value="{{.ID}}">
        <button class="cart-item__remove" type="submit" aria-label="Remove {{.Title}}">✕</button>
      </form>
    </div>
    <div class="cart-item__footer">
      <div class="cart-item__quantity">
        <form method="post" action="/cart/actions">
          <input type="hidden" name="action" value="decrease"><input type="hidden" name="id" value="{{.ID}}">
          <button type="submit" aria-label="Decrease quantity">-</button>
        </form>
        <form method="post" action="/cart/actions" data-qty-form>
          <input type="hidden" name="action" value="set-quantity"><input type="hidden" name="id" value="{{.ID}}">
          <input type="number" name="quantity" value="{{.Quantity}}" min="0" aria-label="Quantity" data-qty-input="{{.ID}}">
        </form>
        <form method="post" action="/cart/actions">
          <input type="hidden" name="action" value="increase"><input type="hidden" name="id" value="{{.ID}}">
          <button type="submit" aria-label="Increase quantity">+</button>
        </form>
      </div>
      <div class="cart-item__price">{{.LineTotal}}</div>
    </div>
  </div>
</div>
{{end}}{{end}}`

const miniCartTemplate = `{{if .Empty}}<p class="text-center text-muted">Your cart is empty</p>{{else}}{{range .Items}}<div class="cart-item{{if .Fresh}} cart-item--enter{{end}}" data-item-id="{{.ID}}">
  <div class="cart-item__image"><img src="{{.Image}}" alt="{{.Title}}"></div>
  <div class="cart-item__content">
    <h4 class="cart-item__title">{{.Title}}</h4>
    <p class="cart-item__platform">{{.Platform}} × {{.Quantity}}</p>
  </div>
  <div class="cart-item__price">{{.LineTotal}}</div>
</div>
{{end}}{{end}}`

const summaryTemplate = `<dl class="cart-summary">
  <div class="cart-summary__row"><dt>Subtotal</dt><dd data-cart-subtotal>{{.Summary.Subtotal}}</dd></div>
  <div class="cart-summary__row"><dt>Shipping</dt><dd data-cart-shipping>{{.Summary.Shipping}}</dd></div>
  <div class="cart-summary__row"><dt>Tax</dt><dd data-cart-tax>{{.Summary.Tax}}</dd></div>
  {{if .Summary.ShowDiscount}}<div class="cart-summary__row cart-summary__row--discount" data-cart-discount-row><dt>Discount ({{.Promo.Code}})</dt><dd data-cart-discount>{{.Summary.Discount}}</dd></div>{{end}}
  <div class="cart-summary__row cart-summary__row--total"><dt>Total</dt><dd data-cart-total>{{.Summary.Total}}</dd></div>
</dl>`


const promoTemplate = `<form class="promo" method="post" action="/cart/actions">
  <input type="hidden" name="action" value="apply-promo">
  <input type="text" name="code" placeholder="Promo code" aria-label="Promo code" data-promo-input{{if .Promo.Locked}} disabled{{end}}>
  <button type="submit" class="btn btn--ghost"{{if .Promo.Locked}} disabled{{end}}>Apply</button>
</form>
{{with .Promo.Message}}<p class="promo__message promo__message--{{if $.Promo.Rejected}}error{{else}}success{{end}}" data-promo-message>{{.}}</p>{{end}}`

const actionsTemplate = `{{if not .Empty}}<a href="/checkout" class="btn btn--primary">Proceed to Checkout</a>
<form method="post" action="/cart/actions">
  <input type="hidden" name="action" value="clear">
  <button type="submit" class="btn btn--ghost">Clear Cart</button>
</form>{{end}}`
