// Package present projects cart state onto the page surfaces that show it:
// header badges, the full cart, the mini-cart and the order summary.
package present

import (
	"fmt"
	"slices"

	"github.com/nikolayk812/neon-eshop/internal/cart"
)

type View struct {
	Badge   Badge
	Items   []ItemView
	Empty   bool
	Summary Summary
	Promo   Promo
}

type Badge struct {
	Count  int
	Hidden bool
}

type ItemView struct {
	ID        string
	Title     string
	Image     string
	Platform  string
	Quantity  int
	Price     string
	LineTotal string
	// Fresh marks rows appended by the change being rendered.
	Fresh bool
}

type Summary struct {
	Subtotal     string
	Shipping     string
	Tax          string
	Discount     string
	Total        string
	ShowDiscount bool
}

type Promo struct {
	Code   string
	Locked bool
	// Message is the inline text under the promo input.
	Message  string
	Rejected bool
}

const (
	msgPromoFree     = "🎉 Amazing! Everything is FREE! Sami would love to work with you! 🚀"
	msgPromoApplied  = "🎉 Promo code %s applied!"
	msgPromoRejected = "❌ Invalid promo code. Try HIRE_SAMI 😉"
)

// Project builds the view for state. It is pure; every surface rendered from
// one View shows the same numbers.
func Project(state cart.State, added []string) View {
	items := make([]ItemView, 0, len(state.Items))
	for _, item := range state.Items {
		items = append(items, ItemView{
			ID:        item.ID,
			Title:     item.Title,
			Image:     item.Image,
			Platform:  item.Platform,
			Quantity:  item.Quantity,
			Price:     item.Price.Format(),
			LineTotal: item.LineTotal().Format(),
			Fresh:     slices.Contains(added, item.ID),
		})
	}

	count := state.ItemCount()
	p := state.Pricing

	return View{
		Badge: Badge{
			Count:  count,
			Hidden: count == 0,
		},
		Items: items,
		Empty: state.IsEmpty(),
		Summary: Summary{
			Subtotal:     p.Subtotal.Format(),
			Shipping:     p.Shipping.Format(),
			Tax:          p.Tax.Format(),
			Discount:     "-" + p.Discount.Format(),
			Total:        p.Total.Format(),
			ShowDiscount: state.PromoCode != "" && p.Discount.Amount.IsPositive(),
		},
		Promo: projectPromo(state),
	}
}

func projectPromo(state cart.State) Promo {
	promo := Promo{
		Code:   state.PromoCode,
		Locked: state.PromoLocked(),
	}
	if !promo.Locked {
		return promo
	}

	if state.Pricing.Total.IsZero() {
		promo.Message = msgPromoFree
	} else {
		promo.Message = fmt.Sprintf(msgPromoApplied, state.PromoCode)
	}
	return promo
}

// RejectPromo marks the view after a promo code was refused. A locked promo
// keeps its own message.
func RejectPromo(v View) View {
	if v.Promo.Locked {
		return v
	}
	v.Promo.Rejected = true
	v.Promo.Message = msgPromoRejected
	return v
}
