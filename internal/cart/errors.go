package cart

import "errors"

var (
	ErrEmptyOwnerID        = errors.New("ownerID is empty")
	ErrEmptyProductID      = errors.New("product id is empty")
	ErrNegativePrice       = errors.New("price is negative")
	ErrCurrencyMismatch    = errors.New("price currency does not match cart currency")
	ErrEmptyPromoCode      = errors.New("promo code is empty")
	ErrInvalidPromoCode    = errors.New("invalid promo code")
	ErrPromoAlreadyApplied = errors.New("promo code already applied")
)
