package cart

type NoticeLevel string

const (
	NoticeSuccess NoticeLevel = "success"
	NoticeInfo    NoticeLevel = "info"
	NoticeWarning NoticeLevel = "warning"
	NoticeError   NoticeLevel = "error"
)

// Notice is a user-facing toast message produced by a cart operation.
type Notice struct {
	Level   NoticeLevel `json:"level"`
	Message string      `json:"message"`
}

// maxNotices bounds the queue of a session nobody reads notices from.
const maxNotices = 20

const (
	msgAdded        = "Added to cart!"
	msgRemoved      = "Removed from cart"
	msgCleared      = "Cart cleared"
	msgPromoInvalid = "Invalid promo code"
	msgPromoLocked  = "Promo code already applied"
	msgSaveFailed   = "Could not save your cart; changes are kept for this session"
)
