package payment

import (
	"errors"
	"fmt"

	"github.com/skfood/thali-backend/internal/order"
)

var (
	ErrSignatureMismatch = errors.New("payment verification failed")
	ErrInvalidCallback   = errors.New("invalid payment callback")
)

// Callback is the typed form of a payment completion callback. Gateway
// payloads arrive in loose shapes; everything is validated into this value
// before the lifecycle manager sees it. Amounts and status fields from the
// callback are ignored on purpose: only the signature authorizes anything.
type Callback struct {
	OrderID           string `json:"orderId"`
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
}

func (cb Callback) validate() error {
	switch {
	case cb.OrderID == "":
		return fmt.Errorf("%w: orderId is required", ErrInvalidCallback)
	case cb.RazorpayOrderID == "":
		return fmt.Errorf("%w: razorpay_order_id is required", ErrInvalidCallback)
	case cb.RazorpayPaymentID == "":
		return fmt.Errorf("%w: razorpay_payment_id is required", ErrInvalidCallback)
	case cb.RazorpaySignature == "":
		return fmt.Errorf("%w: razorpay_signature is required", ErrInvalidCallback)
	}
	return nil
}

// Orders is the slice of the order service the adapter needs.
type Orders interface {
	GetByID(id string) (order.Order, error)
	MarkPaid(id, razorpayPaymentID, razorpaySignature string) (order.Order, error)
}

// Service verifies payment completion callbacks and marks orders paid. It is
// the single place payment verification happens for every flow.
type Service struct {
	orders Orders
	secret string
}

func NewService(orders Orders, secret string) *Service {
	return &Service{orders: orders, secret: secret}
}

// VerifyPayment checks that the callback was signed by the gateway and, on
// success, marks the order paid. MarkPaid is idempotent, so a re-delivered
// callback for an already paid order succeeds without a second side effect.
func (s *Service) VerifyPayment(userID int, cb Callback) (order.Order, error) {
	if err := cb.validate(); err != nil {
		return order.Order{}, err
	}

	ord, err := s.orders.GetByID(cb.OrderID)
	if err != nil {
		return order.Order{}, err
	}
	if ord.UserID != userID {
		return order.Order{}, order.ErrForbidden
	}

	// The callback must reference the gateway order we opened for this
	// order; a valid signature over someone else's pair proves nothing.
	if ord.RazorpayOrderID != "" && ord.RazorpayOrderID != cb.RazorpayOrderID {
		return order.Order{}, ErrSignatureMismatch
	}
	if !VerifySignature(cb.RazorpayOrderID, cb.RazorpayPaymentID, cb.RazorpaySignature, s.secret) {
		return order.Order{}, ErrSignatureMismatch
	}

	return s.orders.MarkPaid(cb.OrderID, cb.RazorpayPaymentID, cb.RazorpaySignature)
}
