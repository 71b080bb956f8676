package order

import "github.com/skfood/thali-backend/internal/pricing"

// Status is the delivery lifecycle state of an order.
type Status string

const (
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusPreparing Status = "preparing"
	StatusOnTheWay  Status = "on-the-way"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

// transitions is the only legal set of status edges. Anything else is
// rejected with ErrInvalidTransition.
var transitions = map[Status][]Status{
	StatusPending:   {StatusPaid, StatusCancelled},
	StatusPaid:      {StatusPreparing, StatusCancelled},
	StatusPreparing: {StatusOnTheWay},
	StatusOnTheWay:  {StatusDelivered},
}

func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusPaid, StatusPreparing, StatusOnTheWay, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Base options a thali can be built on.
const (
	BaseRotiOnly = "5 Roti"
	BaseRotiRice = "3 Roti + Rice"
	BaseRiceOnly = "Rice Only"
)

var defaultBaseOptions = []string{BaseRotiOnly, BaseRotiRice, BaseRiceOnly}

// AddressSnapshot is the delivery address frozen onto the order at checkout.
// Later edits to the user's address book never touch past orders.
type AddressSnapshot struct {
	Label   string   `json:"label"`
	Address string   `json:"address"`
	Lat     *float64 `json:"lat,omitempty"`
	Lng     *float64 `json:"lng,omitempty"`
	Phone   string   `json:"phoneNumber,omitempty"`
}

// Order is one thali purchase. It is created once at checkout with a frozen
// pricing snapshot and OTP, mutated only through status transitions, and
// never deleted.
type Order struct {
	ID             string                  `json:"orderId"`
	OrderNumber    int                     `json:"orderNumber"`
	UserID         int                     `json:"userId"`
	MealType       string                  `json:"mealType"`
	MenuID         int                     `json:"menuId"`
	SelectedSabjis []pricing.SelectedSabji `json:"selectedSabjis"`
	BaseOption     string                  `json:"baseOption"`
	ExtraRoti      int                     `json:"extraRoti"`
	Quantity       int                     `json:"quantity"`

	DeliveryAddress AddressSnapshot   `json:"deliveryAddress"`
	Pricing         pricing.Breakdown `json:"pricing"`

	Status Status `json:"status"`
	OTP    string `json:"otp,omitempty"`

	RazorpayOrderID   string `json:"razorpayOrderId,omitempty"`
	RazorpayPaymentID string `json:"razorpayPaymentId,omitempty"`
	RazorpaySignature string `json:"-"`

	EstimatedDelivery string `json:"estimatedDelivery,omitempty"`
	DeliveredAt       string `json:"deliveredAt,omitempty"`
	CreatedAt         string `json:"createdAt"`
}
