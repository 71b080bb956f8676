package pricing

import "errors"

var (
	ErrInvalidSelection = errors.New("select between 1 and 2 sabjis")
	ErrInvalidQuantity  = errors.New("quantity must be between 1 and 5")
)

// Prices are whole rupees throughout.
const (
	DefaultBasePrice    = 60
	SpecialSabjiCharge  = 20
	ExtraRotiUnitPrice  = 10
	DeliveryFee         = 0
	bulkDiscountMinQty  = 3
	discountPercent     = 5
	taxPercent          = 5
	MinQuantity         = 1
	MaxQuantity         = 5
	MaxSelectedSabjis   = 2
)

// SelectedSabji is a side dish chosen for a thali. The isSpecial flag drives
// the surcharge.
type SelectedSabji struct {
	Name      string `json:"name"`
	ImageURL  string `json:"imageUrl"`
	IsSpecial bool   `json:"isSpecial"`
}

// Breakdown is the frozen price snapshot stored on an order.
type Breakdown struct {
	BasePrice         int `json:"basePrice"`
	SpecialSabjiPrice int `json:"specialSabjiPrice"`
	ExtraRotiPrice    int `json:"extraRotiPrice"`
	Subtotal          int `json:"subtotal"`
	Discount          int `json:"discount"`
	Tax               int `json:"tax"`
	DeliveryFee       int `json:"deliveryFee"`
	Total             int `json:"total"`
}

// Compute builds the full breakdown for one order. It never trusts amounts
// from the client; callers pass the menu base price and raw selections only.
//
// The special sabji charge is flat: one or two special sabjis cost the same
// extra 20 rupees. That matches the live behaviour and stays until product
// decides otherwise.
func Compute(basePrice int, sabjis []SelectedSabji, extraRoti, quantity int) (Breakdown, error) {
	if len(sabjis) < 1 || len(sabjis) > MaxSelectedSabjis {
		return Breakdown{}, ErrInvalidSelection
	}
	if quantity < MinQuantity || quantity > MaxQuantity {
		return Breakdown{}, ErrInvalidQuantity
	}
	if basePrice <= 0 {
		basePrice = DefaultBasePrice
	}
	if extraRoti < 0 {
		extraRoti = 0
	}

	special := 0
	for _, s := range sabjis {
		if s.IsSpecial {
			special = SpecialSabjiCharge
			break
		}
	}

	extraRotiPrice := extraRoti * ExtraRotiUnitPrice
	perThali := basePrice + special + extraRotiPrice
	subtotal := perThali * quantity

	discount := 0
	if quantity >= bulkDiscountMinQty {
		discount = roundPercent(subtotal, discountPercent)
	}
	tax := roundPercent(subtotal-discount, taxPercent)

	return Breakdown{
		BasePrice:         basePrice,
		SpecialSabjiPrice: special,
		ExtraRotiPrice:    extraRotiPrice,
		Subtotal:          subtotal,
		Discount:          discount,
		Tax:               tax,
		DeliveryFee:       DeliveryFee,
		Total:             subtotal - discount + tax + DeliveryFee,
	}, nil
}

// roundPercent returns pct% of amount rounded half-up, in integer rupees.
func roundPercent(amount, pct int) int {
	return (amount*pct + 50) / 100
}
