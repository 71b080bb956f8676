package menu

import "github.com/skfood/thali-backend/internal/pricing"

// Menu is the published thali for one meal type. There is at most one live
// menu per meal type; publishing replaces the sabji list and base price.
type Menu struct {
	MenuID      int                     `json:"menuId"`
	MealType    string                  `json:"mealType"` // "lunch" or "dinner"
	BasePrice   int                     `json:"basePrice"`
	Sabjis      []pricing.SelectedSabji `json:"listOfSabjis"`
	BaseOptions []string                `json:"baseOptions"`
	CreatedAt   string                  `json:"createdAt,omitempty"`
	UpdatedAt   string                  `json:"updatedAt,omitempty"`
}

const (
	MealLunch  = "lunch"
	MealDinner = "dinner"
)

// HasSabji reports whether the menu offers a sabji with the given name.
func (m Menu) HasSabji(name string) bool {
	for _, s := range m.Sabjis {
		if s.Name == name {
			return true
		}
	}
	return false
}

// SabjiByName returns the menu's own record for a sabji, so orders snapshot
// the server-side isSpecial flag instead of whatever the client sent.
func (m Menu) SabjiByName(name string) (pricing.SelectedSabji, bool) {
	for _, s := range m.Sabjis {
		if s.Name == name {
			return s, true
		}
	}
	return pricing.SelectedSabji{}, false
}
