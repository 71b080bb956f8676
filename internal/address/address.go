package address

import "strings"

// Address is one saved delivery location. The list per user is append-only
// and deduplicated; orders copy a snapshot instead of referencing rows here.
type Address struct {
	AddressID int      `json:"addressId"`
	UserID    int      `json:"userId"`
	Label     string   `json:"label"`
	Address   string   `json:"address"`
	Lat       *float64 `json:"lat,omitempty"`
	Lng       *float64 `json:"lng,omitempty"`
	Phone     string   `json:"phoneNumber,omitempty"`
	CreatedAt string   `json:"createdAt,omitempty"`
}

// Normalize collapses whitespace and case so "12  MG Road" and "12 mg road"
// count as the same saved address.
func Normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
