package admin

import "github.com/skfood/thali-backend/internal/order"

// Filter is the raw admin listing request before interpretation.
type Filter struct {
	Status string
	Search string
	Page   int
}

// ListQuery is a Filter after validation: at most one of OrderNumber and
// OrderID is set, and Status is a real status or empty for "all".
type ListQuery struct {
	Status      order.Status
	OrderNumber int
	OrderID     string
}

type Pagination struct {
	CurrentPage   int  `json:"currentPage"`
	TotalPages    int  `json:"totalPages"`
	TotalOrders   int  `json:"totalOrders"`
	OrdersPerPage int  `json:"ordersPerPage"`
	HasNextPage   bool `json:"hasNextPage"`
	HasPrevPage   bool `json:"hasPrevPage"`
}

// UserInfo is the contact block shown next to each order in the admin list.
type UserInfo struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

type OrderRow struct {
	order.Order
	UserInfo UserInfo `json:"userInfo"`
}

type ListResult struct {
	Orders     []OrderRow `json:"orders"`
	Pagination Pagination `json:"pagination"`
}

type Stats struct {
	Pending   int `json:"pending"`
	Paid      int `json:"paid"`
	Preparing int `json:"preparing"`
	OnTheWay  int `json:"onTheWay"`
	Delivered int `json:"delivered"`
	Cancelled int `json:"cancelled"`
	Total     int `json:"total"`
}
