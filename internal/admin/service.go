package admin

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/skfood/thali-backend/internal/order"
	"github.com/skfood/thali-backend/internal/user"
)

var ErrInvalidStatus = errors.New("invalid status filter")

var hexIDPattern = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

const ordersPerPage = 10

// Service answers the admin dashboard's order queries.
type Service struct {
	repo  Repository
	users user.ServiceInterface
}

func NewService(repo Repository, users user.ServiceInterface) *Service {
	return &Service{repo: repo, users: users}
}

// List filters, searches and paginates orders. A search term that is neither
// an order number nor a 24-hex order id matches nothing: that is an empty
// page, not an error.
func (s *Service) List(f Filter) (ListResult, error) {
	page := f.Page
	if page < 1 {
		page = 1
	}

	var q ListQuery
	status := strings.ToLower(strings.TrimSpace(f.Status))
	if status != "" && status != "all" {
		if !order.ValidStatus(order.Status(status)) {
			return ListResult{}, ErrInvalidStatus
		}
		q.Status = order.Status(status)
	}

	if search := strings.TrimSpace(f.Search); search != "" {
		if n, err := strconv.Atoi(search); err == nil && n > 0 {
			q.OrderNumber = n
		} else if hexIDPattern.MatchString(search) {
			q.OrderID = search
		} else {
			return emptyResult(page), nil
		}
	}

	offset := (page - 1) * ordersPerPage
	orders, total, err := s.repo.List(q, ordersPerPage, offset)
	if err != nil {
		return ListResult{}, err
	}

	rows := s.enrich(orders)
	totalPages := (total + ordersPerPage - 1) / ordersPerPage

	return ListResult{
		Orders: rows,
		Pagination: Pagination{
			CurrentPage:   page,
			TotalPages:    totalPages,
			TotalOrders:   total,
			OrdersPerPage: ordersPerPage,
			HasNextPage:   page < totalPages,
			HasPrevPage:   page > 1,
		},
	}, nil
}

func emptyResult(page int) ListResult {
	return ListResult{
		Orders: []OrderRow{},
		Pagination: Pagination{
			CurrentPage:   page,
			OrdersPerPage: ordersPerPage,
			HasPrevPage:   page > 1,
		},
	}
}

// enrich attaches user contact info to each row. A missing user degrades to
// placeholders; the listing itself never fails on it.
func (s *Service) enrich(orders []order.Order) []OrderRow {
	idSet := map[int]struct{}{}
	for _, ord := range orders {
		idSet[ord.UserID] = struct{}{}
	}
	ids := make([]int, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	byID := map[int]user.User{}
	if users, err := s.users.ListByIDs(ids); err == nil {
		for _, u := range users {
			byID[u.ID] = u
		}
	}

	rows := make([]OrderRow, 0, len(orders))
	for _, ord := range orders {
		info := UserInfo{Name: "Unknown", Phone: "N/A", Email: "N/A"}
		if u, ok := byID[ord.UserID]; ok {
			info.Name = u.Name
			info.Email = u.Email
			if u.Phone != "" {
				info.Phone = u.Phone
			}
		}
		if info.Phone == "N/A" && ord.DeliveryAddress.Phone != "" {
			info.Phone = ord.DeliveryAddress.Phone
		}
		rows = append(rows, OrderRow{Order: ord, UserInfo: info})
	}
	return rows
}

// Stats issues one count per status concurrently and merges the results.
func (s *Service) Stats() (Stats, error) {
	var st Stats
	counts := []struct {
		status order.Status
		dst    *int
	}{
		{order.StatusPending, &st.Pending},
		{order.StatusPaid, &st.Paid},
		{order.StatusPreparing, &st.Preparing},
		{order.StatusOnTheWay, &st.OnTheWay},
		{order.StatusDelivered, &st.Delivered},
		{order.StatusCancelled, &st.Cancelled},
	}

	var g errgroup.Group
	for _, c := range counts {
		g.Go(func() error {
			n, err := s.repo.CountByStatus(c.status)
			if err != nil {
				return err
			}
			*c.dst = n
			return nil
		})
	}
	g.Go(func() error {
		n, err := s.repo.CountAll()
		if err != nil {
			return err
		}
		st.Total = n
		return nil
	})

	if err := g.Wait(); err != nil {
		return Stats{}, err
	}
	return st, nil
}
