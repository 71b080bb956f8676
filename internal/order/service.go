package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/skfood/thali-backend/internal/menu"
	"github.com/skfood/thali-backend/internal/pricing"
)

var (
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrAlreadyCancelled  = errors.New("order already cancelled")
	ErrAlreadyDelivered  = errors.New("order is already delivered")
	ErrOTPMismatch       = errors.New("incorrect OTP")
	ErrUnknownSabji      = errors.New("sabji not on menu")
	ErrInvalidBaseOption = errors.New("invalid base option")
	ErrGateway           = errors.New("payment gateway unavailable")
)

const estimatedDeliveryWindow = 45 * time.Minute

// PaymentGateway creates the remote payment order for a checkout. The
// receipt doubles as the idempotency key so a retried create cannot open a
// second remote order for the same thali order.
type PaymentGateway interface {
	CreateOrder(totalRupees int, receipt string, notes map[string]string) (string, error)
}

// Draft is a checkout request before the server prices it. Amounts are never
// read from it; sabjis are resolved against the menu by name so the client
// cannot smuggle a forged isSpecial flag.
type Draft struct {
	MealType        string
	MenuID          int
	SelectedSabjis  []string
	BaseOption      string
	ExtraRoti       int
	Quantity        int
	DeliveryAddress AddressSnapshot
}

type ServiceInterface interface {
	Create(userID int, draft Draft) (Order, error)
	GetByID(id string) (Order, error)
	GetForUser(userID int, id string) (Order, error)
	ListByUser(userID int) ([]Order, error)
	MarkPaid(id, razorpayPaymentID, razorpaySignature string) (Order, error)
	AdvanceStatus(id string, target Status) (Order, error)
	VerifyDeliveryOTP(id, providedOTP string) (Order, error)
}

// Service owns the order lifecycle. All transitions funnel through a
// compare-and-set on the stored status, so concurrent admin actions and
// client retries cannot double-apply.
type Service struct {
	repo    Repository
	menus   menu.ServiceInterface
	gateway PaymentGateway
}

func NewService(repo Repository, menus menu.ServiceInterface, gateway PaymentGateway) *Service {
	return &Service{repo: repo, menus: menus, gateway: gateway}
}

func (s *Service) Create(userID int, draft Draft) (Order, error) {
	if userID <= 0 {
		return Order{}, ErrForbidden
	}

	m, err := s.menus.GetByID(draft.MenuID)
	if err != nil {
		return Order{}, err
	}
	if draft.MealType != m.MealType {
		return Order{}, menu.ErrNotFound
	}

	if len(draft.SelectedSabjis) < 1 || len(draft.SelectedSabjis) > pricing.MaxSelectedSabjis {
		return Order{}, pricing.ErrInvalidSelection
	}
	sabjis := make([]pricing.SelectedSabji, 0, len(draft.SelectedSabjis))
	for _, name := range draft.SelectedSabjis {
		sabji, ok := m.SabjiByName(name)
		if !ok {
			return Order{}, ErrUnknownSabji
		}
		sabjis = append(sabjis, sabji)
	}

	if !validBaseOption(m, draft.BaseOption) {
		return Order{}, ErrInvalidBaseOption
	}

	breakdown, err := pricing.Compute(m.BasePrice, sabjis, draft.ExtraRoti, draft.Quantity)
	if err != nil {
		return Order{}, err
	}

	id, err := NewOrderID()
	if err != nil {
		return Order{}, err
	}
	otp, err := GenerateOTP()
	if err != nil {
		return Order{}, err
	}

	ord := Order{
		ID:              id,
		UserID:          userID,
		MealType:        draft.MealType,
		MenuID:          m.MenuID,
		SelectedSabjis:  sabjis,
		BaseOption:      draft.BaseOption,
		ExtraRoti:       draft.ExtraRoti,
		Quantity:        draft.Quantity,
		DeliveryAddress: draft.DeliveryAddress,
		Pricing:         breakdown,
		Status:          StatusPending,
		OTP:             otp,
		CreatedAt:       time.Now().UTC().Format(time.RFC3339),
	}

	created, err := s.repo.Create(ord)
	if err != nil {
		return Order{}, err
	}

	// The order stays pending if the gateway call fails; the client retries
	// with a fresh checkout request.
	gatewayOrderID, err := s.gateway.CreateOrder(created.Pricing.Total, created.ID, map[string]string{
		"orderId":  created.ID,
		"mealType": created.MealType,
	})
	if err != nil {
		return Order{}, fmt.Errorf("%w: %v", ErrGateway, err)
	}
	if err := s.repo.SetGatewayOrderID(created.ID, gatewayOrderID); err != nil {
		return Order{}, err
	}
	created.RazorpayOrderID = gatewayOrderID

	return created, nil
}

func validBaseOption(m menu.Menu, option string) bool {
	options := m.BaseOptions
	if len(options) == 0 {
		options = defaultBaseOptions
	}
	for _, o := range options {
		if o == option {
			return true
		}
	}
	return false
}

func (s *Service) GetByID(id string) (Order, error) {
	return s.repo.GetByID(id)
}

func (s *Service) GetForUser(userID int, id string) (Order, error) {
	ord, err := s.repo.GetByID(id)
	if err != nil {
		return Order{}, err
	}
	if ord.UserID != userID {
		return Order{}, ErrForbidden
	}
	return ord, nil
}

func (s *Service) ListByUser(userID int) ([]Order, error) {
	if userID <= 0 {
		return nil, ErrForbidden
	}
	return s.repo.ListByUser(userID)
}

// MarkPaid records a verified payment. Re-delivering an already applied
// confirmation is a no-op success, never a duplicate side effect.
func (s *Service) MarkPaid(id, razorpayPaymentID, razorpaySignature string) (Order, error) {
	ord, err := s.repo.GetByID(id)
	if err != nil {
		return Order{}, err
	}
	switch ord.Status {
	case StatusCancelled:
		return Order{}, ErrAlreadyCancelled
	case StatusPaid, StatusPreparing, StatusOnTheWay, StatusDelivered:
		return ord, nil
	}

	eta := time.Now().UTC().Add(estimatedDeliveryWindow).Format(time.RFC3339)
	updated, ok, err := s.repo.CompareAndSetStatus(id, StatusPending, StatusPaid, StatusUpdate{
		RazorpayPaymentID: razorpayPaymentID,
		RazorpaySignature: razorpaySignature,
		EstimatedDelivery: eta,
	})
	if err != nil {
		return Order{}, err
	}
	if !ok {
		// someone else moved the order while we were looking; re-read
		current, err := s.repo.GetByID(id)
		if err != nil {
			return Order{}, err
		}
		if current.Status == StatusCancelled {
			return Order{}, ErrAlreadyCancelled
		}
		return current, nil
	}
	return updated, nil
}

// AdvanceStatus applies one legal edge of the status graph.
func (s *Service) AdvanceStatus(id string, target Status) (Order, error) {
	if !ValidStatus(target) {
		return Order{}, ErrInvalidTransition
	}
	ord, err := s.repo.GetByID(id)
	if err != nil {
		return Order{}, err
	}
	if ord.Status == target {
		return ord, nil
	}
	if !CanTransition(ord.Status, target) {
		return Order{}, ErrInvalidTransition
	}

	var set StatusUpdate
	if target == StatusDelivered {
		set.DeliveredAt = time.Now().UTC().Format(time.RFC3339)
	}
	updated, ok, err := s.repo.CompareAndSetStatus(id, ord.Status, target, set)
	if err != nil {
		return Order{}, err
	}
	if !ok {
		current, err := s.repo.GetByID(id)
		if err != nil {
			return Order{}, err
		}
		if current.Status == target {
			return current, nil
		}
		return Order{}, ErrInvalidTransition
	}
	return updated, nil
}

// VerifyDeliveryOTP checks the handoff code and marks the order delivered.
// The provided value is trimmed but otherwise compared exactly.
func (s *Service) VerifyDeliveryOTP(id, providedOTP string) (Order, error) {
	ord, err := s.repo.GetByID(id)
	if err != nil {
		return Order{}, err
	}
	if ord.Status == StatusDelivered {
		return Order{}, ErrAlreadyDelivered
	}
	if strings.TrimSpace(providedOTP) != ord.OTP {
		return Order{}, ErrOTPMismatch
	}
	return s.AdvanceStatus(id, StatusDelivered)
}
