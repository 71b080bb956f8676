package order

import (
	"errors"
	"strings"
	"testing"

	"github.com/skfood/thali-backend/internal/menu"
	"github.com/skfood/thali-backend/internal/pricing"
)

type stubGateway struct {
	orderID string
	err     error
	calls   int
}

func (g *stubGateway) CreateOrder(totalRupees int, receipt string, notes map[string]string) (string, error) {
	g.calls++
	if g.err != nil {
		return "", g.err
	}
	return g.orderID, nil
}

func testMenu() menu.Menu {
	return menu.Menu{
		MenuID:    1,
		MealType:  menu.MealLunch,
		BasePrice: 60,
		Sabjis: []pricing.SelectedSabji{
			{Name: "Aloo Gobi"},
			{Name: "Dal Fry"},
			{Name: "Paneer Butter Masala", IsSpecial: true},
		},
		BaseOptions: []string{BaseRotiOnly, BaseRotiRice, BaseRiceOnly},
	}
}

func newTestService(gw *stubGateway) (*Service, *InMemoryRepository) {
	repo := NewInMemoryRepository()
	menus := menu.NewService(menu.NewInMemoryRepository([]menu.Menu{testMenu()}))
	return NewService(repo, menus, gw), repo
}

func draftFor(sabjis ...string) Draft {
	return Draft{
		MealType:       menu.MealLunch,
		MenuID:         1,
		SelectedSabjis: sabjis,
		BaseOption:     BaseRotiOnly,
		ExtraRoti:      0,
		Quantity:       1,
		DeliveryAddress: AddressSnapshot{
			Label:   "Room",
			Address: "Hostel B, Room 214",
			Phone:   "9876500000",
		},
	}
}

func TestCreate_PricesServerSide(t *testing.T) {
	gw := &stubGateway{orderID: "order_rzp_1"}
	svc, _ := newTestService(gw)

	ord, err := svc.Create(42, draftFor("Aloo Gobi"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if ord.Status != StatusPending {
		t.Fatalf("expected pending, got %s", ord.Status)
	}
	if ord.Pricing.Total != 63 {
		t.Fatalf("expected total 63, got %d", ord.Pricing.Total)
	}
	if len(ord.OTP) != 4 {
		t.Fatalf("expected 4-digit OTP, got %q", ord.OTP)
	}
	if len(ord.ID) != 24 {
		t.Fatalf("expected 24-char order id, got %q", ord.ID)
	}
	if ord.RazorpayOrderID != "order_rzp_1" {
		t.Fatalf("gateway order id not recorded, got %q", ord.RazorpayOrderID)
	}
	if gw.calls != 1 {
		t.Fatalf("expected 1 gateway call, got %d", gw.calls)
	}
}

func TestCreate_SpecialSurchargeFromMenuNotClient(t *testing.T) {
	gw := &stubGateway{orderID: "order_rzp_2"}
	svc, _ := newTestService(gw)

	// the client only sends names; isSpecial comes from the menu record
	ord, err := svc.Create(42, draftFor("Aloo Gobi", "Paneer Butter Masala"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if ord.Pricing.SpecialSabjiPrice != 20 {
		t.Fatalf("expected special surcharge 20, got %d", ord.Pricing.SpecialSabjiPrice)
	}
	if ord.Pricing.Total != 84 {
		t.Fatalf("expected total 84, got %d", ord.Pricing.Total)
	}
	special := false
	for _, s := range ord.SelectedSabjis {
		if s.Name == "Paneer Butter Masala" && s.IsSpecial {
			special = true
		}
	}
	if !special {
		t.Fatalf("menu's isSpecial flag not snapshotted onto the order")
	}
}

func TestCreate_Validation(t *testing.T) {
	gw := &stubGateway{orderID: "order_rzp_3"}
	svc, _ := newTestService(gw)

	if _, err := svc.Create(42, draftFor("Tofu Curry")); !errors.Is(err, ErrUnknownSabji) {
		t.Fatalf("expected ErrUnknownSabji, got %v", err)
	}

	d := draftFor("Aloo Gobi")
	d.BaseOption = "6 Roti"
	if _, err := svc.Create(42, d); !errors.Is(err, ErrInvalidBaseOption) {
		t.Fatalf("expected ErrInvalidBaseOption, got %v", err)
	}

	d = draftFor("Aloo Gobi")
	d.Quantity = 6
	if _, err := svc.Create(42, d); !errors.Is(err, pricing.ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}

	d = draftFor("Aloo Gobi", "Dal Fry")
	d.SelectedSabjis = append(d.SelectedSabjis, "Paneer Butter Masala")
	if _, err := svc.Create(42, d); !errors.Is(err, pricing.ErrInvalidSelection) {
		t.Fatalf("expected ErrInvalidSelection for 3 sabjis, got %v", err)
	}

	d = draftFor("Aloo Gobi")
	d.MealType = menu.MealDinner
	if _, err := svc.Create(42, d); !errors.Is(err, menu.ErrNotFound) {
		t.Fatalf("expected menu mismatch error, got %v", err)
	}

	if gw.calls != 0 {
		t.Fatalf("gateway must not be called for invalid drafts, got %d calls", gw.calls)
	}
}

func TestCreate_GatewayFailureKeepsOrderPending(t *testing.T) {
	gw := &stubGateway{err: errors.New("connection refused")}
	svc, repo := newTestService(gw)

	if _, err := svc.Create(42, draftFor("Aloo Gobi")); !errors.Is(err, ErrGateway) {
		t.Fatalf("expected ErrGateway, got %v", err)
	}

	orders, _ := repo.ListByUser(42)
	if len(orders) != 1 {
		t.Fatalf("expected the order persisted before the gateway call, got %d orders", len(orders))
	}
	if orders[0].Status != StatusPending {
		t.Fatalf("expected pending after gateway failure, got %s", orders[0].Status)
	}
}

func TestMarkPaid_Idempotent(t *testing.T) {
	gw := &stubGateway{orderID: "order_rzp_4"}
	svc, _ := newTestService(gw)
	ord, err := svc.Create(42, draftFor("Aloo Gobi"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	paid, err := svc.MarkPaid(ord.ID, "pay_1", "sig_1")
	if err != nil {
		t.Fatalf("mark paid failed: %v", err)
	}
	if paid.Status != StatusPaid {
		t.Fatalf("expected paid, got %s", paid.Status)
	}
	if paid.EstimatedDelivery == "" {
		t.Fatalf("expected estimatedDelivery stamped on payment")
	}
	if paid.RazorpayPaymentID != "pay_1" {
		t.Fatalf("payment id not recorded")
	}

	// re-delivered confirmation is a no-op success
	again, err := svc.MarkPaid(ord.ID, "pay_other", "sig_other")
	if err != nil {
		t.Fatalf("second mark paid failed: %v", err)
	}
	if again.RazorpayPaymentID != "pay_1" {
		t.Fatalf("second confirmation must not overwrite payment id, got %q", again.RazorpayPaymentID)
	}

	// idempotent across later states too
	if _, err := svc.AdvanceStatus(ord.ID, StatusPreparing); err != nil {
		t.Fatalf("advance failed: %v", err)
	}
	later, err := svc.MarkPaid(ord.ID, "pay_late", "sig_late")
	if err != nil {
		t.Fatalf("mark paid on preparing order failed: %v", err)
	}
	if later.Status != StatusPreparing {
		t.Fatalf("expected preparing preserved, got %s", later.Status)
	}
}

func TestMarkPaid_CancelledOrder(t *testing.T) {
	gw := &stubGateway{orderID: "order_rzp_5"}
	svc, _ := newTestService(gw)
	ord, _ := svc.Create(42, draftFor("Aloo Gobi"))

	if _, err := svc.AdvanceStatus(ord.ID, StatusCancelled); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if _, err := svc.MarkPaid(ord.ID, "pay_1", "sig_1"); !errors.Is(err, ErrAlreadyCancelled) {
		t.Fatalf("expected ErrAlreadyCancelled, got %v", err)
	}
}

func TestAdvanceStatus_Edges(t *testing.T) {
	gw := &stubGateway{orderID: "order_rzp_6"}
	svc, _ := newTestService(gw)
	ord, _ := svc.Create(42, draftFor("Aloo Gobi"))

	// pending cannot skip payment
	if _, err := svc.AdvanceStatus(ord.ID, StatusPreparing); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition for pending->preparing, got %v", err)
	}

	// walk the happy path
	for _, target := range []Status{StatusPaid, StatusPreparing, StatusOnTheWay, StatusDelivered} {
		got, err := svc.AdvanceStatus(ord.ID, target)
		if err != nil {
			t.Fatalf("advance to %s failed: %v", target, err)
		}
		if got.Status != target {
			t.Fatalf("expected %s, got %s", target, got.Status)
		}
	}

	final, _ := svc.GetByID(ord.ID)
	if final.DeliveredAt == "" {
		t.Fatalf("expected deliveredAt stamped on delivery")
	}

	// delivered is terminal; repeating the last edge is a no-op success
	if _, err := svc.AdvanceStatus(ord.ID, StatusDelivered); err != nil {
		t.Fatalf("repeat of current status must succeed, got %v", err)
	}
	if _, err := svc.AdvanceStatus(ord.ID, StatusCancelled); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition for delivered->cancelled, got %v", err)
	}

	if _, err := svc.AdvanceStatus(ord.ID, Status("shipped")); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition for unknown status, got %v", err)
	}
	if _, err := svc.AdvanceStatus("ffffffffffffffffffffffff", StatusPaid); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown order, got %v", err)
	}
}

func TestVerifyDeliveryOTP(t *testing.T) {
	gw := &stubGateway{orderID: "order_rzp_7"}
	svc, _ := newTestService(gw)
	ord, _ := svc.Create(42, draftFor("Aloo Gobi"))

	// not out for delivery yet
	if _, err := svc.VerifyDeliveryOTP(ord.ID, ord.OTP); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition before on-the-way, got %v", err)
	}

	svc.AdvanceStatus(ord.ID, StatusPaid)
	svc.AdvanceStatus(ord.ID, StatusPreparing)
	svc.AdvanceStatus(ord.ID, StatusOnTheWay)

	wrongOTP := "0000"
	if ord.OTP == wrongOTP {
		wrongOTP = "1111"
	}
	if _, err := svc.VerifyDeliveryOTP(ord.ID, wrongOTP); !errors.Is(err, ErrOTPMismatch) {
		t.Fatalf("expected ErrOTPMismatch, got %v", err)
	}
	current, _ := svc.GetByID(ord.ID)
	if current.Status != StatusOnTheWay {
		t.Fatalf("mismatch must leave status unchanged, got %s", current.Status)
	}

	// surrounding whitespace is tolerated, nothing else
	delivered, err := svc.VerifyDeliveryOTP(ord.ID, "  "+ord.OTP+" \n")
	if err != nil {
		t.Fatalf("verify with padded OTP failed: %v", err)
	}
	if delivered.Status != StatusDelivered {
		t.Fatalf("expected delivered, got %s", delivered.Status)
	}

	if _, err := svc.VerifyDeliveryOTP(ord.ID, ord.OTP); !errors.Is(err, ErrAlreadyDelivered) {
		t.Fatalf("expected ErrAlreadyDelivered on repeat, got %v", err)
	}
}

func TestGetForUser_Ownership(t *testing.T) {
	gw := &stubGateway{orderID: "order_rzp_8"}
	svc, _ := newTestService(gw)
	ord, _ := svc.Create(42, draftFor("Aloo Gobi"))

	if _, err := svc.GetForUser(42, ord.ID); err != nil {
		t.Fatalf("owner lookup failed: %v", err)
	}
	if _, err := svc.GetForUser(7, ord.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for another user, got %v", err)
	}
}

func TestGenerateOTP_Shape(t *testing.T) {
	for i := 0; i < 50; i++ {
		otp, err := GenerateOTP()
		if err != nil {
			t.Fatalf("otp generation failed: %v", err)
		}
		if len(otp) != 4 || strings.TrimLeft(otp, "0123456789") != "" {
			t.Fatalf("expected 4 digits, got %q", otp)
		}
	}
}

func TestNewOrderID_Shape(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		id, err := NewOrderID()
		if err != nil {
			t.Fatalf("id generation failed: %v", err)
		}
		if len(id) != 24 || strings.ToLower(id) != id {
			t.Fatalf("expected 24 lowercase hex chars, got %q", id)
		}
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}
