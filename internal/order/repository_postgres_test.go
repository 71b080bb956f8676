package order

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

var orderCols = []string{"orderId", "orderNumber", "userId", "mealType", "menuId", "selectedSabjis", "baseOption", "extraRoti", "quantity", "deliveryAddress", "pricing", "status", "otp", "razorpayOrderId", "razorpayPaymentId", "razorpaySignature", "estimatedDelivery", "deliveredAt", "createdAt"}

func orderRow(id string, status Status) *sqlmock.Rows {
	return sqlmock.NewRows(orderCols).
		AddRow(id, 100001, 42, "lunch", 1, []byte(`[{"name":"Aloo Gobi","imageUrl":"","isSpecial":false}]`),
			"5 Roti", 0, 1, []byte(`{"label":"Room","address":"Hostel B"}`), []byte(`{"basePrice":60,"total":63}`),
			status, "1234", "order_rzp_1", "", "", "", "", "2026-01-10T09:00:00Z")
}

func TestCompareAndSetStatus_Applies(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	id := "a1b2c3d4e5f6a7b8c9d0e1f2"
	mock.ExpectQuery("UPDATE orders SET status").
		WithArgs(id, StatusPending, StatusPaid, "pay_1", "sig_1", "2026-01-10T09:45:00Z", "").
		WillReturnRows(orderRow(id, StatusPaid))

	ord, ok, err := repo.CompareAndSetStatus(id, StatusPending, StatusPaid, StatusUpdate{
		RazorpayPaymentID: "pay_1",
		RazorpaySignature: "sig_1",
		EstimatedDelivery: "2026-01-10T09:45:00Z",
	})
	if err != nil {
		t.Fatalf("cas failed: %v", err)
	}
	if !ok {
		t.Fatalf("expected cas to apply")
	}
	if ord.Status != StatusPaid {
		t.Fatalf("expected paid, got %s", ord.Status)
	}
	if len(ord.SelectedSabjis) != 1 || ord.SelectedSabjis[0].Name != "Aloo Gobi" {
		t.Fatalf("jsonb sabjis not decoded: %+v", ord.SelectedSabjis)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCompareAndSetStatus_StatusMoved(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	id := "a1b2c3d4e5f6a7b8c9d0e1f2"
	// update matches no row, then the re-read finds the order cancelled
	mock.ExpectQuery("UPDATE orders SET status").
		WillReturnRows(sqlmock.NewRows(orderCols))
	mock.ExpectQuery("SELECT .* FROM orders").
		WithArgs(id).
		WillReturnRows(orderRow(id, StatusCancelled))

	_, ok, err := repo.CompareAndSetStatus(id, StatusPending, StatusPaid, StatusUpdate{})
	if err != nil {
		t.Fatalf("expected no error on a lost race, got %v", err)
	}
	if ok {
		t.Fatalf("expected cas not to apply")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCompareAndSetStatus_MissingOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("UPDATE orders SET status").
		WillReturnRows(sqlmock.NewRows(orderCols))
	mock.ExpectQuery("SELECT .* FROM orders").
		WillReturnRows(sqlmock.NewRows(orderCols))

	_, _, err = repo.CompareAndSetStatus("ffffffffffffffffffffffff", StatusPending, StatusPaid, StatusUpdate{})
	if err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresCreate_RoundTrips(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	id := "a1b2c3d4e5f6a7b8c9d0e1f2"
	mock.ExpectQuery("INSERT INTO orders").
		WillReturnRows(orderRow(id, StatusPending))

	ord, err := repo.Create(Order{ID: id, UserID: 42, Status: StatusPending})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if ord.OrderNumber != 100001 {
		t.Fatalf("expected serial order number from RETURNING, got %d", ord.OrderNumber)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
