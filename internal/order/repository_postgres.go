package order

import (
	"database/sql"
	"encoding/json"
)

// Postgres repository stores one row per order.
// Table layout expected:
//   "orderId" text primary key,
//   "orderNumber" serial unique,
//   "userId" int not null,
//   "mealType" text,
//   "menuId" int,
//   "selectedSabjis" jsonb,
//   "baseOption" text,
//   "extraRoti" int,
//   quantity int,
//   "deliveryAddress" jsonb,
//   pricing jsonb,
//   status text,
//   otp text,
//   "razorpayOrderId" text, "razorpayPaymentId" text, "razorpaySignature" text,
//   "estimatedDelivery" text, "deliveredAt" text, "createdAt" text

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const SelectOrderColumns = `"orderId", "orderNumber", "userId", "mealType", "menuId", "selectedSabjis", "baseOption", "extraRoti", quantity, "deliveryAddress", pricing, status, otp, "razorpayOrderId", "razorpayPaymentId", "razorpaySignature", "estimatedDelivery", "deliveredAt", "createdAt"`

const insertOrderQuery = `
	INSERT INTO orders ("orderId", "userId", "mealType", "menuId", "selectedSabjis", "baseOption", "extraRoti", quantity, "deliveryAddress", pricing, status, otp, "razorpayOrderId", "razorpayPaymentId", "razorpaySignature", "estimatedDelivery", "deliveredAt", "createdAt")
	VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,'','','','','',$13)
	RETURNING ` + SelectOrderColumns

const casStatusQuery = `
	UPDATE orders SET status=$3,
		"razorpayPaymentId" = CASE WHEN $4 <> '' THEN $4 ELSE "razorpayPaymentId" END,
		"razorpaySignature" = CASE WHEN $5 <> '' THEN $5 ELSE "razorpaySignature" END,
		"estimatedDelivery" = CASE WHEN $6 <> '' THEN $6 ELSE "estimatedDelivery" END,
		"deliveredAt"       = CASE WHEN $7 <> '' THEN $7 ELSE "deliveredAt" END
	WHERE "orderId"=$1 AND status=$2
	RETURNING ` + SelectOrderColumns

type rowScanner interface {
	Scan(dest ...any) error
}

// ScanOrder reads one row selected with SelectOrderColumns.
func ScanOrder(row rowScanner) (Order, error) {
	var ord Order
	var sabjisJSON, addressJSON, pricingJSON []byte
	err := row.Scan(&ord.ID, &ord.OrderNumber, &ord.UserID, &ord.MealType, &ord.MenuID,
		&sabjisJSON, &ord.BaseOption, &ord.ExtraRoti, &ord.Quantity,
		&addressJSON, &pricingJSON, &ord.Status, &ord.OTP,
		&ord.RazorpayOrderID, &ord.RazorpayPaymentID, &ord.RazorpaySignature,
		&ord.EstimatedDelivery, &ord.DeliveredAt, &ord.CreatedAt)
	if err != nil {
		return Order{}, err
	}
	json.Unmarshal(sabjisJSON, &ord.SelectedSabjis)
	json.Unmarshal(addressJSON, &ord.DeliveryAddress)
	json.Unmarshal(pricingJSON, &ord.Pricing)
	return ord, nil
}

func (r *PostgresRepository) Create(ord Order) (Order, error) {
	sabjisJSON, err := json.Marshal(ord.SelectedSabjis)
	if err != nil {
		return Order{}, err
	}
	addressJSON, err := json.Marshal(ord.DeliveryAddress)
	if err != nil {
		return Order{}, err
	}
	pricingJSON, err := json.Marshal(ord.Pricing)
	if err != nil {
		return Order{}, err
	}

	row := r.db.QueryRow(insertOrderQuery,
		ord.ID, ord.UserID, ord.MealType, ord.MenuID, sabjisJSON, ord.BaseOption,
		ord.ExtraRoti, ord.Quantity, addressJSON, pricingJSON, ord.Status, ord.OTP, ord.CreatedAt)
	return ScanOrder(row)
}

func (r *PostgresRepository) GetByID(id string) (Order, error) {
	row := r.db.QueryRow(`SELECT `+SelectOrderColumns+` FROM orders WHERE "orderId" = $1`, id)
	ord, err := ScanOrder(row)
	if err == sql.ErrNoRows {
		return Order{}, ErrNotFound
	}
	return ord, err
}

func (r *PostgresRepository) ListByUser(userID int) ([]Order, error) {
	rows, err := r.db.Query(`SELECT `+SelectOrderColumns+` FROM orders WHERE "userId" = $1 ORDER BY "createdAt" DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]Order, 0)
	for rows.Next() {
		ord, err := ScanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, ord)
	}
	return orders, rows.Err()
}

func (r *PostgresRepository) SetGatewayOrderID(id, razorpayOrderID string) error {
	res, err := r.db.Exec(`UPDATE orders SET "razorpayOrderId"=$2 WHERE "orderId"=$1`, id, razorpayOrderID)
	if err != nil {
		return err
	}
	cnt, _ := res.RowsAffected()
	if cnt == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) CompareAndSetStatus(id string, from, to Status, set StatusUpdate) (Order, bool, error) {
	row := r.db.QueryRow(casStatusQuery, id, from, to,
		set.RazorpayPaymentID, set.RazorpaySignature, set.EstimatedDelivery, set.DeliveredAt)
	ord, err := ScanOrder(row)
	if err == sql.ErrNoRows {
		// row missing or status moved; let the caller re-read and decide
		if _, getErr := r.GetByID(id); getErr == ErrNotFound {
			return Order{}, false, ErrNotFound
		}
		return Order{}, false, nil
	}
	if err != nil {
		return Order{}, false, err
	}
	return ord, true, nil
}
