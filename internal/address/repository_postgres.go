package address

import "database/sql"

// Postgres repository stores addresses in a dedicated table with a foreign
// key to users.
// Table layout expected:
//   "addressId" serial primary key,
//   "userId" int not null,
//   label text,
//   address text,
//   lat double precision,
//   lng double precision,
//   phone text,
//   "createdAt" text

type PostgresRepository struct {
	db *sql.DB
}

const (
	selectAddressQuery = `
		SELECT "addressId", "userId", label, address, lat, lng, phone, "createdAt"
		FROM address WHERE "userId" = $1 ORDER BY "addressId"
	`
	insertAddressQuery = `
		INSERT INTO address ("userId", label, address, lat, lng, phone, "createdAt")
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING "addressId", "userId", label, address, lat, lng, phone, "createdAt"
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetAddresses(userID int) ([]Address, error) {
	if userID <= 0 {
		return nil, ErrNotFound
	}
	rows, err := r.db.Query(selectAddressQuery, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Address, 0)
	for rows.Next() {
		var a Address
		if err := rows.Scan(&a.AddressID, &a.UserID, &a.Label, &a.Address, &a.Lat, &a.Lng, &a.Phone, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) AddAddress(a Address) (Address, error) {
	var saved Address
	err := r.db.QueryRow(insertAddressQuery, a.UserID, a.Label, a.Address, a.Lat, a.Lng, a.Phone, a.CreatedAt).
		Scan(&saved.AddressID, &saved.UserID, &saved.Label, &saved.Address, &saved.Lat, &saved.Lng, &saved.Phone, &saved.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return saved, ErrNotFound
		}
		return saved, err
	}
	return saved, nil
}
