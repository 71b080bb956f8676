package menu

import (
	"database/sql"
	"encoding/json"

	"github.com/lib/pq"
)

// Postgres repository reads the published menus.
// Table layout expected:
//   "menuId" serial primary key,
//   "mealType" text unique,
//   "basePrice" int,
//   sabjis jsonb,
//   "baseOptions" text[],
//   "createdAt" text,
//   "updatedAt" text

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectMenuColumns = `"menuId", "mealType", "basePrice", sabjis, "baseOptions", "createdAt", "updatedAt"`

func (r *PostgresRepository) GetByID(menuID int) (Menu, error) {
	row := r.db.QueryRow(`SELECT `+selectMenuColumns+` FROM menus WHERE "menuId" = $1`, menuID)
	return scanMenu(row)
}

func (r *PostgresRepository) GetByMealType(mealType string) (Menu, error) {
	row := r.db.QueryRow(`SELECT `+selectMenuColumns+` FROM menus WHERE "mealType" = $1`, mealType)
	return scanMenu(row)
}

func scanMenu(row *sql.Row) (Menu, error) {
	var m Menu
	var sabjisJSON []byte
	if err := row.Scan(&m.MenuID, &m.MealType, &m.BasePrice, &sabjisJSON, pq.Array(&m.BaseOptions), &m.CreatedAt, &m.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return Menu{}, ErrNotFound
		}
		return Menu{}, err
	}
	json.Unmarshal(sabjisJSON, &m.Sabjis)
	return m, nil
}
