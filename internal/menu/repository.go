package menu

import "errors"

var ErrNotFound = errors.New("menu not found")

type Repository interface {
	GetByID(menuID int) (Menu, error)
	GetByMealType(mealType string) (Menu, error)
}

// InMemoryRepository for tests
type InMemoryRepository struct {
	menus []Menu
}

func NewInMemoryRepository(seed []Menu) *InMemoryRepository {
	return &InMemoryRepository{menus: seed}
}

func (r *InMemoryRepository) GetByID(menuID int) (Menu, error) {
	for _, m := range r.menus {
		if m.MenuID == menuID {
			return m, nil
		}
	}
	return Menu{}, ErrNotFound
}

func (r *InMemoryRepository) GetByMealType(mealType string) (Menu, error) {
	for _, m := range r.menus {
		if m.MealType == mealType {
			return m, nil
		}
	}
	return Menu{}, ErrNotFound
}
