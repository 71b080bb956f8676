package menu

// Service exposes the menu catalog as read-only reference data. Publishing
// and editing menus is an admin concern handled elsewhere.
type Service struct {
	repo Repository
}

type ServiceInterface interface {
	GetByID(menuID int) (Menu, error)
	GetByMealType(mealType string) (Menu, error)
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

func (s *Service) GetByID(menuID int) (Menu, error) {
	if menuID <= 0 {
		return Menu{}, ErrNotFound
	}
	return s.repo.GetByID(menuID)
}

func (s *Service) GetByMealType(mealType string) (Menu, error) {
	if mealType != MealLunch && mealType != MealDinner {
		return Menu{}, ErrNotFound
	}
	return s.repo.GetByMealType(mealType)
}
