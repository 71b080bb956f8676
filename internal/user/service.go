package user

type ServiceInterface interface {
	GetByID(id int) (User, error)
	ListByIDs(ids []int) ([]User, error)
}

type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

func (s *Service) GetByID(id int) (User, error) {
	if id <= 0 {
		return User{}, ErrNotFound
	}
	return s.repo.GetByID(id)
}

func (s *Service) ListByIDs(ids []int) ([]User, error) {
	return s.repo.ListByIDs(ids)
}
