package user

import "errors"

var ErrNotFound = errors.New("user not found")

type Repository interface {
	GetByID(id int) (User, error)
	ListByIDs(ids []int) ([]User, error)
}

// InMemoryRepository for tests
type InMemoryRepository struct {
	data map[int]User
}

func NewInMemoryRepository(seed map[int]User) *InMemoryRepository {
	if seed == nil {
		seed = map[int]User{}
	}
	return &InMemoryRepository{data: seed}
}

func (r *InMemoryRepository) GetByID(id int) (User, error) {
	u, ok := r.data[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

func (r *InMemoryRepository) ListByIDs(ids []int) ([]User, error) {
	out := make([]User, 0, len(ids))
	for _, id := range ids {
		if u, ok := r.data[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}
