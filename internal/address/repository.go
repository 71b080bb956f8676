package address

import "errors"

var ErrNotFound = errors.New("user not found")

type Repository interface {
	GetAddresses(userID int) ([]Address, error)
	AddAddress(a Address) (Address, error)
}

// InMemoryRepository for tests
type InMemoryRepository struct {
	data   map[int][]Address
	nextID int
}

func NewInMemoryRepository(seed map[int][]Address) *InMemoryRepository {
	if seed == nil {
		seed = map[int][]Address{}
	}
	nextID := 1
	for _, addrs := range seed {
		for _, a := range addrs {
			if a.AddressID >= nextID {
				nextID = a.AddressID + 1
			}
		}
	}
	return &InMemoryRepository{data: seed, nextID: nextID}
}

func (r *InMemoryRepository) GetAddresses(userID int) ([]Address, error) {
	return r.data[userID], nil
}

func (r *InMemoryRepository) AddAddress(a Address) (Address, error) {
	if a.UserID <= 0 {
		return Address{}, ErrNotFound
	}
	a.AddressID = r.nextID
	r.nextID++
	r.data[a.UserID] = append(r.data[a.UserID], a)
	return a, nil
}
