package address

import (
	"errors"
	"time"
)

var ErrAddressRequired = errors.New("address is required")

type ServiceInterface interface {
	GetAddresses(userID int) ([]Address, error)
	AddAddress(userID int, a Address) (Address, error)
}

// Service keeps each user's address list append-only and deduplicated.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetAddresses(userID int) ([]Address, error) {
	if userID <= 0 {
		return nil, ErrNotFound
	}
	addrs, err := s.repo.GetAddresses(userID)
	if err != nil {
		return nil, err
	}
	if addrs == nil {
		addrs = []Address{}
	}
	return addrs, nil
}

// AddAddress appends only when no saved address has the same normalized
// text; a duplicate returns the existing entry instead of a second row.
func (s *Service) AddAddress(userID int, a Address) (Address, error) {
	if userID <= 0 {
		return Address{}, ErrNotFound
	}
	if Normalize(a.Address) == "" {
		return Address{}, ErrAddressRequired
	}

	existing, err := s.repo.GetAddresses(userID)
	if err != nil {
		return Address{}, err
	}
	for _, saved := range existing {
		if Normalize(saved.Address) == Normalize(a.Address) {
			return saved, nil
		}
	}

	a.UserID = userID
	if a.Label == "" {
		a.Label = "Room"
	}
	a.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	return s.repo.AddAddress(a)
}
