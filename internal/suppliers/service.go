package suppliers

import (
	"context"

	"github.com/khohang/khohang/internal/store"
)

type Service struct {
	store store.Store[Supplier]
}

func NewService(st store.Store[Supplier]) *Service {
	return &Service{store: st}
}

// List returns all suppliers in insertion order.
func (s *Service) List(ctx context.Context) ([]Supplier, error) {
	return s.store.List(ctx)
}

// Create validates and stores a new supplier, assigning its id.
func (s *Service) Create(ctx context.Context, sup Supplier) (Supplier, error) {
	if err := s.validate(sup); err != nil {
		return Supplier{}, err
	}
	return s.store.Create(ctx, func(id int64) Supplier {
		sup.ID = id
		return sup
	})
}
