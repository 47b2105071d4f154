package catalog

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
)

// ErrInvalidProduct is returned when product fields fail validation.
var ErrInvalidProduct = errors.New("invalid product")

// Syncer rewrites the flat-file mirrors of the catalog. It is invoked after
// every mutating operation.
type Syncer interface {
	Sync(ctx context.Context) error
}

// Service defines the product catalog business logic.
type Service interface {
	CreateProduct(ctx context.Context, name, category string, quantity int, price float64) (*Product, error)
	GetProduct(ctx context.Context, id int64) (*Product, error)
	ListProducts(ctx context.Context) ([]*Product, error)
	ListAvailableProducts(ctx context.Context) ([]*Product, error)
	UpdateProduct(ctx context.Context, id int64, name, category string, quantity int, price float64) error
	DeleteProduct(ctx context.Context, id int64) error
}

type service struct {
	repo   Repository
	mirror Syncer
}

// NewService creates a new catalog service.
func NewService(repo Repository, mirror Syncer) Service {
	return &service{repo: repo, mirror: mirror}
}

func (s *service) CreateProduct(ctx context.Context, name, category string, quantity int, price float64) (*Product, error) {
	p := &Product{
		Name:     strings.TrimSpace(name),
		Category: strings.TrimSpace(category),
		Quantity: quantity,
		Price:    price,
	}
	if err := validate(p); err != nil {
		return nil, err
	}
	if err := s.repo.CreateProduct(ctx, p); err != nil {
		return nil, err
	}
	s.resync(ctx)
	return p, nil
}

func (s *service) GetProduct(ctx context.Context, id int64) (*Product, error) {
	return s.repo.GetProductByID(ctx, id)
}

func (s *service) ListProducts(ctx context.Context) ([]*Product, error) {
	return s.repo.ListProducts(ctx)
}

func (s *service) ListAvailableProducts(ctx context.Context) ([]*Product, error) {
	return s.repo.ListAvailableProducts(ctx)
}

func (s *service) UpdateProduct(ctx context.Context, id int64, name, category string, quantity int, price float64) error {
	p := &Product{
		ID:       id,
		Name:     strings.TrimSpace(name),
		Category: strings.TrimSpace(category),
		Quantity: quantity,
		Price:    price,
	}
	if err := validate(p); err != nil {
		return err
	}
	if err := s.repo.UpdateProduct(ctx, p); err != nil {
		return err
	}
	s.resync(ctx)
	return nil
}

func (s *service) DeleteProduct(ctx context.Context, id int64) error {
	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		return err
	}
	s.resync(ctx)
	return nil
}

func validate(p *Product) error {
	if p.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidProduct)
	}
	if p.Quantity < 0 {
		return fmt.Errorf("%w: quantity must not be negative", ErrInvalidProduct)
	}
	if p.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidProduct)
	}
	return nil
}

// resync rewrites the file mirrors. The mirrors are secondary views, so a
// failed sync is logged and the mutation stands.
func (s *service) resync(ctx context.Context) {
	if err := s.mirror.Sync(ctx); err != nil {
		log.Printf("mirror sync: %v", err)
	}
}
