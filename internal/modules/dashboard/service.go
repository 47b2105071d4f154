package dashboard

import (
	"context"
	"errors"

	"github.com/davidrojas/tienda-backend/internal/modules/catalog"
	"github.com/davidrojas/tienda-backend/internal/modules/user"
)

// ErrUnknownRole is returned for a session whose role matches no dashboard.
var ErrUnknownRole = errors.New("unknown role")

// Service assembles the role-specific dashboard views.
type Service interface {
	ForUser(ctx context.Context, userID int64, role user.Role) (*View, error)
}

type service struct {
	repo     Repository
	users    user.Repository
	products catalog.Repository
}

// NewService creates a new dashboard service.
func NewService(repo Repository, users user.Repository, products catalog.Repository) Service {
	return &service{repo: repo, users: users, products: products}
}

func (s *service) ForUser(ctx context.Context, userID int64, role user.Role) (*View, error) {
	switch role {
	case user.RoleAdministrator:
		return s.adminView(ctx)
	case user.RoleEmployee:
		return s.employeeView(ctx)
	case user.RoleClient:
		return s.clientView(ctx, userID)
	case user.RoleUnknown:
		return nil, ErrUnknownRole
	default:
		return nil, ErrUnknownRole
	}
}

func (s *service) adminView(ctx context.Context) (*View, error) {
	metrics, err := s.repo.Metrics(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	products, err := s.products.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	sales, err := s.repo.ListSales(ctx)
	if err != nil {
		return nil, err
	}
	return &View{
		Role: string(user.RoleAdministrator),
		Admin: &AdminView{
			Metrics:  metrics,
			Users:    users,
			Products: products,
			Sales:    sales,
		},
	}, nil
}

func (s *service) employeeView(ctx context.Context) (*View, error) {
	products, err := s.products.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	sales, err := s.repo.ListSales(ctx)
	if err != nil {
		return nil, err
	}
	return &View{
		Role:     string(user.RoleEmployee),
		Employee: &EmployeeView{Products: products, Sales: sales},
	}, nil
}

func (s *service) clientView(ctx context.Context, userID int64) (*View, error) {
	purchases, err := s.repo.ListPurchasesByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &View{
		Role:   string(user.RoleClient),
		Client: &ClientView{Purchases: purchases},
	}, nil
}
