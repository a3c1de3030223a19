// Package catalog is the read and admin-write surface over the gateway's
// product and category tables. It owns no state; every read goes back to
// the gateway.
package catalog

import (
	"context"
	"errors"

	"github.com/Gongwasubash/restro/internal/domain"
)

// SpecialsCount is how many items the home page features.
const SpecialsCount = 3

// AllCategories is the pseudo-category that disables menu filtering.
const AllCategories = "All"

var (
	ErrMissingName         = errors.New("product name is required")
	ErrMissingCategory     = errors.New("product category is required")
	ErrMissingID           = errors.New("product id is required")
	ErrNegativePrice       = errors.New("product price cannot be negative")
	ErrMissingCategoryName = errors.New("category name is required")
)

// Gateway is the slice of the remote API this service consumes.
type Gateway interface {
	Products(ctx context.Context) ([]domain.Product, error)
	Categories(ctx context.Context) ([]domain.Category, error)
	AddProduct(ctx context.Context, p domain.Product) error
	UpdateProduct(ctx context.Context, p domain.Product) error
	DeleteProduct(ctx context.Context, id string) error
	AddCategory(ctx context.Context, name string) error
}

type Service struct {
	gw Gateway
}

func NewService(gw Gateway) *Service {
	return &Service{gw: gw}
}

// Menu holds everything the public menu view needs in one shape.
type Menu struct {
	Products   []domain.Product  `json:"products"`
	Categories []domain.Category `json:"categories"`
}

// Menu returns active products, optionally narrowed to one category, plus
// the category list for the filter bar.
func (s *Service) Menu(ctx context.Context, category string) (Menu, error) {
	products, err := s.gw.Products(ctx)
	if err != nil {
		return Menu{}, err
	}
	categories, err := s.gw.Categories(ctx)
	if err != nil {
		return Menu{}, err
	}

	filtered := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if !p.ActiveStatus {
			continue
		}
		if category != "" && category != AllCategories && p.Category != category {
			continue
		}
		filtered = append(filtered, p)
	}

	return Menu{Products: filtered, Categories: categories}, nil
}

// Specials returns the handful of featured items for the home page.
func (s *Service) Specials(ctx context.Context) ([]domain.Product, error) {
	products, err := s.gw.Products(ctx)
	if err != nil {
		return nil, err
	}

	specials := make([]domain.Product, 0, SpecialsCount)
	for _, p := range products {
		if !p.ActiveStatus {
			continue
		}
		specials = append(specials, p)
		if len(specials) == SpecialsCount {
			break
		}
	}
	return specials, nil
}

// Product finds one active catalog item by id.
func (s *Service) Product(ctx context.Context, id string) (domain.Product, bool, error) {
	products, err := s.gw.Products(ctx)
	if err != nil {
		return domain.Product{}, false, err
	}
	for _, p := range products {
		if p.ID == id && p.ActiveStatus {
			return p, true, nil
		}
	}
	return domain.Product{}, false, nil
}

// AllProducts returns the catalog unfiltered, inactive items included.
// Admin dashboard only.
func (s *Service) AllProducts(ctx context.Context) ([]domain.Product, error) {
	return s.gw.Products(ctx)
}

// CategoryList returns the raw category list.
func (s *Service) CategoryList(ctx context.Context) ([]domain.Category, error) {
	return s.gw.Categories(ctx)
}

// CreateProduct validates the admin's input and forwards it; the gateway
// assigns the id.
func (s *Service) CreateProduct(ctx context.Context, p domain.Product) error {
	if err := validateProduct(p); err != nil {
		return err
	}
	p.ID = ""
	return s.gw.AddProduct(ctx, p)
}

func (s *Service) UpdateProduct(ctx context.Context, p domain.Product) error {
	if p.ID == "" {
		return ErrMissingID
	}
	if err := validateProduct(p); err != nil {
		return err
	}
	return s.gw.UpdateProduct(ctx, p)
}

func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	if id == "" {
		return ErrMissingID
	}
	return s.gw.DeleteProduct(ctx, id)
}

func (s *Service) AddCategory(ctx context.Context, name string) error {
	if name == "" {
		return ErrMissingCategoryName
	}
	return s.gw.AddCategory(ctx, name)
}

func validateProduct(p domain.Product) error {
	if p.Name == "" {
		return ErrMissingName
	}
	if p.Category == "" {
		return ErrMissingCategory
	}
	if p.Price.IsNegative() {
		return ErrNegativePrice
	}
	return nil
}
