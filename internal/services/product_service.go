package services

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"artspace/internal/api"
	"artspace/internal/domain"
)

// Filter is the gallery's query. The backend does all filtering.
type Filter struct {
	Category string
	Search   string
}

// Query omits the category for "All"/empty and the search for blank terms.
func (f Filter) Query() url.Values {
	q := url.Values{}
	if c := strings.TrimSpace(f.Category); c != "" && c != domain.CategoryAll {
		q.Set("category", c)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		q.Set("search", s)
	}
	return q
}

type ProductService struct {
	API *api.Client
}

func NewProductService(c *api.Client) *ProductService { return &ProductService{API: c} }

func (s *ProductService) List(ctx context.Context, f Filter) ([]domain.Product, error) {
	out := []domain.Product{}
	err := s.API.Do(ctx, api.Call{Method: http.MethodGet, Path: "/products", Query: f.Query(), Out: &out})
	return out, err
}

func (s *ProductService) Get(ctx context.Context, id string) (domain.Product, error) {
	var p domain.Product
	err := s.API.Do(ctx, api.Call{
		Method: http.MethodGet, Path: "/products/{id}",
		PathParams: map[string]string{"id": id}, Out: &p,
	})
	return p, err
}

func (s *ProductService) Create(ctx context.Context, in domain.ProductInput) (domain.Product, error) {
	var p domain.Product
	err := s.API.Do(ctx, api.Call{Method: http.MethodPost, Path: "/products", Body: in, Out: &p})
	return p, err
}

func (s *ProductService) Update(ctx context.Context, id string, in domain.ProductInput) (domain.Product, error) {
	var p domain.Product
	err := s.API.Do(ctx, api.Call{
		Method: http.MethodPut, Path: "/products/{id}",
		PathParams: map[string]string{"id": id}, Body: in, Out: &p,
	})
	return p, err
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	return s.API.Do(ctx, api.Call{
		Method: http.MethodDelete, Path: "/products/{id}",
		PathParams: map[string]string{"id": id},
	})
}
