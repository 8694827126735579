package services

import (
	"context"
	"net/http"

	"artspace/internal/api"
	"artspace/internal/domain"
)

type OrderService struct {
	API *api.Client
}

func NewOrderService(c *api.Client) *OrderService { return &OrderService{API: c} }

func (s *OrderService) Create(ctx context.Context, req domain.OrderRequest) (domain.Order, error) {
	var o domain.Order
	err := s.API.Do(ctx, api.Call{Method: http.MethodPost, Path: "/orders", Body: req, Out: &o})
	return o, err
}

func (s *OrderService) Mine(ctx context.Context) ([]domain.Order, error) {
	return s.list(ctx, "/orders/my-orders")
}

// All lists every order (admin).
func (s *OrderService) All(ctx context.Context) ([]domain.Order, error) {
	return s.list(ctx, "/orders")
}

func (s *OrderService) list(ctx context.Context, path string) ([]domain.Order, error) {
	out := []domain.Order{}
	err := s.API.Do(ctx, api.Call{Method: http.MethodGet, Path: path, Out: &out})
	return out, err
}

func (s *OrderService) Get(ctx context.Context, id string) (domain.Order, error) {
	var o domain.Order
	err := s.API.Do(ctx, api.Call{
		Method: http.MethodGet, Path: "/orders/{id}",
		PathParams: map[string]string{"id": id}, Out: &o,
	})
	return o, err
}

func (s *OrderService) UpdateStatus(ctx context.Context, id, status string) (domain.Order, error) {
	return s.put(ctx, "/orders/{id}/status", id, map[string]string{"status": status})
}

func (s *OrderService) UpdatePayment(ctx context.Context, id, paymentStatus string) (domain.Order, error) {
	return s.put(ctx, "/orders/{id}/payment", id, map[string]string{"paymentStatus": paymentStatus})
}

// Cancel asks the backend to cancel; it refuses anything past pending.
func (s *OrderService) Cancel(ctx context.Context, id string) (domain.Order, error) {
	return s.put(ctx, "/orders/{id}/cancel", id, nil)
}

func (s *OrderService) put(ctx context.Context, path, id string, body any) (domain.Order, error) {
	var o domain.Order
	call := api.Call{
		Method: http.MethodPut, Path: path,
		PathParams: map[string]string{"id": id}, Out: &o,
	}
	if body != nil {
		call.Body = body
	}
	err := s.API.Do(ctx, call)
	return o, err
}
