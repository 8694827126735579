package services

import (
	"context"
	"errors"

	"artspace/internal/domain"
	applog "artspace/internal/log"
	"artspace/internal/repos"
)

var (
	ErrAlreadyInCart = errors.New("item already in cart")
	ErrSoldOut       = errors.New("painting is sold out")
)

// CartView is what the cart and checkout pages render.
type CartView struct {
	Items []domain.Product
	Total domain.Price
}

func (v CartView) Empty() bool { return len(v.Items) == 0 }

// CartService keeps each visitor's cart: unique paintings, one unit each,
// in insertion order. Nothing here calls the backend.
type CartService struct {
	Carts *repos.CartRepo
}

func NewCartService(carts *repos.CartRepo) *CartService { return &CartService{Carts: carts} }

// Items never fails on an unreadable record; it is treated as empty.
func (s *CartService) Items(ctx context.Context, sid string) ([]domain.Product, error) {
	items, err := s.Carts.Load(ctx, sid)
	if errors.Is(err, repos.ErrCorrupt) {
		applog.Error(nil, "cart.decode.fail", err, map[string]any{"sid": sid})
		return []domain.Product{}, nil
	}
	return items, err
}

func (s *CartService) View(ctx context.Context, sid string) (CartView, error) {
	items, err := s.Items(ctx, sid)
	if err != nil {
		return CartView{}, err
	}
	return CartView{Items: items, Total: Total(items)}, nil
}

func (s *CartService) Count(ctx context.Context, sid string) int {
	items, err := s.Items(ctx, sid)
	if err != nil {
		return 0
	}
	return len(items)
}

// Add appends p unless an entry with the same id is already there.
func (s *CartService) Add(ctx context.Context, sid string, p domain.Product) error {
	if p.Sold() {
		return ErrSoldOut
	}
	items, err := s.Items(ctx, sid)
	if err != nil {
		return err
	}
	for _, it := range items {
		if it.ID == p.ID {
			return ErrAlreadyInCart
		}
	}
	return s.Carts.Save(ctx, sid, append(items, p))
}

// Remove drops the entry with id; unknown ids are a no-op.
func (s *CartService) Remove(ctx context.Context, sid, id string) error {
	items, err := s.Items(ctx, sid)
	if err != nil {
		return err
	}
	kept := items[:0]
	for _, it := range items {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	return s.Carts.Save(ctx, sid, kept)
}

func (s *CartService) Clear(ctx context.Context, sid string) error {
	return s.Carts.Clear(ctx, sid)
}

// Total sums entry prices; unreadable prices already decoded as zero.
func Total(items []domain.Product) domain.Price {
	sum := domain.NewPrice(0)
	for _, it := range items {
		sum.Decimal = sum.Add(it.Price.Decimal)
	}
	return sum
}
