package repos

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"artspace/internal/domain"
)

// ErrCorrupt means a stored record exists but does not decode.
var ErrCorrupt = errors.New("stored record is not valid JSON")

type CartRepo struct{ store Store }

func NewCartRepo(s Store) *CartRepo { return &CartRepo{store: s} }

// Load returns the visitor's cart entries in insertion order. A missing
// record is an empty cart.
func (r *CartRepo) Load(ctx context.Context, sid string) ([]domain.Product, error) {
	raw, ok, err := r.store.Get(ctx, sid, CartKey)
	if err != nil {
		return nil, err
	}
	items := []domain.Product{}
	if !ok || raw == "" {
		return items, nil
	}
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return []domain.Product{}, fmt.Errorf("%w: cart: %v", ErrCorrupt, err)
	}
	return items, nil
}

// Save rewrites the whole list.
func (r *CartRepo) Save(ctx context.Context, sid string, items []domain.Product) error {
	if items == nil {
		items = []domain.Product{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, sid, CartKey, string(b))
}

func (r *CartRepo) Clear(ctx context.Context, sid string) error {
	return r.store.Delete(ctx, sid, CartKey)
}
