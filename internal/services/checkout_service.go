package services

import (
	"context"
	"errors"
	"strings"

	"artspace/internal/domain"
	applog "artspace/internal/log"
	"artspace/internal/validate"
)

var ErrEmptyCart = errors.New("cart is empty")

// CheckoutForm is the shipping and contact form.
type CheckoutForm struct {
	FullName      string `form:"fullName" validate:"required,max=100"`
	Phone         string `form:"phone" validate:"required,phone"`
	Email         string `form:"email" validate:"required,email,max=50"`
	Address       string `form:"address" validate:"required,max=200"`
	City          string `form:"city" validate:"required,max=100"`
	District      string `form:"district" validate:"max=100"`
	Note          string `form:"note" validate:"max=500"`
	PaymentMethod string `form:"paymentMethod"`
}

// Prefill seeds the form from the signed-in profile.
func Prefill(sess *domain.Session) CheckoutForm {
	f := CheckoutForm{PaymentMethod: domain.PaymentCOD}
	if sess != nil {
		f.FullName = sess.Username
		f.Email = sess.Email
	}
	return f
}

func (f CheckoutForm) trimmed() CheckoutForm {
	for _, p := range []*string{&f.FullName, &f.Phone, &f.Email, &f.Address, &f.City, &f.District, &f.Note} {
		*p = strings.TrimSpace(*p)
	}
	return f
}

type CheckoutService struct {
	Cart   *CartService
	Orders *OrderService
}

func NewCheckoutService(cart *CartService, orders *OrderService) *CheckoutService {
	return &CheckoutService{Cart: cart, Orders: orders}
}

// Begin checks the entry guards: signed in first, then a non-empty cart.
func (s *CheckoutService) Begin(ctx context.Context, sid string, sess *domain.Session) (CartView, error) {
	if sess == nil {
		return CartView{}, ErrNotLoggedIn
	}
	view, err := s.Cart.View(ctx, sid)
	if err != nil {
		return CartView{}, err
	}
	if view.Empty() {
		return CartView{}, ErrEmptyCart
	}
	return view, nil
}

// Compose builds the order body from the cart snapshot and the form.
func Compose(view CartView, f CheckoutForm) domain.OrderRequest {
	f = f.trimmed()
	return domain.OrderRequest{
		Items:       domain.LineItems(view.Items),
		TotalAmount: view.Total,
		ShippingAddress: domain.ShippingAddress{
			FullName: f.FullName,
			Phone:    f.Phone,
			Address:  f.Address,
			City:     f.City,
			District: f.District,
			Note:     f.Note,
		},
		Email:         f.Email,
		Phone:         f.Phone,
		PaymentMethod: domain.NormalizePayment(f.PaymentMethod),
	}
}

// Place submits the order. The cart is cleared only once the backend has
// accepted it; any failure leaves the cart untouched.
func (s *CheckoutService) Place(ctx context.Context, sid string, sess *domain.Session, f CheckoutForm) (domain.Order, error) {
	view, err := s.Begin(ctx, sid, sess)
	if err != nil {
		return domain.Order{}, err
	}
	f = f.trimmed()
	if err := validate.Struct(f); err != nil {
		return domain.Order{}, err
	}
	order, err := s.Orders.Create(ctx, Compose(view, f))
	if err != nil {
		return domain.Order{}, err
	}
	if err := s.Cart.Clear(ctx, sid); err != nil {
		applog.Error(nil, "checkout.cart.clear.fail", err, map[string]any{"order": order.ID})
	}
	return order, nil
}
