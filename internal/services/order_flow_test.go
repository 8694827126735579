package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"artspace/internal/api"
	"artspace/internal/domain"
	"artspace/internal/repos"
	"artspace/internal/services"
	"artspace/internal/validate"
)

type flow struct {
	store    *repos.MemStore
	cart     *services.CartService
	checkout *services.CheckoutService
	orders   *services.OrderService
	backend  *backend
}

func newFlow(t *testing.T) flow {
	t.Helper()
	b, client := newBackend(t)
	store := repos.NewMemStore()
	cart := services.NewCartService(repos.NewCartRepo(store))
	orders := services.NewOrderService(client)
	return flow{store, cart, services.NewCheckoutService(cart, orders), orders, b}
}

func goodForm() services.CheckoutForm {
	return services.CheckoutForm{
		FullName: "Nguyen Van Mai", Phone: "0901234567", Email: "mai@example.com",
		Address: "12 Hang Bac", City: "Hanoi", District: "Hoan Kiem", PaymentMethod: "vnpay",
	}
}

var signedIn = &domain.Session{Token: "tok", Username: "mai", Email: "mai@example.com"}

func TestOrderFlow_AddCartCheckout(t *testing.T) {
	f := newFlow(t)
	f.backend.on("POST /orders", 201, map[string]any{"id": "o-77", "status": "pending", "totalAmount": 7500000})
	ctx := api.WithToken(context.Background(), signedIn.Token)

	require.NoError(t, f.cart.Add(ctx, "s1", painting("a", 2500000)))
	require.NoError(t, f.cart.Add(ctx, "s1", painting("b", 5000000)))

	order, err := f.checkout.Place(ctx, "s1", signedIn, goodForm())
	require.NoError(t, err)
	require.Equal(t, "o-77", order.ID)

	calls := f.backend.calls()
	require.Len(t, calls, 1)
	require.Equal(t, "Bearer tok", calls[0].Auth)
	var sent domain.OrderRequest
	require.NoError(t, json.Unmarshal([]byte(calls[0].Body), &sent))
	require.Equal(t, "7500000", sent.TotalAmount.String())
	require.Len(t, sent.Items, 2)
	require.Equal(t, 1, sent.Items[1].Quantity)
	require.Equal(t, "Hoan Kiem", sent.ShippingAddress.District)
	require.Equal(t, domain.PaymentCOD, sent.PaymentMethod)
	require.Equal(t, "0901234567", sent.Phone)

	_, ok, err := f.store.Get(ctx, "s1", repos.CartKey)
	require.NoError(t, err)
	require.False(t, ok, "cart should be gone after a placed order")
}

func TestOrderFlow_FailureKeepsCart(t *testing.T) {
	f := newFlow(t)
	f.backend.on("POST /orders", 500, map[string]string{"message": "Product p1 is no longer available"})
	ctx := context.Background()
	require.NoError(t, f.cart.Add(ctx, "s1", painting("a", 10)))

	_, err := f.checkout.Place(ctx, "s1", signedIn, goodForm())
	require.Equal(t, "Product p1 is no longer available", api.Message(err))
	require.Equal(t, 1, f.cart.Count(ctx, "s1"))
}

func TestCheckout_Guards(t *testing.T) {
	f := newFlow(t)
	ctx := context.Background()

	_, err := f.checkout.Place(ctx, "s1", nil, goodForm())
	require.ErrorIs(t, err, services.ErrNotLoggedIn)

	_, err = f.checkout.Place(ctx, "s1", signedIn, goodForm())
	require.ErrorIs(t, err, services.ErrEmptyCart)
	require.Empty(t, f.backend.calls(), "guards must not reach the backend")
}

func TestCheckout_InvalidFormNeverSubmits(t *testing.T) {
	f := newFlow(t)
	ctx := context.Background()
	require.NoError(t, f.cart.Add(ctx, "s1", painting("a", 10)))

	form := goodForm()
	form.Phone = "not a phone"
	_, err := f.checkout.Place(ctx, "s1", signedIn, form)
	var fe *validate.FieldError
	require.True(t, errors.As(err, &fe))
	require.Equal(t, "Phone", fe.Field)
	require.Empty(t, f.backend.calls())
	require.Equal(t, 1, f.cart.Count(ctx, "s1"))
}

func TestPrefill(t *testing.T) {
	form := services.Prefill(signedIn)
	require.Equal(t, "mai", form.FullName)
	require.Equal(t, "mai@example.com", form.Email)
	require.Equal(t, domain.PaymentCOD, form.PaymentMethod)
	require.Empty(t, services.Prefill(nil).Email)
}

func TestOrders_AdminUpdatesAndCancel(t *testing.T) {
	f := newFlow(t)
	f.backend.on("GET /orders/my-orders", 200, []map[string]any{{"id": "o1", "status": "pending"}})
	f.backend.on("GET /orders", 200, []map[string]any{{"id": "o1"}, {"id": "o2"}})
	f.backend.on("PUT /orders/o1/status", 200, map[string]any{"id": "o1", "status": "shipping"})
	f.backend.on("PUT /orders/o1/payment", 200, map[string]any{"id": "o1", "paymentStatus": "paid"})
	f.backend.on("PUT /orders/o1/cancel", 200, map[string]any{"id": "o1", "status": "cancelled"})
	ctx := context.Background()

	mine, err := f.orders.Mine(ctx)
	require.NoError(t, err)
	require.True(t, mine[0].Cancellable())

	all, err := f.orders.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)

	o, err := f.orders.UpdateStatus(ctx, "o1", "shipping")
	require.NoError(t, err)
	require.Equal(t, "shipping", o.Status)

	o, err = f.orders.UpdatePayment(ctx, "o1", "paid")
	require.NoError(t, err)
	require.Equal(t, "paid", o.PaymentStatus)

	o, err = f.orders.Cancel(ctx, "o1")
	require.NoError(t, err)
	require.False(t, o.Cancellable())

	calls := f.backend.calls()
	require.JSONEq(t, `{"status":"shipping"}`, calls[2].Body)
	require.JSONEq(t, `{"paymentStatus":"paid"}`, calls[3].Body)
	require.Empty(t, calls[4].Body)
}
