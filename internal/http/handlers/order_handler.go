package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"artspace/internal/api"
	"artspace/internal/domain"
	applog "artspace/internal/log"
	"artspace/internal/services"
	"artspace/internal/validate"
)

type OrderHandler struct {
	*Pages
	Checkout *services.CheckoutService
	Orders   *services.OrderService
}

// guard turns the checkout entry errors into their notice and redirect.
func (h *OrderHandler) guard(c *fiber.Ctx, err error) (bool, error) {
	switch {
	case errors.Is(err, services.ErrNotLoggedIn):
		h.notify(c, noticeInfo, "Please login to checkout")
		return true, c.Redirect("/login")
	case errors.Is(err, services.ErrEmptyCart):
		h.notify(c, noticeInfo, "Your cart is empty")
		return true, c.Redirect("/cart")
	}
	return false, nil
}

func (h *OrderHandler) CheckoutPage(c *fiber.Ctx) error {
	sess := sessionOf(c)
	view, err := h.Checkout.Begin(ctx(c), h.ensureSID(c), sess)
	if done, rerr := h.guard(c, err); done {
		return rerr
	}
	if err != nil {
		applog.Error(c, "checkout.load", err, nil)
		return err
	}
	return h.render(c, "checkout", h.page(view, services.Prefill(sess), ""))
}

func (h *OrderHandler) Place(c *fiber.Ctx) error {
	sid := h.ensureSID(c)
	sess := sessionOf(c)

	var form services.CheckoutForm
	if err := c.BodyParser(&form); err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("invalid form")
	}

	order, err := h.Checkout.Place(ctx(c), sid, sess, form)
	if done, rerr := h.guard(c, err); done {
		return rerr
	}
	if err != nil {
		view, _ := h.Checkout.Cart.View(ctx(c), sid)
		var fe *validate.FieldError
		if errors.As(err, &fe) {
			applog.Security(c, "validation.fail", map[string]any{"field": fe.Field})
			c.Status(fiber.StatusBadRequest)
			return h.render(c, "checkout", h.page(view, form, fe.Error()))
		}
		applog.Error(c, "order.place.fail", err, map[string]any{"status": api.StatusOf(err)})
		h.notify(c, noticeError, "Failed to create order. Please try again.")
		return h.render(c, "checkout", h.page(view, form, ""))
	}

	applog.Audit(c, "order.place", map[string]any{
		"order_id": order.ID,
		"items":    len(order.Items),
		"payment":  order.PaymentMethod,
	})
	h.notify(c, noticeSuccess, "Order placed successfully! Order ID: "+order.ID)
	return c.Redirect("/dashboard")
}

func (h *OrderHandler) page(view services.CartView, form services.CheckoutForm, errMsg string) fiber.Map {
	return fiber.Map{
		"Cart":     view,
		"Form":     form,
		"Payments": domain.PaymentMethods,
		"Err":      errMsg,
	}
}

// Dashboard lists the signed-in user's orders.
func (h *OrderHandler) Dashboard(c *fiber.Ctx) error {
	orders, err := h.Orders.Mine(ctx(c))
	if err != nil {
		applog.Error(c, "orders.history.fail", err, nil)
		return h.render(c, "dashboard", fiber.Map{"Orders": nil, "Err": api.Message(err)})
	}
	return h.render(c, "dashboard", fiber.Map{"Orders": orders})
}

func (h *OrderHandler) Cancel(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("invalid order id")
	}
	if _, err := h.Orders.Cancel(ctx(c), id); err != nil {
		applog.Security(c, "order.cancel.fail", map[string]any{"order_id": id, "status": api.StatusOf(err)})
		h.notify(c, noticeError, api.Message(err))
		return c.Redirect("/dashboard")
	}
	applog.Audit(c, "order.cancel", map[string]any{"order_id": id})
	h.notify(c, noticeSuccess, "Order cancelled")
	return c.Redirect("/dashboard")
}
