package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	applog "artspace/internal/log"
	"artspace/internal/services"
	"artspace/internal/validate"
)

type CartHandler struct {
	*Pages
	Cart     *services.CartService
	Products *services.ProductService
}

// Add snapshots the backend's current record into the cart, so the entry is
// never built from client-supplied fields.
func (h *CartHandler) Add(c *fiber.Ctx) error {
	sid := h.ensureSID(c)
	back := backTo(c.FormValue("return"), "/cart")
	id, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("missing productId")
	}
	p, err := h.Products.Get(ctx(c), id)
	if err != nil {
		h.notify(c, noticeError, "Product not found!")
		return c.Redirect("/gallery")
	}
	switch err := h.Cart.Add(ctx(c), sid, p); {
	case errors.Is(err, services.ErrAlreadyInCart):
		h.notify(c, noticeInfo, "Item already in cart!")
	case errors.Is(err, services.ErrSoldOut):
		h.notify(c, noticeError, "This painting is sold out")
	case err != nil:
		applog.Error(c, "cart.add.fail", err, map[string]any{"product": id})
		return err
	default:
		applog.Info(c, "cart.add", map[string]any{"product": id})
		h.notify(c, noticeSuccess, "Added to cart!")
	}
	return c.Redirect(back)
}

func (h *CartHandler) Remove(c *fiber.Ctx) error {
	sid := h.ensureSID(c)
	id, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("missing productId")
	}
	if err := h.Cart.Remove(ctx(c), sid, id); err != nil {
		applog.Error(c, "cart.remove.fail", err, map[string]any{"product": id})
		return err
	}
	return c.Redirect("/cart")
}

func (h *CartHandler) View(c *fiber.Ctx) error {
	cv, err := h.Cart.View(ctx(c), h.ensureSID(c))
	if err != nil {
		return err
	}
	return h.render(c, "cart", fiber.Map{"Cart": cv})
}

// backTo only follows local paths.
func backTo(target, fallback string) string {
	if strings.HasPrefix(target, "/") && !strings.HasPrefix(target, "//") && !strings.Contains(target, `\`) {
		return target
	}
	return fallback
}
