package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "artspace/internal/log"
	"artspace/internal/services"
	"artspace/internal/validate"
)

type ProductHandler struct {
	*Pages
	Products *services.ProductService
}

func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		h.notify(c, noticeError, "Product not found!")
		return c.Redirect("/gallery")
	}
	p, err := h.Products.Get(ctx(c), id)
	if err != nil {
		applog.Info(c, "product.load.fail", map[string]any{"product": id, "err": err.Error()})
		h.notify(c, noticeError, "Product not found!")
		return c.Redirect("/gallery")
	}
	return h.render(c, "product", fiber.Map{"Product": p})
}
