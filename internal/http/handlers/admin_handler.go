package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"artspace/internal/api"
	"artspace/internal/domain"
	applog "artspace/internal/log"
	"artspace/internal/services"
	"artspace/internal/validate"
)

// AdminHandler covers order management and the home page settings.
type AdminHandler struct {
	*Pages
	Orders   *services.OrderService
	Settings *services.SettingsService
}

// GET /admin/orders
func (h *AdminHandler) OrdersPage(c *fiber.Ctx) error {
	ords, err := h.Orders.All(ctx(c))
	data := fiber.Map{
		"Orders":          ords,
		"OrderStatuses":   domain.OrderStatuses,
		"PaymentStatuses": domain.PaymentStatuses,
	}
	if err != nil {
		applog.Error(c, "admin.orders.list.fail", err, nil)
		data["Err"] = api.Message(err)
	}
	return h.render(c, "admin_orders", data)
}

// POST /admin/orders/:id/status
func (h *AdminHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	return h.updateOrder(c, false)
}

// POST /admin/orders/:id/payment
func (h *AdminHandler) UpdatePaymentStatus(c *fiber.Ctx) error {
	return h.updateOrder(c, true)
}

func (h *AdminHandler) updateOrder(c *fiber.Ctx, payment bool) error {
	id, okID := validate.ID(c.Params("id"))
	field := "status"
	if payment {
		field = "paymentStatus"
	}
	status, ok := validate.OrderStatus(c.FormValue(field), payment)
	if !okID || !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": field})
		return c.Status(fiber.StatusBadRequest).SendString("invalid id or status")
	}

	var err error
	if payment {
		_, err = h.Orders.UpdatePayment(ctx(c), id, status)
	} else {
		_, err = h.Orders.UpdateStatus(ctx(c), id, status)
	}
	if err != nil {
		applog.Error(c, "admin.orders.update.fail", err, map[string]any{"order_id": id, field: status})
		h.notify(c, noticeError, api.Message(err))
		return c.Redirect("/admin/orders")
	}
	applog.Audit(c, "admin.orders.update", map[string]any{"order_id": id, field: status})
	return c.Redirect("/admin/orders")
}

// GET /admin/home-settings
func (h *AdminHandler) SettingsPage(c *fiber.Ctx) error {
	s, err := h.Settings.Home(ctx(c))
	if err != nil {
		applog.Error(c, "admin.settings.load.fail", err, nil)
		s = domain.DefaultHomeSettings()
	}
	return h.render(c, "home_settings", fiber.Map{"Settings": s})
}

// POST /admin/home-settings
func (h *AdminHandler) SaveSettings(c *fiber.Ctx) error {
	current, err := h.Settings.Home(ctx(c))
	if err != nil {
		current = domain.DefaultHomeSettings()
	}

	hero, err := slotFrom(c, "heroImageUrl", "heroImage")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("invalid upload")
	}
	featured := make([]services.Slot, domain.FeaturedSlots)
	for i := range featured {
		n := strconv.Itoa(i)
		if featured[i], err = slotFrom(c, "featuredImageUrl"+n, "featuredImage"+n); err != nil {
			return c.Status(fiber.StatusBadRequest).SendString("invalid upload")
		}
	}

	if _, err := h.Settings.Apply(ctx(c), current, hero, featured); err != nil {
		if errors.Is(err, services.ErrUnsupportedImage) || errors.Is(err, services.ErrImageTooLarge) {
			h.notify(c, noticeError, "Failed to upload image. Please try again.")
		} else {
			applog.Error(c, "admin.settings.save.fail", err, nil)
			h.notify(c, noticeError, "Failed to save settings.")
		}
		return c.Redirect("/admin/home-settings")
	}
	applog.Audit(c, "admin.settings.save", nil)
	h.notify(c, noticeSuccess, "Settings saved successfully! Reload the Home page to see changes.")
	return c.Redirect("/admin/home-settings")
}

func slotFrom(c *fiber.Ctx, urlField, fileField string) (services.Slot, error) {
	file, err := formUpload(c, fileField)
	if err != nil {
		return services.Slot{}, err
	}
	return services.Slot{URL: c.FormValue(urlField), File: file}, nil
}
