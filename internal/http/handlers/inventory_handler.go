package handlers

import (
	"bytes"
	"errors"
	"io"

	"github.com/gofiber/fiber/v2"

	"artspace/internal/api"
	"artspace/internal/domain"
	applog "artspace/internal/log"
	"artspace/internal/services"
	"artspace/internal/validate"
)

// InventoryHandler is the admin product editor on /admin.
type InventoryHandler struct {
	*Pages
	Inventory *services.InventoryService
}

// GET /admin, GET /admin?edit=<id>
func (h *InventoryHandler) Page(c *fiber.Ctx) error {
	form := services.EmptyForm()
	if id := c.Query("edit"); id != "" {
		if _, ok := validate.ID(id); ok {
			f, err := h.Inventory.Edit(ctx(c), id)
			if err == nil {
				form = f
			} else {
				h.notify(c, noticeError, "Product not found!")
			}
		}
	}
	return h.page(c, form, "")
}

func (h *InventoryHandler) page(c *fiber.Ctx, form services.ProductForm, errMsg string) error {
	list, stock, err := h.Inventory.List(ctx(c))
	if err != nil {
		applog.Error(c, "admin.inventory.list.fail", err, nil)
		if errMsg == "" {
			errMsg = api.Message(err)
		}
	}
	return h.render(c, "admin", fiber.Map{
		"Products":   list,
		"Stock":      stock,
		"Form":       form,
		"Categories": domain.Categories,
		"Statuses":   []string{domain.StatusAvailable, domain.StatusSold},
		"Err":        errMsg,
	})
}

// POST /admin/products
func (h *InventoryHandler) Save(c *fiber.Ctx) error {
	var form services.ProductForm
	if err := c.BodyParser(&form); err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("invalid form")
	}
	if form.ID != "" {
		if _, ok := validate.ID(form.ID); !ok {
			return c.Status(fiber.StatusBadRequest).SendString("invalid product id")
		}
	}
	file, err := formUpload(c, "image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("invalid upload")
	}

	p, err := h.Inventory.Save(ctx(c), form, file)
	if err != nil {
		var fe *validate.FieldError
		switch {
		case errors.As(err, &fe), errors.Is(err, services.ErrBadPrice), errors.Is(err, services.ErrUnsupportedImage), errors.Is(err, services.ErrImageTooLarge):
			applog.Security(c, "validation.fail", map[string]any{"form": "product", "reason": err.Error()})
			c.Status(fiber.StatusBadRequest)
			return h.page(c, form, err.Error())
		}
		applog.Error(c, "admin.product.save.fail", err, map[string]any{"product": form.ID})
		h.notify(c, noticeError, "Failed to save product. Please try again.")
		return c.Redirect("/admin")
	}

	if form.Editing() {
		applog.Audit(c, "admin.product.update", map[string]any{"product": form.ID})
		h.notify(c, noticeSuccess, "Product updated successfully!")
	} else {
		applog.Audit(c, "admin.product.create", map[string]any{"product": p.ID})
		h.notify(c, noticeSuccess, "Product added successfully!")
	}
	return c.Redirect("/admin")
}

// POST /admin/products/:id/delete
func (h *InventoryHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).SendString("invalid product id")
	}
	if err := h.Inventory.Delete(ctx(c), id); err != nil {
		applog.Error(c, "admin.product.delete.fail", err, map[string]any{"product": id})
		h.notify(c, noticeError, "Failed to delete product.")
		return c.Redirect("/admin")
	}
	applog.Audit(c, "admin.product.delete", map[string]any{"product": id})
	h.notify(c, noticeSuccess, "Product deleted successfully!")
	return c.Redirect("/admin")
}

// formUpload returns the picked file for field, or nil when none was sent.
func formUpload(c *fiber.Ctx, field string) (*services.Upload, error) {
	fh, err := c.FormFile(field)
	if err != nil || fh == nil || fh.Size == 0 {
		return nil, nil
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	b, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return &services.Upload{Filename: fh.Filename, Body: bytes.NewReader(b)}, nil
}
