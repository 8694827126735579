package handlers

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"artspace/internal/api"
	"artspace/internal/domain"
	applog "artspace/internal/log"
	"artspace/internal/services"
	"artspace/internal/validate"
)

// GalleryHandler renders the filterable gallery. All filtering happens in the
// backend; this only forwards category and search.
type GalleryHandler struct {
	*Pages
	Products *services.ProductService
}

func (h *GalleryHandler) Gallery(c *fiber.Ctx) error {
	category := strings.TrimSpace(c.Query("category"))
	if _, ok := validate.Category(category); !ok {
		category = domain.CategoryAll
	}
	search := ""
	if raw := c.Query("search"); strings.TrimSpace(raw) != "" {
		q, ok := validate.Q(raw)
		if !ok {
			applog.Security(c, "validation.fail", map[string]any{"field": "search"})
			c.Status(fiber.StatusBadRequest)
			return h.render(c, "gallery", h.page(category, q, nil, fmt.Sprintf("Invalid search: use at most %d printable characters", validate.MaxQ)))
		}
		search = q
	}

	list, err := h.Products.List(ctx(c), services.Filter{Category: category, Search: search})
	if err != nil {
		applog.Error(c, "gallery.list.fail", err, map[string]any{"category": category, "search": search})
		return h.render(c, "gallery", h.page(category, search, nil, api.Message(err)))
	}
	return h.render(c, "gallery", h.page(category, search, list, ""))
}

func (h *GalleryHandler) page(category, search string, list []domain.Product, errMsg string) fiber.Map {
	return fiber.Map{
		"Products":   list,
		"Categories": append([]string{domain.CategoryAll}, domain.Categories...),
		"Category":   category,
		"Search":     search,
		"Err":        errMsg,
	}
}
