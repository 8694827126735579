package handlers

import (
	"github.com/gofiber/fiber/v2"

	"artspace/internal/domain"
	applog "artspace/internal/log"
	"artspace/internal/services"
)

type HomeHandler struct {
	*Pages
	Settings *services.SettingsService
}

// Home falls back to the built-in images when the backend has none to give.
func (h *HomeHandler) Home(c *fiber.Ctx) error {
	s, err := h.Settings.Home(ctx(c))
	if err != nil {
		applog.Error(c, "home.settings.fail", err, nil)
		s = domain.DefaultHomeSettings()
	}
	if s.HeroImageURL == "" {
		s.HeroImageURL = domain.DefaultHomeSettings().HeroImageURL
	}
	return h.render(c, "home", fiber.Map{"Settings": s, "Categories": domain.Categories})
}
