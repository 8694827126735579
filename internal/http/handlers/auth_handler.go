package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"artspace/internal/api"
	"artspace/internal/log"
	"artspace/internal/services"
	"artspace/internal/validate"
)

type AuthHandler struct {
	*Pages
	Auth *services.AuthService
}

func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	return h.render(c, "login", fiber.Map{"Err": ""})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	sid := h.ensureSID(c)
	username := strings.TrimSpace(c.FormValue("username"))
	pass := c.FormValue("password")
	if username == "" || pass == "" {
		log.Security(c, "auth.login.fail", map[string]any{"username": username, "reason": "missing_fields"})
		c.Status(fiber.StatusUnauthorized)
		return h.render(c, "login", fiber.Map{"Err": "Username and password are required", "Username": username})
	}

	_, err := h.Auth.Login(ctx(c), sid, username, pass)
	if err != nil {
		log.Security(c, "auth.login.fail", map[string]any{"username": username, "status": api.StatusOf(err)})
		c.Status(fiber.StatusUnauthorized)
		return h.render(c, "login", fiber.Map{"Err": api.Message(err), "Username": username})
	}

	log.Audit(c, "auth.login.success", map[string]any{"username": username})
	return c.Redirect("/")
}

func (h *AuthHandler) RegisterForm(c *fiber.Ctx) error {
	return h.render(c, "register", fiber.Map{"Err": ""})
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	reg := services.Registration{
		Username: strings.TrimSpace(c.FormValue("username")),
		Email:    strings.TrimSpace(c.FormValue("email")),
		Password: c.FormValue("password"),
		Phone:    strings.TrimSpace(c.FormValue("phone")),
	}
	fail := func(status int, msg string) error {
		c.Status(status)
		return h.render(c, "register", fiber.Map{"Err": msg, "Form": reg})
	}
	if err := validate.Struct(reg); err != nil {
		log.Security(c, "auth.register.fail", map[string]any{"username": reg.Username, "reason": err.Error()})
		return fail(fiber.StatusBadRequest, err.Error())
	}
	if err := h.Auth.Register(ctx(c), reg); err != nil {
		log.Security(c, "auth.register.fail", map[string]any{"username": reg.Username, "status": api.StatusOf(err)})
		return fail(fiber.StatusBadRequest, api.Message(err))
	}
	log.Audit(c, "auth.register.success", map[string]any{"username": reg.Username})
	h.notify(c, noticeSuccess, "Registration Successful! Please login.")
	return c.Redirect("/login")
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sid := h.ensureSID(c)
	if err := h.Auth.Logout(ctx(c), sid); err != nil {
		log.Error(c, "auth.logout.fail", err, nil)
	}
	log.Audit(c, "auth.logout", map[string]any{"sid": sid})
	return c.Redirect("/login")
}
