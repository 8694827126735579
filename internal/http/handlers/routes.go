package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	applog "artspace/internal/log"
)

// Register mounts the page routes. LoadSession runs first so every handler
// sees the visitor's session.
func Register(app *fiber.App, d *Deps, loginMax int) {
	app.Use(LoadSession(d.Auth))

	app.Get("/", d.HomeHandler.Home)
	app.Get("/gallery", d.GalleryHandler.Gallery)
	app.Get("/product/:id", d.ProductHandler.Detail)

	// Cart
	app.Get("/cart", d.CartHandler.View)
	app.Post("/cart", d.CartHandler.Add)
	app.Post("/cart/remove", d.CartHandler.Remove)

	// Checkout guards itself so it can queue its own notices.
	app.Get("/checkout", d.OrderHandler.CheckoutPage)
	app.Post("/checkout", d.OrderHandler.Place)

	app.Get("/dashboard", RequireUser(), d.OrderHandler.Dashboard)
	app.Post("/dashboard/orders/:id/cancel", RequireUser(), d.OrderHandler.Cancel)

	// Auth routes (login and registration throttled)
	authLimit := func(form string) fiber.Handler {
		return limiter.New(limiter.Config{
			Max:        loginMax,
			Expiration: 10 * time.Minute,
			LimitReached: func(c *fiber.Ctx) error {
				applog.Security(c, "rate."+form+".hit", nil)
				c.Status(fiber.StatusTooManyRequests)
				return d.Pages.render(c, form, fiber.Map{"Err": "Too many attempts. Please try again later."})
			},
		})
	}
	app.Get("/login", d.AuthHandler.LoginForm)
	app.Post("/login", authLimit("login"), d.AuthHandler.Login)
	app.Get("/register", d.AuthHandler.RegisterForm)
	app.Post("/register", authLimit("register"), d.AuthHandler.Register)
	app.Post("/logout", d.AuthHandler.Logout)

	// Admin
	admin := app.Group("/admin", RequireAdmin(d.Pages))
	admin.Get("/", d.InventoryHandler.Page)
	admin.Post("/products", d.InventoryHandler.Save)
	admin.Post("/products/:id/delete", d.InventoryHandler.Delete)
	admin.Get("/orders", d.AdminHandler.OrdersPage)
	admin.Post("/orders/:id/status", d.AdminHandler.UpdateOrderStatus)
	admin.Post("/orders/:id/payment", d.AdminHandler.UpdatePaymentStatus)
	admin.Get("/home-settings", d.AdminHandler.SettingsPage)
	admin.Post("/home-settings", d.AdminHandler.SaveSettings)

	app.Use(func(c *fiber.Ctx) error {
		c.Status(fiber.StatusNotFound)
		return d.Pages.render(c, "notfound", fiber.Map{"Message": "Page not found"})
	})
}
