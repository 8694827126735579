package handlers

import (
	"errors"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"artspace/internal/domain"
	applog "artspace/internal/log"
)

type Options struct {
	TemplatesDir  string
	StaticDir     string
	BackendOrigin string // prefix for relative image paths
	CookieSecure  bool
	CSRF          bool
	AccessLog     bool
	LoginMax      int
	BodyLimit     int
}

// Views loads the page templates with the storefront helpers.
func Views(dir, backendOrigin string) *html.Engine {
	engine := html.New(dir, ".html")
	engine.AddFunc("imageURL", func(u string) string { return ImageURL(backendOrigin, u) })
	engine.AddFunc("vnd", FormatVND)
	engine.AddFunc("dict", dict)
	return engine
}

// dict lets a partial take several values: dict "Product" p "Return" "/gallery".
func dict(kv ...any) map[string]any {
	m := make(map[string]any, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		if k, ok := kv[i].(string); ok {
			m[k] = kv[i+1]
		}
	}
	return m
}

// ImageURL shows backend-relative paths against the backend origin.
func ImageURL(origin, u string) string {
	if strings.HasPrefix(u, "/") && !strings.HasPrefix(u, "//") {
		return origin + u
	}
	return u
}

// FormatVND renders 2500000 as "2,500,000 VND".
func FormatVND(p domain.Price) string {
	return humanize.Comma(p.IntPart()) + " VND"
}

// NewApp builds the fiber app with the full middleware chain and every route.
func NewApp(d *Deps, opt Options) *fiber.App {
	if opt.LoginMax <= 0 {
		opt.LoginMax = 5
	}
	if opt.BodyLimit <= 0 {
		opt.BodyLimit = 10 << 20
	}
	app := fiber.New(fiber.Config{
		Views:     Views(opt.TemplatesDir, opt.BackendOrigin),
		BodyLimit: opt.BodyLimit,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			code := fiber.StatusInternalServerError
			msg := "Something went wrong. Please try again."
			var fe *fiber.Error
			if errors.As(err, &fe) && fe.Code < 500 {
				code, msg = fe.Code, fe.Message
			}
			if rerr := c.Status(code).Render("notfound", fiber.Map{"Message": msg}); rerr != nil {
				return c.Status(code).SendString(msg)
			}
			return nil
		},
	})

	app.Use(requestid.New())
	if opt.AccessLog {
		app.Use(logger.New())
	}
	app.Use(helmet.New(helmet.Config{CrossOriginEmbedderPolicy: "unsafe-none"}))
	if opt.CSRF {
		app.Use(csrf.New(csrf.Config{
			KeyLookup:      "form:csrf",
			CookieName:     "csrf_",
			CookieSameSite: "Lax",
			CookieSecure:   opt.CookieSecure,
			ContextKey:     "csrf",
			ErrorHandler: func(c *fiber.Ctx, err error) error {
				applog.Security(c, "csrf.fail", nil)
				return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{"Message": "Security check failed. Please refresh and try again."})
			},
		}))
		app.Use(func(c *fiber.Ctx) error {
			if tok, ok := c.Locals("csrf").(string); ok {
				c.Locals("CSRFToken", tok)
			}
			return c.Next()
		})
	}

	if opt.StaticDir != "" {
		app.Static("/static", opt.StaticDir)
	}
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	Register(app, d, opt.LoginMax)
	return app
}
