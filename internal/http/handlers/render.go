package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"artspace/internal/domain"
	applog "artspace/internal/log"
	"artspace/internal/repos"
	"artspace/internal/services"
)

// Pages holds what every rendered page needs: the nav cart badge and the
// visitor's queued notices.
type Pages struct {
	Cart         *services.CartService
	Notices      *repos.NoticeRepo
	CookieSecure bool
}

func (p *Pages) render(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	if u := sessionOf(c); u != nil {
		data["User"] = u
	}
	if sid := c.Cookies("sid"); sid != "" {
		data["CartCount"] = p.Cart.Count(ctx(c), sid)
		if list, err := p.Notices.Pop(ctx(c), sid); err == nil && len(list) > 0 {
			data["Notices"] = list
		}
	}
	if tok, _ := c.Locals("CSRFToken").(string); tok != "" {
		data["CSRFToken"] = tok
	}
	return c.Render(tmpl, data)
}

// notify queues a one-shot message for the next rendered page.
func (p *Pages) notify(c *fiber.Ctx, kind, text string) {
	sid := p.ensureSID(c)
	if err := p.Notices.Push(ctx(c), sid, domain.Notice{Kind: kind, Text: text}); err != nil {
		applog.Error(c, "notice.push.fail", err, nil)
	}
}

func (p *Pages) ensureSID(c *fiber.Ctx) string {
	if sid, _ := c.Locals("sid").(string); sid != "" {
		return sid
	}
	sid := c.Cookies("sid")
	if sid == "" {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     "sid",
			Value:    sid,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			Secure:   p.CookieSecure,
			Expires:  time.Now().Add(365 * 24 * time.Hour),
		})
	}
	c.Locals("sid", sid)
	return sid
}

func (p *Pages) notFound(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": msg})
}

// ctx carries the signed-in visitor's token to backend calls.
func ctx(c *fiber.Ctx) context.Context { return c.UserContext() }

func sessionOf(c *fiber.Ctx) *domain.Session {
	u, _ := c.Locals("user").(*domain.Session)
	return u
}

const (
	noticeSuccess = "success"
	noticeError   = "error"
	noticeInfo    = "info"
)
