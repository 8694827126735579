package log

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	mu       sync.RWMutex
	logger   = zerolog.New(os.Stdout)
	minLevel = zerolog.InfoLevel
)

// SetOutput redirects every subsequent entry to w.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger = zerolog.New(w)
}

// SetLevel drops entries below lvl ("debug", "info", "warn", "error").
// Audit entries are logged at info.
func SetLevel(lvl string) {
	l, err := zerolog.ParseLevel(lvl)
	if err != nil || l == zerolog.NoLevel {
		l = zerolog.InfoLevel
	}
	mu.Lock()
	minLevel = l
	mu.Unlock()
}

// FileWriter returns stdout teed into a size-rotated file at path.
func FileWriter(path string) io.Writer {
	return io.MultiWriter(os.Stdout, &lumberjack.Logger{
		Filename:   path,
		MaxSize:    50, // MB
		MaxBackups: 5,
		MaxAge:     30,
		Compress:   true,
	})
}

func write(level string, zl zerolog.Level, c *fiber.Ctx, action string, err error, fields map[string]any) {
	mu.RLock()
	l, floor := logger, minLevel
	mu.RUnlock()
	if zl < floor {
		return
	}

	e := l.Log().
		Str("ts", time.Now().UTC().Format(time.RFC3339)).
		Str("level", level).
		Str("action", action)
	if c != nil {
		e = e.Str("ip", c.IP()).
			Str("method", c.Method()).
			Str("path", c.Path())
		if st := c.Response().StatusCode(); st != 0 {
			e = e.Int("status", st)
		}
		if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
			e = e.Str("req_id", rid)
		}
		if u, ok := c.Locals("username").(string); ok && u != "" {
			e = e.Str("user", u)
		}
	}
	if err != nil {
		e = e.Str("err", err.Error())
	}
	if len(fields) > 0 {
		e = e.Interface("fields", fields)
	}
	e.Send()
}

func Debug(c *fiber.Ctx, action string, fields map[string]any) {
	write("debug", zerolog.DebugLevel, c, action, nil, fields)
}
func Info(c *fiber.Ctx, action string, fields map[string]any) {
	write("info", zerolog.InfoLevel, c, action, nil, fields)
}
func Audit(c *fiber.Ctx, action string, fields map[string]any) {
	write("audit", zerolog.InfoLevel, c, action, nil, fields)
}
func Security(c *fiber.Ctx, action string, fields map[string]any) {
	write("warn", zerolog.WarnLevel, c, action, nil, fields)
}
func Error(c *fiber.Ctx, action string, err error, fields map[string]any) {
	write("error", zerolog.ErrorLevel, c, action, err, fields)
}
