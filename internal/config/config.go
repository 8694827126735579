package config

import (
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port           string
	APIBaseURL     string
	APITimeout     time.Duration
	StoreBackend   string // sqlite | postgres | redis | memory
	StoreDSN       string
	RedisAddr      string
	TemplatesDir   string
	StaticDir      string
	LogFile        string
	LogLevel       string
	UploadMaxWidth uint
	CookieSecure   bool
}

func Load() Config {
	v := viper.New()
	v.SetDefault("port", "8081")
	v.SetDefault("api_base_url", "http://localhost:8080/api")
	v.SetDefault("api_timeout", "10s")
	v.SetDefault("store_backend", "sqlite")
	v.SetDefault("store_dsn", "artspace.db") // sqlite file in project root
	v.SetDefault("redis_addr", "localhost:6379")
	v.SetDefault("templates_dir", "./web/templates")
	v.SetDefault("static_dir", "./web/static")
	v.SetDefault("log_file", "") // empty: stdout only
	v.SetDefault("log_level", "info")
	v.SetDefault("upload_max_width", 1600)
	v.SetDefault("cookie_secure", false)
	v.AutomaticEnv()

	cfg := Config{
		Port:           v.GetString("port"),
		APIBaseURL:     strings.TrimRight(v.GetString("api_base_url"), "/"),
		APITimeout:     v.GetDuration("api_timeout"),
		StoreBackend:   strings.ToLower(v.GetString("store_backend")),
		StoreDSN:       v.GetString("store_dsn"),
		RedisAddr:      v.GetString("redis_addr"),
		TemplatesDir:   v.GetString("templates_dir"),
		StaticDir:      v.GetString("static_dir"),
		LogFile:        v.GetString("log_file"),
		LogLevel:       v.GetString("log_level"),
		UploadMaxWidth: v.GetUint("upload_max_width"),
		CookieSecure:   v.GetBool("cookie_secure"),
	}
	if cfg.APITimeout <= 0 {
		cfg.APITimeout = 10 * time.Second
	}
	log.Printf("[config] PORT=%s API_BASE_URL=%s STORE_BACKEND=%s STORE_DSN=%s LOG_FILE=%s",
		cfg.Port, cfg.APIBaseURL, cfg.StoreBackend, cfg.StoreDSN, cfg.LogFile)
	return cfg
}

// BackendOrigin is the scheme+host of the API base URL, used to resolve
// server-relative image paths such as /uploads/x.jpg.
func (c Config) BackendOrigin() string {
	u := c.APIBaseURL
	if i := strings.Index(u, "://"); i >= 0 {
		if j := strings.Index(u[i+3:], "/"); j >= 0 {
			return u[:i+3+j]
		}
	}
	return u
}
