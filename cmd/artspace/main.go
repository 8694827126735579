package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"artspace/internal/api"
	"artspace/internal/config"
	"artspace/internal/http/handlers"
	applog "artspace/internal/log"
	"artspace/internal/repos"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		w := applog.FileWriter(cfg.LogFile)
		applog.SetOutput(w)
		log.SetOutput(w)
	}
	applog.SetLevel(cfg.LogLevel)

	store, err := repos.NewStore(cfg.StoreBackend, cfg.StoreDSN, cfg.RedisAddr)
	if err != nil {
		log.Fatal(err)
	}
	client := api.New(cfg.APIBaseURL, cfg.APITimeout)
	log.Printf("[api] backend %s (timeout %s)", cfg.APIBaseURL, cfg.APITimeout)

	deps := handlers.NewDeps(store, client, cfg.UploadMaxWidth, cfg.CookieSecure)
	app := handlers.NewApp(deps, handlers.Options{
		TemplatesDir:  cfg.TemplatesDir,
		StaticDir:     cfg.StaticDir,
		BackendOrigin: cfg.BackendOrigin(),
		CookieSecure:  cfg.CookieSecure,
		CSRF:          true,
		AccessLog:     true,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("[http] listening on :%s", cfg.Port)
		return app.Listen(":" + cfg.Port)
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Println("[http] shutting down")
		return app.ShutdownWithTimeout(10 * time.Second)
	})
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal(err)
	}
	if c, ok := store.(interface{ Close() error }); ok {
		_ = c.Close()
	}
}
