package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"

	"github.com/youruser/ticketrender/internal/api"
	"github.com/youruser/ticketrender/internal/cache"
	"github.com/youruser/ticketrender/internal/config"
	"github.com/youruser/ticketrender/internal/qr"
	"github.com/youruser/ticketrender/internal/render"
	"github.com/youruser/ticketrender/internal/util"
)

func main() {
	cfg := config.Load()

	level := slog.LevelDebug
	if cfg.IsProduction() {
		level = slog.LevelInfo
		gin.SetMode(gin.ReleaseMode)
	}
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)

	opts := []render.Option{
		render.WithLogger(log),
		render.WithQRTimeout(cfg.QRFetchTimeout),
		render.WithBrand(cfg.BrandName),
		render.WithLocale(parseLocale(cfg.Locale, log)),
	}

	if cfg.RedisURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		client, err := cache.NewClient(ctx, cfg.RedisURL, cfg.RedisPassword, cfg.RedisDB)
		cancel()
		if err != nil {
			log.Warn("artifact cache disabled", "error", err)
		} else {
			defer client.Close()
			opts = append(opts, render.WithCache(cache.NewRedisCache(client, cfg.ArtifactTTL)))
			log.Info("artifact cache enabled", "ttl", cfg.ArtifactTTL)
		}
	}

	// without a ticket service the QR codes are generated in-process
	var fetcher qr.Fetcher = qr.LocalFetcher{Size: qr.DefaultSize}
	if cfg.QRServiceURL != "" {
		fetcher = qr.NewHTTPFetcher(cfg.QRServiceURL, util.DefaultClient)
	}
	logo := render.LogoFrom(cfg.LogoPath, cfg.LogoURL, util.DefaultClient)
	renderer := render.New(logo, fetcher, opts...)

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	api.RegisterRoutes(r, api.NewHandler(renderer, log), cfg.EnableMetrics)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Info("starting server", "addr", "http://localhost:"+cfg.Port,
			"environment", cfg.Environment, "logo", logo.Name())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("shutdown", "error", err)
	}
}

func parseLocale(s string, log *slog.Logger) language.Tag {
	tag, err := language.Parse(s)
	if err != nil {
		log.Warn("unknown locale, using English", "locale", s, "error", err)
		return language.English
	}
	return tag
}
