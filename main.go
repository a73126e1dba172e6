package main

import (
	"os"
	"time"

	"github.com/fasthttp/router"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"

	"portfolio/internal/config"
	"portfolio/internal/db"
	"portfolio/internal/http/handlers"
	appmw "portfolio/internal/http/middleware"
)

func newLogger(env string) zerolog.Logger {
	level := zerolog.InfoLevel
	if env == "development" {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()
	if env == "development" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}
	return logger
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	log := newLogger(cfg.Env)

	sqlDB, err := db.Connect(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	if cfg.AdminEmail == "" || cfg.AdminPasswordHash == "" {
		log.Warn().Msg("admin credentials not configured; admin login is disabled")
	}

	handlers.InitPrometheusMetrics()

	r := router.New()

	admin := appmw.AdminAuth(cfg)

	r.GET("/healthz", func(ctx *fasthttp.RequestCtx) {
		ctx.SetStatusCode(fasthttp.StatusOK)
		ctx.SetBodyString("ok")
	})

	// Analytics: collection endpoints are public (called by the site),
	// the summary feeds the admin dashboard.
	r.POST("/api/analytics/track", handlers.TrackEvent(sqlDB, log))
	r.POST("/api/analytics", handlers.RecordPageView(sqlDB, log))
	r.GET("/api/analytics", admin(handlers.AnalyticsSummary(sqlDB, log)))

	r.POST("/api/auth", handlers.Login(cfg, log))
	r.DELETE("/api/auth", handlers.Logout())

	// Content: public reads, admin-only mutations.
	r.GET("/api/hero", handlers.GetHero(sqlDB, log))
	r.PUT("/api/hero", admin(handlers.UpdateHero(sqlDB, log)))

	r.GET("/api/about", handlers.GetAbout(sqlDB, log))
	r.PUT("/api/about", admin(handlers.UpdateAbout(sqlDB, log)))

	r.GET("/api/contact", handlers.GetContact(sqlDB, log))
	r.PUT("/api/contact", admin(handlers.UpdateContact(sqlDB, log)))

	r.GET("/api/experience", handlers.ListExperience(sqlDB, log))
	r.POST("/api/experience", admin(handlers.CreateExperience(sqlDB, log)))
	r.PUT("/api/experience", admin(handlers.UpdateExperience(sqlDB, log)))
	r.DELETE("/api/experience", admin(handlers.DeleteExperience(sqlDB, log)))

	r.GET("/api/projects", handlers.ListProjects(sqlDB, log))
	r.POST("/api/projects", admin(handlers.CreateProject(sqlDB, log)))
	r.PUT("/api/projects", admin(handlers.UpdateProject(sqlDB, log)))
	r.DELETE("/api/projects", admin(handlers.DeleteProject(sqlDB, log)))

	r.GET("/api/product-projects", handlers.ListProductProjects(sqlDB, log))
	r.POST("/api/product-projects", admin(handlers.CreateProductProject(sqlDB, log)))
	r.PUT("/api/product-projects", admin(handlers.UpdateProductProject(sqlDB, log)))
	r.DELETE("/api/product-projects", admin(handlers.DeleteProductProject(sqlDB, log)))

	r.POST("/api/upload", admin(handlers.Upload(cfg, log)))
	r.DELETE("/api/upload", admin(handlers.DeleteUpload(cfg, log)))
	r.ServeFiles("/uploads/{filepath:*}", cfg.UploadDir)

	r.GET("/metrics", admin(handlers.MetricsHandler()))

	handler := appmw.RequestLogger(log)(r.Handler)

	log.Info().Str("addr", cfg.ListenAddr).Msg("portfolio backend listening")
	if err := fasthttp.ListenAndServe(cfg.ListenAddr, handler); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}
