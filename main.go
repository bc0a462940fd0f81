package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/CorrelAid/function_relay/controllers"
	"github.com/CorrelAid/function_relay/inits"
	"github.com/CorrelAid/function_relay/logger"
	"github.com/CorrelAid/function_relay/middleware"
	"github.com/CorrelAid/function_relay/routines"
	"github.com/CorrelAid/function_relay/validators"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	envErr := godotenv.Load(".env")

	cfg, err := inits.LoadConfig()
	logger.Init(cfg != nil && cfg.Release())
	defer logger.Sync()
	if envErr != nil {
		logger.Info("no .env file found, using process environment")
	}
	if err != nil {
		logger.Fatal("config load failed", "err", err)
	}
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := inits.DBInit()
	if err != nil {
		logger.Fatal("relay journal init failed", "err", err)
	}
	go routines.StartCleanupRoutine(ctx, db, time.Hour)

	client := &http.Client{Timeout: cfg.RemoteTimeout}
	services, err := inits.ServicesInit(cfg, client)
	if err != nil {
		logger.Fatal("remote functions init failed", "err", err)
	}

	home := &controllers.HomeController{
		Blobs:            services.Blobs,
		Tables:           services.Tables,
		Queue:            services.Queue,
		Files:            services.Files,
		DB:               db,
		Retention:        cfg.RelayRetention,
		ImageContainer:   cfg.ImageContainer,
		ContractShare:    cfg.ContractShare,
		TurnstileSiteKey: cfg.TurnstileSiteKey,
	}

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(middleware.DomainWhitelistMiddleware(cfg.AllowedDomains))
	router.MaxMultipartMemory = cfg.MaxMultipartMemory

	protect := []gin.HandlerFunc{middleware.RateLimitMiddleware(cfg.MaxRequestsPerMinute)}
	if cfg.TurnstileSecret != "" {
		protect = append(protect, middleware.TurnstileMiddleware(validators.TurnstileConfig{
			Secret:    cfg.TurnstileSecret,
			TestToken: cfg.TestToken,
			Release:   cfg.Release(),
		}))
	}
	home.Register(router, protect...)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("http shutdown failed", "err", err)
		}
	}()

	logger.Info("starting http", "addr", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("http server crashed", "err", err)
	}
	logger.Info("http server stopped")
}
