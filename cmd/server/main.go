package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Gongwasubash/restro/internal/api"
	"github.com/Gongwasubash/restro/internal/cart"
	"github.com/Gongwasubash/restro/internal/catalog"
	"github.com/Gongwasubash/restro/internal/checkout"
	"github.com/Gongwasubash/restro/internal/config"
	"github.com/Gongwasubash/restro/internal/gateway"
	"github.com/Gongwasubash/restro/internal/orders"
	"github.com/Gongwasubash/restro/internal/session"
)

func main() {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	logger.Info("Restro ordering server starting")
	if cfg.Configured() {
		logger.WithField("gateway", cfg.GatewayURL).Info("Gateway endpoint configured")
	} else {
		logger.Warn("GATEWAY_URL is not set; serving setup notice until configured")
	}

	gw := gateway.NewClient(cfg.GatewayURL, cfg.GatewayTimeout, logger)
	sessions := session.NewStore(cfg.SessionSecret, cfg.SessionTTL)
	carts := cart.NewStore()

	catalogSvc := catalog.NewService(gw)
	orderSvc := orders.NewService(gw)
	checkoutSvc := checkout.NewService(gw, logger)

	router := api.NewRouter(api.RouterConfig{
		Handlers:     api.NewHandlers(catalogSvc, orderSvc, checkoutSvc, carts, logger),
		AuthHandlers: api.NewAuthHandlers(gw, sessions, logger),
		Admin:        api.NewAdminHandlers(catalogSvc, orderSvc, logger),
		Sessions:     sessions,
		Configured:   cfg.Configured(),
		Logger:       logger,
	})

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.WithField("addr", server.Addr).Info("HTTP server listening")
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			logger.Fatalf("Server error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Shutdown error: %v", err)
	}
}
