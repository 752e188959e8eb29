package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	httpapi "pharmapos/internal/http"
	"pharmapos/internal/repository"
	"pharmapos/internal/seed"
	"pharmapos/internal/service"

	_ "pharmapos/docs"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	store := repository.NewMemoryStore()
	cartRepo := repository.NewMemoryCart(store)
	salesRepo := repository.NewMemorySales(store)
	tx := repository.NewMemoryTx(store)

	notifier := service.NewNotifier(service.DefaultNotificationTTL)
	catalogSvc := service.NewCatalogService(store, tx, notifier, logger)
	cartSvc := service.NewCartService(store, cartRepo, tx, notifier)
	checkoutSvc := service.NewCheckoutService(store, cartRepo, salesRepo, tx, notifier)
	salesSvc := service.NewSalesService(salesRepo)
	overviewSvc := service.NewOverviewService(store, salesRepo)

	loaded, err := catalogSvc.Load(context.Background(), seed.Products())
	if err != nil {
		logger.Fatal("seed load failed", zap.Error(err))
	}
	logger.Info("catalog seeded", zap.Int("products", loaded))

	srv := httpapi.NewServer(catalogSvc, cartSvc, checkoutSvc, salesSvc, overviewSvc, notifier, logger)

	addr := os.Getenv("POS_ADDR")
	if addr == "" {
		addr = ":9091"
	}
	httpServer := &http.Server{
		Addr:    addr,
		Handler: srv.Engine(),
	}

	go func() {
		logger.Info("HTTP server listening", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}
}
