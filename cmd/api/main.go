package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"storefront-orders/internal/config"
	"storefront-orders/internal/httpserver"
	documentrepo "storefront-orders/internal/repository/document"
	ordersvc "storefront-orders/internal/service/order"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	if !cfg.StoreConfigured() {
		logger.Printf("warning: content store secrets missing, submissions will be rejected")
	}

	docRepo := documentrepo.NewGitHub(documentrepo.GitHubConfig{
		BaseURL: cfg.APIBaseURL,
		Token:   cfg.Token,
		Owner:   cfg.RepoOwner,
		Repo:    cfg.RepoName,
		Branch:  cfg.Branch,
		Path:    cfg.OrdersPath,
	}, nil, logger)
	orderService := ordersvc.New(docRepo, logger)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, httpserver.Deps{
		OrderSvc:        orderService,
		StoreConfigured: cfg.StoreConfigured(),
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
