package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"online-bookstore/internal/config"
	"online-bookstore/internal/db"
	"online-bookstore/internal/httpserver"
	bookrepo "online-bookstore/internal/repository/book"
	cartrepo "online-bookstore/internal/repository/cart"
	categoryrepo "online-bookstore/internal/repository/category"
	orderrepo "online-bookstore/internal/repository/order"
	booksvc "online-bookstore/internal/service/book"
	cartsvc "online-bookstore/internal/service/cart"
	categorysvc "online-bookstore/internal/service/category"
	ordersvc "online-bookstore/internal/service/order"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	bookRepo := bookrepo.NewPostgres(dbpool, logger)
	cartRepo := cartrepo.NewPostgres(dbpool)
	categoryRepo := categoryrepo.NewPostgres(dbpool)
	orderRepo := orderrepo.NewPostgres(dbpool, logger)

	srv := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		Books:      booksvc.New(bookRepo),
		Categories: categorysvc.New(categoryRepo),
		Carts:      cartsvc.New(cartRepo, bookRepo),
		Orders:     ordersvc.New(orderRepo, cartRepo, logger),
	})

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
