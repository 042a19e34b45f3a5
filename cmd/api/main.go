package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"library-backend/internal/config"
	"library-backend/internal/db"
	"library-backend/internal/httpserver"
	bookrepo "library-backend/internal/repository/book"
	campusrepo "library-backend/internal/repository/campus"
	cardrepo "library-backend/internal/repository/card"
	customerrepo "library-backend/internal/repository/customer"
	librarianrepo "library-backend/internal/repository/librarian"
	loanrepo "library-backend/internal/repository/loan"
	tokenrepo "library-backend/internal/repository/token"
	wishlistrepo "library-backend/internal/repository/wishlist"
	authsvc "library-backend/internal/service/auth"
	catalogsvc "library-backend/internal/service/catalog"
	customersvc "library-backend/internal/service/customer"
	loansvc "library-backend/internal/service/loan"
	wishlistsvc "library-backend/internal/service/wishlist"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString, cfg.DBMaxConns)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	bookRepo := bookrepo.NewPostgres(dbpool, logger)
	customerRepo := customerrepo.NewPostgres(dbpool, logger)
	cardRepo := cardrepo.NewPostgres(dbpool)
	loanRepo := loanrepo.NewPostgres(dbpool, logger)
	wishlistRepo := wishlistrepo.NewPostgres(dbpool, logger)
	librarianRepo := librarianrepo.NewPostgres(dbpool)
	campusRepo := campusrepo.NewPostgres(dbpool)
	tokenRepo := tokenrepo.NewPostgres(dbpool)

	catalogService := catalogsvc.New(bookRepo)
	customerService := customersvc.New(customerRepo, cardRepo, campusRepo)
	loanService := loansvc.New(loanRepo, bookRepo)
	wishlistService := wishlistsvc.New(wishlistRepo)
	authService := authsvc.New(customerRepo, librarianRepo, tokenRepo, cfg.SessionTTL)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		CatalogSvc:  catalogService,
		CustomerSvc: customerService,
		LoanSvc:     loanService,
		WishlistSvc: wishlistService,
		AuthSvc:     authService,
		CampusRepo:  campusRepo,
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
