package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/centavo-app/centavo/internal/category"
	categoryStore "github.com/centavo-app/centavo/internal/category/store"
	"github.com/centavo-app/centavo/internal/config"
	"github.com/centavo-app/centavo/internal/database"
	centavoHttp "github.com/centavo-app/centavo/internal/http"
	categoryHandler "github.com/centavo-app/centavo/internal/http/category"
	importHandler "github.com/centavo-app/centavo/internal/http/importcsv"
	txHandler "github.com/centavo-app/centavo/internal/http/transaction"
	"github.com/centavo-app/centavo/internal/importer"
	"github.com/centavo-app/centavo/internal/ledger"
	ledgerStore "github.com/centavo-app/centavo/internal/ledger/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(database.Config{
		ConnString:      cfg.ConnectionString(),
		MaxOpenConns:    cfg.DB.MaxOpenConns,
		MaxIdleConns:    cfg.DB.MaxIdleConns,
		ConnMaxLifetime: cfg.DB.ConnMaxLifetime,
	})
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	var (
		ledgerService   = ledger.NewService(ledgerStore.New(db))
		categoryService = category.NewService(categoryStore.New(db))
		importService   = importer.NewService(ledgerService)
	)

	var (
		transactionH = txHandler.NewHandler(ledgerService)
		importH      = importHandler.NewHandler(importService)
		categoryH    = categoryHandler.NewHandler(categoryService)
	)

	router := centavoHttp.New(transactionH, importH, categoryH, cfg.HTTP.AllowedOrigins)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
