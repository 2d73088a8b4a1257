package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"bingelist/internal/store"
	"bingelist/shared/go/config"
	"bingelist/shared/go/logging"
)

func main() {
	_ = godotenv.Load("config/local.env")

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: os.Stdout,
	})
	logging.SetGlobalLogger(logger)

	db, err := openDatabase(context.Background(), cfg.Database.URL)
	if err != nil {
		logger.Fatal(err, "connect to database")
	}
	defer db.Close()

	dataStore := store.New(db)
	if err := dataStore.EnsureSchema(context.Background()); err != nil {
		logger.Fatal(err, "ensure schema")
	}

	handler := newHTTPHandler(cfg, dataStore)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("server listening on %s", addr))
	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.Fatal(err, "server error")
	}
}
