package main

import (
	"log"
	"log/slog"
	"net/http"

	"PhotoCollect/internal/config"
	"PhotoCollect/internal/credentials"
	"PhotoCollect/internal/handlers"
	"PhotoCollect/internal/logging"
	"PhotoCollect/internal/storage"
)

func main() {
	cfg := config.Load()

	if _, err := logging.Setup(cfg.LogDir); err != nil {
		log.Fatalf("logging: setup failed: %v", err)
	}

	creds, err := credentials.Open(cfg.AdminUsersFile)
	if err != nil {
		log.Fatalf("credentials: %v", err)
	}

	// Бэкенд выбирается один раз: обе креды объектного хранилища на
	// месте — работаем с ним, иначе локальный диск. Отката на диск
	// посреди запроса нет: упала выгрузка — упал и запрос.
	var store storage.Backend
	if cfg.UseObjectStore() {
		store, err = storage.NewObject(cfg.Storage)
		if err != nil {
			log.Fatalf("storage: %v", err)
		}
		slog.Info("storage: using object store", "bucket", cfg.Storage.Bucket, "endpoint", cfg.Storage.Endpoint)
	} else {
		store, err = storage.NewLocal(cfg.UploadDir)
		if err != nil {
			log.Fatalf("storage: %v", err)
		}
		slog.Info("storage: using local disk", "dir", cfg.UploadDir)
	}

	app := handlers.New(cfg, creds, store)

	slog.Info("listening", "addr", cfg.Addr(), "env", cfg.Env)
	if err := http.ListenAndServe(cfg.Addr(), app.Routes()); err != nil {
		log.Fatal(err)
	}
}
