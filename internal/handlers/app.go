package handlers

import (
	"time"

	"PhotoCollect/internal/config"
	"PhotoCollect/internal/credentials"
	"PhotoCollect/internal/imaging"
	"PhotoCollect/internal/storage"
)

// App — все зависимости хендлеров, собирается один раз в main.
// Бэкенд хранения выбран на старте и больше не меняется.
type App struct {
	Cfg    config.Config
	Creds  *credentials.Store
	Store  storage.Backend
	Thumbs *imaging.Cache

	// Now подменяется в тестах, чтобы управлять именами файлов
	Now func() time.Time
}

func New(cfg config.Config, creds *credentials.Store, store storage.Backend) *App {
	return &App{
		Cfg:    cfg,
		Creds:  creds,
		Store:  store,
		Thumbs: imaging.NewCache(),
		Now:    time.Now,
	}
}
