package handlers

import (
	"time"

	mw "PhotoCollect/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// Routes собирает весь HTTP-роутер приложения.
func (app *App) Routes() chi.Router {
	r := chi.NewRouter()

	// базовые middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(mw.RequestLogger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(chimw.RedirectSlashes) // /path/ -> /path

	// приём загрузок с киоска, без авторизации
	r.Post("/upload", app.HandleUpload)

	// ---------- Аутентификация администратора ----------
	r.Get("/login", app.ShowLogin)
	r.Post("/login", app.HandleLogin)
	r.Get("/logout", app.HandleLogout)
	r.Get("/change-password", mw.AdminOnly(app.ShowChangePassword))
	r.Post("/change-password", mw.AdminOnly(app.HandleChangePassword))

	// ---------- Админка ----------
	r.Get("/admin", mw.AdminOnly(app.HandleAdmin))
	r.Delete("/delete-photo/{userName}/{photoName}", mw.AdminOnlyAPI(app.HandleDeletePhoto))
	r.Delete("/delete-user/{userName}", mw.AdminOnlyAPI(app.HandleDeleteUser))

	// ---------- Публичная раздача и API ----------
	r.Get("/uploads/{userName}/{photoName}", app.ServePhoto)
	r.Get("/thumbnail/{userName}/{photoName}", app.HandleThumbnail)
	r.Get("/download-all/{userName}", app.HandleDownloadAll)
	r.Get("/api/user-photos/{userName}", app.HandleUserPhotos)

	r.Get("/", app.HandleHealth)
	return r
}
