package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"PhotoCollect/internal/sessions"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// AdminOnly — обёртка для браузерных страниц: без сессии уводим на логин.
// Позволяет писать: r.Get("/admin", mw.AdminOnly(handler))
func AdminOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := sessions.CurrentUser(r); !ok {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		next(w, r)
	}
}

// AdminOnlyAPI — для JSON-ручек (DELETE и т.п.): без сессии отдаём 401
// в стандартном конверте, редиректить API-клиента некуда.
func AdminOnlyAPI(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := sessions.CurrentUser(r); !ok {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"success": false,
				"message": "需要登录",
			})
			return
		}
		next(w, r)
	}
}

// RequestLogger пишет строку на каждый запрос через общий slog
// (тот самый файл дня из internal/logging).
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		slog.Info("http",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"ip", r.RemoteAddr,
			"dur", time.Since(start).String(),
		)
	})
}
