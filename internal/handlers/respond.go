package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
)

// envelope — единая форма ответа API: {success, message, data?}.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (app *App) respondOK(w http.ResponseWriter, message string, data any) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Message: message, Data: data})
}

// respondErr отдаёт конверт с ошибкой. Подробность err дописывается в
// сообщение только вне production, в лог — всегда.
func (app *App) respondErr(w http.ResponseWriter, code int, message string, err error) {
	if err != nil {
		slog.Error("request failed", "status", code, "message", message, "err", err)
		if !app.Cfg.Production() {
			message = message + ": " + err.Error()
		}
	}
	writeJSON(w, code, envelope{Success: false, Message: message})
}

// redirectMsg — браузерный флоу: сообщение уезжает query-параметром.
func redirectMsg(w http.ResponseWriter, r *http.Request, path, key, msg string) {
	http.Redirect(w, r, path+"?"+key+"="+url.QueryEscape(msg), http.StatusFound)
}
