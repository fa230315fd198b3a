package handlers

import "net/http"

// HandleHealth — GET /: живость сервиса плюс куда слать загрузки.
func (app *App) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message":        "服务器运行正常",
		"uploadEndpoint": "/upload",
		"adminEndpoint":  "/admin",
		"uploadDir":      app.Cfg.UploadDir,
		"storageType":    app.Store.Kind(),
	})
}
