package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"PhotoCollect/internal/archive"
	"PhotoCollect/internal/models"
	"PhotoCollect/internal/storage"

	"github.com/go-chi/chi/v5"
)

// namespaceParam достаёт имя клиента из URL и прогоняет через ту же
// санитизацию, что и приём загрузок — грязное имя не дойдёт до диска.
func namespaceParam(r *http.Request) string {
	return storage.SanitizeNamespace(chi.URLParam(r, "userName"))
}

func photoParam(r *http.Request) string {
	return filepath.Base(chi.URLParam(r, "photoName"))
}

// HandleUserPhotos — GET /api/user-photos/{userName}: список фотографий
// клиента со ссылками на скачивание.
func (app *App) HandleUserPhotos(w http.ResponseWriter, r *http.Request) {
	ns := namespaceParam(r)

	ok, err := app.Store.Exists(r.Context(), ns)
	if err != nil {
		app.respondErr(w, http.StatusInternalServerError, "获取照片列表失败", err)
		return
	}
	if !ok {
		app.respondErr(w, http.StatusNotFound, "用户不存在", nil)
		return
	}

	names, err := app.Store.List(r.Context(), ns)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		app.respondErr(w, http.StatusInternalServerError, "获取照片列表失败", err)
		return
	}

	photos := make([]models.Photo, 0, len(names))
	for _, name := range names {
		photos = append(photos, models.Photo{
			FileName:    name,
			DownloadURL: "/uploads/" + ns + "/" + name,
		})
	}
	writeJSON(w, http.StatusOK, models.UserPhotos{
		Success:    true,
		UserName:   ns,
		PhotoCount: len(photos),
		Photos:     photos,
	})
}

// HandleDeletePhoto — DELETE /delete-photo/{userName}/{photoName}.
func (app *App) HandleDeletePhoto(w http.ResponseWriter, r *http.Request) {
	ns, photo := namespaceParam(r), photoParam(r)

	ok, err := app.Store.Delete(r.Context(), ns, photo)
	if err != nil {
		app.respondErr(w, http.StatusInternalServerError, "照片删除失败", err)
		return
	}
	if !ok {
		app.respondErr(w, http.StatusNotFound, "照片不存在", nil)
		return
	}
	app.Thumbs.Invalidate(ns + "/" + photo)
	slog.Info("photo deleted", "userName", ns, "fileName", photo)
	app.respondOK(w, "照片删除成功", nil)
}

// HandleDeleteUser — DELETE /delete-user/{userName}: каскадно сносит
// всё пространство клиента.
func (app *App) HandleDeleteUser(w http.ResponseWriter, r *http.Request) {
	ns := namespaceParam(r)

	ok, err := app.Store.DeleteNamespace(r.Context(), ns)
	if err != nil {
		app.respondErr(w, http.StatusInternalServerError, "用户照片删除失败", err)
		return
	}
	if !ok {
		app.respondErr(w, http.StatusNotFound, "用户不存在", nil)
		return
	}
	app.Thumbs.InvalidateNamespace(ns)
	slog.Info("namespace deleted", "userName", ns)
	app.respondOK(w, "用户照片删除成功", nil)
}

// countingWriter отмечает, ушёл ли уже хоть один байт ответа —
// после этого менять статус поздно, остаётся оборвать соединение.
type countingWriter struct {
	http.ResponseWriter
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.ResponseWriter.Write(p)
	cw.n += int64(n)
	return n, err
}

// HandleDownloadAll — GET /download-all/{userName}: ZIP со всеми
// фотографиями клиента, отдаётся потоково.
func (app *App) HandleDownloadAll(w http.ResponseWriter, r *http.Request) {
	ns := namespaceParam(r)

	ok, err := app.Store.Exists(r.Context(), ns)
	if err != nil {
		app.respondErr(w, http.StatusInternalServerError, "批量下载失败", err)
		return
	}
	if !ok {
		app.respondErr(w, http.StatusNotFound, "用户不存在", nil)
		return
	}

	names, err := app.Store.List(r.Context(), ns)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		app.respondErr(w, http.StatusInternalServerError, "批量下载失败", err)
		return
	}
	var photos []string
	for _, name := range names {
		if storage.IsImage(name) {
			photos = append(photos, name)
		}
	}
	if len(photos) == 0 {
		app.respondErr(w, http.StatusNotFound, "该用户没有照片", nil)
		return
	}

	zipName := fmt.Sprintf("%s_photos_%d.zip", ns, app.Now().UnixMilli())
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", `attachment; filename="`+zipName+`"`)

	cw := &countingWriter{ResponseWriter: w}
	if err := archive.WriteZip(r.Context(), app.Store, ns, photos, cw); err != nil {
		if cw.n == 0 {
			app.respondErr(w, http.StatusInternalServerError, "ZIP文件生成失败", err)
			return
		}
		// часть архива уже ушла клиенту — только логируем обрыв
		slog.Error("zip stream aborted", "userName", ns, "err", err)
	}
}

// ServePhoto — GET /uploads/{userName}/{photoName}: отдача оригинала
// через бэкенд, работает одинаково для диска и объектного хранилища.
func (app *App) ServePhoto(w http.ResponseWriter, r *http.Request) {
	ns, photo := namespaceParam(r), photoParam(r)

	rc, err := app.Store.Open(r.Context(), ns, photo)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		app.respondErr(w, http.StatusInternalServerError, "照片读取失败", err)
		return
	}
	defer rc.Close()

	ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(photo)))
	if ct == "" {
		ct = "application/octet-stream"
	}
	w.Header().Set("Content-Type", ct)
	if _, err := io.Copy(w, rc); err != nil {
		slog.Error("photo stream failed", "userName", ns, "fileName", photo, "err", err)
	}
}

// HandleThumbnail — GET /thumbnail/{userName}/{photoName}: JPEG-миниатюра
// для сетки админки. Если декодировать не вышло (например webp),
// отдаём оригинал как есть.
func (app *App) HandleThumbnail(w http.ResponseWriter, r *http.Request) {
	ns, photo := namespaceParam(r), photoParam(r)

	rc, err := app.Store.Open(r.Context(), ns, photo)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		app.respondErr(w, http.StatusInternalServerError, "照片读取失败", err)
		return
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		app.respondErr(w, http.StatusInternalServerError, "照片读取失败", err)
		return
	}

	buf, err := app.Thumbs.Thumbnail(ns+"/"+photo, bytes.NewReader(data))
	if err != nil {
		ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(photo)))
		if ct == "" {
			ct = "application/octet-stream"
		}
		w.Header().Set("Content-Type", ct)
		_, _ = w.Write(data)
		return
	}
	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write(buf)
}
