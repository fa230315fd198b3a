package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"

	"PhotoCollect/internal/storage"

	"github.com/google/uuid"
)

const maxUploadSize = 5 << 20 // 5 MB на файл и на каждое поле формы

var allowedMIME = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// Данные успешного аплоада внутри конверта.
type uploadResult struct {
	FileName    string `json:"fileName"`
	UserName    string `json:"userName"`
	StorageType string `json:"storageType"`
	FileSize    int64  `json:"fileSize"`
	FileType    string `json:"fileType"`
	FilePath    string `json:"filePath,omitempty"`
	ObjectKey   string `json:"objectKey,omitempty"`
	URL         string `json:"url,omitempty"`
}

// HandleUpload принимает multipart-загрузку: поле file + поле userName.
// Любая ошибка хранения отдаётся конвертом success:false, не голой 500.
func (app *App) HandleUpload(w http.ResponseWriter, r *http.Request) {
	// файл до 5MB плюс запас на поля и multipart-обвязку
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize*2+64<<10)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			app.respondErr(w, http.StatusBadRequest, "上传失败，无文件", nil)
			return
		}
		app.respondErr(w, http.StatusBadRequest, "文件大小不能超过5MB", nil)
		return
	}
	for field, vals := range r.MultipartForm.Value {
		for _, v := range vals {
			if len(v) > maxUploadSize {
				slog.Warn("upload: oversized form field", "field", field)
				app.respondErr(w, http.StatusBadRequest, "表单字段过大", nil)
				return
			}
		}
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		app.respondErr(w, http.StatusBadRequest, "上传失败，无文件", nil)
		return
	}
	defer file.Close()

	if header.Size > maxUploadSize {
		app.respondErr(w, http.StatusBadRequest, "文件大小不能超过5MB", nil)
		return
	}
	contentType := header.Header.Get("Content-Type")
	if !allowedMIME[contentType] {
		app.respondErr(w, http.StatusBadRequest, "不支持的文件类型，仅支持 JPEG/PNG/GIF/WebP", nil)
		return
	}

	userName := storage.SanitizeNamespace(r.FormValue("userName"))
	fileName := storage.TimestampName(app.Now(), header.Filename)

	// Буферизуем во временный файл: при объектном бэкенде локальная
	// копия удаляется после успешной выгрузки, при любой ошибке —
	// подчищается (неудачная зачистка только логируется).
	tmp, err := os.CreateTemp("", "photocollect-"+uuid.NewString()+"-*")
	if err != nil {
		app.respondErr(w, http.StatusInternalServerError, "上传失败", err)
		return
	}
	tmpPath := tmp.Name()
	defer func() {
		_ = tmp.Close()
		if err := os.Remove(tmpPath); err != nil && !os.IsNotExist(err) {
			slog.Warn("upload: temp file cleanup failed", "path", tmpPath, "err", err)
		}
	}()

	if _, err := io.Copy(tmp, file); err != nil {
		app.respondErr(w, http.StatusInternalServerError, "上传失败", err)
		return
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		app.respondErr(w, http.StatusInternalServerError, "上传失败", err)
		return
	}

	loc, err := app.Store.Put(r.Context(), userName, fileName, tmp, header.Size, contentType)
	if err != nil {
		app.respondErr(w, http.StatusInternalServerError, "上传失败", err)
		return
	}

	slog.Info("photo uploaded",
		"userName", userName,
		"fileName", fileName,
		"size", header.Size,
		"storage", app.Store.Kind(),
		"ip", r.RemoteAddr,
	)
	app.respondOK(w, "上传成功", uploadResult{
		FileName:    fileName,
		UserName:    userName,
		StorageType: app.Store.Kind(),
		FileSize:    header.Size,
		FileType:    contentType,
		FilePath:    loc.Path,
		ObjectKey:   loc.Key,
		URL:         loc.URL,
	})
}
