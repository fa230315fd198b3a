package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"
)

// ErrNotFound — нет такого пространства или файла.
var ErrNotFound = errors.New("storage: not found")

// Location — где в итоге лежит файл: путь на диске либо ключ+URL в бакете.
type Location struct {
	Path string
	Key  string
	URL  string
}

// Backend — куда складываются фотографии. Две реализации: локальный диск
// и S3-совместимое объектное хранилище. Выбор делается один раз на старте.
type Backend interface {
	// Put сохраняет файл, создавая пространство при необходимости.
	Put(ctx context.Context, namespace, filename string, r io.Reader, size int64, contentType string) (Location, error)
	// Open отдаёт содержимое файла для скачивания/архивации.
	Open(ctx context.Context, namespace, filename string) (io.ReadCloser, error)
	// List перечисляет файлы пространства. Локальный бэкенд фильтрует
	// по расширениям изображений, объектный — нет (наследие оригинала).
	List(ctx context.Context, namespace string) ([]string, error)
	// Namespaces перечисляет все пространства для админки.
	Namespaces(ctx context.Context) ([]string, error)
	// Delete удаляет один файл. true — файл был и удалён.
	Delete(ctx context.Context, namespace, filename string) (bool, error)
	// DeleteNamespace рекурсивно удаляет пространство целиком.
	DeleteNamespace(ctx context.Context, namespace string) (bool, error)
	Exists(ctx context.Context, namespace string) (bool, error)
	// Kind — "local" или "object", попадает в ответ аплоада как storageType.
	Kind() string
}

// Расширения, которые считаем фотографиями при листинге.
var imageExts = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".gif": true}

// IsImage — true для файлов с "фотографическим" расширением.
func IsImage(name string) bool {
	return imageExts[strings.ToLower(filepath.Ext(name))]
}

const maxNamespaceLen = 50

// SanitizeNamespace чистит клиентское имя клиента до безопасного имени
// каталога: выбрасывает разделители путей и спецсимволы, режет до 50 рун.
// Пустой остаток превращается в "unknown".
func SanitizeNamespace(name string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(name) {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|', 0:
			continue
		}
		b.WriteRune(r)
	}
	out := b.String()
	if runes := []rune(out); len(runes) > maxNamespaceLen {
		out = string(runes[:maxNamespaceLen])
	}
	// "." и ".." после чистки всё ещё опасны как имена каталогов
	if out == "" || out == "." || out == ".." {
		return "unknown"
	}
	return out
}

// TimestampName строит имя файла вида 20240131235959123.jpg —
// миллисекундная метка локальных часов плюс исходное расширение.
// В пределах одной миллисекунды имена совпадают и второй файл молча
// перезапишет первый. Так жил оригинальный сервис, поведение сохранено.
func TimestampName(t time.Time, original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	return t.Format("20060102150405") + fmt.Sprintf("%03d", t.Nanosecond()/int(time.Millisecond)) + ext
}
