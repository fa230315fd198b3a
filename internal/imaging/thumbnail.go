// Пакет imaging делает миниатюры для сетки в админке, чтобы не гонять
// в браузер пятимегабайтные оригиналы.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"strings"
	"sync"

	"github.com/nfnt/resize"
)

const (
	thumbSize   = 300
	jpegQuality = 85
)

// Cache — миниатюры в памяти, ключ "клиент/файл". Инвалидация только
// при удалении; файлы не переименовываются, так что ключ стабилен.
type Cache struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

func NewCache() *Cache {
	return &Cache{entries: make(map[string][]byte)}
}

// Thumbnail возвращает JPEG-миниатюру (максимум 300x300) для изображения
// из r. Повторный запрос того же ключа отдаётся из кэша без декодирования.
func (c *Cache) Thumbnail(key string, r io.Reader) ([]byte, error) {
	c.mu.RLock()
	buf, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		return buf, nil
	}

	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("imaging: decode %s: %w", key, err)
	}
	thumb := resize.Thumbnail(thumbSize, thumbSize, img, resize.Lanczos3)

	var out bytes.Buffer
	if err := jpeg.Encode(&out, thumb, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("imaging: encode %s: %w", key, err)
	}
	buf = out.Bytes()

	c.mu.Lock()
	c.entries[key] = buf
	c.mu.Unlock()
	return buf, nil
}

// Invalidate выбрасывает из кэша один файл.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// InvalidateNamespace выбрасывает все миниатюры клиента.
func (c *Cache) InvalidateNamespace(namespace string) {
	prefix := namespace + "/"
	c.mu.Lock()
	for k := range c.entries {
		if strings.HasPrefix(k, prefix) {
			delete(c.entries, k)
		}
	}
	c.mu.Unlock()
}
