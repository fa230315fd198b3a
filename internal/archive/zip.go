// Пакет archive собирает ZIP со всеми фотографиями одного клиента.
package archive

import (
	"archive/zip"
	"compress/flate"
	"context"
	"fmt"
	"io"

	"PhotoCollect/internal/storage"
)

// WriteZip стримит перечисленные файлы пространства в w как ZIP с
// максимальным сжатием (уровень 9, как у оригинала). Архив пишется
// по мере чтения, в памяти целиком не держится.
func WriteZip(ctx context.Context, b storage.Backend, namespace string, files []string, w io.Writer) error {
	zw := zip.NewWriter(w)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, flate.BestCompression)
	})

	for _, name := range files {
		rc, err := b.Open(ctx, namespace, name)
		if err != nil {
			return fmt.Errorf("archive: open %s/%s: %w", namespace, name, err)
		}
		fw, err := zw.Create(name)
		if err != nil {
			rc.Close()
			return fmt.Errorf("archive: add %s: %w", name, err)
		}
		if _, err := io.Copy(fw, rc); err != nil {
			rc.Close()
			return fmt.Errorf("archive: write %s: %w", name, err)
		}
		rc.Close()
	}
	return zw.Close()
}
