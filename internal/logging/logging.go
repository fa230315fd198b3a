package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// dailyWriter пишет в logs/<YYYYMMDD>.log и сам переоткрывает файл
// при смене даты. Ротации/очистки нет — один файл на календарный день.
type dailyWriter struct {
	mu  sync.Mutex
	dir string
	day string
	f   *os.File
}

func (w *dailyWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	day := time.Now().Format("20060102")
	if w.f == nil || day != w.day {
		if w.f != nil {
			_ = w.f.Close()
		}
		f, err := os.OpenFile(filepath.Join(w.dir, day+".log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return 0, err
		}
		w.f = f
		w.day = day
	}
	return w.f.Write(p)
}

// Setup настраивает глобальный slog: JSON в файл дня + дубль в stdout.
func Setup(dir string) (*slog.Logger, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	h := slog.NewJSONHandler(io.MultiWriter(os.Stdout, &dailyWriter{dir: dir}), nil)
	logger := slog.New(h)
	slog.SetDefault(logger)
	return logger, nil
}
