// Пакет web держит HTML-шаблоны админки, зашитые в бинарь.
package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var files embed.FS

// Templates разобраны один раз на старте; рендер — чистая функция данных.
var Templates = template.Must(template.ParseFS(files, "templates/*.html"))
