package handlers

import (
	"net/http"

	"PhotoCollect/internal/sessions"
	"PhotoCollect/internal/web"
)

// Данные страницы админки: чистая проекция (клиент -> список файлов),
// собранная через интерфейс бэкенда.
type adminPage struct {
	Username string
	Users    []userSection
}

type userSection struct {
	Name   string
	Photos []adminPhoto
}

type adminPhoto struct {
	Name     string
	URL      string
	ThumbURL string
}

// HandleAdmin — GET /admin: страница со всеми клиентами и их фотографиями.
// Страница собирается заново на каждый запрос, кэша нет — объёмы маленькие,
// смотрят её люди.
func (app *App) HandleAdmin(w http.ResponseWriter, r *http.Request) {
	username, _ := sessions.CurrentUser(r)

	namespaces, err := app.Store.Namespaces(r.Context())
	if err != nil {
		app.respondErr(w, http.StatusInternalServerError, "生成管理界面失败", err)
		return
	}

	page := adminPage{Username: username}
	for _, ns := range namespaces {
		names, err := app.Store.List(r.Context(), ns)
		if err != nil {
			continue
		}
		section := userSection{Name: ns}
		for _, name := range names {
			section.Photos = append(section.Photos, adminPhoto{
				Name:     name,
				URL:      "/uploads/" + ns + "/" + name,
				ThumbURL: "/thumbnail/" + ns + "/" + name,
			})
		}
		page.Users = append(page.Users, section)
	}

	if err := web.Templates.ExecuteTemplate(w, "admin", page); err != nil {
		app.respondErr(w, http.StatusInternalServerError, "生成管理界面失败", err)
	}
}
