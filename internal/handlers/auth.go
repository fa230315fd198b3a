package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"PhotoCollect/internal/sessions"
	"PhotoCollect/internal/web"
)

// ShowLogin отображает страницу входа. Уже залогиненных уводим в админку.
func (app *App) ShowLogin(w http.ResponseWriter, r *http.Request) {
	if _, ok := sessions.CurrentUser(r); ok {
		http.Redirect(w, r, "/admin", http.StatusFound)
		return
	}
	data := map[string]any{"Error": r.URL.Query().Get("error")}
	if err := web.Templates.ExecuteTemplate(w, "login", data); err != nil {
		app.respondErr(w, http.StatusInternalServerError, "页面渲染失败", err)
	}
}

// HandleLogin обрабатывает POST формы входа.
func (app *App) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		redirectMsg(w, r, "/login", "error", "表单解析失败")
		return
	}

	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")
	if username == "" || password == "" {
		redirectMsg(w, r, "/login", "error", "用户名和密码不能为空")
		return
	}

	user, err := app.Creds.FindUser(username)
	if err != nil {
		slog.Error("login: credential read failed", "err", err)
		redirectMsg(w, r, "/login", "error", "服务器错误")
		return
	}
	if user == nil {
		redirectMsg(w, r, "/login", "error", "用户名不存在")
		return
	}
	if !app.Creds.Verify(username, password) {
		redirectMsg(w, r, "/login", "error", "密码错误")
		return
	}

	if err := sessions.SetUser(w, r, username); err != nil {
		slog.Error("login: session save failed", "err", err)
		redirectMsg(w, r, "/login", "error", "会话保存失败")
		return
	}
	http.Redirect(w, r, "/admin", http.StatusFound)
}

// HandleLogout гасит сессию и возвращает на страницу входа.
func (app *App) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := sessions.Clear(w, r); err != nil {
		slog.Error("logout failed", "err", err)
	}
	http.Redirect(w, r, "/login", http.StatusFound)
}

// ShowChangePassword рендерит форму смены пароля (роут под AdminOnly).
func (app *App) ShowChangePassword(w http.ResponseWriter, r *http.Request) {
	data := map[string]any{
		"Error":   r.URL.Query().Get("error"),
		"Success": r.URL.Query().Get("success"),
	}
	if err := web.Templates.ExecuteTemplate(w, "change_password", data); err != nil {
		app.respondErr(w, http.StatusInternalServerError, "页面渲染失败", err)
	}
}

// HandleChangePassword меняет пароль текущего администратора.
// Каждая причина отказа — своё сообщение, как требуют клиенты формы.
func (app *App) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	username, _ := sessions.CurrentUser(r)

	if err := r.ParseForm(); err != nil {
		redirectMsg(w, r, "/change-password", "error", "表单解析失败")
		return
	}
	current := r.FormValue("currentPassword")
	newPass := r.FormValue("newPassword")
	confirm := r.FormValue("confirmPassword")

	switch {
	case current == "" || newPass == "" || confirm == "":
		redirectMsg(w, r, "/change-password", "error", "所有字段都不能为空")
		return
	case newPass != confirm:
		redirectMsg(w, r, "/change-password", "error", "两次输入的新密码不一致")
		return
	case len(newPass) < 6:
		redirectMsg(w, r, "/change-password", "error", "新密码长度不能少于6个字符")
		return
	}

	user, err := app.Creds.FindUser(username)
	if err != nil || user == nil {
		redirectMsg(w, r, "/change-password", "error", "用户不存在")
		return
	}
	if !app.Creds.Verify(username, current) {
		redirectMsg(w, r, "/change-password", "error", "当前密码错误")
		return
	}
	if !app.Creds.UpdatePassword(username, newPass) {
		redirectMsg(w, r, "/change-password", "error", "密码更新失败")
		return
	}
	slog.Info("password changed", "username", username)
	redirectMsg(w, r, "/change-password", "success", "密码修改成功")
}
