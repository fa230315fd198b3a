package sessions

import (
	"crypto/sha256"
	"net/http"
	"os"

	"github.com/gorilla/sessions"
)

var store *sessions.CookieStore

const sessionName = "admin_session"

func init() {
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		// в докере это может быть пусто — но без секрета работать нельзя
		secret = "photo-upload-secret-key-change-me"
	}

	// Два ключа: подпись + шифрование (устойчивее, чем только подпись).
	h := sha256.Sum256([]byte("auth:" + secret))
	e := sha256.Sum256([]byte("enc:" + secret))

	store = sessions.NewCookieStore(h[:], e[:])
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   24 * 60 * 60, // сутки, как жил оригинальный сервис
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   os.Getenv("APP_HTTPS") == "1",
	}
}

func GetSession(r *http.Request) (*sessions.Session, error) {
	return store.Get(r, sessionName)
}

// SetUser помечает сессию аутентифицированной и запоминает логин.
func SetUser(w http.ResponseWriter, r *http.Request, username string) error {
	s, err := GetSession(r)
	if err != nil {
		return err
	}
	s.Values["authenticated"] = true
	s.Values["username"] = username
	return s.Save(r, w)
}

// CurrentUser возвращает логин из валидной сессии.
func CurrentUser(r *http.Request) (string, bool) {
	s, err := GetSession(r)
	if err != nil {
		return "", false
	}
	if ok, _ := s.Values["authenticated"].(bool); !ok {
		return "", false
	}
	name, _ := s.Values["username"].(string)
	return name, name != ""
}

// Clear гасит сессию (MaxAge=-1 заставит браузер удалить куку).
func Clear(w http.ResponseWriter, r *http.Request) error {
	s, err := GetSession(r)
	if err != nil {
		return err
	}
	delete(s.Values, "authenticated")
	delete(s.Values, "username")
	s.Options.MaxAge = -1
	return s.Save(r, w)
}
