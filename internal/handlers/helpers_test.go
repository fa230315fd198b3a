package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"PhotoCollect/internal/config"
	"PhotoCollect/internal/credentials"
	"PhotoCollect/internal/storage"
)

func newTestApp(t *testing.T) (*App, http.Handler) {
	t.Helper()
	dir := t.TempDir()

	store, err := storage.NewLocal(filepath.Join(dir, "uploads"))
	if err != nil {
		t.Fatal(err)
	}
	creds, err := credentials.Open(filepath.Join(dir, "adminUsers.json"))
	if err != nil {
		t.Fatal(err)
	}
	cfg := config.Config{UploadDir: filepath.Join(dir, "uploads")}
	app := New(cfg, creds, store)
	return app, app.Routes()
}

// multipartBody собирает multipart-запрос с полем userName и файлом,
// у которого выставлен нужный Content-Type.
func multipartBody(t *testing.T, userName, fileName, contentType string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var b bytes.Buffer
	mw := multipart.NewWriter(&b)
	if err := mw.WriteField("userName", userName); err != nil {
		t.Fatal(err)
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, fileName))
	h.Set("Content-Type", contentType)
	pw, err := mw.CreatePart(h)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := pw.Write(content); err != nil {
		t.Fatal(err)
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	return &b, mw.FormDataContentType()
}

func doUpload(t *testing.T, h http.Handler, userName, fileName, contentType string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	body, bct := multipartBody(t, userName, fileName, contentType, content)
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", bct)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func doReq(h http.Handler, method, target string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func postForm(h http.Handler, target string, form url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

// login проходит форму входа дефолтным админом и возвращает куки сессии.
func login(t *testing.T, h http.Handler) []*http.Cookie {
	t.Helper()
	rr := postForm(h, "/login", url.Values{
		"username": {"admin"},
		"password": {"admin123"},
	}, nil)
	if rr.Code != http.StatusFound || rr.Header().Get("Location") != "/admin" {
		t.Fatalf("login: status %d, Location %q", rr.Code, rr.Header().Get("Location"))
	}
	cookies := rr.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("login did not set a session cookie")
	}
	return cookies
}

type apiResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data"`
}

func decodeResponse(t *testing.T, rr *httptest.ResponseRecorder) apiResponse {
	t.Helper()
	var resp apiResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response %q: %v", rr.Body.String(), err)
	}
	return resp
}

// redirectParam достаёт сообщение из query-параметра Location редиректа.
func redirectParam(t *testing.T, rr *httptest.ResponseRecorder, key string) string {
	t.Helper()
	if rr.Code != http.StatusFound {
		t.Fatalf("status %d, want 302", rr.Code)
	}
	u, err := url.Parse(rr.Header().Get("Location"))
	if err != nil {
		t.Fatal(err)
	}
	return u.Query().Get(key)
}
