package handlers

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"
)

func TestDeleteRequiresLogin(t *testing.T) {
	_, h := newTestApp(t)

	for _, target := range []string{"/delete-photo/shop1/a.jpg", "/delete-user/shop1"} {
		rr := doReq(h, http.MethodDelete, target, nil)
		if rr.Code != http.StatusUnauthorized {
			t.Errorf("%s: status %d, want 401", target, rr.Code)
		}
		resp := decodeResponse(t, rr)
		if resp.Success || resp.Message != "需要登录" {
			t.Errorf("%s: response %+v", target, resp)
		}
	}
}

func TestDeleteSinglePhoto(t *testing.T) {
	_, h := newTestApp(t)
	up := decodeResponse(t, doUpload(t, h, "shop1", "a.jpg", "image/jpeg", []byte("x")))
	fileName := up.Data["fileName"].(string)
	cookies := login(t, h)

	rr := doReq(h, http.MethodDelete, "/delete-photo/shop1/"+fileName, cookies)
	if rr.Code != http.StatusOK {
		t.Fatalf("delete status %d: %s", rr.Code, rr.Body.String())
	}
	if resp := decodeResponse(t, rr); !resp.Success || resp.Message != "照片删除成功" {
		t.Errorf("delete response %+v", resp)
	}

	rr = doReq(h, http.MethodDelete, "/delete-photo/shop1/"+fileName, cookies)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("second delete status %d, want 404", rr.Code)
	}
	if resp := decodeResponse(t, rr); resp.Message != "照片不存在" {
		t.Errorf("second delete message %q", resp.Message)
	}
}

func TestDeleteUserCascades(t *testing.T) {
	app, h := newTestApp(t)
	app.Now = func() time.Time { return time.Date(2024, 6, 1, 10, 0, 0, 0, time.Local) }
	doUpload(t, h, "shop1", "a.jpg", "image/jpeg", []byte("x"))
	app.Now = func() time.Time { return time.Date(2024, 6, 1, 10, 0, 1, 0, time.Local) }
	doUpload(t, h, "shop1", "b.jpg", "image/jpeg", []byte("y"))
	cookies := login(t, h)

	rr := doReq(h, http.MethodDelete, "/delete-user/shop1", cookies)
	if rr.Code != http.StatusOK {
		t.Fatalf("delete-user status %d: %s", rr.Code, rr.Body.String())
	}
	if resp := decodeResponse(t, rr); !resp.Success || resp.Message != "用户照片删除成功" {
		t.Errorf("delete-user response %+v", resp)
	}

	// пространство исчезло — листинг отвечает 404
	rr = doReq(h, http.MethodGet, "/api/user-photos/shop1", nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("listing after cascade: status %d, want 404", rr.Code)
	}
	if resp := decodeResponse(t, rr); resp.Success || resp.Message != "用户不存在" {
		t.Errorf("listing after cascade: %+v", resp)
	}

	rr = doReq(h, http.MethodDelete, "/delete-user/shop1", cookies)
	if rr.Code != http.StatusNotFound {
		t.Errorf("second delete-user status %d, want 404", rr.Code)
	}
}

func TestUserPhotosUnknownNamespace(t *testing.T) {
	_, h := newTestApp(t)

	rr := doReq(h, http.MethodGet, "/api/user-photos/nobody", nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status %d, want 404", rr.Code)
	}
	if resp := decodeResponse(t, rr); resp.Message != "用户不存在" {
		t.Errorf("message %q", resp.Message)
	}
}

func TestDownloadAllZip(t *testing.T) {
	app, h := newTestApp(t)
	contents := map[string][]byte{}
	for i, c := range [][]byte{[]byte("first-bytes"), []byte("second-bytes")} {
		sec := i
		app.Now = func() time.Time { return time.Date(2024, 6, 1, 10, 0, sec, 0, time.Local) }
		resp := decodeResponse(t, doUpload(t, h, "shop1", "p.jpg", "image/jpeg", c))
		contents[resp.Data["fileName"].(string)] = c
	}

	rr := doReq(h, http.MethodGet, "/download-all/shop1", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rr.Code, rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/zip" {
		t.Errorf("Content-Type = %q", ct)
	}

	zr, err := zip.NewReader(bytes.NewReader(rr.Body.Bytes()), int64(rr.Body.Len()))
	if err != nil {
		t.Fatalf("response is not a zip: %v", err)
	}
	if len(zr.File) != 2 {
		t.Fatalf("archive has %d entries, want 2", len(zr.File))
	}
	for _, f := range zr.File {
		want, ok := contents[f.Name]
		if !ok {
			t.Errorf("unexpected entry %q", f.Name)
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatal(err)
		}
		got, _ := io.ReadAll(rc)
		rc.Close()
		if !bytes.Equal(got, want) {
			t.Errorf("entry %q = %q, want %q", f.Name, got, want)
		}
	}
}

func TestDownloadAllUnknownNamespace(t *testing.T) {
	_, h := newTestApp(t)

	rr := doReq(h, http.MethodGet, "/download-all/nobody", nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status %d, want 404", rr.Code)
	}
	if resp := decodeResponse(t, rr); resp.Message != "用户不存在" {
		t.Errorf("message %q", resp.Message)
	}
}

func TestDownloadAllNamespaceWithoutImages(t *testing.T) {
	_, h := newTestApp(t)
	// webp принимается загрузкой, но не считается фотографией при листинге
	doUpload(t, h, "shop1", "anim.webp", "image/webp", []byte("x"))

	rr := doReq(h, http.MethodGet, "/download-all/shop1", nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status %d, want 404", rr.Code)
	}
	if resp := decodeResponse(t, rr); resp.Message != "该用户没有照片" {
		t.Errorf("message %q", resp.Message)
	}
}

func TestHealth(t *testing.T) {
	_, h := newTestApp(t)

	rr := doReq(h, http.MethodGet, "/", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["message"] != "服务器运行正常" {
		t.Errorf("message = %v", body["message"])
	}
	if body["storageType"] != "local" {
		t.Errorf("storageType = %v", body["storageType"])
	}
	if body["uploadEndpoint"] != "/upload" {
		t.Errorf("uploadEndpoint = %v", body["uploadEndpoint"])
	}
}
