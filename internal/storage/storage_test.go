package storage

import (
	"strings"
	"testing"
	"time"
)

func TestSanitizeNamespace(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"shop1", "shop1"},
		{"  shop1  ", "shop1"},
		{"../../etc/passwd", "....etcpasswd"},
		{`a/b\c:d*e?f"g<h>i|j`, "abcdefghij"},
		{"", "unknown"},
		{"   ", "unknown"},
		{"///", "unknown"},
		{"..", "unknown"},
		{"张三的店铺", "张三的店铺"},
	}
	for _, c := range cases {
		got := SanitizeNamespace(c.in)
		if got != c.want {
			t.Errorf("SanitizeNamespace(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestSanitizeNamespaceProperty(t *testing.T) {
	nasty := []string{
		"../../../../root",
		`..\..\windows\system32`,
		`C:\Users\admin`,
		"a?b*c|d<e>f:g\"h/i\\j",
		strings.Repeat("长", 80),
		strings.Repeat("x/", 200),
	}
	for _, in := range nasty {
		got := SanitizeNamespace(in)
		if strings.ContainsAny(got, `/\:*?"<>|`) {
			t.Errorf("SanitizeNamespace(%q) = %q contains forbidden characters", in, got)
		}
		if n := len([]rune(got)); n > 50 {
			t.Errorf("SanitizeNamespace(%q) length %d > 50", in, n)
		}
		if got == "" {
			t.Errorf("SanitizeNamespace(%q) returned empty string", in)
		}
	}
}

func TestTimestampName(t *testing.T) {
	ts := time.Date(2024, 1, 31, 23, 59, 59, 7*int(time.Millisecond), time.Local)
	if got, want := TimestampName(ts, "photo.JPG"), "20240131235959007.jpg"; got != want {
		t.Errorf("TimestampName = %q, want %q", got, want)
	}
	if got, want := TimestampName(ts, "noext"), "20240131235959007"; got != want {
		t.Errorf("TimestampName without extension = %q, want %q", got, want)
	}
}

func TestIsImage(t *testing.T) {
	for name, want := range map[string]bool{
		"a.jpg": true, "b.JPEG": true, "c.png": true, "d.gif": true,
		"e.webp": false, "f.txt": false, "g": false,
	} {
		if got := IsImage(name); got != want {
			t.Errorf("IsImage(%q) = %v, want %v", name, got, want)
		}
	}
}
