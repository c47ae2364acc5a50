package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image/png"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	imagepkg "github.com/youruser/markx-images/internal/image"
	"github.com/youruser/markx-images/internal/storage"
)

type fakeComposer struct {
	name, url, text string
	urls            []string
	err             error
}

func (f *fakeComposer) LabelSingle(_ context.Context, name, imageURL, text string) (string, error) {
	f.name, f.url, f.text = name, imageURL, text
	if f.err != nil {
		return "", f.err
	}
	return "https://blobs.test/" + name + ".jpg", nil
}

func (f *fakeComposer) MergeMany(_ context.Context, name string, imageURLs []string) (string, error) {
	f.name, f.urls = name, imageURLs
	if f.err != nil {
		return "", f.err
	}
	return "https://blobs.test/" + name + "-merged-image.jpg", nil
}

func newRouter(c Composer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, &Handler{Composer: c, Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})
	return r
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	w := do(newRouter(&fakeComposer{}), http.MethodGet, "/api/health", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"ok"`) {
		t.Errorf("health = %d %s", w.Code, w.Body)
	}
}

func TestMergeImages(t *testing.T) {
	fc := &fakeComposer{}
	w := do(newRouter(fc), http.MethodPost, "/api/images/merge", `{"imgName":"set1","imageUrls":["u1","u2"]}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body)
	}
	var url string
	if err := json.Unmarshal(w.Body.Bytes(), &url); err != nil {
		t.Fatal(err)
	}
	if url != "https://blobs.test/set1-merged-image.jpg" {
		t.Errorf("url = %q", url)
	}
	if fc.name != "set1" || len(fc.urls) != 2 || fc.urls[1] != "u2" {
		t.Errorf("composer got name=%q urls=%v", fc.name, fc.urls)
	}
}

func TestAddText(t *testing.T) {
	fc := &fakeComposer{}
	w := do(newRouter(fc), http.MethodPost, "/api/images/addTxt", `{"imgName":"card","imgUrl":"https://img/cat.png","txt":"Hello World"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body)
	}
	if fc.name != "card" || fc.url != "https://img/cat.png" || fc.text != "Hello World" {
		t.Errorf("composer got %+v", fc)
	}
}

func TestAddTextEmpty(t *testing.T) {
	fc := &fakeComposer{text: "stale"}
	w := do(newRouter(fc), http.MethodPost, "/api/images/addTxt", `{"imgName":"card","imgUrl":"https://img/cat.png","txt":""}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body)
	}
	if fc.name != "card" || fc.text != "" {
		t.Errorf("composer got %+v", fc)
	}
}

func TestValidation(t *testing.T) {
	r := newRouter(&fakeComposer{})
	tests := []struct{ path, body string }{
		{"/api/images/merge", `{"imageUrls":["u1"]}`},
		{"/api/images/merge", `{"imgName":"x"}`},
		{"/api/images/addTxt", `{"imgName":"x","imgUrl":"u"}`},
		{"/api/images/addTxt", `not json`},
	}
	for _, tt := range tests {
		if w := do(r, http.MethodPost, tt.path, tt.body); w.Code != http.StatusBadRequest {
			t.Errorf("%s %s: status = %d, want 400", tt.path, tt.body, w.Code)
		}
	}
}

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{&imagepkg.LayoutError{Count: 0, Reason: "no images to merge"}, http.StatusBadRequest},
		{&imagepkg.FetchError{URL: "u", Err: errors.New("timeout")}, http.StatusBadGateway},
		{&storage.StoreError{Name: "n", Err: errors.New("denied")}, http.StatusBadGateway},
		{&imagepkg.FontLoadError{Family: "f", Err: errors.New("missing")}, http.StatusInternalServerError},
		{errors.New("other"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		r := newRouter(&fakeComposer{err: tt.err})
		w := do(r, http.MethodPost, "/api/images/merge", `{"imgName":"set","imageUrls":[]}`)
		if w.Code != tt.want {
			t.Errorf("%T: status = %d, want %d", tt.err, w.Code, tt.want)
		}
		if !strings.Contains(w.Body.String(), "error") {
			t.Errorf("%T: body %s has no error", tt.err, w.Body)
		}
	}
}

func TestQR(t *testing.T) {
	r := newRouter(&fakeComposer{})
	w := do(r, http.MethodGet, "/api/qr?text=https%3A%2F%2Fblobs.test%2Fset1-merged-image.jpg&size=200", "")
	if w.Code != http.StatusOK || w.Header().Get("Content-Type") != "image/png" {
		t.Fatalf("qr = %d %s", w.Code, w.Header().Get("Content-Type"))
	}
	img, err := png.Decode(bytes.NewReader(w.Body.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 200 {
		t.Errorf("width = %d, want 200", img.Bounds().Dx())
	}

	for _, q := range []string{"", "?text=x&size=big"} {
		if w := do(r, http.MethodGet, "/api/qr"+q, ""); w.Code != http.StatusBadRequest {
			t.Errorf("qr%s: status = %d, want 400", q, w.Code)
		}
	}
}
