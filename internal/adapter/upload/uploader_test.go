package upload

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestUploadReturnsSecureURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer api-key" {
			t.Errorf("authorization header = %q", got)
		}
		f, fh, err := r.FormFile("file")
		if err != nil {
			t.Errorf("form file: %v", err)
			http.Error(w, "bad form", http.StatusBadRequest)
			return
		}
		defer f.Close()
		data, _ := io.ReadAll(f)
		if fh.Filename != "spill.jpg" || string(data) != "jpegbytes" {
			t.Errorf("file = %q (%d bytes)", fh.Filename, len(data))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"secure_url":"https://img.example/spill.jpg"}`))
	}))
	defer srv.Close()

	u := NewHTTPUploader(srv.URL, "api-key")
	url, err := u.Upload(context.Background(), "spill.jpg", []byte("jpegbytes"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if url != "https://img.example/spill.jpg" {
		t.Fatalf("url = %q", url)
	}
}

func TestUploadServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "over quota", http.StatusPaymentRequired)
	}))
	defer srv.Close()

	u := NewHTTPUploader(srv.URL, "api-key")
	if _, err := u.Upload(context.Background(), "x.jpg", []byte("x")); err == nil {
		t.Fatal("expected error on service failure")
	}
}

func TestUploadMissingURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	u := NewHTTPUploader(srv.URL, "api-key")
	if _, err := u.Upload(context.Background(), "x.jpg", []byte("x")); err == nil {
		t.Fatal("expected error when the response has no url")
	}
}
