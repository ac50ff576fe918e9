package capture_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/JaimeStill/beadreader/internal/capture"
)

var (
	jpegData = []byte("\xFF\xD8\xFF\xE0\x00\x10JFIF\x00\x01\x01\x00\x00\x01\x00\x01\x00\x00")
	pngData  = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01")
)

func TestDetectImageType(t *testing.T) {
	tests := []struct {
		name     string
		declared string
		data     []byte
		want     string
		wantErr  error
	}{
		{"declared jpeg", "image/jpeg", jpegData, "image/jpeg", nil},
		{"declared with params", "image/png; charset=binary", pngData, "image/png", nil},
		{"sniffed jpeg", "application/octet-stream", jpegData, "image/jpeg", nil},
		{"sniffed png", "", pngData, "image/png", nil},
		{"text rejected", "text/plain", []byte("hello, bead plate"), "", capture.ErrNotImage},
		{"unsupported declared falls back to sniff", "image/webp", jpegData, "image/jpeg", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := capture.DetectImageType(tt.declared, tt.data)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("type = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewFrame(t *testing.T) {
	t.Run("empty data", func(t *testing.T) {
		if _, err := capture.NewFrame(nil, "image/jpeg", "test"); !errors.Is(err, capture.ErrEmptyFrame) {
			t.Errorf("error = %v, want ErrEmptyFrame", err)
		}
	})

	t.Run("stamps frame", func(t *testing.T) {
		before := time.Now()
		f, err := capture.NewFrame(pngData, "", "test")
		if err != nil {
			t.Fatalf("NewFrame error: %v", err)
		}
		if f.CapturedAt.Before(before) {
			t.Error("CapturedAt precedes capture")
		}
		if f.Source != "test" {
			t.Errorf("Source = %q", f.Source)
		}
		if f.Extension() != ".png" {
			t.Errorf("Extension = %q, want .png", f.Extension())
		}

		img := f.Image()
		if img.ContentType != "image/png" || len(img.Data) != len(pngData) {
			t.Errorf("Image() = %+v", img)
		}
	})
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plate.jpg")
	if err := os.WriteFile(path, jpegData, 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	t.Run("reads image", func(t *testing.T) {
		src := &capture.FileSource{Path: path}
		f, err := src.Capture(context.Background())
		if err != nil {
			t.Fatalf("Capture error: %v", err)
		}
		if f.ContentType != "image/jpeg" {
			t.Errorf("ContentType = %s", f.ContentType)
		}
	})

	t.Run("too large", func(t *testing.T) {
		src := &capture.FileSource{Path: path, MaxSize: 4}
		if _, err := src.Capture(context.Background()); !errors.Is(err, capture.ErrFrameTooLarge) {
			t.Errorf("error = %v, want ErrFrameTooLarge", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		src := &capture.FileSource{Path: filepath.Join(dir, "missing.jpg")}
		if _, err := src.Capture(context.Background()); err == nil {
			t.Error("expected error for missing file")
		}
	})
}

func TestHTTPSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/snapshot":
			w.Header().Set("Content-Type", "image/jpeg")
			w.Write(jpegData)
		case "/text":
			w.Header().Set("Content-Type", "text/plain")
			w.Write([]byte("not an image at all"))
		default:
			w.WriteHeader(http.StatusServiceUnavailable)
		}
	}))
	defer srv.Close()

	ctx := context.Background()

	t.Run("fetches snapshot", func(t *testing.T) {
		src := capture.NewHTTPSource(srv.URL+"/snapshot", 1024, time.Second)
		f, err := src.Capture(ctx)
		if err != nil {
			t.Fatalf("Capture error: %v", err)
		}
		if f.ContentType != "image/jpeg" {
			t.Errorf("ContentType = %s", f.ContentType)
		}
	})

	t.Run("error status", func(t *testing.T) {
		src := capture.NewHTTPSource(srv.URL+"/down", 1024, time.Second)
		_, err := src.Capture(ctx)
		if !errors.Is(err, capture.ErrSourceStatus) {
			t.Errorf("error = %v, want ErrSourceStatus", err)
		}
		if capture.MapHTTPStatus(err) != http.StatusBadGateway {
			t.Errorf("status = %d, want 502", capture.MapHTTPStatus(err))
		}
	})

	t.Run("not an image", func(t *testing.T) {
		src := capture.NewHTTPSource(srv.URL+"/text", 1024, time.Second)
		if _, err := src.Capture(ctx); !errors.Is(err, capture.ErrNotImage) {
			t.Errorf("error = %v, want ErrNotImage", err)
		}
	})

	t.Run("too large", func(t *testing.T) {
		src := capture.NewHTTPSource(srv.URL+"/snapshot", 8, time.Second)
		if _, err := src.Capture(ctx); !errors.Is(err, capture.ErrFrameTooLarge) {
			t.Errorf("error = %v, want ErrFrameTooLarge", err)
		}
	})
}
