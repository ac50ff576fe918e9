package capture

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/JaimeStill/beadreader/pkg/formatting"
)

// FileSource reads a frame from a local image file on every capture.
type FileSource struct {
	Path    string
	MaxSize int64
}

func (s *FileSource) Name() string {
	return "file:" + s.Path
}

func (s *FileSource) Capture(_ context.Context) (Frame, error) {
	info, err := os.Stat(s.Path)
	if err != nil {
		return Frame{}, fmt.Errorf("stat %s: %w", s.Path, err)
	}
	if s.MaxSize > 0 && info.Size() > s.MaxSize {
		return Frame{}, tooLarge(s.MaxSize)
	}

	data, err := os.ReadFile(s.Path)
	if err != nil {
		return Frame{}, fmt.Errorf("read %s: %w", s.Path, err)
	}

	return NewFrame(data, "", s.Name())
}

// HTTPSource fetches a frame from a snapshot endpoint, such as a screen-grab
// service or an IP camera still-image URL.
type HTTPSource struct {
	URL     string
	MaxSize int64
	Client  *http.Client
}

// NewHTTPSource creates an HTTPSource with a bounded request timeout.
func NewHTTPSource(url string, maxSize int64, timeout time.Duration) *HTTPSource {
	return &HTTPSource{
		URL:     url,
		MaxSize: maxSize,
		Client:  &http.Client{Timeout: timeout},
	}
}

func (s *HTTPSource) Name() string {
	return "http:" + s.URL
}

func (s *HTTPSource) Capture(ctx context.Context) (Frame, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return Frame{}, fmt.Errorf("build snapshot request: %w", err)
	}

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return Frame{}, fmt.Errorf("fetch snapshot: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Frame{}, fmt.Errorf("%w: %d", ErrSourceStatus, resp.StatusCode)
	}

	data, err := readLimited(resp.Body, s.MaxSize)
	if err != nil {
		return Frame{}, err
	}

	return NewFrame(data, resp.Header.Get("Content-Type"), s.Name())
}

func readLimited(r io.Reader, maxSize int64) ([]byte, error) {
	if maxSize <= 0 {
		return io.ReadAll(r)
	}

	data, err := io.ReadAll(io.LimitReader(r, maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	if int64(len(data)) > maxSize {
		return nil, tooLarge(maxSize)
	}
	return data, nil
}

func tooLarge(limit int64) error {
	return fmt.Errorf("%w (limit %s)", ErrFrameTooLarge, formatting.FormatBytes(limit, 1))
}
