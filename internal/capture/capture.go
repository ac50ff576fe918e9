// Package capture obtains image frames from capture sources and hands them
// to an analysis cycle. Sources are one-shot; Monitor turns a source into a
// periodic feed.
package capture

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/JaimeStill/beadreader/internal/workflow"
)

// Supported frame content types. The inference request encodes frames as
// data URIs and only these formats survive the round trip.
var imageTypes = []string{"image/jpeg", "image/png"}

// Frame is one captured image.
type Frame struct {
	Data        []byte
	ContentType string
	Source      string
	CapturedAt  time.Time
}

// Image converts the frame into the payload consumed by the analysis workflow.
func (f Frame) Image() workflow.Image {
	return workflow.Image{
		Data:        f.Data,
		ContentType: f.ContentType,
	}
}

// Extension returns the file extension matching the frame's content type.
func (f Frame) Extension() string {
	if f.ContentType == "image/png" {
		return ".png"
	}
	return ".jpg"
}

// Source produces frames on demand.
type Source interface {
	Capture(ctx context.Context) (Frame, error)
	Name() string
}

// NewFrame validates data as a supported image and stamps it with the
// capture time. A declared content type is trusted only when it names a
// supported format; otherwise the type is sniffed from the data.
func NewFrame(data []byte, declared, source string) (Frame, error) {
	if len(data) == 0 {
		return Frame{}, ErrEmptyFrame
	}

	contentType, err := DetectImageType(declared, data)
	if err != nil {
		return Frame{}, err
	}

	return Frame{
		Data:        data,
		ContentType: contentType,
		Source:      source,
		CapturedAt:  time.Now(),
	}, nil
}

// DetectImageType resolves the content type of an image payload.
func DetectImageType(declared string, data []byte) (string, error) {
	declared = strings.ToLower(strings.TrimSpace(declared))
	if mediaType, _, ok := strings.Cut(declared, ";"); ok {
		declared = strings.TrimSpace(mediaType)
	}
	if slices.Contains(imageTypes, declared) {
		return declared, nil
	}

	sniffed := http.DetectContentType(data)
	if slices.Contains(imageTypes, sniffed) {
		return sniffed, nil
	}

	return "", fmt.Errorf("%w: %s", ErrNotImage, sniffed)
}
