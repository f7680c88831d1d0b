package app

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strings"

	"slimtrack/internal/domain"
)

// MaxPhotoBytes caps the size of an attached progress photo.
const MaxPhotoBytes = 5 << 20

// EncodePhoto reads an image and returns it as a data URI suitable for
// WeightInput.PhotoURL. An empty mimeType is sniffed from the content. The
// read is abandoned when ctx is cancelled.
func EncodePhoto(ctx context.Context, r io.Reader, mimeType string) (string, error) {
	type result struct {
		data []byte
		err  error
	}
	done := make(chan result, 1)
	go func() {
		data, err := io.ReadAll(io.LimitReader(r, MaxPhotoBytes+1))
		done <- result{data, err}
	}()

	var res result
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res = <-done:
	}
	if res.err != nil {
		return "", fmt.Errorf("read photo: %w", res.err)
	}
	if len(res.data) == 0 {
		return "", fmt.Errorf("%w: empty photo", domain.ErrInvalidInput)
	}
	if len(res.data) > MaxPhotoBytes {
		return "", fmt.Errorf("%w: photo larger than %d bytes", domain.ErrInvalidInput, MaxPhotoBytes)
	}

	if mimeType == "" {
		mimeType = http.DetectContentType(res.data)
	}
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = mimeType[:i]
	}
	if !strings.HasPrefix(mimeType, "image/") {
		return "", fmt.Errorf("%w: %s is not an image", domain.ErrInvalidInput, mimeType)
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(res.data), nil
}
