// Package uploads stores post images through the configured storage provider.
package uploads

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/google/uuid"
)

// MaxImageBytes caps post image uploads.
const MaxImageBytes = 10 << 20 // 10 MiB

// Info contains metadata about an uploaded file.
type Info struct {
	Path        string
	FileName    string
	Size        int64
	ContentType string
}

// PutImage stores an image with a unique path and returns upload info.
// The path is generated as: posts/YYYY/MM/uuid8-filename
func PutImage(ctx context.Context, store storage.Store, filename string, reader io.Reader, size int64, contentType string) (Info, error) {
	now := time.Now().UTC()
	dateDir := fmt.Sprintf("posts/%04d/%02d", now.Year(), now.Month())
	uniqueName := fmt.Sprintf("%s-%s", uuid.New().String()[:8], SanitizeFilename(filename))
	path := filepath.ToSlash(filepath.Join(dateDir, uniqueName))

	opts := &storage.PutOptions{
		ContentType: contentType,
	}
	if err := store.Put(ctx, path, reader, opts); err != nil {
		return Info{}, fmt.Errorf("failed to upload image: %w", err)
	}

	return Info{
		Path:        path,
		FileName:    filename,
		Size:        size,
		ContentType: contentType,
	}, nil
}

// SanitizeFilename removes or replaces characters that could be problematic
// in filenames.
func SanitizeFilename(filename string) string {
	// Just the filename, not any path components.
	filename = filepath.Base(filename)

	result := make([]byte, 0, len(filename))
	for i := 0; i < len(filename); i++ {
		c := filename[i]
		if isAllowedFilenameChar(c) {
			result = append(result, c)
		} else {
			result = append(result, '_')
		}
	}

	if len(result) == 0 {
		return "image"
	}
	if len(result) > 100 {
		// Truncate but preserve the extension if present.
		ext := filepath.Ext(string(result))
		if len(ext) > 0 && len(ext) < 10 {
			result = append(result[:100-len(ext)], ext...)
		} else {
			result = result[:100]
		}
	}

	return string(result)
}

func isAllowedFilenameChar(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z':
		return true
	case c >= 'A' && c <= 'Z':
		return true
	case c >= '0' && c <= '9':
		return true
	case c == '.' || c == '-' || c == '_':
		return true
	}
	return false
}
