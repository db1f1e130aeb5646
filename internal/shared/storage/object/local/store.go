package local

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cvlens-backend/internal/shared/storage/object"
	"cvlens-backend/internal/shared/util"
)

const uploadsFolder = "resumes"

// Store implements ObjectStore using the local filesystem. It mirrors the S3
// store's key layout so records stay portable between the two.
type Store struct {
	baseDir string
	baseURL string
	now     func() time.Time
}

// New creates a new local object store rooted at baseDir. baseURL is the
// public address under which stored keys are served.
func New(baseDir, baseURL string) *Store {
	return &Store{baseDir: baseDir, baseURL: strings.TrimRight(baseURL, "/"), now: time.Now}
}

// Upload writes the reader to disk under the user's namespace.
func (s *Store) Upload(ctx context.Context, userID string, fileName string, r io.Reader) (object.Object, error) {
	sanitizedName, err := util.SanitizeFileName(fileName)
	if err != nil {
		return object.Object{}, fmt.Errorf("sanitize file name: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return object.Object{}, err
	}

	finalName := fmt.Sprintf("resume_%d_%s", s.now().UTC().UnixMilli(), sanitizedName)
	storageKey := filepath.ToSlash(filepath.Join(uploadsFolder, util.HashUserKey(userID), finalName))

	dirPath := filepath.Join(s.baseDir, uploadsFolder, util.HashUserKey(userID))
	if err := os.MkdirAll(dirPath, 0o755); err != nil {
		return object.Object{}, fmt.Errorf("mkdir: %w", err)
	}

	fullPath := filepath.Join(dirPath, finalName)
	f, err := os.OpenFile(fullPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return object.Object{}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	var sniff [512]byte
	n, readErr := io.ReadFull(r, sniff[:])
	if readErr != nil && readErr != io.EOF && readErr != io.ErrUnexpectedEOF {
		return object.Object{}, fmt.Errorf("read sniff: %w", readErr)
	}

	mimeType := http.DetectContentType(sniff[:n])

	size := int64(0)
	if n > 0 {
		if _, err := f.Write(sniff[:n]); err != nil {
			return object.Object{}, fmt.Errorf("write sniff: %w", err)
		}
		size += int64(n)
	}

	written, err := io.Copy(f, r)
	if err != nil {
		return object.Object{}, fmt.Errorf("write body: %w", err)
	}
	size += written

	return object.Object{
		Key:       storageKey,
		URL:       s.baseURL + "/" + storageKey,
		SizeBytes: size,
		MimeType:  mimeType,
	}, nil
}

// Delete removes the stored file for the given key.
func (s *Store) Delete(ctx context.Context, storageKey string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	clean := filepath.Clean(filepath.FromSlash(storageKey))
	if strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return fmt.Errorf("invalid storage key")
	}

	fullPath := filepath.Join(s.baseDir, clean)
	if err := os.Remove(fullPath); err != nil {
		return fmt.Errorf("delete object key=%s: %w", storageKey, err)
	}
	return nil
}

// Exists reports whether an object is present; used by tests to check
// deletion consistency.
func (s *Store) Exists(storageKey string) bool {
	fullPath := filepath.Join(s.baseDir, filepath.FromSlash(storageKey))
	_, err := os.Stat(fullPath)
	return err == nil
}

var _ object.ObjectStore = (*Store)(nil)
