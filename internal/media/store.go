package media

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrTooLarge indicates an asset exceeded the per-type size limit and was
// not saved.
var ErrTooLarge = errors.New("media exceeds size limit")

// subdirectories created under the storage base.
var subdirectories = []string{"documents", "images", "videos", "audio", "other"}

// Store saves retrieved media assets to the local filesystem, filed by type.
type Store struct {
	basePath string
}

// NewStore creates a media store rooted at basePath.
func NewStore(basePath string) *Store {
	return &Store{basePath: basePath}
}

// EnsureDirs creates the storage directory tree if missing.
func (s *Store) EnsureDirs() error {
	for _, sub := range subdirectories {
		if err := os.MkdirAll(filepath.Join(s.basePath, sub), 0o755); err != nil {
			return fmt.Errorf("create media directory %s: %w", sub, err)
		}
	}
	return nil
}

// Save writes an asset to disk and returns the stored path. phone and msgType
// feed the generated filename; the per-type size limit is enforced here so an
// oversized download is dropped rather than stored.
func (s *Store) Save(asset *Asset, phone, msgType string) (string, error) {
	if asset.ByteSize > MaxSizeFor(msgType) {
		return "", fmt.Errorf("%d bytes for type %s: %w", asset.ByteSize, msgType, ErrTooLarge)
	}

	if err := s.EnsureDirs(); err != nil {
		return "", err
	}

	subdir := SubdirectoryFor(msgType, asset.MimeType)
	filename := safeFilename(phone, msgType, asset.MimeType, asset.Filename)
	path := filepath.Join(s.basePath, subdir, filename)

	if err := os.WriteFile(path, asset.Data, 0o644); err != nil {
		return "", fmt.Errorf("save media file: %w", err)
	}

	return path, nil
}

// safeFilename builds phone_type_timestamp_<name-or-uuid>.ext, sanitizing any
// original filename down to a safe character set.
func safeFilename(phone, msgType, mimeType, original string) string {
	ts := time.Now().Format("20060102_150405")
	cleanPhone := strings.NewReplacer("+", "", " ", "").Replace(phone)
	ext := ExtensionFor(mimeType, original)

	if name := sanitize(original); name != "" {
		return fmt.Sprintf("%s_%s_%s_%s.%s", cleanPhone, msgType, ts, name, ext)
	}

	unique := uuid.NewString()[:8]
	return fmt.Sprintf("%s_%s_%s_%s.%s", cleanPhone, msgType, ts, unique, ext)
}

// sanitize keeps alphanumerics plus "._-" and truncates to 50 runes.
func sanitize(name string) string {
	var b strings.Builder
	for _, r := range name {
		if b.Len() >= 50 {
			break
		}
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '_' || r == '-':
			b.WriteRune(r)
		}
	}
	return b.String()
}
