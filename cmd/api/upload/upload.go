// Package upload stores image attachments in a content directory.
package upload

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
)

// FieldName is the multipart field carrying the image.
const FieldName = "image"

// DefaultMaxSize is the per-file size limit.
const DefaultMaxSize int64 = 5 << 20

const maxNameAttempts = 100

var (
	ErrUnsupportedMediaType = errors.New("invalid file type, only jpeg, png and gif images are allowed")
	ErrPayloadTooLarge      = errors.New("file exceeds the upload size limit")
	ErrTooManyFiles         = errors.New("only a single image file is accepted")
)

// AllowedTypes lists the accepted image MIME types.
var AllowedTypes = []string{"image/jpeg", "image/png", "image/gif"}

type Config struct {
	// Dir is the content directory. It is created on first use.
	Dir string
	// PublicPrefix is prepended to stored names, e.g. "uploads".
	PublicPrefix string
	MaxSize      int64
}

// Uploader validates and persists uploaded images.
type Uploader struct {
	dir     string
	prefix  string
	maxSize int64
	now     func() time.Time
}

func New(cfg Config) *Uploader {
	if cfg.MaxSize <= 0 {
		cfg.MaxSize = DefaultMaxSize
	}
	prefix := strings.Trim(cfg.PublicPrefix, "/")
	if prefix == "" {
		prefix = "uploads"
	}
	return &Uploader{dir: cfg.Dir, prefix: prefix, maxSize: cfg.MaxSize, now: time.Now}
}

func (u *Uploader) Dir() string { return u.dir }

func (u *Uploader) MaxSize() int64 { return u.maxSize }

func (u *Uploader) Prefix() string { return u.prefix }

// Save validates fh and writes it as <unix-millis>-<original name>. It returns
// the stored relative path (<prefix>/<name>). Nothing is written when
// validation fails.
func (u *Uploader) Save(fh *multipart.FileHeader) (string, error) {
	if fh.Size > u.maxSize {
		return "", ErrPayloadTooLarge
	}
	if !isAllowed(declaredType(fh)) {
		return "", ErrUnsupportedMediaType
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	detected, err := mimetype.DetectReader(src)
	if err != nil {
		return "", fmt.Errorf("sniff upload: %w", err)
	}
	if !isAllowed(detected.String()) {
		return "", ErrUnsupportedMediaType
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rewind upload: %w", err)
	}

	if err := os.MkdirAll(u.dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	name, dst, err := u.create(sanitizeName(fh.Filename))
	if err != nil {
		return "", err
	}

	// Guard against a header that under-reports the real size.
	written, err := io.Copy(dst, io.LimitReader(src, u.maxSize+1))
	closeErr := dst.Close()
	if err == nil && written > u.maxSize {
		err = ErrPayloadTooLarge
	}
	if err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(filepath.Join(u.dir, name))
		if errors.Is(err, ErrPayloadTooLarge) {
			return "", err
		}
		return "", fmt.Errorf("write upload: %w", err)
	}

	return path.Join(u.prefix, name), nil
}

// create opens a new file named <unix-millis>-<base>. A same-named upload in
// the same millisecond gets a counter after the timestamp.
func (u *Uploader) create(base string) (string, *os.File, error) {
	millis := u.now().UnixMilli()
	for attempt := 0; attempt < maxNameAttempts; attempt++ {
		name := fmt.Sprintf("%d-%s", millis, base)
		if attempt > 0 {
			name = fmt.Sprintf("%d-%d-%s", millis, attempt, base)
		}
		f, err := os.OpenFile(filepath.Join(u.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			return name, f, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", nil, fmt.Errorf("create upload file: %w", err)
		}
	}
	return "", nil, fmt.Errorf("create upload file: no free name for %s", base)
}

// Resolve maps a stored path to its file in the content directory. Only the
// base name is used, so stored values cannot escape the directory.
func (u *Uploader) Resolve(stored string) string {
	return filepath.Join(u.dir, path.Base(filepath.ToSlash(stored)))
}

// Remove deletes the file behind stored. A missing file is not an error.
func (u *Uploader) Remove(stored string) error {
	if stored == "" {
		return nil
	}
	if err := os.Remove(u.Resolve(stored)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove upload: %w", err)
	}
	return nil
}

// SingleFile returns the only file under FieldName in form, nil when there is
// none, and ErrTooManyFiles when more than one file (or any other file field)
// was sent.
func SingleFile(form *multipart.Form) (*multipart.FileHeader, error) {
	if form == nil || len(form.File) == 0 {
		return nil, nil
	}
	var found *multipart.FileHeader
	for field, files := range form.File {
		if len(files) == 0 {
			continue
		}
		if field != FieldName || len(files) > 1 || found != nil {
			return nil, ErrTooManyFiles
		}
		found = files[0]
	}
	return found, nil
}

func declaredType(fh *multipart.FileHeader) string {
	mt, _, err := mime.ParseMediaType(fh.Header.Get("Content-Type"))
	if err != nil {
		return ""
	}
	return mt
}

func isAllowed(mt string) bool {
	for _, allowed := range AllowedTypes {
		if strings.EqualFold(mt, allowed) {
			return true
		}
	}
	return false
}

func sanitizeName(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.Map(func(r rune) rune {
		switch {
		case r < 0x20, r == '/', r == ':':
			return '_'
		}
		return r
	}, name)
	if name == "" || name == "." || name == "/" {
		return "image"
	}
	return name
}
