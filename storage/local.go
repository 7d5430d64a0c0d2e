package storage

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"github.com/gabriel-vasile/mimetype"
)

var ErrUnsupportedFile = errors.New("unsupported file type")

// Uploads is the attachment store used by the HTTP handlers.
var Uploads *LocalStorage

// StoredFile is the metadata of a saved upload.
type StoredFile struct {
	Filename         string
	OriginalFilename string
	FileType         string
	MimeType         string
	Size             int64
}

// Entry is a file found in the upload directory.
type Entry struct {
	Name    string
	ModTime time.Time
}

// LocalStorage keeps course attachments in a single flat directory.
type LocalStorage struct {
	Dir string
	Now func() time.Time
}

func NewLocalStorage(dir string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &LocalStorage{Dir: dir, Now: time.Now}, nil
}

// Save writes an uploaded file under a timestamp-prefixed sanitized name.
// Files outside the allow-list return ErrUnsupportedFile and nothing is written.
func (s *LocalStorage) Save(fh *multipart.FileHeader) (StoredFile, error) {
	original := SanitizeFilename(fh.Filename)
	if original == "" || !AllowedFile(fh.Filename) || !AllowedFile(original) {
		return StoredFile{}, ErrUnsupportedFile
	}

	src, err := fh.Open()
	if err != nil {
		return StoredFile{}, err
	}
	defer src.Close()

	dst, name, err := s.create(StoredName(s.now(), original))
	if err != nil {
		return StoredFile{}, err
	}

	size, err := io.Copy(dst, src)
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(s.Path(name))
		return StoredFile{}, err
	}

	mimeType := "application/octet-stream"
	if mt, err := mimetype.DetectFile(s.Path(name)); err == nil {
		mimeType = mt.String()
	}

	return StoredFile{
		Filename:         name,
		OriginalFilename: original,
		FileType:         Extension(original),
		MimeType:         mimeType,
		Size:             size,
	}, nil
}

// create opens a new file, adding a numeric suffix if the name is taken.
func (s *LocalStorage) create(name string) (*os.File, string, error) {
	candidate := name
	for i := 1; i < 100; i++ {
		f, err := os.OpenFile(s.Path(candidate), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if err == nil {
			return f, candidate, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return nil, "", err
		}
		candidate = withSuffix(name, i)
	}
	return nil, "", fmt.Errorf("could not allocate a unique name for %s", name)
}

func (s *LocalStorage) Path(name string) string {
	return filepath.Join(s.Dir, filepath.Base(name))
}

func (s *LocalStorage) Exists(name string) bool {
	info, err := os.Stat(s.Path(name))
	return err == nil && !info.IsDir()
}

// Remove deletes a stored file. A file that is already gone is not an error.
func (s *LocalStorage) Remove(name string) error {
	err := os.Remove(s.Path(name))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// Entries lists regular files in the upload directory.
func (s *LocalStorage) Entries() ([]Entry, error) {
	dirEntries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, err
	}
	out := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		if !de.Type().IsRegular() {
			continue
		}
		info, err := de.Info()
		if err != nil {
			continue
		}
		out = append(out, Entry{Name: de.Name(), ModTime: info.ModTime()})
	}
	return out, nil
}

func (s *LocalStorage) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
