package storage

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/facette/natsort"
	"github.com/google/uuid"
)

// LocalStorage keeps uploaded photo originals and their thumbnails on the
// local filesystem under a single base directory.
type LocalStorage struct {
	basePath         string // absolute path to FILE_STORAGE_PATH
	originalsPath    string
	thumbnailsPath   string
	thumbnailMaxSize int
}

// NewLocalStorage creates a new local filesystem store, ensuring both
// subdirectories exist.
func NewLocalStorage(basePath, originalsPath, thumbnailsPath string, thumbnailMaxSize int) (*LocalStorage, error) {
	absBasePath, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("invalid base storage path '%s': %w", basePath, err)
	}

	for _, dir := range []string{absBasePath, originalsPath, thumbnailsPath} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create storage directory '%s': %w", dir, err)
		}
	}

	for _, sub := range []string{originalsPath, thumbnailsPath} {
		if !strings.HasPrefix(filepath.Clean(sub), absBasePath+string(os.PathSeparator)) {
			return nil, fmt.Errorf("invalid subdirectory configuration: '%s' resolves outside base path '%s'", sub, absBasePath)
		}
	}

	log.Printf("storage: initialized LocalStorage at %s", absBasePath)
	return &LocalStorage{
		basePath:         absBasePath,
		originalsPath:    originalsPath,
		thumbnailsPath:   thumbnailsPath,
		thumbnailMaxSize: thumbnailMaxSize,
	}, nil
}

// OriginalsDir returns the absolute path of the originals directory.
func (ls *LocalStorage) OriginalsDir() string {
	return ls.originalsPath
}

// ThumbnailsDir returns the absolute path of the thumbnails directory.
func (ls *LocalStorage) ThumbnailsDir() string {
	return ls.thumbnailsPath
}

// SaveOriginal stores an uploaded file under a generated unique name and
// returns the absolute path of the stored file.
func (ls *LocalStorage) SaveOriginal(filenameHint string, data io.Reader) (string, error) {
	filename := fmt.Sprintf("%s-%s", uuid.NewString(), sanitizeFilename(filenameHint))
	targetPath := filepath.Join(ls.originalsPath, filename)

	out, err := os.Create(targetPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file '%s': %w", targetPath, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, data); err != nil {
		os.Remove(targetPath)
		return "", fmt.Errorf("failed to write file '%s': %w", targetPath, err)
	}

	log.Printf("storage: saved upload to %s", targetPath)
	return targetPath, nil
}

// GenerateThumbnail renders a bounded-size JPEG thumbnail for the given
// original and returns the thumbnail's absolute path.
func (ls *LocalStorage) GenerateThumbnail(originalPath string) (string, error) {
	img, err := imaging.Open(originalPath, imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("failed to open image '%s': %w", originalPath, err)
	}

	thumb := imaging.Fit(img, ls.thumbnailMaxSize, ls.thumbnailMaxSize, imaging.Lanczos)

	base := strings.TrimSuffix(filepath.Base(originalPath), filepath.Ext(originalPath))
	thumbPath := filepath.Join(ls.thumbnailsPath, base+"_thumb.jpg")

	if err := imaging.Save(thumb, thumbPath, imaging.JPEGQuality(85)); err != nil {
		return "", fmt.Errorf("failed to save thumbnail '%s': %w", thumbPath, err)
	}
	return thumbPath, nil
}

// Delete removes a stored file after verifying the path stays inside the
// storage base directory.
func (ls *LocalStorage) Delete(path string) error {
	cleaned := filepath.Clean(path)
	if !strings.HasPrefix(cleaned, ls.basePath+string(os.PathSeparator)) {
		return fmt.Errorf("refusing to delete '%s': outside storage base path", path)
	}
	if err := os.Remove(cleaned); err != nil {
		return fmt.Errorf("failed to delete '%s': %w", cleaned, err)
	}
	return nil
}

// ListOriginals returns the filenames of all stored originals in natural
// sort order.
func (ls *LocalStorage) ListOriginals() ([]string, error) {
	entries, err := os.ReadDir(ls.originalsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read originals directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	natsort.Sort(names)
	return names, nil
}

// sanitizeFilename strips any path components and characters that are not
// safe in a stored filename.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.' || r == '-' || r == '_':
			return r
		default:
			return '_'
		}
	}, name)
	if name == "" || name == "." {
		name = "upload"
	}
	return name
}
