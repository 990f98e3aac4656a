package filestorage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mdiallo/gestion-etudiants/internal/pkg/logger"
)

// LocalStorage stores photo files in a single flat directory on the
// local filesystem. Stored paths are relative ("/uploads/<filename>");
// the absolute URL is derived per request from the caller's host.
type LocalStorage struct {
	basePath  string // directory where files are written
	urlPrefix string // URL path prefix the directory is served under, e.g. "/uploads"
}

// NewLocalStorage creates a new LocalStorage instance and ensures the
// storage directory exists.
func NewLocalStorage(basePath, urlPrefix string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}

	return &LocalStorage{
		basePath:  basePath,
		urlPrefix: "/" + strings.Trim(urlPrefix, "/"),
	}, nil
}

// SavePhoto writes an uploaded image under a collision-resistant name
// (student id + millisecond timestamp + original extension) and returns
// the relative path. Nothing existing is deleted here; replacing an old
// photo is the caller's responsibility, after the new reference commits.
func (ls *LocalStorage) SavePhoto(studentID int64, fileHeader *multipart.FileHeader) (string, error) {
	src, err := fileHeader.Open()
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to open uploaded file")
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	ext := filepath.Ext(fileHeader.Filename)
	filename := fmt.Sprintf("photo_%d_%d%s", studentID, time.Now().UnixMilli(), ext)
	dstPath := filepath.Join(ls.basePath, filename)

	dst, err := os.Create(dstPath)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create destination file")
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, src); err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to copy uploaded file content")
		_ = os.Remove(dstPath)
		return "", fmt.Errorf("failed to save file content: %w", err)
	}

	relPath := ls.urlPrefix + "/" + filename
	logger.Info().Str("filename", fileHeader.Filename).Str("saved_as", relPath).Msg("Photo saved")
	return relPath, nil
}

// DeletePhoto removes a photo file given its stored relative path
// (e.g. "/uploads/photo_3_1700000000000.jpg"). Deleting a missing file
// is not an error; the operation is idempotent.
func (ls *LocalStorage) DeletePhoto(relPath string) error {
	if relPath == "" {
		return nil
	}

	filename := filepath.Base(relPath)
	if filename == "" || filename == "." || filename == "/" {
		return fmt.Errorf("invalid photo path: %s", relPath)
	}

	physicalPath := filepath.Join(ls.basePath, filename)

	if _, err := os.Stat(physicalPath); os.IsNotExist(err) {
		logger.Warn().Str("path", physicalPath).Msg("Photo to delete does not exist")
		return nil
	}

	if err := os.Remove(physicalPath); err != nil {
		logger.Error().Err(err).Str("path", physicalPath).Msg("Failed to delete photo")
		return fmt.Errorf("failed to delete photo: %w", err)
	}

	logger.Info().Str("path", physicalPath).Msg("Photo deleted")
	return nil
}

// PublicURL joins the request's scheme://host with a stored relative path.
func (ls *LocalStorage) PublicURL(baseURL, relPath string) string {
	if relPath == "" {
		return ""
	}
	return strings.TrimRight(baseURL, "/") + relPath
}

// SweepOrphans removes files in the storage directory that are not in
// the referenced set and are older than grace. The grace period keeps
// the sweep from racing a photo replacement whose reference update has
// not committed yet.
func (ls *LocalStorage) SweepOrphans(referenced map[string]struct{}, grace time.Duration) (int, error) {
	entries, err := os.ReadDir(ls.basePath)
	if err != nil {
		return 0, fmt.Errorf("failed to read storage directory: %w", err)
	}

	cutoff := time.Now().Add(-grace)
	removed := 0

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		relPath := ls.urlPrefix + "/" + entry.Name()
		if _, ok := referenced[relPath]; ok {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}

		if err := os.Remove(filepath.Join(ls.basePath, entry.Name())); err != nil {
			logger.Warn().Err(err).Str("file", entry.Name()).Msg("Failed to remove orphan photo")
			continue
		}
		removed++
	}

	if removed > 0 {
		logger.Info().Int("removed", removed).Msg("Orphan photo sweep complete")
	}
	return removed, nil
}
