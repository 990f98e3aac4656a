package filestorage

import (
	"mime/multipart"
	"time"
)

// PhotoStorage defines the interface for photo file operations
type PhotoStorage interface {
	// SavePhoto stores an uploaded image for a student and returns the
	// relative path under which it is served
	SavePhoto(studentID int64, fileHeader *multipart.FileHeader) (string, error)

	// DeletePhoto removes a stored photo given its relative path
	DeletePhoto(relPath string) error

	// PublicURL materializes an absolute URL from a stored relative path
	// and the current request's scheme://host
	PublicURL(baseURL, relPath string) string

	// SweepOrphans deletes files older than grace that are not in the
	// referenced set, and returns how many files were removed
	SweepOrphans(referenced map[string]struct{}, grace time.Duration) (int, error)
}
