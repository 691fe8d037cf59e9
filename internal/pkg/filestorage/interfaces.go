package filestorage

import (
	"mime/multipart"
)

// FileStorage defines the interface for attachment storage operations.
type FileStorage interface {
	// SaveFile stores an uploaded file under the given subdirectory and
	// returns the stored path relative to the storage root.
	SaveFile(fileHeader *multipart.FileHeader, subPath string) (string, error)

	// DeleteFile removes a stored file. Deleting a missing file is not an
	// error.
	DeleteFile(filePath string) error

	// FullPath returns the absolute filesystem path for a stored path.
	FullPath(filePath string) string
}
