package filestorage

import (
	"mime/multipart"
)

// StoredFile describes an object after a successful upload
type StoredFile struct {
	URL          string // Public URL where the file is reachable
	OriginalName string // Filename as uploaded by the client
	Size         int64  // Size in bytes
}

// FileStorage defines the interface for file storage operations
type FileStorage interface {
	// Store saves an uploaded file under the given folder and returns
	// information about where it was stored
	Store(fileHeader *multipart.FileHeader, folder string) (*StoredFile, error)

	// Delete removes a previously stored file
	Delete(fileURL string) error
}
