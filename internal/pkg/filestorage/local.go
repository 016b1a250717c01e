package filestorage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/arjun/placementhub/internal/pkg/logger"
)

// LocalStorage handles saving files to the local filesystem.
type LocalStorage struct {
	basePath string // The root directory where files will be stored
	baseURL  string // The base URL to access the stored files
}

// NewLocalStorage creates a new LocalStorage instance.
// basePath is the required directory path on the server.
// baseURL is prepended to returned file paths.
func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStorage{
		basePath: basePath,
		baseURL:  baseURL,
	}, nil
}

// Store saves an uploaded file under a folder within the storage root.
// Files are renamed to a UUID to prevent collisions; the original name is
// reported back in the StoredFile.
func (ls *LocalStorage) Store(fileHeader *multipart.FileHeader, folder string) (*StoredFile, error) {
	if fileHeader == nil {
		return nil, fmt.Errorf("no file provided")
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to open uploaded file")
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	fullDirPath := ls.basePath
	if folder != "" {
		fullDirPath = filepath.Join(ls.basePath, folder)
		if err := os.MkdirAll(fullDirPath, os.ModePerm); err != nil {
			logger.Error().Err(err).Str("path", fullDirPath).Msg("Failed to create subdirectory")
			return nil, fmt.Errorf("failed to create subdirectory: %w", err)
		}
	}

	ext := filepath.Ext(fileHeader.Filename)
	uniqueFilename := uuid.New().String() + ext
	dstPath := filepath.Join(fullDirPath, uniqueFilename)

	dst, err := os.Create(dstPath)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create destination file")
		return nil, fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	written, err := io.Copy(dst, file)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to copy uploaded file content")
		_ = os.Remove(dstPath)
		return nil, fmt.Errorf("failed to save file content: %w", err)
	}

	url := strings.TrimRight(ls.baseURL, "/")
	if folder != "" {
		url += "/" + folder
	}
	url += "/" + uniqueFilename

	logger.Info().Str("filename", fileHeader.Filename).Str("saved_as", uniqueFilename).Str("url", url).Msg("File saved successfully")
	return &StoredFile{
		URL:          url,
		OriginalName: fileHeader.Filename,
		Size:         written,
	}, nil
}

// Delete removes a file from the storage filesystem. Returns nil if the
// file does not exist.
func (ls *LocalStorage) Delete(fileURL string) error {
	if fileURL == "" {
		return nil
	}

	filename := filepath.Base(fileURL)
	if filename == "" || filename == "." || filename == "/" {
		return fmt.Errorf("invalid file path: %s", fileURL)
	}

	// The URL layout is <base>/<folder>/<filename>; the folder is the last
	// path segment before the filename.
	folder := filepath.Base(filepath.Dir(fileURL))
	physicalPath := filepath.Join(ls.basePath, folder, filename)
	if _, err := os.Stat(physicalPath); os.IsNotExist(err) {
		physicalPath = filepath.Join(ls.basePath, filename)
	}

	if _, err := os.Stat(physicalPath); os.IsNotExist(err) {
		logger.Warn().Str("path", physicalPath).Msg("File to delete does not exist")
		return nil
	}

	if err := os.Remove(physicalPath); err != nil {
		logger.Error().Err(err).Str("path", physicalPath).Msg("Failed to delete file")
		return fmt.Errorf("failed to delete file: %w", err)
	}

	logger.Info().Str("path", physicalPath).Msg("File deleted successfully")
	return nil
}
