package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"mosaicBackend/config"
	"mosaicBackend/utils"

	"github.com/charmbracelet/log"
	cp "github.com/otiai10/copy"
)

type (
	// StorageManager The object store for uploaded photos. Objects live in a
	// collage-scoped directory below the media root and are addressed by file name.
	StorageManager interface {
		WritePhoto(collageId string, fileName string, data []byte) error
		ReadPhoto(collageId string, fileName string, data *[]byte) error
		DeletePhoto(collageId string, fileName string) error
		DeleteCollageMedia(collageId string) error

		// PublicPath The URL path under which an object is served.
		PublicPath(collageId string, fileName string) string

		// MediaRoot The directory that is mounted as the public media route.
		MediaRoot() string

		// ExportCollage Copies a collage's media directory into the export
		// directory and returns the destination path.
		ExportCollage(collageId string) (string, error)
	}

	storageManager struct {
		mediaPath   string
		exportPath  string
		copyOptions cp.Options
	}
)

func CreateStorageManager(config *config.MosaicConfig) StorageManager {
	storageManager := &storageManager{
		mediaPath:  config.FileSystem.Media,
		exportPath: config.FileSystem.Export,
		copyOptions: cp.Options{
			Sync: true,
		},
	}

	storageManager.setupDirectories()

	return storageManager
}

func (s *storageManager) WritePhoto(collageId string, fileName string, data []byte) error {
	return s.write(filepath.Join(s.mediaPath, collageId, fileName), data)
}

func (s *storageManager) ReadPhoto(collageId string, fileName string, data *[]byte) error {
	return s.read(filepath.Join(s.mediaPath, collageId, fileName), data)
}

func (s *storageManager) DeletePhoto(collageId string, fileName string) error {
	return s.delete(filepath.Join(s.mediaPath, collageId, fileName))
}

func (s *storageManager) DeleteCollageMedia(collageId string) error {
	return s.delete(filepath.Join(s.mediaPath, collageId))
}

func (s *storageManager) PublicPath(collageId string, fileName string) string {
	return fmt.Sprintf("/media/%s/%s", collageId, fileName)
}

func (s *storageManager) MediaRoot() string {
	return s.mediaPath
}

func (s *storageManager) ExportCollage(collageId string) (string, error) {
	sourcePath := filepath.Join(s.mediaPath, collageId)
	destinationPath := filepath.Join(s.exportPath, collageId)

	if err := cp.Copy(sourcePath, destinationPath, s.copyOptions); err != nil {
		log.Errorf("Failed to export media of collage '%s': %s", collageId, err.Error())
		return "", err
	}

	return destinationPath, nil
}

func (s *storageManager) setupDirectories() {
	if _, err := os.ReadDir(s.mediaPath); err != nil || !utils.IsDirectoryWritable(s.mediaPath) {
		log.Info("Media directory not found. Creating.", "dir", s.mediaPath)
		if err = os.MkdirAll(s.mediaPath, 0750); err != nil {
			log.Fatal("Media directory is not accessible. Exiting.", "dir", s.mediaPath)
			return
		}
	}

	if _, err := os.ReadDir(s.exportPath); err != nil || !utils.IsDirectoryWritable(s.exportPath) {
		log.Info("Export directory not found. Creating.", "dir", s.exportPath)
		if err = os.MkdirAll(s.exportPath, 0750); err != nil {
			log.Fatal("Export directory is not accessible. Exiting.", "dir", s.exportPath)
			return
		}
	}
}

func (s *storageManager) read(absoluteFilePath string, data *[]byte) error {
	if fileData, err := os.ReadFile(absoluteFilePath); err != nil {
		return err
	} else {
		*data = fileData
	}

	return nil
}

func (s *storageManager) write(absoluteFilePath string, data []byte) error {
	if _, err := os.ReadDir(filepath.Dir(absoluteFilePath)); err != nil {
		if err = os.MkdirAll(filepath.Dir(absoluteFilePath), 0750); err != nil {
			return utils.ErrorFileStorage
		}
	}

	//nolint:gosec // Served files need to stay readable
	return os.WriteFile(absoluteFilePath, data, 0750)
}

func (s *storageManager) delete(absolutePath string) error {
	if err := os.RemoveAll(absolutePath); err != nil {
		return err
	}

	return nil
}
