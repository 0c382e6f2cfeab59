package photo

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"
	"net/http"

	"mosaicBackend/config"
	"mosaicBackend/display/store"
	"mosaicBackend/domain/collage"
	"mosaicBackend/realtime"
	"mosaicBackend/storage"
	"mosaicBackend/types"
	"mosaicBackend/utils"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
)

var allowedContentTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
}

type (
	Service interface {
		Get(ctx *gin.Context, collageId string) ([]PhotoOut, error)

		// Upload Validates and stores an uploaded image, creates the photo row
		// and publishes the INSERT to the change feed. Invalid uploads are
		// rejected before anything is written.
		Upload(ctx *gin.Context, collageId string, file *multipart.FileHeader) (*PhotoOut, error)

		// UpdateUrl The rare in-place URL update, published as an UPDATE event.
		UpdateUrl(ctx *gin.Context, photoId string, req PhotoUrlIn) error

		// Delete Removes the photo row and publishes the DELETE. The stored
		// objects are cleaned up best-effort afterwards; the row is the
		// user-visible source of truth.
		Delete(ctx *gin.Context, photoId string) error

		// FetchPhotos The full-state fetch the display engine polls with.
		FetchPhotos(ctx context.Context, collageId string) ([]store.Photo, error)
	}

	photoService struct {
		photoRepo      Repository
		collageRepo    collage.Repository
		storageManager storage.StorageManager
		photoFeed      realtime.Feed[store.Photo]
		uploads        config.UploadConfig
	}
)

func CreateService(
	photoRepo Repository,
	collageRepo collage.Repository,
	storageManager storage.StorageManager,
	photoFeed realtime.Feed[store.Photo],
	uploads config.UploadConfig,
) Service {
	return &photoService{
		photoRepo:      photoRepo,
		collageRepo:    collageRepo,
		storageManager: storageManager,
		photoFeed:      photoFeed,
		uploads:        uploads,
	}
}

func (u *photoService) Get(ctx *gin.Context, collageId string) ([]PhotoOut, error) {
	photoCollage, err := u.collageRepo.GetByUuid(ctx, collageId)
	if err != nil {
		return nil, err
	}

	photos, err := u.photoRepo.GetByCollage(ctx, photoCollage.ID)
	if err != nil {
		return nil, err
	}

	result := make([]PhotoOut, len(photos))
	for i, obj := range photos {
		result[i] = PhotoOut{
			UUID:         obj.UUID,
			CollageId:    obj.Collage.UUID,
			Url:          obj.Url,
			ThumbnailUrl: obj.ThumbnailUrl,
			CreatedAt:    obj.CreatedAt,
		}
	}

	return result, nil
}

func (u *photoService) Upload(ctx *gin.Context, collageId string, file *multipart.FileHeader) (*PhotoOut, error) {
	photoCollage, err := u.collageRepo.GetByUuid(ctx, collageId)
	if err != nil {
		return nil, err
	}

	if file.Size > u.uploads.MaxFileSize {
		return nil, utils.ErrorUploadTooLarge
	}

	data, err := readUpload(file)
	if err != nil {
		return nil, utils.ErrorInvalidUpload
	}

	extension, ok := allowedContentTypes[http.DetectContentType(data)]
	if !ok {
		return nil, utils.ErrorInvalidUpload
	}

	decoded, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, utils.ErrorInvalidUpload
	}

	thumbnail, err := encodeThumbnail(decoded, u.uploads.ThumbnailWidth)
	if err != nil {
		return nil, utils.ErrorInvalidUpload
	}

	newUuid := utils.GenerateUuid()
	fileName := newUuid + extension
	thumbnailFileName := newUuid + ".thumb.jpg"

	if err := u.storageManager.WritePhoto(photoCollage.UUID, fileName, data); err != nil {
		return nil, utils.ErrorFileStorage
	}
	if err := u.storageManager.WritePhoto(photoCollage.UUID, thumbnailFileName, thumbnail); err != nil {
		return nil, utils.ErrorFileStorage
	}

	newPhoto := &Photo{
		UUID:              newUuid,
		Collage:           *photoCollage,
		CollageID:         photoCollage.ID,
		Url:               u.storageManager.PublicPath(photoCollage.UUID, fileName),
		ThumbnailUrl:      u.storageManager.PublicPath(photoCollage.UUID, thumbnailFileName),
		FileName:          fileName,
		ThumbnailFileName: thumbnailFileName,
	}

	if err := u.photoRepo.Create(ctx, newPhoto); err != nil {
		return nil, err
	}

	row := newPhoto.toRow()
	u.photoFeed.Publish(photoCollage.UUID, realtime.ChangeEvent[store.Photo]{
		Type: types.Insert,
		New:  &row,
	})

	return &PhotoOut{
		UUID:         newPhoto.UUID,
		CollageId:    photoCollage.UUID,
		Url:          newPhoto.Url,
		ThumbnailUrl: newPhoto.ThumbnailUrl,
		CreatedAt:    newPhoto.CreatedAt,
	}, nil
}

func (u *photoService) UpdateUrl(ctx *gin.Context, photoId string, req PhotoUrlIn) error {
	existing, err := u.photoRepo.GetByUuid(ctx, photoId)
	if err != nil {
		return err
	}

	oldRow := existing.toRow()
	existing.Url = *req.Url

	if err := u.photoRepo.Update(ctx, existing); err != nil {
		return err
	}

	newRow := existing.toRow()
	u.photoFeed.Publish(existing.Collage.UUID, realtime.ChangeEvent[store.Photo]{
		Type: types.Update,
		New:  &newRow,
		Old:  &oldRow,
	})

	return nil
}

func (u *photoService) Delete(ctx *gin.Context, photoId string) error {
	existing, err := u.photoRepo.GetByUuid(ctx, photoId)
	if err != nil {
		return err
	}

	if err := u.photoRepo.Delete(ctx, existing); err != nil {
		return err
	}

	oldRow := existing.toRow()
	u.photoFeed.Publish(existing.Collage.UUID, realtime.ChangeEvent[store.Photo]{
		Type: types.Delete,
		Old:  &oldRow,
	})

	u.cleanupObjects(existing)

	return nil
}

func (u *photoService) FetchPhotos(ctx context.Context, collageId string) ([]store.Photo, error) {
	photoCollage, err := u.collageRepo.GetByUuid(ctx, collageId)
	if err != nil {
		return nil, err
	}

	photos, err := u.photoRepo.GetByCollage(ctx, photoCollage.ID)
	if err != nil {
		return nil, err
	}

	rows := make([]store.Photo, len(photos))
	for i, obj := range photos {
		rows[i] = obj.toRow()
	}

	return rows, nil
}

// cleanupObjects Deletes the stored files of a photo whose row is already gone.
// Failures are logged only.
func (u *photoService) cleanupObjects(photo *Photo) {
	for _, fileName := range []string{photo.FileName, photo.ThumbnailFileName} {
		if fileName == "" {
			continue
		}

		if err := u.storageManager.DeletePhoto(photo.Collage.UUID, fileName); err != nil {
			log.Errorf("Failed to delete object '%s' of photo '%s': %s", fileName, photo.UUID, err.Error())
		}
	}
}

func readUpload(file *multipart.FileHeader) ([]byte, error) {
	reader, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = reader.Close() }()

	return io.ReadAll(reader)
}

func encodeThumbnail(decoded image.Image, width uint) ([]byte, error) {
	if width == 0 {
		return nil, fmt.Errorf("thumbnail width is not configured")
	}

	thumbnail := resizeImage(decoded, width)

	var buffer bytes.Buffer
	if err := jpeg.Encode(&buffer, thumbnail, &jpeg.Options{Quality: 80}); err != nil {
		return nil, err
	}

	return buffer.Bytes(), nil
}
