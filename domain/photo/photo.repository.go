package photo

import (
	"context"
	"errors"

	"mosaicBackend/utils"

	"gorm.io/gorm"
)

type (
	Repository interface {
		GetByCollage(ctx context.Context, collageKey uint) ([]Photo, error)
		GetByUuid(ctx context.Context, photoId string) (*Photo, error)
		Create(ctx context.Context, photo *Photo) error
		Update(ctx context.Context, photo *Photo) error
		Delete(ctx context.Context, photo *Photo) error
	}

	photoRepository struct {
		db *gorm.DB
	}
)

func CreateRepository(db *gorm.DB) Repository {
	return &photoRepository{
		db: db,
	}
}

func (r *photoRepository) GetByCollage(ctx context.Context, collageKey uint) ([]Photo, error) {
	photos := make([]Photo, 0)
	result := r.db.WithContext(ctx).
		Where("collage_id = ?", collageKey).
		Preload("Collage").
		Order("created_at asc").
		Find(&photos)

	return photos, result.Error
}

func (r *photoRepository) GetByUuid(ctx context.Context, photoId string) (*Photo, error) {
	photo := &Photo{}
	result := r.db.WithContext(ctx).Where("uuid = ?", photoId).Preload("Collage").First(photo)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return photo, utils.ErrorUuidNotFound
	}

	return photo, result.Error
}

func (r *photoRepository) Create(ctx context.Context, photo *Photo) error {
	return r.db.WithContext(ctx).Create(photo).Error
}

func (r *photoRepository) Update(ctx context.Context, photo *Photo) error {
	return r.db.WithContext(ctx).Save(photo).Error
}

func (r *photoRepository) Delete(ctx context.Context, photo *Photo) error {
	return r.db.WithContext(ctx).Delete(photo).Error
}
