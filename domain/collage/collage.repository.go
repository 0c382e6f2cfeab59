package collage

import (
	"context"
	"errors"

	"mosaicBackend/utils"

	"gorm.io/gorm"
)

type (
	Repository interface {
		Get(ctx context.Context) ([]Collage, error)
		GetByUuid(ctx context.Context, collageId string) (*Collage, error)

		// GetByCode Looks a collage up by its join code. A missing code is
		// reported as utils.ErrorCodeNotFound, never as a raised database error.
		GetByCode(ctx context.Context, code string) (*Collage, error)

		Create(ctx context.Context, collage *Collage) error
		Update(ctx context.Context, collage *Collage) error
		Delete(ctx context.Context, collage *Collage) error

		GetSettings(ctx context.Context, collage *Collage) (*CollageSettings, error)
		SaveSettings(ctx context.Context, settings *CollageSettings) error
	}

	collageRepository struct {
		db *gorm.DB
	}
)

func CreateRepository(db *gorm.DB) Repository {
	return &collageRepository{
		db: db,
	}
}

func (r *collageRepository) Get(ctx context.Context) ([]Collage, error) {
	collages := make([]Collage, 0)
	result := r.db.WithContext(ctx).Find(&collages)

	return collages, result.Error
}

func (r *collageRepository) GetByUuid(ctx context.Context, collageId string) (*Collage, error) {
	collage := &Collage{}
	result := r.db.WithContext(ctx).Where("uuid = ?", collageId).First(collage)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return collage, utils.ErrorUuidNotFound
	}

	return collage, result.Error
}

func (r *collageRepository) GetByCode(ctx context.Context, code string) (*Collage, error) {
	collage := &Collage{}
	result := r.db.WithContext(ctx).Where("code = ?", code).First(collage)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return collage, utils.ErrorCodeNotFound
	}

	return collage, result.Error
}

func (r *collageRepository) Create(ctx context.Context, collage *Collage) error {
	return r.db.WithContext(ctx).Create(collage).Error
}

func (r *collageRepository) Update(ctx context.Context, collage *Collage) error {
	return r.db.WithContext(ctx).Save(collage).Error
}

func (r *collageRepository) Delete(ctx context.Context, collage *Collage) error {
	if err := r.db.WithContext(ctx).
		Where("collage_id = ?", collage.ID).
		Delete(&CollageSettings{}).Error; err != nil {
		return err
	}

	// Photo rows reference the collage by its numeric key; drop them with the
	// collage so no orphans survive a deletion.
	if err := r.db.WithContext(ctx).
		Exec("DELETE FROM photos WHERE collage_id = ?", collage.ID).Error; err != nil {
		return err
	}

	return r.db.WithContext(ctx).Delete(collage).Error
}

func (r *collageRepository) GetSettings(ctx context.Context, collage *Collage) (*CollageSettings, error) {
	settings := &CollageSettings{}
	result := r.db.WithContext(ctx).Where("collage_id = ?", collage.ID).First(settings)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	return settings, result.Error
}

func (r *collageRepository) SaveSettings(ctx context.Context, settings *CollageSettings) error {
	return r.db.WithContext(ctx).Save(settings).Error
}
