package photo

import (
	"time"

	"mosaicBackend/display/store"
	"mosaicBackend/domain/collage"

	"gorm.io/gorm"
)

type Photo struct {
	gorm.Model
	UUID         string
	Collage      collage.Collage
	CollageID    uint
	Url          string
	ThumbnailUrl string

	// Object names inside the collage's media directory, kept for cleanup.
	FileName          string
	ThumbnailFileName string
}

type PhotoOut struct {
	UUID         string    `json:"uuid"`
	CollageId    string    `json:"collageId"`
	Url          string    `json:"url"`
	ThumbnailUrl string    `json:"thumbnailUrl"`
	CreatedAt    time.Time `json:"createdAt"`
}

type PhotoUrlIn struct {
	Url *string `json:"url" binding:"required"`
}

// toRow The photo as it travels over the change feed and through the display
// pipeline.
func (p *Photo) toRow() store.Photo {
	return store.Photo{
		Id:           p.UUID,
		CollageId:    p.Collage.UUID,
		Url:          p.Url,
		ThumbnailUrl: p.ThumbnailUrl,
		CreatedAt:    p.CreatedAt,
	}
}
