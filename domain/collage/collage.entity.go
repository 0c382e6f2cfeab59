package collage

import (
	"time"

	"gorm.io/gorm"
)

type Collage struct {
	gorm.Model
	UUID string
	Name string
	Code string `gorm:"uniqueIndex"`
}

// CollageSettings The persisted settings document of a collage, stored as a
// serialized JSON document and deep-merged on partial updates.
type CollageSettings struct {
	gorm.Model
	CollageID uint
	Collage   Collage
	Document  string
}

type CollageIn struct {
	Name *string `json:"name" binding:"required"`
}

type SettingsIn = map[string]any

type CollageOut struct {
	UUID      string         `json:"uuid"`
	Name      string         `json:"name"`
	Code      string         `json:"code"`
	CreatedAt time.Time      `json:"createdAt"`
	Settings  map[string]any `json:"settings"`
}

type ExportOut struct {
	Path string `json:"path"`
}
