package collage

import (
	"strings"

	"mosaicBackend/realtime"
	"mosaicBackend/storage"
	"mosaicBackend/types"
	"mosaicBackend/utils"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
)

// joinCodeAttempts How often collage creation retries on a join-code collision
// before surfacing an error.
const joinCodeAttempts = 5

type (
	Service interface {
		Get(ctx *gin.Context) ([]CollageOut, error)
		GetByUuid(ctx *gin.Context, collageId string) (*CollageOut, error)
		GetByCode(ctx *gin.Context, code string) (*CollageOut, error)
		Create(ctx *gin.Context, req CollageIn) (string, error)
		Delete(ctx *gin.Context, collageId string) error

		// UpdateSettings Validates and deep-merges a partial settings document
		// onto the stored one and returns the merged result.
		UpdateSettings(ctx *gin.Context, collageId string, patch SettingsIn) (map[string]any, error)

		Export(ctx *gin.Context, collageId string) (*ExportOut, error)
	}

	collageService struct {
		collageRepo    Repository
		storageManager storage.StorageManager
		settingsFeed   realtime.Feed[SettingsIn]
	}
)

func CreateService(
	collageRepo Repository,
	storageManager storage.StorageManager,
	settingsFeed realtime.Feed[SettingsIn],
) Service {
	return &collageService{
		collageRepo:    collageRepo,
		storageManager: storageManager,
		settingsFeed:   settingsFeed,
	}
}

func (u *collageService) Get(ctx *gin.Context) ([]CollageOut, error) {
	collages, err := u.collageRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]CollageOut, len(collages))
	for i, obj := range collages {
		out, err := u.toOut(ctx, &obj)
		if err != nil {
			return nil, err
		}
		result[i] = *out
	}

	return result, nil
}

func (u *collageService) GetByUuid(ctx *gin.Context, collageId string) (*CollageOut, error) {
	collage, err := u.collageRepo.GetByUuid(ctx, collageId)
	if err != nil {
		return nil, err
	}

	return u.toOut(ctx, collage)
}

func (u *collageService) GetByCode(ctx *gin.Context, code string) (*CollageOut, error) {
	collage, err := u.collageRepo.GetByCode(ctx, strings.ToUpper(code))
	if err != nil {
		return nil, err
	}

	return u.toOut(ctx, collage)
}

func (u *collageService) Create(ctx *gin.Context, req CollageIn) (string, error) {
	newUuid := utils.GenerateUuid()

	var created *Collage
	for attempt := 0; attempt < joinCodeAttempts; attempt++ {
		candidate := &Collage{
			UUID: newUuid,
			Name: *req.Name,
			Code: utils.GenerateJoinCode(),
		}

		if err := u.collageRepo.Create(ctx, candidate); err != nil {
			if isUniqueViolation(err) {
				log.Warn("Join code collision, retrying", "code", candidate.Code)
				continue
			}
			return "", err
		}

		created = candidate
		break
	}

	if created == nil {
		return "", utils.ErrorCodeExhausted
	}

	document, err := encodeSettings(DefaultSettings())
	if err != nil {
		return "", err
	}

	err = u.collageRepo.SaveSettings(ctx, &CollageSettings{
		CollageID: created.ID,
		Document:  document,
	})

	return newUuid, err
}

func (u *collageService) Delete(ctx *gin.Context, collageId string) error {
	collage, err := u.collageRepo.GetByUuid(ctx, collageId)
	if err != nil {
		return err
	}

	if err := u.collageRepo.Delete(ctx, collage); err != nil {
		return err
	}

	// The rows are the source of truth. A failed media cleanup is logged and
	// never surfaced.
	if err := u.storageManager.DeleteCollageMedia(collage.UUID); err != nil {
		log.Errorf("Failed to delete media of collage '%s': %s", collage.UUID, err.Error())
	}

	return nil
}

func (u *collageService) UpdateSettings(ctx *gin.Context, collageId string, patch SettingsIn) (map[string]any, error) {
	collage, err := u.collageRepo.GetByUuid(ctx, collageId)
	if err != nil {
		return nil, err
	}

	if err := ValidateSettingsPatch(patch); err != nil {
		return nil, err
	}

	stored, err := u.loadSettings(ctx, collage)
	if err != nil {
		return nil, err
	}

	merged := MergeSettings(stored, patch)

	document, err := encodeSettings(merged)
	if err != nil {
		return nil, err
	}

	settingsRow, err := u.collageRepo.GetSettings(ctx, collage)
	if err != nil {
		return nil, err
	}
	if settingsRow == nil {
		settingsRow = &CollageSettings{CollageID: collage.ID}
	}
	settingsRow.Document = document

	if err := u.collageRepo.SaveSettings(ctx, settingsRow); err != nil {
		return nil, err
	}

	// Open displays pick the merged document up on their next frame; remote
	// clients get it pushed through the settings feed.
	u.settingsFeed.Publish(collage.UUID, realtime.ChangeEvent[SettingsIn]{
		Type: types.Update,
		New:  &merged,
	})

	return merged, nil
}

func (u *collageService) Export(ctx *gin.Context, collageId string) (*ExportOut, error) {
	collage, err := u.collageRepo.GetByUuid(ctx, collageId)
	if err != nil {
		return nil, err
	}

	path, err := u.storageManager.ExportCollage(collage.UUID)
	if err != nil {
		return nil, utils.ErrorFileStorage
	}

	return &ExportOut{Path: path}, nil
}

func (u *collageService) toOut(ctx *gin.Context, collage *Collage) (*CollageOut, error) {
	settings, err := u.loadSettings(ctx, collage)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		settings = DefaultSettings()
	}

	return &CollageOut{
		UUID:      collage.UUID,
		Name:      collage.Name,
		Code:      collage.Code,
		CreatedAt: collage.CreatedAt,
		Settings:  settings,
	}, nil
}

func (u *collageService) loadSettings(ctx *gin.Context, collage *Collage) (map[string]any, error) {
	settingsRow, err := u.collageRepo.GetSettings(ctx, collage)
	if err != nil {
		return nil, err
	}
	if settingsRow == nil {
		return nil, nil
	}

	return DecodeSettings(settingsRow.Document)
}

func isUniqueViolation(err error) bool {
	message := strings.ToLower(err.Error())
	return strings.Contains(message, "unique") || strings.Contains(message, "duplicate")
}
