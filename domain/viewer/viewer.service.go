package viewer

import (
	"time"

	"mosaicBackend/display"
	"mosaicBackend/display/pattern"
	"mosaicBackend/domain/collage"
	"mosaicBackend/utils"

	"github.com/gin-gonic/gin"
)

type (
	// Service The REST surface over the process-wide display pipeline. One collage
	// is open at a time; opening another one replaces it.
	Service interface {
		Open(ctx *gin.Context, req OpenIn) (*StatusOut, error)
		Close(ctx *gin.Context) error
		Status(ctx *gin.Context) (*StatusOut, error)

		// Frame Composes the render list for the given simulation time. A
		// negative time means "now" on the service's own clock. Settings are
		// re-read per frame so live tuning applies without re-opening.
		Frame(ctx *gin.Context, simTime float64) (*FrameOut, error)
	}

	viewerService struct {
		viewer      display.Viewer
		collageRepo collage.Repository
		openedAt    time.Time
	}
)

func CreateService(viewer display.Viewer, collageRepo collage.Repository) Service {
	return &viewerService{
		viewer:      viewer,
		collageRepo: collageRepo,
	}
}

func (u *viewerService) Open(ctx *gin.Context, req OpenIn) (*StatusOut, error) {
	viewerCollage, err := u.collageRepo.GetByCode(ctx, *req.Code)
	if err != nil {
		return nil, err
	}

	settings, err := u.loadSettings(ctx, viewerCollage)
	if err != nil {
		return nil, err
	}

	u.viewer.Open(viewerCollage.UUID, settings)
	u.openedAt = time.Now()

	return u.statusOut(), nil
}

func (u *viewerService) Close(ctx *gin.Context) error {
	u.viewer.Close()
	return nil
}

func (u *viewerService) Status(ctx *gin.Context) (*StatusOut, error) {
	return u.statusOut(), nil
}

func (u *viewerService) Frame(ctx *gin.Context, simTime float64) (*FrameOut, error) {
	collageId := u.viewer.CollageId()
	if collageId == "" {
		return nil, utils.ErrorViewerNotOpen
	}

	viewerCollage, err := u.collageRepo.GetByUuid(ctx, collageId)
	if err != nil {
		return nil, err
	}

	settings, err := u.loadSettings(ctx, viewerCollage)
	if err != nil {
		return nil, err
	}

	if simTime < 0 {
		simTime = time.Since(u.openedAt).Seconds()
	}

	return &FrameOut{
		CollageId: collageId,
		Time:      simTime,
		Pattern:   settings.Pattern,
		Items:     u.viewer.Frame(simTime, settings),
	}, nil
}

func (u *viewerService) statusOut() *StatusOut {
	return &StatusOut{
		CollageId:  u.viewer.CollageId(),
		Subscribed: u.viewer.IsSubscribed(),
		Polling:    u.viewer.IsPolling(),
	}
}

func (u *viewerService) loadSettings(ctx *gin.Context, viewerCollage *collage.Collage) (pattern.Settings, error) {
	settingsRow, err := u.collageRepo.GetSettings(ctx, viewerCollage)
	if err != nil {
		return pattern.Settings{}, err
	}

	document := collage.DefaultSettings()
	if settingsRow != nil {
		if decoded, err := collage.DecodeSettings(settingsRow.Document); err == nil {
			document = decoded
		}
	}

	return collage.ParsePatternSettings(document)
}
