package viewer

import (
	"strconv"

	"mosaicBackend/utils"

	"github.com/gin-gonic/gin"
)

type (
	Handler interface {
		Open(ctx *gin.Context)
		Close(ctx *gin.Context)
		Status(ctx *gin.Context)
		Frame(ctx *gin.Context)
	}

	viewerHandler struct {
		viewerService Service
	}
)

func CreateHandler(viewerService Service) Handler {
	return &viewerHandler{
		viewerService: viewerService,
	}
}

func (h *viewerHandler) Open(ctx *gin.Context) {
	payload := OpenIn{}
	if err := ctx.Bind(&payload); err != nil {
		ctx.JSON(utils.CreateValidationError(err))
		return
	}

	result, err := h.viewerService.Open(ctx, payload)
	if err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
		return
	}

	ctx.JSON(utils.CreateOkResponse(result))
}

func (h *viewerHandler) Close(ctx *gin.Context) {
	if err := h.viewerService.Close(ctx); err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
		return
	}

	ctx.JSON(utils.CreateOkResponse[any](nil))
}

func (h *viewerHandler) Status(ctx *gin.Context) {
	result, err := h.viewerService.Status(ctx)
	if err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
		return
	}

	ctx.JSON(utils.CreateOkResponse(result))
}

func (h *viewerHandler) Frame(ctx *gin.Context) {
	simTime := -1.0
	if rawTime, hasTime := ctx.GetQuery("t"); hasTime {
		parsed, err := strconv.ParseFloat(rawTime, 64)
		if err != nil || parsed < 0 {
			ctx.JSON(utils.CreateValidationError(utils.ErrorValidationError))
			return
		}
		simTime = parsed
	}

	result, err := h.viewerService.Frame(ctx, simTime)
	if err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
		return
	}

	ctx.JSON(utils.CreateOkResponse(result))
}
