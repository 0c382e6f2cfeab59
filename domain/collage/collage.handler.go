package collage

import (
	"mosaicBackend/utils"

	"github.com/gin-gonic/gin"
)

type (
	Handler interface {
		Get(ctx *gin.Context)
		GetByUuid(ctx *gin.Context)
		GetByCode(ctx *gin.Context)
		Create(ctx *gin.Context)
		Delete(ctx *gin.Context)
		UpdateSettings(ctx *gin.Context)
		Export(ctx *gin.Context)
	}

	collageHandler struct {
		collageService Service
	}
)

func CreateHandler(collageService Service) Handler {
	return &collageHandler{
		collageService: collageService,
	}
}

func (h *collageHandler) Get(ctx *gin.Context) {
	result, err := h.collageService.Get(ctx)
	if err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
		return
	}

	ctx.JSON(utils.CreateOkResponse(result))
}

func (h *collageHandler) GetByUuid(ctx *gin.Context) {
	result, err := h.collageService.GetByUuid(ctx, ctx.Param("collageId"))
	if err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
		return
	}

	ctx.JSON(utils.CreateOkResponse(result))
}

func (h *collageHandler) GetByCode(ctx *gin.Context) {
	result, err := h.collageService.GetByCode(ctx, ctx.Param("code"))
	if err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
		return
	}

	ctx.JSON(utils.CreateOkResponse(result))
}

func (h *collageHandler) Create(ctx *gin.Context) {
	payload := CollageIn{}
	if err := ctx.Bind(&payload); err != nil {
		ctx.JSON(utils.CreateValidationError(err))
		return
	}

	result, err := h.collageService.Create(ctx, payload)
	if err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
		return
	}

	ctx.JSON(utils.CreateOkResponse(result))
}

func (h *collageHandler) Delete(ctx *gin.Context) {
	if err := h.collageService.Delete(ctx, ctx.Param("collageId")); err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
		return
	}

	ctx.JSON(utils.CreateOkResponse[any](nil))
}

func (h *collageHandler) UpdateSettings(ctx *gin.Context) {
	payload := SettingsIn{}
	if err := ctx.Bind(&payload); err != nil {
		ctx.JSON(utils.CreateValidationError(err))
		return
	}

	result, err := h.collageService.UpdateSettings(ctx, ctx.Param("collageId"), payload)
	if err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
		return
	}

	ctx.JSON(utils.CreateOkResponse(result))
}

func (h *collageHandler) Export(ctx *gin.Context) {
	result, err := h.collageService.Export(ctx, ctx.Param("collageId"))
	if err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
		return
	}

	ctx.JSON(utils.CreateOkResponse(result))
}
