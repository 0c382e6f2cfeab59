package photo

import (
	"mosaicBackend/utils"

	"github.com/gin-gonic/gin"
)

type (
	Handler interface {
		Get(ctx *gin.Context)
		Upload(ctx *gin.Context)
		UpdateUrl(ctx *gin.Context)
		Delete(ctx *gin.Context)
	}

	photoHandler struct {
		photoService Service
	}
)

func CreateHandler(photoService Service) Handler {
	return &photoHandler{
		photoService: photoService,
	}
}

func (h *photoHandler) Get(ctx *gin.Context) {
	result, err := h.photoService.Get(ctx, ctx.Param("collageId"))
	if err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
		return
	}

	ctx.JSON(utils.CreateOkResponse(result))
}

func (h *photoHandler) Upload(ctx *gin.Context) {
	file, err := ctx.FormFile("photo")
	if err != nil {
		ctx.JSON(utils.CreateValidationError(err))
		return
	}

	result, err := h.photoService.Upload(ctx, ctx.Param("collageId"), file)
	if err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
		return
	}

	ctx.JSON(utils.CreateOkResponse(result))
}

func (h *photoHandler) UpdateUrl(ctx *gin.Context) {
	payload := PhotoUrlIn{}
	if err := ctx.Bind(&payload); err != nil {
		ctx.JSON(utils.CreateValidationError(err))
		return
	}

	if err := h.photoService.UpdateUrl(ctx, ctx.Param("photoId"), payload); err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
		return
	}

	ctx.JSON(utils.CreateOkResponse[any](nil))
}

func (h *photoHandler) Delete(ctx *gin.Context) {
	if err := h.photoService.Delete(ctx, ctx.Param("photoId")); err != nil {
		ctx.JSON(utils.CreateErrorResponse(err))
		return
	}

	ctx.JSON(utils.CreateOkResponse[any](nil))
}
