package utils

import (
	"errors"
	"net/http"
)

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type OkResponse[T any] struct {
	Payload T `json:"payload"`
}

func CreateOkResponse[T any](obj T) (int, OkResponse[T]) {
	return http.StatusOK, OkResponse[T]{Payload: obj}
}

func CreateErrorResponse(err error) (int, ErrorResponse) {
	switch {
	case errors.Is(err, ErrorUuidNotFound),
		errors.Is(err, ErrorCodeNotFound),
		errors.Is(err, ErrorViewerNotOpen):
		return http.StatusNotFound, ErrorResponse{Code: -1, Message: err.Error()}
	case errors.Is(err, ErrorCodeExhausted):
		return http.StatusBadRequest, ErrorResponse{Code: 2001, Message: err.Error()}
	case errors.Is(err, ErrorInvalidSettings):
		return http.StatusBadRequest, ErrorResponse{Code: 2002, Message: err.Error()}
	case errors.Is(err, ErrorInvalidUpload):
		return http.StatusBadRequest, ErrorResponse{Code: 3001, Message: err.Error()}
	case errors.Is(err, ErrorUploadTooLarge):
		return http.StatusBadRequest, ErrorResponse{Code: 3002, Message: err.Error()}
	case errors.Is(err, ErrorFileStorage):
		return http.StatusInternalServerError, ErrorResponse{Code: 500, Message: err.Error()}
	}

	return http.StatusInternalServerError, ErrorResponse{Code: 500, Message: err.Error()}
}

func CreateValidationError(err error) (int, ErrorResponse) {
	return http.StatusUnprocessableEntity, ErrorResponse{Code: 422, Message: err.Error()}
}
