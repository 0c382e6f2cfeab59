package utils

import "errors"

var ErrorServer = errors.New("there was a problem processing the request")
var ErrorUuidNotFound = errors.New("the specified uuid was not found")
var ErrorCodeNotFound = errors.New("no collage exists for the specified join code")
var ErrorCodeExhausted = errors.New("failed to generate a unique join code")
var ErrorValidationError = errors.New("the data provided was invalid")
var ErrorInvalidSettings = errors.New("the settings document provided was invalid")
var ErrorInvalidUpload = errors.New("the uploaded file is not a supported image")
var ErrorUploadTooLarge = errors.New("the uploaded file exceeds the size limit")
var ErrorFileStorage = errors.New("failed to access the file storage")
var ErrorViewerNotOpen = errors.New("no collage is currently open in the viewer")
