package test

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"mosaicBackend/domain/photo"
	"mosaicBackend/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// encodeTestImage A small valid PNG to upload in tests.
func encodeTestImage(t *testing.T, width int, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}

	var buffer bytes.Buffer
	require.NoError(t, png.Encode(&buffer, img))

	return buffer.Bytes()
}

func buildUploadRequest(t *testing.T, collageId string, data []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("photo", "upload.png")
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req, _ := http.NewRequest("POST", "/collages/"+collageId+"/photos", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return req
}

// === GET ===
func TestGetPhotos(t *testing.T) {
	router, _ := SetupTestServer(t)

	req, _ := http.NewRequest("GET", "/collages/"+SeedCollageUuid+"/photos", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)

	var response utils.OkResponse[[]photo.PhotoOut]
	err := json.Unmarshal(resp.Body.Bytes(), &response)
	require.NoError(t, err)

	// Oldest first
	require.Len(t, response.Payload, 3)
	assert.Equal(t, SeedPhotoA, response.Payload[0].UUID)
	assert.Equal(t, SeedPhotoB, response.Payload[1].UUID)
	assert.Equal(t, SeedPhotoC, response.Payload[2].UUID)
}

func TestGetPhotos_CollageNotFound(t *testing.T) {
	router, _ := SetupTestServer(t)

	req, _ := http.NewRequest("GET", "/collages/unknown-id/photos", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusNotFound, resp.Code)
}

// === POST ===
func TestUploadPhoto(t *testing.T) {
	router, env := SetupTestServer(t)

	req := buildUploadRequest(t, SeedCollageUuid, encodeTestImage(t, 32, 32))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)

	var response utils.OkResponse[photo.PhotoOut]
	err := json.Unmarshal(resp.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.NotEmpty(t, response.Payload.UUID)
	assert.Equal(t, SeedCollageUuid, response.Payload.CollageId)
	assert.Contains(t, response.Payload.Url, "/media/"+SeedCollageUuid+"/")
	assert.Contains(t, response.Payload.ThumbnailUrl, ".thumb.jpg")

	// Full image plus thumbnail were stored
	assert.Equal(t, 2, env.StorageManager.ObjectCount(SeedCollageUuid))

	listReq, _ := http.NewRequest("GET", "/collages/"+SeedCollageUuid+"/photos", nil)
	listResp := httptest.NewRecorder()
	router.ServeHTTP(listResp, listReq)

	var listResponse utils.OkResponse[[]photo.PhotoOut]
	err = json.Unmarshal(listResp.Body.Bytes(), &listResponse)
	require.NoError(t, err)
	assert.Len(t, listResponse.Payload, 4)
}

func TestUploadPhoto_CollageNotFound(t *testing.T) {
	router, _ := SetupTestServer(t)

	req := buildUploadRequest(t, "unknown-id", encodeTestImage(t, 8, 8))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestUploadPhoto_InvalidContent(t *testing.T) {
	router, env := SetupTestServer(t)

	req := buildUploadRequest(t, SeedCollageUuid, []byte("definitely not an image"))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)

	// Nothing was written for the rejected upload
	assert.Equal(t, 0, env.StorageManager.ObjectCount(SeedCollageUuid))
}

func TestUploadPhoto_TooLarge(t *testing.T) {
	router, _ := SetupTestServer(t)

	// One byte over the configured limit; the size check rejects the upload
	// before its content is ever inspected.
	oversized := bytes.Repeat([]byte{0}, (10<<20)+1)
	req := buildUploadRequest(t, SeedCollageUuid, oversized)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestUploadPhoto_MissingFile(t *testing.T) {
	router, _ := SetupTestServer(t)

	req, _ := http.NewRequest("POST", "/collages/"+SeedCollageUuid+"/photos", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
}

// === PATCH ===
func TestUpdatePhotoUrl(t *testing.T) {
	router, env := SetupTestServer(t)

	payload := `{"url":"/media/relocated.jpg"}`
	req, _ := http.NewRequest("PATCH", "/photos/"+SeedPhotoB, bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)

	updated, err := env.PhotoRepo.GetByUuid(req.Context(), SeedPhotoB)
	require.NoError(t, err)
	assert.Equal(t, "/media/relocated.jpg", updated.Url)
}

func TestUpdatePhotoUrl_NotFound(t *testing.T) {
	router, _ := SetupTestServer(t)

	payload := `{"url":"/media/relocated.jpg"}`
	req, _ := http.NewRequest("PATCH", "/photos/unknown-id", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestUpdatePhotoUrl_MissingUrl(t *testing.T) {
	router, _ := SetupTestServer(t)

	req, _ := http.NewRequest("PATCH", "/photos/"+SeedPhotoB, bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

// === DELETE ===
func TestDeletePhoto(t *testing.T) {
	router, _ := SetupTestServer(t)

	req, _ := http.NewRequest("DELETE", "/photos/"+SeedPhotoB, nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)

	listReq, _ := http.NewRequest("GET", "/collages/"+SeedCollageUuid+"/photos", nil)
	listResp := httptest.NewRecorder()
	router.ServeHTTP(listResp, listReq)

	var listResponse utils.OkResponse[[]photo.PhotoOut]
	err := json.Unmarshal(listResp.Body.Bytes(), &listResponse)
	require.NoError(t, err)

	require.Len(t, listResponse.Payload, 2)
	assert.Equal(t, SeedPhotoA, listResponse.Payload[0].UUID)
	assert.Equal(t, SeedPhotoC, listResponse.Payload[1].UUID)
}

func TestDeletePhoto_NotFound(t *testing.T) {
	router, _ := SetupTestServer(t)

	req, _ := http.NewRequest("DELETE", "/photos/unknown-id", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusNotFound, resp.Code)
}
