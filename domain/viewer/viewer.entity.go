package viewer

import (
	"mosaicBackend/display/scene"
)

type OpenIn struct {
	Code *string `json:"code" binding:"required"`
}

type StatusOut struct {
	CollageId  string `json:"collageId"`
	Subscribed bool   `json:"subscribed"`
	Polling    bool   `json:"polling"`
}

type FrameOut struct {
	CollageId string             `json:"collageId"`
	Time      float64            `json:"time"`
	Pattern   string             `json:"pattern"`
	Items     []scene.RenderItem `json:"items"`
}
