package photo

import (
	"image"

	"github.com/nfnt/resize"
)

// resizeImage Scales an image down to the given width, keeping the aspect ratio.
// Images already narrower than the target are left untouched.
func resizeImage(source image.Image, width uint) image.Image {
	if uint(source.Bounds().Dx()) <= width {
		return source
	}

	return resize.Resize(width, 0, source, resize.Lanczos3)
}
