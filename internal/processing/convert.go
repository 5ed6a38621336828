// Color-space conversion processors
package processing

import (
	"fmt"

	"gocv.io/x/gocv"
)

// Grayscale reduces a 3-channel image to a single luminance-weighted
// channel spanning the full 8-bit range.
type Grayscale struct{}

func (g *Grayscale) Process(input gocv.Mat) (gocv.Mat, error) {
	if input.Empty() {
		return gocv.NewMat(), fmt.Errorf("input image is empty")
	}
	if input.Channels() != 3 {
		return gocv.NewMat(), fmt.Errorf("grayscale conversion requires a 3-channel image, got %d channels", input.Channels())
	}

	gray := gocv.NewMat()
	gocv.CvtColor(input, &gray, gocv.ColorBGRToGray)
	return gray, nil
}

// HSV maps a 3-channel image into hue/saturation/value planes, each scaled
// to the full 8-bit range. Non-3-channel input is returned unchanged; this
// is a defined fallback, not an error.
type HSV struct{}

func (h *HSV) Process(input gocv.Mat) (gocv.Mat, error) {
	if input.Empty() {
		return gocv.NewMat(), fmt.Errorf("input image is empty")
	}
	if input.Channels() != 3 {
		return input.Clone(), nil
	}

	hsv := gocv.NewMat()
	gocv.CvtColor(input, &hsv, gocv.ColorBGRToHSVFull)
	return hsv, nil
}
