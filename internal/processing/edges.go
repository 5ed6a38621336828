// Gradient-operator edge detection with the shared emphasize post-filter
package processing

import (
	"fmt"
	"math"

	"gocv.io/x/gocv"
)

type edgeOperator int

const (
	operatorRoberts edgeOperator = iota
	operatorSobel
	operatorScharr
	operatorPrewitt
)

// EdgeDetector computes a gradient-magnitude edge response and passes it
// through the emphasize post-filter shared by all four operators.
type EdgeDetector struct {
	operator edgeOperator
}

func (e *EdgeDetector) Process(input gocv.Mat) (gocv.Mat, error) {
	if input.Empty() {
		return gocv.NewMat(), fmt.Errorf("input image is empty")
	}

	gray, err := ensureGrayscale(input)
	if err != nil {
		return gocv.NewMat(), err
	}
	defer gray.Close()

	plane, rows, cols := matToPlane(gray)

	var response []float64
	switch e.operator {
	case operatorRoberts:
		response = robertsResponse(plane, rows, cols)
	case operatorSobel:
		response = gradientMagnitude(plane, rows, cols, sobelKernel)
	case operatorScharr:
		response = gradientMagnitude(plane, rows, cols, scharrKernel)
	case operatorPrewitt:
		response = gradientMagnitude(plane, rows, cols, prewittKernel)
	default:
		return gocv.NewMat(), fmt.Errorf("unknown edge operator: %d", int(e.operator))
	}

	return emphasize(response, rows, cols), nil
}

// Horizontal-gradient kernels; the vertical kernel is the transpose.
var (
	sobelKernel = [3][3]float64{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	}
	scharrKernel = [3][3]float64{
		{-3, 0, 3},
		{-10, 0, 10},
		{-3, 0, 3},
	}
	prewittKernel = [3][3]float64{
		{-1, 0, 1},
		{-1, 0, 1},
		{-1, 0, 1},
	}
)

// gradientMagnitude convolves the plane with a 3x3 kernel and its
// transpose, reflecting at the borders, and returns sqrt(gx^2+gy^2).
func gradientMagnitude(plane []float64, rows, cols int, kx [3][3]float64) []float64 {
	out := make([]float64, rows*cols)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			gx := 0.0
			gy := 0.0
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					v := plane[reflectIndex(y+dy, rows)*cols+reflectIndex(x+dx, cols)]
					gx += v * kx[dy+1][dx+1]
					gy += v * kx[dx+1][dy+1]
				}
			}
			out[y*cols+x] = math.Sqrt(gx*gx + gy*gy)
		}
	}
	return out
}

// robertsResponse applies the 2x2 diagonal-difference operator.
func robertsResponse(plane []float64, rows, cols int) []float64 {
	out := make([]float64, rows*cols)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			y1 := reflectIndex(y+1, rows)
			x1 := reflectIndex(x+1, cols)
			g1 := plane[y*cols+x] - plane[y1*cols+x1]
			g2 := plane[y*cols+x1] - plane[y1*cols+x]
			out[y*cols+x] = math.Sqrt(g1*g1 + g2*g2)
		}
	}
	return out
}

// emphasize normalizes a continuous edge response and stretches it around
// an automatic threshold: shift the minimum to 0, divide by the maximum
// (skipped when 0), compute an Otsu threshold over the normalized
// response, then rescale so the threshold maps to 0 and 1 maps to 1. When
// the threshold is exactly 1 the rescale is skipped to avoid dividing by
// zero. The result is clipped to [0,1] and scaled to 8-bit.
func emphasize(response []float64, rows, cols int) gocv.Mat {
	min := math.Inf(1)
	for _, v := range response {
		if v < min {
			min = v
		}
	}
	max := math.Inf(-1)
	for i := range response {
		response[i] -= min
		if response[i] > max {
			max = response[i]
		}
	}
	if max > 0 {
		for i := range response {
			response[i] /= max
		}
	}

	thr := otsuThresholdUnit(response)
	return stretchAboveThreshold(response, thr, rows, cols)
}

// stretchAboveThreshold rescales the normalized response so thr maps to 0
// and 1 maps to 1. A threshold of exactly 1 skips the rescale to avoid
// dividing by zero; the normalized response is used directly.
func stretchAboveThreshold(response []float64, thr float64, rows, cols int) gocv.Mat {
	if 1-thr > 0 {
		for i := range response {
			response[i] = (response[i] - thr) / (1 - thr)
		}
	}
	return planeToMat8U(response, rows, cols)
}
