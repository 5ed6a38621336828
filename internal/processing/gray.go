// Shared grayscale and histogram helpers used by the processors
package processing

import (
	"fmt"

	"gocv.io/x/gocv"
)

// ensureGrayscale returns a single-channel copy of input. The caller owns
// the returned Mat.
func ensureGrayscale(input gocv.Mat) (gocv.Mat, error) {
	gray := gocv.NewMat()
	switch input.Channels() {
	case 1:
		input.CopyTo(&gray)
	case 3:
		gocv.CvtColor(input, &gray, gocv.ColorBGRToGray)
	default:
		gray.Close()
		return gocv.NewMat(), fmt.Errorf("unsupported channel count for grayscale conversion: %d", input.Channels())
	}
	return gray, nil
}

// matToPlane flattens a single-channel 8-bit Mat into a float slice with
// values scaled to [0,1], row-major.
func matToPlane(gray gocv.Mat) ([]float64, int, int) {
	rows := gray.Rows()
	cols := gray.Cols()
	plane := make([]float64, rows*cols)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			plane[y*cols+x] = float64(gray.GetUCharAt(y, x)) / 255.0
		}
	}
	return plane, rows, cols
}

// planeToMat8U converts a [0,1] float plane back into an 8-bit
// single-channel Mat. Values outside [0,1] are clipped.
func planeToMat8U(plane []float64, rows, cols int) gocv.Mat {
	out := gocv.NewMatWithSize(rows, cols, gocv.MatTypeCV8UC1)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			v := plane[y*cols+x]
			if v < 0 {
				v = 0
			} else if v > 1 {
				v = 1
			}
			out.SetUCharAt(y, x, uint8(v*255.0+0.5))
		}
	}
	return out
}

// histogram256 computes the normalized intensity histogram of a
// single-channel 8-bit Mat.
func histogram256(gray gocv.Mat) []float64 {
	hist := make([]float64, 256)
	for y := 0; y < gray.Rows(); y++ {
		for x := 0; x < gray.Cols(); x++ {
			hist[gray.GetUCharAt(y, x)]++
		}
	}
	total := float64(gray.Rows() * gray.Cols())
	if total > 0 {
		for i := range hist {
			hist[i] /= total
		}
	}
	return hist
}

// otsuLevel finds the histogram bin maximizing between-class variance.
// The histogram must be normalized to sum to 1.
func otsuLevel(hist []float64) float64 {
	sum := 0.0
	for i := range hist {
		sum += float64(i) * hist[i]
	}

	sumB := 0.0
	wB := 0.0
	maximum := 0.0
	level := 0.0

	for t := range hist {
		wB += hist[t]
		if wB == 0 {
			continue
		}

		wF := 1.0 - wB
		if wF == 0 {
			break
		}

		sumB += float64(t) * hist[t]
		mB := sumB / wB
		mF := (sum - sumB) / wF

		between := wB * wF * (mB - mF) * (mB - mF)
		if between > maximum {
			level = float64(t)
			maximum = between
		}
	}

	return level
}

// otsuThresholdUnit computes an automatic threshold in [0,1] for a float
// plane whose values lie in [0,1], using a 256-bin histogram.
func otsuThresholdUnit(plane []float64) float64 {
	hist := make([]float64, 256)
	for _, v := range plane {
		idx := int(v * 255.0)
		if idx < 0 {
			idx = 0
		} else if idx > 255 {
			idx = 255
		}
		hist[idx]++
	}
	total := float64(len(plane))
	if total > 0 {
		for i := range hist {
			hist[i] /= total
		}
	}
	return otsuLevel(hist) / 255.0
}

// reflectIndex mirrors an out-of-range coordinate back into [0,n),
// symmetric about the array edge.
func reflectIndex(i, n int) int {
	if i < 0 {
		return -i - 1
	}
	if i >= n {
		return 2*n - i - 1
	}
	return i
}
