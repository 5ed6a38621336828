// Multi-level Otsu threshold segmentation
package processing

import (
	"fmt"

	"gocv.io/x/gocv"
)

// MultiOtsu segments an image into three intensity classes using two Otsu
// cut points. Class indices are rescaled so the maximum observed class
// maps to 255 via integer division (255 / maxClass), not by classCount-1;
// this unusual scaling is intentional and locked in by tests.
type MultiOtsu struct{}

func NewMultiOtsu() *MultiOtsu {
	return &MultiOtsu{}
}

func (m *MultiOtsu) Process(input gocv.Mat) (gocv.Mat, error) {
	if input.Empty() {
		return gocv.NewMat(), fmt.Errorf("input image is empty")
	}

	gray, err := ensureGrayscale(input)
	if err != nil {
		return gocv.NewMat(), err
	}
	defer gray.Close()

	hist := histogram256(gray)
	t1, t2 := multiOtsuThresholds(hist)

	rows := gray.Rows()
	cols := gray.Cols()

	// Bucket-assign every pixel to its class index.
	classes := make([]int, rows*cols)
	maxClass := 0
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			v := float64(gray.GetUCharAt(y, x))
			class := 0
			if v >= t1 {
				class++
			}
			if v >= t2 {
				class++
			}
			classes[y*cols+x] = class
			if class > maxClass {
				maxClass = class
			}
		}
	}

	scale := 0
	if maxClass > 0 {
		scale = 255 / maxClass
	}

	out := gocv.NewMatWithSize(rows, cols, gocv.MatTypeCV8UC1)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			out.SetUCharAt(y, x, uint8(classes[y*cols+x]*scale))
		}
	}
	return out, nil
}

// multiOtsuThresholds finds the two cut points maximizing the three-class
// between-class variance by exhaustive search over threshold pairs. The
// classes are [0,t1), [t1,t2), [t2,255]. Ties keep the last maximum, so
// the cut points sit as high as the histogram allows.
func multiOtsuThresholds(hist []float64) (float64, float64) {
	n := len(hist)

	// Prefix sums of mass and weighted intensity.
	weight := make([]float64, n+1)
	mean := make([]float64, n+1)
	for i := 0; i < n; i++ {
		weight[i+1] = weight[i] + hist[i]
		mean[i+1] = mean[i] + float64(i)*hist[i]
	}

	// Between-class variance of one class, up to the constant global mean
	// term shared by every split.
	classTerm := func(lo, hi int) float64 {
		w := weight[hi] - weight[lo]
		if w == 0 {
			return 0
		}
		m := mean[hi] - mean[lo]
		return m * m / w
	}

	best := -1.0
	bestT1, bestT2 := 1, 2
	for t1 := 1; t1 < n-1; t1++ {
		lower := classTerm(0, t1)
		for t2 := t1 + 1; t2 < n; t2++ {
			variance := lower + classTerm(t1, t2) + classTerm(t2, n)
			if variance >= best {
				best = variance
				bestT1, bestT2 = t1, t2
			}
		}
	}

	return float64(bestT1), float64(bestT2)
}
