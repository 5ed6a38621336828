// Region-based active-contour segmentation
package processing

import (
	"fmt"
	"image"
	"math"

	"gocv.io/x/gocv"
)

// ChanVese segments an image with the classic energy-based active-contour
// model. The contour evolves a level set for a fixed iteration budget and
// stops early once the update falls below the tolerance. The final mask is
// mapped to {0,255}.
type ChanVese struct {
	mu            float64
	lambda1       float64
	lambda2       float64
	tolerance     float64
	maxIterations int
}

func NewChanVese() *ChanVese {
	return &ChanVese{
		mu:            0.25,
		lambda1:       1.0,
		lambda2:       1.0,
		tolerance:     1e-3,
		maxIterations: 200,
	}
}

func (c *ChanVese) Process(input gocv.Mat) (gocv.Mat, error) {
	if input.Empty() {
		return gocv.NewMat(), fmt.Errorf("input image is empty")
	}

	gray, err := ensureGrayscale(input)
	if err != nil {
		return gocv.NewMat(), err
	}
	defer gray.Close()

	plane, rows, cols := matToPlane(gray)
	phi := checkerboardLevelSet(rows, cols)

	const dt = 0.5
	const eps = 1.0

	for iter := 0; iter < c.maxIterations; iter++ {
		c1, c2 := regionMeans(plane, phi, func(v float64) bool { return v > 0 })

		next := make([]float64, len(phi))
		change := 0.0
		for y := 0; y < rows; y++ {
			for x := 0; x < cols; x++ {
				i := y*cols + x
				kappa := curvature(phi, rows, cols, y, x)
				delta := eps / (math.Pi * (eps*eps + phi[i]*phi[i]))
				d1 := plane[i] - c1
				d2 := plane[i] - c2
				force := c.mu*kappa - c.lambda1*d1*d1 + c.lambda2*d2*d2
				next[i] = phi[i] + dt*delta*force
				change += math.Abs(next[i] - phi[i])
			}
		}
		phi = next

		if change/float64(rows*cols) < c.tolerance {
			break
		}
	}

	return levelSetToMask(phi, rows, cols), nil
}

// MorphSnakes segments an image with the morphological variant of the
// Chan-Vese model: the binary level set is updated by the region-energy
// sign rule along its boundary, then regularized with morphological
// opening and closing.
type MorphSnakes struct {
	iterations int
}

func NewMorphSnakes() *MorphSnakes {
	return &MorphSnakes{iterations: 50}
}

func (m *MorphSnakes) Process(input gocv.Mat) (gocv.Mat, error) {
	if input.Empty() {
		return gocv.NewMat(), fmt.Errorf("input image is empty")
	}

	gray, err := ensureGrayscale(input)
	if err != nil {
		return gocv.NewMat(), err
	}
	defer gray.Close()

	plane, rows, cols := matToPlane(gray)

	phi := checkerboardLevelSet(rows, cols)
	u := make([]float64, len(phi))
	for i, v := range phi {
		if v > 0 {
			u[i] = 1
		}
	}

	kernel := gocv.GetStructuringElement(gocv.MorphCross, image.Pt(3, 3))
	defer kernel.Close()

	for iter := 0; iter < m.iterations; iter++ {
		c1, c2 := regionMeans(plane, u, func(v float64) bool { return v > 0 })

		next := make([]float64, len(u))
		copy(next, u)
		for y := 0; y < rows; y++ {
			for x := 0; x < cols; x++ {
				i := y*cols + x
				if !onBoundary(u, rows, cols, y, x) {
					continue
				}
				d1 := plane[i] - c1
				d2 := plane[i] - c2
				if d1*d1 < d2*d2 {
					next[i] = 1
				} else {
					next[i] = 0
				}
			}
		}
		u = next

		m.smooth(u, rows, cols, kernel)
	}

	out := gocv.NewMatWithSize(rows, cols, gocv.MatTypeCV8UC1)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			if u[y*cols+x] > 0 {
				out.SetUCharAt(y, x, 255)
			} else {
				out.SetUCharAt(y, x, 0)
			}
		}
	}
	return out, nil
}

// smooth regularizes the binary level set in place with one open/close
// pass over a Mat view of the mask.
func (m *MorphSnakes) smooth(u []float64, rows, cols int, kernel gocv.Mat) {
	mask := gocv.NewMatWithSize(rows, cols, gocv.MatTypeCV8UC1)
	defer mask.Close()
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			if u[y*cols+x] > 0 {
				mask.SetUCharAt(y, x, 255)
			}
		}
	}

	opened := gocv.NewMat()
	defer opened.Close()
	gocv.MorphologyEx(mask, &opened, gocv.MorphOpen, kernel)

	closed := gocv.NewMat()
	defer closed.Close()
	gocv.MorphologyEx(opened, &closed, gocv.MorphClose, kernel)

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			if closed.GetUCharAt(y, x) > 0 {
				u[y*cols+x] = 1
			} else {
				u[y*cols+x] = 0
			}
		}
	}
}

// checkerboardLevelSet builds the standard sinusoidal initial level set.
func checkerboardLevelSet(rows, cols int) []float64 {
	phi := make([]float64, rows*cols)
	for y := 0; y < rows; y++ {
		sy := math.Sin(math.Pi / 5.0 * float64(y))
		for x := 0; x < cols; x++ {
			phi[y*cols+x] = sy * math.Sin(math.Pi/5.0*float64(x))
		}
	}
	return phi
}

// regionMeans computes the mean intensity inside and outside the contour.
func regionMeans(plane, phi []float64, inside func(float64) bool) (float64, float64) {
	sumIn, sumOut := 0.0, 0.0
	nIn, nOut := 0, 0
	for i, v := range phi {
		if inside(v) {
			sumIn += plane[i]
			nIn++
		} else {
			sumOut += plane[i]
			nOut++
		}
	}
	c1, c2 := 0.0, 0.0
	if nIn > 0 {
		c1 = sumIn / float64(nIn)
	}
	if nOut > 0 {
		c2 = sumOut / float64(nOut)
	}
	return c1, c2
}

// curvature approximates div(grad phi / |grad phi|) at one pixel with
// central differences, reflecting at the borders.
func curvature(phi []float64, rows, cols, y, x int) float64 {
	at := func(yy, xx int) float64 {
		return phi[reflectIndex(yy, rows)*cols+reflectIndex(xx, cols)]
	}

	px := (at(y, x+1) - at(y, x-1)) / 2.0
	py := (at(y+1, x) - at(y-1, x)) / 2.0
	pxx := at(y, x+1) - 2.0*at(y, x) + at(y, x-1)
	pyy := at(y+1, x) - 2.0*at(y, x) + at(y-1, x)
	pxy := (at(y+1, x+1) - at(y+1, x-1) - at(y-1, x+1) + at(y-1, x-1)) / 4.0

	const tiny = 1e-8
	den := math.Pow(px*px+py*py+tiny, 1.5)
	return (pxx*py*py - 2.0*px*py*pxy + pyy*px*px) / den
}

// onBoundary reports whether any 4-neighbor differs from the pixel.
func onBoundary(u []float64, rows, cols, y, x int) bool {
	v := u[y*cols+x]
	if y > 0 && u[(y-1)*cols+x] != v {
		return true
	}
	if y < rows-1 && u[(y+1)*cols+x] != v {
		return true
	}
	if x > 0 && u[y*cols+x-1] != v {
		return true
	}
	if x < cols-1 && u[y*cols+x+1] != v {
		return true
	}
	return false
}

// levelSetToMask maps positive level-set values to 255.
func levelSetToMask(phi []float64, rows, cols int) gocv.Mat {
	out := gocv.NewMatWithSize(rows, cols, gocv.MatTypeCV8UC1)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			if phi[y*cols+x] > 0 {
				out.SetUCharAt(y, x, 255)
			} else {
				out.SetUCharAt(y, x, 0)
			}
		}
	}
	return out
}
