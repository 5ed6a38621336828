// Processor strategy set for the transformation menu
package processing

import (
	"fmt"

	"gocv.io/x/gocv"
)

// Processor is a stateless image transformation. Process returns a new Mat
// owned by the caller and never retains a reference to the input.
type Processor interface {
	Process(input gocv.Mat) (gocv.Mat, error)
}

// Kind identifies one of the fixed transformations offered by the workbench.
type Kind int

const (
	KindGrayscale Kind = iota
	KindHSV
	KindMultiOtsu
	KindChanVese
	KindMorphSnakes
	KindRoberts
	KindSobel
	KindScharr
	KindPrewitt
)

var kindNames = [...]string{
	KindGrayscale:   "RGB to Grayscale",
	KindHSV:         "RGB to HSV",
	KindMultiOtsu:   "Multi-Otsu Segmentation",
	KindChanVese:    "Chan-Vese Segmentation",
	KindMorphSnakes: "Morphological Snakes",
	KindRoberts:     "Roberts Edge Detection",
	KindSobel:       "Sobel Edge Detection",
	KindScharr:      "Scharr Edge Detection",
	KindPrewitt:     "Prewitt Edge Detection",
}

// String returns the display name of the transformation.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

// Kinds returns every transformation kind in menu order.
func Kinds() []Kind {
	return []Kind{
		KindGrayscale,
		KindHSV,
		KindMultiOtsu,
		KindChanVese,
		KindMorphSnakes,
		KindRoberts,
		KindSobel,
		KindScharr,
		KindPrewitt,
	}
}

// New returns the processor for a transformation kind.
func New(kind Kind) (Processor, error) {
	switch kind {
	case KindGrayscale:
		return &Grayscale{}, nil
	case KindHSV:
		return &HSV{}, nil
	case KindMultiOtsu:
		return NewMultiOtsu(), nil
	case KindChanVese:
		return NewChanVese(), nil
	case KindMorphSnakes:
		return NewMorphSnakes(), nil
	case KindRoberts:
		return &EdgeDetector{operator: operatorRoberts}, nil
	case KindSobel:
		return &EdgeDetector{operator: operatorSobel}, nil
	case KindScharr:
		return &EdgeDetector{operator: operatorScharr}, nil
	case KindPrewitt:
		return &EdgeDetector{operator: operatorPrewitt}, nil
	}
	return nil, fmt.Errorf("unknown processor kind: %d", int(kind))
}
