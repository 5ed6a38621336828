// Image loading and saving backed by OpenCV
package io

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"
)

// Mat depth values packed into the low bits of a MatType.
const (
	depthMask  = 7
	depthFloat = 5 // CV_32F
	depthDbl   = 6 // CV_64F
)

// ImageLoader handles image file operations for the workbench.
type ImageLoader struct {
	logger *logrus.Logger
}

func NewImageLoader(logger *logrus.Logger) *ImageLoader {
	return &ImageLoader{logger: logger}
}

// LoadImage decodes an image from disk. Grayscale files stay
// single-channel; floating-point samples in [0,1] are normalized to 8-bit
// integer samples, already-integer images pass through unchanged.
func (il *ImageLoader) LoadImage(filepath string) (gocv.Mat, error) {
	il.logger.WithField("filepath", filepath).Debug("Loading image")

	if !il.isSupportedImageFormat(filepath) {
		return gocv.NewMat(), fmt.Errorf("unsupported image format: %s", filepath)
	}

	mat := gocv.IMRead(filepath, gocv.IMReadUnchanged)
	if mat.Empty() {
		return gocv.NewMat(), fmt.Errorf("failed to load image: %s", filepath)
	}

	depth := int(mat.Type()) & depthMask
	if depth == depthFloat || depth == depthDbl {
		normalized := gocv.NewMat()
		mat.ConvertToWithParams(&normalized, gocv.MatTypeCV8U, 255, 0)
		mat.Close()
		mat = normalized
	}

	il.logger.WithFields(logrus.Fields{
		"filepath": filepath,
		"width":    mat.Cols(),
		"height":   mat.Rows(),
		"channels": mat.Channels(),
	}).Info("Image loaded successfully")

	return mat, nil
}

// SaveImage encodes an image to disk, wrapping the underlying cause on
// failure.
func (il *ImageLoader) SaveImage(mat gocv.Mat, filepath string) error {
	il.logger.WithField("filepath", filepath).Debug("Saving image")

	if mat.Empty() {
		return fmt.Errorf("cannot save empty image")
	}

	if !il.isSupportedImageFormat(filepath) {
		return fmt.Errorf("unsupported image format: %s", filepath)
	}

	if ok := gocv.IMWrite(filepath, mat); !ok {
		return fmt.Errorf("failed to save image: %s", filepath)
	}

	il.logger.WithFields(logrus.Fields{
		"filepath": filepath,
		"width":    mat.Cols(),
		"height":   mat.Rows(),
		"channels": mat.Channels(),
	}).Info("Image saved successfully")

	return nil
}

func (il *ImageLoader) isSupportedImageFormat(filepath string) bool {
	ext := strings.ToLower(getFileExtension(filepath))
	for _, format := range []string{".jpg", ".jpeg", ".png", ".tiff", ".tif", ".bmp"} {
		if ext == format {
			return true
		}
	}
	return false
}

func getFileExtension(filepath string) string {
	for i := len(filepath) - 1; i >= 0; i-- {
		if filepath[i] == '.' {
			return filepath[i:]
		}
		if filepath[i] == '/' || filepath[i] == '\\' {
			break
		}
	}
	return ""
}

// SupportedExtensions lists the file extensions the loader accepts, in the
// form the file dialogs expect.
func (il *ImageLoader) SupportedExtensions() []string {
	return []string{".png", ".jpg", ".jpeg", ".tiff", ".tif", ".bmp"}
}
