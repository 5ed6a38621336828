// Side-by-side source/output display
package gui

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"
	"golang.org/x/image/draw"

	"imaging-workbench/internal/core"
)

// Previews larger than this on either axis are downscaled before display.
const maxPreviewDim = 2048

// ImageCanvas shows the source and output slots side by side. Refresh
// methods pull the current Mat from the workspace; the canvas never keeps
// its own Mat copies.
type ImageCanvas struct {
	workspace *core.Workspace
	logger    *logrus.Logger

	split       *container.Split
	sourceView  *widget.Card
	outputView  *widget.Card
	sourceImage *canvas.Image
	outputImage *canvas.Image
}

func NewImageCanvas(workspace *core.Workspace, logger *logrus.Logger) *ImageCanvas {
	ic := &ImageCanvas{
		workspace: workspace,
		logger:    logger,
	}
	ic.initializeUI()
	return ic
}

func (ic *ImageCanvas) initializeUI() {
	ic.sourceImage = newPlaceholderImage()
	ic.outputImage = newPlaceholderImage()

	ic.sourceView = widget.NewCard("Source", "", ic.sourceImage)
	ic.outputView = widget.NewCard("Output", "", ic.outputImage)

	ic.split = container.NewHSplit(ic.sourceView, ic.outputView)
	ic.split.SetOffset(0.5)
}

func (ic *ImageCanvas) GetContainer() fyne.CanvasObject {
	return ic.split
}

// RefreshSource redraws the source card from the workspace.
func (ic *ImageCanvas) RefreshSource() {
	if !ic.workspace.HasSource() {
		ic.clearImage(ic.sourceImage)
		return
	}
	mat := ic.workspace.Source()
	defer mat.Close()
	ic.showMat(mat, ic.sourceImage)
}

// RefreshOutput redraws the output card from the workspace.
func (ic *ImageCanvas) RefreshOutput() {
	if !ic.workspace.HasOutput() {
		ic.clearImage(ic.outputImage)
		return
	}
	mat := ic.workspace.Output()
	defer mat.Close()
	ic.showMat(mat, ic.outputImage)
}

func (ic *ImageCanvas) showMat(mat gocv.Mat, target *canvas.Image) {
	img, err := mat.ToImage()
	if err != nil {
		ic.logger.WithError(err).Error("Failed to convert Mat for display")
		return
	}

	target.Image = fitPreview(img)
	target.Refresh()
}

func (ic *ImageCanvas) clearImage(target *canvas.Image) {
	target.Image = placeholder()
	target.Refresh()
}

// fitPreview downscales large images so the canvas never has to rasterize
// full-resolution pixels.
func fitPreview(img image.Image) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxPreviewDim && h <= maxPreviewDim {
		return img
	}

	scale := float64(maxPreviewDim) / float64(w)
	if h > w {
		scale = float64(maxPreviewDim) / float64(h)
	}
	dst := image.NewRGBA(image.Rect(0, 0, int(float64(w)*scale), int(float64(h)*scale)))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

func placeholder() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 320, 240))
	for y := 0; y < 240; y++ {
		for x := 0; x < 320; x++ {
			img.Pix[(y*320+x)*4] = 240
			img.Pix[(y*320+x)*4+1] = 240
			img.Pix[(y*320+x)*4+2] = 240
			img.Pix[(y*320+x)*4+3] = 255
		}
	}
	return img
}

func newPlaceholderImage() *canvas.Image {
	img := canvas.NewImageFromImage(placeholder())
	img.FillMode = canvas.ImageFillContain
	img.ScaleMode = canvas.ImageScalePixels
	img.SetMinSize(fyne.NewSize(320, 240))
	return img
}
