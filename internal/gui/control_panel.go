// Transformation and history buttons
package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"imaging-workbench/internal/processing"
)

// ControlPanel groups one button per transformation plus the history and
// clear controls. Enablement is driven by the application: transformations
// need a source image, output controls need an output image.
type ControlPanel struct {
	vbox *fyne.Container

	transformButtons map[processing.Kind]*widget.Button
	undoButton       *widget.Button
	redoButton       *widget.Button
	clearSourceBtn   *widget.Button
	clearOutputBtn   *widget.Button

	onApply       func(processing.Kind)
	onUndo        func()
	onRedo        func()
	onClearSource func()
	onClearOutput func()
}

func NewControlPanel() *ControlPanel {
	cp := &ControlPanel{
		transformButtons: make(map[processing.Kind]*widget.Button),
	}
	cp.initializeUI()
	return cp
}

func (cp *ControlPanel) initializeUI() {
	conversion := []processing.Kind{processing.KindGrayscale, processing.KindHSV}
	segmentation := []processing.Kind{processing.KindMultiOtsu, processing.KindChanVese, processing.KindMorphSnakes}
	edges := []processing.Kind{processing.KindRoberts, processing.KindSobel, processing.KindScharr, processing.KindPrewitt}

	cp.undoButton = widget.NewButton("Undo", func() {
		if cp.onUndo != nil {
			cp.onUndo()
		}
	})
	cp.redoButton = widget.NewButton("Redo", func() {
		if cp.onRedo != nil {
			cp.onRedo()
		}
	})
	cp.clearSourceBtn = widget.NewButton("Clear Source", func() {
		if cp.onClearSource != nil {
			cp.onClearSource()
		}
	})
	cp.clearOutputBtn = widget.NewButton("Clear Output", func() {
		if cp.onClearOutput != nil {
			cp.onClearOutput()
		}
	})

	cp.vbox = container.NewVBox(
		widget.NewCard("Conversion", "", cp.buttonGroup(conversion)),
		widget.NewCard("Segmentation", "", cp.buttonGroup(segmentation)),
		widget.NewCard("Edge Detection", "", cp.buttonGroup(edges)),
		widget.NewCard("History", "", container.NewVBox(
			container.NewGridWithColumns(2, cp.undoButton, cp.redoButton),
			cp.clearSourceBtn,
			cp.clearOutputBtn,
		)),
	)
}

func (cp *ControlPanel) buttonGroup(kinds []processing.Kind) *fyne.Container {
	box := container.NewVBox()
	for _, kind := range kinds {
		k := kind
		btn := widget.NewButton(k.String(), func() {
			if cp.onApply != nil {
				cp.onApply(k)
			}
		})
		cp.transformButtons[k] = btn
		box.Add(btn)
	}
	return box
}

func (cp *ControlPanel) GetContainer() fyne.CanvasObject {
	return cp.vbox
}

func (cp *ControlPanel) SetCallbacks(onApply func(processing.Kind), onUndo, onRedo, onClearSource, onClearOutput func()) {
	cp.onApply = onApply
	cp.onUndo = onUndo
	cp.onRedo = onRedo
	cp.onClearSource = onClearSource
	cp.onClearOutput = onClearOutput
}

// EnableTransforms toggles every transformation button and Clear Source.
func (cp *ControlPanel) EnableTransforms(enabled bool) {
	for _, btn := range cp.transformButtons {
		setEnabled(btn, enabled)
	}
	setEnabled(cp.clearSourceBtn, enabled)
}

// EnableOutputControls toggles the controls that need an output image.
func (cp *ControlPanel) EnableOutputControls(enabled bool) {
	setEnabled(cp.clearOutputBtn, enabled)
}

// SetUndoRedo tracks stack non-emptiness, nothing else.
func (cp *ControlPanel) SetUndoRedo(canUndo, canRedo bool) {
	setEnabled(cp.undoButton, canUndo)
	setEnabled(cp.redoButton, canRedo)
}

func setEnabled(btn *widget.Button, enabled bool) {
	if enabled {
		btn.Enable()
	} else {
		btn.Disable()
	}
}
