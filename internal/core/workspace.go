// Workspace holds the per-window image state with thread-safe access
package core

import (
	"sync"

	"gocv.io/x/gocv"
)

// Workspace owns the two named image slots of one window: the loaded
// source image and the most recent processing output. Slot accessors use
// clone-in/clone-out semantics so no caller ever aliases workspace state;
// commands snapshot and restore through this surface. Refresh callbacks
// notify the display layer, the error callback feeds the error dialog.
type Workspace struct {
	mu     sync.RWMutex
	source gocv.Mat
	output gocv.Mat

	sourcePath string

	onRefreshSource func()
	onRefreshOutput func()
	onError         func(string)
}

func NewWorkspace() *Workspace {
	return &Workspace{
		source: gocv.NewMat(),
		output: gocv.NewMat(),
	}
}

// SetCallbacks registers the display refresh triggers and the error sink.
// Nil callbacks are allowed and skipped.
func (w *Workspace) SetCallbacks(onRefreshSource, onRefreshOutput func(), onError func(string)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onRefreshSource = onRefreshSource
	w.onRefreshOutput = onRefreshOutput
	w.onError = onError
}

// Source returns a copy of the source image; empty Mat when none is loaded.
func (w *Workspace) Source() gocv.Mat {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.source.Empty() {
		return gocv.NewMat()
	}
	return w.source.Clone()
}

// SetSource stores a copy of mat as the source image.
func (w *Workspace) SetSource(mat gocv.Mat) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.source.Empty() {
		w.source.Close()
	}
	w.source = mat.Clone()
}

// HasSource reports whether a source image is loaded.
func (w *Workspace) HasSource() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return !w.source.Empty()
}

// ClearSource empties the source slot.
func (w *Workspace) ClearSource() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.source.Empty() {
		w.source.Close()
	}
	w.source = gocv.NewMat()
	w.sourcePath = ""
}

// Output returns a copy of the output image; empty Mat when none exists.
func (w *Workspace) Output() gocv.Mat {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.output.Empty() {
		return gocv.NewMat()
	}
	return w.output.Clone()
}

// SetOutput stores a copy of mat as the output image.
func (w *Workspace) SetOutput(mat gocv.Mat) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.output.Empty() {
		w.output.Close()
	}
	w.output = mat.Clone()
}

// HasOutput reports whether an output image exists.
func (w *Workspace) HasOutput() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return !w.output.Empty()
}

// ClearOutput empties the output slot.
func (w *Workspace) ClearOutput() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.output.Empty() {
		w.output.Close()
	}
	w.output = gocv.NewMat()
}

// SourcePath returns the path the source image was loaded from.
func (w *Workspace) SourcePath() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.sourcePath
}

// SetSourcePath records where the source image came from.
func (w *Workspace) SetSourcePath(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.sourcePath = path
}

// RefreshSource triggers the source display callback.
func (w *Workspace) RefreshSource() {
	w.mu.RLock()
	cb := w.onRefreshSource
	w.mu.RUnlock()
	if cb != nil {
		cb()
	}
}

// RefreshOutput triggers the output display callback.
func (w *Workspace) RefreshOutput() {
	w.mu.RLock()
	cb := w.onRefreshOutput
	w.mu.RUnlock()
	if cb != nil {
		cb()
	}
}

// ReportError forwards a human-readable failure description to the error
// sink.
func (w *Workspace) ReportError(msg string) {
	w.mu.RLock()
	cb := w.onError
	w.mu.RUnlock()
	if cb != nil {
		cb(msg)
	}
}

// Close releases both image slots.
func (w *Workspace) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.source.Empty() {
		w.source.Close()
	}
	if !w.output.Empty() {
		w.output.Close()
	}
	w.source = gocv.NewMat()
	w.output = gocv.NewMat()
	w.sourcePath = ""
}
