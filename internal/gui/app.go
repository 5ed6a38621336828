// Main application window wiring workspace, history, and panels
package gui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"imaging-workbench/internal/commands"
	"imaging-workbench/internal/config"
	"imaging-workbench/internal/core"
	"imaging-workbench/internal/io"
	"imaging-workbench/internal/processing"
)

// Application is the main window controller. It owns one workspace and one
// command history; every user action runs on the Fyne event thread, so
// command construction, execution, and history mutation are strictly
// serialized.
type Application struct {
	app    fyne.App
	window fyne.Window
	logger *logrus.Logger

	workspace *core.Workspace
	history   *commands.History
	loader    *io.ImageLoader

	canvas      *ImageCanvas
	controls    *ControlPanel
	menuHandler *MenuHandler

	statusLabel *widget.Label
}

func NewApplication(app fyne.App, cfg config.Config, logger *logrus.Logger) *Application {
	window := app.NewWindow("Imaging Workbench")
	window.Resize(fyne.NewSize(float32(cfg.Window.Width), float32(cfg.Window.Height)))
	window.CenterOnScreen()

	a := &Application{
		app:    app,
		window: window,
		logger: logger,
	}

	a.initializeCore()
	a.initializeGUI()
	a.setupLayout()
	a.setupCallbacks()
	a.updateControls()

	return a
}

func (a *Application) initializeCore() {
	a.workspace = core.NewWorkspace()
	a.history = commands.NewHistory()
	a.loader = io.NewImageLoader(a.logger)
}

func (a *Application) initializeGUI() {
	a.canvas = NewImageCanvas(a.workspace, a.logger)
	a.controls = NewControlPanel()
	a.menuHandler = NewMenuHandler(a.window, a.workspace, a.loader, a.logger)
	a.statusLabel = widget.NewLabel("Open a source image to begin")
}

func (a *Application) setupLayout() {
	statusCard := widget.NewCard("Status", "", a.statusLabel)

	left := container.NewBorder(nil, statusCard, nil, nil,
		container.NewScroll(a.controls.GetContainer()))

	content := container.NewHSplit(left, a.canvas.GetContainer())
	content.SetOffset(0.25)

	a.window.SetMainMenu(a.menuHandler.GetMainMenu())
	a.window.SetContent(content)
}

func (a *Application) setupCallbacks() {
	a.workspace.SetCallbacks(
		a.canvas.RefreshSource,
		a.canvas.RefreshOutput,
		func(msg string) {
			a.showError("Error", fmt.Errorf("%s", msg))
		},
	)

	a.controls.SetCallbacks(
		a.applyProcessor,
		a.undo,
		a.redo,
		a.clearSource,
		a.clearOutput,
	)

	a.menuHandler.SetCallbacks(MenuCallbacks{
		OnSourceLoaded: a.sourceLoaded,
		OnUndo:         a.undo,
		OnRedo:         a.redo,
		OnClearSource:  a.clearSource,
		OnClearOutput:  a.clearOutput,
	})
}

// applyProcessor builds, executes, and records one transformation command.
// The command is pushed only after execute succeeds, so a failed processor
// never lands in history.
func (a *Application) applyProcessor(kind processing.Kind) {
	if !a.workspace.HasSource() {
		return
	}

	a.logger.WithField("processor", kind.String()).Info("Applying transformation")

	cmd := commands.NewApply(a.workspace, kind)
	if err := cmd.Execute(); err != nil {
		cmd.Release()
		a.showError("Processing Error", err)
		return
	}
	a.history.Push(cmd)

	a.setStatus(fmt.Sprintf("Applied: %s", kind))
	a.updateControls()
}

func (a *Application) undo() {
	a.history.Undo()
	a.setStatus("Undo")
	a.updateControls()
}

func (a *Application) redo() {
	if err := a.history.Redo(); err != nil {
		a.showError("Redo Error", err)
	} else {
		a.setStatus("Redo")
	}
	a.updateControls()
}

// clearSource empties both slots and resets history: with no source, no
// recorded operation remains meaningful.
func (a *Application) clearSource() {
	cmd := commands.NewClearSource(a.workspace)
	_ = cmd.Execute()
	cmd.Release()

	a.workspace.ClearOutput()
	a.workspace.RefreshOutput()
	a.history.Reset()

	a.setStatus("Source cleared")
	a.updateControls()
}

// clearOutput empties the output slot and resets history; the cleared
// output is not recoverable.
func (a *Application) clearOutput() {
	cmd := commands.NewClearOutput(a.workspace)
	_ = cmd.Execute()
	cmd.Release()
	a.history.Reset()

	a.setStatus("Output cleared")
	a.updateControls()
}

func (a *Application) sourceLoaded(filepath string) {
	a.workspace.ClearOutput()
	a.workspace.RefreshOutput()
	a.history.Reset()

	a.setStatus(fmt.Sprintf("Loaded: %s", filepath))
	a.updateControls()
}

// updateControls applies the enablement rules: transformations need a
// source, output controls need an output, undo/redo track the stacks.
func (a *Application) updateControls() {
	a.controls.EnableTransforms(a.workspace.HasSource())
	a.controls.EnableOutputControls(a.workspace.HasOutput())
	a.controls.SetUndoRedo(a.history.CanUndo(), a.history.CanRedo())
	a.menuHandler.SetOutputAvailable(a.workspace.HasOutput())
}

func (a *Application) setStatus(msg string) {
	a.statusLabel.SetText(msg)
}

func (a *Application) showError(title string, err error) {
	a.logger.WithError(err).Error(title)
	dialog.ShowError(err, a.window)
}

// ShowAndRun displays the window and enters the event loop.
func (a *Application) ShowAndRun() {
	a.window.ShowAndRun()
	a.workspace.Close()
	a.history.Reset()
}
