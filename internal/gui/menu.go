// Menu handler for file and edit actions
package gui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"

	"imaging-workbench/internal/core"
	"imaging-workbench/internal/io"
)

// MenuCallbacks are the application hooks the menu drives.
type MenuCallbacks struct {
	OnSourceLoaded func(filepath string)
	OnUndo         func()
	OnRedo         func()
	OnClearSource  func()
	OnClearOutput  func()
}

// MenuHandler owns the main menu and the file dialogs behind it.
type MenuHandler struct {
	window    fyne.Window
	workspace *core.Workspace
	loader    *io.ImageLoader
	logger    *logrus.Logger

	callbacks MenuCallbacks

	saveItem      *fyne.MenuItem
	saveAsItem    *fyne.MenuItem
	exportOutItem *fyne.MenuItem
	clearOutItem  *fyne.MenuItem
	mainMenu      *fyne.MainMenu
}

func NewMenuHandler(window fyne.Window, workspace *core.Workspace, loader *io.ImageLoader, logger *logrus.Logger) *MenuHandler {
	return &MenuHandler{
		window:    window,
		workspace: workspace,
		loader:    loader,
		logger:    logger,
	}
}

func (mh *MenuHandler) SetCallbacks(callbacks MenuCallbacks) {
	mh.callbacks = callbacks
}

func (mh *MenuHandler) GetMainMenu() *fyne.MainMenu {
	mh.saveItem = fyne.NewMenuItem("Save Output", mh.saveOutput)
	mh.saveAsItem = fyne.NewMenuItem("Save Output As...", mh.saveOutputAs)
	mh.exportOutItem = fyne.NewMenuItem("Export Output...", mh.exportOutput)
	mh.clearOutItem = fyne.NewMenuItem("Clear Output", func() {
		if mh.callbacks.OnClearOutput != nil {
			mh.callbacks.OnClearOutput()
		}
	})

	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open Source...", mh.openSource),
		fyne.NewMenuItemSeparator(),
		mh.saveItem,
		mh.saveAsItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export Source...", mh.exportSource),
		mh.exportOutItem,
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Undo", func() {
			if mh.callbacks.OnUndo != nil {
				mh.callbacks.OnUndo()
			}
		}),
		fyne.NewMenuItem("Redo", func() {
			if mh.callbacks.OnRedo != nil {
				mh.callbacks.OnRedo()
			}
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Clear Source", func() {
			if mh.callbacks.OnClearSource != nil {
				mh.callbacks.OnClearSource()
			}
		}),
		mh.clearOutItem,
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mh.showAbout),
	)

	mh.mainMenu = fyne.NewMainMenu(fileMenu, editMenu, helpMenu)
	return mh.mainMenu
}

// SetOutputAvailable toggles the menu entries that need an output image.
func (mh *MenuHandler) SetOutputAvailable(available bool) {
	if mh.mainMenu == nil {
		return
	}
	for _, item := range []*fyne.MenuItem{mh.saveItem, mh.saveAsItem, mh.exportOutItem, mh.clearOutItem} {
		item.Disabled = !available
	}
	mh.mainMenu.Refresh()
}

func (mh *MenuHandler) openSource() {
	fileDialog := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			mh.showError("File Dialog Error", err)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()

		path := reader.URI().Path()
		mat, err := mh.loader.LoadImage(path)
		if err != nil {
			mh.showError("Failed to Load Image", err)
			return
		}
		defer mat.Close()

		mh.workspace.SetSource(mat)
		mh.workspace.SetSourcePath(path)
		mh.workspace.RefreshSource()

		if mh.callbacks.OnSourceLoaded != nil {
			mh.callbacks.OnSourceLoaded(path)
		}
	}, mh.window)

	fileDialog.SetFilter(storage.NewExtensionFileFilter(mh.loader.SupportedExtensions()))
	fileDialog.Show()
}

// saveOutput writes the output next to the source file under a
// non-clobbering "<base>_<n><ext>" name.
func (mh *MenuHandler) saveOutput() {
	sourcePath := mh.workspace.SourcePath()
	if sourcePath == "" || !mh.workspace.HasOutput() {
		return
	}

	ext := filepath.Ext(sourcePath)
	base := strings.TrimSuffix(sourcePath, ext)

	outPath := ""
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s_%d%s", base, i, ext)
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			outPath = candidate
			break
		}
	}

	output := mh.workspace.Output()
	defer output.Close()

	if err := mh.loader.SaveImage(output, outPath); err != nil {
		mh.showError("Failed to Save Image", err)
		return
	}
	mh.logger.WithField("filepath", outPath).Info("Output saved")
}

func (mh *MenuHandler) saveOutputAs() {
	if !mh.workspace.HasOutput() {
		return
	}
	mh.saveWithDialog(func() gocv.Mat { return mh.workspace.Output() }, "output.png")
}

func (mh *MenuHandler) exportSource() {
	if !mh.workspace.HasSource() {
		return
	}
	mh.saveWithDialog(func() gocv.Mat { return mh.workspace.Source() }, "source.png")
}

func (mh *MenuHandler) exportOutput() {
	if !mh.workspace.HasOutput() {
		return
	}
	mh.saveWithDialog(func() gocv.Mat { return mh.workspace.Output() }, "output.png")
}

func (mh *MenuHandler) saveWithDialog(image func() gocv.Mat, defaultName string) {
	fileDialog := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			mh.showError("File Dialog Error", err)
			return
		}
		if writer == nil {
			return
		}
		defer writer.Close()

		path := writer.URI().Path()
		mat := image()
		defer mat.Close()

		if err := mh.loader.SaveImage(mat, path); err != nil {
			mh.showError("Failed to Save Image", err)
			return
		}
	}, mh.window)

	fileDialog.SetFileName(defaultName)
	fileDialog.SetFilter(storage.NewExtensionFileFilter(mh.loader.SupportedExtensions()))
	fileDialog.Show()
}

func (mh *MenuHandler) showAbout() {
	content := container.NewVBox(
		widget.NewLabel("Imaging Workbench"),
		widget.NewSeparator(),
		widget.NewLabel("Grayscale/HSV conversion, Otsu and active-contour"),
		widget.NewLabel("segmentation, and gradient edge detection"),
		widget.NewLabel("with full undo/redo history."),
		widget.NewSeparator(),
		widget.NewLabel("Built with Go, Fyne, and OpenCV"),
	)

	aboutDialog := dialog.NewCustom("About", "Close", content, mh.window)
	aboutDialog.Resize(fyne.NewSize(400, 260))
	aboutDialog.Show()
}

func (mh *MenuHandler) showError(title string, err error) {
	mh.logger.WithError(err).Error(title)
	dialog.ShowError(err, mh.window)
}
