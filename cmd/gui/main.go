package main

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/kacebover/vdpro-tools/config"
	"github.com/kacebover/vdpro-tools/gui/controller"
	"github.com/kacebover/vdpro-tools/icon"
	"github.com/kacebover/vdpro-tools/iconset"
	"github.com/kacebover/vdpro-tools/patcher"
)

// AssetsGUI is the icon preview and patch window
type AssetsGUI struct {
	app    fyne.App
	window fyne.Window
	ctrl   *controller.AssetController

	// Preview
	previewImage *canvas.Image
	layerList    *widget.List
	layers       []icon.Layer

	// Inputs
	workDir *widget.Entry

	// Buttons
	saveButton    *widget.Button
	iconSetButton *widget.Button
	previewButton *widget.Button
	patchButton   *widget.Button

	// Status
	statusLabel *widget.Label
	logEntry    *widget.Entry

	busy atomic.Bool
}

// NewAssetsGUI creates a new GUI instance rooted at the current directory
func NewAssetsGUI() *AssetsGUI {
	a := app.NewWithID("com.videodownloaderpro.tools")
	w := a.NewWindow("🎨 Video Downloader Pro Assets")
	w.Resize(fyne.NewSize(1100, 760))
	w.CenterOnScreen()

	wd, _ := os.Getwd()
	ag := &AssetsGUI{
		app:    a,
		window: w,
		ctrl:   controller.NewAssetController(config.DefaultPath(), wd),
	}
	ag.ctrl.SetOnLogMessage(ag.appendLog)

	ag.buildUI()
	ag.refreshPreview()
	return ag
}

func (ag *AssetsGUI) buildUI() {
	// === HEADER ===
	titleText := canvas.NewText("🎨 Video Downloader Pro Assets", theme.ForegroundColor())
	titleText.TextSize = 24
	titleText.TextStyle.Bold = true

	subtitleText := canvas.NewText("App icon and import view patch", theme.ForegroundColor())
	subtitleText.TextSize = 13

	settingsButton := widget.NewButton("⚙️ Settings", ag.showSettings)
	settingsButton.Importance = widget.LowImportance

	helpButton := widget.NewButton("❓ Help", ag.showHelp)
	helpButton.Importance = widget.LowImportance

	header := container.NewBorder(
		nil, nil,
		container.NewVBox(titleText, subtitleText),
		container.NewHBox(settingsButton, helpButton),
	)

	// === PREVIEW ===
	ag.previewImage = canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 1, 1)))
	ag.previewImage.FillMode = canvas.ImageFillContain
	ag.previewImage.SetMinSize(fyne.NewSize(480, 480))

	// checkerboard behind the icon so transparency is visible
	checker := canvas.NewRasterWithPixels(checkerPixel)
	preview := container.NewStack(checker, ag.previewImage)

	// === SIDE PANEL ===
	sidePanel := container.NewBorder(
		ag.buildControlPanel(), nil, nil, nil,
		ag.buildLayerPanel(),
	)

	mainSplit := container.NewHSplit(container.NewPadded(preview), sidePanel)
	mainSplit.SetOffset(0.55)

	// === FOOTER ===
	ag.statusLabel = widget.NewLabel("Ready")
	ag.logEntry = widget.NewMultiLineEntry()
	ag.logEntry.Wrapping = fyne.TextWrapWord
	ag.logEntry.SetMinRowsVisible(5)
	ag.logEntry.Disable()

	footer := container.NewVBox(widget.NewSeparator(), ag.statusLabel, ag.logEntry)

	content := container.NewBorder(
		container.NewVBox(container.NewPadded(header), widget.NewSeparator()),
		footer, nil, nil,
		mainSplit,
	)
	ag.window.SetContent(content)
}

func (ag *AssetsGUI) buildControlPanel() fyne.CanvasObject {
	dirLabel := widget.NewLabelWithStyle("📁 App Directory", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})

	ag.workDir = widget.NewEntry()
	ag.workDir.SetText(ag.ctrl.WorkDir())
	ag.workDir.OnChanged = func(s string) {
		ag.ctrl.SetWorkDir(strings.TrimSpace(s))
	}

	browseBtn := widget.NewButton("📂 Browse...", func() {
		dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
			if err != nil {
				dialog.ShowError(err, ag.window)
				return
			}
			if uri != nil {
				ag.workDir.SetText(uri.Path())
			}
		}, ag.window)
	})
	browseBtn.Importance = widget.MediumImportance

	iconLabel := widget.NewLabelWithStyle("🖼️ Icon", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	ag.saveButton = widget.NewButton("💾 Save Icon", ag.onSaveIcon)
	ag.saveButton.Importance = widget.HighImportance
	ag.iconSetButton = widget.NewButton("🗂️ Generate Icon Set", ag.onGenerateIconSet)

	patchLabel := widget.NewLabelWithStyle("🩹 Import View Patch", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	ag.previewButton = widget.NewButton("🔍 Check Anchor", ag.onPreviewPatch)
	ag.patchButton = widget.NewButton("✏️ Apply Patch", ag.onApplyPatch)
	ag.patchButton.Importance = widget.WarningImportance

	return container.NewVBox(
		dirLabel,
		ag.workDir,
		browseBtn,
		widget.NewSeparator(),
		iconLabel,
		container.NewGridWithColumns(2, ag.saveButton, ag.iconSetButton),
		widget.NewSeparator(),
		patchLabel,
		container.NewGridWithColumns(2, ag.previewButton, ag.patchButton),
		widget.NewSeparator(),
	)
}

func (ag *AssetsGUI) buildLayerPanel() fyne.CanvasObject {
	label := widget.NewLabelWithStyle("🧱 Layers", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})

	ag.layerList = widget.NewList(
		func() int {
			return len(ag.layers)
		},
		func() fyne.CanvasObject {
			swatch := canvas.NewRectangle(color.Transparent)
			swatch.SetMinSize(fyne.NewSize(18, 18))
			swatch.CornerRadius = 4
			return container.NewHBox(swatch, widget.NewLabel(""))
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id >= len(ag.layers) {
				return
			}
			l := ag.layers[id]
			row := obj.(*fyne.Container)
			swatch := row.Objects[0].(*canvas.Rectangle)
			swatch.FillColor = l.Color
			swatch.Refresh()
			row.Objects[1].(*widget.Label).SetText(layerDescription(l))
		},
	)

	return container.NewBorder(label, nil, nil, nil, ag.layerList)
}

// checkerPixel paints a light grey checkerboard
func checkerPixel(x, y, w, h int) color.Color {
	if (x/16+y/16)%2 == 0 {
		return color.NRGBA{R: 230, G: 230, B: 230, A: 255}
	}
	return color.White
}

// layerDescription summarizes a layer for the layer list
func layerDescription(l icon.Layer) string {
	b := l.Shape.Bounds()
	return fmt.Sprintf("%s  %s  %dx%d at (%d,%d)", l.Name, colorHex(l.Color), b.Dx(), b.Dy(), b.Min.X, b.Min.Y)
}

func colorHex(c color.NRGBA) string {
	return config.HexColor(c).String()
}

// patchSummary describes the outcome of a patch run
func patchSummary(res *patcher.Result) string {
	if !res.Written {
		return fmt.Sprintf("Anchor found at line %d of %s", res.Line, filepath.Base(res.Path))
	}
	msg := fmt.Sprintf("Patched %s at line %d (%d → %d bytes)", filepath.Base(res.Path), res.Line, res.BytesBefore, res.BytesAfter)
	if res.Occurrences > 1 {
		msg += fmt.Sprintf(", %d more occurrence(s) left untouched", res.Occurrences-1)
	}
	return msg
}

// iconSetSummary describes a generated icon set
func iconSetSummary(res *iconset.Result) string {
	msg := fmt.Sprintf("Wrote %d files to %s", len(res.Files), res.Dir)
	if res.Bundle != nil {
		msg += fmt.Sprintf("\nBundle: %s (%d bytes)", res.Bundle.OutputPath, res.Bundle.ArchiveSize)
	}
	return msg
}

// parsePositive reads a positive integer from a settings field
func parsePositive(name, text string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive number", name)
	}
	return n, nil
}

func (ag *AssetsGUI) appendLog(level controller.LogLevel, msg string) {
	prefix := "ℹ️"
	switch level {
	case controller.LogWarning:
		prefix = "⚠️"
	case controller.LogError:
		prefix = "❌"
	}
	fyne.Do(func() {
		ag.logEntry.SetText(ag.logEntry.Text + prefix + " " + msg + "\n")
	})
}

func (ag *AssetsGUI) setStatus(msg string) {
	fyne.Do(func() {
		ag.statusLabel.SetText(msg)
	})
}

func (ag *AssetsGUI) setButtonsEnabled(enabled bool) {
	for _, b := range []*widget.Button{ag.saveButton, ag.iconSetButton, ag.previewButton, ag.patchButton} {
		if enabled {
			b.Enable()
		} else {
			b.Disable()
		}
	}
}

// runTask runs fn off the UI goroutine with the buttons disabled
func (ag *AssetsGUI) runTask(status string, fn func()) {
	if !ag.busy.CompareAndSwap(false, true) {
		return
	}
	ag.setButtonsEnabled(false)
	ag.statusLabel.SetText(status)

	go func() {
		defer func() {
			ag.busy.Store(false)
			fyne.Do(func() {
				ag.setButtonsEnabled(true)
			})
		}()
		fn()
	}()
}

func (ag *AssetsGUI) refreshPreview() {
	ag.runTask("🎨 Rendering...", func() {
		img, err := ag.ctrl.RenderIcon()
		if err != nil {
			ag.showError(err)
			return
		}
		layers := ag.ctrl.Layers()
		fyne.Do(func() {
			ag.layers = layers
			ag.layerList.Refresh()
			ag.previewImage.Image = img
			ag.previewImage.Refresh()
			b := img.Bounds()
			ag.statusLabel.SetText(fmt.Sprintf("✅ %dx%d, %d layers", b.Dx(), b.Dy(), len(layers)))
		})
	})
}

func (ag *AssetsGUI) showError(err error) {
	fyne.Do(func() {
		ag.statusLabel.SetText("❌ " + err.Error())
		dialog.ShowError(err, ag.window)
	})
}

func (ag *AssetsGUI) onSaveIcon() {
	ag.runTask("💾 Saving icon...", func() {
		path, err := ag.ctrl.SaveIcon()
		if err != nil {
			ag.showError(err)
			return
		}
		ag.setStatus("✅ Icon saved as " + path)
	})
}

func (ag *AssetsGUI) onGenerateIconSet() {
	ag.runTask("🗂️ Generating icon set...", func() {
		res, err := ag.ctrl.GenerateIconSet()
		if err != nil {
			ag.showError(err)
			return
		}
		ag.setStatus(fmt.Sprintf("✅ %d icon files written", len(res.Files)))
		fyne.Do(func() {
			dialog.ShowInformation("Icon Set", iconSetSummary(res), ag.window)
		})
	})
}

func (ag *AssetsGUI) onPreviewPatch() {
	ag.runTask("🔍 Checking anchor...", func() {
		res, err := ag.ctrl.PreviewPatch()
		if err != nil {
			ag.showError(err)
			return
		}
		ag.setStatus("✅ " + patchSummary(res))
	})
}

func (ag *AssetsGUI) onApplyPatch() {
	target := ag.ctrl.GetConfig().Patch.Path
	msg := fmt.Sprintf("Replace the first anchor occurrence in\n%s?", target)
	dialog.ShowConfirm("Apply Patch", msg, func(ok bool) {
		if !ok {
			return
		}
		ag.runTask("✏️ Patching...", func() {
			res, err := ag.ctrl.ApplyPatch()
			if err != nil {
				ag.showError(err)
				return
			}
			ag.setStatus("✅ " + patchSummary(res))
		})
	}, ag.window)
}

func (ag *AssetsGUI) showSettings() {
	cfg := ag.ctrl.GetConfig()

	outputEntry := widget.NewEntry()
	outputEntry.SetText(cfg.Icon.Output)

	sizeEntry := widget.NewEntry()
	sizeEntry.SetText(strconv.Itoa(cfg.Icon.Size))

	dotsEntry := widget.NewEntry()
	dotsEntry.SetText(strconv.Itoa(cfg.Icon.DotCount))

	colorEntries := []*widget.Entry{widget.NewEntry(), widget.NewEntry(), widget.NewEntry(), widget.NewEntry()}
	colors := []*config.HexColor{&cfg.Icon.Primary, &cfg.Icon.Secondary, &cfg.Icon.Accent, &cfg.Icon.Foreground}
	for i, c := range colors {
		colorEntries[i].SetText(c.String())
	}

	iconSetDir := widget.NewEntry()
	iconSetDir.SetText(cfg.IconSet.Dir)

	proofCheck := widget.NewCheck("Write PDF proof sheet", nil)
	proofCheck.SetChecked(cfg.IconSet.Proof)

	bundleEntry := widget.NewEntry()
	bundleEntry.SetText(cfg.IconSet.Bundle)
	bundleEntry.SetPlaceHolder("optional zip path")

	patchPath := widget.NewEntry()
	patchPath.SetText(cfg.Patch.Path)

	backupCheck := widget.NewCheck("Back up the file before patching", nil)
	backupCheck.SetChecked(cfg.Patch.Backup)

	formItems := []*widget.FormItem{
		widget.NewFormItem("Icon output", outputEntry),
		widget.NewFormItem("Canvas size (px)", sizeEntry),
		widget.NewFormItem("Ring dots", dotsEntry),
		widget.NewFormItem("Primary", colorEntries[0]),
		widget.NewFormItem("Secondary", colorEntries[1]),
		widget.NewFormItem("Accent", colorEntries[2]),
		widget.NewFormItem("Foreground", colorEntries[3]),
		widget.NewFormItem("Icon set directory", iconSetDir),
		widget.NewFormItem("", proofCheck),
		widget.NewFormItem("Bundle", bundleEntry),
		widget.NewFormItem("Patch target", patchPath),
		widget.NewFormItem("", backupCheck),
	}

	dialog.ShowForm("⚙️ Settings", "Save", "Cancel", formItems, func(confirm bool) {
		if !confirm {
			return
		}

		size, err := parsePositive("Canvas size", sizeEntry.Text)
		if err != nil {
			dialog.ShowError(err, ag.window)
			return
		}
		dots, err := parsePositive("Ring dots", dotsEntry.Text)
		if err != nil {
			dialog.ShowError(err, ag.window)
			return
		}
		for i, c := range colors {
			parsed, err := config.ParseHexColor(colorEntries[i].Text)
			if err != nil {
				dialog.ShowError(err, ag.window)
				return
			}
			*c = parsed
		}

		cfg.Icon.Output = strings.TrimSpace(outputEntry.Text)
		cfg.Icon.Size = size
		cfg.Icon.DotCount = dots
		cfg.IconSet.Dir = strings.TrimSpace(iconSetDir.Text)
		cfg.IconSet.Proof = proofCheck.Checked
		cfg.IconSet.Bundle = strings.TrimSpace(bundleEntry.Text)
		cfg.Patch.Path = strings.TrimSpace(patchPath.Text)
		cfg.Patch.Backup = backupCheck.Checked

		if err := ag.ctrl.UpdateConfig(cfg); err != nil {
			dialog.ShowError(err, ag.window)
			return
		}
		ag.statusLabel.SetText("✅ Settings saved")
		ag.refreshPreview()
	}, ag.window)
}

func (ag *AssetsGUI) showHelp() {
	helpText := `🎨 Video Downloader Pro Assets

ICON:
• The preview shows the 1024x1024 app icon with transparency
• Save Icon writes app-icon.png into the app directory
• Generate Icon Set writes the sizes Tauri bundles into src-tauri/icons
• Next step: pnpm tauri icon

PATCH:
• Check Anchor looks for the anchor without touching the file
• Apply Patch replaces only the first anchor occurrence
• A missing anchor fails with "anchor not found" and leaves the file as is

Settings are stored in ` + config.DefaultPath()

	dialog.ShowInformation("Help", helpText, ag.window)
}

func (ag *AssetsGUI) Run() {
	ag.window.ShowAndRun()
}

func main() {
	gui := NewAssetsGUI()
	gui.Run()
}
