package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/yt-grabber/internal/config"
	"github.com/ytget/yt-grabber/internal/model"
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings     *config.Settings
	localization *Localization
	window       fyne.Window
	dialog       *dialog.ConfirmDialog
	onSaved      func()

	// UI components
	downloadDirEntry *widget.Entry
	formatSelect     *widget.Select
	qualitySelect    *widget.Select
	languageSelect   *widget.Select
	selfCheckCheck   *widget.Check
}

// NewSettingsDialog creates a new settings dialog. onSaved runs after a
// confirmed save.
func NewSettingsDialog(settings *config.Settings, localization *Localization, window fyne.Window, onSaved func()) *SettingsDialog {
	sd := &SettingsDialog{
		settings:     settings,
		localization: localization,
		window:       window,
		onSaved:      onSaved,
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	loc := sd.localization

	// Download directory selection
	sd.downloadDirEntry = widget.NewEntry()
	sd.downloadDirEntry.SetPlaceHolder("Download directory path")

	browseDirBtn := widget.NewButton("...", sd.onBrowseDirectory)
	downloadDirRow := container.NewBorder(nil, nil, nil, browseDirBtn, sd.downloadDirEntry)

	// Output format selection
	formats := model.AllFormats()
	formatOptions := make([]string, 0, len(formats))
	for _, f := range formats {
		formatOptions = append(formatOptions, string(f))
	}
	sd.formatSelect = widget.NewSelect(formatOptions, nil)

	// MP3 bitrate selection
	sd.qualitySelect = widget.NewSelect(config.AudioQualityOptions, nil)

	// Language selection
	languageOptions := []string{}
	for code := range sd.settings.GetLanguageOptions() {
		languageOptions = append(languageOptions, code)
	}
	sd.languageSelect = widget.NewSelect(languageOptions, nil)

	// Startup self-check toggle
	sd.selfCheckCheck = widget.NewCheck(loc.GetText(KeyRunSelfCheck), nil)

	form := container.NewVBox(
		widget.NewLabel(loc.GetText(KeyDownloadDirectory)+":"),
		downloadDirRow,

		widget.NewLabel(loc.GetText(KeyOutputFormat)+":"),
		sd.formatSelect,

		widget.NewLabel(loc.GetText(KeyAudioQuality)+":"),
		sd.qualitySelect,

		widget.NewSeparator(),

		widget.NewLabel(loc.GetText(KeyLanguage)+":"),
		sd.languageSelect,

		sd.selfCheckCheck,
	)

	sd.dialog = dialog.NewCustomConfirm(
		loc.GetText(KeySettings),
		loc.GetText(KeySave),
		loc.GetText(KeyCancel),
		form,
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(460, 400))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.downloadDirEntry.SetText(sd.settings.GetDownloadDirectory())
	sd.formatSelect.SetSelected(string(sd.settings.GetOutputFormat()))
	sd.qualitySelect.SetSelected(sd.settings.GetAudioQuality())
	sd.languageSelect.SetSelected(sd.settings.GetLanguage())
	sd.selfCheckCheck.SetChecked(sd.settings.GetRunSelfCheck())
}

// onBrowseDirectory handles directory browsing
func (sd *SettingsDialog) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		sd.downloadDirEntry.SetText(uri.Path())
	}, sd.window)
}

// onSave handles saving the settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}

	if dir := sd.downloadDirEntry.Text; dir != "" {
		sd.settings.SetDownloadDirectory(dir)
	}
	if sd.formatSelect.Selected != "" {
		sd.settings.SetOutputFormat(model.ParseFormat(sd.formatSelect.Selected))
	}
	if sd.qualitySelect.Selected != "" {
		sd.settings.SetAudioQuality(sd.qualitySelect.Selected)
	}
	if sd.languageSelect.Selected != "" {
		sd.settings.SetLanguage(sd.languageSelect.Selected)
	}
	sd.settings.SetRunSelfCheck(sd.selfCheckCheck.Checked)

	if sd.onSaved != nil {
		sd.onSaved()
	}
}
