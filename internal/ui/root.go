package ui

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/yt-grabber/internal/bootstrap"
	"github.com/ytget/yt-grabber/internal/compress"
	"github.com/ytget/yt-grabber/internal/config"
	"github.com/ytget/yt-grabber/internal/download"
	"github.com/ytget/yt-grabber/internal/history"
	"github.com/ytget/yt-grabber/internal/model"
	"github.com/ytget/yt-grabber/internal/platform"
)

// historyDialogLimit caps the entries shown in the history dialog
const historyDialogLimit = 30

// phase is the window's coarse state. It only advances on the Fyne thread.
type phase int

const (
	phaseBootstrapping phase = iota
	phaseIdle
	phaseAnalyzing
	phaseReady
	phaseDownloading
)

// RootUI represents the main UI structure
type RootUI struct {
	app          fyne.App
	window       fyne.Window
	settings     *config.Settings
	localization *Localization
	store        *history.Store

	phase phase

	urlEntry      *widget.Entry
	analyzeBtn    *widget.Button
	formatSelect  *widget.Select
	qualitySelect *widget.Select
	downloadBtn   *widget.Button
	stopBtn       *widget.Button
	statusLabel   *widget.Label
	speedLabel    *widget.Label
	progressBar   *widget.ProgressBar
	selectAll     *widget.Check
	entryBox      *fyne.Container

	playlist *model.PlaylistInfo
	checks   []*widget.Check

	supervisor *download.Supervisor
	compressor *compress.Service
	stopRun    func()
}

// NewRootUI creates and initializes the main UI. The tool bootstrap starts
// immediately in the background; download controls unlock when it completes.
func NewRootUI(window fyne.Window, app fyne.App, store *history.Store) *RootUI {
	settings := config.NewSettings(app)

	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ui := &RootUI{
		app:          app,
		window:       window,
		settings:     settings,
		localization: localization,
		store:        store,
	}

	window.SetTitle(localization.GetText(KeyAppTitle))

	ui.setupUI()
	ui.setPhase(phaseBootstrapping)

	go ui.runBootstrap()

	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	loc := ui.localization

	ui.createMenu()

	ui.urlEntry = widget.NewEntry()
	ui.urlEntry.SetPlaceHolder(loc.GetText(KeyEnterURL))
	ui.urlEntry.Validator = ui.validateURL
	ui.urlEntry.OnSubmitted = func(string) { ui.onAnalyzeClick() }

	ui.analyzeBtn = widget.NewButton(loc.GetText(KeyAnalyze), ui.onAnalyzeClick)
	topPanel := container.NewBorder(nil, nil, nil, ui.analyzeBtn, ui.urlEntry)

	formats := model.AllFormats()
	formatOptions := make([]string, 0, len(formats))
	for _, f := range formats {
		formatOptions = append(formatOptions, string(f))
	}
	ui.formatSelect = widget.NewSelect(formatOptions, func(selected string) {
		ui.settings.SetOutputFormat(model.ParseFormat(selected))
	})
	ui.formatSelect.SetSelected(string(ui.settings.GetOutputFormat()))

	ui.qualitySelect = widget.NewSelect(config.AudioQualityOptions, func(selected string) {
		ui.settings.SetAudioQuality(selected)
	})
	ui.qualitySelect.SetSelected(ui.settings.GetAudioQuality())

	ui.downloadBtn = widget.NewButton(loc.GetText(KeyDownload), ui.onDownloadClick)
	ui.downloadBtn.Importance = widget.HighImportance
	ui.stopBtn = widget.NewButton(loc.GetText(KeyStop), ui.onStopClick)

	controls := container.NewHBox(ui.formatSelect, ui.qualitySelect, ui.downloadBtn, ui.stopBtn)

	ui.selectAll = widget.NewCheck(loc.GetText(KeySelectAll), ui.onSelectAll)
	ui.entryBox = container.NewVBox()
	entryScroll := container.NewVScroll(ui.entryBox)

	ui.statusLabel = widget.NewLabel("")
	ui.statusLabel.Truncation = fyne.TextTruncateEllipsis
	ui.speedLabel = widget.NewLabel("")
	ui.progressBar = widget.NewProgressBar()

	bottom := container.NewVBox(
		container.NewBorder(nil, nil, nil, ui.speedLabel, ui.statusLabel),
		ui.progressBar,
	)

	content := container.NewBorder(
		container.NewVBox(topPanel, container.NewBorder(nil, nil, ui.selectAll, nil, controls)),
		bottom,
		nil,
		nil,
		entryScroll,
	)

	ui.window.SetContent(content)
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	loc := ui.localization

	settingsItem := fyne.NewMenuItem(loc.GetText(KeySettings), ui.onShowSettings)
	historyItem := fyne.NewMenuItem(loc.GetText(KeyHistory), ui.onShowHistory)
	compressItem := fyne.NewMenuItem(loc.GetText(KeyCompress), ui.onCompressClick)

	languageMenu := fyne.NewMenu(loc.GetText(KeyLanguage))
	for code, name := range loc.GetAvailableLanguages() {
		langCode := code // Capture for closure
		langItem := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(langCode)
		})
		if loc.GetCurrentLanguage() == code {
			langItem.Checked = true
		}
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	mainMenu := fyne.NewMainMenu(
		fyne.NewMenu(loc.GetText(KeyFile), settingsItem, historyItem, compressItem),
		languageMenu,
	)

	ui.window.SetMainMenu(mainMenu)
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)

	ui.window.SetTitle(ui.localization.GetText(KeyAppTitle))
	ui.urlEntry.SetPlaceHolder(ui.localization.GetText(KeyEnterURL))
	ui.analyzeBtn.SetText(ui.localization.GetText(KeyAnalyze))
	ui.downloadBtn.SetText(ui.localization.GetText(KeyDownload))
	ui.stopBtn.SetText(ui.localization.GetText(KeyStop))
	ui.selectAll.Text = ui.localization.GetText(KeySelectAll)
	ui.selectAll.Refresh()

	// Recreate menu to update checkmarks
	ui.createMenu()
}

// setPhase enables and disables controls for the given state
func (ui *RootUI) setPhase(p phase) {
	ui.phase = p

	setEnabled := func(w fyne.Disableable, on bool) {
		if on {
			w.Enable()
		} else {
			w.Disable()
		}
	}

	setEnabled(ui.urlEntry, p == phaseIdle || p == phaseReady)
	setEnabled(ui.analyzeBtn, p == phaseIdle || p == phaseReady)
	setEnabled(ui.formatSelect, p == phaseIdle || p == phaseReady)
	setEnabled(ui.qualitySelect, p == phaseIdle || p == phaseReady)
	setEnabled(ui.downloadBtn, p == phaseReady)
	setEnabled(ui.stopBtn, p == phaseDownloading)
	setEnabled(ui.selectAll, p == phaseReady)

	if p != phaseDownloading {
		ui.speedLabel.SetText("")
	}
}

// validateURL validates the entered URL
func (ui *RootUI) validateURL(input string) error {
	if strings.TrimSpace(input) == "" {
		return nil // Empty is allowed
	}

	parsedURL, err := url.Parse(input)
	if err != nil {
		return err
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("URL must start with http:// or https://")
	}

	return nil
}

// runBootstrap drives the dependency bootstrapper and forwards its events to
// the Fyne thread.
func (ui *RootUI) runBootstrap() {
	cfg := bootstrap.DefaultConfig()
	cfg.Ytdlp.Source = ui.settings.YtdlpSource()
	cfg.FFmpeg.Source = ui.settings.FFmpegSource()
	cfg.SelfCheck = ui.settings.GetRunSelfCheck()

	for ev := range bootstrap.NewService(cfg).Run() {
		ev := ev
		fyne.Do(func() { ui.onBootstrapEvent(ev) })
	}
}

// onBootstrapEvent updates the window for one bootstrap event
func (ui *RootUI) onBootstrapEvent(ev model.BootstrapEvent) {
	switch ev.Kind {
	case model.BootstrapStarting:
		ui.statusLabel.SetText(ui.localization.GetText(KeyPreparingTools) + " " + ev.Message)
	case model.BootstrapDownloadProgress:
		ui.statusLabel.SetText(ui.localization.GetText(KeyPreparingTools) + " " + ev.Label)
		ui.progressBar.SetValue(ev.Percent / 100)
	case model.BootstrapExtracting:
		ui.statusLabel.SetText(ui.localization.GetText(KeyPreparingTools) + " " + ev.Label)
	case model.BootstrapCompleted:
		ui.supervisor = download.NewSupervisor(platform.YtdlpPath(), platform.ChildPathEnv())
		ui.compressor = compress.NewService(platform.FFmpegPath(), platform.ChildPathEnv())
		ui.statusLabel.SetText(ui.localization.GetText(KeyToolsReady))
		ui.progressBar.SetValue(0)
		ui.setPhase(phaseIdle)
	case model.BootstrapFailed:
		log.Printf("bootstrap failed: %s", ev.Message)
		ui.statusLabel.SetText(ui.localization.GetText(KeyToolsFailed) + ": " + ev.Message)
	}
}

// onAnalyzeClick probes the entered URL and shows its entries
func (ui *RootUI) onAnalyzeClick() {
	if ui.phase != phaseIdle && ui.phase != phaseReady {
		return
	}

	urlText := strings.TrimSpace(ui.urlEntry.Text)
	if urlText == "" {
		ui.statusLabel.SetText(ui.localization.GetText(KeyPleaseEnterURL))
		return
	}
	if err := ui.validateURL(urlText); err != nil {
		ui.statusLabel.SetText(ui.localization.GetText(KeyInvalidURL) + ": " + err.Error())
		return
	}

	ui.statusLabel.SetText(ui.localization.GetText(KeyAnalyzing))
	ui.setPhase(phaseAnalyzing)

	go func() {
		info, err := ui.analyze(urlText)
		fyne.Do(func() {
			if err != nil {
				log.Printf("analyze %s: %v", urlText, err)
				ui.statusLabel.SetText(ui.localization.GetText(KeyAnalysisFailed) + ": " + err.Error())
				ui.setPhase(phaseIdle)
				return
			}
			ui.showPlaylist(info)
		})
	}()
}

// analyze resolves a URL to its entries: playlist URLs go through the fast
// in-process enumerator first, everything else (and enumerator failures)
// through a yt-dlp probe.
func (ui *RootUI) analyze(urlText string) (*model.PlaylistInfo, error) {
	ctx := context.Background()

	if platform.IsPlaylistURL(urlText) {
		info, err := platform.NewPlaylistParser().Parse(ctx, urlText)
		if err == nil {
			return info, nil
		}
		log.Printf("playlist enumeration failed, falling back to probe: %v", err)
	}

	return platform.ProbeURL(ctx, platform.YtdlpPath(), urlText)
}

// showPlaylist fills the entry list with checkboxes for the analyzed URL
func (ui *RootUI) showPlaylist(info *model.PlaylistInfo) {
	ui.playlist = info
	ui.checks = nil
	ui.entryBox.RemoveAll()

	for i := range info.Entries {
		entry := &info.Entries[i]
		label := entry.Title
		if d := entry.FormatDuration(); d != "" {
			label += "  (" + d + ")"
		}
		check := widget.NewCheck(label, func(selected bool) {
			entry.Selected = selected
		})
		check.SetChecked(entry.Selected)
		ui.checks = append(ui.checks, check)
		ui.entryBox.Add(check)
	}

	ui.selectAll.SetChecked(true)
	ui.statusLabel.SetText(fmt.Sprintf("%s (%d)", info.Title, len(info.Entries)))
	ui.setPhase(phaseReady)
}

// onSelectAll toggles every entry checkbox
func (ui *RootUI) onSelectAll(selected bool) {
	for _, check := range ui.checks {
		check.SetChecked(selected)
	}
}

// onDownloadClick builds jobs from the selected entries and starts the run
func (ui *RootUI) onDownloadClick() {
	if ui.phase != phaseReady || ui.playlist == nil {
		return
	}

	selected := ui.playlist.SelectedEntries()
	if len(selected) == 0 {
		ui.statusLabel.SetText(ui.localization.GetText(KeyNoSelection))
		return
	}

	snap := ui.settings.Snapshot()
	if err := platform.CreateDirectoryIfNotExists(snap.DownloadDir); err != nil {
		ui.statusLabel.SetText(ui.localization.GetText(KeyDownloadFailed) + ": " + err.Error())
		return
	}

	jobs := make([]model.DownloadJob, 0, len(selected))
	for _, entry := range selected {
		jobs = append(jobs, model.NewDownloadJob(entry.URL, entry.Title, snap.OutputFormat, snap.AudioQuality, snap.DownloadDir))
	}

	events, stop := ui.supervisor.RunSequential(jobs)
	ui.stopRun = stop
	ui.setPhase(phaseDownloading)

	go ui.consumeRun(events, len(jobs))
}

// consumeRun forwards job events to the Fyne thread until the run ends
func (ui *RootUI) consumeRun(events <-chan download.JobEvent, total int) {
	for je := range events {
		je := je
		fyne.Do(func() { ui.onJobEvent(je, total) })
	}
	fyne.Do(func() {
		ui.stopRun = nil
		ui.statusLabel.SetText(ui.localization.GetText(KeyQueueFinished))
		ui.setPhase(phaseReady)
	})
}

// onJobEvent updates the window for one download event
func (ui *RootUI) onJobEvent(je download.JobEvent, total int) {
	loc := ui.localization

	switch je.Event.Kind {
	case model.DownloadStarting:
		ui.statusLabel.SetText(fmt.Sprintf("%s (%d/%d): %s", loc.GetText(KeyDownloading), je.Index+1, total, je.Job.Title))
		ui.progressBar.SetValue(0)
	case model.DownloadProgress:
		ui.progressBar.SetValue(je.Event.Percent / 100)
		ui.speedLabel.SetText(je.Event.Speed)
	case model.DownloadConverting:
		ui.statusLabel.SetText(loc.GetText(KeyConverting))
	case model.DownloadCompleted:
		ui.recordOutcome(je.Job, model.OutcomeCompleted, "")
		ui.progressBar.SetValue(1)
		ui.app.SendNotification(&fyne.Notification{
			Title:   loc.GetText(KeyDownloadCompleted),
			Content: je.Event.Title,
		})
	case model.DownloadFailed:
		ui.recordOutcome(je.Job, model.OutcomeFailed, je.Event.Message)
		ui.statusLabel.SetText(loc.GetText(KeyDownloadFailed) + ": " + je.Event.Message)
	case model.DownloadStopped:
		ui.recordOutcome(je.Job, model.OutcomeStopped, "")
		ui.statusLabel.SetText(loc.GetText(KeyDownloadStopped))
	}
}

// recordOutcome persists a terminal job outcome; history failures only log
func (ui *RootUI) recordOutcome(job model.DownloadJob, outcome model.Outcome, errText string) {
	if ui.store == nil {
		return
	}
	if err := ui.store.Record(job, outcome, errText); err != nil {
		log.Printf("record history for %s: %v", job.ID, err)
	}
}

// onStopClick cancels the running download
func (ui *RootUI) onStopClick() {
	if ui.stopRun != nil {
		ui.stopRun()
	}
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	NewSettingsDialog(ui.settings, ui.localization, ui.window, func() {
		ui.onLanguageChange(ui.settings.GetLanguage())
		ui.formatSelect.SetSelected(string(ui.settings.GetOutputFormat()))
		ui.qualitySelect.SetSelected(ui.settings.GetAudioQuality())
	}).Show()
}

// onShowHistory shows recent downloads in a dialog
func (ui *RootUI) onShowHistory() {
	loc := ui.localization

	if ui.store == nil {
		dialog.ShowInformation(loc.GetText(KeyHistory), loc.GetText(KeyHistoryEmpty), ui.window)
		return
	}

	entries, err := ui.store.Recent(historyDialogLimit)
	if err != nil {
		dialog.ShowError(err, ui.window)
		return
	}
	if len(entries) == 0 {
		dialog.ShowInformation(loc.GetText(KeyHistory), loc.GetText(KeyHistoryEmpty), ui.window)
		return
	}

	list := container.NewVBox()
	for _, e := range entries {
		line := fmt.Sprintf("%s  %s  [%s, %s]", e.CreatedAt.Local().Format("2006-01-02 15:04"), e.Title, e.Format, e.Outcome)
		label := widget.NewLabel(line)
		label.Truncation = fyne.TextTruncateEllipsis
		list.Add(label)
	}

	d := dialog.NewCustom(loc.GetText(KeyHistory), loc.GetText(KeyCancel), container.NewVScroll(list), ui.window)
	d.Resize(fyne.NewSize(560, 400))
	d.Show()
}

// onCompressClick lets the user pick a video file and re-encodes it
func (ui *RootUI) onCompressClick() {
	if ui.compressor == nil {
		return
	}

	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()

		events, _ := ui.compressor.Start(path)
		go ui.consumeCompression(events)
	}, ui.window)
}

// consumeCompression forwards compression events to the Fyne thread
func (ui *RootUI) consumeCompression(events <-chan compress.Event) {
	loc := ui.localization
	for ev := range events {
		ev := ev
		fyne.Do(func() {
			switch ev.Kind {
			case compress.Progress:
				ui.statusLabel.SetText(fmt.Sprintf("%s %.0f%%", loc.GetText(KeyCompressing), ev.Percent))
			case compress.Completed:
				ui.statusLabel.SetText(loc.GetText(KeyCompressDone))
				ui.app.SendNotification(&fyne.Notification{
					Title:   loc.GetText(KeyCompressDone),
					Content: ev.OutputPath,
				})
			case compress.Failed:
				log.Printf("compression failed: %s", ev.Message)
				ui.statusLabel.SetText(loc.GetText(KeyCompressFailed) + ": " + ev.Message)
			}
		})
	}
}
