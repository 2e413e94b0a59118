package main

import (
	"fmt"
	"log"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/ytget/yt-grabber/internal/history"
	"github.com/ytget/yt-grabber/internal/platform"
	"github.com/ytget/yt-grabber/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.yt-grabber"
	AppName = "YT Grabber"

	WindowWidth  = 760
	WindowHeight = 560

	historyFileName = "history.db"
)

func main() {
	fmt.Printf("%s v%s starting...\n", AppName, version)

	myApp := app.NewWithID(AppID)

	// Apply compact theme
	myApp.Settings().SetTheme(ui.NewCompactTheme())

	windowTitle := fmt.Sprintf("%s v%s", AppName, version)
	myWindow := myApp.NewWindow(windowTitle)
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	// The history store lives next to the bootstrapped binaries. The app
	// works without it; a broken database only loses the history menu.
	var store *history.Store
	if err := platform.CreateDirectoryIfNotExists(platform.AppDir()); err != nil {
		log.Printf("failed to ensure app dir: %v", err)
	} else {
		var err error
		store, err = history.Open(filepath.Join(platform.AppDir(), historyFileName))
		if err != nil {
			log.Printf("failed to open history store: %v", err)
		} else {
			defer store.Close()
		}
	}

	ui.NewRootUI(myWindow, myApp, store)

	myWindow.ShowAndRun()
}
