// Package ui is the Fyne desktop front end: a single window that walks
// through tool bootstrap, URL analysis, entry selection and the download
// run. All widget mutation happens on the Fyne thread via fyne.Do; worker
// goroutines only forward events.
package ui
