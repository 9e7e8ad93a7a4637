package gui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const aboutSize = 300

// ShowAbout opens a small standalone window describing the application.
func ShowAbout(app fyne.App, name, version, engine string) fyne.Window {
	w := app.NewWindow(fmt.Sprintf("About %s", name))
	w.Resize(fyne.NewSize(aboutSize, aboutSize))
	w.SetFixedSize(true)

	w.SetContent(container.NewCenter(container.NewVBox(
		widget.NewLabelWithStyle(name, fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Version "+version, fyne.TextAlignCenter, fyne.TextStyle{}),
		widget.NewLabelWithStyle("Resize engine: "+engine, fyne.TextAlignCenter, fyne.TextStyle{Italic: true}),
	)))
	w.Show()
	return w
}
