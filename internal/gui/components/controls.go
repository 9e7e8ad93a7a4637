package components

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// ResizeForm collects the source path and the target box.
type ResizeForm struct {
	container    *fyne.Container
	pathEntry    *widget.Entry
	widthEntry   *widget.Entry
	heightEntry  *widget.Entry
	browseButton *widget.Button
	resizeButton *widget.Button
	outputLabel  *widget.Label

	browseHandler func()
	resizeHandler func(path, width, height string)
}

func NewResizeForm(destination string) *ResizeForm {
	form := &ResizeForm{}
	form.setupControls(destination)
	return form
}

func (rf *ResizeForm) setupControls(destination string) {
	rf.pathEntry = widget.NewEntry()
	rf.pathEntry.SetPlaceHolder("Choose or drop an image")

	rf.widthEntry = widget.NewEntry()
	rf.widthEntry.SetPlaceHolder("Width")

	rf.heightEntry = widget.NewEntry()
	rf.heightEntry.SetPlaceHolder("Height")

	rf.browseButton = widget.NewButton("Browse...", rf.onBrowse)

	rf.resizeButton = widget.NewButton("Resize", rf.onResize)
	rf.resizeButton.Importance = widget.HighImportance

	rf.outputLabel = widget.NewLabel(fmt.Sprintf("Output: %s", destination))
	rf.outputLabel.Wrapping = fyne.TextWrapBreak

	pathRow := container.NewBorder(nil, nil, nil, rf.browseButton, rf.pathEntry)
	sizeRow := container.NewGridWithColumns(2,
		widget.NewForm(widget.NewFormItem("Width", rf.widthEntry)),
		widget.NewForm(widget.NewFormItem("Height", rf.heightEntry)),
	)

	rf.container = container.NewVBox(
		widget.NewLabelWithStyle("Image Resizer", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		pathRow,
		sizeRow,
		rf.resizeButton,
		rf.outputLabel,
	)
}

func (rf *ResizeForm) GetContainer() *fyne.Container {
	return rf.container
}

func (rf *ResizeForm) SetBrowseHandler(handler func()) {
	rf.browseHandler = handler
}

func (rf *ResizeForm) SetResizeHandler(handler func(path, width, height string)) {
	rf.resizeHandler = handler
}

func (rf *ResizeForm) SetImagePath(path string) {
	rf.pathEntry.SetText(path)
}

func (rf *ResizeForm) ImagePath() string {
	return rf.pathEntry.Text
}

func (rf *ResizeForm) SetDimensions(width, height int) {
	rf.widthEntry.SetText(fmt.Sprint(width))
	rf.heightEntry.SetText(fmt.Sprint(height))
}

func (rf *ResizeForm) Dimensions() (string, string) {
	return rf.widthEntry.Text, rf.heightEntry.Text
}

func (rf *ResizeForm) ResizeButton() *widget.Button {
	return rf.resizeButton
}

func (rf *ResizeForm) SetBusy(busy bool) {
	if busy {
		rf.resizeButton.SetText("Resizing...")
		return
	}
	rf.resizeButton.SetText("Resize")
}

func (rf *ResizeForm) onBrowse() {
	if rf.browseHandler != nil {
		rf.browseHandler()
	}
}

func (rf *ResizeForm) onResize() {
	if rf.resizeHandler != nil {
		width, height := rf.Dimensions()
		rf.resizeHandler(rf.pathEntry.Text, width, height)
	}
}
