package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const StatusReady = "Ready"

// StatusBar shows the outcome of the latest request and facts about the chosen image.
type StatusBar struct {
	container   *fyne.Container
	statusLabel *widget.Label
	imageInfo   *widget.Label
}

func NewStatusBar() *StatusBar {
	sb := &StatusBar{
		statusLabel: widget.NewLabel(StatusReady),
		imageInfo:   widget.NewLabel("No image selected"),
	}
	sb.statusLabel.Truncation = fyne.TextTruncateEllipsis

	sb.container = container.NewBorder(nil, nil, nil, sb.imageInfo, sb.statusLabel)
	return sb
}

func (sb *StatusBar) GetContainer() *fyne.Container {
	return sb.container
}

func (sb *StatusBar) SetStatus(status string) {
	fyne.Do(func() {
		sb.statusLabel.SetText(status)
	})
}

func (sb *StatusBar) GetStatus() string {
	return sb.statusLabel.Text
}

func (sb *StatusBar) SetImageInfo(info string) {
	fyne.Do(func() {
		sb.imageInfo.SetText(info)
	})
}

func (sb *StatusBar) GetImageInfo() string {
	return sb.imageInfo.Text
}

func (sb *StatusBar) Reset() {
	fyne.Do(func() {
		sb.statusLabel.SetText(StatusReady)
		sb.imageInfo.SetText("No image selected")
	})
}
