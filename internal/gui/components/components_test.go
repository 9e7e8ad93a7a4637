package components

import (
	"fmt"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
)

func TestResizeFormSubmit(t *testing.T) {
	test.NewTempApp(t)

	form := NewResizeForm("/home/ada/image_resizer")
	var gotPath, gotWidth, gotHeight string
	calls := 0
	form.SetResizeHandler(func(path, width, height string) {
		calls++
		gotPath, gotWidth, gotHeight = path, width, height
	})

	form.SetImagePath("/pics/photo.jpg")
	form.SetDimensions(4000, 3000)
	form.widthEntry.SetText("")
	test.Type(form.widthEntry, "200")
	form.heightEntry.SetText("")
	test.Type(form.heightEntry, "150")
	test.Tap(form.resizeButton)

	assert.Equal(t, 1, calls)
	assert.Equal(t, "/pics/photo.jpg", gotPath)
	assert.Equal(t, "200", gotWidth)
	assert.Equal(t, "150", gotHeight)
	assert.Contains(t, form.outputLabel.Text, "/home/ada/image_resizer")
}

func TestResizeFormBrowseAndBusy(t *testing.T) {
	test.NewTempApp(t)

	form := NewResizeForm("/out")
	browsed := false
	form.SetBrowseHandler(func() { browsed = true })

	test.Tap(form.browseButton)
	assert.True(t, browsed)

	form.SetBusy(true)
	assert.Equal(t, "Resizing...", form.resizeButton.Text)
	form.SetBusy(false)
	assert.Equal(t, "Resize", form.resizeButton.Text)

	form.SetDimensions(640, 480)
	w, h := form.Dimensions()
	assert.Equal(t, "640", w)
	assert.Equal(t, "480", h)
}

func TestResizeFormWithoutHandlers(t *testing.T) {
	test.NewTempApp(t)

	form := NewResizeForm("/out")
	assert.NotPanics(t, func() {
		test.Tap(form.browseButton)
		test.Tap(form.resizeButton)
	})
}

func TestStatusBar(t *testing.T) {
	test.NewTempApp(t)

	sb := NewStatusBar()
	assert.Equal(t, StatusReady, sb.GetStatus())

	sb.SetStatus("Resizing photo.jpg...")
	sb.SetImageInfo("photo.jpg 4000x3000 jpeg")
	assert.Equal(t, "Resizing photo.jpg...", sb.GetStatus())
	assert.Equal(t, "photo.jpg 4000x3000 jpeg", sb.GetImageInfo())

	sb.Reset()
	assert.Equal(t, StatusReady, sb.GetStatus())
	assert.Equal(t, "No image selected", sb.GetImageInfo())
}

func TestDebugPanel(t *testing.T) {
	test.NewTempApp(t)

	p := NewDebugPanel()
	for i := 0; i < DebugLineLimit+5; i++ {
		p.Append(fmt.Sprintf("line %d", i))
	}

	lines := p.Lines()
	assert.Len(t, lines, DebugLineLimit)
	assert.Equal(t, "line 5", lines[0])
	assert.Contains(t, p.text.Text, fmt.Sprintf("line %d", DebugLineLimit+4))

	p.SetVisible(false)
	assert.False(t, p.Visible())
	p.Toggle()
	assert.True(t, p.Visible())
}
