package gui

import (
	"net/url"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindowSize(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want fyne.Size
	}{
		{"production", Options{}, fyne.NewSize(500, 700)},
		{"development", Options{Development: true}, fyne.NewSize(1000, 700)},
		{"overrides", Options{Development: true, Width: 640, Height: 480}, fyne.NewSize(640, 480)},
		{"width only", Options{Width: 720}, fyne.NewSize(720, 700)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.opts.WindowSize())
		})
	}
}

func TestManagerDebugPanelFollowsMode(t *testing.T) {
	app := test.NewTempApp(t)

	prod := NewManager(app.NewWindow("prod"), Options{Destination: "/home/ada/image_resizer"}, nil)
	assert.False(t, prod.DebugPanel().Visible())
	prod.AppendDebug("ignored")
	assert.Empty(t, prod.DebugPanel().Lines())

	dev := NewManager(app.NewWindow("dev"), Options{Development: true}, nil)
	assert.True(t, dev.DebugPanel().Visible())
	dev.AppendDebug("image:resize id=1")
	assert.Equal(t, []string{"image:resize id=1"}, dev.DebugPanel().Lines())

	dev.ToggleDebugPanel()
	assert.Eventually(t, func() bool {
		return !dev.DebugPanel().Visible()
	}, time.Second, 10*time.Millisecond)
}

func TestManagerResizeHandler(t *testing.T) {
	app := test.NewTempApp(t)
	m := NewManager(app.NewWindow("resize"), Options{}, nil)

	var got []string
	m.SetResizeHandler(func(path, width, height string) {
		got = []string{path, width, height}
	})

	m.SetImage("/tmp/cat.png", 120, 80, "cat.png 120x80 png")
	require.Eventually(t, func() bool {
		return m.Form().ImagePath() == "/tmp/cat.png"
	}, time.Second, 10*time.Millisecond)

	test.Tap(m.Form().ResizeButton())
	assert.Equal(t, []string{"/tmp/cat.png", "120", "80"}, got)
}

func TestManagerStatus(t *testing.T) {
	app := test.NewTempApp(t)
	m := NewManager(app.NewWindow("status"), Options{}, nil)

	m.UpdateStatus("Resizing cat.png...")
	assert.Eventually(t, func() bool {
		return m.StatusBar().GetStatus() == "Resizing cat.png..."
	}, time.Second, 10*time.Millisecond)

	m.Shutdown()
	m.Shutdown()
}

func TestBuildMainMenu(t *testing.T) {
	labels := func(menu *fyne.MainMenu) []string {
		var out []string
		for _, m := range menu.Items {
			out = append(out, m.Label)
		}
		return out
	}

	tests := []struct {
		name        string
		isMac       bool
		development bool
		want        []string
	}{
		{"linux production", false, false, []string{"File", "Help"}},
		{"linux development", false, true, []string{"File", "View", "Help"}},
		{"mac production", true, false, []string{"Image Resizer", "File"}},
		{"mac development", true, true, []string{"Image Resizer", "File", "View"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			menu := BuildMainMenu("Image Resizer", tt.isMac, tt.development, MenuActions{})
			assert.Equal(t, tt.want, labels(menu))
		})
	}
}

func TestMainMenuActions(t *testing.T) {
	var opened, quit bool
	menu := BuildMainMenu("Image Resizer", false, false, MenuActions{
		OpenImage: func() { opened = true },
		Quit:      func() { quit = true },
	})

	file := menu.Items[0]
	require.Len(t, file.Items, 4)
	assert.Equal(t, "Open Image...", file.Items[0].Label)
	assert.Equal(t, "Open Output Folder", file.Items[1].Label)
	assert.True(t, file.Items[2].IsSeparator)
	assert.True(t, file.Items[3].IsQuit)

	file.Items[0].Action()
	file.Items[3].Action()
	assert.True(t, opened)
	assert.True(t, quit)

	help := menu.Items[1]
	require.Len(t, help.Items, 1)
	assert.Equal(t, "About", help.Items[0].Label)
}

func TestShowAbout(t *testing.T) {
	app := test.NewTempApp(t)

	w := ShowAbout(app, "Image Resizer", "1.0.0", "imaging")
	defer w.Close()

	assert.Equal(t, "About Image Resizer", w.Title())
	assert.True(t, w.FixedSize())
}

type urlApp struct {
	fyne.App
	opened []*url.URL
}

func (a *urlApp) OpenURL(u *url.URL) error {
	a.opened = append(a.opened, u)
	return nil
}

func TestFolderRevealerOpensFileURL(t *testing.T) {
	app := &urlApp{App: test.NewTempApp(t)}

	require.NoError(t, NewFolderRevealer(app).Reveal("/home/ada/image_resizer"))

	require.Len(t, app.opened, 1)
	assert.Equal(t, "file", app.opened[0].Scheme)
	assert.Equal(t, "/home/ada/image_resizer", app.opened[0].Path)
}
