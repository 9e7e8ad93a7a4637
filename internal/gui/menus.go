package gui

import (
	"fyne.io/fyne/v2"
)

// MenuActions are the callbacks behind the application menu.
type MenuActions struct {
	OpenImage         func()
	OpenOutputFolder  func()
	About             func()
	ToggleDebugPanel  func()
	PerformanceReport func()
	Quit              func()
}

// BuildMainMenu places About under the application menu on macOS and under Help elsewhere.
// The View menu exists only in development mode.
func BuildMainMenu(appName string, isMac, development bool, actions MenuActions) *fyne.MainMenu {
	var menus []*fyne.Menu

	about := fyne.NewMenuItem("About", actions.About)

	if isMac {
		menus = append(menus, fyne.NewMenu(appName, about))
	}

	quit := fyne.NewMenuItem("Quit", actions.Quit)
	quit.IsQuit = true

	menus = append(menus, fyne.NewMenu("File",
		fyne.NewMenuItem("Open Image...", actions.OpenImage),
		fyne.NewMenuItem("Open Output Folder", actions.OpenOutputFolder),
		fyne.NewMenuItemSeparator(),
		quit,
	))

	if development {
		menus = append(menus, fyne.NewMenu("View",
			fyne.NewMenuItem("Toggle Debug Panel", actions.ToggleDebugPanel),
			fyne.NewMenuItem("Performance Report", actions.PerformanceReport),
		))
	}

	if !isMac {
		menus = append(menus, fyne.NewMenu("Help", about))
	}

	return fyne.NewMainMenu(menus...)
}
