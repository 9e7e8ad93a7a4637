package gui

import (
	"fmt"
	"net/url"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/storage"
)

// FolderRevealer opens directories through the platform URL handler.
type FolderRevealer struct {
	app fyne.App
}

func NewFolderRevealer(app fyne.App) *FolderRevealer {
	return &FolderRevealer{app: app}
}

func (r *FolderRevealer) Reveal(dir string) error {
	u, err := url.Parse(storage.NewFileURI(dir).String())
	if err != nil {
		return fmt.Errorf("invalid folder %s: %w", dir, err)
	}
	return r.app.OpenURL(u)
}
