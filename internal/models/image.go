package models

import (
	"fmt"
	"path/filepath"
)

// ImageInfo describes a source image without holding its pixels.
type ImageInfo struct {
	Path   string
	Width  int
	Height int
	Format string
	Size   int64
}

func (i ImageInfo) Name() string {
	return filepath.Base(i.Path)
}

func (i ImageInfo) String() string {
	return fmt.Sprintf("%s %dx%d %s", i.Name(), i.Width, i.Height, i.Format)
}
