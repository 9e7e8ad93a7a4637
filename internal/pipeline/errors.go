package pipeline

import (
	"errors"

	"image-resizer/internal/resize"
)

var (
	ErrInvalidDimensions = errors.New("invalid dimensions")
	ErrSourceUnreadable  = errors.New("source image unreadable")
	ErrDestination       = errors.New("destination not writable")
	ErrUnsupportedFormat = resize.ErrUnsupportedFormat
)
