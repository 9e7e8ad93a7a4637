package pipeline

import (
	"fmt"
	"math"
	"strings"

	"image-resizer/internal/resize"

	"github.com/spf13/cast"
)

// Output bounds. Anything larger cannot be allocated reliably by the engines.
const (
	MaxSide   = 16384
	MaxPixels = 100_000_000
)

// ParseDimensions coerces raw form input into pixel sizes. Blank input counts as zero, and a
// single zero side keeps the aspect ratio. Fractions are truncated.
func ParseDimensions(width, height interface{}) (int, int, error) {
	w, err := coerceDimension("width", width)
	if err != nil {
		return 0, 0, err
	}
	h, err := coerceDimension("height", height)
	if err != nil {
		return 0, 0, err
	}
	if w == 0 && h == 0 {
		return 0, 0, fmt.Errorf("%w: width and height are both zero", ErrInvalidDimensions)
	}
	if w*h > MaxPixels {
		return 0, 0, fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrInvalidDimensions, w, h, MaxPixels)
	}
	return w, h, nil
}

// FitTarget resolves the final output size for a source and checks it against the bounds.
// A single zero side is derived from the source, so it can only be checked here.
func FitTarget(srcW, srcH, width, height int) (int, int, error) {
	w, h := resize.FitDimensions(srcW, srcH, width, height)
	if w > MaxSide || h > MaxSide || w*h > MaxPixels {
		return 0, 0, fmt.Errorf("%w: output %dx%d is too large", ErrInvalidDimensions, w, h)
	}
	return w, h, nil
}

func coerceDimension(name string, raw interface{}) (int, error) {
	if s, ok := raw.(string); ok {
		raw = strings.TrimSpace(s)
		if raw == "" {
			return 0, nil
		}
	}
	if raw == nil {
		return 0, nil
	}

	f, err := cast.ToFloat64E(raw)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %s %v is not a number", ErrInvalidDimensions, name, raw)
	}
	if f < 0 {
		return 0, fmt.Errorf("%w: %s %v is negative", ErrInvalidDimensions, name, raw)
	}
	if f > MaxSide {
		return 0, fmt.Errorf("%w: %s %v is too large", ErrInvalidDimensions, name, raw)
	}
	return int(f), nil
}
