package resize

import (
	"bytes"
	"context"
	"fmt"
	"image"

	"github.com/nfnt/resize"
)

var nfntFilters = map[string]resize.InterpolationFunction{
	"":           resize.Lanczos3,
	"lanczos":    resize.Lanczos3,
	"catmullrom": resize.Bicubic,
	"mitchell":   resize.MitchellNetravali,
	"linear":     resize.Bilinear,
	"box":        resize.Bilinear,
	"nearest":    resize.NearestNeighbor,
}

type nfntResizer struct {
	interp  resize.InterpolationFunction
	quality int
}

func newNfntResizer(opts Options) (Resizer, error) {
	interp, ok := nfntFilters[opts.Filter]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFilter, opts.Filter)
	}
	return &nfntResizer{interp: interp, quality: opts.JPEGQuality}, nil
}

func (r *nfntResizer) Name() string {
	return EngineNfnt
}

func (r *nfntResizer) Resize(ctx context.Context, data []byte, width, height int, filename string) (Output, error) {
	if err := ctx.Err(); err != nil {
		return Output{}, err
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return Output{}, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}

	// nfnt keeps the aspect ratio itself when one side is zero
	resized := resize.Resize(uint(width), uint(height), img, r.interp)
	if err := ctx.Err(); err != nil {
		return Output{}, err
	}

	return encode(resized, filename, r.quality)
}
