package resize

import (
	"bytes"
	"context"
	"fmt"

	"github.com/disintegration/imaging"
)

var imagingFilters = map[string]imaging.ResampleFilter{
	"":           imaging.Lanczos,
	"lanczos":    imaging.Lanczos,
	"catmullrom": imaging.CatmullRom,
	"mitchell":   imaging.MitchellNetravali,
	"linear":     imaging.Linear,
	"box":        imaging.Box,
	"nearest":    imaging.NearestNeighbor,
}

type imagingResizer struct {
	filter  imaging.ResampleFilter
	quality int
}

func newImagingResizer(opts Options) (Resizer, error) {
	filter, ok := imagingFilters[opts.Filter]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFilter, opts.Filter)
	}
	return &imagingResizer{filter: filter, quality: opts.JPEGQuality}, nil
}

func (r *imagingResizer) Name() string {
	return EngineImaging
}

func (r *imagingResizer) Resize(ctx context.Context, data []byte, width, height int, filename string) (Output, error) {
	if err := ctx.Err(); err != nil {
		return Output{}, err
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return Output{}, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}

	resized := imaging.Resize(img, width, height, r.filter)
	if err := ctx.Err(); err != nil {
		return Output{}, err
	}

	return encode(resized, filename, r.quality)
}
