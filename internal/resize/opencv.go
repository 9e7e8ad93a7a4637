//go:build gocv

package resize

import (
	"context"
	"fmt"
	"image"
	"strings"

	"gocv.io/x/gocv"
)

var openCVFilters = map[string]gocv.InterpolationFlags{
	"":           gocv.InterpolationArea,
	"lanczos":    gocv.InterpolationLanczos4,
	"catmullrom": gocv.InterpolationCubic,
	"mitchell":   gocv.InterpolationCubic,
	"linear":     gocv.InterpolationLinear,
	"box":        gocv.InterpolationArea,
	"nearest":    gocv.InterpolationNearestNeighbor,
}

type openCVResizer struct {
	interp  gocv.InterpolationFlags
	quality int
}

func newOpenCVResizer(opts Options) (Resizer, error) {
	interp, ok := openCVFilters[opts.Filter]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFilter, opts.Filter)
	}
	return &openCVResizer{interp: interp, quality: opts.JPEGQuality}, nil
}

func (r *openCVResizer) Name() string {
	return EngineOpenCV
}

func (r *openCVResizer) Resize(ctx context.Context, data []byte, width, height int, filename string) (Output, error) {
	if err := ctx.Err(); err != nil {
		return Output{}, err
	}

	src, err := gocv.IMDecode(data, gocv.IMReadUnchanged)
	if err != nil {
		return Output{}, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}
	defer src.Close()
	if src.Empty() {
		return Output{}, fmt.Errorf("%w: empty matrix after decode", ErrUnsupportedFormat)
	}

	width, height = FitDimensions(src.Cols(), src.Rows(), width, height)

	dst := gocv.NewMat()
	defer dst.Close()
	gocv.Resize(src, &dst, image.Pt(width, height), 0, 0, r.interp)

	if err := ctx.Err(); err != nil {
		return Output{}, err
	}

	format, _ := OutputFormat(filename)
	ext := gocv.FileExt("." + strings.ToLower(format.String()))
	var params []int
	if ext == ".jpeg" {
		ext = gocv.JPEGFileExt
		params = []int{int(gocv.IMWriteJpegQuality), r.quality}
	}

	buf, err := gocv.IMEncodeWithParams(ext, dst, params)
	if err != nil {
		return Output{}, fmt.Errorf("failed to encode %s: %w", format, err)
	}
	defer buf.Close()

	return Output{
		// buffer memory belongs to OpenCV
		Data:   append([]byte(nil), buf.GetBytes()...),
		Width:  dst.Cols(),
		Height: dst.Rows(),
		Format: strings.ToLower(format.String()),
	}, nil
}
