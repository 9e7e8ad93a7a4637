// Package resize holds the interchangeable resize routines. Each engine decodes the source
// bytes, scales to the requested box and re-encodes in the format implied by the filename.
package resize

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"strings"

	"image-resizer/internal/models"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrUnknownEngine     = errors.New("unknown resize engine")
	ErrUnknownFilter     = errors.New("unknown resize filter")
)

const (
	EngineImaging = "imaging"
	EngineNfnt    = "nfnt"
	EngineOpenCV  = "opencv"
)

// Filters lists the filter names every engine accepts. Engines without an exact match use
// their closest interpolation.
var Filters = []string{"lanczos", "catmullrom", "mitchell", "linear", "box", "nearest"}

// Output is an encoded resized image.
type Output struct {
	Data   []byte
	Width  int
	Height int
	Format string
}

// Resizer scales an encoded image. A zero width or height keeps the aspect ratio.
type Resizer interface {
	Resize(ctx context.Context, data []byte, width, height int, filename string) (Output, error)
	Name() string
}

type Options struct {
	Engine      string
	Filter      string
	JPEGQuality int
}

func New(opts Options) (Resizer, error) {
	if opts.JPEGQuality <= 0 {
		opts.JPEGQuality = 95
	}

	switch strings.ToLower(opts.Engine) {
	case "", EngineImaging:
		return newImagingResizer(opts)
	case EngineNfnt:
		return newNfntResizer(opts)
	case EngineOpenCV:
		return newOpenCVResizer(opts)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, opts.Engine)
}

// Probe reads the image header only.
func Probe(data []byte) (models.ImageInfo, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return models.ImageInfo{}, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}
	return models.ImageInfo{
		Width:  cfg.Width,
		Height: cfg.Height,
		Format: format,
		Size:   int64(len(data)),
	}, nil
}

func ProbeFile(path string) (models.ImageInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return models.ImageInfo{}, err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return models.ImageInfo{}, err
	}

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return models.ImageInfo{}, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}

	return models.ImageInfo{
		Path:   path,
		Width:  cfg.Width,
		Height: cfg.Height,
		Format: format,
		Size:   stat.Size(),
	}, nil
}

// OutputFormat maps a filename to the encoder used for it. Extensions without an encoder
// (webp among them) fall back to PNG.
func OutputFormat(filename string) (imaging.Format, bool) {
	format, err := imaging.FormatFromFilename(filename)
	if err != nil {
		return imaging.PNG, false
	}
	return format, true
}

// FitDimensions resolves a zero side from the source aspect ratio.
func FitDimensions(srcW, srcH, width, height int) (int, int) {
	switch {
	case width == 0 && height == 0:
		return srcW, srcH
	case width == 0:
		width = int(float64(srcW)*float64(height)/float64(srcH) + 0.5)
	case height == 0:
		height = int(float64(srcH)*float64(width)/float64(srcW) + 0.5)
	}
	return max(width, 1), max(height, 1)
}

func encode(img image.Image, filename string, quality int) (Output, error) {
	format, _ := OutputFormat(filename)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, format, imaging.JPEGQuality(quality)); err != nil {
		return Output{}, fmt.Errorf("failed to encode %s: %w", format, err)
	}

	bounds := img.Bounds()
	return Output{
		Data:   buf.Bytes(),
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Format: strings.ToLower(format.String()),
	}, nil
}
