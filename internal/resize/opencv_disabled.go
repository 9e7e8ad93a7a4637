//go:build !gocv

package resize

import "fmt"

func newOpenCVResizer(Options) (Resizer, error) {
	return nil, fmt.Errorf("%w: %q requires building with -tags gocv", ErrUnknownEngine, EngineOpenCV)
}
