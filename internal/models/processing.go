package models

import (
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
)

// ResizeRequest is created on user submission and discarded once the controller answers.
// Width and Height carry raw user input (string or number) and are coerced by the pipeline.
type ResizeRequest struct {
	ID          string
	ImagePath   string
	Width       interface{}
	Height      interface{}
	Destination string
}

// NewResizeRequest stamps a fresh correlation id. Destination is filled in by the controller.
func NewResizeRequest(imagePath string, width, height interface{}) (ResizeRequest, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return ResizeRequest{}, fmt.Errorf("could not generate request id: %w", err)
	}

	return ResizeRequest{
		ID:        id.String(),
		ImagePath: imagePath,
		Width:     width,
		Height:    height,
	}, nil
}

type ResizeStatus string

const (
	StatusSuccess ResizeStatus = "success"
	StatusFailure ResizeStatus = "failure"
)

// ResizeResult is the explicit outcome of one resize-and-persist operation.
type ResizeResult struct {
	ID         string
	Status     ResizeStatus
	SourcePath string
	OutputPath string
	Width      int
	Height     int
	Format     string
	Bytes      int
	Cached     bool
	Duration   time.Duration
	Err        error
}

func (r ResizeResult) Succeeded() bool {
	return r.Status == StatusSuccess
}

// Reason is the user-facing failure text, empty on success.
func (r ResizeResult) Reason() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

func Failed(req ResizeRequest, err error, elapsed time.Duration) ResizeResult {
	return ResizeResult{
		ID:         req.ID,
		Status:     StatusFailure,
		SourcePath: req.ImagePath,
		Duration:   elapsed,
		Err:        err,
	}
}
