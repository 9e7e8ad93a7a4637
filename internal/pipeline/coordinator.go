// Package pipeline implements the resize-and-persist operation: read the source, resize it,
// and write the result under its original base name into the destination directory.
package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"image-resizer/internal/debug/timing"
	"image-resizer/internal/logger"
	"image-resizer/internal/models"
	"image-resizer/internal/resize"
)

// Stage names recorded in the timing tracker.
const (
	StageRead   = "read"
	StageResize = "resize"
	StageWrite  = "write"
	StageTotal  = "total"
)

type Coordinator struct {
	loader  *Loader
	saver   *Saver
	resizer resize.Resizer
	cache   *OutputCache
	locks   *pathLocks
	timing  *timing.Tracker
	logger  logger.Logger
}

func NewCoordinator(resizer resize.Resizer, cache *OutputCache, tracker *timing.Tracker, log logger.Logger) *Coordinator {
	if log == nil {
		log = logger.NoOpLogger{}
	}
	if tracker == nil {
		tracker = timing.NewTracker()
	}

	return &Coordinator{
		loader:  NewLoader(log),
		saver:   NewSaver(log),
		resizer: resizer,
		cache:   cache,
		locks:   newPathLocks(),
		timing:  tracker,
		logger:  log,
	}
}

// Resize runs the whole operation for req and never panics on bad input; every failure is
// reported through the returned result. Writers of the same output path are serialised and
// the last one to finish wins.
func (c *Coordinator) Resize(ctx context.Context, req models.ResizeRequest) models.ResizeResult {
	start := time.Now()
	stopTotal := c.timing.StartTiming(StageTotal)
	defer stopTotal()

	fail := func(err error) models.ResizeResult {
		c.logger.Error("Coordinator", err, map[string]interface{}{
			"id":     req.ID,
			"source": req.ImagePath,
		})
		return models.Failed(req, err, time.Since(start))
	}

	width, height, err := ParseDimensions(req.Width, req.Height)
	if err != nil {
		return fail(err)
	}

	stopRead := c.timing.StartTiming(StageRead)
	data, err := c.loader.Load(req.ImagePath)
	stopRead()
	if err != nil {
		return fail(err)
	}

	info, err := resize.Probe(data)
	if err != nil {
		return fail(err)
	}
	if _, _, err := FitTarget(info.Width, info.Height, width, height); err != nil {
		return fail(err)
	}

	filename := filepath.Base(req.ImagePath)
	if _, ok := resize.OutputFormat(filename); !ok {
		c.logger.Warning("Coordinator", "no encoder for file extension, writing PNG data", map[string]interface{}{
			"id":       req.ID,
			"filename": filename,
		})
	}

	out, cached, err := c.resize(ctx, data, width, height, filename)
	if err != nil {
		return fail(err)
	}

	if err := ctx.Err(); err != nil {
		return fail(err)
	}

	target := filepath.Join(req.Destination, filename)
	unlock := c.locks.Lock(target)
	stopWrite := c.timing.StartTiming(StageWrite)
	outputPath, err := c.saver.Save(req.Destination, filename, out.Data)
	stopWrite()
	unlock()
	if err != nil {
		return fail(err)
	}

	result := models.ResizeResult{
		ID:         req.ID,
		Status:     models.StatusSuccess,
		SourcePath: req.ImagePath,
		OutputPath: outputPath,
		Width:      out.Width,
		Height:     out.Height,
		Format:     out.Format,
		Bytes:      len(out.Data),
		Cached:     cached,
		Duration:   time.Since(start),
	}

	c.logger.Info("Coordinator", "image resized", map[string]interface{}{
		"id":          result.ID,
		"source":      result.SourcePath,
		"output":      result.OutputPath,
		"size":        fmt.Sprintf("%dx%d", result.Width, result.Height),
		"cached":      result.Cached,
		"engine":      c.resizer.Name(),
		"duration_ms": result.Duration.Milliseconds(),
	})

	return result
}

func (c *Coordinator) resize(ctx context.Context, data []byte, width, height int, filename string) (resize.Output, bool, error) {
	key := cacheKey(data, width, height, c.resizer.Name(), filename)
	if out, ok := c.cache.Get(key); ok {
		return out, true, nil
	}

	stop := c.timing.StartTiming(StageResize)
	out, err := c.resizer.Resize(ctx, data, width, height, filename)
	stop()
	if err != nil {
		return resize.Output{}, false, err
	}

	c.cache.Add(key, out)
	return out, false, nil
}

// Probe reads the header of the image at path, used to prefill the form.
func (c *Coordinator) Probe(path string) (models.ImageInfo, error) {
	info, err := resize.ProbeFile(path)
	if err != nil {
		return models.ImageInfo{}, fmt.Errorf("%w: %w", ErrSourceUnreadable, err)
	}
	return info, nil
}

func (c *Coordinator) Timing() *timing.Tracker {
	return c.timing
}

func (c *Coordinator) Engine() string {
	return c.resizer.Name()
}

// Cleanup drops cached outputs.
func (c *Coordinator) Cleanup() {
	c.cache.Purge()
}
