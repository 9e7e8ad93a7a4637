package pipeline

import (
	"fmt"
	"os"

	"image-resizer/internal/logger"
)

// Loader reads source images from disk.
type Loader struct {
	logger logger.Logger
}

func NewLoader(log logger.Logger) *Loader {
	return &Loader{logger: log}
}

func (l *Loader) Load(path string) ([]byte, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: no path given", ErrSourceUnreadable)
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnreadable, err)
	}
	if stat.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrSourceUnreadable, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnreadable, err)
	}

	l.logger.Debug("Loader", "source read", map[string]interface{}{
		"path":       path,
		"size_bytes": len(data),
	})

	return data, nil
}
