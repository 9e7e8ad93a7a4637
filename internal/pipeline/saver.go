package pipeline

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"image-resizer/internal/logger"
)

const outputFileMode = 0o644

// Saver writes resized images into the destination directory.
type Saver struct {
	logger logger.Logger
}

func NewSaver(log logger.Logger) *Saver {
	return &Saver{logger: log}
}

// EnsureDir creates dir if it is missing. Only the last path segment is created.
func (s *Saver) EnsureDir(dir string) error {
	stat, err := os.Stat(dir)
	switch {
	case err == nil:
		if !stat.IsDir() {
			return fmt.Errorf("%w: %s exists and is not a directory", ErrDestination, dir)
		}
		return nil
	case !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %w", ErrDestination, err)
	}

	if err := os.Mkdir(dir, 0o755); err != nil {
		// another request may have created it in the meantime
		if errors.Is(err, fs.ErrExist) {
			if stat, statErr := os.Stat(dir); statErr == nil && stat.IsDir() {
				return nil
			}
		}
		return fmt.Errorf("%w: %w", ErrDestination, err)
	}

	s.logger.Info("Saver", "destination created", map[string]interface{}{"dir": dir})
	return nil
}

// Save writes data to dir/filename, replacing any existing file. The bytes land in a temp
// file first so the final name never holds a partial image.
func (s *Saver) Save(dir, filename string, data []byte) (string, error) {
	if dir == "" {
		return "", fmt.Errorf("%w: no destination directory", ErrDestination)
	}
	if err := s.EnsureDir(dir); err != nil {
		return "", err
	}

	target := filepath.Join(dir, filename)

	tmp, err := os.CreateTemp(dir, "."+filename+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDestination, err)
	}
	tmpPath := tmp.Name()

	cleanup := func(cause error) (string, error) {
		tmp.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("%w: %w", ErrDestination, cause)
	}

	if _, err := tmp.Write(data); err != nil {
		return cleanup(err)
	}
	if err := tmp.Chmod(outputFileMode); err != nil {
		return cleanup(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("%w: %w", ErrDestination, err)
	}
	if err := os.Rename(tmpPath, target); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("%w: %w", ErrDestination, err)
	}

	s.logger.Debug("Saver", "image written", map[string]interface{}{
		"path":       target,
		"size_bytes": len(data),
	})

	return target, nil
}
