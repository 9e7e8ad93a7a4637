package pipeline

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	lru "github.com/hashicorp/golang-lru"

	"image-resizer/internal/resize"
)

// OutputCache keeps recently produced encodings so repeating a resize skips the decode.
// A nil *OutputCache is a valid, disabled cache.
type OutputCache struct {
	cache *lru.Cache
}

func NewOutputCache(size int) (*OutputCache, error) {
	if size <= 0 {
		return nil, nil
	}

	cache, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("failed to create output cache: %w", err)
	}
	return &OutputCache{cache: cache}, nil
}

// cacheKey identifies an output by source content, box, engine and target format.
func cacheKey(data []byte, width, height int, engine, filename string) string {
	sum := sha256.Sum256(data)
	format, _ := resize.OutputFormat(filename)
	return fmt.Sprintf("%s|%dx%d|%s|%s", hex.EncodeToString(sum[:]), width, height, engine, format)
}

func (c *OutputCache) Get(key string) (resize.Output, bool) {
	if c == nil {
		return resize.Output{}, false
	}
	v, ok := c.cache.Get(key)
	if !ok {
		return resize.Output{}, false
	}
	return v.(resize.Output), true
}

func (c *OutputCache) Add(key string, out resize.Output) {
	if c == nil {
		return
	}
	c.cache.Add(key, out)
}

func (c *OutputCache) Len() int {
	if c == nil {
		return 0
	}
	return c.cache.Len()
}

func (c *OutputCache) Purge() {
	if c == nil {
		return
	}
	c.cache.Purge()
}
