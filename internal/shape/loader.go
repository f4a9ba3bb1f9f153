package shape

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/iburimskiy/dotmorph/internal/logging"
)

var ErrLoad = errors.New("image load failed")

// Cache keeps decoded images by source identifier. Nothing is ever evicted.
type Cache struct {
	mu     sync.RWMutex
	images map[string]image.Image
}

func NewCache() *Cache {
	return &Cache{images: map[string]image.Image{}}
}

func (c *Cache) Get(src string) (image.Image, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	img, ok := c.images[src]
	return img, ok
}

func (c *Cache) Put(src string, img image.Image) {
	c.mu.Lock()
	c.images[src] = img
	c.mu.Unlock()
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
}

// Loader fetches and decodes images from files or http(s) URLs.
//
// Concurrent requests for the same uncached source each perform their own
// load; the last one to finish populates the cache.
type Loader struct {
	Cache  *Cache
	Client *http.Client
}

func NewLoader(cache *Cache) *Loader {
	if cache == nil {
		cache = NewCache()
	}
	return &Loader{Cache: cache, Client: http.DefaultClient}
}

// Load returns the decoded image for src.
func (l *Loader) Load(ctx context.Context, src string) (image.Image, error) {
	if img, ok := l.Cache.Get(src); ok {
		logging.Logger().Debug("image cache hit", "src", src)
		return img, nil
	}

	rc, err := l.open(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLoad, src, err)
	}
	defer rc.Close()

	img, format, err := image.Decode(rc)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLoad, src, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLoad, src, err)
	}

	b := img.Bounds()
	logging.Logger().Info("image loaded", "src", src, "format", format, "width", b.Dx(), "height", b.Dy())
	l.Cache.Put(src, img)
	return img, nil
}

func (l *Loader) open(ctx context.Context, src string) (io.ReadCloser, error) {
	if !strings.HasPrefix(src, "http://") && !strings.HasPrefix(src, "https://") {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return os.Open(src)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, err
	}
	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return resp.Body, nil
}
