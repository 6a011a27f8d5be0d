// Package covercache caches cover images on disk, keyed by the source URL.
// Fetches for the same URL are de-duplicated so a grid of tiles showing the
// same cover costs one download.
package covercache

import (
	"bytes"
	"context"
	"encoding/hex"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/crypto/blake2b"
	_ "golang.org/x/image/webp" // Register WebP decoder
	"golang.org/x/sync/singleflight"

	"github.com/shenavaapp/shenava-client/internal/errors"
)

const (
	// maxCoverSize limits download size to prevent memory exhaustion.
	maxCoverSize = 10 * 1024 * 1024 // 10MB

	// fetchTimeout is the maximum time for a cover download.
	fetchTimeout = 30 * time.Second
)

// Cache is a disk-backed cover cache.
type Cache struct {
	dir        string
	httpClient *http.Client
	group      singleflight.Group
	logger     *slog.Logger
}

// New creates a cache rooted at dir, creating it if needed.
func New(dir string, logger *slog.Logger) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cover cache dir: %w", err)
	}
	return &Cache{
		dir:        dir,
		httpClient: &http.Client{Timeout: fetchTimeout},
		logger:     logger,
	}, nil
}

// cacheKey derives the on-disk file name for a URL.
func cacheKey(url string) string {
	sum := blake2b.Sum256([]byte(url))
	return hex.EncodeToString(sum[:16]) + ".img"
}

// Path returns where the cover for url lives on disk, whether or not it has
// been fetched yet.
func (c *Cache) Path(url string) string {
	return filepath.Join(c.dir, cacheKey(url))
}

// Get returns the local path of the cover for url, downloading it on a cache
// miss. Concurrent calls for the same URL share one download.
func (c *Cache) Get(ctx context.Context, url string) (string, error) {
	if url == "" {
		return "", errors.Validation("empty cover URL")
	}

	path := c.Path(url)
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	_, err, _ := c.group.Do(path, func() (any, error) {
		// Another flight may have landed while we queued.
		if _, err := os.Stat(path); err == nil {
			return nil, nil
		}
		return nil, c.fetch(ctx, url, path)
	})
	if err != nil {
		return "", err
	}
	return path, nil
}

// fetch downloads url and writes it to path via a temp file rename, so a
// half-written cover is never served.
func (c *Cache) fetch(ctx context.Context, url, path string) error {
	fetchCtx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(fetchCtx, http.MethodGet, url, nil)
	if err != nil {
		return errors.Wrap(err, errors.CodeInternal, "create cover request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, errors.CodeNetwork, "download cover")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.Backendf("cover download failed: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxCoverSize))
	if err != nil {
		return errors.Wrap(err, errors.CodeNetwork, "read cover data")
	}

	// Reject bodies that are not actually images before they hit the cache.
	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return errors.Wrap(err, errors.CodeBackend, "cover is not a decodable image")
	}

	tmp, err := os.CreateTemp(c.dir, "cover-*")
	if err != nil {
		return fmt.Errorf("create temp cover: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write cover: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close cover: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("store cover: %w", err)
	}

	c.logger.Debug("cached cover", "url", url, "size", len(data))
	return nil
}

// Evict removes the cached cover for url. Missing entries are fine.
func (c *Cache) Evict(url string) error {
	err := os.Remove(c.Path(url))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Clear removes every cached cover.
func (c *Cache) Clear() error {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if err := os.Remove(filepath.Join(c.dir, e.Name())); err != nil {
			return err
		}
	}
	return nil
}

// Size returns the total bytes held by the cache.
func (c *Cache) Size() (int64, error) {
	var total int64
	err := filepath.WalkDir(c.dir, func(_ string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		total += info.Size()
		return nil
	})
	return total, err
}
