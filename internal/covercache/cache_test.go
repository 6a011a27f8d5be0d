package covercache

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shenavaapp/shenava-client/internal/errors"
	"github.com/shenavaapp/shenava-client/internal/logger"
)

// pngBytes renders a tiny solid PNG.
func pngBytes(t *testing.T) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 30, B: 30, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func newCache(t *testing.T) *Cache {
	t.Helper()

	c, err := New(t.TempDir(), logger.Discard().Logger)
	require.NoError(t, err)
	return c
}

func TestGet_DownloadsOnceThenHitsDisk(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.Write(pngBytes(t))
	}))
	defer srv.Close()

	c := newCache(t)
	ctx := context.Background()
	url := srv.URL + "/covers/itm-1.png"

	first, err := c.Get(ctx, url)
	require.NoError(t, err)
	second, err := c.Get(ctx, url)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int64(1), hits.Load())
	assert.FileExists(t, first)
}

func TestGet_DistinctURLsGetDistinctPaths(t *testing.T) {
	c := newCache(t)
	assert.NotEqual(t, c.Path("https://cdn/a.png"), c.Path("https://cdn/b.png"))
}

func TestGet_RejectsNonImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("<html>not a cover</html>"))
	}))
	defer srv.Close()

	c := newCache(t)
	_, err := c.Get(context.Background(), srv.URL)
	assert.ErrorIs(t, err, errors.ErrBackend)

	// Nothing was cached.
	assert.NoFileExists(t, c.Path(srv.URL))
}

func TestGet_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := newCache(t)
	_, err := c.Get(context.Background(), srv.URL)
	assert.ErrorIs(t, err, errors.ErrBackend)
}

func TestGet_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	c := newCache(t)
	_, err := c.Get(context.Background(), srv.URL)
	assert.ErrorIs(t, err, errors.ErrNetwork)
}

func TestGet_EmptyURL(t *testing.T) {
	c := newCache(t)
	_, err := c.Get(context.Background(), "")
	assert.ErrorIs(t, err, errors.ErrValidation)
}

func TestEvictAndClear(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write(pngBytes(t))
	}))
	defer srv.Close()

	c := newCache(t)
	ctx := context.Background()

	pathA, err := c.Get(ctx, srv.URL+"/a")
	require.NoError(t, err)
	pathB, err := c.Get(ctx, srv.URL+"/b")
	require.NoError(t, err)

	size, err := c.Size()
	require.NoError(t, err)
	assert.Positive(t, size)

	require.NoError(t, c.Evict(srv.URL+"/a"))
	assert.NoFileExists(t, pathA)
	assert.FileExists(t, pathB)

	// Evicting again is fine.
	require.NoError(t, c.Evict(srv.URL+"/a"))

	require.NoError(t, c.Clear())
	size, err = c.Size()
	require.NoError(t, err)
	assert.Zero(t, size)
}

func TestPlaceholder(t *testing.T) {
	const hash = "LEHV6nWB2yk8pyo0adR*.7kCMdnj"

	img, err := Placeholder(hash, 128, 192)
	require.NoError(t, err)
	assert.Equal(t, 128, img.Bounds().Dx())
	assert.Equal(t, 192, img.Bounds().Dy())

	// Small requests skip the scaling pass.
	small, err := Placeholder(hash, 16, 16)
	require.NoError(t, err)
	assert.Equal(t, 16, small.Bounds().Dx())
}

func TestPlaceholder_Invalid(t *testing.T) {
	_, err := Placeholder("", 64, 64)
	assert.ErrorIs(t, err, errors.ErrValidation)

	_, err = Placeholder("not-a-hash", 64, 64)
	assert.ErrorIs(t, err, errors.ErrValidation)

	_, err = Placeholder("LEHV6nWB2yk8pyo0adR*.7kCMdnj", 0, 64)
	assert.ErrorIs(t, err, errors.ErrValidation)
}
