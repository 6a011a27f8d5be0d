package articles

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shenavaapp/shenava-client/internal/backend"
	"github.com/shenavaapp/shenava-client/internal/errors"
)

type fakeClient struct {
	rows []bodyRow
}

func (f *fakeClient) Query(_ context.Context, _ backend.QuerySpec, dest any) error {
	*dest.(*[]bodyRow) = f.rows
	return nil
}

func (f *fakeClient) Insert(context.Context, string, any) error              { return nil }
func (f *fakeClient) Delete(context.Context, string, []backend.Filter) error { return nil }

func TestRender_ConvertsHTML(t *testing.T) {
	md := Render("<h1>عنوان</h1><p>متن <strong>مهم</strong> مقاله</p>")
	assert.Contains(t, md, "# عنوان")
	assert.Contains(t, md, "**مهم**")
	assert.NotContains(t, md, "<p>")
}

func TestRender_PlainTextPassesThrough(t *testing.T) {
	assert.Equal(t, "متن ساده بدون تگ", Render("  متن ساده بدون تگ  "))
	assert.Equal(t, "", Render(""))
}

func TestRender_AngleBracketsWithoutMarkup(t *testing.T) {
	// Comparison text is not markup.
	in := "سرعت < 2 و > 1"
	assert.Equal(t, in, Render(in))
}

func TestGet(t *testing.T) {
	svc := NewService(&fakeClient{rows: []bodyRow{
		{ItemID: "itm-1", Body: "<p>یک دو سه چهار</p>"},
	}})

	art, err := svc.Get(context.Background(), "itm-1")
	require.NoError(t, err)
	assert.Equal(t, "itm-1", art.ItemID)
	assert.Equal(t, 4, art.WordCount)
	assert.Equal(t, 1, art.ReadMinutes)
}

func TestGet_MissingBody(t *testing.T) {
	svc := NewService(&fakeClient{})

	_, err := svc.Get(context.Background(), "itm-9")
	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestReadMinutes(t *testing.T) {
	assert.Equal(t, 0, readMinutes(0))
	assert.Equal(t, 1, readMinutes(1))
	assert.Equal(t, 1, readMinutes(180))
	assert.Equal(t, 2, readMinutes(181))
}
