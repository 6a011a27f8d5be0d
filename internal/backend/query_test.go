package backend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuerySpec_Values(t *testing.T) {
	tests := []struct {
		name string
		spec QuerySpec
		want map[string]string
	}{
		{
			name: "equality filter",
			spec: QuerySpec{
				Collection: "items",
				Filters:    []Filter{Eq("kind", "audiobook")},
			},
			want: map[string]string{"kind": "eq.audiobook"},
		},
		{
			name: "inclusion filter",
			spec: QuerySpec{
				Collection: "items",
				Filters:    []Filter{In("id", "a", "b", "c")},
			},
			want: map[string]string{"id": "in.(a,b,c)"},
		},
		{
			name: "null check",
			spec: QuerySpec{
				Collection: "progress",
				Filters:    []Filter{IsNull("finished_at")},
			},
			want: map[string]string{"finished_at": "is.null"},
		},
		{
			name: "order with nulls last",
			spec: QuerySpec{
				Collection: "progress",
				Order:      &OrderBy{Column: "last_played_at", Desc: true, NullsLast: true},
			},
			want: map[string]string{"order": "last_played_at.desc.nullslast"},
		},
		{
			name: "pagination window",
			spec: QuerySpec{
				Collection: "items",
				Offset:     40,
				Limit:      20,
			},
			want: map[string]string{"limit": "20", "offset": "40"},
		},
		{
			name: "nested select",
			spec: QuerySpec{
				Collection: "entitlements",
				Select:     []string{"item_id", "items(id,title_fa,creator_name)"},
			},
			want: map[string]string{"select": "item_id,items(id,title_fa,creator_name)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := tt.spec.Values()
			require.NoError(t, err)

			for k, v := range tt.want {
				assert.Equal(t, v, values.Get(k))
			}
		})
	}
}

func TestQuerySpec_Values_BadInFilter(t *testing.T) {
	spec := QuerySpec{
		Collection: "items",
		Filters:    []Filter{{Column: "id", Op: OpIn, Value: 42}},
	}
	_, err := spec.Values()
	assert.Error(t, err)
}

func TestQuerySpec_Values_ZeroLimitOmitsWindow(t *testing.T) {
	values, err := QuerySpec{Collection: "items", Offset: 10}.Values()
	require.NoError(t, err)
	assert.Empty(t, values.Get("limit"))
	assert.Empty(t, values.Get("offset"))
}
