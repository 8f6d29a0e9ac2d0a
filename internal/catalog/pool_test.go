package catalog

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/mcdev12/draftroom/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPool(t *testing.T) *Pool {
	t.Helper()
	items, _, err := ParseCSV(strings.NewReader(sampleCatalog))
	require.NoError(t, err)

	pool := NewPool()
	require.NoError(t, pool.Ingest(items))
	return pool
}

func collect(pool *Pool, f Filter) []models.Item {
	var out []models.Item
	for item := range pool.Query(f) {
		out = append(out, item)
	}
	return out
}

func TestPool_QueryOrdersByRank(t *testing.T) {
	pool := testPool(t)

	items := collect(pool, Filter{})
	require.Len(t, items, 4)
	for i := 1; i < len(items); i++ {
		assert.LessOrEqual(t, items[i-1].Rank, items[i].Rank)
	}
}

func TestPool_QueryFilters(t *testing.T) {
	pool := testPool(t)

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"by position", Filter{Position: models.PositionRB}, []string{"Christian McCaffrey"}},
		{"by team case-insensitive", Filter{Team: "kc"}, []string{"Travis Kelce"}},
		{"by bye week", Filter{ByeWeek: 12}, []string{"Josh Allen"}},
		{"by name substring", Filter{Search: "jeffer"}, []string{"Justin Jefferson"}},
		{"no match", Filter{Search: "nobody"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var names []string
			for item := range pool.Query(tt.filter) {
				names = append(names, item.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestPool_QueryExcludesTakenAndIsRestartable(t *testing.T) {
	pool := testPool(t)
	seq := pool.Query(Filter{})

	// Early break must not poison later iterations.
	for range seq {
		break
	}

	all := collect(pool, Filter{})
	require.Len(t, all, 4)

	require.NoError(t, pool.MarkTaken(all[0].ID))

	// The same sequence value re-runs against current pool state.
	var names []string
	for item := range seq {
		names = append(names, item.Name)
	}
	assert.Len(t, names, 3)
	assert.NotContains(t, names, all[0].Name)
}

func TestPool_MarkTaken(t *testing.T) {
	pool := testPool(t)
	items := collect(pool, Filter{})
	id := items[0].ID

	require.NoError(t, pool.MarkTaken(id))

	err := pool.MarkTaken(id)
	assert.ErrorIs(t, err, ErrAlreadyTaken)

	err = pool.MarkTaken(uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, pool.MarkAvailable(id))
	item, ok := pool.Get(id)
	require.True(t, ok)
	assert.False(t, item.Taken)

	assert.ErrorIs(t, pool.MarkAvailable(uuid.New()), ErrNotFound)
}

func TestPool_IngestReplacesAndResetsTakenFlags(t *testing.T) {
	pool := testPool(t)
	items := collect(pool, Filter{})
	require.NoError(t, pool.MarkTaken(items[0].ID))

	snapshot := pool.Snapshot()
	require.NoError(t, pool.Ingest(snapshot))

	assert.Len(t, collect(pool, Filter{}), 4, "re-ingesting clears taken flags")
	assert.ErrorIs(t, pool.Ingest(nil), ErrEmptyCatalog)
}
