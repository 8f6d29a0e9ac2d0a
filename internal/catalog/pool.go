// Package catalog owns the item catalog for a draft session: ingestion,
// availability queries, and taken-flag bookkeeping.
package catalog

import (
	"iter"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/mcdev12/draftroom/internal/models"
)

// Filter narrows an availability query. Zero values match everything.
type Filter struct {
	Position models.Position // exact position match
	Team     string          // exact team match, case-insensitive
	ByeWeek  int             // exact bye week match; 0 matches any
	Search   string          // case-insensitive substring of the name
}

// Pool holds the catalog and its taken flags. Items are stored in ingest
// order; rank ordering is precomputed once per ingestion so queries are
// stable across ties.
type Pool struct {
	items  []models.Item
	index  map[uuid.UUID]int
	byRank []int // item indexes sorted ascending by rank, ties in ingest order
}

func NewPool() *Pool {
	return &Pool{index: make(map[uuid.UUID]int)}
}

// Ingest replaces the entire pool and resets all taken flags.
func (p *Pool) Ingest(items []models.Item) error {
	if len(items) == 0 {
		return ErrEmptyCatalog
	}

	p.items = make([]models.Item, len(items))
	copy(p.items, items)
	p.index = make(map[uuid.UUID]int, len(items))
	for i := range p.items {
		p.items[i].Taken = false
		p.index[p.items[i].ID] = i
	}
	p.reindex()
	return nil
}

func (p *Pool) reindex() {
	p.byRank = make([]int, len(p.items))
	for i := range p.byRank {
		p.byRank[i] = i
	}
	sort.SliceStable(p.byRank, func(a, b int) bool {
		return p.items[p.byRank[a]].Rank < p.items[p.byRank[b]].Rank
	})
}

// Query returns a lazy, restartable sequence of available items matching the
// filter, ascending by rank.
func (p *Pool) Query(f Filter) iter.Seq[models.Item] {
	search := strings.ToLower(f.Search)
	team := strings.ToLower(f.Team)

	return func(yield func(models.Item) bool) {
		for _, idx := range p.byRank {
			item := p.items[idx]
			if item.Taken {
				continue
			}
			if f.Position != "" && item.Position != f.Position {
				continue
			}
			if team != "" && strings.ToLower(item.Team) != team {
				continue
			}
			if f.ByeWeek != 0 && item.ByeWeek != f.ByeWeek {
				continue
			}
			if search != "" && !strings.Contains(strings.ToLower(item.Name), search) {
				continue
			}
			if !yield(item) {
				return
			}
		}
	}
}

// Get returns the item with the given ID.
func (p *Pool) Get(id uuid.UUID) (models.Item, bool) {
	idx, ok := p.index[id]
	if !ok {
		return models.Item{}, false
	}
	return p.items[idx], true
}

// MarkTaken flags an item as drafted. It is deliberately not idempotent;
// the engine performs its own availability checks first.
func (p *Pool) MarkTaken(id uuid.UUID) error {
	idx, ok := p.index[id]
	if !ok {
		return ErrNotFound
	}
	if p.items[idx].Taken {
		return ErrAlreadyTaken
	}
	p.items[idx].Taken = true
	return nil
}

// MarkAvailable clears the taken flag, used when a pick is undone.
func (p *Pool) MarkAvailable(id uuid.UUID) error {
	idx, ok := p.index[id]
	if !ok {
		return ErrNotFound
	}
	p.items[idx].Taken = false
	return nil
}

// ClearTaken resets every taken flag, keeping the catalog loaded.
func (p *Pool) ClearTaken() {
	for i := range p.items {
		p.items[i].Taken = false
	}
}

// Len reports the catalog size.
func (p *Pool) Len() int { return len(p.items) }

// Snapshot returns a value copy of the catalog in ingest order.
func (p *Pool) Snapshot() []models.Item {
	out := make([]models.Item, len(p.items))
	copy(out, p.items)
	return out
}

// Restore replaces the pool contents from a snapshot, preserving taken
// flags as recorded.
func (p *Pool) Restore(items []models.Item) {
	p.items = make([]models.Item, len(items))
	copy(p.items, items)
	p.index = make(map[uuid.UUID]int, len(items))
	for i := range p.items {
		p.index[p.items[i].ID] = i
	}
	p.reindex()
}
