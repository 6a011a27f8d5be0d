package catalog

import (
	"context"
	"sync"
)

// FetchFunc loads one page: up to limit rows starting at offset.
type FetchFunc[T any] func(ctx context.Context, offset, limit int) ([]T, error)

// Paginator accumulates pages from an offset-windowed remote query. A page
// shorter than the page size means the dataset is exhausted. The busy flag
// is the only backpressure: while a fetch is in flight, further LoadMore
// calls are dropped rather than queued.
type Paginator[T any] struct {
	fetch    FetchFunc[T]
	pageSize int

	mu      sync.Mutex
	items   []T
	offset  int
	hasMore bool
	busy    bool
}

// NewPaginator creates a paginator over fetch with the given page size.
func NewPaginator[T any](fetch FetchFunc[T], pageSize int) *Paginator[T] {
	return &Paginator[T]{
		fetch:    fetch,
		pageSize: pageSize,
		hasMore:  true,
	}
}

// LoadMore fetches the next page. It reports whether a fetch was actually
// issued: false means a fetch was already in flight or the dataset is
// exhausted. A failed fetch leaves the window unchanged so the user can
// retry.
func (p *Paginator[T]) LoadMore(ctx context.Context) (bool, error) {
	p.mu.Lock()
	if p.busy || !p.hasMore {
		p.mu.Unlock()
		return false, nil
	}
	p.busy = true
	offset := p.offset
	p.mu.Unlock()

	page, err := p.fetch(ctx, offset, p.pageSize)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.busy = false

	if err != nil {
		return true, err
	}

	p.items = append(p.items, page...)
	p.offset += len(page)
	p.hasMore = len(page) == p.pageSize
	return true, nil
}

// Items returns a copy of everything loaded so far.
func (p *Paginator[T]) Items() []T {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]T(nil), p.items...)
}

// HasMore reports whether more pages are believed to exist.
func (p *Paginator[T]) HasMore() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hasMore
}

// Reset discards loaded items and starts over from offset zero.
func (p *Paginator[T]) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.items = nil
	p.offset = 0
	p.hasMore = true
}
