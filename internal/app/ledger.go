package app

import (
	"context"
	"slices"
	"sync"

	"slimtrack/internal/domain"
)

// ledger is an append/delete collection shared by all accounts and filtered
// per account on read.
type ledger[T any] struct {
	mu    sync.Mutex
	load  func(context.Context) ([]T, error)
	save  func(context.Context, []T) error
	id    func(T) string
	owner func(T) string
}

func (l *ledger[T]) add(ctx context.Context, entry T) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	items, err := l.load(ctx)
	if err != nil {
		return err
	}
	return l.save(ctx, append(items, entry))
}

// remove deletes the entry with id if it belongs to accountID.
func (l *ledger[T]) remove(ctx context.Context, accountID, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	items, err := l.load(ctx)
	if err != nil {
		return err
	}
	idx := slices.IndexFunc(items, func(e T) bool { return l.id(e) == id })
	if idx < 0 {
		return domain.ErrEntryNotFound
	}
	if l.owner(items[idx]) != accountID {
		return domain.ErrNotOwner
	}
	return l.save(ctx, slices.Delete(items, idx, idx+1))
}

// list returns the entries owned by accountID sorted by cmp. Entries that
// compare equal keep their stored order.
func (l *ledger[T]) list(ctx context.Context, accountID string, cmp func(a, b T) int) ([]T, error) {
	l.mu.Lock()
	items, err := l.load(ctx)
	l.mu.Unlock()
	if err != nil {
		return nil, err
	}

	out := make([]T, 0, len(items))
	for _, e := range items {
		if l.owner(e) == accountID {
			out = append(out, e)
		}
	}
	slices.SortStableFunc(out, cmp)
	return out, nil
}
