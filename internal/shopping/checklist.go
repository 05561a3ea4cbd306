package shopping

import (
	"context"
	"sync"

	"mealmind/internal/errs"
)

// ItemWriter is the durable-write side of the list store needed by the
// checklist.
type ItemWriter interface {
	SetItemChecked(ctx context.Context, listID, itemID string, checked bool) error
}

// ChecklistManager applies per-item checked-state changes with optimistic
// update and rollback. Toggles on different items are independent; commits
// for the same item serialize in call order.
type ChecklistManager struct {
	store ItemWriter

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewChecklistManager creates a manager committing through the given store.
func NewChecklistManager(store ItemWriter) *ChecklistManager {
	return &ChecklistManager{store: store, locks: make(map[string]*sync.Mutex)}
}

// Toggle is one pending checked-state change. The caller applies Optimistic
// immediately, then calls Commit; on commit failure it re-applies Rollback
// to undo the optimistic change.
type Toggle struct {
	Optimistic *ShoppingList
	Rollback   *ShoppingList
	Commit     func(ctx context.Context) error
}

// Toggle prepares a checked-state change for one item. The item must exist
// in the list. Neither the input list nor the returned lists are mutated by
// the manager; the caller owns the only mutable reference.
func (m *ChecklistManager) Toggle(list *ShoppingList, itemID string, checked bool) (*Toggle, error) {
	if list.Item(itemID) == nil {
		return nil, errs.Validation("item %s not found in list %s", itemID, list.ID)
	}

	rollback := list.Clone()
	optimistic := list.Clone()
	optimistic.Item(itemID).Checked = checked

	listID := list.ID
	lock := m.itemLock(listID + "/" + itemID)

	return &Toggle{
		Optimistic: optimistic,
		Rollback:   rollback,
		Commit: func(ctx context.Context) error {
			lock.Lock()
			defer lock.Unlock()
			if err := m.store.SetItemChecked(ctx, listID, itemID, checked); err != nil {
				return errs.TransientIO(err, "failed to commit checked state for item %s", itemID)
			}
			return nil
		},
	}, nil
}

func (m *ChecklistManager) itemLock(key string) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()
	if l, ok := m.locks[key]; ok {
		return l
	}
	l := &sync.Mutex{}
	m.locks[key] = l
	return l
}
