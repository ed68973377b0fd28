package task

import (
	"context"
	"sync"
)

// Deletion is a pending destructive action. Nothing changes until Confirm.
type Deletion struct {
	store *Store
	id    int64

	mu       sync.Mutex
	resolved bool
}

// Delete starts the removal of a task. The returned Deletion must be
// confirmed before the task is removed.
func (s *Store) Delete(id int64) *Deletion {
	return &Deletion{store: s, id: id}
}

// ID returns the id of the task being deleted.
func (d *Deletion) ID() int64 {
	return d.id
}

// Task returns the task pending deletion, if it still exists.
func (d *Deletion) Task() (Task, bool) {
	return d.store.Get(d.id)
}

// Confirm removes the task. A deletion resolves once; later calls are no-ops.
func (d *Deletion) Confirm(ctx context.Context) (bool, error) {
	d.mu.Lock()
	if d.resolved {
		d.mu.Unlock()
		return false, nil
	}
	d.resolved = true
	d.mu.Unlock()

	return d.store.Remove(ctx, d.id)
}

// Cancel abandons the deletion without touching the store.
func (d *Deletion) Cancel() {
	d.mu.Lock()
	d.resolved = true
	d.mu.Unlock()
}
