// Package task implements the task collection and its persistence.
//
// # Store
//
// Store is the single owner of the collection. It is constructed around a
// kv.Storage and exposes Load and Save as its only I/O boundary:
//
//   - Load reads the "dailyTasks" key; a missing key is an empty collection.
//   - Save orders the collection canonically and writes it back whole.
//
// Every mutation (Add, ToggleComplete, Update, Remove, ClearCompleted) goes
// through Save, so the persisted collection is always in canonical order.
//
// # Canonical Order
//
// Incomplete tasks come before completed ones; within equal completion,
// higher priority weight (high=3, medium=2, low=1, other=0) comes first;
// ties are broken by earlier due date.
//
// # Deletion
//
// Removal is a two-step action. Delete returns a pending Deletion and nothing
// changes until it is confirmed:
//
//	d := store.Delete(id)
//	if userSaidYes {
//		_, err = d.Confirm(ctx)
//	} else {
//		d.Cancel()
//	}
//
// # File Format
//
// The key holds a JSON array; timestamps are ISO-8601 strings in UTC:
//
//	[{"id":1760860800000,"text":"Buy milk","date":"2026-10-19T09:00:00.000Z",
//	  "completed":false,"createdAt":"2026-10-19T07:58:11.000Z",
//	  "priority":"high","notes":"","category":"general"}]
package task
