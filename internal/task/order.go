package task

import "sort"

// Less reports whether a sorts before b in canonical order: incomplete
// before completed, then higher priority weight, then earlier due date.
func Less(a, b Task) bool {
	if a.Completed != b.Completed {
		return !a.Completed
	}
	if wa, wb := a.Priority.Weight(), b.Priority.Weight(); wa != wb {
		return wa > wb
	}
	return a.Date.Before(b.Date)
}

// SortCanonical sorts tasks in place into canonical order. Equal tasks keep
// their relative order.
func SortCanonical(tasks []Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return Less(tasks[i], tasks[j])
	})
}
