package service

import (
	"log"
	"sort"
	"strings"

	"github.com/kozydot/nurse-charting-android/internal/model"
)

// SortOption picks the ordering of the derived task list.
type SortOption int

const (
	SortByDueDateAsc SortOption = iota
	SortByDueDateDesc
	SortByPriorityHighToLow
	SortByPriorityLowToHigh
	SortByStatusAsc
	SortByStatusDesc
	SortByCreatedNewest
	SortByCreatedOldest
)

// FilterStatus restricts the derived list to one status, or passes everything
// through. Values compare by tag and status, never by identity.
type FilterStatus struct {
	specific bool
	status   string
}

// FilterAll passes every task through.
func FilterAll() FilterStatus { return FilterStatus{} }

// FilterByStatus keeps only tasks whose status matches, case-insensitively.
func FilterByStatus(status string) FilterStatus {
	return FilterStatus{specific: true, status: status}
}

// ParseFilterStatus maps a display string to a filter. "All", blank and
// unrecognized statuses all mean no filtering.
func ParseFilterStatus(s string) FilterStatus {
	if s == "" || strings.EqualFold(s, "All") {
		return FilterAll()
	}
	for _, known := range statusValues {
		if strings.EqualFold(s, known) {
			return FilterByStatus(known)
		}
	}
	return FilterAll()
}

var statusValues = []string{
	model.StatusPending,
	model.StatusInProgress,
	model.StatusCompleted,
	model.StatusCancelled,
}

// FilterOptions lists every selectable filter in display order, "All" first.
func FilterOptions() []FilterStatus {
	options := []FilterStatus{FilterAll()}
	for _, status := range statusValues {
		options = append(options, FilterByStatus(status))
	}
	return options
}

func (f FilterStatus) Matches(status string) bool {
	return !f.specific || strings.EqualFold(f.status, status)
}

func (f FilterStatus) String() string {
	if !f.specific {
		return "All"
	}
	return f.status
}

// priorityRank orders priorities for sorting; unrecognized strings rank last.
func priorityRank(priority string) int {
	switch strings.ToLower(priority) {
	case "high":
		return 0
	case "medium":
		return 1
	case "low":
		return 2
	default:
		return 3
	}
}

const unknownPriorityRank = 3

// DeriveTaskView computes the filtered, sorted view of a patient's tasks.
// It is a pure function of its inputs; tasks with equal sort keys keep their
// incoming order. A panic while deriving degrades to an empty list so one bad
// row cannot take the whole list view down.
func DeriveTaskView(tasks []model.Task, sortOpt SortOption, filter FilterStatus) (view []model.Task) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[error] derive task view: %v", r)
			view = []model.Task{}
		}
	}()

	view = make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if filter.Matches(t.Status) {
			view = append(view, t)
		}
	}

	var less func(a, b model.Task) bool
	switch sortOpt {
	case SortByDueDateAsc:
		less = lessByDueDate
	case SortByDueDateDesc:
		// Reverse comparator: tasks without a due date move to the front.
		less = func(a, b model.Task) bool { return lessByDueDate(b, a) }
	case SortByPriorityHighToLow:
		less = func(a, b model.Task) bool { return lessByPriority(a, b, false) }
	case SortByPriorityLowToHigh:
		less = func(a, b model.Task) bool { return lessByPriority(a, b, true) }
	case SortByStatusAsc:
		less = func(a, b model.Task) bool { return a.Status < b.Status }
	case SortByStatusDesc:
		less = func(a, b model.Task) bool { return b.Status < a.Status }
	case SortByCreatedNewest:
		less = func(a, b model.Task) bool { return a.CreatedAt > b.CreatedAt }
	case SortByCreatedOldest:
		less = func(a, b model.Task) bool { return a.CreatedAt < b.CreatedAt }
	default:
		less = lessByDueDate
	}

	sort.SliceStable(view, func(i, j int) bool { return less(view[i], view[j]) })
	return view
}

// lessByDueDate sorts ascending with missing due dates after every dated task.
func lessByDueDate(a, b model.Task) bool {
	switch {
	case a.DueDateTime == nil:
		return false
	case b.DueDateTime == nil:
		return true
	default:
		return *a.DueDateTime < *b.DueDateTime
	}
}

// lessByPriority sorts by priority rank. Unrecognized priorities stay last in
// both directions; a plain reverse comparator would move them to the front
// when sorting low to high.
func lessByPriority(a, b model.Task, lowFirst bool) bool {
	ra, rb := priorityRank(a.Priority), priorityRank(b.Priority)
	if ra == unknownPriorityRank || rb == unknownPriorityRank {
		if ra == rb {
			return false
		}
		return rb == unknownPriorityRank
	}
	if lowFirst {
		return ra > rb
	}
	return ra < rb
}
