package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kozydot/nurse-charting-android/internal/model"
)

func ptr(v int64) *int64 { return &v }

func viewTask(id int64, due *int64, priority, status string, createdAt int64) model.Task {
	return model.Task{
		ID:          id,
		PatientID:   "p1",
		Description: "task",
		DueDateTime: due,
		Priority:    priority,
		Status:      status,
		CreatedAt:   createdAt,
	}
}

func TestDeriveFilterAll(t *testing.T) {
	tasks := []model.Task{
		viewTask(1, nil, "High", "Pending", 1),
		viewTask(2, nil, "Low", "Completed", 2),
	}

	view := DeriveTaskView(tasks, SortByCreatedOldest, FilterAll())
	require.Len(t, view, 2)
}

func TestDeriveFilterSpecificCaseInsensitive(t *testing.T) {
	tasks := []model.Task{
		viewTask(1, nil, "High", "pending", 1),
		viewTask(2, nil, "Low", "PENDING", 2),
		viewTask(3, nil, "Low", "Completed", 3),
	}

	view := DeriveTaskView(tasks, SortByCreatedOldest, FilterByStatus(model.StatusPending))
	require.Len(t, view, 2)
	assert.Equal(t, int64(1), view[0].ID)
	assert.Equal(t, int64(2), view[1].ID)
}

func TestDeriveDueDateAscNullsLast(t *testing.T) {
	tasks := []model.Task{
		viewTask(1, nil, "", "Pending", 1),
		viewTask(2, ptr(300), "", "Pending", 2),
		viewTask(3, ptr(100), "", "Pending", 3),
		viewTask(4, nil, "", "Pending", 4),
	}

	view := DeriveTaskView(tasks, SortByDueDateAsc, FilterAll())
	ids := []int64{view[0].ID, view[1].ID, view[2].ID, view[3].ID}
	assert.Equal(t, []int64{3, 2, 1, 4}, ids)
}

func TestDeriveDueDateDescNullsFirst(t *testing.T) {
	// Descending is the reversed comparator, which moves undated tasks to
	// the front.
	tasks := []model.Task{
		viewTask(1, ptr(100), "", "Pending", 1),
		viewTask(2, nil, "", "Pending", 2),
		viewTask(3, ptr(300), "", "Pending", 3),
	}

	view := DeriveTaskView(tasks, SortByDueDateDesc, FilterAll())
	ids := []int64{view[0].ID, view[1].ID, view[2].ID}
	assert.Equal(t, []int64{2, 3, 1}, ids)
}

func TestDerivePriorityHighToLow(t *testing.T) {
	tasks := []model.Task{
		viewTask(1, nil, "Low", "Pending", 1),
		viewTask(2, nil, "URGENT!!", "Pending", 2), // unrecognized
		viewTask(3, nil, "high", "Pending", 3),
		viewTask(4, nil, "Medium", "Pending", 4),
	}

	view := DeriveTaskView(tasks, SortByPriorityHighToLow, FilterAll())
	ids := []int64{view[0].ID, view[1].ID, view[2].ID, view[3].ID}
	assert.Equal(t, []int64{3, 4, 1, 2}, ids)
}

func TestDerivePriorityLowToHighKeepsUnknownLast(t *testing.T) {
	tasks := []model.Task{
		viewTask(1, nil, "mystery", "Pending", 1),
		viewTask(2, nil, "High", "Pending", 2),
		viewTask(3, nil, "Low", "Pending", 3),
		viewTask(4, nil, "Medium", "Pending", 4),
	}

	view := DeriveTaskView(tasks, SortByPriorityLowToHigh, FilterAll())
	ids := []int64{view[0].ID, view[1].ID, view[2].ID, view[3].ID}
	assert.Equal(t, []int64{3, 4, 2, 1}, ids)
}

func TestDeriveStatusSorts(t *testing.T) {
	tasks := []model.Task{
		viewTask(1, nil, "", "Pending", 1),
		viewTask(2, nil, "", "Cancelled", 2),
		viewTask(3, nil, "", "In Progress", 3),
	}

	asc := DeriveTaskView(tasks, SortByStatusAsc, FilterAll())
	assert.Equal(t, []int64{2, 3, 1}, []int64{asc[0].ID, asc[1].ID, asc[2].ID})

	desc := DeriveTaskView(tasks, SortByStatusDesc, FilterAll())
	assert.Equal(t, []int64{1, 3, 2}, []int64{desc[0].ID, desc[1].ID, desc[2].ID})
}

func TestDeriveCreatedAtSorts(t *testing.T) {
	tasks := []model.Task{
		viewTask(1, nil, "", "Pending", 50),
		viewTask(2, nil, "", "Pending", 10),
		viewTask(3, nil, "", "Pending", 90),
	}

	newest := DeriveTaskView(tasks, SortByCreatedNewest, FilterAll())
	assert.Equal(t, []int64{3, 1, 2}, []int64{newest[0].ID, newest[1].ID, newest[2].ID})

	oldest := DeriveTaskView(tasks, SortByCreatedOldest, FilterAll())
	assert.Equal(t, []int64{2, 1, 3}, []int64{oldest[0].ID, oldest[1].ID, oldest[2].ID})
}

func TestDeriveStableForEqualKeys(t *testing.T) {
	tasks := []model.Task{
		viewTask(1, ptr(100), "High", "Pending", 1),
		viewTask(2, ptr(100), "High", "Pending", 1),
		viewTask(3, ptr(100), "High", "Pending", 1),
	}

	for _, opt := range []SortOption{
		SortByDueDateAsc, SortByDueDateDesc,
		SortByPriorityHighToLow, SortByPriorityLowToHigh,
		SortByStatusAsc, SortByStatusDesc,
	} {
		view := DeriveTaskView(tasks, opt, FilterAll())
		require.Len(t, view, 3)
		assert.Equal(t, []int64{1, 2, 3}, []int64{view[0].ID, view[1].ID, view[2].ID},
			"sort option %d must keep incoming order for ties", opt)
	}
}

func TestDeriveDeterministic(t *testing.T) {
	tasks := []model.Task{
		viewTask(1, ptr(200), "Medium", "Pending", 5),
		viewTask(2, nil, "High", "Completed", 9),
		viewTask(3, ptr(100), "Low", "Pending", 1),
	}

	first := DeriveTaskView(tasks, SortByDueDateAsc, FilterAll())
	second := DeriveTaskView(tasks, SortByDueDateAsc, FilterAll())
	assert.Equal(t, first, second)
}

func TestDeriveDoesNotMutateInput(t *testing.T) {
	tasks := []model.Task{
		viewTask(2, ptr(200), "", "Pending", 2),
		viewTask(1, ptr(100), "", "Pending", 1),
	}

	_ = DeriveTaskView(tasks, SortByDueDateAsc, FilterAll())
	assert.Equal(t, int64(2), tasks[0].ID)
	assert.Equal(t, int64(1), tasks[1].ID)
}

func TestParseFilterStatus(t *testing.T) {
	assert.Equal(t, FilterAll(), ParseFilterStatus("All"))
	assert.Equal(t, FilterAll(), ParseFilterStatus(""))
	assert.Equal(t, FilterAll(), ParseFilterStatus("Nonsense"))
	assert.Equal(t, FilterByStatus(model.StatusInProgress), ParseFilterStatus("in progress"))
}

func TestFilterStatusEqualityByValue(t *testing.T) {
	// Equality is by tag and value, never by identity.
	assert.Equal(t, FilterByStatus(model.StatusPending), FilterByStatus(model.StatusPending))
	assert.NotEqual(t, FilterAll(), FilterByStatus(model.StatusPending))

	options := FilterOptions()
	require.Len(t, options, 5)
	assert.True(t, options[0] == FilterAll())
}

func TestFilterOptionsOrder(t *testing.T) {
	options := FilterOptions()
	labels := make([]string, len(options))
	for i, o := range options {
		labels[i] = o.String()
	}
	assert.Equal(t, []string{"All", "Pending", "In Progress", "Completed", "Cancelled"}, labels)
}
