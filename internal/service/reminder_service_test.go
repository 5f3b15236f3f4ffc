package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kozydot/nurse-charting-android/internal/model"
)

type fakeTaskFinder struct {
	mu      sync.Mutex
	tasks   map[int64]model.Task
	pending []model.Task
}

func (f *fakeTaskFinder) FindByID(_ context.Context, taskID int64) (*model.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	task, ok := f.tasks[taskID]
	if !ok {
		return nil, fmt.Errorf("task %d not found", taskID)
	}
	return &task, nil
}

func (f *fakeTaskFinder) PendingWithReminders(_ context.Context) ([]model.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pending, nil
}

type recordingNotifier struct {
	mu     sync.Mutex
	titles []string
	bodies []string
}

func (n *recordingNotifier) Notify(_ context.Context, title, body string) error {
	n.mu.Lock()
	n.titles = append(n.titles, title)
	n.bodies = append(n.bodies, body)
	n.mu.Unlock()
	return nil
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.titles)
}

func (n *recordingNotifier) lastTitle() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.titles) == 0 {
		return ""
	}
	return n.titles[len(n.titles)-1]
}

func TestReminderJobName(t *testing.T) {
	assert.Equal(t, "task_reminder_work_42", ReminderJobName(42))
	// Deterministic: the same id always maps to the same job.
	assert.Equal(t, ReminderJobName(7), ReminderJobName(7))
}

func TestReminderFiresNotification(t *testing.T) {
	finder := &fakeTaskFinder{tasks: map[int64]model.Task{
		4: {ID: 4, PatientID: "p1", Description: "Check IV line", Status: model.StatusPending},
	}}
	sink := &recordingNotifier{}
	svc := NewReminderService(finder, sink)
	defer svc.Stop()

	svc.ScheduleUnique(ReminderJobName(4), ReminderPayload{TaskID: 4, Description: "Check IV line"}, 10*time.Millisecond)

	require.Eventually(t, func() bool { return sink.count() == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, "Task Due: Check IV line", sink.lastTitle())
}

func TestReminderMissingTaskFailsWithoutNotifying(t *testing.T) {
	finder := &fakeTaskFinder{tasks: map[int64]model.Task{}}
	sink := &recordingNotifier{}
	svc := NewReminderService(finder, sink)
	defer svc.Stop()

	svc.ScheduleUnique(ReminderJobName(99), ReminderPayload{TaskID: 99, Description: "gone"}, 10*time.Millisecond)

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, 0, sink.count())
}

func TestScheduleUniqueReplaces(t *testing.T) {
	finder := &fakeTaskFinder{tasks: map[int64]model.Task{
		1: {ID: 1, Description: "latest", Status: model.StatusPending},
	}}
	sink := &recordingNotifier{}
	svc := NewReminderService(finder, sink)
	defer svc.Stop()

	name := ReminderJobName(1)
	svc.ScheduleUnique(name, ReminderPayload{TaskID: 1, Description: "first"}, 20*time.Millisecond)
	svc.ScheduleUnique(name, ReminderPayload{TaskID: 1, Description: "latest"}, 40*time.Millisecond)

	svc.mu.Lock()
	assert.Len(t, svc.timers, 1)
	svc.mu.Unlock()

	require.Eventually(t, func() bool { return sink.count() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, 1, sink.count(), "replaced job must fire exactly once")
}

func TestCancelUnique(t *testing.T) {
	finder := &fakeTaskFinder{tasks: map[int64]model.Task{
		1: {ID: 1, Description: "x", Status: model.StatusPending},
	}}
	sink := &recordingNotifier{}
	svc := NewReminderService(finder, sink)
	defer svc.Stop()

	name := ReminderJobName(1)
	svc.ScheduleUnique(name, ReminderPayload{TaskID: 1, Description: "x"}, 20*time.Millisecond)
	svc.CancelUnique(name)

	// Cancelling an unknown name is a no-op.
	svc.CancelUnique(ReminderJobName(777))

	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, 0, sink.count())
}

func TestRestorePendingSchedulesOnlyFutureReminders(t *testing.T) {
	now := time.Now()
	future := now.Add(time.Hour).UnixMilli()
	past := now.Add(-time.Hour).UnixMilli()

	finder := &fakeTaskFinder{
		tasks: map[int64]model.Task{},
		pending: []model.Task{
			{ID: 1, Description: "future", Status: model.StatusPending, ReminderDateTime: &future},
			{ID: 2, Description: "past", Status: model.StatusPending, ReminderDateTime: &past},
			{ID: 3, Description: "no reminder", Status: model.StatusPending},
		},
	}
	sink := &recordingNotifier{}
	svc := NewReminderService(finder, sink)
	defer svc.Stop()

	require.NoError(t, svc.RestorePending(context.Background(), now))

	svc.mu.Lock()
	defer svc.mu.Unlock()
	require.Len(t, svc.timers, 1)
	_, ok := svc.timers[ReminderJobName(1)]
	assert.True(t, ok)
}

func TestStopPreventsFurtherScheduling(t *testing.T) {
	finder := &fakeTaskFinder{tasks: map[int64]model.Task{
		1: {ID: 1, Description: "x", Status: model.StatusPending},
	}}
	sink := &recordingNotifier{}
	svc := NewReminderService(finder, sink)

	svc.ScheduleUnique(ReminderJobName(1), ReminderPayload{TaskID: 1, Description: "x"}, 10*time.Millisecond)
	svc.Stop()
	svc.ScheduleUnique(ReminderJobName(2), ReminderPayload{TaskID: 2, Description: "y"}, 10*time.Millisecond)

	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, 0, sink.count())

	svc.mu.Lock()
	defer svc.mu.Unlock()
	assert.Empty(t, svc.timers)
}
