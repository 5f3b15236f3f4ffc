package service

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/kozydot/nurse-charting-android/internal/model"
)

// ReminderPayload is what a fired reminder job carries.
type ReminderPayload struct {
	TaskID      int64
	Description string
}

// TaskFinder resolves tasks when reminders fire or are restored.
type TaskFinder interface {
	FindByID(ctx context.Context, taskID int64) (*model.Task, error)
	PendingWithReminders(ctx context.Context) ([]model.Task, error)
}

// Notifier delivers a user-visible notification.
type Notifier interface {
	Notify(ctx context.Context, title, body string) error
}

// ReminderJobName derives the unique job name for a task's reminder. Deriving
// it from the id alone keeps re-scheduling and cancellation idempotent per
// task.
func ReminderJobName(taskID int64) string {
	return fmt.Sprintf("task_reminder_work_%d", taskID)
}

// ReminderService keeps at most one armed timer per job name and turns
// expired timers into notifications. Scheduling an existing name replaces the
// previous timer.
type ReminderService struct {
	tasks    TaskFinder
	notifier Notifier

	mu      sync.Mutex
	timers  map[string]*time.Timer
	stopped bool
}

func NewReminderService(tasks TaskFinder, notifier Notifier) *ReminderService {
	return &ReminderService{
		tasks:    tasks,
		notifier: notifier,
		timers:   make(map[string]*time.Timer),
	}
}

// ScheduleUnique arms a one-shot job firing after delay. An existing job with
// the same name is replaced.
func (s *ReminderService) ScheduleUnique(name string, payload ReminderPayload, delay time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	if t, ok := s.timers[name]; ok {
		t.Stop()
	}
	s.timers[name] = time.AfterFunc(delay, func() { s.fire(name, payload) })
	log.Printf("[info] scheduled reminder %s in %s", name, delay)
}

// CancelUnique disarms the named job. Cancelling a name that was never
// scheduled is a no-op.
func (s *ReminderService) CancelUnique(name string) {
	s.mu.Lock()
	if t, ok := s.timers[name]; ok {
		t.Stop()
		delete(s.timers, name)
	}
	s.mu.Unlock()
}

func (s *ReminderService) fire(name string, payload ReminderPayload) {
	s.mu.Lock()
	delete(s.timers, name)
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// The job fails without retry when the task no longer resolves.
	task, err := s.tasks.FindByID(ctx, payload.TaskID)
	if err != nil {
		log.Printf("[error] reminder %s: task %d lookup failed: %v", name, payload.TaskID, err)
		return
	}

	title := "Task Due: " + task.Description
	body := fmt.Sprintf("Task %d is due soon. Please check the chart.", task.ID)
	if err := s.notifier.Notify(ctx, title, body); err != nil {
		log.Printf("[error] reminder %s: notify: %v", name, err)
	}
}

// RestorePending re-arms a timer for every stored task that still has an
// active reminder in the future. In-process timers do not survive a restart,
// so the host calls this once at startup.
func (s *ReminderService) RestorePending(ctx context.Context, now time.Time) error {
	tasks, err := s.tasks.PendingWithReminders(ctx)
	if err != nil {
		return fmt.Errorf("restore reminders: %w", err)
	}

	restored := 0
	for _, task := range tasks {
		if task.ReminderDateTime == nil {
			continue
		}
		delay := time.Duration(*task.ReminderDateTime-now.UnixMilli()) * time.Millisecond
		if delay <= 0 {
			continue
		}
		s.ScheduleUnique(ReminderJobName(task.ID), ReminderPayload{
			TaskID:      task.ID,
			Description: task.Description,
		}, delay)
		restored++
	}
	if restored > 0 {
		log.Printf("[info] restored %d pending reminders", restored)
	}
	return nil
}

// Stop disarms every timer and refuses further scheduling.
func (s *ReminderService) Stop() {
	s.mu.Lock()
	s.stopped = true
	for name, t := range s.timers {
		t.Stop()
		delete(s.timers, name)
	}
	s.mu.Unlock()
}
