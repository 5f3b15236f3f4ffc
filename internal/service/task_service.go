package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/kozydot/nurse-charting-android/internal/model"
)

// TaskStore is the persistence surface the task view needs.
type TaskStore interface {
	Insert(ctx context.Context, task *model.Task) error
	Update(ctx context.Context, task *model.Task) error
	Delete(ctx context.Context, task *model.Task) error
	// Watch streams task-list snapshots for one patient until the returned
	// stop function is called.
	Watch(patientID string) (<-chan []model.Task, func())
}

// ReminderQueue schedules and cancels uniquely named one-shot reminder jobs.
type ReminderQueue interface {
	ScheduleUnique(name string, payload ReminderPayload, delay time.Duration)
	CancelUnique(name string)
}

// TaskService holds the current patient selection plus the chosen sort and
// filter criteria, and keeps the derived task list current as any of them or
// the underlying rows change. Saves and completion toggles also drive the
// reminder schedule.
type TaskService struct {
	store TaskStore
	queue ReminderQueue
	now   func() time.Time

	mu        sync.Mutex
	patientID string
	raw       []model.Task
	sortOpt   SortOption
	filter    FilterStatus
	derived   []model.Task
	stopWatch func()

	selected   *model.Task
	dialogOpen bool

	updates     chan []model.Task
	saveResults chan bool
}

func NewTaskService(store TaskStore, queue ReminderQueue) *TaskService {
	return &TaskService{
		store:       store,
		queue:       queue,
		now:         time.Now,
		sortOpt:     SortByDueDateAsc,
		filter:      FilterAll(),
		derived:     []model.Task{},
		updates:     make(chan []model.Task, 1),
		saveResults: make(chan bool, 8),
	}
}

// SelectPatient switches the view to another patient's tasks, replacing any
// previous subscription. The literal string "null" (any case) and blank input
// both clear the selection; while unselected the derived list stays empty and
// no store query is issued.
func (s *TaskService) SelectPatient(patientID string) {
	patientID = strings.TrimSpace(patientID)
	if strings.EqualFold(patientID, "null") {
		log.Printf("[warn] patient selection received literal %q, treating as no selection", patientID)
		patientID = ""
	}

	s.mu.Lock()
	if patientID == s.patientID {
		s.mu.Unlock()
		return
	}
	if s.stopWatch != nil {
		s.stopWatch()
		s.stopWatch = nil
	}
	s.patientID = patientID
	s.raw = nil
	if patientID == "" {
		s.recomputeLocked()
		s.mu.Unlock()
		return
	}
	ch, stop := s.store.Watch(patientID)
	s.stopWatch = stop
	s.recomputeLocked()
	s.mu.Unlock()

	go s.consume(patientID, ch)
}

// consume forwards store snapshots into the view. Snapshots from a stream
// that is no longer the current selection are dropped.
func (s *TaskService) consume(patientID string, ch <-chan []model.Task) {
	for tasks := range ch {
		s.mu.Lock()
		if s.patientID != patientID {
			s.mu.Unlock()
			return
		}
		s.raw = tasks
		s.recomputeLocked()
		s.mu.Unlock()
	}
}

// SelectedPatientID returns the current selection, or "" when unset.
func (s *TaskService) SelectedPatientID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.patientID
}

func (s *TaskService) SetSortOption(opt SortOption) {
	s.mu.Lock()
	s.sortOpt = opt
	s.recomputeLocked()
	s.mu.Unlock()
}

func (s *TaskService) SetFilterStatus(filter FilterStatus) {
	s.mu.Lock()
	s.filter = filter
	s.recomputeLocked()
	s.mu.Unlock()
}

func (s *TaskService) SortOption() SortOption {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortOpt
}

func (s *TaskService) FilterStatus() FilterStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

// Tasks returns the current derived (filtered, sorted) list.
func (s *TaskService) Tasks() []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.derived
}

// Updates streams derived-list snapshots. The stream is conflated: a slow
// reader only ever sees the latest state.
func (s *TaskService) Updates() <-chan []model.Task {
	return s.updates
}

// SaveResults reports success or failure of each save for UI feedback.
func (s *TaskService) SaveResults() <-chan bool {
	return s.saveResults
}

func (s *TaskService) recomputeLocked() {
	s.derived = DeriveTaskView(s.raw, s.sortOpt, s.filter)
	pushLatest(s.updates, s.derived)
}

// -- Add/edit dialog state --

// BeginAddTask opens the task dialog with no task selected.
func (s *TaskService) BeginAddTask() {
	s.mu.Lock()
	s.selected = nil
	s.dialogOpen = true
	s.mu.Unlock()
}

// EditTask opens the task dialog for an existing task.
func (s *TaskService) EditTask(task model.Task) {
	s.mu.Lock()
	s.selected = &task
	s.dialogOpen = true
	s.mu.Unlock()
}

// DismissTaskDialog closes the dialog and clears the selection.
func (s *TaskService) DismissTaskDialog() {
	s.mu.Lock()
	s.selected = nil
	s.dialogOpen = false
	s.mu.Unlock()
}

func (s *TaskService) SelectedTask() *model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == nil {
		return nil
	}
	copied := *s.selected
	return &copied
}

func (s *TaskService) DialogOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dialogOpen
}

// -- Task mutations --

// SaveTask persists the task (insert when ID is 0, update otherwise),
// reconciles its reminder and closes the dialog. The outcome is also emitted
// on SaveResults.
func (s *TaskService) SaveTask(ctx context.Context, task model.Task) error {
	if strings.TrimSpace(task.Description) == "" {
		s.emitSaveResult(false)
		return fmt.Errorf("description is required")
	}

	now := s.now().UnixMilli()
	if task.CreatedAt == 0 {
		task.CreatedAt = now
	}
	// completedAt mirrors the Completed status on every save path.
	if task.Status == model.StatusCompleted {
		if task.CompletedAt == nil {
			task.CompletedAt = &now
		}
	} else {
		task.CompletedAt = nil
	}

	var err error
	if task.ID == 0 {
		err = s.store.Insert(ctx, &task)
	} else {
		err = s.store.Update(ctx, &task)
	}
	if err != nil {
		log.Printf("[error] save task for patient %s: %v", task.PatientID, err)
		s.emitSaveResult(false)
		return err
	}

	s.applyReminder(task)
	s.DismissTaskDialog()
	s.emitSaveResult(true)
	return nil
}

// ToggleCompleted flips a task in or out of Completed. Completed and
// Cancelled tasks both return to Pending; anything else becomes Completed.
func (s *TaskService) ToggleCompleted(ctx context.Context, task model.Task) error {
	now := s.now().UnixMilli()
	updated := task
	switch task.Status {
	case model.StatusCompleted:
		updated.Status = model.StatusPending
		updated.CompletedAt = nil
	case model.StatusCancelled:
		// Reactivation, not completion.
		updated.Status = model.StatusPending
		updated.CompletedAt = nil
	default:
		updated.Status = model.StatusCompleted
		updated.CompletedAt = &now
	}

	if err := s.store.Update(ctx, &updated); err != nil {
		log.Printf("[error] toggle task %d: %v", task.ID, err)
		return err
	}
	s.applyReminder(updated)
	return nil
}

// DeleteTask removes the task and cancels its reminder job. The cancel runs
// even when the delete fails; a stale reminder for a task the user tried to
// remove helps no one.
func (s *TaskService) DeleteTask(ctx context.Context, task model.Task) error {
	err := s.store.Delete(ctx, &task)
	s.queue.CancelUnique(ReminderJobName(task.ID))
	if err != nil {
		log.Printf("[error] delete task %d: %v", task.ID, err)
		return err
	}
	return nil
}

// applyReminder schedules the task's reminder when one is set and the task is
// still active, and cancels any existing job otherwise.
func (s *TaskService) applyReminder(task model.Task) {
	if task.ReminderDateTime != nil && task.Active() {
		s.scheduleReminder(task)
	} else {
		s.queue.CancelUnique(ReminderJobName(task.ID))
	}
}

func (s *TaskService) scheduleReminder(task model.Task) {
	delay := time.Duration(*task.ReminderDateTime-s.now().UnixMilli()) * time.Millisecond
	if delay <= 0 {
		// A reminder in the past is never fired retroactively.
		log.Printf("[info] task %d reminder time is in the past, not scheduling", task.ID)
		return
	}
	s.queue.ScheduleUnique(ReminderJobName(task.ID), ReminderPayload{
		TaskID:      task.ID,
		Description: task.Description,
	}, delay)
}

func (s *TaskService) emitSaveResult(ok bool) {
	select {
	case s.saveResults <- ok:
	default:
		// Drop the oldest result rather than block the save path.
		select {
		case <-s.saveResults:
		default:
		}
		select {
		case s.saveResults <- ok:
		default:
		}
	}
}

// Close stops the active store subscription, if any.
func (s *TaskService) Close() {
	s.mu.Lock()
	if s.stopWatch != nil {
		s.stopWatch()
		s.stopWatch = nil
	}
	s.patientID = ""
	s.mu.Unlock()
}

// pushLatest replaces whatever is buffered on a conflated channel.
func pushLatest[T any](ch chan T, v T) {
	select {
	case ch <- v:
	default:
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- v:
		default:
		}
	}
}
