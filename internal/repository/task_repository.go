package repository

import (
	"context"
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/kozydot/nurse-charting-android/internal/model"
)

// TaskRepository handles CRUD for care tasks and pushes a fresh snapshot of
// the owning patient's task list to watchers after every mutation.
type TaskRepository struct {
	db  *gorm.DB
	hub *hub[model.Task]
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db, hub: newHub[model.Task]()}
}

// Insert persists a new task; the store-assigned ID is written back into task.
func (r *TaskRepository) Insert(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	r.notify(task.PatientID)
	return nil
}

// Update replaces the whole row.
func (r *TaskRepository) Update(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Save(task).Error; err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	r.notify(task.PatientID)
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Delete(&model.Task{}, task.ID).Error; err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	r.notify(task.PatientID)
	return nil
}

func (r *TaskRepository) FindByID(ctx context.Context, taskID int64) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).First(&task, taskID).Error; err != nil {
		return nil, fmt.Errorf("find task %d: %w", taskID, err)
	}
	return &task, nil
}

func (r *TaskRepository) ListByPatient(ctx context.Context, patientID string) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).Where("patientId = ?", patientID).
		Order("due_date_time ASC, priority DESC").
		Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// PendingWithReminders returns every task that still has a reminder set and
// has not been completed or cancelled. Used to rebuild the reminder timers
// after a restart.
func (r *TaskRepository) PendingWithReminders(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).
		Where("reminder_date_time IS NOT NULL AND status != ? AND status != ?",
			model.StatusCompleted, model.StatusCancelled).
		Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list pending reminders: %w", err)
	}
	return tasks, nil
}

// Watch streams task-list snapshots for one patient, starting with the
// current contents. The returned stop function ends the stream.
func (r *TaskRepository) Watch(patientID string) (<-chan []model.Task, func()) {
	sub := r.hub.subscribe(patientID)
	if tasks, err := r.ListByPatient(context.Background(), patientID); err == nil {
		sub.push(tasks)
	} else {
		log.Printf("[warn] initial task snapshot for %s: %v", patientID, err)
	}
	return sub.ch, sub.close
}

func (r *TaskRepository) notify(patientID string) {
	tasks, err := r.ListByPatient(context.Background(), patientID)
	if err != nil {
		log.Printf("[warn] task snapshot for %s: %v", patientID, err)
		return
	}
	r.hub.publish(patientID, tasks)
}
