package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/kozydot/nurse-charting-android/internal/model"
)

// PatientLister provides the roster for the shift report.
type PatientLister interface {
	List(ctx context.Context) ([]model.Patient, error)
}

// TaskLister provides each patient's tasks for the shift report.
type TaskLister interface {
	ListByPatient(ctx context.Context, patientID string) ([]model.Task, error)
}

// ReportService builds the periodic summary of open care tasks across the
// ward roster.
type ReportService struct {
	patients PatientLister
	tasks    TaskLister
}

func NewReportService(patients PatientLister, tasks TaskLister) *ReportService {
	return &ReportService{patients: patients, tasks: tasks}
}

// ShiftSummary renders every patient's open (not completed, not cancelled)
// tasks, overdue first, then tasks due within 48 hours, then the rest.
func (s *ReportService) ShiftSummary(ctx context.Context, now time.Time) (string, error) {
	patients, err := s.patients.List(ctx)
	if err != nil {
		return "", err
	}

	var builder strings.Builder
	builder.WriteString("Shift report\n")
	builder.WriteString(now.Format("Jan 02, 2006, 03:04 PM"))
	builder.WriteString("\n")

	reported := 0
	for _, patient := range patients {
		tasks, err := s.tasks.ListByPatient(ctx, patient.PatientID)
		if err != nil {
			return "", err
		}

		var open []model.Task
		for _, task := range tasks {
			if task.Active() {
				open = append(open, task)
			}
		}
		if len(open) == 0 {
			continue
		}
		sort.SliceStable(open, func(i, j int) bool { return lessByDueDate(open[i], open[j]) })

		builder.WriteString(fmt.Sprintf("\n%s (room %s)\n", patient.FullName, patient.RoomNumber))
		for _, task := range open {
			builder.WriteString(formatReportLine(task, now))
		}
		reported++
	}

	if reported == 0 {
		builder.WriteString("\nNo open tasks.")
	}
	return strings.TrimSpace(builder.String()), nil
}

func formatReportLine(task model.Task, now time.Time) string {
	var sb strings.Builder

	marker := "*"
	if task.DueDateTime != nil {
		due := time.UnixMilli(*task.DueDateTime)
		switch {
		case now.After(due):
			marker = "!"
		case due.Sub(now) <= 48*time.Hour:
			marker = "~"
		}
	}

	sb.WriteString(fmt.Sprintf("  [%s] %s", marker, strings.TrimSpace(task.Description)))
	if task.Priority != "" {
		sb.WriteString(fmt.Sprintf(" (%s)", task.Priority))
	}
	if task.DueDateTime != nil {
		due := time.UnixMilli(*task.DueDateTime)
		if now.After(due) {
			sb.WriteString(fmt.Sprintf(", due %s, overdue", due.Format("Jan 02, 03:04 PM")))
		} else {
			sb.WriteString(fmt.Sprintf(", due %s", due.Format("Jan 02, 03:04 PM")))
		}
	}
	sb.WriteByte('\n')
	return sb.String()
}
