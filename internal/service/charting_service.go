package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/kozydot/nurse-charting-android/internal/model"
	"github.com/kozydot/nurse-charting-android/internal/repository"
)

// ChartingService validates and records the non-task chart entries: vital
// signs, administered medications, nurse notes and intake/output entries.
// Validation failures are returned to the caller and never persisted.
type ChartingService struct {
	repo *repository.ChartingRepository
}

func NewChartingService(repo *repository.ChartingRepository) *ChartingService {
	return &ChartingService{repo: repo}
}

func (s *ChartingService) AddVitalSign(ctx context.Context, v model.VitalSign) error {
	if strings.TrimSpace(v.PatientID) == "" {
		return fmt.Errorf("patient id is required")
	}
	if v.Timestamp <= 0 {
		return fmt.Errorf("timestamp is required")
	}
	return s.repo.InsertVitalSign(ctx, &v)
}

func (s *ChartingService) DeleteVitalSign(ctx context.Context, v model.VitalSign) error {
	return s.repo.DeleteVitalSign(ctx, &v)
}

func (s *ChartingService) VitalSigns(ctx context.Context, patientID string) ([]model.VitalSign, error) {
	return s.repo.ListVitalSigns(ctx, patientID)
}

func (s *ChartingService) WatchVitalSigns(patientID string) (<-chan []model.VitalSign, func()) {
	return s.repo.WatchVitalSigns(patientID)
}

func (s *ChartingService) AddMedication(ctx context.Context, m model.MedicationAdministered) error {
	if strings.TrimSpace(m.PatientID) == "" {
		return fmt.Errorf("patient id is required")
	}
	if m.Timestamp <= 0 {
		return fmt.Errorf("timestamp is required")
	}
	if strings.TrimSpace(m.MedicationName) == "" {
		return fmt.Errorf("medication name is required")
	}
	return s.repo.InsertMedication(ctx, &m)
}

func (s *ChartingService) DeleteMedication(ctx context.Context, m model.MedicationAdministered) error {
	return s.repo.DeleteMedication(ctx, &m)
}

func (s *ChartingService) Medications(ctx context.Context, patientID string) ([]model.MedicationAdministered, error) {
	return s.repo.ListMedications(ctx, patientID)
}

func (s *ChartingService) WatchMedications(patientID string) (<-chan []model.MedicationAdministered, func()) {
	return s.repo.WatchMedications(patientID)
}

func (s *ChartingService) AddNurseNote(ctx context.Context, n model.NurseNote) error {
	if strings.TrimSpace(n.PatientID) == "" {
		return fmt.Errorf("patient id is required")
	}
	if n.Timestamp <= 0 {
		return fmt.Errorf("timestamp is required")
	}
	if strings.TrimSpace(n.NoteText) == "" {
		return fmt.Errorf("note text is required")
	}
	return s.repo.InsertNurseNote(ctx, &n)
}

func (s *ChartingService) DeleteNurseNote(ctx context.Context, n model.NurseNote) error {
	return s.repo.DeleteNurseNote(ctx, &n)
}

func (s *ChartingService) NurseNotes(ctx context.Context, patientID string) ([]model.NurseNote, error) {
	return s.repo.ListNurseNotes(ctx, patientID)
}

func (s *ChartingService) WatchNurseNotes(patientID string) (<-chan []model.NurseNote, func()) {
	return s.repo.WatchNurseNotes(patientID)
}

func (s *ChartingService) AddIOEntry(ctx context.Context, e model.InputOutputEntry) error {
	if strings.TrimSpace(e.PatientID) == "" {
		return fmt.Errorf("patient id is required")
	}
	if e.Timestamp <= 0 {
		return fmt.Errorf("timestamp is required")
	}
	if strings.TrimSpace(e.Type) == "" {
		return fmt.Errorf("entry type is required")
	}
	return s.repo.InsertIOEntry(ctx, &e)
}

func (s *ChartingService) DeleteIOEntry(ctx context.Context, e model.InputOutputEntry) error {
	return s.repo.DeleteIOEntry(ctx, &e)
}

func (s *ChartingService) IOEntries(ctx context.Context, patientID string) ([]model.InputOutputEntry, error) {
	return s.repo.ListIOEntries(ctx, patientID)
}

func (s *ChartingService) WatchIOEntries(patientID string) (<-chan []model.InputOutputEntry, func()) {
	return s.repo.WatchIOEntries(patientID)
}
