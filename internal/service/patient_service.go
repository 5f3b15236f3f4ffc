package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/kozydot/nurse-charting-android/internal/model"
	"github.com/kozydot/nurse-charting-android/internal/repository"
)

// PatientService manages the ward roster.
type PatientService struct {
	repo *repository.PatientRepository
}

func NewPatientService(repo *repository.PatientRepository) *PatientService {
	return &PatientService{repo: repo}
}

// CreatePatient adds a roster entry. A blank patient id gets a generated one.
func (s *PatientService) CreatePatient(ctx context.Context, patient model.Patient) (*model.Patient, error) {
	if strings.TrimSpace(patient.FullName) == "" {
		return nil, fmt.Errorf("full name is required")
	}
	patient.PatientID = strings.TrimSpace(patient.PatientID)
	if patient.PatientID == "" {
		patient.PatientID = uuid.NewString()
	}
	if err := s.repo.Insert(ctx, &patient); err != nil {
		return nil, err
	}
	return &patient, nil
}

func (s *PatientService) UpdatePatient(ctx context.Context, patient model.Patient) error {
	if strings.TrimSpace(patient.PatientID) == "" {
		return fmt.Errorf("patient id is required")
	}
	if strings.TrimSpace(patient.FullName) == "" {
		return fmt.Errorf("full name is required")
	}
	return s.repo.Update(ctx, &patient)
}

// DeletePatient removes the patient; the store cascades the delete to every
// charting record for that patient.
func (s *PatientService) DeletePatient(ctx context.Context, patient model.Patient) error {
	return s.repo.Delete(ctx, &patient)
}

func (s *PatientService) Patient(ctx context.Context, patientID string) (*model.Patient, error) {
	return s.repo.FindByID(ctx, patientID)
}

func (s *PatientService) Patients(ctx context.Context) ([]model.Patient, error) {
	return s.repo.List(ctx)
}

func (s *PatientService) WatchRoster() (<-chan []model.Patient, func()) {
	return s.repo.Watch()
}
