package repository

import (
	"context"
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/kozydot/nurse-charting-android/internal/model"
)

// rosterKey is the hub key for the whole-roster stream; patient listings are
// not scoped to a parent entity the way charting rows are.
const rosterKey = ""

// PatientRepository manages the ward roster.
type PatientRepository struct {
	db  *gorm.DB
	hub *hub[model.Patient]
}

func NewPatientRepository(db *gorm.DB) *PatientRepository {
	return &PatientRepository{db: db, hub: newHub[model.Patient]()}
}

func (r *PatientRepository) Insert(ctx context.Context, patient *model.Patient) error {
	if err := r.db.WithContext(ctx).Create(patient).Error; err != nil {
		return fmt.Errorf("insert patient: %w", err)
	}
	r.notify()
	return nil
}

func (r *PatientRepository) Update(ctx context.Context, patient *model.Patient) error {
	if err := r.db.WithContext(ctx).Save(patient).Error; err != nil {
		return fmt.Errorf("update patient: %w", err)
	}
	r.notify()
	return nil
}

// Delete removes the patient row; the schema cascades the delete to every
// charting record referencing it.
func (r *PatientRepository) Delete(ctx context.Context, patient *model.Patient) error {
	if err := r.db.WithContext(ctx).
		Where("patientId = ?", patient.PatientID).
		Delete(&model.Patient{}).Error; err != nil {
		return fmt.Errorf("delete patient: %w", err)
	}
	r.notify()
	return nil
}

func (r *PatientRepository) FindByID(ctx context.Context, patientID string) (*model.Patient, error) {
	var patient model.Patient
	if err := r.db.WithContext(ctx).
		Where("patientId = ?", patientID).
		First(&patient).Error; err != nil {
		return nil, fmt.Errorf("find patient %s: %w", patientID, err)
	}
	return &patient, nil
}

func (r *PatientRepository) List(ctx context.Context) ([]model.Patient, error) {
	var patients []model.Patient
	if err := r.db.WithContext(ctx).Order("fullName ASC").Find(&patients).Error; err != nil {
		return nil, fmt.Errorf("list patients: %w", err)
	}
	return patients, nil
}

// Watch streams roster snapshots, starting with the current contents.
func (r *PatientRepository) Watch() (<-chan []model.Patient, func()) {
	sub := r.hub.subscribe(rosterKey)
	if patients, err := r.List(context.Background()); err == nil {
		sub.push(patients)
	} else {
		log.Printf("[warn] initial roster snapshot: %v", err)
	}
	return sub.ch, sub.close
}

func (r *PatientRepository) notify() {
	patients, err := r.List(context.Background())
	if err != nil {
		log.Printf("[warn] roster snapshot: %v", err)
		return
	}
	r.hub.publish(rosterKey, patients)
}
