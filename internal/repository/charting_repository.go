package repository

import (
	"context"
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/kozydot/nurse-charting-android/internal/model"
)

// ChartingRepository covers the non-task chart records: vital signs,
// administered medications, nurse notes and intake/output entries. Each set
// has its own per-patient change stream, newest entries first.
type ChartingRepository struct {
	db *gorm.DB

	vitals *hub[model.VitalSign]
	meds   *hub[model.MedicationAdministered]
	notes  *hub[model.NurseNote]
	io     *hub[model.InputOutputEntry]
}

func NewChartingRepository(db *gorm.DB) *ChartingRepository {
	return &ChartingRepository{
		db:     db,
		vitals: newHub[model.VitalSign](),
		meds:   newHub[model.MedicationAdministered](),
		notes:  newHub[model.NurseNote](),
		io:     newHub[model.InputOutputEntry](),
	}
}

// -- Vital signs --

func (r *ChartingRepository) InsertVitalSign(ctx context.Context, v *model.VitalSign) error {
	if err := r.db.WithContext(ctx).Create(v).Error; err != nil {
		return fmt.Errorf("insert vital sign: %w", err)
	}
	r.notifyVitals(v.PatientID)
	return nil
}

func (r *ChartingRepository) DeleteVitalSign(ctx context.Context, v *model.VitalSign) error {
	if err := r.db.WithContext(ctx).Delete(&model.VitalSign{}, v.ID).Error; err != nil {
		return fmt.Errorf("delete vital sign: %w", err)
	}
	r.notifyVitals(v.PatientID)
	return nil
}

func (r *ChartingRepository) ListVitalSigns(ctx context.Context, patientID string) ([]model.VitalSign, error) {
	var rows []model.VitalSign
	if err := r.db.WithContext(ctx).Where("patientId = ?", patientID).
		Order("timestamp DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list vital signs: %w", err)
	}
	return rows, nil
}

func (r *ChartingRepository) WatchVitalSigns(patientID string) (<-chan []model.VitalSign, func()) {
	sub := r.vitals.subscribe(patientID)
	if rows, err := r.ListVitalSigns(context.Background(), patientID); err == nil {
		sub.push(rows)
	} else {
		log.Printf("[warn] initial vitals snapshot for %s: %v", patientID, err)
	}
	return sub.ch, sub.close
}

func (r *ChartingRepository) notifyVitals(patientID string) {
	rows, err := r.ListVitalSigns(context.Background(), patientID)
	if err != nil {
		log.Printf("[warn] vitals snapshot for %s: %v", patientID, err)
		return
	}
	r.vitals.publish(patientID, rows)
}

// -- Medications administered --

func (r *ChartingRepository) InsertMedication(ctx context.Context, m *model.MedicationAdministered) error {
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return fmt.Errorf("insert medication: %w", err)
	}
	r.notifyMeds(m.PatientID)
	return nil
}

func (r *ChartingRepository) DeleteMedication(ctx context.Context, m *model.MedicationAdministered) error {
	if err := r.db.WithContext(ctx).Delete(&model.MedicationAdministered{}, m.ID).Error; err != nil {
		return fmt.Errorf("delete medication: %w", err)
	}
	r.notifyMeds(m.PatientID)
	return nil
}

func (r *ChartingRepository) ListMedications(ctx context.Context, patientID string) ([]model.MedicationAdministered, error) {
	var rows []model.MedicationAdministered
	if err := r.db.WithContext(ctx).Where("patientId = ?", patientID).
		Order("timestamp DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list medications: %w", err)
	}
	return rows, nil
}

func (r *ChartingRepository) WatchMedications(patientID string) (<-chan []model.MedicationAdministered, func()) {
	sub := r.meds.subscribe(patientID)
	if rows, err := r.ListMedications(context.Background(), patientID); err == nil {
		sub.push(rows)
	} else {
		log.Printf("[warn] initial medications snapshot for %s: %v", patientID, err)
	}
	return sub.ch, sub.close
}

func (r *ChartingRepository) notifyMeds(patientID string) {
	rows, err := r.ListMedications(context.Background(), patientID)
	if err != nil {
		log.Printf("[warn] medications snapshot for %s: %v", patientID, err)
		return
	}
	r.meds.publish(patientID, rows)
}

// -- Nurse notes --

func (r *ChartingRepository) InsertNurseNote(ctx context.Context, n *model.NurseNote) error {
	if err := r.db.WithContext(ctx).Create(n).Error; err != nil {
		return fmt.Errorf("insert nurse note: %w", err)
	}
	r.notifyNotes(n.PatientID)
	return nil
}

func (r *ChartingRepository) DeleteNurseNote(ctx context.Context, n *model.NurseNote) error {
	if err := r.db.WithContext(ctx).Delete(&model.NurseNote{}, n.ID).Error; err != nil {
		return fmt.Errorf("delete nurse note: %w", err)
	}
	r.notifyNotes(n.PatientID)
	return nil
}

func (r *ChartingRepository) ListNurseNotes(ctx context.Context, patientID string) ([]model.NurseNote, error) {
	var rows []model.NurseNote
	if err := r.db.WithContext(ctx).Where("patientId = ?", patientID).
		Order("timestamp DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list nurse notes: %w", err)
	}
	return rows, nil
}

func (r *ChartingRepository) WatchNurseNotes(patientID string) (<-chan []model.NurseNote, func()) {
	sub := r.notes.subscribe(patientID)
	if rows, err := r.ListNurseNotes(context.Background(), patientID); err == nil {
		sub.push(rows)
	} else {
		log.Printf("[warn] initial notes snapshot for %s: %v", patientID, err)
	}
	return sub.ch, sub.close
}

func (r *ChartingRepository) notifyNotes(patientID string) {
	rows, err := r.ListNurseNotes(context.Background(), patientID)
	if err != nil {
		log.Printf("[warn] notes snapshot for %s: %v", patientID, err)
		return
	}
	r.notes.publish(patientID, rows)
}

// -- Intake/output --

func (r *ChartingRepository) InsertIOEntry(ctx context.Context, e *model.InputOutputEntry) error {
	if err := r.db.WithContext(ctx).Create(e).Error; err != nil {
		return fmt.Errorf("insert i/o entry: %w", err)
	}
	r.notifyIO(e.PatientID)
	return nil
}

func (r *ChartingRepository) DeleteIOEntry(ctx context.Context, e *model.InputOutputEntry) error {
	if err := r.db.WithContext(ctx).Delete(&model.InputOutputEntry{}, e.ID).Error; err != nil {
		return fmt.Errorf("delete i/o entry: %w", err)
	}
	r.notifyIO(e.PatientID)
	return nil
}

func (r *ChartingRepository) ListIOEntries(ctx context.Context, patientID string) ([]model.InputOutputEntry, error) {
	var rows []model.InputOutputEntry
	if err := r.db.WithContext(ctx).Where("patientId = ?", patientID).
		Order("timestamp DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list i/o entries: %w", err)
	}
	return rows, nil
}

func (r *ChartingRepository) WatchIOEntries(patientID string) (<-chan []model.InputOutputEntry, func()) {
	sub := r.io.subscribe(patientID)
	if rows, err := r.ListIOEntries(context.Background(), patientID); err == nil {
		sub.push(rows)
	} else {
		log.Printf("[warn] initial i/o snapshot for %s: %v", patientID, err)
	}
	return sub.ch, sub.close
}

func (r *ChartingRepository) notifyIO(patientID string) {
	rows, err := r.ListIOEntries(context.Background(), patientID)
	if err != nil {
		log.Printf("[warn] i/o snapshot for %s: %v", patientID, err)
		return
	}
	r.io.publish(patientID, rows)
}
