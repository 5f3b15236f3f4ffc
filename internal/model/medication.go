package model

// MedicationAdministered records one administration event.
type MedicationAdministered struct {
	ID             int64  `gorm:"primaryKey;autoIncrement"`
	PatientID      string `gorm:"column:patientId;index"`
	Timestamp      int64  `gorm:"column:timestamp"`
	MedicationName string `gorm:"column:medicationName"`
	Dosage         string `gorm:"column:dosage"`
	Route          string `gorm:"column:route"` // e.g. "PO", "IV"
}

func (MedicationAdministered) TableName() string { return "medications_administered" }
