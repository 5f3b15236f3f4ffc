package model

// NurseNote is a free-text note on a patient's chart.
type NurseNote struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	PatientID string `gorm:"column:patientId;index"`
	Timestamp int64  `gorm:"column:timestamp"`
	NoteText  string `gorm:"column:noteText"`
}

func (NurseNote) TableName() string { return "nurse_notes" }
