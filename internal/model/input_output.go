package model

// InputOutputEntry is one fluid intake or output measurement in mL.
type InputOutputEntry struct {
	ID        int64   `gorm:"primaryKey;autoIncrement"`
	PatientID string  `gorm:"column:patientId;index"`
	Timestamp int64   `gorm:"column:timestamp"`
	Type      string  `gorm:"column:type"` // e.g. "Oral", "IV", "Urine", "Emesis"
	Volume    float64 `gorm:"column:volume"`
}

func (InputOutputEntry) TableName() string { return "input_output_entries" }
