package model

// VitalSign is a point-in-time set of vitals for one patient.
type VitalSign struct {
	ID              int64   `gorm:"primaryKey;autoIncrement"`
	PatientID       string  `gorm:"column:patientId;index"`
	Timestamp       int64   `gorm:"column:timestamp"`
	HeartRate       int     `gorm:"column:heartRate"`
	SystolicBP      int     `gorm:"column:systolicBP"`
	DiastolicBP     int     `gorm:"column:diastolicBP"`
	Temperature     float64 `gorm:"column:temperature"`
	TemperatureUnit string  `gorm:"column:temperatureUnit"` // "°C" or "°F"
	RespiratoryRate int     `gorm:"column:respiratoryRate"`
	SpO2            int     `gorm:"column:spO2"`
	PainScore       *string `gorm:"column:painScore"` // e.g. "3/10", "N/A"
}

func (VitalSign) TableName() string { return "vital_signs" }
