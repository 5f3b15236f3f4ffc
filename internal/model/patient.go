package model

// Patient is one row of the ward roster. Deleting a patient cascades to
// every charting record that references it.
type Patient struct {
	PatientID   string `gorm:"column:patientId;primaryKey"`
	FullName    string `gorm:"column:fullName"`
	DateOfBirth string `gorm:"column:dateOfBirth"`
	RoomNumber  string `gorm:"column:roomNumber"`

	Tasks       []Task                   `gorm:"foreignKey:PatientID;references:PatientID;constraint:OnDelete:CASCADE"`
	VitalSigns  []VitalSign              `gorm:"foreignKey:PatientID;references:PatientID;constraint:OnDelete:CASCADE"`
	Medications []MedicationAdministered `gorm:"foreignKey:PatientID;references:PatientID;constraint:OnDelete:CASCADE"`
	NurseNotes  []NurseNote              `gorm:"foreignKey:PatientID;references:PatientID;constraint:OnDelete:CASCADE"`
	IOEntries   []InputOutputEntry       `gorm:"foreignKey:PatientID;references:PatientID;constraint:OnDelete:CASCADE"`
}

func (Patient) TableName() string { return "patients" }
