package models

// HospitalPart is a medical specialty (department) offered by a hospital.
// Code holds the numeric specialty code; 0 is never stored.
type HospitalPart struct {
	ID         int64 `gorm:"column:hospital_part_id;primaryKey" json:"hospitalPartId"`
	HospitalID int64 `gorm:"column:hospital_id;not null;index" json:"hospitalId"`
	Code       int   `gorm:"column:hospital_part_name;not null;index" json:"hospitalPartName"`
}

// TableName specifies the table name for HospitalPart model
func (HospitalPart) TableName() string {
	return "hospital_part"
}
