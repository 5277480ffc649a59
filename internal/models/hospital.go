package models

// Hospital represents a medical facility that can be located on the map
type Hospital struct {
	ID   int64   `gorm:"column:hospital_id;primaryKey" json:"hospitalId"`
	Name string  `gorm:"column:hospital_name;size:255;not null" json:"hospitalName"`
	X    float64 `gorm:"column:hospital_x" json:"hospitalX"`
	Y    float64 `gorm:"column:hospital_y" json:"hospitalY"`

	// Relationships
	Parts []HospitalPart `gorm:"foreignKey:HospitalID;references:ID" json:"parts,omitempty"`
	Times []HospitalTime `gorm:"foreignKey:HospitalID;references:ID" json:"times,omitempty"`
}

// TableName specifies the table name for Hospital model
func (Hospital) TableName() string {
	return "hospital"
}

