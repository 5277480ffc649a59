package models

// ClosedDay is how hospital_time marks a day without opening hours.
// It is the literal text "null", not SQL NULL.
const ClosedDay = "null"

// HospitalTime holds the opening hours of a hospital.
// Day columns carry free text such as "09:00~18:00" or ClosedDay.
// Holiday and MonNight are 0/1 flags.
type HospitalTime struct {
	ID         int64  `gorm:"column:hospital_time_id;primaryKey" json:"hospitalTimeId"`
	HospitalID int64  `gorm:"column:hospital_id;not null;index" json:"hospitalId"`
	Mon        string `gorm:"column:hospital_time_mon;size:50" json:"hospitalTimeMon"`
	Tue        string `gorm:"column:hospital_time_tue;size:50" json:"hospitalTimeTue"`
	Wed        string `gorm:"column:hospital_time_wed;size:50" json:"hospitalTimeWed"`
	Thu        string `gorm:"column:hospital_time_thu;size:50" json:"hospitalTimeThu"`
	Fri        string `gorm:"column:hospital_time_fri;size:50" json:"hospitalTimeFri"`
	Sat        string `gorm:"column:hospital_time_sat;size:50" json:"hospitalTimeSat"`
	Sun        string `gorm:"column:hospital_time_sun;size:50" json:"hospitalTimeSun"`
	Holiday    int    `gorm:"column:hospital_time_holiday;default:0" json:"hospitalTimeHoliday"`
	MonNight   int    `gorm:"column:hospital_time_mon_night;default:0" json:"hospitalTimeMonNight"`
}

// TableName specifies the table name for HospitalTime model
func (HospitalTime) TableName() string {
	return "hospital_time"
}

// OpenOnSaturday reports whether Saturday hours are recorded
func (t HospitalTime) OpenOnSaturday() bool { return t.Sat != ClosedDay }

// OpenOnSunday reports whether Sunday hours are recorded
func (t HospitalTime) OpenOnSunday() bool { return t.Sun != ClosedDay }
