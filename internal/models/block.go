package models

import "time"

// Block closes a time-of-day window on every date of an inclusive date
// range, regardless of the availability configuration.
type Block struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	StartDate Date   `gorm:"type:date;not null;index" json:"start_date"`
	EndDate   Date   `gorm:"type:date;not null;index" json:"end_date"`
	StartTime string `gorm:"size:5;not null" json:"start_time"`
	EndTime   string `gorm:"size:5;not null" json:"end_time"`
	Reason    string `gorm:"size:255" json:"reason"`
	StaffID   *uint  `json:"staff_id"`

	CreatedAt time.Time `json:"-"`
}
