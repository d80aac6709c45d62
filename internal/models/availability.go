package models

import "time"

// AvailabilityDay is the per-date schedule configuration. A date without a
// row is closed; rows are replaced wholesale on update.
type AvailabilityDay struct {
	ID          uint  `gorm:"primaryKey" json:"id"`
	Date        Date  `gorm:"type:date;not null;uniqueIndex:uq_avail_date_staff" json:"date"`
	Enabled     bool  `gorm:"default:true" json:"enabled"`
	SlotSizeMin int   `gorm:"default:45" json:"slot_size_min"`
	StaffID     *uint `gorm:"uniqueIndex:uq_avail_date_staff" json:"staff_id"`

	Ranges []AvailabilityRange `gorm:"constraint:OnDelete:CASCADE" json:"ranges"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

type AvailabilityRange struct {
	ID                uint   `gorm:"primaryKey" json:"-"`
	AvailabilityDayID uint   `gorm:"not null;index" json:"-"`
	StartTime         string `gorm:"size:5;not null" json:"start_time"` // HH:MM
	EndTime           string `gorm:"size:5;not null" json:"end_time"`   // HH:MM
}
