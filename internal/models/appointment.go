package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Date      Date   `gorm:"type:date;not null;index" json:"date"`
	StartTime string `gorm:"size:5;not null" json:"start_time"` // HH:MM
	EndTime   string `gorm:"size:5;not null" json:"end_time"`   // HH:MM

	ServiceID uint    `gorm:"not null" json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	StaffID *uint `json:"staff_id"`

	ClientID    *uint  `json:"client_id"`
	ClientName  string `gorm:"size:100;not null" json:"client_name"`
	ClientPhone string `gorm:"size:30;not null" json:"client_phone"`
	Note        string `gorm:"size:255" json:"note"`

	Status string `gorm:"size:20;not null;default:'CONFIRMED';index" json:"status"`
	IsPaid bool   `gorm:"default:false" json:"is_paid"`

	ConfirmationSentAt *time.Time `json:"confirmation_sent_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
