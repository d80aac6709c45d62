package models

import "time"

// Client is a walk-in customer record keyed by normalized phone number.
type Client struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"size:100;not null" json:"name"`
	Phone string `gorm:"size:30;uniqueIndex;not null" json:"phone"`
	Email string `gorm:"size:100" json:"email"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}
