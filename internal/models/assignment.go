package models

import (
	"time"
)

// Assignment is a signing job ordered by a customer. UserID stays null until
// a notary accepts it. A customer has many assignments over time.
type Assignment struct {
	ID                 uint64  `gorm:"primaryKey;autoIncrement"`
	FileNumber         string  `gorm:"size:64;not null;index"`
	DueDate            string  `gorm:"size:64;not null"`
	Notes              *string `gorm:"type:text"`
	ContactName        string  `gorm:"size:255;not null"`
	ContactPhoneNumber string  `gorm:"size:32;not null"`
	ContactEmail       string  `gorm:"size:255;not null"`
	MeetingAddress     string  `gorm:"type:text;not null"`
	Rate               Rate    `gorm:"not null"`
	Type               string  `gorm:"size:64;not null"`
	Status             string  `gorm:"size:64;not null;index"`
	CustomerID         uint64  `gorm:"not null;index"`
	UserID             *uint64 `gorm:"index"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
	Customer           Customer `gorm:"foreignKey:CustomerID"`
	User               *User    `gorm:"foreignKey:UserID"`
}

// TableName overrides the table name for Assignment
func (Assignment) TableName() string {
	return "assignments"
}
