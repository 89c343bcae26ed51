package models

import (
	"time"
)

// Address belongs to exactly one of a user or a customer. The owning key is
// chosen by the caller's role; the schema allows both to be null.
type Address struct {
	ID         uint64  `gorm:"primaryKey;autoIncrement"`
	StreetOne  string  `gorm:"size:255;not null"`
	StreetTwo  *string `gorm:"size:255"`
	City       string  `gorm:"size:255;not null"`
	State      string  `gorm:"size:64;not null"`
	ZipCode    int     `gorm:"not null"`
	Type       string  `gorm:"size:64;not null"`
	UserID     *uint64 `gorm:"index"`
	CustomerID *uint64 `gorm:"index"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName overrides the table name for Address
func (Address) TableName() string {
	return "addresses"
}
