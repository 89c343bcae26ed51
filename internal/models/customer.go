package models

import (
	"time"
)

// Customer is a client business that orders signings
type Customer struct {
	ID           uint64  `gorm:"primaryKey;autoIncrement"`
	Name         string  `gorm:"size:255;not null"`
	PhoneNumber  string  `gorm:"size:32;not null"`
	Email        string  `gorm:"size:255;uniqueIndex;not null"`
	CustomerType string  `gorm:"size:64;not null"`
	Notes        *string `gorm:"type:text"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Addresses    []Address    `gorm:"foreignKey:CustomerID"`
	Contacts     []Contact    `gorm:"foreignKey:CustomerID"`
	Assignments  []Assignment `gorm:"foreignKey:CustomerID"`
}

// TableName overrides the table name for Customer
func (Customer) TableName() string {
	return "customers"
}

// Contact is a person working for a customer
type Contact struct {
	ID          uint64 `gorm:"primaryKey;autoIncrement"`
	Name        string `gorm:"size:255;not null"`
	Email       string `gorm:"size:255;uniqueIndex;not null"`
	PhoneNumber string `gorm:"size:32;not null"`
	CustomerID  uint64 `gorm:"not null;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName overrides the table name for Contact
func (Contact) TableName() string {
	return "contacts"
}
