package models

import (
	"time"

	"gorm.io/datatypes"
)

// Commission is a state notary commission held by a user
type Commission struct {
	ID                   uint64         `gorm:"primaryKey;autoIncrement"`
	CommissionNumber     string         `gorm:"size:64;uniqueIndex;not null"`
	NameOnCommission     string         `gorm:"size:255;not null"`
	CommissionExpireDate datatypes.Date `gorm:"not null"`
	CommissionState      string         `gorm:"size:2;not null"`
	CountyOfResidence    string         `gorm:"size:255;not null"`
	UserID               uint64         `gorm:"not null;index"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// TableName overrides the table name for Commission
func (Commission) TableName() string {
	return "commissions"
}
