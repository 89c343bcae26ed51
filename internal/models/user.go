package models

import (
	"time"
)

// User is a notary or employee account. The notary and employee tracks are
// mutually exclusive; see RoleFlags.Violations.
type User struct {
	ID               uint64  `gorm:"primaryKey;autoIncrement"`
	Email            string  `gorm:"size:255;uniqueIndex;not null"`
	FirstName        string  `gorm:"size:255;not null"`
	MiddleName       *string `gorm:"size:255"`
	LastName         string  `gorm:"size:255;not null"`
	Suffix           *string `gorm:"size:64"`
	PhoneNumber      string  `gorm:"size:32;not null"`
	Password         string  `gorm:"size:255;not null"`
	IsNotary         bool    `gorm:"not null"`
	IsActiveNotary   bool    `gorm:"not null;default:false"`
	IsEmployee       bool    `gorm:"not null;default:false"`
	IsActiveEmployee bool    `gorm:"not null;default:false"`
	IsSuper          bool    `gorm:"not null;default:false"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
	Addresses        []Address    `gorm:"foreignKey:UserID"`
	Commissions      []Commission `gorm:"foreignKey:UserID"`
}

// TableName overrides the table name for User
func (User) TableName() string {
	return "users"
}

// RoleFlags is the raw role state stored on a user row
type RoleFlags struct {
	IsNotary         bool
	IsActiveNotary   bool
	IsEmployee       bool
	IsActiveEmployee bool
	IsSuper          bool
}

// Flags returns the stored role flags of u
func (u *User) Flags() RoleFlags {
	return RoleFlags{
		IsNotary:         u.IsNotary,
		IsActiveNotary:   u.IsActiveNotary,
		IsEmployee:       u.IsEmployee,
		IsActiveEmployee: u.IsActiveEmployee,
		IsSuper:          u.IsSuper,
	}
}

// Violations lists the flags that break the notary XOR employee rule.
// An empty result means the combination is consistent.
func (f RoleFlags) Violations() []string {
	var bad []string
	switch {
	case f.IsNotary && f.IsEmployee:
		bad = append(bad, "isNotary", "isEmployee")
	case !f.IsNotary && !f.IsEmployee:
		bad = append(bad, "isNotary", "isEmployee")
	case f.IsNotary:
		if f.IsActiveEmployee {
			bad = append(bad, "isActiveEmployee")
		}
		if f.IsSuper {
			bad = append(bad, "isSuper")
		}
	case f.IsEmployee:
		if f.IsActiveNotary {
			bad = append(bad, "isActiveNotary")
		}
	}
	return bad
}
