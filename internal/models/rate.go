package models

import (
	"database/sql/driver"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// Rate is the fee paid for an assignment, kept as an exact decimal
type Rate struct {
	decimal.Decimal
}

// NewRate parses a decimal string such as "125.50"
func NewRate(s string) (Rate, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Rate{}, err
	}
	return Rate{Decimal: d}, nil
}

// Value promotes the embedded Decimal's Value method
func (r Rate) Value() (driver.Value, error) {
	return r.Decimal.Value()
}

// Scan promotes the embedded Decimal's Scan method
func (r *Rate) Scan(value interface{}) error {
	return r.Decimal.Scan(value)
}

// GormDBDataType ensures an exact numeric column is used for each database driver.
func (Rate) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	switch db.Dialector.Name() {
	case "mysql":
		return "DECIMAL(12,2)"
	case "postgres":
		return "NUMERIC(12,2)"
	case "sqlserver", "mssql":
		return "DECIMAL(12,2)"
	case "sqlite":
		return "NUMERIC"
	}
	return "DECIMAL(12,2)"
}
