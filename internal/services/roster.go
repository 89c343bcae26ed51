package services

import (
	"fmt"
	"io"
	"time"

	"github.com/localnerve/notary-records/internal/models"
	"github.com/xuri/excelize/v2"
)

// RosterSheet is the worksheet name of the notary roster export
const RosterSheet = "Notaries"

var rosterHeader = []any{
	"ID", "First Name", "Middle Name", "Last Name", "Suffix",
	"Email", "Phone Number", "Active", "Commissions", "Next Commission Expiry",
}

// WriteNotaryRoster renders notaries, commissions preloaded, as an xlsx workbook
func WriteNotaryRoster(w io.Writer, notaries []models.User) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", RosterSheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(RosterSheet, "A1", &rosterHeader); err != nil {
		return err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetRowStyle(RosterSheet, 1, 1, bold); err != nil {
		return err
	}

	for i, n := range notaries {
		row := []any{
			n.ID,
			n.FirstName,
			deref(n.MiddleName),
			n.LastName,
			deref(n.Suffix),
			n.Email,
			n.PhoneNumber,
			n.IsActiveNotary,
			len(n.Commissions),
			nextExpiry(n.Commissions),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(RosterSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write roster row %d: %w", i+2, err)
		}
	}

	if err := f.SetColWidth(RosterSheet, "B", "F", 20); err != nil {
		return err
	}

	_, err = f.WriteTo(w)
	return err
}

// nextExpiry returns the earliest commission expiry, or "" when there is none
func nextExpiry(commissions []models.Commission) string {
	var earliest time.Time
	for _, c := range commissions {
		t := time.Time(c.CommissionExpireDate)
		if earliest.IsZero() || t.Before(earliest) {
			earliest = t
		}
	}
	if earliest.IsZero() {
		return ""
	}
	return earliest.Format(DateLayout)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
