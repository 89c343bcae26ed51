// resolve.go
//
// A role-based records service for notary signing operations
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of notary-records.
// notary-records is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// notary-records is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with notary-records.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package services

import (
	"errors"
	"strings"
	"time"

	"github.com/localnerve/notary-records/internal/models"
	"github.com/localnerve/notary-records/internal/types"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
)

// DateLayout is the wire format of calendar dates
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD calendar date
func ParseDate(s string) (datatypes.Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return datatypes.Date{}, err
	}
	return datatypes.Date(t), nil
}

// Changes accumulates the column values of one partial update. Every field
// in the caller's allowed set gets a value: the payload's when supplied,
// otherwise the stored one.
type Changes struct {
	fields  map[string]any
	invalid []string
}

func newChanges() *Changes {
	return &Changes{fields: make(map[string]any)}
}

// Fields returns the column map to persist, or a Validation error naming
// every field that was explicitly nulled or blanked while required.
func (c *Changes) Fields() (map[string]any, error) {
	if len(c.invalid) > 0 {
		return nil, types.Validation("Required fields cannot be cleared", c.invalid...)
	}
	return c.fields, nil
}

func (c *Changes) reject(name string) {
	c.invalid = append(c.invalid, name)
}

// required merges a non-nullable field
func required[T any](c *Changes, name, column string, in types.Optional[T], current T) {
	switch {
	case in.Null:
		c.reject(name)
	case in.Set:
		c.fields[column] = in.Value
	default:
		c.fields[column] = current
	}
}

// requiredString is required with blank strings rejected
func requiredString(c *Changes, name, column string, in types.Optional[string], current string) {
	if in.Present() && strings.TrimSpace(in.Value) == "" {
		c.reject(name)
		return
	}
	required(c, name, column, in, current)
}

// nullable merges a field that an explicit null clears
func nullable[T any](c *Changes, column string, in types.Optional[T], current *T) {
	switch {
	case in.Null:
		c.fields[column] = nil
	case in.Set:
		c.fields[column] = in.Value
	case current == nil:
		c.fields[column] = nil
	default:
		c.fields[column] = *current
	}
}

// ResolveCustomer merges a customer update
func ResolveCustomer(current *models.Customer, in CustomerInput) (map[string]any, error) {
	c := newChanges()
	requiredString(c, "name", "name", in.Name, current.Name)
	requiredString(c, "phoneNumber", "phone_number", in.PhoneNumber, current.PhoneNumber)
	requiredString(c, "email", "email", in.Email, current.Email)
	requiredString(c, "customerType", "customer_type", in.CustomerType, current.CustomerType)
	nullable(c, "notes", in.Notes, current.Notes)
	return c.Fields()
}

// ResolveContact merges a contact update. The owning customer is not mutable.
func ResolveContact(current *models.Contact, in ContactInput) (map[string]any, error) {
	c := newChanges()
	requiredString(c, "name", "name", in.Name, current.Name)
	requiredString(c, "email", "email", in.Email, current.Email)
	requiredString(c, "phoneNumber", "phone_number", in.PhoneNumber, current.PhoneNumber)
	return c.Fields()
}

// ResolveAddress merges an address update. Ownership keys are not mutable.
func ResolveAddress(current *models.Address, in AddressInput) (map[string]any, error) {
	c := newChanges()
	requiredString(c, "streetOne", "street_one", in.StreetOne, current.StreetOne)
	nullable(c, "street_two", in.StreetTwo, current.StreetTwo)
	requiredString(c, "city", "city", in.City, current.City)
	requiredString(c, "state", "state", in.State, current.State)
	if in.ZipCode.Present() && in.ZipCode.Value <= 0 {
		c.reject("zipCode")
	} else {
		required(c, "zipCode", "zip_code", in.ZipCode, current.ZipCode)
	}
	requiredString(c, "type", "type", in.Type, current.Type)
	return c.Fields()
}

// ResolveCommission merges a commission update
func ResolveCommission(current *models.Commission, in CommissionInput) (map[string]any, error) {
	c := newChanges()
	requiredString(c, "commissionNumber", "commission_number", in.CommissionNumber, current.CommissionNumber)
	requiredString(c, "nameOnCommission", "name_on_commission", in.NameOnCommission, current.NameOnCommission)

	expires := types.Optional[datatypes.Date]{Set: in.CommissionExpireDate.Set, Null: in.CommissionExpireDate.Null}
	if in.CommissionExpireDate.Present() {
		d, err := ParseDate(in.CommissionExpireDate.Value)
		if err != nil {
			c.reject("commissionExpireDate")
		}
		expires.Value = d
	}
	required(c, "commissionExpireDate", "commission_expire_date", expires, current.CommissionExpireDate)

	requiredString(c, "commissionState", "commission_state", in.CommissionState, current.CommissionState)
	requiredString(c, "countyOfResidence", "county_of_residence", in.CountyOfResidence, current.CountyOfResidence)
	return c.Fields()
}

// ResolveAssignment merges an assignment update for p. Employees may change
// every field, including the assigned notary. An active notary may only
// claim the assignment and set its status. Anyone else changes nothing.
func ResolveAssignment(p Principal, current *models.Assignment, in AssignmentInput) (map[string]any, error) {
	c := newChanges()

	switch {
	case p.IsEmployee():
		requiredString(c, "fileNumber", "file_number", in.FileNumber, current.FileNumber)
		requiredString(c, "dueDate", "due_date", in.DueDate, current.DueDate)
		nullable(c, "notes", in.Notes, current.Notes)
		requiredString(c, "contactName", "contact_name", in.ContactName, current.ContactName)
		requiredString(c, "contactPhoneNumber", "contact_phone_number", in.ContactPhoneNumber, current.ContactPhoneNumber)
		requiredString(c, "contactEmail", "contact_email", in.ContactEmail, current.ContactEmail)
		requiredString(c, "meetingAddress", "meeting_address", in.MeetingAddress, current.MeetingAddress)
		if in.Rate.Present() && in.Rate.Value.IsNegative() {
			c.reject("rate")
		} else {
			required(c, "rate", "rate", in.Rate, current.Rate)
		}
		requiredString(c, "type", "type", in.Type, current.Type)
		requiredString(c, "status", "status", in.Status, current.Status)

		notary := types.Optional[uint64]{Set: in.NotaryID.Set, Null: in.NotaryID.Null, Value: in.NotaryID.Value.Uint64()}
		nullable(c, "user_id", notary, current.UserID)

	case p.IsActiveNotary():
		c.fields["user_id"] = p.ID
		requiredString(c, "status", "status", in.Status, current.Status)
	}

	return c.Fields()
}

// ResolveUserFlags merges the role flags an employee may set on target.
// Standard employees may toggle isActiveNotary, super employees also
// isActiveEmployee and isSuper. The resulting flag set must be consistent.
func ResolveUserFlags(p Principal, target *models.User, in UserInput) (map[string]any, error) {
	c := newChanges()
	if !p.IsEmployee() {
		return c.Fields()
	}

	flags := target.Flags()
	required(c, "isActiveNotary", "is_active_notary", in.IsActiveNotary, flags.IsActiveNotary)
	if p.IsSuper() {
		required(c, "isActiveEmployee", "is_active_employee", in.IsActiveEmployee, flags.IsActiveEmployee)
		required(c, "isSuper", "is_super", in.IsSuper, flags.IsSuper)
	}

	fields, err := c.Fields()
	if err != nil {
		return nil, err
	}

	if v, ok := fields["is_active_notary"].(bool); ok {
		flags.IsActiveNotary = v
	}
	if v, ok := fields["is_active_employee"].(bool); ok {
		flags.IsActiveEmployee = v
	}
	if v, ok := fields["is_super"].(bool); ok {
		flags.IsSuper = v
	}
	if bad := flags.Violations(); len(bad) > 0 {
		return nil, types.Validation("Role flags are inconsistent", bad...)
	}
	return fields, nil
}

// ResolveProfile merges a user's update of their own profile. A supplied
// password that already matches keeps the stored digest, any other value
// is rehashed.
func ResolveProfile(creds *Credentials, current *models.User, in UserInput) (map[string]any, error) {
	c := newChanges()
	requiredString(c, "email", "email", in.Email, current.Email)
	requiredString(c, "firstName", "first_name", in.FirstName, current.FirstName)
	nullable(c, "middle_name", in.MiddleName, current.MiddleName)
	requiredString(c, "lastName", "last_name", in.LastName, current.LastName)
	nullable(c, "suffix", in.Suffix, current.Suffix)
	requiredString(c, "phoneNumber", "phone_number", in.PhoneNumber, current.PhoneNumber)

	password := in.Password
	if password.Present() && password.Value != "" && !creds.VerifyPassword(password.Value, current.Password) {
		digest, err := creds.HashPassword(password.Value)
		if err != nil {
			if errors.Is(err, bcrypt.ErrPasswordTooLong) {
				return nil, types.Validation("Password is too long", "password")
			}
			return nil, types.Internal("Failed to hash password", err)
		}
		password.Value = digest
	} else if password.Present() && password.Value != "" {
		password.Value = current.Password
	}
	requiredString(c, "password", "password", password, current.Password)

	return c.Fields()
}
