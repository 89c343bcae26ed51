package handlers

import (
	"time"

	"github.com/localnerve/notary-records/internal/models"
	"github.com/localnerve/notary-records/internal/services"
)

// Response projections. Only these fields ever leave the service; the
// password digest has no view.

type UserView struct {
	ID               uint64           `json:"id"`
	Email            string           `json:"email"`
	FirstName        string           `json:"firstName"`
	MiddleName       *string          `json:"middleName"`
	LastName         string           `json:"lastName"`
	Suffix           *string          `json:"suffix"`
	PhoneNumber      string           `json:"phoneNumber"`
	IsNotary         bool             `json:"isNotary"`
	IsActiveNotary   bool             `json:"isActiveNotary"`
	IsEmployee       bool             `json:"isEmployee"`
	IsActiveEmployee bool             `json:"isActiveEmployee"`
	IsSuper          bool             `json:"isSuper"`
	Addresses        []AddressView    `json:"addresses,omitempty"`
	Commissions      []CommissionView `json:"commissions,omitempty"`
}

func userView(u *models.User) UserView {
	v := UserView{
		ID:               u.ID,
		Email:            u.Email,
		FirstName:        u.FirstName,
		MiddleName:       u.MiddleName,
		LastName:         u.LastName,
		Suffix:           u.Suffix,
		PhoneNumber:      u.PhoneNumber,
		IsNotary:         u.IsNotary,
		IsActiveNotary:   u.IsActiveNotary,
		IsEmployee:       u.IsEmployee,
		IsActiveEmployee: u.IsActiveEmployee,
		IsSuper:          u.IsSuper,
	}
	for i := range u.Addresses {
		v.Addresses = append(v.Addresses, addressView(&u.Addresses[i]))
	}
	for i := range u.Commissions {
		v.Commissions = append(v.Commissions, commissionView(&u.Commissions[i]))
	}
	return v
}

// NotaryView is the public face of a notary on an assignment
type NotaryView struct {
	ID          uint64  `json:"id"`
	FirstName   string  `json:"firstName"`
	MiddleName  *string `json:"middleName"`
	LastName    string  `json:"lastName"`
	Suffix      *string `json:"suffix"`
	PhoneNumber string  `json:"phoneNumber"`
	Email       string  `json:"email"`
}

func notaryView(u *models.User) *NotaryView {
	if u == nil {
		return nil
	}
	return &NotaryView{
		ID:          u.ID,
		FirstName:   u.FirstName,
		MiddleName:  u.MiddleName,
		LastName:    u.LastName,
		Suffix:      u.Suffix,
		PhoneNumber: u.PhoneNumber,
		Email:       u.Email,
	}
}

type CustomerView struct {
	ID           uint64           `json:"id"`
	Name         string           `json:"name"`
	PhoneNumber  string           `json:"phoneNumber"`
	Email        string           `json:"email"`
	CustomerType string           `json:"customerType"`
	Notes        *string          `json:"notes"`
	Addresses    []AddressView    `json:"addresses,omitempty"`
	Contacts     []ContactView    `json:"contacts,omitempty"`
	Assignments  []AssignmentView `json:"assignments,omitempty"`
}

func customerView(c *models.Customer) CustomerView {
	v := CustomerView{
		ID:           c.ID,
		Name:         c.Name,
		PhoneNumber:  c.PhoneNumber,
		Email:        c.Email,
		CustomerType: c.CustomerType,
		Notes:        c.Notes,
	}
	for i := range c.Addresses {
		v.Addresses = append(v.Addresses, addressView(&c.Addresses[i]))
	}
	for i := range c.Contacts {
		v.Contacts = append(v.Contacts, contactView(&c.Contacts[i]))
	}
	for i := range c.Assignments {
		v.Assignments = append(v.Assignments, assignmentView(&c.Assignments[i]))
	}
	return v
}

// CustomerSummary is the customer as embedded in an assignment
type CustomerSummary struct {
	CustomerID  uint64 `json:"customerId"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phoneNumber"`
	Email       string `json:"email"`
}

type ContactView struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	CustomerID  uint64 `json:"customerId"`
}

func contactView(c *models.Contact) ContactView {
	return ContactView{
		ID:          c.ID,
		Name:        c.Name,
		Email:       c.Email,
		PhoneNumber: c.PhoneNumber,
		CustomerID:  c.CustomerID,
	}
}

type AddressView struct {
	ID        uint64  `json:"id"`
	StreetOne string  `json:"streetOne"`
	StreetTwo *string `json:"streetTwo"`
	City      string  `json:"city"`
	State     string  `json:"state"`
	ZipCode   int     `json:"zipCode"`
	Type      string  `json:"type"`
}

func addressView(a *models.Address) AddressView {
	return AddressView{
		ID:        a.ID,
		StreetOne: a.StreetOne,
		StreetTwo: a.StreetTwo,
		City:      a.City,
		State:     a.State,
		ZipCode:   a.ZipCode,
		Type:      a.Type,
	}
}

type CommissionView struct {
	ID                   uint64 `json:"id"`
	CommissionNumber     string `json:"commissionNumber"`
	NameOnCommission     string `json:"nameOnCommission"`
	CommissionExpireDate string `json:"commissionExpireDate"`
	CommissionState      string `json:"commissionState"`
	CountyOfResidence    string `json:"countyOfResidence"`
}

func commissionView(c *models.Commission) CommissionView {
	return CommissionView{
		ID:                   c.ID,
		CommissionNumber:     c.CommissionNumber,
		NameOnCommission:     c.NameOnCommission,
		CommissionExpireDate: time.Time(c.CommissionExpireDate).Format(services.DateLayout),
		CommissionState:      c.CommissionState,
		CountyOfResidence:    c.CountyOfResidence,
	}
}

type AssignmentView struct {
	ID                 uint64           `json:"id"`
	FileNumber         string           `json:"fileNumber"`
	DueDate            string           `json:"dueDate"`
	Notes              *string          `json:"notes"`
	ContactName        string           `json:"contactName"`
	ContactPhoneNumber string           `json:"contactPhoneNumber"`
	ContactEmail       string           `json:"contactEmail"`
	MeetingAddress     string           `json:"meetingAddress"`
	Rate               models.Rate      `json:"rate"`
	Type               string           `json:"type"`
	Status             string           `json:"status"`
	Customer           *CustomerSummary `json:"customer,omitempty"`
	Notary             *NotaryView      `json:"notary"`
}

func assignmentView(a *models.Assignment) AssignmentView {
	v := AssignmentView{
		ID:                 a.ID,
		FileNumber:         a.FileNumber,
		DueDate:            a.DueDate,
		Notes:              a.Notes,
		ContactName:        a.ContactName,
		ContactPhoneNumber: a.ContactPhoneNumber,
		ContactEmail:       a.ContactEmail,
		MeetingAddress:     a.MeetingAddress,
		Rate:               a.Rate,
		Type:               a.Type,
		Status:             a.Status,
		Notary:             notaryView(a.User),
	}
	if a.Customer.ID != 0 {
		v.Customer = &CustomerSummary{
			CustomerID:  a.Customer.ID,
			Name:        a.Customer.Name,
			PhoneNumber: a.Customer.PhoneNumber,
			Email:       a.Customer.Email,
		}
	}
	return v
}
