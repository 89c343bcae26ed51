package services

import (
	"github.com/localnerve/notary-records/internal/models"
	"github.com/localnerve/notary-records/internal/types"
)

// Request payloads. Every field is tri-state so that an omitted key, an
// explicit null and a value can be told apart by the resolvers.

type UserInput struct {
	UserID           types.Optional[types.ID] `json:"userId"`
	Email            types.Optional[string]   `json:"email"`
	FirstName        types.Optional[string]   `json:"firstName"`
	MiddleName       types.Optional[string]   `json:"middleName"`
	LastName         types.Optional[string]   `json:"lastName"`
	Suffix           types.Optional[string]   `json:"suffix"`
	PhoneNumber      types.Optional[string]   `json:"phoneNumber"`
	Password         types.Optional[string]   `json:"password"`
	IsActiveNotary   types.Optional[bool]     `json:"isActiveNotary"`
	IsActiveEmployee types.Optional[bool]     `json:"isActiveEmployee"`
	IsSuper          types.Optional[bool]     `json:"isSuper"`
}

type CustomerInput struct {
	CustomerID   types.Optional[types.ID] `json:"customerId"`
	Name         types.Optional[string]   `json:"name"`
	PhoneNumber  types.Optional[string]   `json:"phoneNumber"`
	Email        types.Optional[string]   `json:"email"`
	CustomerType types.Optional[string]   `json:"customerType"`
	Notes        types.Optional[string]   `json:"notes"`
}

type ContactInput struct {
	ContactID   types.Optional[types.ID] `json:"contactId"`
	CustomerID  types.Optional[types.ID] `json:"customerId"`
	Name        types.Optional[string]   `json:"name"`
	Email       types.Optional[string]   `json:"email"`
	PhoneNumber types.Optional[string]   `json:"phoneNumber"`
}

type AddressInput struct {
	AddressID  types.Optional[types.ID] `json:"addressId"`
	CustomerID types.Optional[types.ID] `json:"customerId"`
	StreetOne  types.Optional[string]   `json:"streetOne"`
	StreetTwo  types.Optional[string]   `json:"streetTwo"`
	City       types.Optional[string]   `json:"city"`
	State      types.Optional[string]   `json:"state"`
	ZipCode    types.Optional[int]      `json:"zipCode"`
	Type       types.Optional[string]   `json:"type"`
}

type CommissionInput struct {
	CommissionID         types.Optional[types.ID] `json:"commissionId"`
	CommissionNumber     types.Optional[string]   `json:"commissionNumber"`
	NameOnCommission     types.Optional[string]   `json:"nameOnCommission"`
	CommissionExpireDate types.Optional[string]   `json:"commissionExpireDate"`
	CommissionState      types.Optional[string]   `json:"commissionState"`
	CountyOfResidence    types.Optional[string]   `json:"countyOfResidence"`
}

type AssignmentInput struct {
	AssignmentID       types.Optional[types.ID]    `json:"assignmentId"`
	CustomerID         types.Optional[types.ID]    `json:"customerId"`
	NotaryID           types.Optional[types.ID]    `json:"notaryId"`
	FileNumber         types.Optional[string]      `json:"fileNumber"`
	DueDate            types.Optional[string]      `json:"dueDate"`
	Notes              types.Optional[string]      `json:"notes"`
	ContactName        types.Optional[string]      `json:"contactName"`
	ContactPhoneNumber types.Optional[string]      `json:"contactPhoneNumber"`
	ContactEmail       types.Optional[string]      `json:"contactEmail"`
	MeetingAddress     types.Optional[string]      `json:"meetingAddress"`
	Rate               types.Optional[models.Rate] `json:"rate"`
	Type               types.Optional[string]      `json:"type"`
	Status             types.Optional[string]      `json:"status"`
}
