package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/notary-records/internal/models"
	"github.com/localnerve/notary-records/internal/repository"
	"github.com/localnerve/notary-records/internal/services"
	"github.com/localnerve/notary-records/internal/utils"
	"go.uber.org/zap"
)

const contactEmailInUse = "Contact email address already in use."

// ContactHandler handles customer contact routes. Every route is employee
// only and scoped to the customerId in the request.
type ContactHandler struct {
	Store *repository.Store
	Log   *zap.Logger
}

type contactBody struct {
	Contact services.ContactInput `json:"contact"`
}

// Add handles POST /customer/contact/add
// @Summary Add a contact to a customer
// @Tags Contact
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body contactBody true "Contact"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /customer/contact/add [post]
func (h *ContactHandler) Add(c *fiber.Ctx) error {
	if _, err := requireEmployee(c); err != nil {
		return utils.SendError(c, err)
	}

	var in services.ContactInput
	if err := parseBody(c, "contact", &in); err != nil {
		return utils.SendError(c, err)
	}

	var m missing
	m.id("customerId", in.CustomerID)
	m.text("name", in.Name)
	m.text("email", in.Email)
	m.text("phoneNumber", in.PhoneNumber)
	if err := m.err(); err != nil {
		return utils.SendError(c, err)
	}

	ctx := c.UserContext()
	customerID := in.CustomerID.Value.Uint64()
	if _, err := h.Store.Customers.FindOne(ctx, repository.Predicate{"id": customerID}); err != nil {
		return utils.SendError(c, storeError(h.Log, err, "", "", "Customer not found"))
	}

	contact := &models.Contact{
		Name:        in.Name.Value,
		Email:       in.Email.Value,
		PhoneNumber: in.PhoneNumber.Value,
		CustomerID:  customerID,
	}
	if err := h.Store.Contacts.Create(ctx, contact); err != nil {
		return utils.SendError(c, storeError(h.Log, err, "email", contactEmailInUse, "Error adding contact"))
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, "Contact created successfully", fiber.Map{
		"contact": contactView(contact),
	})
}

// Update handles PUT /customer/contact/update
// @Summary Update a contact
// @Tags Contact
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body contactBody true "Fields to change, with contactId and customerId"
// @Success 200 {object} utils.MessageResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /customer/contact/update [put]
func (h *ContactHandler) Update(c *fiber.Ctx) error {
	if _, err := requireEmployee(c); err != nil {
		return utils.SendError(c, err)
	}

	var in services.ContactInput
	if err := parseBody(c, "contact", &in); err != nil {
		return utils.SendError(c, err)
	}

	var m missing
	m.id("contactId", in.ContactID)
	m.id("customerId", in.CustomerID)
	if err := m.err(); err != nil {
		return utils.SendError(c, err)
	}

	ctx := c.UserContext()
	where := repository.Predicate{
		"id":          in.ContactID.Value.Uint64(),
		"customer_id": in.CustomerID.Value.Uint64(),
	}

	current, err := h.Store.Contacts.FindOne(ctx, where)
	if err != nil {
		return utils.SendError(c, storeError(h.Log, err, "", "", "Contact not found"))
	}

	fields, err := services.ResolveContact(current, in)
	if err != nil {
		return utils.SendError(c, err)
	}

	if _, err := h.Store.Contacts.Update(ctx, fields, where); err != nil {
		return utils.SendError(c, storeError(h.Log, err, "email", contactEmailInUse, "Error updating contact"))
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Contact updated successfully", nil)
}

// Get handles GET /customer/contact
// @Summary Get a contact
// @Tags Contact
// @Produce json
// @Security BearerAuth
// @Param contactId query int true "Contact"
// @Param customerId query int true "Owning customer"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /customer/contact [get]
func (h *ContactHandler) Get(c *fiber.Ctx) error {
	if _, err := requireEmployee(c); err != nil {
		return utils.SendError(c, err)
	}

	contactID, err := queryID(c, "contactId")
	if err != nil {
		return utils.SendError(c, err)
	}
	customerID, err := queryID(c, "customerId")
	if err != nil {
		return utils.SendError(c, err)
	}

	var m missing
	m.id("contactId", contactID)
	m.id("customerId", customerID)
	if err := m.err(); err != nil {
		return utils.SendError(c, err)
	}

	contact, err := h.Store.Contacts.FindOne(c.UserContext(), repository.Predicate{
		"id":          contactID.Value.Uint64(),
		"customer_id": customerID.Value.Uint64(),
	})
	if err != nil {
		return utils.SendError(c, storeError(h.Log, err, "", "", "Contact not found"))
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Contact found", fiber.Map{"contact": contactView(contact)})
}

// All handles GET /customer/contact/all
// @Summary List a customer's contacts
// @Tags Contact
// @Produce json
// @Security BearerAuth
// @Param customerId query int true "Owning customer"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /customer/contact/all [get]
func (h *ContactHandler) All(c *fiber.Ctx) error {
	if _, err := requireEmployee(c); err != nil {
		return utils.SendError(c, err)
	}

	customerID, err := queryID(c, "customerId")
	if err != nil {
		return utils.SendError(c, err)
	}
	var m missing
	m.id("customerId", customerID)
	if err := m.err(); err != nil {
		return utils.SendError(c, err)
	}

	contacts, err := h.Store.Contacts.FindAll(c.UserContext(), repository.Predicate{"customer_id": customerID.Value.Uint64()})
	if err != nil {
		return utils.SendError(c, storeError(h.Log, err, "", "", "Error listing contacts"))
	}

	views := make([]ContactView, 0, len(contacts))
	for i := range contacts {
		views = append(views, contactView(&contacts[i]))
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Contacts found", fiber.Map{"contacts": views})
}

// Delete handles DELETE /customer/contact/delete
// @Summary Delete a contact
// @Description Deleting a contact that does not exist succeeds with a message saying so
// @Tags Contact
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body contactBody true "contactId and customerId"
// @Success 200 {object} utils.MessageResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /customer/contact/delete [delete]
func (h *ContactHandler) Delete(c *fiber.Ctx) error {
	if _, err := requireEmployee(c); err != nil {
		return utils.SendError(c, err)
	}

	var in services.ContactInput
	if err := parseBody(c, "contact", &in); err != nil {
		return utils.SendError(c, err)
	}

	var m missing
	m.id("contactId", in.ContactID)
	m.id("customerId", in.CustomerID)
	if err := m.err(); err != nil {
		return utils.SendError(c, err)
	}

	count, err := h.Store.Contacts.Destroy(c.UserContext(), repository.Predicate{
		"id":          in.ContactID.Value.Uint64(),
		"customer_id": in.CustomerID.Value.Uint64(),
	})
	if err != nil {
		return utils.SendError(c, storeError(h.Log, err, "", "", "Error deleting contact"))
	}

	if count == 0 {
		return utils.SuccessResponse(c, fiber.StatusOK, "No contact found to delete", fiber.Map{"deleted": count})
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Contact removed successfully", fiber.Map{"deleted": count})
}
