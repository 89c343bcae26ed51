package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/notary-records/internal/models"
	"github.com/localnerve/notary-records/internal/repository"
	"github.com/localnerve/notary-records/internal/services"
	"github.com/localnerve/notary-records/internal/types"
	"github.com/localnerve/notary-records/internal/utils"
	"go.uber.org/zap"
)

const customerEmailInUse = "Customer email address already in use."

// CustomerHandler handles customer routes. Every route is employee only.
type CustomerHandler struct {
	Store *repository.Store
	Log   *zap.Logger
}

type customerBody struct {
	Customer services.CustomerInput `json:"customer"`
}

// requireEmployee resolves the caller and fails with Forbidden unless they are an employee
func requireEmployee(c *fiber.Ctx) (services.Principal, error) {
	p, err := principal(c)
	if err != nil {
		return p, err
	}
	if !p.IsEmployee() {
		return p, types.Forbidden("Not Authorized")
	}
	return p, nil
}

// Add handles POST /customer/add
// @Summary Add a customer
// @Tags Customer
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body customerBody true "Customer"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /customer/add [post]
func (h *CustomerHandler) Add(c *fiber.Ctx) error {
	if _, err := requireEmployee(c); err != nil {
		return utils.SendError(c, err)
	}

	var in services.CustomerInput
	if err := parseBody(c, "customer", &in); err != nil {
		return utils.SendError(c, err)
	}

	var m missing
	m.text("name", in.Name)
	m.text("phoneNumber", in.PhoneNumber)
	m.text("email", in.Email)
	m.text("customerType", in.CustomerType)
	if err := m.err(); err != nil {
		return utils.SendError(c, err)
	}

	customer := &models.Customer{
		Name:         in.Name.Value,
		PhoneNumber:  in.PhoneNumber.Value,
		Email:        in.Email.Value,
		CustomerType: in.CustomerType.Value,
		Notes:        in.Notes.Ptr(),
	}
	if err := h.Store.Customers.Create(c.UserContext(), customer); err != nil {
		return utils.SendError(c, storeError(h.Log, err, "email", customerEmailInUse, "Error adding customer"))
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, "Customer created successfully", fiber.Map{
		"customer": customerView(customer),
	})
}

// Update handles PUT /customer/update
// @Summary Update a customer
// @Description Omitted fields keep their value; an explicit null clears notes
// @Tags Customer
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body customerBody true "Fields to change, with customerId"
// @Success 200 {object} utils.MessageResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /customer/update [put]
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	if _, err := requireEmployee(c); err != nil {
		return utils.SendError(c, err)
	}

	var in services.CustomerInput
	if err := parseBody(c, "customer", &in); err != nil {
		return utils.SendError(c, err)
	}

	var m missing
	m.id("customerId", in.CustomerID)
	if err := m.err(); err != nil {
		return utils.SendError(c, err)
	}

	ctx := c.UserContext()
	where := repository.Predicate{"id": in.CustomerID.Value.Uint64()}

	current, err := h.Store.Customers.FindOne(ctx, where)
	if err != nil {
		return utils.SendError(c, storeError(h.Log, err, "", "", "Customer not found"))
	}

	fields, err := services.ResolveCustomer(current, in)
	if err != nil {
		return utils.SendError(c, err)
	}

	if _, err := h.Store.Customers.Update(ctx, fields, where); err != nil {
		return utils.SendError(c, storeError(h.Log, err, "email", customerEmailInUse, "Error updating customer"))
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Customer update successful", nil)
}

// Profile handles GET /customer/profile
// @Summary Get a customer
// @Description Returns the customer with addresses, contacts and assignments
// @Tags Customer
// @Produce json
// @Security BearerAuth
// @Param customerId query int true "Customer"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /customer/profile [get]
func (h *CustomerHandler) Profile(c *fiber.Ctx) error {
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

	customer, err := h.Store.Customers.FindOne(c.UserContext(),
		repository.Predicate{"id": customerID.Value.Uint64()},
		"Addresses", "Contacts", "Assignments")
	if err != nil {
		return utils.SendError(c, storeError(h.Log, err, "", "", "Customer not found"))
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Customer Found", fiber.Map{"customer": customerView(customer)})
}

// All handles GET /customer/all
// @Summary List customers
// @Tags Customer
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /customer/all [get]
func (h *CustomerHandler) All(c *fiber.Ctx) error {
	if _, err := requireEmployee(c); err != nil {
		return utils.SendError(c, err)
	}

	customers, err := h.Store.Customers.FindAll(c.UserContext(), nil)
	if err != nil {
		return utils.SendError(c, storeError(h.Log, err, "", "", "Error listing customers"))
	}

	views := make([]CustomerView, 0, len(customers))
	for i := range customers {
		views = append(views, customerView(&customers[i]))
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Customers found", fiber.Map{"customers": views})
}
