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

// AddressHandler handles address routes. A notary works on their own
// addresses; an employee works on the addresses of the customer named by
// customerId.
type AddressHandler struct {
	Store *repository.Store
	Log   *zap.Logger
}

type addressBody struct {
	Address services.AddressInput `json:"address"`
}

// requireAddressAccess lets notaries and employees through
func requireAddressAccess(c *fiber.Ctx) (services.Principal, error) {
	p, err := principal(c)
	if err != nil {
		return p, err
	}
	if !p.IsEmployee() && !p.IsNotary() {
		return p, types.Forbidden("Not Authorized")
	}
	return p, nil
}

// addressScope returns the ownership predicate for p
func addressScope(p services.Principal, customerID types.Optional[types.ID]) (repository.Predicate, error) {
	if p.IsEmployee() {
		var m missing
		m.id("customerId", customerID)
		if err := m.err(); err != nil {
			return nil, err
		}
		return repository.Predicate{"customer_id": customerID.Value.Uint64()}, nil
	}
	return repository.Predicate{"user_id": p.ID}, nil
}

// Add handles POST /address/add
// @Summary Add an address
// @Description Notaries add to their own profile, employees to the customer named by customerId
// @Tags Address
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body addressBody true "Address"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /address/add [post]
func (h *AddressHandler) Add(c *fiber.Ctx) error {
	p, err := requireAddressAccess(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	var in services.AddressInput
	if err := parseBody(c, "address", &in); err != nil {
		return utils.SendError(c, err)
	}

	scope, err := addressScope(p, in.CustomerID)
	if err != nil {
		return utils.SendError(c, err)
	}

	var m missing
	m.text("streetOne", in.StreetOne)
	m.text("city", in.City)
	m.text("state", in.State)
	m.check("zipCode", in.ZipCode.Present())
	m.text("type", in.Type)
	if err := m.err(); err != nil {
		return utils.SendError(c, err)
	}
	if in.ZipCode.Value <= 0 {
		return utils.SendError(c, types.Validation("Invalid zip code", "zipCode"))
	}

	address := &models.Address{
		StreetOne: in.StreetOne.Value,
		StreetTwo: in.StreetTwo.Ptr(),
		City:      in.City.Value,
		State:     in.State.Value,
		ZipCode:   in.ZipCode.Value,
		Type:      in.Type.Value,
	}

	ctx := c.UserContext()
	if id, ok := scope["customer_id"].(uint64); ok {
		if _, err := h.Store.Customers.FindOne(ctx, repository.Predicate{"id": id}); err != nil {
			return utils.SendError(c, storeError(h.Log, err, "", "", "Customer not found"))
		}
		address.CustomerID = &id
	} else {
		id := scope["user_id"].(uint64)
		address.UserID = &id
	}

	if err := h.Store.Addresses.Create(ctx, address); err != nil {
		return utils.SendError(c, storeError(h.Log, err, "", "", "Error adding address"))
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, "Address created successfully", fiber.Map{
		"address": addressView(address),
	})
}

// Update handles PUT /address/update
// @Summary Update an address
// @Tags Address
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body addressBody true "Fields to change, with addressId (and customerId for employees)"
// @Success 200 {object} utils.MessageResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /address/update [put]
func (h *AddressHandler) Update(c *fiber.Ctx) error {
	p, err := requireAddressAccess(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	var in services.AddressInput
	if err := parseBody(c, "address", &in); err != nil {
		return utils.SendError(c, err)
	}

	where, err := addressScope(p, in.CustomerID)
	if err != nil {
		return utils.SendError(c, err)
	}

	var m missing
	m.id("addressId", in.AddressID)
	if err := m.err(); err != nil {
		return utils.SendError(c, err)
	}
	where["id"] = in.AddressID.Value.Uint64()

	ctx := c.UserContext()
	current, err := h.Store.Addresses.FindOne(ctx, where)
	if err != nil {
		return utils.SendError(c, storeError(h.Log, err, "", "", "Address not found"))
	}

	fields, err := services.ResolveAddress(current, in)
	if err != nil {
		return utils.SendError(c, err)
	}

	if _, err := h.Store.Addresses.Update(ctx, fields, where); err != nil {
		return utils.SendError(c, storeError(h.Log, err, "", "", "Error updating address"))
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Address updated successfully", nil)
}

// Get handles GET /address
// @Summary Get an address
// @Tags Address
// @Produce json
// @Security BearerAuth
// @Param addressId query int true "Address"
// @Param customerId query int false "Owning customer, required for employees"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /address [get]
func (h *AddressHandler) Get(c *fiber.Ctx) error {
	p, err := requireAddressAccess(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	customerID, err := queryID(c, "customerId")
	if err != nil {
		return utils.SendError(c, err)
	}
	addressID, err := queryID(c, "addressId")
	if err != nil {
		return utils.SendError(c, err)
	}

	where, err := addressScope(p, customerID)
	if err != nil {
		return utils.SendError(c, err)
	}

	var m missing
	m.id("addressId", addressID)
	if err := m.err(); err != nil {
		return utils.SendError(c, err)
	}
	where["id"] = addressID.Value.Uint64()

	address, err := h.Store.Addresses.FindOne(c.UserContext(), where)
	if err != nil {
		return utils.SendError(c, storeError(h.Log, err, "", "", "Address not found"))
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Address found", fiber.Map{"address": addressView(address)})
}

// All handles GET /address/all
// @Summary List addresses
// @Description Notaries list their own, employees list a customer's
// @Tags Address
// @Produce json
// @Security BearerAuth
// @Param customerId query int false "Owning customer, required for employees"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /address/all [get]
func (h *AddressHandler) All(c *fiber.Ctx) error {
	p, err := requireAddressAccess(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	customerID, err := queryID(c, "customerId")
	if err != nil {
		return utils.SendError(c, err)
	}

	where, err := addressScope(p, customerID)
	if err != nil {
		return utils.SendError(c, err)
	}

	addresses, err := h.Store.Addresses.FindAll(c.UserContext(), where)
	if err != nil {
		return utils.SendError(c, storeError(h.Log, err, "", "", "Error listing addresses"))
	}

	views := make([]AddressView, 0, len(addresses))
	for i := range addresses {
		views = append(views, addressView(&addresses[i]))
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Addresses found", fiber.Map{"addresses": views})
}

// Delete handles DELETE /address/delete
// @Summary Delete an address
// @Description Deleting an address that does not exist succeeds with a message saying so
// @Tags Address
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body addressBody true "addressId (and customerId for employees)"
// @Success 200 {object} utils.MessageResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /address/delete [delete]
func (h *AddressHandler) Delete(c *fiber.Ctx) error {
	p, err := requireAddressAccess(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	var in services.AddressInput
	if err := parseBody(c, "address", &in); err != nil {
		return utils.SendError(c, err)
	}

	where, err := addressScope(p, in.CustomerID)
	if err != nil {
		return utils.SendError(c, err)
	}

	var m missing
	m.id("addressId", in.AddressID)
	if err := m.err(); err != nil {
		return utils.SendError(c, err)
	}
	where["id"] = in.AddressID.Value.Uint64()

	count, err := h.Store.Addresses.Destroy(c.UserContext(), where)
	if err != nil {
		return utils.SendError(c, storeError(h.Log, err, "", "", "Error deleting address"))
	}

	if count == 0 {
		return utils.SuccessResponse(c, fiber.StatusOK, "No address found to delete", fiber.Map{"deleted": count})
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Address removed successfully", fiber.Map{"deleted": count})
}
