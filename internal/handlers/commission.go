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

const commissionNumberInUse = "Commission Number already in use"

// CommissionHandler handles a notary's own commissions
type CommissionHandler struct {
	Store *repository.Store
	Log   *zap.Logger
}

type commissionBody struct {
	Commission services.CommissionInput `json:"commission"`
}

func requireNotary(c *fiber.Ctx) (services.Principal, error) {
	p, err := principal(c)
	if err != nil {
		return p, err
	}
	if !p.IsNotary() {
		return p, types.Forbidden("Not Authorized")
	}
	return p, nil
}

// Add handles POST /commission/add
// @Summary Add a commission
// @Tags Commission
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body commissionBody true "Commission"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /commission/add [post]
func (h *CommissionHandler) Add(c *fiber.Ctx) error {
	p, err := requireNotary(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	var in services.CommissionInput
	if err := parseBody(c, "commission", &in); err != nil {
		return utils.SendError(c, err)
	}

	var m missing
	m.text("commissionNumber", in.CommissionNumber)
	m.text("nameOnCommission", in.NameOnCommission)
	m.text("commissionExpireDate", in.CommissionExpireDate)
	m.text("commissionState", in.CommissionState)
	m.text("countyOfResidence", in.CountyOfResidence)
	if err := m.err(); err != nil {
		return utils.SendError(c, err)
	}

	expires, err := services.ParseDate(in.CommissionExpireDate.Value)
	if err != nil {
		return utils.SendError(c, types.Validation("Invalid date, expected YYYY-MM-DD", "commissionExpireDate"))
	}

	commission := &models.Commission{
		CommissionNumber:     in.CommissionNumber.Value,
		NameOnCommission:     in.NameOnCommission.Value,
		CommissionExpireDate: expires,
		CommissionState:      in.CommissionState.Value,
		CountyOfResidence:    in.CountyOfResidence.Value,
		UserID:               p.ID,
	}
	if err := h.Store.Commissions.Create(c.UserContext(), commission); err != nil {
		return utils.SendError(c, storeError(h.Log, err, "commissionNumber", commissionNumberInUse, "Error adding commission"))
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, "Commission created successfully", fiber.Map{
		"commission": commissionView(commission),
	})
}

// Update handles PUT /commission/update
// @Summary Update a commission
// @Tags Commission
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body commissionBody true "Fields to change, with commissionId"
// @Success 200 {object} utils.MessageResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /commission/update [put]
func (h *CommissionHandler) Update(c *fiber.Ctx) error {
	p, err := requireNotary(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	var in services.CommissionInput
	if err := parseBody(c, "commission", &in); err != nil {
		return utils.SendError(c, err)
	}

	var m missing
	m.id("commissionId", in.CommissionID)
	if err := m.err(); err != nil {
		return utils.SendError(c, err)
	}

	ctx := c.UserContext()
	where := repository.Predicate{"id": in.CommissionID.Value.Uint64(), "user_id": p.ID}

	current, err := h.Store.Commissions.FindOne(ctx, where)
	if err != nil {
		return utils.SendError(c, storeError(h.Log, err, "", "", "Commission not found"))
	}

	fields, err := services.ResolveCommission(current, in)
	if err != nil {
		return utils.SendError(c, err)
	}

	if _, err := h.Store.Commissions.Update(ctx, fields, where); err != nil {
		return utils.SendError(c, storeError(h.Log, err, "commissionNumber", commissionNumberInUse, "Error updating commission"))
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Commission updated successfully", nil)
}

// Get handles GET /commission
// @Summary Get a commission
// @Tags Commission
// @Produce json
// @Security BearerAuth
// @Param commissionId query int true "Commission"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /commission [get]
func (h *CommissionHandler) Get(c *fiber.Ctx) error {
	p, err := requireNotary(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	commissionID, err := queryID(c, "commissionId")
	if err != nil {
		return utils.SendError(c, err)
	}
	var m missing
	m.id("commissionId", commissionID)
	if err := m.err(); err != nil {
		return utils.SendError(c, err)
	}

	commission, err := h.Store.Commissions.FindOne(c.UserContext(),
		repository.Predicate{"id": commissionID.Value.Uint64(), "user_id": p.ID})
	if err != nil {
		return utils.SendError(c, storeError(h.Log, err, "", "", "Commission not found"))
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Commission found", fiber.Map{"commission": commissionView(commission)})
}

// All handles GET /commission/all
// @Summary List own commissions
// @Tags Commission
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /commission/all [get]
func (h *CommissionHandler) All(c *fiber.Ctx) error {
	p, err := requireNotary(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	commissions, err := h.Store.Commissions.FindAll(c.UserContext(), repository.Predicate{"user_id": p.ID})
	if err != nil {
		return utils.SendError(c, storeError(h.Log, err, "", "", "Error listing commissions"))
	}

	views := make([]CommissionView, 0, len(commissions))
	for i := range commissions {
		views = append(views, commissionView(&commissions[i]))
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Commissions found", fiber.Map{"commissions": views})
}
