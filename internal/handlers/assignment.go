// assignment.go
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

package handlers

import (
	"context"
	"sort"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/notary-records/internal/models"
	"github.com/localnerve/notary-records/internal/repository"
	"github.com/localnerve/notary-records/internal/services"
	"github.com/localnerve/notary-records/internal/types"
	"github.com/localnerve/notary-records/internal/utils"
	"go.uber.org/zap"
)

// AssignmentHandler handles assignment routes. Employees manage every field;
// an active notary may see open assignments and their own, and accept one.
type AssignmentHandler struct {
	Store *repository.Store
	Log   *zap.Logger
}

type assignmentBody struct {
	Assignment services.AssignmentInput `json:"assignment"`
}

// requireAssignmentAccess lets employees and active notaries through
func requireAssignmentAccess(c *fiber.Ctx) (services.Principal, error) {
	p, err := principal(c)
	if err != nil {
		return p, err
	}
	if !p.IsEmployee() && !p.IsActiveNotary() {
		return p, types.Forbidden("Not Authorized")
	}
	return p, nil
}

// visible reports whether p may see a. Notaries see unassigned work and their own.
func visible(p services.Principal, a *models.Assignment) bool {
	if p.IsEmployee() {
		return true
	}
	return a.UserID == nil || *a.UserID == p.ID
}

// checkNotary verifies that id names a user on the notary track
func (h *AssignmentHandler) checkNotary(ctx context.Context, id uint64) error {
	_, err := h.Store.Users.FindOne(ctx, repository.Predicate{"id": id, "is_notary": true})
	if repository.IsNotFound(err) {
		return types.Validation("Notary not found", "notaryId")
	}
	if err != nil {
		return storeError(h.Log, err, "", "", "Error finding notary")
	}
	return nil
}

// Add handles POST /assignment/add
// @Summary Add an assignment
// @Tags Assignment
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body assignmentBody true "Assignment"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /assignment/add [post]
func (h *AssignmentHandler) Add(c *fiber.Ctx) error {
	if _, err := requireEmployee(c); err != nil {
		return utils.SendError(c, err)
	}

	var in services.AssignmentInput
	if err := parseBody(c, "assignment", &in); err != nil {
		return utils.SendError(c, err)
	}

	var m missing
	m.id("customerId", in.CustomerID)
	m.text("fileNumber", in.FileNumber)
	m.text("dueDate", in.DueDate)
	m.text("contactName", in.ContactName)
	m.text("contactPhoneNumber", in.ContactPhoneNumber)
	m.text("contactEmail", in.ContactEmail)
	m.text("meetingAddress", in.MeetingAddress)
	m.check("rate", in.Rate.Present())
	m.text("type", in.Type)
	m.text("status", in.Status)
	if err := m.err(); err != nil {
		return utils.SendError(c, err)
	}
	if in.Rate.Value.IsNegative() {
		return utils.SendError(c, types.Validation("Rate cannot be negative", "rate"))
	}

	ctx := c.UserContext()
	customerID := in.CustomerID.Value.Uint64()
	if _, err := h.Store.Customers.FindOne(ctx, repository.Predicate{"id": customerID}); err != nil {
		return utils.SendError(c, storeError(h.Log, err, "", "", "Customer not found"))
	}

	assignment := &models.Assignment{
		FileNumber:         in.FileNumber.Value,
		DueDate:            in.DueDate.Value,
		Notes:              in.Notes.Ptr(),
		ContactName:        in.ContactName.Value,
		ContactPhoneNumber: in.ContactPhoneNumber.Value,
		ContactEmail:       in.ContactEmail.Value,
		MeetingAddress:     in.MeetingAddress.Value,
		Rate:               in.Rate.Value,
		Type:               in.Type.Value,
		Status:             in.Status.Value,
		CustomerID:         customerID,
	}
	if in.NotaryID.Present() && in.NotaryID.Value != 0 {
		notaryID := in.NotaryID.Value.Uint64()
		if err := h.checkNotary(ctx, notaryID); err != nil {
			return utils.SendError(c, err)
		}
		assignment.UserID = &notaryID
	}

	if err := h.Store.Assignments.Create(ctx, assignment); err != nil {
		return utils.SendError(c, storeError(h.Log, err, "", "", "Error adding assignment"))
	}

	created, err := h.Store.Assignments.FindOne(ctx, repository.Predicate{"id": assignment.ID}, "Customer", "User")
	if err != nil {
		return utils.SendError(c, storeError(h.Log, err, "", "", "Error loading assignment"))
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, "Assignment created successfully", fiber.Map{
		"assignment": assignmentView(created),
	})
}

// Update handles PUT /assignment/update
// @Summary Update or accept an assignment
// @Description Employees may change every field. An active notary accepts an open assignment, or one already theirs, and may set its status.
// @Tags Assignment
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body assignmentBody true "Fields to change, with assignmentId and customerId"
// @Success 200 {object} utils.MessageResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /assignment/update [put]
func (h *AssignmentHandler) Update(c *fiber.Ctx) error {
	p, err := requireAssignmentAccess(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	var in services.AssignmentInput
	if err := parseBody(c, "assignment", &in); err != nil {
		return utils.SendError(c, err)
	}

	var m missing
	m.id("assignmentId", in.AssignmentID)
	m.id("customerId", in.CustomerID)
	if err := m.err(); err != nil {
		return utils.SendError(c, err)
	}

	ctx := c.UserContext()
	where := repository.Predicate{
		"id":          in.AssignmentID.Value.Uint64(),
		"customer_id": in.CustomerID.Value.Uint64(),
	}

	current, err := h.Store.Assignments.FindOne(ctx, where)
	if err != nil {
		return utils.SendError(c, storeError(h.Log, err, "", "", "Assignment not found"))
	}
	if !visible(p, current) {
		return utils.SendError(c, types.NotFound("Assignment not found"))
	}

	fields, err := services.ResolveAssignment(p, current, in)
	if err != nil {
		return utils.SendError(c, err)
	}

	if p.IsEmployee() && in.NotaryID.Present() {
		if err := h.checkNotary(ctx, in.NotaryID.Value.Uint64()); err != nil {
			return utils.SendError(c, err)
		}
	}

	if _, err := h.Store.Assignments.Update(ctx, fields, where); err != nil {
		return utils.SendError(c, storeError(h.Log, err, "", "", "Error updating assignment"))
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Assignment updated successfully", nil)
}

// Get handles GET /assignment
// @Summary Get an assignment
// @Tags Assignment
// @Produce json
// @Security BearerAuth
// @Param assignmentId query int true "Assignment"
// @Param customerId query int true "Owning customer"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /assignment [get]
func (h *AssignmentHandler) Get(c *fiber.Ctx) error {
	p, err := requireAssignmentAccess(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	assignmentID, err := queryID(c, "assignmentId")
	if err != nil {
		return utils.SendError(c, err)
	}
	customerID, err := queryID(c, "customerId")
	if err != nil {
		return utils.SendError(c, err)
	}

	var m missing
	m.id("assignmentId", assignmentID)
	m.id("customerId", customerID)
	if err := m.err(); err != nil {
		return utils.SendError(c, err)
	}

	assignment, err := h.Store.Assignments.FindOne(c.UserContext(), repository.Predicate{
		"id":          assignmentID.Value.Uint64(),
		"customer_id": customerID.Value.Uint64(),
	}, "Customer", "User")
	if err != nil {
		return utils.SendError(c, storeError(h.Log, err, "", "", "Assignment not found"))
	}
	if !visible(p, assignment) {
		return utils.SendError(c, types.NotFound("Assignment not found"))
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Assignment found", fiber.Map{"assignment": assignmentView(assignment)})
}

// All handles GET /assignment/all
// @Summary List assignments
// @Description Employees may filter by customerId and status. Active notaries see open assignments and their own.
// @Tags Assignment
// @Produce json
// @Security BearerAuth
// @Param customerId query int false "Owning customer"
// @Param status query string false "Status"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /assignment/all [get]
func (h *AssignmentHandler) All(c *fiber.Ctx) error {
	p, err := requireAssignmentAccess(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	customerID, err := queryID(c, "customerId")
	if err != nil {
		return utils.SendError(c, err)
	}

	filter := repository.Predicate{}
	if customerID.Present() {
		filter["customer_id"] = customerID.Value.Uint64()
	}
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		filter["status"] = status
	}

	ctx := c.UserContext()
	var assignments []models.Assignment
	if p.IsEmployee() {
		assignments, err = h.Store.Assignments.FindAll(ctx, filter, "Customer", "User")
	} else {
		assignments, err = h.notaryAssignments(ctx, p.ID, filter)
	}
	if err != nil {
		return utils.SendError(c, storeError(h.Log, err, "", "", "Error listing assignments"))
	}

	views := make([]AssignmentView, 0, len(assignments))
	for i := range assignments {
		views = append(views, assignmentView(&assignments[i]))
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Assignments found", fiber.Map{"assignments": views})
}

// notaryAssignments lists the open assignments plus those held by notaryID
func (h *AssignmentHandler) notaryAssignments(ctx context.Context, notaryID uint64, filter repository.Predicate) ([]models.Assignment, error) {
	open := repository.Predicate{"user_id": nil}
	own := repository.Predicate{"user_id": notaryID}
	for k, v := range filter {
		open[k] = v
		own[k] = v
	}

	unassigned, err := h.Store.Assignments.FindAll(ctx, open, "Customer", "User")
	if err != nil {
		return nil, err
	}
	held, err := h.Store.Assignments.FindAll(ctx, own, "Customer", "User")
	if err != nil {
		return nil, err
	}

	all := append(unassigned, held...)
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all, nil
}
