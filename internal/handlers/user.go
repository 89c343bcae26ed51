// user.go
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
	"bytes"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/notary-records/internal/middleware"
	"github.com/localnerve/notary-records/internal/models"
	"github.com/localnerve/notary-records/internal/repository"
	"github.com/localnerve/notary-records/internal/services"
	"github.com/localnerve/notary-records/internal/types"
	"github.com/localnerve/notary-records/internal/utils"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const emailInUse = "Email address already in use."

// UserHandler handles account routes
type UserHandler struct {
	Store       *repository.Store
	Credentials *services.Credentials
	Blacklist   services.TokenBlacklist
	Log         *zap.Logger
}

type userBody struct {
	User services.UserInput `json:"user"`
}

// Register handles POST /user/register
// @Summary Register a user
// @Description Create a notary account and return a session token. New accounts are inactive notaries.
// @Tags User
// @Accept json
// @Produce json
// @Param body body userBody true "User to register"
// @Success 201 {object} utils.TokenResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /user/register [post]
func (h *UserHandler) Register(c *fiber.Ctx) error {
	var in services.UserInput
	if err := parseBody(c, "user", &in); err != nil {
		return utils.SendError(c, err)
	}

	var m missing
	m.text("email", in.Email)
	m.text("firstName", in.FirstName)
	m.text("lastName", in.LastName)
	m.text("phoneNumber", in.PhoneNumber)
	m.text("password", in.Password)
	if err := m.err(); err != nil {
		return utils.SendError(c, err)
	}

	digest, err := h.Credentials.HashPassword(in.Password.Value)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return utils.SendError(c, types.Validation("Password is too long", "password"))
		}
		h.Log.Error("Failed to hash password", zap.Error(err))
		return utils.SendError(c, types.Internal("Server Error", err))
	}

	user := &models.User{
		Email:       in.Email.Value,
		FirstName:   in.FirstName.Value,
		MiddleName:  in.MiddleName.Ptr(),
		LastName:    in.LastName.Value,
		Suffix:      in.Suffix.Ptr(),
		PhoneNumber: in.PhoneNumber.Value,
		Password:    digest,
		IsNotary:    true,
	}
	if err := h.Store.Users.Create(c.UserContext(), user); err != nil {
		return utils.SendError(c, storeError(h.Log, err, "email", emailInUse, "Error creating user"))
	}

	token, err := h.Credentials.IssueToken(user.ID)
	if err != nil {
		h.Log.Error("Failed to issue token", zap.Error(err))
		return utils.SendError(c, types.Internal("Server Error", err))
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, "User Created Successfully", fiber.Map{"token": token})
}

// Login handles POST /user/login
// @Summary Log in
// @Description Exchange email and password for a session token
// @Tags User
// @Accept json
// @Produce json
// @Param body body userBody true "Credentials"
// @Success 200 {object} utils.TokenResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /user/login [post]
func (h *UserHandler) Login(c *fiber.Ctx) error {
	var in services.UserInput
	if err := parseBody(c, "user", &in); err != nil {
		return utils.SendError(c, err)
	}

	var m missing
	m.text("email", in.Email)
	m.text("password", in.Password)
	if err := m.err(); err != nil {
		return utils.SendError(c, err)
	}

	invalid := types.Unauthenticated("Invalid email and/or password")

	user, err := h.Store.Users.FindOne(c.UserContext(), repository.Predicate{"email": in.Email.Value})
	if err != nil {
		if repository.IsNotFound(err) {
			return utils.SendError(c, invalid)
		}
		return utils.SendError(c, storeError(h.Log, err, "", "", "Server Error"))
	}
	if !h.Credentials.VerifyPassword(in.Password.Value, user.Password) {
		return utils.SendError(c, invalid)
	}
	if _, err := services.DerivePrincipal(user); err != nil {
		h.Log.Info("Login refused", zap.Uint64("user_id", user.ID), zap.Error(err))
		return utils.SendError(c, types.Forbidden("Forbidden"))
	}

	token, err := h.Credentials.IssueToken(user.ID)
	if err != nil {
		h.Log.Error("Failed to issue token", zap.Error(err))
		return utils.SendError(c, types.Internal("Server Error", err))
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "User logged in", fiber.Map{"token": token})
}

// Logout handles POST /user/logout
// @Summary Log out
// @Description Revoke the presented session token until it expires
// @Tags User
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.MessageResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /user/logout [post]
func (h *UserHandler) Logout(c *fiber.Ctx) error {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok || h.Blacklist == nil {
		return utils.SendError(c, types.Unauthenticated("Not Authorized"))
	}

	if err := h.Blacklist.Revoke(c.UserContext(), claims.ID, h.Credentials.Remaining(claims)); err != nil {
		h.Log.Error("Failed to revoke token", zap.Error(err))
		return utils.SendError(c, types.Internal("Error logging out", err))
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "User logged out", nil)
}

// Update handles PUT /user/update
// @Summary Update a user
// @Description Users update their own profile. Employees passing userId update notary activation; super employees also employee and super flags.
// @Tags User
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body userBody true "Fields to change"
// @Success 200 {object} utils.MessageResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /user/update [put]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	var in services.UserInput
	if err := parseBody(c, "user", &in); err != nil {
		return utils.SendError(c, err)
	}

	ctx := c.UserContext()
	var (
		targetID uint64
		fields   map[string]any
	)

	if p.IsEmployee() && in.UserID.Set {
		if !in.UserID.Present() || in.UserID.Value == 0 {
			return utils.SendError(c, types.Validation("Invalid identifier", "userId"))
		}
		targetID = in.UserID.Value.Uint64()
		target, err := h.Store.Users.FindOne(ctx, repository.Predicate{"id": targetID})
		if err != nil {
			return utils.SendError(c, storeError(h.Log, err, "", "", "User not found"))
		}
		if fields, err = services.ResolveUserFlags(p, target, in); err != nil {
			return utils.SendError(c, err)
		}
	} else {
		targetID = p.ID
		current, err := h.Store.Users.FindOne(ctx, repository.Predicate{"id": targetID})
		if err != nil {
			return utils.SendError(c, storeError(h.Log, err, "", "", "User not found"))
		}
		if fields, err = services.ResolveProfile(h.Credentials, current, in); err != nil {
			return utils.SendError(c, err)
		}
	}

	if _, err := h.Store.Users.Update(ctx, fields, repository.Predicate{"id": targetID}); err != nil {
		return utils.SendError(c, storeError(h.Log, err, "email", emailInUse, "Error updating user record"))
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "User updated successfully", nil)
}

// Profile handles GET /user/profile
// @Summary Get a user profile
// @Description Returns the caller's profile, or for employees the profile named by userId, with addresses and commissions
// @Tags User
// @Produce json
// @Security BearerAuth
// @Param userId query int false "User to read (employees only)"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /user/profile [get]
func (h *UserHandler) Profile(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	userID, err := queryID(c, "userId")
	if err != nil {
		return utils.SendError(c, err)
	}

	targetID := p.ID
	if p.IsEmployee() && userID.Present() {
		targetID = userID.Value.Uint64()
	}

	user, err := h.Store.Users.FindOne(c.UserContext(), repository.Predicate{"id": targetID}, "Addresses", "Commissions")
	if err != nil {
		return utils.SendError(c, storeError(h.Log, err, "", "", "User not found"))
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "User found", fiber.Map{"user": userView(user)})
}

// notaryFilter builds the roster predicate from the optional active query flag
func notaryFilter(c *fiber.Ctx) (repository.Predicate, error) {
	where := repository.Predicate{"is_notary": true}
	if raw := c.Query("active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, types.Validation("Invalid filter", "active")
		}
		where["is_active_notary"] = active
	}
	return where, nil
}

// Notaries handles GET /user/notaries
// @Summary List notaries
// @Tags User
// @Produce json
// @Security BearerAuth
// @Param active query bool false "Filter by activation"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /user/notaries [get]
func (h *UserHandler) Notaries(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return utils.SendError(c, err)
	}
	if !p.IsEmployee() {
		return utils.SendError(c, types.Forbidden("Not Authorized"))
	}

	where, err := notaryFilter(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	users, err := h.Store.Users.FindAll(c.UserContext(), where)
	if err != nil {
		return utils.SendError(c, storeError(h.Log, err, "", "", "Error listing notaries"))
	}

	views := make([]UserView, 0, len(users))
	for i := range users {
		views = append(views, userView(&users[i]))
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Notaries found", fiber.Map{"notaries": views})
}

// ExportNotaries handles GET /user/notaries/export
// @Summary Export the notary roster
// @Tags User
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param active query bool false "Filter by activation"
// @Success 200 {file} file
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /user/notaries/export [get]
func (h *UserHandler) ExportNotaries(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return utils.SendError(c, err)
	}
	if !p.IsEmployee() {
		return utils.SendError(c, types.Forbidden("Not Authorized"))
	}

	where, err := notaryFilter(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	users, err := h.Store.Users.FindAll(c.UserContext(), where, "Commissions")
	if err != nil {
		return utils.SendError(c, storeError(h.Log, err, "", "", "Error exporting notaries"))
	}

	var buf bytes.Buffer
	if err := services.WriteNotaryRoster(&buf, users); err != nil {
		h.Log.Error("Failed to render roster", zap.Error(err))
		return utils.SendError(c, types.Internal("Error exporting notaries", err))
	}

	c.Attachment("notaries.xlsx")
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	return c.Status(fiber.StatusOK).Send(buf.Bytes())
}
