// common.go
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
	"encoding/json"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/notary-records/internal/middleware"
	"github.com/localnerve/notary-records/internal/repository"
	"github.com/localnerve/notary-records/internal/services"
	"github.com/localnerve/notary-records/internal/types"
	"go.uber.org/zap"
)

// principal returns the caller attached by the session middleware
func principal(c *fiber.Ctx) (services.Principal, error) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		return services.Principal{}, types.Unauthenticated("Not Authorized")
	}
	return p, nil
}

// parseBody decodes the payload nested under key, e.g. {"user": {...}}.
// A body without key decodes as an empty payload.
func parseBody(c *fiber.Ctx, key string, dst any) error {
	body := c.Body()
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return types.Validation("Invalid request body")
	}
	raw, ok := envelope[key]
	if !ok || string(raw) == "null" {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		if field := fieldOf(err); field != "" {
			return types.Validation("Invalid "+key+" payload", field)
		}
		return types.Validation("Invalid " + key + " payload")
	}
	return nil
}

// fieldOf names the offending field of a decode error when json reports one
func fieldOf(err error) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		parts := strings.Split(typeErr.Field, ".")
		return parts[len(parts)-1]
	}
	return ""
}

// queryID reads an identifier from the query string. An absent key is
// returned as an absent Optional.
func queryID(c *fiber.Ctx, name string) (types.Optional[types.ID], error) {
	raw := c.Query(name)
	if raw == "" {
		return types.Optional[types.ID]{}, nil
	}
	id, err := types.ParseID(raw)
	if err != nil {
		return types.Optional[types.ID]{}, types.Validation("Invalid identifier", name)
	}
	return types.Some(id), nil
}

// missing collects the required fields absent from a payload so they can
// be reported together
type missing []string

// text requires a non-blank string
func (m *missing) text(name string, o types.Optional[string]) {
	if !o.Present() || strings.TrimSpace(o.Value) == "" {
		*m = append(*m, name)
	}
}

// id requires a non-zero identifier
func (m *missing) id(name string, o types.Optional[types.ID]) {
	if !o.Present() || o.Value == 0 {
		*m = append(*m, name)
	}
}

// check records name when present is false
func (m *missing) check(name string, present bool) {
	if !present {
		*m = append(*m, name)
	}
}

func (m missing) err() error {
	if len(m) == 0 {
		return nil
	}
	return types.MissingFields(m...)
}

// storeError maps a repository failure onto the error taxonomy. uniqueField
// names the field reported on a unique collision. Causes of internal errors
// are logged, never returned.
func storeError(log *zap.Logger, err error, uniqueField, uniqueMessage, failMessage string) error {
	var custom *types.CustomError
	switch {
	case errors.As(err, &custom):
		return custom
	case repository.IsUnique(err):
		return types.UniqueConstraint(uniqueField, uniqueMessage)
	case repository.IsValidation(err):
		return types.Validation("ValidationError")
	case repository.IsNotFound(err):
		return types.NotFound(failMessage)
	}
	log.Error(failMessage, zap.Error(err))
	return types.Internal(failMessage, err)
}
