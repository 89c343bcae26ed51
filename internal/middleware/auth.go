// auth.go
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

package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/notary-records/internal/repository"
	"github.com/localnerve/notary-records/internal/services"
	"github.com/localnerve/notary-records/internal/types"
	"go.uber.org/zap"
)

const (
	principalKey = "principal"
	claimsKey    = "claims"
)

// SessionConfig wires the session middleware. Blacklist is optional.
type SessionConfig struct {
	Credentials *services.Credentials
	Principals  services.PrincipalResolver
	Blacklist   services.TokenBlacklist
	Log         *zap.Logger
}

// RequireSession validates the bearer token and attaches the caller's
// Principal. The user row is re-read on every request.
func RequireSession(cfg SessionConfig) fiber.Handler {
	log := cfg.Log
	if log == nil {
		log = zap.NewNop()
	}

	return func(c *fiber.Ctx) error {
		// Pre-flight requests carry no credentials
		if c.Method() == fiber.MethodOptions {
			return c.Next()
		}

		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return types.Forbidden("Forbidden")
		}
		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))

		claims, err := cfg.Credentials.VerifyToken(token)
		if err != nil {
			if errors.Is(err, services.ErrTokenExpired) {
				return &types.CustomError{Code: fiber.StatusUnauthorized, Message: "Session expired", Type: "tokenExpired"}
			}
			return types.Unauthenticated("Not Authorized")
		}

		if cfg.Blacklist != nil {
			revoked, err := cfg.Blacklist.IsRevoked(c.UserContext(), claims.ID)
			if err != nil {
				log.Error("Failed to check token blacklist", zap.Error(err))
				return types.Internal("Failed to validate session", err)
			}
			if revoked {
				return types.Unauthenticated("Not Authorized")
			}
		}

		principal, err := cfg.Principals.Resolve(c.UserContext(), claims.UserID)
		switch {
		case err == nil:
		case errors.Is(err, repository.ErrNotFound):
			return types.Unauthenticated("Not Authorized")
		case errors.Is(err, services.ErrRevokedEmployee), errors.Is(err, services.ErrRoleInvariant):
			log.Info("Session rejected", zap.Uint64("user_id", claims.UserID), zap.Error(err))
			return types.Forbidden("Forbidden")
		default:
			log.Error("Failed to resolve session principal", zap.Uint64("user_id", claims.UserID), zap.Error(err))
			return types.Internal("Failed to validate session", err)
		}

		c.Locals(principalKey, principal)
		c.Locals(claimsKey, claims)
		return c.Next()
	}
}

// PrincipalFrom returns the Principal attached by RequireSession
func PrincipalFrom(c *fiber.Ctx) (services.Principal, bool) {
	p, ok := c.Locals(principalKey).(services.Principal)
	return p, ok
}

// ClaimsFrom returns the verified token claims attached by RequireSession
func ClaimsFrom(c *fiber.Ctx) (*services.Claims, bool) {
	claims, ok := c.Locals(claimsKey).(*services.Claims)
	return claims, ok
}
