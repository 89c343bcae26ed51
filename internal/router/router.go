// router.go
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

package router

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	swagger "github.com/gofiber/swagger"
	"github.com/localnerve/notary-records/internal/config"
	"github.com/localnerve/notary-records/internal/handlers"
	"github.com/localnerve/notary-records/internal/middleware"
	"github.com/localnerve/notary-records/internal/repository"
	"github.com/localnerve/notary-records/internal/services"
	"github.com/localnerve/notary-records/internal/utils"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "github.com/localnerve/notary-records/docs/api" // Swagger docs
)

// Deps are the collaborators the HTTP surface is built from
type Deps struct {
	Config      *config.Config
	DB          *gorm.DB
	Credentials *services.Credentials
	Log         *zap.Logger

	// Blacklist enables /user/logout and revocation checks. Optional.
	Blacklist services.TokenBlacklist
	// Redis is reported by /health when set
	Redis services.Pinger
	// Registry receives the HTTP metrics. A fresh registry is used when nil.
	Registry *prometheus.Registry
}

// New builds the Fiber app with every route mounted
func New(d Deps) *fiber.App {
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}

	app := fiber.New(fiber.Config{
		ErrorHandler:          utils.SendError,
		DisableStartupMessage: true,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.Tracing(log))
	app.Use(compress.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: d.Config.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	// Prometheus metrics
	registry := d.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	metrics := fiberprometheus.NewWithRegistry(registry, d.Config.ServiceName, "http", "", nil)
	metrics.RegisterAt(app, "/metrics")
	app.Use(metrics.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	store := repository.NewStore(d.DB)
	session := middleware.RequireSession(middleware.SessionConfig{
		Credentials: d.Credentials,
		Principals:  services.NewStorePrincipals(store.Users),
		Blacklist:   d.Blacklist,
		Log:         log,
	})

	health := &handlers.HealthHandler{Config: d.Config, DB: d.DB, Redis: d.Redis, Log: log}
	app.Get("/health", health.Check)

	users := &handlers.UserHandler{Store: store, Credentials: d.Credentials, Blacklist: d.Blacklist, Log: log}
	user := app.Group("/user")
	limit := middleware.AuthRateLimit(d.Config.AuthRateLimit)
	user.Post("/register", limit, users.Register)
	user.Post("/login", limit, users.Login)
	if d.Blacklist != nil {
		user.Post("/logout", session, users.Logout)
	}
	user.Put("/update", session, users.Update)
	user.Get("/profile", session, users.Profile)
	user.Get("/notaries", session, users.Notaries)
	user.Get("/notaries/export", session, users.ExportNotaries)

	customers := &handlers.CustomerHandler{Store: store, Log: log}
	contacts := &handlers.ContactHandler{Store: store, Log: log}
	customer := app.Group("/customer")
	customer.Post("/add", session, customers.Add)
	customer.Put("/update", session, customers.Update)
	customer.Get("/profile", session, customers.Profile)
	customer.Get("/all", session, customers.All)
	customer.Post("/contact/add", session, contacts.Add)
	customer.Put("/contact/update", session, contacts.Update)
	customer.Get("/contact", session, contacts.Get)
	customer.Get("/contact/all", session, contacts.All)
	customer.Delete("/contact/delete", session, contacts.Delete)

	addresses := &handlers.AddressHandler{Store: store, Log: log}
	address := app.Group("/address")
	address.Post("/add", session, addresses.Add)
	address.Put("/update", session, addresses.Update)
	address.Get("/", session, addresses.Get)
	address.Get("/all", session, addresses.All)
	address.Delete("/delete", session, addresses.Delete)

	commissions := &handlers.CommissionHandler{Store: store, Log: log}
	commission := app.Group("/commission")
	commission.Post("/add", session, commissions.Add)
	commission.Put("/update", session, commissions.Update)
	commission.Get("/", session, commissions.Get)
	commission.Get("/all", session, commissions.All)

	assignments := &handlers.AssignmentHandler{Store: store, Log: log}
	assignment := app.Group("/assignment")
	assignment.Post("/add", session, assignments.Add)
	assignment.Put("/update", session, assignments.Update)
	assignment.Get("/", session, assignments.Get)
	assignment.Get("/all", session, assignments.All)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return utils.NotFoundResponse(c, "[404] Resource Not Found")
	})

	return app
}
