package routes

import (
	"github.com/gofiber/fiber/v2"

	"surfcamp/internal/handlers"
)

// Route is one entry of the startup-built routing table. Public defaults to
// false: a route is protected unless declared otherwise, and the auth gate
// is inserted in front of every protected handler at mount time.
type Route struct {
	Method  string
	Path    string
	Public  bool
	Handler fiber.Handler
}

// Handlers groups everything the table needs.
type Handlers struct {
	Auth     *handlers.AuthHandler
	Users    *handlers.UserHandler
	Bookings *handlers.BookingHandler
	Settings *handlers.SettingHandler
}

// Table builds the full route table. Sign-up, sign-in, the public booking
// form submission and the reference-settings reads it depends on are open;
// everything else requires a verified identity.
func Table(h Handlers) []Route {
	return []Route{
		{Method: fiber.MethodPost, Path: "/auth/sign-up", Public: true, Handler: h.Auth.HandleSignUp},
		{Method: fiber.MethodPost, Path: "/auth/sign-in", Public: true, Handler: h.Auth.HandleSignIn},
		{Method: fiber.MethodPatch, Path: "/auth/email", Handler: h.Auth.HandleUpdateEmail},
		{Method: fiber.MethodPatch, Path: "/auth/password", Handler: h.Auth.HandleUpdatePassword},
		{Method: fiber.MethodDelete, Path: "/auth/deactivate", Handler: h.Auth.HandleDeactivate},
		{Method: fiber.MethodDelete, Path: "/auth", Handler: h.Auth.HandleDelete},

		{Method: fiber.MethodGet, Path: "/users/me", Handler: h.Users.HandleMe},
		{Method: fiber.MethodPatch, Path: "/users/me", Handler: h.Users.HandleUpdateMe},

		{Method: fiber.MethodPost, Path: "/bookings", Public: true, Handler: h.Bookings.HandleCreate},
		{Method: fiber.MethodGet, Path: "/bookings", Handler: h.Bookings.HandleList},
		{Method: fiber.MethodGet, Path: "/bookings/:id", Handler: h.Bookings.HandleGet},
		{Method: fiber.MethodPut, Path: "/bookings/:id", Handler: h.Bookings.HandleUpdate},
		{Method: fiber.MethodDelete, Path: "/bookings/:id", Handler: h.Bookings.HandleDestroy},

		{Method: fiber.MethodGet, Path: "/settings/countries", Public: true, Handler: h.Settings.HandleListCountries},
		{Method: fiber.MethodGet, Path: "/settings/countries/:id", Public: true, Handler: h.Settings.HandleGetCountry},
		{Method: fiber.MethodPost, Path: "/settings/countries", Handler: h.Settings.HandleCreateCountry},
		{Method: fiber.MethodPut, Path: "/settings/countries/:id", Handler: h.Settings.HandleUpdateCountry},
		{Method: fiber.MethodDelete, Path: "/settings/countries/:id", Handler: h.Settings.HandleDeleteCountry},

		{Method: fiber.MethodGet, Path: "/settings/surfboards", Public: true, Handler: h.Settings.HandleListSurfboards},
		{Method: fiber.MethodGet, Path: "/settings/surfboards/:id", Public: true, Handler: h.Settings.HandleGetSurfboard},
		{Method: fiber.MethodPost, Path: "/settings/surfboards", Handler: h.Settings.HandleCreateSurfboard},
		{Method: fiber.MethodPut, Path: "/settings/surfboards/:id", Handler: h.Settings.HandleUpdateSurfboard},
		{Method: fiber.MethodDelete, Path: "/settings/surfboards/:id", Handler: h.Settings.HandleDeleteSurfboard},
	}
}

// Mount registers the table on the router, inserting authGate before every
// protected handler.
func Mount(router fiber.Router, table []Route, authGate fiber.Handler) {
	for _, r := range table {
		if r.Public {
			router.Add(r.Method, r.Path, r.Handler)
		} else {
			router.Add(r.Method, r.Path, authGate, r.Handler)
		}
	}
}
