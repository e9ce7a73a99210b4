package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	RouteHealth = "/health"

	// Auth Routes
	RouteAuthRegister = "/api/auth/register"
	RouteAuthLogin    = "/api/auth/login"
	RouteAuthMe       = "/api/auth/me"

	// Contact Routes. The collection is served with and without a trailing slash.
	RouteContacts         = "/api/contacts"
	RouteContactsSlash    = "/api/contacts/{$}"
	RouteContact          = "/api/contacts/{id}"
	RouteContactFavourite = "/api/contacts/{id}/favorite"
)

const pathValueContactID = "id"
