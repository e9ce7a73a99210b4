package server

func (s *Server) initRoutes() {
	s.RegisterRouteFunc("GET "+RouteHealth, s.HealthHandler())

	// Auth
	s.RegisterRouteFunc("POST "+RouteAuthRegister, ChainMiddleware(s.RegisterHandler(), s.APIMiddleware()...))
	s.RegisterRouteFunc("POST "+RouteAuthLogin, ChainMiddleware(s.LoginHandler(), s.APIMiddleware()...))
	s.RegisterRouteFunc("GET "+RouteAuthMe, ChainMiddleware(s.MeHandler(), s.APIMiddleware(s.RequireAuth())...))

	// Contacts, all scoped to the caller
	for _, collection := range []string{RouteContacts, RouteContactsSlash} {
		s.RegisterRouteFunc("POST "+collection, ChainMiddleware(s.CreateContactHandler(), s.APIMiddleware(s.RequireAuth())...))
		s.RegisterRouteFunc("GET "+collection, ChainMiddleware(s.ListContactsHandler(), s.APIMiddleware(s.RequireAuth())...))
	}
	s.RegisterRouteFunc("GET "+RouteContact, ChainMiddleware(s.GetContactHandler(), s.APIMiddleware(s.RequireAuth())...))
	s.RegisterRouteFunc("PUT "+RouteContact, ChainMiddleware(s.UpdateContactHandler(), s.APIMiddleware(s.RequireAuth())...))
	s.RegisterRouteFunc("DELETE "+RouteContact, ChainMiddleware(s.DeleteContactHandler(), s.APIMiddleware(s.RequireAuth())...))
	s.RegisterRouteFunc("PATCH "+RouteContactFavourite, ChainMiddleware(s.ToggleFavouriteHandler(), s.APIMiddleware(s.RequireAuth())...))
}
