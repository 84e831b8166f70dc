package server

func (s *Server) initRoutes() {
	// Registration and the three-stage login protocol
	s.RegisterRouteHandler("POST "+RouteAuthRegister, ChainMiddleware(s.RegisterHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteAuthVerifyColor, ChainMiddleware(s.VerifyColorHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteAuthVerifySport, ChainMiddleware(s.VerifySportHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteAuthVerifyGraphical, ChainMiddleware(s.VerifyGraphicalHandler(), s.APIMiddleware()...))

	// Bearer-token protected surface
	s.RegisterRouteHandler("GET "+RouteAuthMe, ChainMiddleware(s.MeHandler(), s.AuthenticatedAPIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteAuthLogout, ChainMiddleware(s.LogoutHandler(), s.AuthenticatedAPIMiddleware()...))
	s.RegisterRouteHandler("PUT "+RouteUsersProfile, ChainMiddleware(s.UpdateProfileHandler(), s.AuthenticatedAPIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteFeedback, ChainMiddleware(s.CreateFeedbackHandler(), s.AuthenticatedAPIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteFeedbackMe, ChainMiddleware(s.ListFeedbackHandler(), s.AuthenticatedAPIMiddleware()...))

	// Public image catalog (ids and bounds only, never pixel data)
	s.RegisterRouteHandler("GET "+RouteImages, ChainMiddleware(s.ImagesHandler(), s.APIMiddleware()...))
}
