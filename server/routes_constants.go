package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos.
// The /api/auth paths are fixed: the existing client depends on them.
const (
	// Auth Routes - Registration & staged login
	RouteAuthRegister        = "/api/auth/register"
	RouteAuthVerifyColor     = "/api/auth/verify-color"
	RouteAuthVerifySport     = "/api/auth/verify-sport"
	RouteAuthVerifyGraphical = "/api/auth/verify-graphical"

	// Auth Routes - Authenticated surface
	RouteAuthMe     = "/api/auth/me"
	RouteAuthLogout = "/api/auth/logout"

	// Profile
	RouteUsersProfile = "/api/users/profile"

	// Feedback
	RouteFeedback   = "/api/feedback"
	RouteFeedbackMe = "/api/feedback/me"

	// Image catalog
	RouteImages = "/api/images"
)
