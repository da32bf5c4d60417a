package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterAuthRoutes sets up the public OAuth login and callback endpoints.
func RegisterAuthRoutes(r chi.Router) {
	r.Route("/auth", func(subRouter chi.Router) {
		subRouter.Get("/github/login", GithubLoginHandler)
		subRouter.Get("/github/callback", GithubCallbackHandler)
		subRouter.Get("/apple/login", AppleLoginHandler)
		// Apple posts the authorization response (response_mode=form_post).
		subRouter.Post("/apple/callback", AppleCallbackHandler)
	})
}

// RegisterProtectedRoutes sets up the endpoints that require a live session
// but don't belong to a larger route group.
func RegisterProtectedRoutes(r chi.Router) {
	r.Get("/me", CurrentUserHandler)
	r.Post("/auth/logout", LogoutHandler)
}
