package routers

import (
	"intake-service/internal/app/delivery/http/controllers"
	"intake-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachAuthRoutes(
	router chi.Router,
	middlewares *middlewares.Middlewares,
	credentialLimiter *middlewares.RateLimiter,
	authController *controllers.AuthController,
	sessionController *controllers.SessionController,
) {
	router.Group(func(r chi.Router) {
		if credentialLimiter != nil {
			r.Use(credentialLimiter.Limit)
		}
		r.Post("/register", authController.Register)
		r.Post("/login", authController.Login)
		r.Post("/forgot-password", authController.ForgotPassword)
		r.Post("/reset-password", authController.ResetPassword)
	})

	router.Group(func(r chi.Router) {
		r.Use(middlewares.Authenticate)
		r.Post("/logout", authController.Logout)
		r.Post("/refresh", authController.RefreshSession)
		r.Get("/session", authController.GetSession)
		r.Get("/session/events", sessionController.StreamEvents)
	})
}
