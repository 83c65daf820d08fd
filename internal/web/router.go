package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/wfs/skijoring/internal/handlers"
)

func Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", handlers.Health)

	// Auth (public)
	r.Post("/api/auth/signup", handlers.SignUp)
	r.Post("/api/auth/signin", handlers.SignIn)
	r.Post("/api/auth/signout", handlers.SignOut)

	// Cart pickup-code QR; the code itself is the credential.
	r.Get("/qr/{code}.png", handlers.QR)

	// Competitor-facing API
	r.Group(func(pr chi.Router) {
		pr.Use(handlers.RequireUser)

		pr.Get("/api/account", handlers.AccountShow)
		pr.Post("/api/account", handlers.AccountUpdate)

		pr.Get("/api/competitors", handlers.SearchCompetitors)

		pr.Get("/api/cart", handlers.CurrentCart)
		pr.Post("/api/cart", handlers.SubmitCart)
		pr.Post("/api/cart/finalize", handlers.FinalizeCart)
		pr.Post("/api/cart/reopen", handlers.ReopenCart)
		pr.Get("/api/my/teams", handlers.MyTeams)
		pr.Post("/api/teams/{id}/scratch", handlers.ScratchTeam)

		pr.Post("/api/waitlist", handlers.JoinWaitlist)
	})

	// Admin API (login + role guard)
	r.Route("/api/admin", func(ar chi.Router) {
		ar.Use(handlers.RequireUser)
		ar.Use(handlers.RequireAdmin)

		ar.Get("/overview", handlers.AdminOverview)

		ar.Get("/teams", handlers.AdminTeams)
		ar.Post("/teams/{id}/status", handlers.AdminTeamStatus)
		ar.Post("/teams/{id}/delete", handlers.AdminTeamDelete)
		ar.Post("/teams/{id}/number", handlers.AdminTeamNumber)

		ar.Post("/registration/toggle", handlers.AdminToggleRegistration)

		ar.Get("/users", handlers.AdminUsers)
		ar.Post("/users/{id}/role", handlers.AdminUserRole)
		ar.Post("/users/{id}/delete", handlers.AdminUserDelete)

		ar.Get("/waitlist", handlers.AdminWaitlist)
		ar.Post("/waitlist/{id}/status", handlers.AdminWaitlistStatus)
	})

	return r
}
