package routes

import (
	"joblane/auth"
	"joblane/backend"
	"joblane/companies"
	"joblane/jobs"
	"joblane/middleware"
	"joblane/profile"
	"joblane/ratelim"
	"joblane/saved"

	"github.com/julienschmidt/httprouter"
)

func AddAuthRoutes(router *httprouter.Router, cli *backend.Client, rl *ratelim.RateLimiter) {
	h := auth.NewHandlers(cli)
	router.POST("/api/auth/login", rl.Limit(h.Login))
	router.POST("/api/auth/register", rl.Limit(h.Register))
	router.POST("/api/auth/logout", h.Logout)
	router.GET("/api/auth/session", h.Session)
}

func AddJobRoutes(router *httprouter.Router, cli *backend.Client, rl *ratelim.RateLimiter) {
	h := jobs.NewHandlers(cli)
	router.GET("/api/jobs", middleware.OptionalAuth(h.List))
	router.GET("/api/jobs/:id", middleware.OptionalAuth(h.Detail))
	router.POST("/api/jobs", rl.Limit(middleware.Authenticate(h.Create)))
	router.PUT("/api/jobs/:id", rl.Limit(middleware.Authenticate(h.Update)))
	router.DELETE("/api/jobs/:id", rl.Limit(middleware.Authenticate(h.Delete)))
	router.POST("/api/jobs/:id/view", middleware.OptionalAuth(h.TrackView))
	router.POST("/api/jobs/:id/apply", rl.Limit(middleware.Authenticate(h.Apply)))
	router.POST("/api/jobs/:id/save", middleware.Authenticate(h.Save))
	router.DELETE("/api/jobs/:id/save", middleware.Authenticate(h.Unsave))

	router.GET("/api/dashboard/jobs", middleware.Authenticate(h.ListOwn))
}

func AddSavedRoutes(router *httprouter.Router, cli *backend.Client) {
	h := saved.NewHandlers(cli)
	router.GET("/api/saved", middleware.Authenticate(h.GetSavedJobs))
	router.DELETE("/api/saved/:id", middleware.Authenticate(h.RemoveSavedJob))
}

func AddCompanyRoutes(router *httprouter.Router, cli *backend.Client, rl *ratelim.RateLimiter) {
	h := companies.NewHandlers(cli)
	router.GET("/api/companies", h.GetCompanies)
	router.POST("/api/companies", rl.Limit(middleware.Authenticate(h.CreateCompany)))
}

func AddProfileRoutes(router *httprouter.Router, cli *backend.Client) {
	h := profile.NewHandlers(cli)
	router.GET("/api/profile", middleware.Authenticate(h.GetProfile))
	router.PUT("/api/profile", middleware.Authenticate(h.SaveProfile))
	router.GET("/api/roles", middleware.Authenticate(h.GetRoles))
}
