package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/leavedesk/leavedesk-backend-go/internal/handler/http/middleware"
	"github.com/leavedesk/leavedesk-backend-go/internal/pkg/jwt"
)

func NewRouter(JWTService jwt.Service, authHandler AuthHandler, leaveHandler LeaveHandler, dashboardHandler DashboardHandler) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "leavedesk"),
		slog.String("version", "v1.0.0"),
		slog.String("env", "development"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.RefreshToken)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/leave", func(r chi.Router) {
				r.Post("/requests", leaveHandler.CreateRequest)
				r.Get("/requests/my", leaveHandler.GetMyRequests)
				r.Delete("/requests/{id}", leaveHandler.CancelRequest)
				r.Get("/balance", leaveHandler.GetBalance)
				r.Get("/stats", dashboardHandler.GetEmployeeStats)

				// Manager only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Get("/requests/pending", leaveHandler.ListPending)
					r.Post("/requests/{id}/approve", leaveHandler.ApproveRequest)
					r.Post("/requests/{id}/reject", leaveHandler.RejectRequest)
					r.Get("/requests/team", leaveHandler.ListTeamHistory)
					r.Get("/schedule", leaveHandler.GetSchedule)
					r.Get("/balances", leaveHandler.GetTeamBalances)
					r.Get("/manager-stats", dashboardHandler.GetManagerStats)
				})
			})
		})
	})
	return r
}
