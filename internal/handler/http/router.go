package http

import (
	"log/slog"
	"os"

	"github.com/fieldtrack/fieldtrack-backend-go/internal/config"
	"github.com/fieldtrack/fieldtrack-backend-go/internal/handler/http/middleware"
	"github.com/fieldtrack/fieldtrack-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type Handlers struct {
	Auth       AuthHandler
	Employee   EmployeeHandler
	Attendance AttendanceHandler
	Activity   ActivityHandler
	Leave      LeaveHandler
	Report     ReportHandler
}

func NewRouter(cfg *config.Config, jwtService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "fieldtrack"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.App.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
			r.Post("/forgot-password", h.Auth.ForgotPassword)
			r.Post("/reset-password", h.Auth.ResetPassword)

			// Requires authentication
			r.Group(func(r chi.Router) {
				r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
				r.Use(middleware.AuthRequired(jwtService.JWTAuth()))
				r.Post("/change-password", h.Auth.ChangePassword)
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/employees", func(r chi.Router) {
				r.Get("/{id}", h.Employee.Get)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Get("/", h.Employee.List)
					r.Post("/", h.Employee.Create)
					r.Put("/{id}", h.Employee.Update)
					r.Delete("/{id}", h.Employee.Delete)
					r.Get("/{id}/attendance", h.Attendance.GetEmployeeReport)
					r.Get("/{id}/leave", h.Leave.ListByEmployee)
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				// Employee only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireEmployee)
					r.Post("/check-in", h.Attendance.CheckIn)
					r.Post("/check-out", h.Attendance.CheckOut)
					r.Get("/daily", h.Attendance.GetDaily)
					r.Get("/history", h.Attendance.GetRange)
					r.Get("/status", h.Attendance.CheckStatus)
				})

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Get("/daily/all", h.Attendance.GetDailyAll)
					r.Get("/monthly", h.Attendance.GetMonthly)
					r.Patch("/{id}/reject", h.Attendance.Reject)
				})
			})

			r.Route("/activities", func(r chi.Router) {
				// Employee only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireEmployee)
					r.Post("/", h.Activity.Submit)
					r.Get("/", h.Activity.ListMine)
					r.Put("/{id}", h.Activity.Edit)
				})

				r.Get("/{id}", h.Activity.Get)
				r.Delete("/{id}", h.Activity.Delete)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Get("/reports", h.Activity.Reports)
				})
			})

			r.Route("/leave", func(r chi.Router) {
				// Employee only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireEmployee)
					r.Post("/", h.Leave.Apply)
					r.Get("/", h.Leave.ListMine)
					r.Put("/{id}", h.Leave.Edit)
					r.Delete("/{id}", h.Leave.Delete)
				})

				r.Get("/{id}", h.Leave.Get)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireAdmin)
					r.Get("/all", h.Leave.ListAll)
					r.Patch("/{id}/status", h.Leave.UpdateStatus)
					r.Delete("/{id}/admin", h.Leave.AdminDelete)
				})
			})

			// Admin only
			r.Route("/reports", func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				r.Get("/attendance/daily", h.Report.DownloadDailyAttendance)
				r.Get("/attendance", h.Report.DownloadAttendanceRange)
				r.Get("/leave", h.Report.DownloadLeaveApplications)
				r.Get("/activities", h.Report.DownloadActivityReports)
			})
		})
	})

	return r
}
