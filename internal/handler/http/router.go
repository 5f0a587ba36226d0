package http

import (
	"log/slog"
	"os"

	"github.com/cmlabs-hris/attendance-payroll/internal/handler/http/middleware"
	"github.com/cmlabs-hris/attendance-payroll/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterOptions struct {
	AllowedOrigins []string
	Env            string
	Version        string
	LogLevel       slog.Level
}

func NewRouter(opts RouterOptions, JWTService jwt.Service, payrollHandler PayrollHandler, attendanceHandler AttendanceHandler) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(opts.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attendance-payroll"),
		slog.String("version", opts.Version),
		slog.String("env", opts.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  opts.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))

	r.Route("/api/v1", func(r chi.Router) {

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired)

			r.Route("/payroll", func(r chi.Router) {
				r.With(chiMiddleware.AllowContentType("application/json")).Post("/duration", payrollHandler.CalculateDuration)
				r.Get("/working-days", payrollHandler.GetWorkingDays)
				r.Get("/summary", payrollHandler.GetSummary)
				r.Get("/export", payrollHandler.Export)

				r.Route("/reports", func(r chi.Router) {
					r.Get("/", payrollHandler.ListReports)
					r.Get("/{employeeID}", payrollHandler.GetEmployeeReport)
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Get("/daily", attendanceHandler.DailySheet)
				r.Get("/monthly", attendanceHandler.MonthlySheet)
				r.Get("/monthly/export", attendanceHandler.ExportMonthlySheet)
			})
		})
	})
	return r
}
