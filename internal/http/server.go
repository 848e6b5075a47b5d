package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"goaltracker-backend-go/internal/config"
	"goaltracker-backend-go/internal/services"
)

type Server struct {
	Config     config.Config
	Verifier   TokenVerifier
	Goals      *services.GoalsRepository
	Profiles   *services.UserProfileRepository
	Summaries  *services.WeeklySummaryRepository
	Reports    *services.ReportService
	MetricsHub *services.MetricsHub
}

func NewServer(cfg config.Config, goals *services.GoalsRepository, profiles *services.UserProfileRepository,
	summaries *services.WeeklySummaryRepository, reports *services.ReportService, hub *services.MetricsHub) *Server {
	return &Server{
		Config: cfg,
		Verifier: TokenVerifier{
			Secret: []byte(cfg.AuthSecret),
			Issuer: cfg.AuthIssuer,
		},
		Goals:      goals,
		Profiles:   profiles,
		Summaries:  summaries,
		Reports:    reports,
		MetricsHub: hub,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(RequestLogger)
	if len(s.Config.CorsOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.Config.CorsOrigins,
			AllowedMethods:   []string{"GET", "POST", "PATCH", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		WriteJSON(w, http.StatusOK, map[string]string{"message": "AI Goal Tracker API"})
	})

	auth := WithAuth(s.Verifier, s.Profiles)

	r.Route("/goals", func(goals chi.Router) {
		goals.Use(auth)
		goals.Post("/", s.AddGoal)
		goals.Get("/", s.ListGoals)
		goals.Patch("/{goalId}", s.UpdateGoal)
	})

	r.Route("/profile", func(profile chi.Router) {
		profile.Use(auth)
		profile.Get("/", s.GetProfile)
		profile.Post("/", s.SaveProfile)
	})

	r.Route("/weekly-report", func(weekly chi.Router) {
		weekly.Use(auth)
		weekly.Get("/", s.WeeklyReport)
		weekly.Get("/all", s.AllWeeklyReports)
	})

	r.Get("/ws/metrics", s.MetricsSocket)
	return r
}
