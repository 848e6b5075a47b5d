package httpapi

import "net/http"

func (s *Server) WeeklyReport(w http.ResponseWriter, r *http.Request) {
	email := CurrentEmail(r)
	username := ""
	if profile, err := s.Profiles.GetByEmail(r.Context(), email); err == nil && profile != nil {
		username = profile.Username
	}
	save := r.URL.Query().Get("save") == "true"
	report, err := s.Reports.BuildReport(r.Context(), email, username, save)
	if err != nil {
		WriteServiceError(w, err, "Failed to generate weekly report")
		return
	}
	WriteJSON(w, http.StatusOK, report)
}

func (s *Server) AllWeeklyReports(w http.ResponseWriter, r *http.Request) {
	if !IsStaff(r) {
		WriteError(w, http.StatusForbidden, "Access denied. Teachers only.")
		return
	}
	reports, err := s.Summaries.ListAll(r.Context())
	if err != nil {
		WriteServiceError(w, err, "Failed to fetch weekly reports")
		return
	}
	WriteJSON(w, http.StatusOK, reports)
}
