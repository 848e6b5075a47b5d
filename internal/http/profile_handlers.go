package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"goaltracker-backend-go/internal/models"
	"goaltracker-backend-go/internal/services"
)

type SaveProfileRequest struct {
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phase     *int   `json:"phase"`
	Role      string `json:"role"`
}

// GetProfile returns the caller's profile, provisioning one on first
// contact: the username is derived from the email local part, with up
// to two numbered fallbacks when the name is already claimed.
func (s *Server) GetProfile(w http.ResponseWriter, r *http.Request) {
	email := CurrentEmail(r)
	profile, err := s.Profiles.GetByEmail(r.Context(), email)
	if err != nil {
		WriteServiceError(w, err, "Failed to fetch profile")
		return
	}
	if profile != nil {
		WriteJSON(w, http.StatusOK, profile)
		return
	}

	base := usernameFromEmail(email)
	for attempt := 0; attempt < 3; attempt++ {
		candidate := base
		if attempt > 0 {
			candidate = fmt.Sprintf("%s%d", base, attempt)
		}
		created, err := s.Profiles.Upsert(r.Context(), models.UserProfile{
			Email:    email,
			Username: candidate,
			Role:     "student",
		})
		if err == nil {
			WriteJSON(w, http.StatusOK, created)
			return
		}
		if services.HasCode(err, services.CodeUsernameTaken) {
			continue
		}
		WriteServiceError(w, err, "Failed to fetch profile")
		return
	}
	WriteError(w, http.StatusNotFound, "Profile not found")
}

func (s *Server) SaveProfile(w http.ResponseWriter, r *http.Request) {
	var req SaveProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if strings.TrimSpace(req.Username) == "" {
		WriteError(w, http.StatusBadRequest, "Username is required")
		return
	}
	phase := 0
	if req.Phase != nil {
		phase = *req.Phase
	}
	if phase < 0 || phase > 7 {
		WriteError(w, http.StatusBadRequest, "Phase must be between 0 and 7")
		return
	}

	saved, err := s.Profiles.Upsert(r.Context(), models.UserProfile{
		Email:     CurrentEmail(r),
		Username:  strings.ToLower(strings.TrimSpace(req.Username)),
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Phase:     phase,
		Role:      req.Role,
	})
	if err != nil {
		WriteServiceError(w, err, "Failed to save profile")
		return
	}
	WriteJSON(w, http.StatusOK, saved)
}

func usernameFromEmail(email string) string {
	local := email
	if at := strings.Index(email, "@"); at > 0 {
		local = email[:at]
	}
	var b strings.Builder
	for _, r := range strings.ToLower(local) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
		if b.Len() == 20 {
			break
		}
	}
	if b.Len() == 0 {
		return "user"
	}
	return b.String()
}
