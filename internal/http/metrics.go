package httpapi

import (
	"net/http"

	"github.com/gorilla/websocket"
)

// MetricsSocket streams metric samples to admins. The token rides the
// query string because browsers cannot set headers on websocket
// upgrades.
func (s *Server) MetricsSocket(w http.ResponseWriter, r *http.Request) {
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		WriteError(w, http.StatusUnauthorized, "Authentication failed")
		return
	}
	email, err := s.Verifier.Email(tokenStr)
	if err != nil || email == "" {
		WriteError(w, http.StatusUnauthorized, "Authentication failed")
		return
	}
	profile, err := s.Profiles.GetByEmail(r.Context(), email)
	if err != nil || profile == nil || profile.Role != "admin" {
		WriteError(w, http.StatusForbidden, "Not allowed")
		return
	}

	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool { return true },
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	// replay recent history before joining the hub so replay and
	// broadcast writes never interleave on one connection
	for _, sample := range s.MetricsHub.History(120) {
		if err := conn.WriteJSON(sample); err != nil {
			_ = conn.Close()
			return
		}
	}
	s.MetricsHub.Add(conn)
	defer func() {
		s.MetricsHub.Remove(conn)
		_ = conn.Close()
	}()
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
