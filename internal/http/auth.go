package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"goaltracker-backend-go/internal/services"
)

type contextKey string

const (
	ctxEmail contextKey = "email"
	ctxRole  contextKey = "role"
)

// TokenVerifier checks bearer tokens. With a secret configured it
// demands a valid HS256 signature and issuer; without one it runs in
// demo mode and takes the email claim from the unverified payload, so
// the API stays usable against the in-memory store.
type TokenVerifier struct {
	Secret []byte
	Issuer string
}

func (v TokenVerifier) Email(tokenStr string) (string, error) {
	claims := jwt.MapClaims{}
	if len(v.Secret) == 0 {
		_, _, err := jwt.NewParser().ParseUnverified(tokenStr, claims)
		if err != nil {
			return "", err
		}
		email, _ := claims["email"].(string)
		return email, nil
	}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return v.Secret, nil
	}, jwt.WithIssuer(v.Issuer), jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return "", services.ErrUnauthorized("Unauthorized - Invalid token")
	}
	email, _ := claims["email"].(string)
	return email, nil
}

// WithAuth resolves the caller's email from the bearer token and their
// role from the profile store, defaulting to student when no profile
// exists yet.
func WithAuth(verifier TokenVerifier, profiles *services.UserProfileRepository) func(http.Handler) http.Handler {
	demoMode := len(verifier.Secret) == 0
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				if !demoMode {
					WriteError(w, http.StatusUnauthorized, "Unauthorized - No token provided")
					return
				}
				// demo mode tolerates anonymous callers
			}
			tokenStr := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))

			email := "demo@example.com"
			if tokenStr != "" {
				resolved, err := verifier.Email(tokenStr)
				switch {
				case err == nil && resolved != "":
					email = resolved
				case !demoMode:
					WriteError(w, http.StatusUnauthorized, "Unauthorized - Invalid token")
					return
				default:
					// demo mode: fall back to the raw token as identity
					email = tokenStr
				}
			} else if !demoMode {
				WriteError(w, http.StatusUnauthorized, "Unauthorized - No token provided")
				return
			}

			role := "student"
			if profile, err := profiles.GetByEmail(r.Context(), email); err == nil && profile != nil {
				role = profile.Role
			}

			ctx := context.WithValue(r.Context(), ctxEmail, email)
			ctx = context.WithValue(ctx, ctxRole, role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func CurrentEmail(r *http.Request) string {
	if value, ok := r.Context().Value(ctxEmail).(string); ok {
		return value
	}
	return ""
}

func CurrentRole(r *http.Request) string {
	if value, ok := r.Context().Value(ctxRole).(string); ok {
		return value
	}
	return "student"
}

// IsStaff reports whether the caller may see other students' data.
func IsStaff(r *http.Request) bool {
	role := CurrentRole(r)
	return role == "teacher" || role == "admin"
}
