package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Gongwasubash/restro/internal/api/middleware"
	"github.com/Gongwasubash/restro/internal/domain"
	"github.com/Gongwasubash/restro/internal/gateway"
	"github.com/Gongwasubash/restro/internal/nav"
	"github.com/Gongwasubash/restro/internal/session"
)

// Authenticator is the slice of the gateway the auth endpoints consume.
// Credential checking happens entirely on the gateway side.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (domain.User, error)
	Register(ctx context.Context, name, email, password string) (domain.User, error)
}

// AuthHandlers handles login, registration and logout. On success the
// reported identity is recorded verbatim in the session store; on failure
// nothing changes and the reported message is surfaced.
type AuthHandlers struct {
	gw       Authenticator
	sessions *session.Store
	log      *logrus.Logger
}

func NewAuthHandlers(gw Authenticator, sessions *session.Store, logger *logrus.Logger) *AuthHandlers {
	return &AuthHandlers{gw: gw, sessions: sessions, log: logger}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	User     domain.User `json:"user"`
	Redirect string      `json:"redirect"`
}

// landing is where a fresh login lands: admins on the dashboard, everyone
// else on home.
func landing(u domain.User) string {
	if u.IsAdmin() {
		return nav.PathAdmin
	}
	return nav.PathHome
}

func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		respondJSONError(w, "Email and password are required", http.StatusBadRequest)
		return
	}

	user, err := h.gw.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondJSONError(w, gateway.UserMessage(err), http.StatusUnauthorized)
		return
	}

	if err := h.sessions.Login(w, r, user); err != nil {
		h.log.Errorf("Auth: failed to persist identity: %v", err)
		respondJSONError(w, "Could not start a session", http.StatusInternalServerError)
		return
	}

	h.log.WithFields(logrus.Fields{
		"user_id": user.ID,
		"role":    user.Role,
	}).Info("Auth: login")

	respondJSON(w, http.StatusOK, AuthResponse{User: user, Redirect: landing(user)})
}

func (h *AuthHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if req.Name == "" || req.Email == "" || req.Password == "" {
		respondJSONError(w, "Name, email and password are required", http.StatusBadRequest)
		return
	}

	user, err := h.gw.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		respondJSONError(w, gateway.UserMessage(err), http.StatusUnauthorized)
		return
	}

	if err := h.sessions.Login(w, r, user); err != nil {
		h.log.Errorf("Auth: failed to persist identity: %v", err)
		respondJSONError(w, "Could not start a session", http.StatusInternalServerError)
		return
	}

	h.log.WithField("user_id", user.ID).Info("Auth: registration")

	respondJSON(w, http.StatusOK, AuthResponse{User: user, Redirect: landing(user)})
}

func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if u, ok := middleware.CurrentUser(r.Context()); ok {
		h.log.WithField("user_id", u.ID).Info("Auth: logout")
	}
	h.sessions.Logout(w)
	respondJSON(w, http.StatusOK, map[string]string{"redirect": nav.PathHome})
}

// Me returns the current identity, or 401 for anonymous visitors.
func (h *AuthHandlers) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.CurrentUser(r.Context())
	if !ok {
		respondJSONError(w, "Not signed in", http.StatusUnauthorized)
		return
	}
	respondJSON(w, http.StatusOK, user)
}
