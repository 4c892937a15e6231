package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gestion-rh/apiserver/internal/services"
	"github.com/go-chi/chi/v5"
	"github.com/op/go-logging"
)

// AuthHandler exposes the login and token-refresh endpoints.
type AuthHandler struct {
	authService *services.AuthService
	log         *logging.Logger
}

func NewAuthHandler(authService *services.AuthService, log *logging.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, log: log}
}

// AuthRouter registers authentication routes on the given router.
func AuthRouter(r chi.Router, authService *services.AuthService, log *logging.Logger) {
	handler := NewAuthHandler(authService, log)

	r.Post("/login", handler.Login)
	r.Post("/token/refresh", handler.Refresh)
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"mot_de_passe"`
}

// LoginUser is the user payload of a successful login.
type LoginUser struct {
	ID        int    `json:"id_utilisateur"`
	Email     string `json:"email"`
	LastName  string `json:"nom"`
	FirstName string `json:"prenom"`
	Role      string `json:"role"`
}

type LoginResponse struct {
	Success      bool      `json:"success"`
	Message      string    `json:"message"`
	User         LoginUser `json:"user"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
}

type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

type RefreshResponse struct {
	Success     bool   `json:"success"`
	AccessToken string `json:"access_token"`
}

// Login authenticates a user and returns a token pair. An unknown email and a
// wrong password produce byte-identical failure responses.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidRequest)
		return
	}

	result, err := h.authService.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingCredentials):
			writeError(w, http.StatusBadRequest, "Email et mot de passe requis")
		case errors.Is(err, services.ErrInvalidCredentials):
			writeError(w, http.StatusUnauthorized, "Email ou mot de passe incorrect")
		case errors.Is(err, services.ErrRoleNotAllowed):
			writeError(w, http.StatusForbidden, "Rôle non autorisé")
		default:
			h.log.Errorf("erreur lors de la connexion: %v", err)
			writeError(w, http.StatusInternalServerError, msgInternalError)
		}
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{
		Success: true,
		Message: "Connexion réussie",
		User: LoginUser{
			ID:        result.User.ID,
			Email:     result.User.Email,
			LastName:  result.User.LastName,
			FirstName: result.User.FirstName,
			Role:      result.Role,
		},
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
	})
}

// Refresh exchanges a valid refresh token for a fresh access token.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidRequest)
		return
	}
	if strings.TrimSpace(req.Refresh) == "" {
		writeError(w, http.StatusBadRequest, "Token de rafraîchissement requis")
		return
	}

	accessToken, err := h.authService.Refresh(r.Context(), req.Refresh)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidToken), errors.Is(err, services.ErrRoleNotAllowed):
			writeError(w, http.StatusUnauthorized, "Token invalide ou expiré")
		default:
			h.log.Errorf("erreur lors du rafraîchissement du token: %v", err)
			writeError(w, http.StatusInternalServerError, msgInternalError)
		}
		return
	}

	writeJSON(w, http.StatusOK, RefreshResponse{Success: true, AccessToken: accessToken})
}
