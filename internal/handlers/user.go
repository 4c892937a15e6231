package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gestion-rh/apiserver/internal/services"
	"github.com/gestion-rh/apiserver/types"
	"github.com/go-chi/chi/v5"
	"github.com/op/go-logging"
)

// UserHandler exposes list/create endpoints for user accounts.
type UserHandler struct {
	userService *services.UserService
	log         *logging.Logger
}

func NewUserHandler(userService *services.UserService, log *logging.Logger) *UserHandler {
	return &UserHandler{userService: userService, log: log}
}

// UserRouter registers user routes on the given router.
func UserRouter(r chi.Router, userService *services.UserService, log *logging.Logger) {
	handler := NewUserHandler(userService, log)

	r.Get("/", handler.ListUsers)
	r.Post("/", handler.CreateUser)
}

// UserCreateRequest carries the account fields. The password is write-only:
// it is accepted here and never emitted in any response.
type UserCreateRequest struct {
	LastName  string `json:"nom"`
	FirstName string `json:"prenom"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Password  string `json:"mot_de_passe"`
}

func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.List(r.Context())
	if err != nil {
		h.log.Errorf("erreur lors de la récupération des utilisateurs: %v", err)
		writeError(w, http.StatusInternalServerError, msgInternalError)
		return
	}
	writeData(w, http.StatusOK, users)
}

func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req UserCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidRequest)
		return
	}

	created, err := h.userService.Create(r.Context(), types.User{
		LastName:  req.LastName,
		FirstName: req.FirstName,
		Email:     req.Email,
		Role:      req.Role,
		Password:  req.Password,
	})
	if err != nil {
		var validation *types.ValidationError
		if errors.As(err, &validation) {
			writeError(w, http.StatusBadRequest, validation.Fields)
			return
		}
		h.log.Errorf("erreur lors de la création de l'utilisateur: %v", err)
		writeError(w, http.StatusInternalServerError, msgInternalError)
		return
	}

	writeData(w, http.StatusCreated, created)
}
