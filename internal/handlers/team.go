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

// TeamHandler exposes list/create endpoints for teams.
type TeamHandler struct {
	teamService *services.TeamService
	log         *logging.Logger
}

func NewTeamHandler(teamService *services.TeamService, log *logging.Logger) *TeamHandler {
	return &TeamHandler{teamService: teamService, log: log}
}

// TeamRouter registers team routes on the given router.
func TeamRouter(r chi.Router, teamService *services.TeamService, log *logging.Logger) {
	handler := NewTeamHandler(teamService, log)

	r.Get("/", handler.ListTeams)
	r.Post("/", handler.CreateTeam)
}

type TeamCreateRequest struct {
	Name        string  `json:"nom"`
	Description *string `json:"description"`
}

func (h *TeamHandler) ListTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.teamService.List(r.Context())
	if err != nil {
		h.log.Errorf("erreur lors de la récupération des équipes: %v", err)
		writeError(w, http.StatusInternalServerError, msgInternalError)
		return
	}
	writeData(w, http.StatusOK, teams)
}

func (h *TeamHandler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	var req TeamCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidRequest)
		return
	}

	created, err := h.teamService.Create(r.Context(), types.Team{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		var validation *types.ValidationError
		if errors.As(err, &validation) {
			writeError(w, http.StatusBadRequest, validation.Fields)
			return
		}
		h.log.Errorf("erreur lors de la création de l'équipe: %v", err)
		writeError(w, http.StatusInternalServerError, msgInternalError)
		return
	}

	writeData(w, http.StatusCreated, created)
}
