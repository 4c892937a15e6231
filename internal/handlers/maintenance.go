package handlers

import (
	"net/http"
	"time"

	"github.com/gestion-rh/apiserver/internal/services"
	"github.com/go-chi/chi/v5"
	"github.com/op/go-logging"
)

// MaintenanceHandler exposes the diagnostics endpoints.
type MaintenanceHandler struct {
	maintenanceService *services.MaintenanceService
	log                *logging.Logger
}

func NewMaintenanceHandler(maintenanceService *services.MaintenanceService, log *logging.Logger) *MaintenanceHandler {
	return &MaintenanceHandler{maintenanceService: maintenanceService, log: log}
}

// MaintenanceRouter registers maintenance routes on the given router.
func MaintenanceRouter(r chi.Router, maintenanceService *services.MaintenanceService, log *logging.Logger) {
	handler := NewMaintenanceHandler(maintenanceService, log)

	r.Get("/status", handler.Status)
	r.Post("/backup", handler.Backup)
}

type BackupResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

type statusErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Status reports host cpu/memory/disk utilisation.
func (h *MaintenanceHandler) Status(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.maintenanceService.Status(r.Context())
	if err != nil {
		h.log.Errorf("erreur lors de la lecture des métriques système: %v", err)
		writeJSON(w, http.StatusInternalServerError, statusErrorResponse{
			Status:  "error",
			Message: msgInternalError,
		})
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

// Backup runs the simulated backup.
func (h *MaintenanceHandler) Backup(w http.ResponseWriter, r *http.Request) {
	if err := h.maintenanceService.Backup(r.Context()); err != nil {
		h.log.Errorf("erreur lors de la sauvegarde: %v", err)
		writeError(w, http.StatusInternalServerError, msgInternalError)
		return
	}
	writeJSON(w, http.StatusOK, BackupResponse{
		Success:   true,
		Message:   "Sauvegarde effectuée avec succès",
		Timestamp: time.Now().Format(time.RFC3339),
	})
}
