package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gestion-rh/apiserver/internal/services"
	"github.com/gestion-rh/apiserver/internal/storage"
	"github.com/gestion-rh/apiserver/internal/store"
	"github.com/gestion-rh/apiserver/types"
	"github.com/go-chi/chi/v5"
	"github.com/op/go-logging"
)

const (
	maxPhotoMemory = 10 << 20
	maxPhotoBytes  = 10 << 20
	formFieldPhoto = "photo"
)

// EmployeeHandler exposes list/create endpoints for employee profiles plus
// photo upload/download backed by object storage.
type EmployeeHandler struct {
	employeeService *services.EmployeeService
	photos          *storage.PhotoStore
	log             *logging.Logger
}

// NewEmployeeHandler constructs the handler. photos may be nil when no
// storage backend is configured; the photo endpoints then answer 503.
func NewEmployeeHandler(employeeService *services.EmployeeService, photos *storage.PhotoStore, log *logging.Logger) *EmployeeHandler {
	return &EmployeeHandler{
		employeeService: employeeService,
		photos:          photos,
		log:             log,
	}
}

// EmployeeRouter registers employee routes on the given router.
func EmployeeRouter(r chi.Router, employeeService *services.EmployeeService, photos *storage.PhotoStore, log *logging.Logger) {
	handler := NewEmployeeHandler(employeeService, photos, log)

	r.Get("/", handler.ListEmployees)
	r.Post("/", handler.CreateEmployee)
	r.Route("/{employeeID}", func(r chi.Router) {
		r.Post("/photo", handler.UploadPhoto)
		r.Get("/photo", handler.DownloadPhoto)
	})
}

type EmployeeCreateRequest struct {
	TeamID    *int        `json:"id_equipe"`
	BirthDate *types.Date `json:"date_naissance"`
	Address   *string     `json:"adresse"`
	Phone     *string     `json:"telephone"`
	StartDate types.Date  `json:"date_debut"`
	EndDate   *types.Date `json:"date_fin"`
	Barcode   string      `json:"code_barre"`
	UserID    int         `json:"id_utilisateur"`
}

func (h *EmployeeHandler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.employeeService.List(r.Context())
	if err != nil {
		h.log.Errorf("erreur lors de la récupération des employés: %v", err)
		writeError(w, http.StatusInternalServerError, msgInternalError)
		return
	}
	writeData(w, http.StatusOK, employees)
}

func (h *EmployeeHandler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req EmployeeCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidRequest)
		return
	}

	created, err := h.employeeService.Create(r.Context(), types.Employee{
		TeamID:    req.TeamID,
		BirthDate: req.BirthDate,
		Address:   req.Address,
		Phone:     req.Phone,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Barcode:   req.Barcode,
		UserID:    req.UserID,
	})
	if err != nil {
		var validation *types.ValidationError
		if errors.As(err, &validation) {
			writeError(w, http.StatusBadRequest, validation.Fields)
			return
		}
		h.log.Errorf("erreur lors de la création de l'employé: %v", err)
		writeError(w, http.StatusInternalServerError, msgInternalError)
		return
	}

	writeData(w, http.StatusCreated, created)
}

// UploadPhoto stores a new photo for the employee and replaces any previous one.
func (h *EmployeeHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	if h.photos == nil {
		writeError(w, http.StatusServiceUnavailable, "Stockage non configuré")
		return
	}

	id, err := parseEmployeeID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidRequest)
		return
	}

	employee, err := h.employeeService.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Employé introuvable")
			return
		}
		h.log.Errorf("erreur lors de la récupération de l'employé %d: %v", id, err)
		writeError(w, http.StatusInternalServerError, msgInternalError)
		return
	}

	if err := r.ParseMultipartForm(maxPhotoMemory); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidRequest)
		return
	}

	file, header, err := r.FormFile(formFieldPhoto)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Fichier photo requis")
		return
	}
	defer file.Close()

	if header.Size > maxPhotoBytes {
		writeError(w, http.StatusBadRequest, "Fichier trop volumineux")
		return
	}

	key, err := h.photos.Store(r.Context(), employee.UserID, header.Filename, file, header.Size)
	if err != nil {
		h.log.Errorf("erreur lors de l'envoi de la photo de l'employé %d: %v", id, err)
		writeError(w, http.StatusInternalServerError, msgInternalError)
		return
	}

	if err := h.employeeService.SetPhoto(r.Context(), id, key); err != nil {
		h.log.Errorf("erreur lors de l'enregistrement de la photo de l'employé %d: %v", id, err)
		writeError(w, http.StatusInternalServerError, msgInternalError)
		return
	}

	// Best effort: the new key is already recorded.
	if employee.Photo != nil && *employee.Photo != "" {
		if err := h.photos.Delete(r.Context(), *employee.Photo); err != nil {
			h.log.Warningf("suppression de l'ancienne photo %s échouée: %v", *employee.Photo, err)
		}
	}

	writeData(w, http.StatusCreated, map[string]string{"photo": key})
}

// DownloadPhoto streams the stored photo of the employee.
func (h *EmployeeHandler) DownloadPhoto(w http.ResponseWriter, r *http.Request) {
	if h.photos == nil {
		writeError(w, http.StatusServiceUnavailable, "Stockage non configuré")
		return
	}

	id, err := parseEmployeeID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidRequest)
		return
	}

	employee, err := h.employeeService.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Employé introuvable")
			return
		}
		h.log.Errorf("erreur lors de la récupération de l'employé %d: %v", id, err)
		writeError(w, http.StatusInternalServerError, msgInternalError)
		return
	}

	if employee.Photo == nil || *employee.Photo == "" {
		writeError(w, http.StatusNotFound, "Aucune photo pour cet employé")
		return
	}

	reader, contentType, err := h.photos.Open(r.Context(), *employee.Photo)
	if err != nil {
		h.log.Errorf("erreur lors de la lecture de la photo %s: %v", *employee.Photo, err)
		writeError(w, http.StatusInternalServerError, msgInternalError)
		return
	}
	defer reader.Close()

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = io.Copy(w, reader)
}

func parseEmployeeID(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "employeeID")
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		return 0, errors.New("invalid employee id")
	}
	return id, nil
}
