package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gestion-rh/apiserver/internal/logger"
	"github.com/gestion-rh/apiserver/internal/services"
	"github.com/gestion-rh/apiserver/internal/store"
	"github.com/gestion-rh/apiserver/internal/sysmon"
	"github.com/go-chi/chi/v5"
)

const testJWTSecret = "gestion_rh_test_jwt_secret_key_1234567890"

var userColumns = []string{"id_utilisateur", "nom", "prenom", "email", "date_creation", "role", "mot_de_passe"}

var employeeColumns = []string{
	"id_employe", "id_equipe", "photo", "date_naissance", "adresse", "telephone",
	"date_debut", "date_fin", "code_barre", "id_utilisateur",
}

// setupRouter wires the full handler stack over a sqlmock database, mirroring
// the server wiring without broker or storage backends.
func setupRouter(t *testing.T) (*chi.Mux, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	log := logger.New("critical")

	userRepo := store.NewUserRepository(db)
	teamRepo := store.NewTeamRepository(db)
	employeeRepo := store.NewEmployeeRepository(db)

	userService := services.NewUserService(userRepo)
	teamService := services.NewTeamService(teamRepo)
	employeeService := services.NewEmployeeService(employeeRepo, userRepo, teamRepo)
	authService := services.NewAuthService(userRepo, testJWTSecret, 30*time.Minute, 24*time.Hour, log, nil)
	maintenanceService := services.NewMaintenanceService(sysmon.NewMonitor("/"), log, nil)

	router := chi.NewRouter()
	router.Get("/healthz", Healthz)
	AuthRouter(router, authService, log)
	router.Route("/teams", func(r chi.Router) {
		TeamRouter(r, teamService, log)
	})
	router.Route("/employees", func(r chi.Router) {
		EmployeeRouter(r, employeeService, nil, log)
	})
	router.Route("/users", func(r chi.Router) {
		UserRouter(r, userService, log)
	})
	router.Route("/maintenance", func(r chi.Router) {
		MaintenanceRouter(r, maintenanceService, log)
	})

	return router, mock
}

func doJSON(t *testing.T, router *chi.Mux, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json.Marshal: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func decodeBody(t *testing.T, resp *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var out map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("json.Unmarshal: %v", err)
	}
	return out
}

func mustStatus(t *testing.T, actual, expected int) {
	t.Helper()
	if actual != expected {
		t.Fatalf("expected status %d, got %d", expected, actual)
	}
}

func mustExpectationsMet(t *testing.T, mock sqlmock.Sqlmock) {
	t.Helper()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}
