package handlers

import (
	"database/sql"
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func expectUserExists(mock sqlmock.Sqlmock, id int) {
	mock.
		ExpectQuery(`SELECT (.+) FROM "UTILISATEUR" WHERE id_utilisateur = \$1`).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(id, "Dupont", "Marie", "marie.dupont@example.com", time.Now(), "EMPLOYE", "hash"))
}

func TestListEmployees(t *testing.T) {
	router, mock := setupRouter(t)

	birth := time.Date(1990, 4, 12, 0, 0, 0, 0, time.UTC)
	start := time.Date(2023, 9, 1, 0, 0, 0, 0, time.UTC)
	mock.
		ExpectQuery(`SELECT (.+) FROM "EMPLOYE" ORDER BY id_employe`).
		WillReturnRows(sqlmock.NewRows(employeeColumns).
			AddRow(1, 2, nil, birth, "12 rue des Lilas", "0601020304", start, nil, "EMP-0001", 7).
			AddRow(2, nil, nil, nil, nil, nil, start, nil, "EMP-0002", 8))

	resp := doJSON(t, router, http.MethodGet, "/employees", nil)
	mustStatus(t, resp.Code, http.StatusOK)

	out := decodeBody(t, resp)
	data, ok := out["data"].([]any)
	if !ok || len(data) != 2 {
		t.Fatalf("expected 2 employees, got %v", out["data"])
	}

	first, _ := data[0].(map[string]any)
	if first["code_barre"] != "EMP-0001" {
		t.Fatalf("unexpected barcode: %v", first["code_barre"])
	}
	if first["date_debut"] != "2023-09-01" {
		t.Fatalf("expected day-precision start date, got %v", first["date_debut"])
	}
	mustExpectationsMet(t, mock)
}

func TestCreateEmployeeSuccess(t *testing.T) {
	router, mock := setupRouter(t)

	expectUserExists(mock, 7)
	mock.
		ExpectQuery(`SELECT (.+) FROM "EMPLOYE" WHERE code_barre = \$1`).
		WithArgs("EMP-0042").
		WillReturnError(sql.ErrNoRows)
	mock.
		ExpectQuery(`INSERT INTO "EMPLOYE" (.+) RETURNING id_employe`).
		WillReturnRows(sqlmock.NewRows([]string{"id_employe"}).AddRow(11))

	resp := doJSON(t, router, http.MethodPost, "/employees", map[string]any{
		"code_barre":     "EMP-0042",
		"id_utilisateur": 7,
		"date_debut":     "2024-01-15",
		"telephone":      "0601020304",
	})
	mustStatus(t, resp.Code, http.StatusCreated)

	out := decodeBody(t, resp)
	data, ok := out["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected created employee, got %v", out["data"])
	}
	if data["id_employe"] != float64(11) {
		t.Fatalf("expected id 11, got %v", data["id_employe"])
	}
	mustExpectationsMet(t, mock)
}

// A barcode already used by another employee fails validation on code_barre
// and nothing is inserted.
func TestCreateEmployeeDuplicateBarcode(t *testing.T) {
	router, mock := setupRouter(t)

	start := time.Date(2023, 9, 1, 0, 0, 0, 0, time.UTC)
	expectUserExists(mock, 7)
	mock.
		ExpectQuery(`SELECT (.+) FROM "EMPLOYE" WHERE code_barre = \$1`).
		WithArgs("EMP-0001").
		WillReturnRows(sqlmock.NewRows(employeeColumns).
			AddRow(1, nil, nil, nil, nil, nil, start, nil, "EMP-0001", 9))

	resp := doJSON(t, router, http.MethodPost, "/employees", map[string]any{
		"code_barre":     "EMP-0001",
		"id_utilisateur": 7,
		"date_debut":     "2024-01-15",
	})
	mustStatus(t, resp.Code, http.StatusBadRequest)

	out := decodeBody(t, resp)
	message, ok := out["message"].(map[string]any)
	if !ok {
		t.Fatalf("expected field errors, got %v", out["message"])
	}
	if _, ok := message["code_barre"]; !ok {
		t.Fatalf("expected an error on field code_barre, got %v", message)
	}
	mustExpectationsMet(t, mock)
}

func TestCreateEmployeeUnknownUser(t *testing.T) {
	router, mock := setupRouter(t)

	mock.
		ExpectQuery(`SELECT (.+) FROM "UTILISATEUR" WHERE id_utilisateur = \$1`).
		WithArgs(999).
		WillReturnError(sql.ErrNoRows)
	mock.
		ExpectQuery(`SELECT (.+) FROM "EMPLOYE" WHERE code_barre = \$1`).
		WithArgs("EMP-0042").
		WillReturnError(sql.ErrNoRows)

	resp := doJSON(t, router, http.MethodPost, "/employees", map[string]any{
		"code_barre":     "EMP-0042",
		"id_utilisateur": 999,
		"date_debut":     "2024-01-15",
	})
	mustStatus(t, resp.Code, http.StatusBadRequest)

	out := decodeBody(t, resp)
	message, ok := out["message"].(map[string]any)
	if !ok {
		t.Fatalf("expected field errors, got %v", out["message"])
	}
	if _, ok := message["id_utilisateur"]; !ok {
		t.Fatalf("expected an error on field id_utilisateur, got %v", message)
	}
	mustExpectationsMet(t, mock)
}

func TestCreateEmployeeMissingFields(t *testing.T) {
	router, _ := setupRouter(t)

	resp := doJSON(t, router, http.MethodPost, "/employees", map[string]any{})
	mustStatus(t, resp.Code, http.StatusBadRequest)

	out := decodeBody(t, resp)
	message, ok := out["message"].(map[string]any)
	if !ok {
		t.Fatalf("expected field errors, got %v", out["message"])
	}
	for _, field := range []string{"code_barre", "id_utilisateur", "date_debut"} {
		if _, ok := message[field]; !ok {
			t.Fatalf("expected an error on field %s, got %v", field, message)
		}
	}
}

// Photo endpoints answer 503 when no storage backend is configured.
func TestEmployeePhotoWithoutStorage(t *testing.T) {
	router, _ := setupRouter(t)

	resp := doJSON(t, router, http.MethodGet, "/employees/1/photo", nil)
	mustStatus(t, resp.Code, http.StatusServiceUnavailable)
}
