package handlers

import (
	"net/http"
	"testing"
	"time"
)

func TestMaintenanceStatus(t *testing.T) {
	router, _ := setupRouter(t)

	resp := doJSON(t, router, http.MethodGet, "/maintenance/status", nil)
	mustStatus(t, resp.Code, http.StatusOK)

	out := decodeBody(t, resp)
	status, _ := out["status"].(string)
	switch status {
	case "normal", "warning", "error":
	default:
		t.Fatalf("unexpected status level %q", status)
	}

	details, ok := out["details"].(map[string]any)
	if !ok {
		t.Fatalf("expected details object, got %v", out["details"])
	}
	for _, field := range []string{"cpu", "memory", "disk"} {
		value, ok := details[field].(float64)
		if !ok || value < 0 || value > 100 {
			t.Fatalf("expected %s percentage, got %v", field, details[field])
		}
	}

	timestamp, _ := out["timestamp"].(string)
	if _, err := time.Parse(time.RFC3339, timestamp); err != nil {
		t.Fatalf("expected RFC3339 timestamp, got %q", timestamp)
	}
}

func TestMaintenanceBackup(t *testing.T) {
	router, _ := setupRouter(t)

	resp := doJSON(t, router, http.MethodPost, "/maintenance/backup", nil)
	mustStatus(t, resp.Code, http.StatusOK)

	out := decodeBody(t, resp)
	if out["success"] != true {
		t.Fatalf("expected success, got %v", out["success"])
	}
	if out["message"] != "Sauvegarde effectuée avec succès" {
		t.Fatalf("unexpected message %v", out["message"])
	}
}
