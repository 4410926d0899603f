package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"farewatch/backend/internal/db/repositories"
	"farewatch/backend/internal/models"
	gormModels "farewatch/backend/internal/models/gorm"
)

func newTestAlertRepo(t *testing.T) *repositories.AlertRepo {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&gormModels.PriceAlert{}); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}
	return repositories.NewAlertRepo(db)
}

func recordAlert(t *testing.T, repo *repositories.AlertRepo, sentAt time.Time) {
	t.Helper()
	err := repo.Record(context.Background(), &gormModels.PriceAlert{
		ID:          uuid.NewString(),
		Airline:     "WestJet",
		Origin:      "Vancouver",
		Destination: "Toronto",
		Price:       189.00,
		Channel:     "discord",
		SentAt:      sentAt,
	})
	if err != nil {
		t.Fatalf("Failed to record alert: %v", err)
	}
}

func TestRecentAlertsHandler(t *testing.T) {
	repo := newTestAlertRepo(t)
	recordAlert(t, repo, time.Now().Add(-time.Hour))
	recordAlert(t, repo, time.Now().Add(-72*time.Hour))
	handler := RecentAlertsHandler(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/alerts/recent", nil)
	rr := httptest.NewRecorder()
	handler(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rr.Code)
	}
	var resp models.APIResponse[[]gormModels.PriceAlert]
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Data == nil || len(*resp.Data) != 1 {
		t.Fatalf("Expected 1 alert in the default 24h window, got %+v", resp.Data)
	}
}

func TestRecentAlertsHandler_CustomWindow(t *testing.T) {
	repo := newTestAlertRepo(t)
	recordAlert(t, repo, time.Now().Add(-time.Hour))
	recordAlert(t, repo, time.Now().Add(-72*time.Hour))
	handler := RecentAlertsHandler(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/alerts/recent?hours=168", nil)
	rr := httptest.NewRecorder()
	handler(rr, req)

	var resp models.APIResponse[[]gormModels.PriceAlert]
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Data == nil || len(*resp.Data) != 2 {
		t.Fatalf("Expected 2 alerts in a week window, got %+v", resp.Data)
	}
}

func TestRecentAlertsHandler_InvalidHours(t *testing.T) {
	handler := RecentAlertsHandler(newTestAlertRepo(t))

	for _, qs := range []string{"abc", "0", "-5"} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/alerts/recent?hours="+qs, nil)
		rr := httptest.NewRecorder()
		handler(rr, req)
		if rr.Code != http.StatusBadRequest {
			t.Errorf("hours=%q: expected 400, got %d", qs, rr.Code)
		}
	}
}

func TestAlertStatsHandler(t *testing.T) {
	repo := newTestAlertRepo(t)
	recordAlert(t, repo, time.Now().Add(-time.Minute))
	handler := AlertStatsHandler(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/alerts/stats", nil)
	rr := httptest.NewRecorder()
	handler(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rr.Code)
	}
	var resp models.APIResponse[models.AlertStats]
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Data == nil || resp.Data.Total != 1 {
		t.Errorf("Unexpected stats: %+v", resp.Data)
	}
}
