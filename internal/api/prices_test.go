package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"farewatch/backend/internal/db/repositories"
	"farewatch/backend/internal/models"
	"farewatch/backend/internal/models/entities"
)

func newTestPriceRepo(t *testing.T) *repositories.PricePointRepo {
	t.Helper()
	db, err := sqlx.Connect("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	db.MustExec(`CREATE TABLE price_points (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		route TEXT NOT NULL,
		airline TEXT NOT NULL,
		price REAL NOT NULL,
		source TEXT NOT NULL,
		observed_at TIMESTAMP NOT NULL
	)`)
	return repositories.NewPricePointRepo(db)
}

func TestRoutePricesHandler(t *testing.T) {
	repo := newTestPriceRepo(t)
	now := time.Now()
	for _, point := range []*entities.PricePoint{
		{Route: "Vancouver to Toronto", Airline: "Air Canada", Price: 320, Source: "Tavily Web Crawl", ObservedAt: now.Add(-10 * time.Minute)},
		{Route: "Vancouver to Toronto", Airline: "WestJet", Price: 289, Source: "Tavily Web Crawl", ObservedAt: now.Add(-2 * time.Minute)},
		{Route: "Toronto to Montreal", Airline: "Porter Airlines", Price: 150, Source: "Tavily Web Crawl", ObservedAt: now},
	} {
		if err := repo.Insert(context.Background(), point); err != nil {
			t.Fatalf("Failed to seed price point: %v", err)
		}
	}
	handler := RoutePricesHandler(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/prices/route?origin=Vancouver&destination=Toronto", nil)
	rr := httptest.NewRecorder()
	handler(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rr.Code)
	}
	var resp models.APIResponse[RoutePriceHistory]
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Data == nil {
		t.Fatal("Expected history in response")
	}
	if resp.Data.Route != "Vancouver to Toronto" {
		t.Errorf("Expected route echoed, got %q", resp.Data.Route)
	}
	if len(resp.Data.Points) != 2 {
		t.Fatalf("Expected 2 points for the route, got %d", len(resp.Data.Points))
	}
	if resp.Data.LowestPrice != 289 {
		t.Errorf("Expected lowest price 289, got %v", resp.Data.LowestPrice)
	}
	if resp.Data.Points[0].Price != 289 {
		t.Errorf("Expected newest point first, got %+v", resp.Data.Points[0])
	}
}

func TestRoutePricesHandler_RequiresBothParams(t *testing.T) {
	handler := RoutePricesHandler(newTestPriceRepo(t))

	for _, query := range []string{"", "origin=Vancouver", "destination=Toronto"} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/prices/route?"+query, nil)
		rr := httptest.NewRecorder()
		handler(rr, req)
		if rr.Code != http.StatusBadRequest {
			t.Errorf("Query %q: expected 400, got %d", query, rr.Code)
		}
	}
}

func TestRoutePricesHandler_InvalidHours(t *testing.T) {
	handler := RoutePricesHandler(newTestPriceRepo(t))

	for _, qs := range []string{"abc", "0", "-1"} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/prices/route?origin=Vancouver&destination=Toronto&hours="+qs, nil)
		rr := httptest.NewRecorder()
		handler(rr, req)
		if rr.Code != http.StatusBadRequest {
			t.Errorf("hours=%q: expected 400, got %d", qs, rr.Code)
		}
	}
}

func TestRoutePricesHandler_HistoryDisabled(t *testing.T) {
	handler := RoutePricesHandler(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/prices/route?origin=Vancouver&destination=Toronto", nil)
	rr := httptest.NewRecorder()
	handler(rr, req)

	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("Expected 503 without price history, got %d", rr.Code)
	}
}
