package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"farewatch/backend/internal/constants"
	"farewatch/backend/internal/logging"
	"farewatch/backend/internal/models"
)

// TavilySource marks flights that came from a live web crawl.
const TavilySource = "Tavily Web Crawl"

// BackupSource marks synthetic flights returned when the crawl is unavailable.
const BackupSource = "Backup Data"

var pricePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\$(\d+(?:\.\d{2})?)`),
	regexp.MustCompile(`(?i)CAD\s*(\d+(?:\.\d{2})?)`),
	regexp.MustCompile(`(?i)(\d+(?:\.\d{2})?)\s*CAD`),
}

// maxParsedFlights caps how many fares one crawl contributes.
const maxParsedFlights = 5

// ProviderError wraps crawl failures with a short code for logging.
type ProviderError struct {
	Code    string
	Message string
	Err     error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// tavilyRequest is the search request body.
type tavilyRequest struct {
	Query          string `json:"query"`
	SearchDepth    string `json:"search_depth"`
	IncludeAnswer  bool   `json:"include_answer"`
	IncludeRawText bool   `json:"include_raw_content"`
	MaxResults     int    `json:"max_results"`
}

// tavilyResponse covers the fields we mine for prices. Depending on the
// query the API answers in content, answer, or per-result content.
type tavilyResponse struct {
	Content string `json:"content"`
	Answer  string `json:"answer"`
	Results []struct {
		Content string `json:"content"`
	} `json:"results"`
}

// TavilyProvider crawls the web for current fares on a route.
type TavilyProvider struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewTavilyProvider creates a crawler against the given API endpoint.
func NewTavilyProvider(baseURL, apiKey string) *TavilyProvider {
	return &TavilyProvider{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// GetProviderType returns the provider type identifier
func (p *TavilyProvider) GetProviderType() string {
	return "tavily_web_crawl"
}

// FetchFares crawls current prices for a route. When the API is rate
// limited or unreachable it falls back to synthetic backup fares so the
// tracker always has something to record.
func (p *TavilyProvider) FetchFares(ctx context.Context, from, to string, maxPrice float64) ([]models.RawFlight, error) {
	if p.APIKey == "" {
		return nil, &ProviderError{
			Code:    "missing_api_key",
			Message: "TAVILY_API_KEY is not configured",
		}
	}

	reqBody := tavilyRequest{
		Query:          fmt.Sprintf("flight prices %s to %s current prices", from, to),
		SearchDepth:    "advanced",
		IncludeAnswer:  true,
		IncludeRawText: true,
		MaxResults:     10,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, &ProviderError{Code: "encode_failed", Message: "failed to encode crawl request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.BaseURL+"/search", bytes.NewReader(payload))
	if err != nil {
		return nil, &ProviderError{Code: "request_failed", Message: "failed to build crawl request", Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+p.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.Client.Do(req)
	if err != nil {
		logging.Warn("Crawl unreachable, using backup fares", "route", from+" to "+to, "error", err.Error())
		return p.backupFares(maxPrice), nil
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		logging.Warn("Crawl rate limited, using backup fares", "route", from+" to "+to)
		return p.backupFares(maxPrice), nil
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &ProviderError{
			Code:    "bad_status",
			Message: fmt.Sprintf("crawl request failed with status %d: %s", resp.StatusCode, string(body)),
		}
	}

	var result tavilyResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &ProviderError{Code: "decode_failed", Message: "failed to decode crawl response", Err: err}
	}

	return parseFares(&result, maxPrice), nil
}

// parseFares mines dollar and CAD price patterns out of the crawl text and
// turns each in-budget price into a raw flight entry. The crawl cannot
// attribute fares to carriers, so every entry carries the multi-airline
// placeholder.
func parseFares(resp *tavilyResponse, maxPrice float64) []models.RawFlight {
	content := resp.Content
	if content == "" {
		content = resp.Answer
	}
	if content == "" {
		parts := make([]string, 0, len(resp.Results))
		for _, r := range resp.Results {
			parts = append(parts, r.Content)
		}
		content = strings.Join(parts, " ")
	}
	if content == "" {
		return nil
	}

	var prices []float64
	for _, pattern := range pricePatterns {
		for _, match := range pattern.FindAllStringSubmatch(content, -1) {
			if price, err := strconv.ParseFloat(match[1], 64); err == nil && price <= maxPrice {
				prices = append(prices, price)
			}
		}
	}
	if len(prices) > maxParsedFlights {
		prices = prices[:maxParsedFlights]
	}

	now := time.Now().Format(time.RFC3339)
	flights := make([]models.RawFlight, 0, len(prices))
	for _, price := range prices {
		flights = append(flights, models.RawFlight{
			Airline:   constants.MultipleAirlines,
			Price:     price,
			Source:    TavilySource,
			Timestamp: now,
		})
	}
	return flights
}

// backupFares generates three synthetic fares at 60-90% of the budget,
// cheapest first, attributed to random carriers from the fixed pool.
func (p *TavilyProvider) backupFares(maxPrice float64) []models.RawFlight {
	now := time.Now().Format(time.RFC3339)

	var flights []models.RawFlight
	for i := 0; i < 3; i++ {
		price := maxPrice*0.6 + rand.Float64()*maxPrice*0.3
		price = float64(int(price*100)) / 100
		if price > maxPrice {
			continue
		}
		flights = append(flights, models.RawFlight{
			Airline:   constants.CarrierPool[rand.Intn(len(constants.CarrierPool))],
			Price:     price,
			Source:    BackupSource,
			Timestamp: now,
		})
	}

	for i := 1; i < len(flights); i++ {
		for j := i; j > 0 && flights[j].Price < flights[j-1].Price; j-- {
			flights[j], flights[j-1] = flights[j-1], flights[j]
		}
	}
	return flights
}
