package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/apperrors"
	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/config"
)

// ConditionText is the free-text condition reported by the provider.
type ConditionText struct {
	Text string `json:"text"`
}

// ForecastResponse is the typed subset of the provider payload the service
// consumes. The upstream body is mapped into this at the boundary; nothing
// downstream touches raw JSON.
type ForecastResponse struct {
	Location struct {
		Name string `json:"name"`
	} `json:"location"`
	Current struct {
		TempC     float64       `json:"temp_c"`
		Humidity  int           `json:"humidity"`
		WindKph   float64       `json:"wind_kph"`
		Condition ConditionText `json:"condition"`
	} `json:"current"`
	Forecast struct {
		ForecastDay []ForecastDayEntry `json:"forecastday"`
	} `json:"forecast"`
}

// ForecastDayEntry is one forecast day in the provider payload.
type ForecastDayEntry struct {
	Date string `json:"date"`
	Day  struct {
		MaxTempC  float64       `json:"maxtemp_c"`
		MinTempC  float64       `json:"mintemp_c"`
		Condition ConditionText `json:"condition"`
	} `json:"day"`
}

// HTTPWeatherClient fetches forecasts from the weather API over HTTP.
type HTTPWeatherClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewHTTPWeatherClient creates a new HTTP-based weather client.
func NewHTTPWeatherClient(cfg config.WeatherConfig, logger *zap.Logger) *HTTPWeatherClient {
	return &HTTPWeatherClient{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

// FetchForecast retrieves the forecast for a city.
func (c *HTTPWeatherClient) FetchForecast(ctx context.Context, city string, days int) (*ForecastResponse, error) {
	q := url.Values{}
	q.Set("key", c.apiKey)
	q.Set("q", city)
	q.Set("days", strconv.Itoa(days))

	reqURL := fmt.Sprintf("%s/forecast.json?%s", c.baseURL, q.Encode())

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Error("weather request failed", zap.String("city", city), zap.Error(err))
		return nil, apperrors.NewUpstreamError("weather api", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("weather request returned error",
			zap.String("city", city),
			zap.Int("status_code", resp.StatusCode))
		return nil, apperrors.NewUpstreamError("weather api",
			fmt.Errorf("status %d", resp.StatusCode))
	}

	var result ForecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, apperrors.NewUpstreamError("weather api", err)
	}

	return &result, nil
}
