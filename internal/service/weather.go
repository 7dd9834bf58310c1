package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/clients"
	"github.com/tm-acme-shop/acme-shop-storefront-service/internal/models"
)

// WeatherProvider fetches raw forecast data from the upstream weather API.
type WeatherProvider interface {
	FetchForecast(ctx context.Context, city string, days int) (*clients.ForecastResponse, error)
}

// WeatherService shapes upstream forecasts into the API's weather report.
type WeatherService struct {
	provider WeatherProvider
	logger   *zap.Logger
}

// NewWeatherService creates a new weather service.
func NewWeatherService(provider WeatherProvider, logger *zap.Logger) *WeatherService {
	return &WeatherService{
		provider: provider,
		logger:   logger,
	}
}

// GetWeatherByCity returns current conditions plus the forecast for the
// following days. The forecast list skips today, which the current block
// already covers.
func (s *WeatherService) GetWeatherByCity(ctx context.Context, city string, days int) (*models.WeatherReport, error) {
	days, err := ValidateWeatherQuery(city, days)
	if err != nil {
		return nil, err
	}

	data, err := s.provider.FetchForecast(ctx, city, days)
	if err != nil {
		return nil, err
	}

	forecast := make([]models.ForecastDay, 0)
	for i, day := range data.Forecast.ForecastDay {
		if i == 0 {
			continue
		}
		forecast = append(forecast, models.ForecastDay{
			Date:      day.Date,
			MaxTemp:   day.Day.MaxTempC,
			MinTemp:   day.Day.MinTempC,
			Condition: mapCondition(day.Day.Condition.Text),
		})
	}

	report := &models.WeatherReport{
		Location:    data.Location.Name,
		Temperature: data.Current.TempC,
		Humidity:    data.Current.Humidity,
		Wind:        data.Current.WindKph,
		Condition:   mapCondition(data.Current.Condition.Text),
		Forecast:    forecast,
		Advice:      generateAdvice(data.Current.TempC, data.Current.Condition.Text),
	}

	s.logger.Debug("weather report composed",
		zap.String("city", report.Location),
		zap.String("condition", string(report.Condition)))
	return report, nil
}

// mapCondition buckets the provider's free-text condition.
func mapCondition(apiCondition string) models.WeatherCondition {
	cond := strings.ToLower(apiCondition)

	switch {
	case strings.Contains(cond, "sun"):
		return models.ConditionSunny
	case strings.Contains(cond, "cloud"):
		return models.ConditionCloudy
	case strings.Contains(cond, "rain"), strings.Contains(cond, "drizzle"):
		return models.ConditionRainy
	case strings.Contains(cond, "storm"), strings.Contains(cond, "thunder"):
		return models.ConditionStormy
	case strings.Contains(cond, "fog"), strings.Contains(cond, "mist"), strings.Contains(cond, "haze"):
		return models.ConditionFoggy
	default:
		return models.ConditionCloudy
	}
}

func generateAdvice(temp float64, condition string) string {
	switch mapped := mapCondition(condition); {
	case mapped == models.ConditionRainy:
		return "Don't forget your umbrella!"
	case mapped == models.ConditionStormy:
		return "Better stay indoors."
	case mapped == models.ConditionSunny && temp > 20:
		return "Perfect day to be outside!"
	default:
		return "Mild weather today."
	}
}
