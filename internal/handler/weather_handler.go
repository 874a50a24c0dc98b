package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/weatherfav/internal/logging"
	"github.com/weatherfav/internal/weather"
	"github.com/weatherfav/pkg/response"
)

// WeatherHandler proxies weather and air quality lookups
type WeatherHandler struct {
	client *weather.Client
}

// NewWeatherHandler creates a new WeatherHandler
func NewWeatherHandler(client *weather.Client) *WeatherHandler {
	return &WeatherHandler{client: client}
}

// GetCoords geocodes a city
// GET /api/coords?city=&country_code=
func (h *WeatherHandler) GetCoords(c *gin.Context) {
	var req coordsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, bindErrorMessage(err))
		return
	}

	loc, err := h.client.Coords(c.Request.Context(), req.City, req.CountryCode)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, loc)
}

// GetForecast returns the 5 day forecast for a point
// GET /api/forecast?lat=&lon=&units=
func (h *WeatherHandler) GetForecast(c *gin.Context) {
	h.withUnits(c, h.client.Forecast)
}

// GetCurrentWeather returns current conditions for a point
// GET /api/weather?lat=&lon=&units=
func (h *WeatherHandler) GetCurrentWeather(c *gin.Context) {
	h.withUnits(c, h.client.CurrentWeather)
}

// GetAirPollution returns current air quality for a point
// GET /api/air-pollution?lat=&lon=
func (h *WeatherHandler) GetAirPollution(c *gin.Context) {
	h.withoutUnits(c, h.client.AirPollution)
}

// GetAirPollutionForecast returns the air quality forecast for a point
// GET /api/air-pollution-forecast?lat=&lon=
func (h *WeatherHandler) GetAirPollutionForecast(c *gin.Context) {
	h.withoutUnits(c, h.client.AirPollutionForecast)
}

type unitsLookup func(ctx context.Context, lat, lon float64, units string) (map[string]interface{}, error)

type pointLookup func(ctx context.Context, lat, lon float64) (map[string]interface{}, error)

func (h *WeatherHandler) withUnits(c *gin.Context, fetch unitsLookup) {
	var req pointRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, bindErrorMessage(err))
		return
	}

	body, err := fetch(c.Request.Context(), *req.Lat, *req.Lon, req.Units)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, body)
}

func (h *WeatherHandler) withoutUnits(c *gin.Context, fetch pointLookup) {
	var req pointRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, bindErrorMessage(err))
		return
	}

	body, err := fetch(c.Request.Context(), *req.Lat, *req.Lon)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, body)
}

func (h *WeatherHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, weather.ErrInvalidUnits):
		response.BadRequest(c, err.Error())
	case errors.Is(err, weather.ErrNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, weather.ErrNoAPIKey):
		response.ServiceUnavailable(c, "weather service is not configured")
	case errors.Is(err, weather.ErrUpstream):
		_ = c.Error(err)
		response.BadGateway(c, "weather service request failed")
	default:
		_ = c.Error(err)
		logging.Error("%s %s: %v", c.Request.Method, c.FullPath(), err)
		response.InternalError(c, "internal server error")
	}
}

// RegisterRoutes registers weather routes
func (h *WeatherHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/coords", h.GetCoords)
	rg.GET("/forecast", h.GetForecast)
	rg.GET("/weather", h.GetCurrentWeather)
	rg.GET("/air-pollution", h.GetAirPollution)
	rg.GET("/air-pollution-forecast", h.GetAirPollutionForecast)
}
