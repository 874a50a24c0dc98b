package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWeatherUpstream(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/geo/1.0/direct", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") == "Nowhere" {
			w.Write([]byte(`[]`))
			return
		}
		w.Write([]byte(`[{"name":"Boston","lat":42.36,"lon":-71.06,"country":"US","state":"Massachusetts"}]`))
	})
	mux.HandleFunc("/data/2.5/weather", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"name":"Boston","main":{"temp":51.3},"wind":{"speed":8,"deg":270}}`))
	})
	mux.HandleFunc("/data/2.5/forecast", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"list":[{"wind":{"deg":45}}]}`))
	})
	mux.HandleFunc("/data/2.5/air_pollution", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	mux.HandleFunc("/data/2.5/air_pollution/forecast", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"list":[{"main":{"aqi":1}}]}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestWeatherRoutes(t *testing.T) {
	s := newTestServer(t, newWeatherUpstream(t).URL)

	w := s.raw(t, http.MethodGet, "/api/coords?city=Boston&country_code=US", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Boston", decode(t, w)["name"])

	w = s.raw(t, http.MethodGet, "/api/coords?city=Nowhere", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.raw(t, http.MethodGet, "/api/weather?lat=42.36&lon=-71.06", nil)
	require.Equal(t, http.StatusOK, w.Code)
	wind := decode(t, w)["wind"].(map[string]interface{})
	assert.Equal(t, "W", wind["direction"])

	w = s.raw(t, http.MethodGet, "/api/forecast?lat=0&lon=0&units=metric", nil)
	require.Equal(t, http.StatusOK, w.Code)
	entry := decode(t, w)["list"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "NE", entry["wind"].(map[string]interface{})["direction"])

	w = s.raw(t, http.MethodGet, "/api/air-pollution-forecast?lat=1&lon=2", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.raw(t, http.MethodGet, "/api/air-pollution?lat=1&lon=2", nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestWeatherValidation(t *testing.T) {
	s := newTestServer(t, newWeatherUpstream(t).URL)

	for _, target := range []string{
		"/api/coords",
		"/api/weather?lon=2",
		"/api/weather?lat=91&lon=2",
		"/api/weather?lat=1&lon=-181",
		"/api/weather?lat=abc&lon=2",
		"/api/forecast?lat=1&lon=2&units=kelvin",
	} {
		w := s.raw(t, http.MethodGet, target, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, target)
	}

	w := s.raw(t, http.MethodGet, "/api/weather?lat=91&lon=2", nil)
	assert.Equal(t, "lat must be at most 90", decode(t, w)["message"])

	w = s.raw(t, http.MethodGet, "/api/forecast?lat=1&lon=2&units=kelvin", nil)
	assert.Equal(t, "units must be one of standard metric imperial", decode(t, w)["message"])
}

func TestWeatherWithoutAPIKey(t *testing.T) {
	s := newTestServer(t, "")

	w := s.raw(t, http.MethodGet, "/api/weather?lat=1&lon=2", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
