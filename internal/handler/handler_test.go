package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/weatherfav/internal/config"
	"github.com/weatherfav/internal/database/dbtest"
	"github.com/weatherfav/internal/events"
	"github.com/weatherfav/internal/handler"
	"github.com/weatherfav/internal/repository"
	"github.com/weatherfav/internal/service"
	"github.com/weatherfav/internal/weather"
	"github.com/weatherfav/pkg/crypto"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	gin.SetMode(gin.TestMode)
	crypto.Cost = bcrypt.MinCost
}

// apiResponse covers every field the handlers emit.
type apiResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	UserID  uint   `json:"user_id"`
	Removed int64  `json:"removed"`
	Users   []struct {
		ID       uint   `json:"id"`
		Username string `json:"username"`
	} `json:"users"`
	Favorites []struct {
		ID        uint   `json:"id"`
		Location  string `json:"location"`
		CreatedAt string `json:"created_at"`
		UpdatedAt string `json:"updated_at"`
	} `json:"favorites"`
}

func (r apiResponse) locations() []string {
	out := make([]string, 0, len(r.Favorites))
	for _, f := range r.Favorites {
		out = append(out, f.Location)
	}
	return out
}

type testServer struct {
	router *gin.Engine
}

// newTestServer wires the real services over a private sqlite database.
// weatherURL may be empty when a test does not touch the weather routes.
func newTestServer(t *testing.T, weatherURL string, checks ...handler.Check) *testServer {
	t.Helper()
	client := dbtest.New(t)

	users := repository.NewUserRepository(client.DB)
	favs := repository.NewFavoriteRepository(client.DB)
	creds := service.NewCredentialService(users, events.NopPublisher{})
	favorites := service.NewFavoriteService(favs, events.NopPublisher{})

	wcfg := config.WeatherConfig{BaseURL: weatherURL, TimeoutSeconds: 5}
	if weatherURL != "" {
		wcfg.APIKey = "test-key"
	}

	if len(checks) == 0 {
		checks = []handler.Check{{Name: "database", Ping: client.Ping}}
	}

	r := gin.New()
	handler.NewAuthHandler(creds).RegisterRoutes(r)
	api := r.Group("/api")
	handler.NewFavoriteHandler(favorites).RegisterRoutes(api)
	handler.NewWeatherHandler(weather.NewClient(wcfg)).RegisterRoutes(api)
	handler.NewHealthHandler(handler.BuildInfo{Version: "test"}, checks...).RegisterRoutes(api)

	return &testServer{router: r}
}

// do sends body as JSON when non-nil.
func (s *testServer) do(t *testing.T, method, target string, body interface{}) (int, apiResponse) {
	t.Helper()
	w := s.raw(t, method, target, body)
	var resp apiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return w.Code, resp
}

func (s *testServer) raw(t *testing.T, method, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) createUser(t *testing.T, username, password string) uint {
	t.Helper()
	code, resp := s.do(t, http.MethodPost, "/create-account", gin.H{"username": username, "password": password})
	require.Equal(t, http.StatusCreated, code, resp.Message)
	require.NotZero(t, resp.UserID)
	return resp.UserID
}

func failingCheck(name string) handler.Check {
	return handler.Check{Name: name, Ping: func(context.Context) error { return errors.New("down") }}
}
