package handler_test

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAliceScenario(t *testing.T) {
	s := newTestServer(t, "")

	code, created := s.do(t, http.MethodPost, "/create-account", gin.H{"username": "alice", "password": "pw1"})
	require.Equal(t, http.StatusCreated, code)
	id := created.UserID

	code, _ = s.do(t, http.MethodGet, "/login", gin.H{"username": "alice", "password": "pw1"})
	require.Equal(t, http.StatusOK, code)
	code, _ = s.do(t, http.MethodGet, "/login", gin.H{"username": "alice", "password": "wrong"})
	require.Equal(t, http.StatusUnauthorized, code)

	code, _ = s.do(t, http.MethodPost, "/api/add-favorite", gin.H{"user_id": id, "location": "NYC"})
	require.Equal(t, http.StatusCreated, code)

	code, _ = s.do(t, http.MethodPut, "/api/update-favorite", gin.H{"user_id": id, "old_location": "NYC", "new_location": "LA"})
	require.Equal(t, http.StatusOK, code)

	code, resp := s.do(t, http.MethodGet, fmt.Sprintf("/api/get-favorites?user_id=%d", id), nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, []string{"LA"}, resp.locations())
	assert.NotEmpty(t, resp.Favorites[0].CreatedAt)
	assert.NotEmpty(t, resp.Favorites[0].UpdatedAt)

	code, _ = s.do(t, http.MethodDelete, "/api/remove-favorite", gin.H{"user_id": id, "location": "LA"})
	require.Equal(t, http.StatusOK, code)

	_, resp = s.do(t, http.MethodGet, fmt.Sprintf("/api/get-favorites?user_id=%d", id), nil)
	assert.Empty(t, resp.Favorites)
}

func TestAddFavoriteErrors(t *testing.T) {
	s := newTestServer(t, "")
	id := s.createUser(t, "alice", "pw1")

	code, _ := s.do(t, http.MethodPost, "/api/add-favorite", gin.H{"user_id": id, "location": "Boston"})
	require.Equal(t, http.StatusCreated, code)

	code, resp := s.do(t, http.MethodPost, "/api/add-favorite", gin.H{"user_id": id, "location": "Boston"})
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "error", resp.Status)

	code, _ = s.do(t, http.MethodPost, "/api/add-favorite", gin.H{"user_id": id + 10, "location": "Boston"})
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = s.do(t, http.MethodPost, "/api/add-favorite", gin.H{"user_id": id, "location": "   "})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = s.do(t, http.MethodPost, "/api/add-favorite", gin.H{"location": "Boston"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = s.do(t, http.MethodPost, "/api/add-favorite", gin.H{"user_id": "one", "location": "Boston"})
	assert.Equal(t, http.StatusBadRequest, code)

	_, resp = s.do(t, http.MethodGet, "/api/get-favorites", gin.H{"user_id": id})
	assert.Equal(t, []string{"Boston"}, resp.locations())
}

func TestFavoriteLocationLength(t *testing.T) {
	s := newTestServer(t, "")
	id := s.createUser(t, "alice", "pw1")
	long := strings.Repeat("x", 256)

	code, resp := s.do(t, http.MethodPost, "/api/add-favorite", gin.H{"user_id": id, "location": long})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "location must be at most 255 characters", resp.Message)

	code, _ = s.do(t, http.MethodPost, "/api/add-favorite", gin.H{"user_id": id, "location": long[:255]})
	require.Equal(t, http.StatusCreated, code)

	code, resp = s.do(t, http.MethodPut, "/api/update-favorite", gin.H{"user_id": id, "old_location": long[:255], "new_location": long})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "new_location must be at most 255 characters", resp.Message)

	_, resp = s.do(t, http.MethodGet, fmt.Sprintf("/api/get-favorites?user_id=%d", id), nil)
	assert.Equal(t, []string{long[:255]}, resp.locations())
}

func TestUpdateAndRemoveFavoriteErrors(t *testing.T) {
	s := newTestServer(t, "")
	id := s.createUser(t, "alice", "pw1")
	s.do(t, http.MethodPost, "/api/add-favorite", gin.H{"user_id": id, "location": "NYC"})
	s.do(t, http.MethodPost, "/api/add-favorite", gin.H{"user_id": id, "location": "LA"})

	code, _ := s.do(t, http.MethodPut, "/api/update-favorite", gin.H{"user_id": id, "old_location": "Paris", "new_location": "Rome"})
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = s.do(t, http.MethodPut, "/api/update-favorite", gin.H{"user_id": id, "old_location": "NYC", "new_location": "LA"})
	assert.Equal(t, http.StatusConflict, code)

	code, _ = s.do(t, http.MethodDelete, "/api/remove-favorite", gin.H{"user_id": id, "location": "Paris"})
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = s.do(t, http.MethodDelete, fmt.Sprintf("/api/remove-favorite?user_id=%d&location=NYC", id), nil)
	assert.Equal(t, http.StatusOK, code)
}

func TestClearFavorites(t *testing.T) {
	s := newTestServer(t, "")
	id := s.createUser(t, "alice", "pw1")

	code, resp := s.do(t, http.MethodDelete, "/api/clear-favorites", gin.H{"user_id": id})
	assert.Equal(t, http.StatusOK, code, "clearing nothing succeeds")
	assert.Zero(t, resp.Removed)

	s.do(t, http.MethodPost, "/api/add-favorite", gin.H{"user_id": id, "location": "NYC"})
	s.do(t, http.MethodPost, "/api/add-favorite", gin.H{"user_id": id, "location": "LA"})

	code, resp = s.do(t, http.MethodDelete, fmt.Sprintf("/api/clear-favorites?user_id=%d", id), nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, int64(2), resp.Removed)

	_, resp = s.do(t, http.MethodGet, fmt.Sprintf("/api/get-favorites?user_id=%d", id), nil)
	assert.Empty(t, resp.Favorites)

	code, _ = s.do(t, http.MethodDelete, "/api/clear-favorites", nil)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestGetFavoritesEmptyListIsArray(t *testing.T) {
	s := newTestServer(t, "")
	id := s.createUser(t, "alice", "pw1")

	w := s.raw(t, http.MethodGet, fmt.Sprintf("/api/get-favorites?user_id=%d", id), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"success","favorites":[]}`, w.Body.String())
}
