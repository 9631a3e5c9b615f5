package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var hexTokenRe = regexp.MustCompile(`^[0-9a-f]{256}$`)

func TestCreateUser(t *testing.T) {
	app, _, _ := setupTestServer(t)

	tests := []struct {
		name           string
		body           map[string]string
		expectedStatus int
	}{
		{
			name: "Success",
			body: map[string]string{
				"name":     "alice",
				"email":    "alice@example.com",
				"password": "longenough1",
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Short password",
			body: map[string]string{
				"name":     "bob",
				"email":    "bob@example.com",
				"password": "short",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Invalid email",
			body: map[string]string{
				"name":     "carol",
				"email":    "not-an-email",
				"password": "longenough1",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Name too short",
			body: map[string]string{
				"name":     "x",
				"email":    "x@example.com",
				"password": "longenough1",
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doJSON(t, app, http.MethodPost, "/users", tt.body)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.expectedStatus == http.StatusCreated {
				var body struct {
					Message     string `json:"message"`
					UserID      uint   `json:"userId"`
					AccessToken string `json:"accessToken"`
				}
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
				assert.NotZero(t, body.UserID)
				assert.Regexp(t, hexTokenRe, body.AccessToken)
			}
		})
	}
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	app, _, _ := setupTestServer(t)

	registerTestUser(t, app, "alice", "alice@example.com", "longenough1")

	resp := doJSON(t, app, http.MethodPost, "/users", map[string]string{
		"name":     "alice again",
		"email":    "alice@example.com",
		"password": "longenough1",
	})
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body struct {
		Duplicate bool `json:"duplicate"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Duplicate)
}

func TestCreateSession(t *testing.T) {
	app, _, _ := setupTestServer(t)
	userID, token := registerTestUser(t, app, "alice", "alice@example.com", "longenough1")

	t.Run("Correct credentials return the stored token", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/sessions", map[string]string{
			"email":    "alice@example.com",
			"password": "longenough1",
		})
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			UserID      uint   `json:"userId"`
			AccessToken string `json:"accessToken"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, userID, body.UserID)
		assert.Equal(t, token, body.AccessToken)
	})

	t.Run("Unknown email and wrong password are indistinguishable", func(t *testing.T) {
		wrongPassword := doJSON(t, app, http.MethodPost, "/sessions", map[string]string{
			"email":    "alice@example.com",
			"password": "wrongpassword",
		})
		defer func() { _ = wrongPassword.Body.Close() }()
		unknownEmail := doJSON(t, app, http.MethodPost, "/sessions", map[string]string{
			"email":    "nobody@example.com",
			"password": "longenough1",
		})
		defer func() { _ = unknownEmail.Body.Close() }()

		assert.Equal(t, http.StatusNotFound, wrongPassword.StatusCode)
		assert.Equal(t, http.StatusNotFound, unknownEmail.StatusCode)

		body1, err := io.ReadAll(wrongPassword.Body)
		require.NoError(t, err)
		body2, err := io.ReadAll(unknownEmail.Body)
		require.NoError(t, err)
		assert.Equal(t, body1, body2)
		assert.JSONEq(t, `{"notFound": true}`, string(body1))
	})
}

func TestGetCurrentUser(t *testing.T) {
	app, _, _ := setupTestServer(t)
	_, token := registerTestUser(t, app, "alice", "alice@example.com", "longenough1")

	t.Run("Valid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/users/current", nil)
		req.Header.Set("Authorization", token)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		require.Equal(t, http.StatusOK, resp.StatusCode)
		var body struct {
			Name  string `json:"name"`
			Email string `json:"email"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "alice", body.Name)
		assert.Equal(t, "alice@example.com", body.Email)
	})

	t.Run("Bearer prefix accepted", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/users/current", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("Missing token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/users/current", nil)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		var body struct {
			Authorized bool `json:"authorized"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.False(t, body.Authorized)
	})

	t.Run("Garbage token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/users/current", nil)
		req.Header.Set("Authorization", "deadbeef")
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}
