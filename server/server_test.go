package server_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pictlock/go-mfa-server/accounts/repofake"
	"github.com/pictlock/go-mfa-server/attempts"
	"github.com/pictlock/go-mfa-server/auth"
	"github.com/pictlock/go-mfa-server/feedback"
	"github.com/pictlock/go-mfa-server/internal/config"
	"github.com/pictlock/go-mfa-server/server"
	"github.com/pictlock/go-mfa-server/sessions"
)

const (
	testEmail    = "john.doe@example.com"
	testPassword = "secret1"
)

func registrationBody() map[string]any {
	return map[string]any{
		"name":            "John Doe",
		"email":           testEmail,
		"password":        testPassword,
		"password2":       testPassword,
		"colorPreference": "Blue",
		"sportPreference": "Tennis",
		"graphicalPassword": map[string]any{
			"imageId": "image2",
			"points": []map[string]int{
				{"x": 40, "y": 40}, {"x": 80, "y": 40}, {"x": 80, "y": 80}, {"x": 40, "y": 80},
			},
			"bounds": map[string]int{"width": 300, "height": 300},
		},
	}
}

func setupTestServer(t *testing.T) *server.Server {
	t.Helper()

	issuer, err := sessions.NewIssuer(sessions.NewInMemoryRepo())
	require.NoError(t, err)

	repos := auth.Repos{
		Accounts: repofake.NewFakeAccountRepo(),
		Attempts: attempts.NewInMemoryRepo(),
	}
	s, err := server.New(config.New(), repos, issuer, feedback.NewInMemoryRepo())
	require.NoError(t, err)
	return s
}

type testResponse struct {
	status int
	body   map[string]json.RawMessage
}

func doJSON(t *testing.T, s *server.Server, method, path, token string, payload any) testResponse {
	t.Helper()

	var body *bytes.Buffer
	if payload != nil {
		encoded, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(encoded)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	resp := testResponse{status: rec.Code, body: map[string]json.RawMessage{}}
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp.body))
	}
	return resp
}

func stringField(t *testing.T, resp testResponse, field string) string {
	t.Helper()
	var value string
	require.Contains(t, resp.body, field)
	require.NoError(t, json.Unmarshal(resp.body[field], &value))
	return value
}

func register(t *testing.T, s *server.Server) string {
	t.Helper()
	resp := doJSON(t, s, http.MethodPost, server.RouteAuthRegister, "", registrationBody())
	require.Equal(t, http.StatusCreated, resp.status)
	return stringField(t, resp, "token")
}

// loginAllStages walks the full three-stage protocol and returns the issued
// token.
func loginAllStages(t *testing.T, s *server.Server) string {
	t.Helper()

	resp := doJSON(t, s, http.MethodPost, server.RouteAuthVerifyColor, "", map[string]string{
		"email": testEmail, "colorPreference": "Blue",
	})
	require.Equal(t, http.StatusOK, resp.status)

	resp = doJSON(t, s, http.MethodPost, server.RouteAuthVerifySport, "", map[string]string{
		"email": testEmail, "sportPreference": "Tennis", "password": testPassword,
	})
	require.Equal(t, http.StatusOK, resp.status)
	require.Equal(t, "image2", stringField(t, resp, "imageId"))

	resp = doJSON(t, s, http.MethodPost, server.RouteAuthVerifyGraphical, "", map[string]any{
		"email": testEmail,
		"points": []map[string]int{
			{"x": 41, "y": 39}, {"x": 79, "y": 41}, {"x": 81, "y": 79}, {"x": 39, "y": 81},
		},
		"bounds": map[string]int{"width": 300, "height": 300},
	})
	require.Equal(t, http.StatusOK, resp.status)
	return stringField(t, resp, "token")
}

func TestRegisterAndLoginFlow(t *testing.T) {
	s := setupTestServer(t)
	register(t, s)
	token := loginAllStages(t, s)

	resp := doJSON(t, s, http.MethodGet, server.RouteAuthMe, token, nil)
	require.Equal(t, http.StatusOK, resp.status)
	require.Equal(t, testEmail, stringField(t, resp, "email"))

	// Secrets never appear in the payload.
	require.NotContains(t, resp.body, "passwordHash")
	require.NotContains(t, resp.body, "colorPreference")
	require.NotContains(t, resp.body, "sportPreference")
}

func TestVerifyColorFailuresAreUniform(t *testing.T) {
	s := setupTestServer(t)
	register(t, s)

	wrongColor := doJSON(t, s, http.MethodPost, server.RouteAuthVerifyColor, "", map[string]string{
		"email": testEmail, "colorPreference": "Red",
	})
	unknownEmail := doJSON(t, s, http.MethodPost, server.RouteAuthVerifyColor, "", map[string]string{
		"email": "nobody@example.com", "colorPreference": "Blue",
	})

	require.Equal(t, http.StatusUnauthorized, wrongColor.status)
	require.Equal(t, http.StatusUnauthorized, unknownEmail.status)
	require.Equal(t, stringField(t, wrongColor, "error"), stringField(t, unknownEmail, "error"))
}

func TestStageSkippingIsConflict(t *testing.T) {
	s := setupTestServer(t)
	register(t, s)

	resp := doJSON(t, s, http.MethodPost, server.RouteAuthVerifySport, "", map[string]string{
		"email": testEmail, "sportPreference": "Tennis", "password": testPassword,
	})
	require.Equal(t, http.StatusConflict, resp.status)

	resp = doJSON(t, s, http.MethodPost, server.RouteAuthVerifyGraphical, "", map[string]any{
		"email": testEmail,
		"points": []map[string]int{
			{"x": 40, "y": 40}, {"x": 80, "y": 40}, {"x": 80, "y": 80}, {"x": 40, "y": 80},
		},
	})
	require.Equal(t, http.StatusConflict, resp.status)
}

func TestGraphicalMismatchRequiresRestart(t *testing.T) {
	s := setupTestServer(t)
	register(t, s)

	resp := doJSON(t, s, http.MethodPost, server.RouteAuthVerifyColor, "", map[string]string{
		"email": testEmail, "colorPreference": "Blue",
	})
	require.Equal(t, http.StatusOK, resp.status)
	resp = doJSON(t, s, http.MethodPost, server.RouteAuthVerifySport, "", map[string]string{
		"email": testEmail, "sportPreference": "Tennis", "password": testPassword,
	})
	require.Equal(t, http.StatusOK, resp.status)

	// First two points swapped: rejected, and the attempt is gone.
	resp = doJSON(t, s, http.MethodPost, server.RouteAuthVerifyGraphical, "", map[string]any{
		"email": testEmail,
		"points": []map[string]int{
			{"x": 80, "y": 40}, {"x": 40, "y": 40}, {"x": 80, "y": 80}, {"x": 40, "y": 80},
		},
	})
	require.Equal(t, http.StatusUnauthorized, resp.status)

	resp = doJSON(t, s, http.MethodPost, server.RouteAuthVerifyGraphical, "", map[string]any{
		"email": testEmail,
		"points": []map[string]int{
			{"x": 40, "y": 40}, {"x": 80, "y": 40}, {"x": 80, "y": 80}, {"x": 40, "y": 80},
		},
	})
	require.Equal(t, http.StatusConflict, resp.status)
}

func TestRegisterValidationStatusCodes(t *testing.T) {
	s := setupTestServer(t)

	body := registrationBody()
	body["password2"] = "different1"
	resp := doJSON(t, s, http.MethodPost, server.RouteAuthRegister, "", body)
	require.Equal(t, http.StatusBadRequest, resp.status)

	register(t, s)
	resp = doJSON(t, s, http.MethodPost, server.RouteAuthRegister, "", registrationBody())
	require.Equal(t, http.StatusConflict, resp.status)
}

func TestLogoutRevokesImmediately(t *testing.T) {
	s := setupTestServer(t)
	token := register(t, s)

	resp := doJSON(t, s, http.MethodGet, server.RouteAuthLogout, token, nil)
	require.Equal(t, http.StatusOK, resp.status)

	resp = doJSON(t, s, http.MethodGet, server.RouteAuthMe, token, nil)
	require.Equal(t, http.StatusUnauthorized, resp.status)
}

func TestMeRequiresToken(t *testing.T) {
	s := setupTestServer(t)

	resp := doJSON(t, s, http.MethodGet, server.RouteAuthMe, "", nil)
	require.Equal(t, http.StatusUnauthorized, resp.status)

	resp = doJSON(t, s, http.MethodGet, server.RouteAuthMe, "bogus-token", nil)
	require.Equal(t, http.StatusUnauthorized, resp.status)
}

func TestLegacyAuthTokenHeader(t *testing.T) {
	s := setupTestServer(t)
	token := register(t, s)

	req := httptest.NewRequest(http.MethodGet, server.RouteAuthMe, nil)
	req.Header.Set("x-auth-token", token)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestUpdateProfile(t *testing.T) {
	s := setupTestServer(t)
	token := register(t, s)

	resp := doJSON(t, s, http.MethodPut, server.RouteUsersProfile, token, map[string]string{
		"name": "Johnny", "email": "johnny@example.com",
	})
	require.Equal(t, http.StatusOK, resp.status)
	require.Equal(t, "johnny@example.com", stringField(t, resp, "email"))

	// The old email no longer passes stage one.
	resp = doJSON(t, s, http.MethodPost, server.RouteAuthVerifyColor, "", map[string]string{
		"email": testEmail, "colorPreference": "Blue",
	})
	require.Equal(t, http.StatusUnauthorized, resp.status)
}

func TestFeedbackRoundTrip(t *testing.T) {
	s := setupTestServer(t)
	token := register(t, s)

	resp := doJSON(t, s, http.MethodPost, server.RouteFeedback, token, map[string]any{
		"title": "Smooth login", "content": "The picture step is fun.", "rating": 5,
	})
	require.Equal(t, http.StatusCreated, resp.status)

	resp = doJSON(t, s, http.MethodPost, server.RouteFeedback, token, map[string]any{
		"title": "Bad rating", "content": "x", "rating": 9,
	})
	require.Equal(t, http.StatusBadRequest, resp.status)

	req := httptest.NewRequest(http.MethodGet, server.RouteFeedbackMe, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var list []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	require.Equal(t, "Smooth login", list[0]["title"])
}

func TestImagesCatalog(t *testing.T) {
	s := setupTestServer(t)

	req := httptest.NewRequest(http.MethodGet, server.RouteImages, nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var list []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 4)
	require.Equal(t, "image1", list[0]["id"])
}
