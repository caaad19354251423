package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medctx/medctx/config"
	"github.com/medctx/medctx/pkg/auth"
	"github.com/medctx/medctx/pkg/models"
	"github.com/medctx/medctx/pkg/testutils"
)

func newTestAppState(model models.ContextModel) *models.AppState {
	return &models.AppState{
		ContextModel: model,
		Config: &config.Config{
			Server: config.ServerConfig{MaxRequestSize: config.DefaultMaxRequestSize},
		},
	}
}

func TestAuthMiddleware(t *testing.T) {
	testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("auth required", func(t *testing.T) {
		appState := newTestAppState(&testutils.FakeContextModel{})
		appState.Config.Auth = config.AuthConfig{
			Secret:   "test-secret",
			Required: true,
		}

		router, err := setupRouter(appState)
		require.NoError(t, err)
		router.Handle("/", testHandler)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		res := httptest.NewRecorder()

		router.ServeHTTP(res, req)
		require.Equal(t, http.StatusUnauthorized, res.Code)

		token, err := auth.GenerateJWT(appState.Config)
		require.NoError(t, err)
		req = httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		res = httptest.NewRecorder()

		router.ServeHTTP(res, req)
		require.Equal(t, http.StatusOK, res.Code)
	})

	t.Run("healthz skips auth", func(t *testing.T) {
		appState := newTestAppState(&testutils.FakeContextModel{})
		appState.Config.Auth = config.AuthConfig{
			Secret:   "test-secret",
			Required: true,
		}

		router, err := setupRouter(appState)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		res := httptest.NewRecorder()

		router.ServeHTTP(res, req)
		require.Equal(t, http.StatusOK, res.Code)
	})

	t.Run("auth required without secret", func(t *testing.T) {
		appState := newTestAppState(&testutils.FakeContextModel{})
		appState.Config.Auth = config.AuthConfig{Required: true}

		_, err := setupRouter(appState)
		assert.ErrorIs(t, err, auth.ErrSecretNotSet)
	})

	t.Run("auth not required", func(t *testing.T) {
		appState := newTestAppState(&testutils.FakeContextModel{})
		appState.Config.Auth = config.AuthConfig{
			Secret:   "test-secret",
			Required: false,
		}

		router, err := setupRouter(appState)
		require.NoError(t, err)
		router.Handle("/", testHandler)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		res := httptest.NewRecorder()

		router.ServeHTTP(res, req)
		require.Equal(t, http.StatusOK, res.Code)
	})
}

func TestSendVersion(t *testing.T) {
	nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	handler := SendVersion(nextHandler)

	req, err := http.NewRequest("GET", "/", nil)
	if err != nil {
		t.Fatal(err)
	}

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Header().Get(versionHeader) != config.VersionString {
		t.Errorf("handler returned wrong version header: got %v want %v",
			rr.Header().Get(versionHeader), config.VersionString)
	}
}

func TestRequestID(t *testing.T) {
	var seen string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = models.RequestIDFromContext(r.Context())
	}))

	t.Run("propagates incoming id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(models.RequestIDHeader, "abc-123")
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.Equal(t, "abc-123", seen)
		assert.Equal(t, "abc-123", rr.Header().Get(models.RequestIDHeader))
	})

	t.Run("generates id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rr := httptest.NewRecorder()

		handler.ServeHTTP(rr, req)

		assert.Len(t, seen, 36)
		assert.Equal(t, seen, rr.Header().Get(models.RequestIDHeader))
	})
}

func TestCreate(t *testing.T) {
	appState := newTestAppState(&testutils.FakeContextModel{})
	appState.Config.Server.Host = "127.0.0.1"
	appState.Config.Server.Port = 8123

	srv, err := Create(appState)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:8123", srv.Addr)
	assert.Equal(t, ReadHeaderTimeout, srv.ReadHeaderTimeout)
}

func TestCORS(t *testing.T) {
	appState := newTestAppState(&testutils.FakeContextModel{})
	appState.Config.Server.CORSAllowedOrigins = []string{"https://viewer.example.org"}

	router, err := setupRouter(appState)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodOptions, "/spacy_context/process", nil)
	req.Header.Set("Origin", "https://viewer.example.org")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	res := httptest.NewRecorder()

	router.ServeHTTP(res, req)
	assert.Equal(t, "https://viewer.example.org", res.Header().Get("Access-Control-Allow-Origin"))
}
