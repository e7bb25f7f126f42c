package auth

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

// fakeFirebase emulates the identitytoolkit REST surface the client talks to.
func fakeFirebase(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/accounts:signUp", func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		if payload["email"] == "taken@example.com" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":{"message":"EMAIL_EXISTS"}}`))
			return
		}
		resp := map[string]any{
			"localId": "uid-1", "email": payload["email"], "idToken": "id-token", "refreshToken": "refresh-token",
		}
		if name, ok := payload["displayName"]; ok {
			resp["displayName"] = name
		}
		_ = json.NewEncoder(w).Encode(resp)
	})
	mux.HandleFunc("/accounts:signInWithPassword", func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		if payload["password"] != "correct-horse" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":{"message":"INVALID_PASSWORD"}}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"localId": "uid-1", "email": payload["email"], "idToken": "id-token", "refreshToken": "refresh-token",
		})
	})
	mux.HandleFunc("/accounts:sendOobCode", func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		require.Equal(t, "PASSWORD_RESET", payload["requestType"])
		if payload["email"] == "missing@example.com" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":{"message":"EMAIL_NOT_FOUND"}}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"email": payload["email"]})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func newAuthRouter(t *testing.T) http.Handler {
	t.Helper()
	upstream := fakeFirebase(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewHandler(logger, NewClient(upstream.URL, "test-key"))

	r := chi.NewRouter()
	r.Route("/auth", handler.MountRoutes)
	return r
}

func postJSON(t *testing.T, router http.Handler, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRegisterReturnsSession(t *testing.T) {
	router := newAuthRouter(t)

	rec := postJSON(t, router, "/auth/register", map[string]any{
		"email": "new@example.com", "password": "secret-123", "full_name": "Nguyễn Văn A",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var session Session
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &session))
	require.Equal(t, "uid-1", session.User.ID)
	require.Equal(t, "new@example.com", session.User.Email)
	require.NotNil(t, session.User.Name)
	require.Equal(t, "Nguyễn Văn A", *session.User.Name)
	require.Equal(t, "id-token", session.Token)
	require.NotNil(t, session.RefreshToken)
}

func TestRegisterUpstreamErrorSurfacesCode(t *testing.T) {
	router := newAuthRouter(t)

	rec := postJSON(t, router, "/auth/register", map[string]any{
		"email": "taken@example.com", "password": "secret-123",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "EMAIL_EXISTS")
}

func TestRegisterValidatesBeforeCallingUpstream(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	// Unreachable upstream: validation must fail first.
	handler := NewHandler(logger, NewClient("http://127.0.0.1:1", "test-key"))
	r := chi.NewRouter()
	r.Route("/auth", handler.MountRoutes)

	rec := postJSON(t, r, "/auth/register", map[string]any{"email": "not-an-email", "password": "secret-123"})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postJSON(t, r, "/auth/register", map[string]any{"email": "ok@example.com", "password": "short"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogin(t *testing.T) {
	router := newAuthRouter(t)

	rec := postJSON(t, router, "/auth/login", map[string]any{
		"email": "user@example.com", "password": "correct-horse",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = postJSON(t, router, "/auth/login", map[string]any{
		"email": "user@example.com", "password": "wrong",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "INVALID_PASSWORD")
}

func TestLogoutAlwaysSucceeds(t *testing.T) {
	router := newAuthRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "logged out")
}

func TestForgotPassword(t *testing.T) {
	router := newAuthRouter(t)

	rec := postJSON(t, router, "/auth/forgot-password", map[string]any{"email": "user@example.com"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = postJSON(t, router, "/auth/forgot-password", map[string]any{"email": "missing@example.com"})
	require.Equal(t, http.StatusNotFound, rec.Code)
}
