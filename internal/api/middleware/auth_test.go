package middleware_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sprintlens/sprintlens/internal/api/middleware"
	"github.com/sprintlens/sprintlens/internal/auth"
)

const testBcryptCost = 4

type mockKeyRepo struct {
	keys []auth.APIKey
}

func (m *mockKeyRepo) Create(_ context.Context, key *auth.APIKey) error {
	key.ID = uuid.New()
	m.keys = append(m.keys, *key)
	return nil
}

func (m *mockKeyRepo) FindByPrefix(_ context.Context, prefix string) ([]auth.APIKey, error) {
	var out []auth.APIKey
	for _, k := range m.keys {
		if k.KeyPrefix == prefix && !k.Revoked {
			out = append(out, k)
		}
	}
	return out, nil
}

func (m *mockKeyRepo) Revoke(_ context.Context, id uuid.UUID) error {
	for i := range m.keys {
		if m.keys[i].ID == id {
			m.keys[i].Revoked = true
		}
	}
	return nil
}

func (m *mockKeyRepo) CountAll(_ context.Context) (int, error) {
	return len(m.keys), nil
}

func issueKey(t *testing.T, svc *auth.Service, repo *mockKeyRepo, name string) string {
	t.Helper()
	rawKey, prefix, hash, err := svc.GenerateKey()
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), &auth.APIKey{
		Name:      name,
		KeyPrefix: prefix,
		KeyHash:   hash,
	}))
	return rawKey
}

func TestAuth_ValidKey(t *testing.T) {
	// Arrange
	repo := &mockKeyRepo{}
	svc := auth.NewService(repo, testBcryptCost)
	rawKey := issueKey(t, svc, repo, "ci")

	var identity *auth.Identity
	handler := middleware.Auth(svc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity = middleware.GetIdentity(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/teams", nil)
	req.Header.Set("X-API-Key", rawKey)
	w := httptest.NewRecorder()

	// Act
	handler.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, identity)
	assert.Equal(t, "ci", identity.KeyName)
}

func TestAuth_MissingKey(t *testing.T) {
	// Arrange
	svc := auth.NewService(&mockKeyRepo{}, testBcryptCost)
	handler := middleware.Auth(svc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without a key")
	}))

	req := httptest.NewRequest(http.MethodPost, "/teams", nil)
	w := httptest.NewRecorder()

	// Act
	handler.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var env map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	apiErr := env["error"].(map[string]interface{})
	assert.Equal(t, "UNAUTHORIZED", apiErr["code"])
}

func TestAuth_InvalidKey(t *testing.T) {
	// Arrange
	repo := &mockKeyRepo{}
	svc := auth.NewService(repo, testBcryptCost)
	issueKey(t, svc, repo, "ci")

	handler := middleware.Auth(svc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run with an invalid key")
	}))

	req := httptest.NewRequest(http.MethodPost, "/teams", nil)
	req.Header.Set("X-API-Key", "sl_not-the-right-key")
	w := httptest.NewRecorder()

	// Act
	handler.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_RevokedKey(t *testing.T) {
	// Arrange
	repo := &mockKeyRepo{}
	svc := auth.NewService(repo, testBcryptCost)
	rawKey := issueKey(t, svc, repo, "ci")
	require.NoError(t, repo.Revoke(context.Background(), repo.keys[0].ID))

	handler := middleware.Auth(svc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run with a revoked key")
	}))

	req := httptest.NewRequest(http.MethodPost, "/teams", nil)
	req.Header.Set("X-API-Key", rawKey)
	w := httptest.NewRecorder()

	// Act
	handler.ServeHTTP(w, req)

	// Assert
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetIdentity_EmptyContext(t *testing.T) {
	assert.Nil(t, middleware.GetIdentity(context.Background()))
}
