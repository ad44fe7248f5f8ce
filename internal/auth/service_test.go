package auth_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/sprintlens/sprintlens/internal/auth"
)

// Low cost keeps bcrypt fast in tests.
const testBcryptCost = 4

type mockKeyRepo struct {
	createFn       func(ctx context.Context, key *auth.APIKey) error
	findByPrefixFn func(ctx context.Context, prefix string) ([]auth.APIKey, error)
	revokeFn       func(ctx context.Context, id uuid.UUID) error
	countAllFn     func(ctx context.Context) (int, error)
}

func (m *mockKeyRepo) Create(ctx context.Context, key *auth.APIKey) error {
	if m.createFn != nil {
		return m.createFn(ctx, key)
	}
	key.ID = uuid.New()
	return nil
}

func (m *mockKeyRepo) FindByPrefix(ctx context.Context, prefix string) ([]auth.APIKey, error) {
	if m.findByPrefixFn != nil {
		return m.findByPrefixFn(ctx, prefix)
	}
	return nil, nil
}

func (m *mockKeyRepo) Revoke(ctx context.Context, id uuid.UUID) error {
	if m.revokeFn != nil {
		return m.revokeFn(ctx, id)
	}
	return nil
}

func (m *mockKeyRepo) CountAll(ctx context.Context) (int, error) {
	if m.countAllFn != nil {
		return m.countAllFn(ctx)
	}
	return 0, nil
}

func TestGenerateKey_Format(t *testing.T) {
	t.Parallel()

	svc := auth.NewService(&mockKeyRepo{}, testBcryptCost)

	rawKey, prefix, hash, err := svc.GenerateKey()

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(rawKey, "sl_"))
	assert.Len(t, prefix, 8)
	assert.Equal(t, rawKey[:8], prefix)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte(rawKey)))
}

func TestGenerateKey_Unique(t *testing.T) {
	t.Parallel()

	svc := auth.NewService(&mockKeyRepo{}, testBcryptCost)

	a, _, _, err := svc.GenerateKey()
	require.NoError(t, err)
	b, _, _, err := svc.GenerateKey()
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestAuthenticate_Success(t *testing.T) {
	t.Parallel()

	svc := auth.NewService(nil, testBcryptCost)
	rawKey, prefix, hash, err := svc.GenerateKey()
	require.NoError(t, err)

	keyID := uuid.New()
	repo := &mockKeyRepo{
		findByPrefixFn: func(_ context.Context, gotPrefix string) ([]auth.APIKey, error) {
			assert.Equal(t, prefix, gotPrefix)
			return []auth.APIKey{
				{ID: keyID, Name: "ci", KeyPrefix: prefix, KeyHash: hash},
			}, nil
		},
	}
	svc = auth.NewService(repo, testBcryptCost)

	identity, err := svc.Authenticate(context.Background(), rawKey)

	require.NoError(t, err)
	assert.Equal(t, keyID, identity.KeyID)
	assert.Equal(t, "ci", identity.KeyName)
}

func TestAuthenticate_WrongKeySamePrefix(t *testing.T) {
	t.Parallel()

	svc := auth.NewService(nil, testBcryptCost)
	rawKey, prefix, hash, err := svc.GenerateKey()
	require.NoError(t, err)

	repo := &mockKeyRepo{
		findByPrefixFn: func(_ context.Context, _ string) ([]auth.APIKey, error) {
			return []auth.APIKey{
				{ID: uuid.New(), KeyPrefix: prefix, KeyHash: hash},
			}, nil
		},
	}
	svc = auth.NewService(repo, testBcryptCost)

	// Same prefix, different suffix: bcrypt comparison must reject it.
	identity, err := svc.Authenticate(context.Background(), rawKey[:len(rawKey)-1]+"x")

	assert.Nil(t, identity)
	assert.ErrorIs(t, err, auth.ErrInvalidKey)
}

func TestAuthenticate_TooShort(t *testing.T) {
	t.Parallel()

	svc := auth.NewService(&mockKeyRepo{}, testBcryptCost)

	identity, err := svc.Authenticate(context.Background(), "sl_")

	assert.Nil(t, identity)
	assert.ErrorIs(t, err, auth.ErrInvalidKey)
}

func TestAuthenticate_NoCandidates(t *testing.T) {
	t.Parallel()

	svc := auth.NewService(&mockKeyRepo{}, testBcryptCost)

	identity, err := svc.Authenticate(context.Background(), "sl_completely-unknown-key")

	assert.Nil(t, identity)
	assert.ErrorIs(t, err, auth.ErrInvalidKey)
}

func TestBootstrapKey_CreatesFirstKey(t *testing.T) {
	t.Parallel()

	var created *auth.APIKey
	repo := &mockKeyRepo{
		countAllFn: func(_ context.Context) (int, error) { return 0, nil },
		createFn: func(_ context.Context, key *auth.APIKey) error {
			created = key
			return nil
		},
	}
	svc := auth.NewService(repo, testBcryptCost)

	rawKey, err := svc.BootstrapKey(context.Background())

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(rawKey, "sl_"))
	require.NotNil(t, created)
	assert.Equal(t, "bootstrap", created.Name)
	assert.Equal(t, rawKey[:8], created.KeyPrefix)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.KeyHash), []byte(rawKey)))
}

func TestBootstrapKey_SkipsWhenKeysExist(t *testing.T) {
	t.Parallel()

	createCalled := false
	repo := &mockKeyRepo{
		countAllFn: func(_ context.Context) (int, error) { return 3, nil },
		createFn: func(_ context.Context, _ *auth.APIKey) error {
			createCalled = true
			return nil
		},
	}
	svc := auth.NewService(repo, testBcryptCost)

	rawKey, err := svc.BootstrapKey(context.Background())

	require.NoError(t, err)
	assert.Empty(t, rawKey)
	assert.False(t, createCalled)
}

func TestBootstrapKey_CountError(t *testing.T) {
	t.Parallel()

	repo := &mockKeyRepo{
		countAllFn: func(_ context.Context) (int, error) { return 0, errors.New("db down") },
	}
	svc := auth.NewService(repo, testBcryptCost)

	rawKey, err := svc.BootstrapKey(context.Background())

	require.Error(t, err)
	assert.Empty(t, rawKey)
}
