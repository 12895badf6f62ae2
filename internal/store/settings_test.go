package store

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/zaloga/internal/db"
	"github.com/erazemk/zaloga/internal/docstore"
)

func newTestSettings(t *testing.T, opts ...Option) *Settings {
	t.Helper()
	backend, err := docstore.NewSQLiteBackend(db.NewTestDB(t))
	require.NoError(t, err)
	return NewSettings(NewSettingsDocs(backend), opts...)
}

func TestJWTSecretGeneratesAndPersists(t *testing.T) {
	settings := newTestSettings(t)
	ctx := context.Background()

	secret1, err := settings.JWTSecret(ctx)
	require.NoError(t, err)
	assert.Len(t, secret1, 64) // 32 bytes = 64 hex chars

	secret2, err := settings.JWTSecret(ctx)
	require.NoError(t, err)
	assert.Equal(t, secret1, secret2)
}

func TestJWTSecretConcurrentFirstUse(t *testing.T) {
	settings := newTestSettings(t)
	ctx := context.Background()

	const n = 10
	secrets := make([]string, n)
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s, err := settings.JWTSecret(ctx)
			if err != nil {
				t.Errorf("JWTSecret: %v", err)
			}
			secrets[i] = s
		}()
	}
	wg.Wait()

	for _, s := range secrets {
		assert.Equal(t, secrets[0], s)
	}
}

func TestOperator(t *testing.T) {
	clock := newStepClock()
	settings := newTestSettings(t, WithClock(clock.Now))
	ctx := context.Background()

	op, err := settings.Operator(ctx)
	require.NoError(t, err)
	assert.Nil(t, op)

	err = settings.SetPassword(ctx, "hash")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, settings.SetOperator(ctx, "Admin", "hash1"))
	op, err = settings.Operator(ctx)
	require.NoError(t, err)
	require.NotNil(t, op)
	assert.Equal(t, "Admin", op.Username)
	assert.Equal(t, "hash1", op.PasswordHash)
	assert.False(t, op.CreatedAt.IsZero())

	require.NoError(t, settings.SetPassword(ctx, "hash2"))
	op, _ = settings.Operator(ctx)
	assert.Equal(t, "hash2", op.PasswordHash)
	assert.Equal(t, "Admin", op.Username)
}

func TestSetOperatorValidation(t *testing.T) {
	settings := newTestSettings(t)
	ctx := context.Background()

	require.ErrorIs(t, settings.SetOperator(ctx, "", "hash"), ErrValidation)
	require.ErrorIs(t, settings.SetOperator(ctx, "Admin", ""), ErrValidation)
	require.ErrorIs(t, settings.SetPassword(ctx, ""), ErrValidation)
}

func TestSettingsAndOrganizationsShareBackend(t *testing.T) {
	backend := docstore.NewMemoryBackend()
	settings := NewSettings(NewSettingsDocs(backend))
	orgs := NewOrganizations(NewOrganizationDocs(backend))
	ctx := context.Background()

	_, err := settings.JWTSecret(ctx)
	require.NoError(t, err)
	_, err = orgs.Create(ctx, "Shop A", "")
	require.NoError(t, err)

	_, ok := backend.Raw(SettingsDocument)
	assert.True(t, ok)
	_, ok = backend.Raw(OrganizationsDocument)
	assert.True(t, ok)

	list, err := orgs.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
