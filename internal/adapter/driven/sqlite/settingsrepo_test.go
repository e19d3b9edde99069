package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/langbot/internal/domain/model"
	"github.com/ericfisherdev/langbot/internal/domain/port/driven"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestUpsertInstallation_NewRowGetsSchemaDefaults(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSettingsRepo(db)
	ctx := context.Background()

	inst, err := repo.UpsertInstallation(ctx, model.Installation{
		InstallationID: 42,
		AccountLogin:   "acme",
		AccountType:    model.AccountTypeOrganization,
	})
	require.NoError(t, err)

	assert.NotZero(t, inst.ID)
	assert.Equal(t, int64(42), inst.InstallationID)
	assert.Equal(t, "acme", inst.AccountLogin)
	assert.Equal(t, model.AccountTypeOrganization, inst.AccountType)
	assert.Equal(t, "english", inst.DefaultLanguage)
	assert.True(t, inst.AutoTranslate)
	assert.True(t, inst.AutoLabel)
	assert.False(t, inst.CreatedAt.IsZero())
}

func TestUpsertInstallation_ConflictRefreshesIdentityOnly(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSettingsRepo(db)
	ctx := context.Background()

	first, err := repo.UpsertInstallation(ctx, model.Installation{
		InstallationID: 42,
		AccountLogin:   "acme",
		AccountType:    model.AccountTypeOrganization,
	})
	require.NoError(t, err)

	first.DefaultLanguage = "japanese"
	first.AutoTranslate = false
	require.NoError(t, repo.UpdateInstallationSettings(ctx, first))

	second, err := repo.UpsertInstallation(ctx, model.Installation{
		InstallationID: 42,
		AccountLogin:   "acme-renamed",
		AccountType:    model.AccountTypeUser,
	})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "redelivery must not create a second row")
	assert.Equal(t, "acme-renamed", second.AccountLogin)
	assert.Equal(t, model.AccountTypeUser, second.AccountType)
	assert.Equal(t, "japanese", second.DefaultLanguage)
	assert.False(t, second.AutoTranslate)
}

func TestGetInstallationByHostID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSettingsRepo(db)

	inst, err := repo.GetInstallationByHostID(context.Background(), 999)

	require.NoError(t, err)
	assert.Nil(t, inst)
}

func TestUpdateInstallationSettings_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSettingsRepo(db)

	err := repo.UpdateInstallationSettings(context.Background(), model.Installation{InstallationID: 999})

	assert.ErrorIs(t, err, driven.ErrInstallationNotFound)
}

func TestListInstallations_OrderedByLogin(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSettingsRepo(db)
	ctx := context.Background()

	_, err := repo.UpsertInstallation(ctx, model.Installation{InstallationID: 2, AccountLogin: "zebra", AccountType: model.AccountTypeUser})
	require.NoError(t, err)
	_, err = repo.UpsertInstallation(ctx, model.Installation{InstallationID: 1, AccountLogin: "acme", AccountType: model.AccountTypeOrganization})
	require.NoError(t, err)

	installations, err := repo.ListInstallations(ctx)

	require.NoError(t, err)
	require.Len(t, installations, 2)
	assert.Equal(t, "acme", installations[0].AccountLogin)
	assert.Equal(t, "zebra", installations[1].AccountLogin)
}

func TestRepoConfig_UpsertGetRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSettingsRepo(db)
	ctx := context.Background()

	inst, err := repo.UpsertInstallation(ctx, model.Installation{InstallationID: 42, AccountLogin: "acme", AccountType: model.AccountTypeOrganization})
	require.NoError(t, err)

	require.NoError(t, repo.UpsertRepoConfig(ctx, model.RepoConfig{
		InstallationID:  inst.ID,
		RepoFullName:    "acme/widgets",
		DefaultLanguage: strPtr("french"),
		AutoTranslate:   boolPtr(false),
		// AutoLabel left nil: inherits.
	}))

	config, err := repo.GetRepoConfig(ctx, inst.ID, "acme/widgets")
	require.NoError(t, err)
	require.NotNil(t, config)

	require.NotNil(t, config.DefaultLanguage)
	assert.Equal(t, "french", *config.DefaultLanguage)
	require.NotNil(t, config.AutoTranslate)
	assert.False(t, *config.AutoTranslate)
	assert.Nil(t, config.AutoLabel)
}

func TestRepoConfig_UpsertReplacesExisting(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSettingsRepo(db)
	ctx := context.Background()

	inst, err := repo.UpsertInstallation(ctx, model.Installation{InstallationID: 42, AccountLogin: "acme", AccountType: model.AccountTypeOrganization})
	require.NoError(t, err)

	require.NoError(t, repo.UpsertRepoConfig(ctx, model.RepoConfig{
		InstallationID:  inst.ID,
		RepoFullName:    "acme/widgets",
		DefaultLanguage: strPtr("french"),
	}))
	require.NoError(t, repo.UpsertRepoConfig(ctx, model.RepoConfig{
		InstallationID: inst.ID,
		RepoFullName:   "acme/widgets",
		AutoLabel:      boolPtr(true),
	}))

	configs, err := repo.ListRepoConfigs(ctx, inst.ID)
	require.NoError(t, err)
	require.Len(t, configs, 1, "upsert must replace, not duplicate")

	// Replacement is whole-row: the language override is gone.
	assert.Nil(t, configs[0].DefaultLanguage)
	require.NotNil(t, configs[0].AutoLabel)
	assert.True(t, *configs[0].AutoLabel)
}

func TestGetRepoConfig_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSettingsRepo(db)

	config, err := repo.GetRepoConfig(context.Background(), 1, "acme/widgets")

	require.NoError(t, err)
	assert.Nil(t, config)
}

func TestDeleteRepoConfig(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSettingsRepo(db)
	ctx := context.Background()

	inst, err := repo.UpsertInstallation(ctx, model.Installation{InstallationID: 42, AccountLogin: "acme", AccountType: model.AccountTypeOrganization})
	require.NoError(t, err)

	require.NoError(t, repo.UpsertRepoConfig(ctx, model.RepoConfig{
		InstallationID: inst.ID,
		RepoFullName:   "acme/widgets",
		AutoLabel:      boolPtr(false),
	}))

	require.NoError(t, repo.DeleteRepoConfig(ctx, inst.ID, "acme/widgets"))

	err = repo.DeleteRepoConfig(ctx, inst.ID, "acme/widgets")
	assert.ErrorIs(t, err, driven.ErrRepoConfigNotFound)
}

func TestDeleteInstallation_CascadesToRepoConfigs(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSettingsRepo(db)
	ctx := context.Background()

	inst, err := repo.UpsertInstallation(ctx, model.Installation{InstallationID: 42, AccountLogin: "acme", AccountType: model.AccountTypeOrganization})
	require.NoError(t, err)

	require.NoError(t, repo.UpsertRepoConfig(ctx, model.RepoConfig{
		InstallationID: inst.ID,
		RepoFullName:   "acme/widgets",
		AutoTranslate:  boolPtr(true),
	}))

	require.NoError(t, repo.DeleteInstallation(ctx, 42))

	configs, err := repo.ListRepoConfigs(ctx, inst.ID)
	require.NoError(t, err)
	assert.Empty(t, configs, "repo configs must cascade with the installation")

	// Deleting again is a no-op, not an error.
	assert.NoError(t, repo.DeleteInstallation(ctx, 42))
}
