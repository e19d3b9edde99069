// Package driven defines secondary port interfaces for external adapters.
package driven

import (
	"context"
	"errors"

	"github.com/ericfisherdev/langbot/internal/domain/model"
)

// Sentinel errors returned by SettingsStore implementations.
var (
	// ErrInstallationNotFound indicates no installation exists for the given
	// host installation ID.
	ErrInstallationNotFound = errors.New("installation not found")

	// ErrRepoConfigNotFound indicates no override exists for the given
	// (installation, repository) pair.
	ErrRepoConfigNotFound = errors.New("repo config not found")
)

// SettingsStore defines the driven port for installation and per-repository
// policy persistence. The dispatcher only ever reads from it; writes come
// from installation webhooks and the configuration API.
type SettingsStore interface {
	// GetInstallationByHostID looks up an installation by its host-assigned
	// installation ID. Returns (nil, nil) when none exists; the bot is not
	// configured for that account and callers must no-op.
	GetInstallationByHostID(ctx context.Context, hostInstallationID int64) (*model.Installation, error)

	// ListInstallations returns all installations ordered by account login.
	ListInstallations(ctx context.Context) ([]model.Installation, error)

	// UpsertInstallation creates the installation or, when a row for the same
	// host installation ID already exists, refreshes its identity fields
	// (account login and type) while preserving the stored policy fields.
	UpsertInstallation(ctx context.Context, inst model.Installation) (model.Installation, error)

	// UpdateInstallationSettings replaces the policy fields (default language,
	// auto-translate, auto-label) of the installation identified by
	// inst.InstallationID. Returns ErrInstallationNotFound when absent.
	UpdateInstallationSettings(ctx context.Context, inst model.Installation) error

	// DeleteInstallation removes the installation for the given host
	// installation ID along with all of its repo configs. Deleting an unknown
	// installation is a no-op.
	DeleteInstallation(ctx context.Context, hostInstallationID int64) error

	// GetRepoConfig returns the override for the given installation (by
	// internal ID) and repository full name, or (nil, nil) when none exists.
	GetRepoConfig(ctx context.Context, installationID int64, repoFullName string) (*model.RepoConfig, error)

	// ListRepoConfigs returns all overrides for the installation ordered by
	// repository full name.
	ListRepoConfigs(ctx context.Context, installationID int64) ([]model.RepoConfig, error)

	// UpsertRepoConfig creates or replaces the override keyed on
	// (installation, repository full name).
	UpsertRepoConfig(ctx context.Context, config model.RepoConfig) error

	// DeleteRepoConfig removes the override for the given installation and
	// repository. Returns ErrRepoConfigNotFound when absent.
	DeleteRepoConfig(ctx context.Context, installationID int64, repoFullName string) error
}
