package application

import (
	"context"
	"fmt"

	"github.com/ericfisherdev/langbot/internal/domain/model"
	"github.com/ericfisherdev/langbot/internal/domain/port/driven"
)

// InstallationUpdate is a partial update of an installation's default policy.
// Nil fields are left unchanged.
type InstallationUpdate struct {
	DefaultLanguage *string
	AutoTranslate   *bool
	AutoLabel       *bool
}

// SettingsService resolves effective per-repository settings from the
// two-level override hierarchy and fronts the settings-store CRUD used by
// the configuration API. It never caches: every resolution reads the store.
type SettingsService struct {
	store driven.SettingsStore
}

// NewSettingsService creates a SettingsService backed by the given store.
func NewSettingsService(store driven.SettingsStore) *SettingsService {
	return &SettingsService{store: store}
}

// Resolve computes the effective settings for one repository: each field
// takes the repo override when present, else the installation default.
// Returns (nil, nil) when no installation exists for the host installation
// ID; the bot is not configured for that account and the caller must no-op.
func (s *SettingsService) Resolve(ctx context.Context, hostInstallationID int64, repoFullName string) (*model.EffectiveSettings, error) {
	inst, err := s.store.GetInstallationByHostID(ctx, hostInstallationID)
	if err != nil {
		return nil, fmt.Errorf("resolve settings for installation %d: %w", hostInstallationID, err)
	}
	if inst == nil {
		return nil, nil
	}

	config, err := s.store.GetRepoConfig(ctx, inst.ID, repoFullName)
	if err != nil {
		return nil, fmt.Errorf("resolve settings for %s: %w", repoFullName, err)
	}

	settings := model.Merge(*inst, config)
	return &settings, nil
}

// RegisterInstallation idempotently upserts the installation for an
// "installation added" event. Repeated deliveries refresh the identity
// fields; stored policy fields are preserved.
func (s *SettingsService) RegisterInstallation(ctx context.Context, ev model.InstallationEvent) (model.Installation, error) {
	inst, err := s.store.UpsertInstallation(ctx, model.Installation{
		InstallationID: ev.InstallationID,
		AccountLogin:   ev.AccountLogin,
		AccountType:    ev.AccountType,
	})
	if err != nil {
		return model.Installation{}, fmt.Errorf("register installation %d: %w", ev.InstallationID, err)
	}
	return inst, nil
}

// RemoveInstallation deletes the installation and cascades to its repo
// configs. Removing an unknown installation is a no-op.
func (s *SettingsService) RemoveInstallation(ctx context.Context, hostInstallationID int64) error {
	if err := s.store.DeleteInstallation(ctx, hostInstallationID); err != nil {
		return fmt.Errorf("remove installation %d: %w", hostInstallationID, err)
	}
	return nil
}

// ListInstallations returns all installations ordered by account login.
func (s *SettingsService) ListInstallations(ctx context.Context) ([]model.Installation, error) {
	return s.store.ListInstallations(ctx)
}

// UpdateInstallation applies a partial update to an installation's default
// policy. Returns driven.ErrInstallationNotFound when the host installation
// ID is unknown.
func (s *SettingsService) UpdateInstallation(ctx context.Context, hostInstallationID int64, update InstallationUpdate) (*model.Installation, error) {
	inst, err := s.store.GetInstallationByHostID(ctx, hostInstallationID)
	if err != nil {
		return nil, err
	}
	if inst == nil {
		return nil, driven.ErrInstallationNotFound
	}

	if update.DefaultLanguage != nil {
		inst.DefaultLanguage = *update.DefaultLanguage
	}
	if update.AutoTranslate != nil {
		inst.AutoTranslate = *update.AutoTranslate
	}
	if update.AutoLabel != nil {
		inst.AutoLabel = *update.AutoLabel
	}

	if err := s.store.UpdateInstallationSettings(ctx, *inst); err != nil {
		return nil, fmt.Errorf("update installation %d: %w", hostInstallationID, err)
	}

	return inst, nil
}

// ListRepoConfigs returns the per-repository overrides of an installation,
// addressed by host installation ID.
func (s *SettingsService) ListRepoConfigs(ctx context.Context, hostInstallationID int64) ([]model.RepoConfig, error) {
	inst, err := s.store.GetInstallationByHostID(ctx, hostInstallationID)
	if err != nil {
		return nil, err
	}
	if inst == nil {
		return nil, driven.ErrInstallationNotFound
	}
	return s.store.ListRepoConfigs(ctx, inst.ID)
}

// SetRepoConfig upserts the override for one repository. An override with
// every field nil is equivalent to no override, so it prunes the stored row
// instead of persisting an empty one.
func (s *SettingsService) SetRepoConfig(ctx context.Context, hostInstallationID int64, config model.RepoConfig) error {
	inst, err := s.store.GetInstallationByHostID(ctx, hostInstallationID)
	if err != nil {
		return err
	}
	if inst == nil {
		return driven.ErrInstallationNotFound
	}

	config.InstallationID = inst.ID

	if config.IsEmpty() {
		err := s.store.DeleteRepoConfig(ctx, inst.ID, config.RepoFullName)
		if err != nil && err != driven.ErrRepoConfigNotFound {
			return fmt.Errorf("prune empty repo config for %s: %w", config.RepoFullName, err)
		}
		return nil
	}

	if err := s.store.UpsertRepoConfig(ctx, config); err != nil {
		return fmt.Errorf("set repo config for %s: %w", config.RepoFullName, err)
	}
	return nil
}

// DeleteRepoConfig removes the override for one repository, addressed by
// host installation ID.
func (s *SettingsService) DeleteRepoConfig(ctx context.Context, hostInstallationID int64, repoFullName string) error {
	inst, err := s.store.GetInstallationByHostID(ctx, hostInstallationID)
	if err != nil {
		return err
	}
	if inst == nil {
		return driven.ErrInstallationNotFound
	}
	return s.store.DeleteRepoConfig(ctx, inst.ID, repoFullName)
}
