package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ericfisherdev/langbot/internal/domain/model"
	"github.com/ericfisherdev/langbot/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.SettingsStore = (*SettingsRepo)(nil)

// SettingsRepo is the SQLite implementation of the SettingsStore port
// interface. Installations and repo configs live in two tables linked by a
// cascading foreign key, so deleting an installation prunes its overrides.
type SettingsRepo struct {
	db *DB
}

// NewSettingsRepo creates a new SettingsRepo backed by the given DB.
func NewSettingsRepo(db *DB) *SettingsRepo {
	return &SettingsRepo{db: db}
}

const installationColumns = `id, installation_id, account_login, account_type, default_language, auto_translate, auto_label, created_at, updated_at`

// GetInstallationByHostID looks up an installation by its host-assigned ID.
// Returns (nil, nil) when none exists.
func (r *SettingsRepo) GetInstallationByHostID(ctx context.Context, hostInstallationID int64) (*model.Installation, error) {
	query := `SELECT ` + installationColumns + ` FROM installations WHERE installation_id = ?`

	inst, err := scanInstallation(r.db.Reader.QueryRowContext(ctx, query, hostInstallationID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get installation %d: %w", hostInstallationID, err)
	}

	return inst, nil
}

// ListInstallations returns all installations ordered by account login.
func (r *SettingsRepo) ListInstallations(ctx context.Context) ([]model.Installation, error) {
	query := `SELECT ` + installationColumns + ` FROM installations ORDER BY account_login`

	rows, err := r.db.Reader.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list installations: %w", err)
	}
	defer rows.Close()

	var installations []model.Installation
	for rows.Next() {
		inst, err := scanInstallation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan installation: %w", err)
		}
		installations = append(installations, *inst)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate installations: %w", err)
	}

	return installations, nil
}

// UpsertInstallation inserts the installation or refreshes the identity
// fields of an existing row. Policy fields keep their stored values on
// conflict; new rows pick up the schema defaults.
func (r *SettingsRepo) UpsertInstallation(ctx context.Context, inst model.Installation) (model.Installation, error) {
	const query = `
		INSERT INTO installations (installation_id, account_login, account_type, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(installation_id) DO UPDATE SET
			account_login = excluded.account_login,
			account_type = excluded.account_type,
			updated_at = excluded.updated_at
	`

	now := time.Now().UTC().Format(time.RFC3339)
	_, err := r.db.Writer.ExecContext(ctx, query,
		inst.InstallationID, inst.AccountLogin, string(inst.AccountType), now, now,
	)
	if err != nil {
		return model.Installation{}, fmt.Errorf("upsert installation %d: %w", inst.InstallationID, err)
	}

	stored, err := r.GetInstallationByHostID(ctx, inst.InstallationID)
	if err != nil {
		return model.Installation{}, err
	}
	if stored == nil {
		return model.Installation{}, fmt.Errorf("upsert installation %d: row missing after write", inst.InstallationID)
	}

	return *stored, nil
}

// UpdateInstallationSettings replaces the policy fields of an existing
// installation. Returns driven.ErrInstallationNotFound when no row matches.
func (r *SettingsRepo) UpdateInstallationSettings(ctx context.Context, inst model.Installation) error {
	const query = `
		UPDATE installations
		SET default_language = ?, auto_translate = ?, auto_label = ?, updated_at = ?
		WHERE installation_id = ?
	`

	result, err := r.db.Writer.ExecContext(ctx, query,
		inst.DefaultLanguage, inst.AutoTranslate, inst.AutoLabel,
		time.Now().UTC().Format(time.RFC3339), inst.InstallationID,
	)
	if err != nil {
		return fmt.Errorf("update installation %d settings: %w", inst.InstallationID, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check rows affected: %w", err)
	}
	if rows == 0 {
		return driven.ErrInstallationNotFound
	}

	return nil
}

// DeleteInstallation removes the installation and, via the cascading foreign
// key, all of its repo configs. Deleting an unknown installation is a no-op.
func (r *SettingsRepo) DeleteInstallation(ctx context.Context, hostInstallationID int64) error {
	const query = `DELETE FROM installations WHERE installation_id = ?`

	if _, err := r.db.Writer.ExecContext(ctx, query, hostInstallationID); err != nil {
		return fmt.Errorf("delete installation %d: %w", hostInstallationID, err)
	}

	return nil
}

const repoConfigColumns = `id, installation_id, repo_full_name, default_language, auto_translate, auto_label, updated_at`

// GetRepoConfig returns the override for (installation, repo), or (nil, nil)
// when none exists.
func (r *SettingsRepo) GetRepoConfig(ctx context.Context, installationID int64, repoFullName string) (*model.RepoConfig, error) {
	query := `SELECT ` + repoConfigColumns + ` FROM repo_configs WHERE installation_id = ? AND repo_full_name = ?`

	config, err := scanRepoConfig(r.db.Reader.QueryRowContext(ctx, query, installationID, repoFullName))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get repo config for %s: %w", repoFullName, err)
	}

	return config, nil
}

// ListRepoConfigs returns the installation's overrides ordered by repository
// full name.
func (r *SettingsRepo) ListRepoConfigs(ctx context.Context, installationID int64) ([]model.RepoConfig, error) {
	query := `SELECT ` + repoConfigColumns + ` FROM repo_configs WHERE installation_id = ? ORDER BY repo_full_name`

	rows, err := r.db.Reader.QueryContext(ctx, query, installationID)
	if err != nil {
		return nil, fmt.Errorf("list repo configs: %w", err)
	}
	defer rows.Close()

	var configs []model.RepoConfig
	for rows.Next() {
		config, err := scanRepoConfig(rows)
		if err != nil {
			return nil, fmt.Errorf("scan repo config: %w", err)
		}
		configs = append(configs, *config)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate repo configs: %w", err)
	}

	return configs, nil
}

// UpsertRepoConfig creates or replaces the override keyed on
// (installation, repository full name).
func (r *SettingsRepo) UpsertRepoConfig(ctx context.Context, config model.RepoConfig) error {
	const query = `
		INSERT INTO repo_configs (installation_id, repo_full_name, default_language, auto_translate, auto_label, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(installation_id, repo_full_name) DO UPDATE SET
			default_language = excluded.default_language,
			auto_translate = excluded.auto_translate,
			auto_label = excluded.auto_label,
			updated_at = excluded.updated_at
	`

	_, err := r.db.Writer.ExecContext(ctx, query,
		config.InstallationID, config.RepoFullName,
		nullString(config.DefaultLanguage), nullBool(config.AutoTranslate), nullBool(config.AutoLabel),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upsert repo config for %s: %w", config.RepoFullName, err)
	}

	return nil
}

// DeleteRepoConfig removes the override. Returns driven.ErrRepoConfigNotFound
// when no row matches.
func (r *SettingsRepo) DeleteRepoConfig(ctx context.Context, installationID int64, repoFullName string) error {
	const query = `DELETE FROM repo_configs WHERE installation_id = ? AND repo_full_name = ?`

	result, err := r.db.Writer.ExecContext(ctx, query, installationID, repoFullName)
	if err != nil {
		return fmt.Errorf("delete repo config for %s: %w", repoFullName, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check rows affected: %w", err)
	}
	if rows == 0 {
		return driven.ErrRepoConfigNotFound
	}

	return nil
}

// scanner abstracts sql.Row and sql.Rows for the scan helpers.
type scanner interface {
	Scan(dest ...any) error
}

func scanInstallation(s scanner) (*model.Installation, error) {
	var (
		inst        model.Installation
		accountType string
		createdAt   string
		updatedAt   string
	)

	err := s.Scan(
		&inst.ID, &inst.InstallationID, &inst.AccountLogin, &accountType,
		&inst.DefaultLanguage, &inst.AutoTranslate, &inst.AutoLabel,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	inst.AccountType = model.AccountType(accountType)

	if inst.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if inst.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}

	return &inst, nil
}

func scanRepoConfig(s scanner) (*model.RepoConfig, error) {
	var (
		config          model.RepoConfig
		defaultLanguage sql.NullString
		autoTranslate   sql.NullBool
		autoLabel       sql.NullBool
		updatedAt       string
	)

	err := s.Scan(
		&config.ID, &config.InstallationID, &config.RepoFullName,
		&defaultLanguage, &autoTranslate, &autoLabel, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if defaultLanguage.Valid {
		config.DefaultLanguage = &defaultLanguage.String
	}
	if autoTranslate.Valid {
		config.AutoTranslate = &autoTranslate.Bool
	}
	if autoLabel.Valid {
		config.AutoLabel = &autoLabel.Bool
	}

	if config.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}

	return &config, nil
}

// parseTime parses the RFC3339 timestamps this adapter writes.
func parseTime(v string) (time.Time, error) {
	return time.Parse(time.RFC3339, v)
}

func nullString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}

func nullBool(v *bool) sql.NullBool {
	if v == nil {
		return sql.NullBool{}
	}
	return sql.NullBool{Bool: *v, Valid: true}
}
