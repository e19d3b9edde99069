package model

import "time"

// RepoConfig is a per-repository override of an Installation's policy.
// At most one exists per (installation, repository full name) pair. A nil
// field inherits the installation's value; a non-nil field always wins.
type RepoConfig struct {
	ID              int64
	InstallationID  int64 // References Installation.ID (not the host ID).
	RepoFullName    string
	DefaultLanguage *string
	AutoTranslate   *bool
	AutoLabel       *bool
	UpdatedAt       time.Time
}

// IsEmpty reports whether every override field is nil. An empty RepoConfig is
// semantically equivalent to having no override and may be pruned.
func (c RepoConfig) IsEmpty() bool {
	return c.DefaultLanguage == nil && c.AutoTranslate == nil && c.AutoLabel == nil
}
