package model

import "time"

// AccountType distinguishes user accounts from organizations on the host side.
type AccountType string

// Account type values as reported by GitHub installation payloads.
const (
	AccountTypeUser         AccountType = "User"
	AccountTypeOrganization AccountType = "Organization"
)

// Installation is the account-level bot attachment and its default policy.
// Exactly one Installation exists per host-assigned installation ID; repeated
// "installation created" deliveries refresh the identity fields idempotently.
type Installation struct {
	ID              int64
	InstallationID  int64 // Host-assigned GitHub App installation ID.
	AccountLogin    string
	AccountType     AccountType
	DefaultLanguage string // Lower-cased English language name, e.g. "english".
	AutoTranslate   bool
	AutoLabel       bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
