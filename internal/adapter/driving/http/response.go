package httphandler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ericfisherdev/langbot/internal/domain/model"
)

// writeJSON marshals v to JSON and writes it to the response with the given
// status code. If marshaling fails, a 500 error is written instead.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// writeError writes a JSON error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// errorResponse is the standard error response body.
type errorResponse struct {
	Error string `json:"error"`
}

// InstallationResponse is the JSON representation of an installation and its
// default policy. Only the host-side installation ID is exposed; internal row
// IDs stay internal.
type InstallationResponse struct {
	InstallationID  int64  `json:"installation_id"`
	AccountLogin    string `json:"account_login"`
	AccountType     string `json:"account_type"`
	DefaultLanguage string `json:"default_language"`
	AutoTranslate   bool   `json:"auto_translate"`
	AutoLabel       bool   `json:"auto_label"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at"`
}

// RepoConfigResponse is the JSON representation of a per-repository override.
// Absent fields inherit the installation default.
type RepoConfigResponse struct {
	RepoFullName    string  `json:"repo_full_name"`
	DefaultLanguage *string `json:"default_language,omitempty"`
	AutoTranslate   *bool   `json:"auto_translate,omitempty"`
	AutoLabel       *bool   `json:"auto_label,omitempty"`
	UpdatedAt       string  `json:"updated_at"`
}

// HealthResponse is the JSON representation of the health check endpoint.
type HealthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

// UpdateInstallationRequest is the JSON body for the installation settings
// patch endpoint. Absent fields are left unchanged.
type UpdateInstallationRequest struct {
	DefaultLanguage *string `json:"default_language"`
	AutoTranslate   *bool   `json:"auto_translate"`
	AutoLabel       *bool   `json:"auto_label"`
}

// SetRepoConfigRequest is the JSON body for the repository override put
// endpoint. A body with every field absent clears the override.
type SetRepoConfigRequest struct {
	DefaultLanguage *string `json:"default_language"`
	AutoTranslate   *bool   `json:"auto_translate"`
	AutoLabel       *bool   `json:"auto_label"`
}

// toInstallationResponse converts a domain Installation to its JSON
// response representation.
func toInstallationResponse(inst model.Installation) InstallationResponse {
	return InstallationResponse{
		InstallationID:  inst.InstallationID,
		AccountLogin:    inst.AccountLogin,
		AccountType:     string(inst.AccountType),
		DefaultLanguage: inst.DefaultLanguage,
		AutoTranslate:   inst.AutoTranslate,
		AutoLabel:       inst.AutoLabel,
		CreatedAt:       inst.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:       inst.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// toRepoConfigResponse converts a domain RepoConfig to its JSON response
// representation.
func toRepoConfigResponse(config model.RepoConfig) RepoConfigResponse {
	return RepoConfigResponse{
		RepoFullName:    config.RepoFullName,
		DefaultLanguage: config.DefaultLanguage,
		AutoTranslate:   config.AutoTranslate,
		AutoLabel:       config.AutoLabel,
		UpdatedAt:       config.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
