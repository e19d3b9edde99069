// Package httphandler is the HTTP driving adapter: it serves the webhook
// endpoint events are delivered to and the REST API the configuration UI
// consumes.
package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ericfisherdev/langbot/internal/application"
	"github.com/ericfisherdev/langbot/internal/domain/model"
	"github.com/ericfisherdev/langbot/internal/domain/port/driven"
	"github.com/ericfisherdev/langbot/internal/locale"
)

// Handler is the HTTP driving adapter serving the webhook receiver and the
// configuration REST API.
type Handler struct {
	settings      *application.SettingsService
	dispatcher    *application.Dispatcher
	webhookSecret []byte
	logger        *slog.Logger
}

// NewHandler creates a Handler with all required dependencies.
func NewHandler(
	settings *application.SettingsService,
	dispatcher *application.Dispatcher,
	webhookSecret string,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		settings:      settings,
		dispatcher:    dispatcher,
		webhookSecret: []byte(webhookSecret),
		logger:        logger,
	}
}

// NewServeMux creates an http.Handler with all routes registered and wrapped
// with logging and recovery middleware.
func NewServeMux(h *Handler, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /webhook", h.HandleWebhook)

	mux.HandleFunc("GET /api/v1/health", h.Health)
	mux.HandleFunc("GET /api/v1/languages", h.ListLanguages)
	mux.HandleFunc("GET /api/v1/installations", h.ListInstallations)
	mux.HandleFunc("PATCH /api/v1/installations/{id}", h.UpdateInstallation)
	mux.HandleFunc("GET /api/v1/installations/{id}/repos", h.ListRepoConfigs)
	mux.HandleFunc("PUT /api/v1/installations/{id}/repos/{owner}/{repo}", h.SetRepoConfig)
	mux.HandleFunc("DELETE /api/v1/installations/{id}/repos/{owner}/{repo}", h.DeleteRepoConfig)

	// Recovery innermost so panics are caught before logging.
	wrapped := recoveryMiddleware(logger, mux)
	wrapped = loggingMiddleware(logger, wrapped)

	return wrapped
}

// Health returns a simple health check response.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}

// ListLanguages returns the supported locales in display order.
func (h *Handler) ListLanguages(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, locale.Supported())
}

// ListInstallations returns all registered installations.
func (h *Handler) ListInstallations(w http.ResponseWriter, r *http.Request) {
	installations, err := h.settings.ListInstallations(r.Context())
	if err != nil {
		h.logger.Error("failed to list installations", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	resp := make([]InstallationResponse, 0, len(installations))
	for _, inst := range installations {
		resp = append(resp, toInstallationResponse(inst))
	}

	writeJSON(w, http.StatusOK, resp)
}

// UpdateInstallation applies a partial update to an installation's default
// policy, addressed by host installation ID.
func (h *Handler) UpdateInstallation(w http.ResponseWriter, r *http.Request) {
	installationID, ok := parseInstallationID(w, r)
	if !ok {
		return
	}

	var req UpdateInstallationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.DefaultLanguage != nil && !isSupportedLanguage(*req.DefaultLanguage) {
		writeError(w, http.StatusBadRequest, "unsupported language: "+*req.DefaultLanguage)
		return
	}

	inst, err := h.settings.UpdateInstallation(r.Context(), installationID, application.InstallationUpdate{
		DefaultLanguage: req.DefaultLanguage,
		AutoTranslate:   req.AutoTranslate,
		AutoLabel:       req.AutoLabel,
	})
	if err != nil {
		if errors.Is(err, driven.ErrInstallationNotFound) {
			writeError(w, http.StatusNotFound, "installation not found")
			return
		}
		h.logger.Error("failed to update installation", "installation_id", installationID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, toInstallationResponse(*inst))
}

// ListRepoConfigs returns the per-repository overrides of an installation.
func (h *Handler) ListRepoConfigs(w http.ResponseWriter, r *http.Request) {
	installationID, ok := parseInstallationID(w, r)
	if !ok {
		return
	}

	configs, err := h.settings.ListRepoConfigs(r.Context(), installationID)
	if err != nil {
		if errors.Is(err, driven.ErrInstallationNotFound) {
			writeError(w, http.StatusNotFound, "installation not found")
			return
		}
		h.logger.Error("failed to list repo configs", "installation_id", installationID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	resp := make([]RepoConfigResponse, 0, len(configs))
	for _, config := range configs {
		resp = append(resp, toRepoConfigResponse(config))
	}

	writeJSON(w, http.StatusOK, resp)
}

// SetRepoConfig replaces the override for one repository. A body with every
// field absent clears the override, so the repository falls back to the
// installation defaults.
func (h *Handler) SetRepoConfig(w http.ResponseWriter, r *http.Request) {
	installationID, ok := parseInstallationID(w, r)
	if !ok {
		return
	}
	owner := r.PathValue("owner")
	repo := r.PathValue("repo")

	var req SetRepoConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.DefaultLanguage != nil && !isSupportedLanguage(*req.DefaultLanguage) {
		writeError(w, http.StatusBadRequest, "unsupported language: "+*req.DefaultLanguage)
		return
	}

	config := model.RepoConfig{
		RepoFullName:    owner + "/" + repo,
		DefaultLanguage: req.DefaultLanguage,
		AutoTranslate:   req.AutoTranslate,
		AutoLabel:       req.AutoLabel,
	}

	if err := h.settings.SetRepoConfig(r.Context(), installationID, config); err != nil {
		if errors.Is(err, driven.ErrInstallationNotFound) {
			writeError(w, http.StatusNotFound, "installation not found")
			return
		}
		h.logger.Error("failed to set repo config", "repo", config.RepoFullName, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteRepoConfig removes the override for one repository.
func (h *Handler) DeleteRepoConfig(w http.ResponseWriter, r *http.Request) {
	installationID, ok := parseInstallationID(w, r)
	if !ok {
		return
	}
	fullName := r.PathValue("owner") + "/" + r.PathValue("repo")

	if err := h.settings.DeleteRepoConfig(r.Context(), installationID, fullName); err != nil {
		switch {
		case errors.Is(err, driven.ErrInstallationNotFound):
			writeError(w, http.StatusNotFound, "installation not found")
		case errors.Is(err, driven.ErrRepoConfigNotFound):
			writeError(w, http.StatusNotFound, "repository override not found")
		default:
			h.logger.Error("failed to delete repo config", "repo", fullName, "error", err)
			writeError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// parseInstallationID extracts the {id} path value as a host installation ID,
// writing a 400 response when it is not a positive integer.
func parseInstallationID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid installation id")
		return 0, false
	}
	return id, true
}

// isSupportedLanguage reports whether a free-text language name resolves to
// one of the supported locales.
func isSupportedLanguage(name string) bool {
	code := locale.Resolve(name)
	for _, l := range locale.Supported() {
		if strings.EqualFold(l.Code, code) {
			return true
		}
	}
	return false
}
