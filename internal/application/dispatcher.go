package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/ericfisherdev/langbot/internal/domain/model"
	"github.com/ericfisherdev/langbot/internal/domain/port/driven"
)

// Dispatcher routes inbound host events to the matching action. It holds no
// per-event state: each Handle* call classifies one delivery, applies the
// anti-loop filter, and runs to completion within the caller's context.
// All capabilities are injected at construction time.
type Dispatcher struct {
	settings   *SettingsService
	host       driven.RepositoryHost
	detector   driven.LanguageDetector
	translator driven.Translator
	summarizer driven.Summarizer
	mention    string
	appID      int64 // This bot's GitHub App ID, for the anti-loop filter. Zero disables the app-identity check.
}

// NewDispatcher creates a Dispatcher with all required dependencies.
func NewDispatcher(
	settings *SettingsService,
	host driven.RepositoryHost,
	detector driven.LanguageDetector,
	translator driven.Translator,
	summarizer driven.Summarizer,
	mention string,
	appID int64,
) *Dispatcher {
	return &Dispatcher{
		settings:   settings,
		host:       host,
		detector:   detector,
		translator: translator,
		summarizer: summarizer,
		mention:    mention,
		appID:      appID,
	}
}

// HandleInstallationCreated upserts the installation. Repeated deliveries
// for the same host installation ID are idempotent.
func (d *Dispatcher) HandleInstallationCreated(ctx context.Context, ev model.InstallationEvent) error {
	inst, err := d.settings.RegisterInstallation(ctx, ev)
	if err != nil {
		return err
	}
	slog.Info("installation registered",
		"installation_id", inst.InstallationID,
		"account", inst.AccountLogin,
		"account_type", inst.AccountType,
	)
	return nil
}

// HandleInstallationDeleted removes the installation and all of its repo
// configs.
func (d *Dispatcher) HandleInstallationDeleted(ctx context.Context, hostInstallationID int64) error {
	if err := d.settings.RemoveInstallation(ctx, hostInstallationID); err != nil {
		return err
	}
	slog.Info("installation removed", "installation_id", hostInstallationID)
	return nil
}

// HandleIssueOpened applies the implicit policy path to a freshly opened
// issue or pull request: auto-label and auto-translate run when enabled,
// concurrently and independently, so a failure in one never blocks the other.
func (d *Dispatcher) HandleIssueOpened(ctx context.Context, ev model.IssueOpenedEvent) error {
	// Some event sources legitimately omit the installation ID; no-op.
	if ev.InstallationID == 0 {
		return nil
	}

	settings, err := d.settings.Resolve(ctx, ev.InstallationID, ev.Owner+"/"+ev.Repo)
	if err != nil {
		return err
	}
	if settings == nil {
		return nil
	}

	text := ev.Title + "\n\n" + ev.Body

	// Plain errgroup, no shared cancellation: both handlers always run to
	// completion and fail independently.
	var g errgroup.Group

	if settings.AutoLabel {
		g.Go(func() error {
			if err := d.autoLabel(ctx, ev.Owner, ev.Repo, ev.Number, ev.Title, ev.Body); err != nil {
				slog.Error("auto-label failed",
					"repo", ev.Owner+"/"+ev.Repo,
					"number", ev.Number,
					"error", err,
				)
				return err
			}
			return nil
		})
	}

	if settings.AutoTranslate {
		g.Go(func() error {
			if err := d.autoTranslate(ctx, ev.Owner, ev.Repo, ev.Number, text, settings.DefaultLanguage); err != nil {
				slog.Error("auto-translate failed",
					"repo", ev.Owner+"/"+ev.Repo,
					"number", ev.Number,
					"error", err,
				)
				return err
			}
			return nil
		})
	}

	return g.Wait()
}

// HandleCommentCreated processes a new issue comment. The anti-loop filter
// runs before anything else: comments authored by this app or by any
// host-side bot account are dropped so the bot never reacts to its own
// output. An explicit command always pre-empts the implicit auto-translate
// path on the same event.
func (d *Dispatcher) HandleCommentCreated(ctx context.Context, ev model.CommentEvent) error {
	if ev.AuthorIsBot || (d.appID != 0 && ev.ViaAppID == d.appID) {
		slog.Debug("ignoring bot-authored comment",
			"repo", ev.Owner+"/"+ev.Repo,
			"number", ev.IssueNumber,
			"author_id", ev.CommentAuthorID,
		)
		return nil
	}

	// Deliveries without an installation ID are dropped before command
	// parsing: even explicit commands act only on behalf of an installation.
	if ev.InstallationID == 0 {
		return nil
	}

	if cmd := ParseCommand(d.mention, ev.CommentBody); cmd != nil {
		return d.runCommand(ctx, ev, *cmd)
	}

	settings, err := d.settings.Resolve(ctx, ev.InstallationID, ev.Owner+"/"+ev.Repo)
	if err != nil {
		return err
	}
	if settings == nil || !settings.AutoTranslate {
		return nil
	}

	return d.autoTranslate(ctx, ev.Owner, ev.Repo, ev.IssueNumber, ev.CommentBody, settings.DefaultLanguage)
}

// runCommand dispatches a parsed command. The subject is the parent
// issue/PR's body, falling back to the comment body itself when the issue
// body is empty.
func (d *Dispatcher) runCommand(ctx context.Context, ev model.CommentEvent, cmd model.Command) error {
	switch cmd.Action {
	case model.CommandTranslate:
		subject := ev.ParentBody
		if strings.TrimSpace(subject) == "" {
			subject = ev.CommentBody
		}
		return d.translate(ctx, ev.Owner, ev.Repo, ev.IssueNumber, subject, cmd.Language)

	case model.CommandSummarize:
		languageName := cmd.Language
		if languageName == "" {
			languageName = d.defaultLanguageFor(ctx, ev)
		}

		subject := fmt.Sprintf("# %s\n\n%s", ev.ParentTitle, ev.ParentBody)
		if strings.TrimSpace(ev.ParentBody) == "" {
			subject = ev.CommentBody
		}
		return d.summarize(ctx, ev.Owner, ev.Repo, ev.IssueNumber, subject, languageName)

	default:
		return fmt.Errorf("unknown command action %q", cmd.Action)
	}
}

// defaultLanguageFor resolves the effective default language for a comment's
// repository, falling back to English when the bot has no settings for the
// account or the lookup fails. Summarize must still succeed for accounts the
// configuration UI has never touched.
func (d *Dispatcher) defaultLanguageFor(ctx context.Context, ev model.CommentEvent) string {
	settings, err := d.settings.Resolve(ctx, ev.InstallationID, ev.Owner+"/"+ev.Repo)
	if err != nil {
		slog.Warn("settings lookup failed, defaulting summary language to english",
			"installation_id", ev.InstallationID,
			"error", err,
		)
		return fallbackTranslateTarget
	}
	if settings == nil {
		return fallbackTranslateTarget
	}
	return settings.DefaultLanguage
}
