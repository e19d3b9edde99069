package httphandler

import (
	"context"
	"net/http"

	gh "github.com/google/go-github/v82/github"
	"github.com/tidwall/gjson"

	"github.com/ericfisherdev/langbot/internal/domain/model"
)

// HandleWebhook receives GitHub webhook deliveries, validates the HMAC
// signature, and routes the supported event types to the dispatcher.
// Unsupported event types and actions are acknowledged without processing so
// the app can subscribe broadly without failing deliveries.
func (h *Handler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	payload, err := gh.ValidatePayload(r, h.webhookSecret)
	if err != nil {
		h.logger.Warn("webhook signature validation failed", "error", err)
		writeError(w, http.StatusUnauthorized, "invalid signature")
		return
	}

	eventType := gh.WebHookType(r)
	event, err := gh.ParseWebHook(eventType, payload)
	if err != nil {
		h.logger.Warn("webhook payload parse failed", "event", eventType, "error", err)
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	// Processing continues past the delivery timeout if GitHub hangs up;
	// losing a translation to a disconnect would force a manual redelivery.
	ctx := context.WithoutCancel(r.Context())

	switch ev := event.(type) {
	case *gh.InstallationEvent:
		err = h.handleInstallation(ctx, ev)
	case *gh.IssuesEvent:
		err = h.handleIssues(ctx, ev)
	case *gh.PullRequestEvent:
		err = h.handlePullRequest(ctx, ev)
	case *gh.IssueCommentEvent:
		err = h.handleIssueComment(ctx, ev, payload)
	default:
		writeJSON(w, http.StatusOK, map[string]string{"status": "ignored"})
		return
	}

	if err != nil {
		h.logger.Error("webhook processing failed", "event", eventType, "error", err)
		writeError(w, http.StatusInternalServerError, "processing failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleInstallation(ctx context.Context, ev *gh.InstallationEvent) error {
	switch ev.GetAction() {
	case "created":
		return h.dispatcher.HandleInstallationCreated(ctx, model.InstallationEvent{
			InstallationID: ev.GetInstallation().GetID(),
			AccountLogin:   ev.GetInstallation().GetAccount().GetLogin(),
			AccountType:    model.AccountType(ev.GetInstallation().GetAccount().GetType()),
		})
	case "deleted":
		return h.dispatcher.HandleInstallationDeleted(ctx, ev.GetInstallation().GetID())
	default:
		return nil
	}
}

func (h *Handler) handleIssues(ctx context.Context, ev *gh.IssuesEvent) error {
	if ev.GetAction() != "opened" {
		return nil
	}

	return h.dispatcher.HandleIssueOpened(ctx, model.IssueOpenedEvent{
		Owner:          ev.GetRepo().GetOwner().GetLogin(),
		Repo:           ev.GetRepo().GetName(),
		Number:         ev.GetIssue().GetNumber(),
		Title:          ev.GetIssue().GetTitle(),
		Body:           ev.GetIssue().GetBody(),
		InstallationID: ev.GetInstallation().GetID(),
	})
}

// handlePullRequest maps an opened pull request onto the same event shape as
// an opened issue; comments and labels use the shared issue API either way.
func (h *Handler) handlePullRequest(ctx context.Context, ev *gh.PullRequestEvent) error {
	if ev.GetAction() != "opened" {
		return nil
	}

	return h.dispatcher.HandleIssueOpened(ctx, model.IssueOpenedEvent{
		Owner:          ev.GetRepo().GetOwner().GetLogin(),
		Repo:           ev.GetRepo().GetName(),
		Number:         ev.GetPullRequest().GetNumber(),
		Title:          ev.GetPullRequest().GetTitle(),
		Body:           ev.GetPullRequest().GetBody(),
		InstallationID: ev.GetInstallation().GetID(),
	})
}

func (h *Handler) handleIssueComment(ctx context.Context, ev *gh.IssueCommentEvent, payload []byte) error {
	if ev.GetAction() != "created" {
		return nil
	}

	return h.dispatcher.HandleCommentCreated(ctx, model.CommentEvent{
		Owner:           ev.GetRepo().GetOwner().GetLogin(),
		Repo:            ev.GetRepo().GetName(),
		IssueNumber:     ev.GetIssue().GetNumber(),
		CommentBody:     ev.GetComment().GetBody(),
		CommentAuthorID: ev.GetComment().GetUser().GetID(),
		AuthorIsBot:     ev.GetComment().GetUser().GetType() == "Bot",
		ViaAppID:        commentAppID(payload),
		ParentTitle:     ev.GetIssue().GetTitle(),
		ParentBody:      ev.GetIssue().GetBody(),
		InstallationID:  ev.GetInstallation().GetID(),
	})
}

// commentAppID extracts the authoring GitHub App's ID from the raw payload.
// The typed comment struct does not carry performed_via_github_app, and the
// anti-loop filter needs it to recognize this app's own comments.
func commentAppID(payload []byte) int64 {
	return gjson.GetBytes(payload, "comment.performed_via_github_app.id").Int()
}
