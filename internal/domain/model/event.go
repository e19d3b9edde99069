package model

// InstallationEvent carries the fields consumed from an "installation added"
// or "installation removed" webhook delivery.
type InstallationEvent struct {
	InstallationID int64
	AccountLogin   string
	AccountType    AccountType
}

// IssueOpenedEvent carries the fields consumed from an "issues opened" or
// "pull_request opened" delivery. Pull requests are issues for every
// operation the bot performs (comments, labels).
type IssueOpenedEvent struct {
	Owner          string
	Repo           string
	Number         int
	Title          string
	Body           string
	InstallationID int64 // Zero when the delivery omitted it; the dispatcher no-ops.
}

// CommentEvent carries the fields consumed from an "issue_comment created"
// delivery, including the signals the anti-loop filter needs.
type CommentEvent struct {
	Owner           string
	Repo            string
	IssueNumber     int
	CommentBody     string
	CommentAuthorID int64
	AuthorIsBot     bool  // Host-side "Bot" account type.
	ViaAppID        int64 // GitHub App that authored the comment, zero when none.
	ParentTitle     string
	ParentBody      string
	InstallationID  int64
}
