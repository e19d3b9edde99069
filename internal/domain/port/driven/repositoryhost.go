package driven

import "context"

// RepositoryHost defines the driven port for side effects against the
// repository host. Issue numbers address both issues and pull requests;
// the host treats PRs as issues for comments and labels.
type RepositoryHost interface {
	// PostComment creates a comment on the given issue or pull request.
	PostComment(ctx context.Context, owner, repo string, issueNumber int, body string) error

	// EnsureLabel idempotently creates the label on the repository. A label
	// that already exists is success, not an error.
	EnsureLabel(ctx context.Context, owner, repo, name, color string) error

	// AttachLabel adds the label to the given issue or pull request.
	AttachLabel(ctx context.Context, owner, repo string, issueNumber int, name string) error
}
