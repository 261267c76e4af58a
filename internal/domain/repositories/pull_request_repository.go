package repositories

import (
	"context"

	"github.com/rios0rios0/catalog-gate/internal/domain/entities"
)

// PullRequestRepository reads pull request metadata from a Git hosting provider.
type PullRequestRepository interface {
	// MatchesURL returns true if the repository is hosted by this provider.
	MatchesURL(rawURL string) bool

	GetPullRequest(ctx context.Context, repo entities.Repository, number int) (*entities.PullRequestInfo, error)
}
