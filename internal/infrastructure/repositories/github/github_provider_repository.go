package github

import (
	"context"
	"fmt"
	"strings"

	gh "github.com/google/go-github/v66/github"

	"github.com/rios0rios0/catalog-gate/internal/domain/entities"
	"github.com/rios0rios0/catalog-gate/internal/domain/repositories"
)

const hostname = "github.com"

// GitHubProviderRepository implements repositories.PullRequestRepository for GitHub.
type GitHubProviderRepository struct {
	client *gh.Client
}

// NewGitHubProviderRepository creates a new GitHub provider with the given
// token. An empty token uses anonymous access.
func NewGitHubProviderRepository(token string) repositories.PullRequestRepository {
	client := gh.NewClient(nil)
	if token != "" {
		client = client.WithAuthToken(token)
	}
	return NewGitHubProviderRepositoryWithClient(client)
}

// NewGitHubProviderRepositoryWithClient wraps an existing client, e.g. one
// pointed at a GitHub Enterprise or test server.
func NewGitHubProviderRepositoryWithClient(client *gh.Client) *GitHubProviderRepository {
	return &GitHubProviderRepository{client: client}
}

func (p *GitHubProviderRepository) MatchesURL(rawURL string) bool {
	return strings.Contains(rawURL, hostname)
}

// GetPullRequest reads the pull request of the repository named by repo.RemoteURL.
func (p *GitHubProviderRepository) GetPullRequest(
	ctx context.Context,
	repo entities.Repository,
	number int,
) (*entities.PullRequestInfo, error) {
	owner, name := repo.Organization, repo.Name
	if owner == "" || name == "" {
		var err error
		owner, name, err = parseStandardGitURL(repo.RemoteURL, hostname)
		if err != nil {
			return nil, err
		}
	}

	pr, _, err := p.client.PullRequests.Get(ctx, owner, name, number)
	if err != nil {
		return nil, fmt.Errorf("failed to get pull request %s/%s#%d: %w", owner, name, number, err)
	}

	return &entities.PullRequestInfo{
		Number:  pr.GetNumber(),
		Title:   pr.GetTitle(),
		State:   pr.GetState(),
		HeadSHA: pr.GetHead().GetSHA(),
		URL:     pr.GetHTMLURL(),
	}, nil
}

// parseStandardGitURL extracts the owner and repository name from an SSH or
// HTTPS remote URL.
func parseStandardGitURL(url, hostname string) (string, string, error) {
	var pathPart string
	url = strings.TrimSuffix(strings.TrimSuffix(url, "/"), ".git")

	if strings.HasPrefix(url, "git@") {
		parts := strings.SplitN(url, ":", 2) //nolint:mnd // host:path
		if len(parts) < 2 {                  //nolint:mnd // need both parts
			return "", "", fmt.Errorf("invalid SSH URL: %s", url)
		}
		pathPart = parts[1]
	} else {
		_, after, ok := strings.Cut(url, hostname)
		if !ok {
			return "", "", fmt.Errorf("hostname %s not found in URL: %s", hostname, url)
		}
		pathPart = strings.TrimPrefix(after, "/")
	}

	segments := strings.Split(pathPart, "/")
	if len(segments) < 2 || segments[0] == "" || segments[1] == "" { //nolint:mnd // need owner + repo
		return "", "", fmt.Errorf("cannot extract owner/repo from URL: %s", url)
	}

	return segments[0], segments[1], nil
}
