package gitlab

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	gl "gitlab.com/gitlab-org/api/client-go"

	"github.com/rios0rios0/catalog-gate/internal/domain/entities"
	"github.com/rios0rios0/catalog-gate/internal/domain/repositories"
)

const (
	hostname    = "gitlab.com"
	stateOpened = "opened"
)

var errClientNotInitialized = errors.New("gitlab client not initialized")

// GitLabProviderRepository implements repositories.PullRequestRepository for
// GitLab merge requests.
type GitLabProviderRepository struct {
	client *gl.Client
}

// NewGitLabProviderRepository creates a new GitLab provider with the given token.
func NewGitLabProviderRepository(token string) repositories.PullRequestRepository {
	client, err := gl.NewClient(token)
	if err != nil {
		// fail on use rather than at construction
		return &GitLabProviderRepository{}
	}
	return NewGitLabProviderRepositoryWithClient(client)
}

// NewGitLabProviderRepositoryWithClient wraps an existing client, e.g. one
// pointed at a self-managed instance or a test server.
func NewGitLabProviderRepositoryWithClient(client *gl.Client) *GitLabProviderRepository {
	return &GitLabProviderRepository{client: client}
}

func (p *GitLabProviderRepository) MatchesURL(rawURL string) bool {
	return strings.Contains(rawURL, hostname)
}

// GetPullRequest reads the merge request with the given IID.
func (p *GitLabProviderRepository) GetPullRequest(
	ctx context.Context,
	repo entities.Repository,
	number int,
) (*entities.PullRequestInfo, error) {
	if p.client == nil {
		return nil, errClientNotInitialized
	}

	pid := repo.Organization + "/" + repo.Name
	if repo.Organization == "" || repo.Name == "" {
		var err error
		pid, err = projectPath(repo.RemoteURL)
		if err != nil {
			return nil, err
		}
	}

	mr, _, err := p.client.MergeRequests.GetMergeRequest(pid, int64(number), nil, gl.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to get merge request %s!%d: %w", pid, number, err)
	}

	state := mr.State
	if state == stateOpened {
		state = "open"
	}
	return &entities.PullRequestInfo{
		Number:  int(mr.IID),
		Title:   mr.Title,
		State:   state,
		HeadSHA: mr.SHA,
		URL:     mr.WebURL,
	}, nil
}

// projectPath extracts the full project path (groups included) from an SSH or
// HTTPS remote URL.
func projectPath(rawURL string) (string, error) {
	trimmed := strings.TrimSuffix(strings.TrimSuffix(rawURL, "/"), ".git")

	var path string
	if strings.HasPrefix(trimmed, "git@") {
		_, after, ok := strings.Cut(trimmed, ":")
		if !ok {
			return "", fmt.Errorf("invalid SSH URL: %s", rawURL)
		}
		path = after
	} else {
		parsed, err := url.Parse(trimmed)
		if err != nil {
			return "", fmt.Errorf("invalid URL %s: %w", rawURL, err)
		}
		path = strings.TrimPrefix(parsed.Path, "/")
	}

	if strings.Count(path, "/") < 1 || strings.HasPrefix(path, "/") || strings.HasSuffix(path, "/") {
		return "", fmt.Errorf("cannot extract project path from URL: %s", rawURL)
	}
	return path, nil
}
