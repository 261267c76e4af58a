package azuredevops

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rios0rios0/catalog-gate/internal/domain/entities"
	"github.com/rios0rios0/catalog-gate/internal/domain/repositories"
)

const (
	defaultBaseURL = "https://dev.azure.com"
	apiVersion     = "7.0"
	requestTimeout = 30 * time.Second
	statusActive   = "active"
)

// AzureDevOpsProviderRepository implements repositories.PullRequestRepository
// for Azure DevOps Git repositories.
type AzureDevOpsProviderRepository struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewAzureDevOpsProviderRepository creates a provider for dev.azure.com.
func NewAzureDevOpsProviderRepository(token string) repositories.PullRequestRepository {
	return NewAzureDevOpsProviderRepositoryWithBaseURL(token, defaultBaseURL, nil)
}

// NewAzureDevOpsProviderRepositoryWithBaseURL targets another server, e.g. a
// test server. A nil client gets a default one.
func NewAzureDevOpsProviderRepositoryWithBaseURL(
	token, baseURL string,
	httpClient *http.Client,
) *AzureDevOpsProviderRepository {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: requestTimeout}
	}
	return &AzureDevOpsProviderRepository{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		token:      token,
		httpClient: httpClient,
	}
}

func (p *AzureDevOpsProviderRepository) MatchesURL(rawURL string) bool {
	return strings.Contains(rawURL, "dev.azure.com") || strings.Contains(rawURL, "visualstudio.com")
}

type pullRequestResponse struct {
	ID                    int       `json:"pullRequestId"`
	Title                 string    `json:"title"`
	Status                string    `json:"status"`
	LastMergeSourceCommit commitRef `json:"lastMergeSourceCommit"`
}

type commitRef struct {
	CommitID string `json:"commitId"`
}

// GetPullRequest reads the pull request of the repository named by repo.RemoteURL.
func (p *AzureDevOpsProviderRepository) GetPullRequest(
	ctx context.Context,
	repo entities.Repository,
	number int,
) (*entities.PullRequestInfo, error) {
	org, project, name, err := parseRemoteURL(repo.RemoteURL)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("/%s/%s/_apis/git/repositories/%s/pullrequests/%d?api-version=%s",
		url.PathEscape(org), url.PathEscape(project), url.PathEscape(name), number, apiVersion)
	body, err := p.doRequest(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to get pull request %s/%s/%s#%d: %w", org, project, name, number, err)
	}

	var pr pullRequestResponse
	if unmarshalErr := json.Unmarshal(body, &pr); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to decode pull request: %w", unmarshalErr)
	}

	state := pr.Status
	if state == statusActive {
		state = "open"
	}
	webURL := fmt.Sprintf("%s/%s/%s/_git/%s/pullrequest/%d", p.baseURL, org, project, name, pr.ID)
	return &entities.PullRequestInfo{
		Number:  pr.ID,
		Title:   pr.Title,
		State:   state,
		HeadSHA: pr.LastMergeSourceCommit.CommitID,
		URL:     webURL,
	}, nil
}

func (p *AzureDevOpsProviderRepository) doRequest(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	// basic auth with an empty user and the PAT as password
	if p.token != "" {
		auth := base64.StdEncoding.EncodeToString([]byte(":" + p.token))
		req.Header.Set("Authorization", "Basic "+auth)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(respBody))
	}
	return respBody, nil
}

// parseRemoteURL splits https://dev.azure.com/{org}/{project}/_git/{repo}
// (optionally with a user in front of the host) into its parts.
func parseRemoteURL(rawURL string) (string, string, string, error) {
	parsed, err := url.Parse(strings.TrimSuffix(rawURL, "/"))
	if err != nil {
		return "", "", "", fmt.Errorf("invalid URL %s: %w", rawURL, err)
	}

	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	if len(segments) != 4 || segments[2] != "_git" { //nolint:mnd // org/project/_git/repo
		return "", "", "", fmt.Errorf("cannot extract org/project/repo from URL: %s", rawURL)
	}
	return segments[0], segments[1], segments[3], nil
}
