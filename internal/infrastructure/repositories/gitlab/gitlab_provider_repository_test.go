//go:build unit

package gitlab_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gl "gitlab.com/gitlab-org/api/client-go"

	"github.com/rios0rios0/catalog-gate/internal/domain/entities"
	"github.com/rios0rios0/catalog-gate/internal/infrastructure/repositories/gitlab"
)

func TestGitLabProviderRepository(t *testing.T) {
	t.Parallel()

	t.Run("should match only GitLab URLs", func(t *testing.T) {
		t.Parallel()

		// given
		p := gitlab.NewGitLabProviderRepository("")

		// when / then
		assert.True(t, p.MatchesURL("https://gitlab.com/group/sub/directory.git"))
		assert.False(t, p.MatchesURL("https://github.com/org/directory.git"))
	})

	t.Run("should read the merge request and normalize its state", func(t *testing.T) {
		t.Parallel()

		// given
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/v4/projects/group/sub/directory/merge_requests/12" {
				http.NotFound(w, r)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = fmt.Fprint(w, `{
				"iid": 12,
				"title": "Add blueprint",
				"state": "opened",
				"sha": "3333333333333333333333333333333333333333",
				"web_url": "https://gitlab.com/group/sub/directory/-/merge_requests/12"
			}`)
		})
		server := httptest.NewServer(handler)
		t.Cleanup(server.Close)

		client, err := gl.NewClient("", gl.WithBaseURL(server.URL))
		require.NoError(t, err)
		p := gitlab.NewGitLabProviderRepositoryWithClient(client)
		repo := entities.Repository{RemoteURL: "https://gitlab.com/group/sub/directory.git"}

		// when
		info, err := p.GetPullRequest(context.Background(), repo, 12)

		// then
		require.NoError(t, err)
		assert.Equal(t, 12, info.Number)
		assert.Equal(t, "open", info.State)
		assert.True(t, info.Open())
		assert.Equal(t, "3333333333333333333333333333333333333333", info.HeadSHA)
	})
}

func TestProjectPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		url       string
		expected  string
		expectErr bool
	}{
		{
			name:     "should keep nested groups of an HTTPS URL",
			url:      "https://gitlab.com/group/sub/directory.git",
			expected: "group/sub/directory",
		},
		{
			name:     "should parse SSH URL",
			url:      "git@gitlab.com:group/directory.git",
			expected: "group/directory",
		},
		{
			name:      "should fail without project segment",
			url:       "https://gitlab.com/group",
			expectErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// when
			path, err := gitlab.ProjectPath(tt.url)

			// then
			if tt.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, path)
		})
	}
}
