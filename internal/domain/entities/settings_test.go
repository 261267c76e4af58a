//go:build unit

package entities_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/catalog-gate/internal/domain/entities"
)

func TestDefaultSettings(t *testing.T) {
	t.Parallel()

	t.Run("should point at the public directory on master", func(t *testing.T) {
		t.Parallel()

		// when
		settings := entities.DefaultSettings()

		// then
		assert.Equal(t, entities.DefaultRepositoryURI, settings.RepositoryURI)
		assert.Equal(t, "master", settings.BaselineBranch)
		assert.Equal(t, "master", settings.BranchToTest)
		assert.Equal(t, "directory.yaml", settings.FileToDiff)
		assert.Equal(t, "catalog.bom", settings.DefaultCatalogFile)
		assert.Equal(t, entities.AmbiguousDiffFail, settings.AmbiguousDiffPolicy)
		assert.False(t, settings.FailFast)
		assert.Zero(t, settings.EntryTimeout)
	})
}

func TestSettingsRefs(t *testing.T) {
	t.Parallel()

	t.Run("should derive the pull request refs from the number", func(t *testing.T) {
		t.Parallel()

		// given
		settings := entities.DefaultSettings()
		settings.PullRequestNumber = 7

		// when / then
		assert.Equal(t, "refs/remotes/origin/pr/7", settings.PullRequestRef())
		assert.Equal(t, "+refs/pull/7/head:refs/remotes/origin/pr/7", settings.PullRequestRefSpec())
		assert.Equal(t, "refs/heads/master", settings.BaselineRef())
	})

	t.Run("should fetch merge requests from a custom source ref", func(t *testing.T) {
		t.Parallel()

		// given
		settings := entities.DefaultSettings()
		settings.PullRequestNumber = 12
		settings.PullRequestSource = "refs/merge-requests/%d/head"

		// when
		refSpec := settings.PullRequestRefSpec()

		// then
		assert.Equal(t, "+refs/merge-requests/12/head:refs/remotes/origin/pr/12", refSpec)
	})
}

func TestSettingsApplyEnvironment(t *testing.T) {
	t.Parallel()

	t.Run("should override settings with the variables that are set", func(t *testing.T) {
		t.Parallel()

		// given
		settings := entities.DefaultSettings()
		lookuper := envconfig.MapLookuper(map[string]string{
			"DIRECTORY_REPO_URI": "https://example.com/fork.git",
			"PR_NUMBER":          "12",
			"AUTH_TOKEN":         "secret",
			"FAIL_FAST":          "true",
			"ENTRY_TIMEOUT":      "90s",
		})

		// when
		err := settings.ApplyEnvironment(context.Background(), lookuper)

		// then
		require.NoError(t, err)
		assert.Equal(t, "https://example.com/fork.git", settings.RepositoryURI)
		assert.Equal(t, 12, settings.PullRequestNumber)
		assert.Equal(t, "secret", settings.AuthToken)
		assert.True(t, settings.FailFast)
		assert.Equal(t, 90*time.Second, settings.EntryTimeout)
	})

	t.Run("should keep file values when the environment is empty", func(t *testing.T) {
		t.Parallel()

		// given
		settings := entities.DefaultSettings()
		settings.PullRequestNumber = 3
		settings.FailFast = true

		// when
		err := settings.ApplyEnvironment(context.Background(), envconfig.MapLookuper(map[string]string{}))

		// then
		require.NoError(t, err)
		assert.Equal(t, 3, settings.PullRequestNumber)
		assert.True(t, settings.FailFast)
		assert.Equal(t, entities.DefaultRepositoryURI, settings.RepositoryURI)
	})

	t.Run("should reject a FAIL_FAST value that is not a boolean", func(t *testing.T) {
		t.Parallel()

		// given
		settings := entities.DefaultSettings()
		lookuper := envconfig.MapLookuper(map[string]string{"FAIL_FAST": "sometimes"})

		// when
		err := settings.ApplyEnvironment(context.Background(), lookuper)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "FAIL_FAST")
	})

	t.Run("should reject a PR_NUMBER that is not a number", func(t *testing.T) {
		t.Parallel()

		// given
		settings := entities.DefaultSettings()
		lookuper := envconfig.MapLookuper(map[string]string{"PR_NUMBER": "abc"})

		// when
		err := settings.ApplyEnvironment(context.Background(), lookuper)

		// then
		require.Error(t, err)
	})
}

func TestSettingsValidate(t *testing.T) {
	t.Parallel()

	t.Run("should require a pull request number", func(t *testing.T) {
		t.Parallel()

		// given
		settings := entities.DefaultSettings()

		// when
		err := settings.Validate()

		// then
		require.ErrorIs(t, err, entities.ErrMissingPullRequest)
	})

	t.Run("should accept the defaults once a pull request is set", func(t *testing.T) {
		t.Parallel()

		// given
		settings := entities.DefaultSettings()
		settings.PullRequestNumber = 1

		// when
		err := settings.Validate()

		// then
		require.NoError(t, err)
	})

	t.Run("should require a command for the command validator", func(t *testing.T) {
		t.Parallel()

		// given
		settings := entities.DefaultSettings()
		settings.PullRequestNumber = 1
		settings.Validator = entities.ValidatorSettings{Type: entities.ValidatorCommand}

		// when
		err := settings.Validate()

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Command")
	})

	t.Run("should reject an unknown ambiguous diff policy", func(t *testing.T) {
		t.Parallel()

		// given
		settings := entities.DefaultSettings()
		settings.PullRequestNumber = 1
		settings.AmbiguousDiffPolicy = "ignore"

		// when
		err := settings.Validate()

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "AmbiguousDiffPolicy")
	})
}

func TestNewSettings(t *testing.T) {
	t.Parallel()

	t.Run("should layer the file over the defaults", func(t *testing.T) {
		t.Parallel()

		// given
		path := filepath.Join(t.TempDir(), ".catalog-gate.yaml")
		content := `
repository_uri: https://example.com/directory.git
pull_request_number: 9
fail_fast: true
entry_timeout: 2m
validator:
  type: command
  command: ["br", "catalog", "validate"]
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		// when
		settings, err := entities.NewSettings(path)

		// then
		require.NoError(t, err)
		assert.Equal(t, "https://example.com/directory.git", settings.RepositoryURI)
		assert.Equal(t, 9, settings.PullRequestNumber)
		assert.True(t, settings.FailFast)
		assert.Equal(t, 2*time.Minute, settings.EntryTimeout)
		assert.Equal(t, []string{"br", "catalog", "validate"}, settings.Validator.Command)
		assert.Equal(t, "directory.yaml", settings.FileToDiff)
		require.NoError(t, settings.Validate())
	})

	t.Run("should read the token from a file path", func(t *testing.T) {
		t.Parallel()

		// given
		dir := t.TempDir()
		tokenPath := filepath.Join(dir, "token")
		require.NoError(t, os.WriteFile(tokenPath, []byte("from-file\n"), 0o600))
		path := filepath.Join(dir, "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("auth_token: "+tokenPath+"\n"), 0o600))

		// when
		settings, err := entities.NewSettings(path)

		// then
		require.NoError(t, err)
		assert.Equal(t, "from-file", settings.AuthToken)
	})

	t.Run("should fail when the file is missing", func(t *testing.T) {
		t.Parallel()

		// when
		_, err := entities.NewSettings(filepath.Join(t.TempDir(), "missing.yaml"))

		// then
		require.Error(t, err)
	})
}

func TestNewSettingsTokenReferences(t *testing.T) {
	t.Run("should expand an environment reference", func(t *testing.T) {
		// given
		t.Setenv("CATALOG_GATE_TEST_TOKEN", "from-env")
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("auth_token: prefix-${CATALOG_GATE_TEST_TOKEN}\n"), 0o600))

		// when
		settings, err := entities.NewSettings(path)

		// then
		require.NoError(t, err)
		assert.Equal(t, "prefix-from-env", settings.AuthToken)
	})

	t.Run("should read the file an environment reference points at", func(t *testing.T) {
		// given
		dir := t.TempDir()
		tokenPath := filepath.Join(dir, "token")
		require.NoError(t, os.WriteFile(tokenPath, []byte("  secret\n"), 0o600))
		t.Setenv("CATALOG_GATE_TEST_TOKEN_FILE", tokenPath)
		path := filepath.Join(dir, "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("auth_token: ${CATALOG_GATE_TEST_TOKEN_FILE}\n"), 0o600))

		// when
		settings, err := entities.NewSettings(path)

		// then
		require.NoError(t, err)
		assert.Equal(t, "secret", settings.AuthToken)
	})

	t.Run("should keep a value naming a directory", func(t *testing.T) {
		// given
		dir := t.TempDir()
		path := filepath.Join(dir, "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("auth_token: "+dir+"\n"), 0o600))

		// when
		settings, err := entities.NewSettings(path)

		// then
		require.NoError(t, err)
		assert.Equal(t, dir, settings.AuthToken)
	})

	t.Run("should drop an unset reference", func(t *testing.T) {
		// given
		t.Setenv("CATALOG_GATE_TEST_UNSET", "")
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("auth_token: a${CATALOG_GATE_TEST_UNSET}b\n"), 0o600))

		// when
		settings, err := entities.NewSettings(path)

		// then
		require.NoError(t, err)
		assert.Equal(t, "ab", settings.AuthToken)
	})
}
