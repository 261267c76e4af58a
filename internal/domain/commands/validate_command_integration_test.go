//go:build integration

package commands_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/catalog-gate/internal/domain/commands"
	"github.com/rios0rios0/catalog-gate/internal/domain/entities"
	infraRepos "github.com/rios0rios0/catalog-gate/internal/infrastructure/repositories"
	gitRepo "github.com/rios0rios0/catalog-gate/internal/infrastructure/repositories/git"
	validatorRepo "github.com/rios0rios0/catalog-gate/internal/infrastructure/repositories/validator"
	"github.com/rios0rios0/catalog-gate/test/domain/entitybuilders"
	"github.com/rios0rios0/catalog-gate/test/gitfixtures"
)

func TestValidateCommandAgainstLocalRepositories(t *testing.T) {
	t.Parallel()

	t.Run("should validate every entry added by the pull request", func(t *testing.T) {
		t.Parallel()

		// given
		good := gitfixtures.Init(t)
		good.Commit("catalog", map[string]string{"catalog.bom": `
brooklyn.catalog:
  id: good-app
  version: 1.0.0
  item:
    type: server
`})
		bad := gitfixtures.Init(t)
		bad.Commit("catalog", map[string]string{"custom.bom": `
brooklyn.catalog:
  items:
  - id: no-version
    item:
      type: server
`})

		directory := gitfixtures.Init(t)
		directory.Commit("initial", map[string]string{"directory.yaml": "- https://example.org/existing.git\n"})
		index := "- https://example.org/existing.git\n" +
			"- " + good.Dir + "\n" +
			"- {repository: " + bad.Dir + ", file: custom.bom}\n" +
			"- {repository: " + good.Dir + ", parentId: good-app}\n"
		directory.PullRequest(5, "add entries", map[string]string{"directory.yaml": index})

		registry := infraRepos.NewValidatorRegistry()
		registry.Register(entities.ValidatorBOM, validatorRepo.NewBOMCatalogValidator)
		cmd := commands.NewValidateCommand(gitRepo.NewGitVCSRepository(), infraRepos.NewProviderRegistry(), registry)
		settings := entitybuilders.NewSettingsBuilder().
			WithRepositoryURI(directory.Dir).
			WithPullRequestNumber(5).
			BuildSettings()

		// when
		report, err := cmd.Execute(context.Background(), settings)

		// then
		require.NoError(t, err)
		require.Len(t, report.Outcomes, 3)
		assert.True(t, report.Outcomes[0].Succeeded())
		assert.ErrorIs(t, report.Outcomes[1].Err, entities.ErrValidationFailed)
		assert.Contains(t, report.Outcomes[1].Err.Error(), "declares no version")
		assert.True(t, report.Outcomes[2].Succeeded())
	})
}
