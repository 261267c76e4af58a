package repositories

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/catalog-gate/internal/domain/entities"
	adoRepo "github.com/rios0rios0/catalog-gate/internal/infrastructure/repositories/azuredevops"
	gitRepo "github.com/rios0rios0/catalog-gate/internal/infrastructure/repositories/git"
	ghRepo "github.com/rios0rios0/catalog-gate/internal/infrastructure/repositories/github"
	glRepo "github.com/rios0rios0/catalog-gate/internal/infrastructure/repositories/gitlab"
	validatorRepo "github.com/rios0rios0/catalog-gate/internal/infrastructure/repositories/validator"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	if err := container.Provide(gitRepo.NewGitVCSRepository); err != nil {
		return err
	}

	// Register provider registry with all pull request provider factories
	if err := container.Provide(func() *ProviderRegistry {
		reg := NewProviderRegistry()
		reg.Register("azuredevops", adoRepo.NewAzureDevOpsProviderRepository)
		reg.Register("github", ghRepo.NewGitHubProviderRepository)
		reg.Register("gitlab", glRepo.NewGitLabProviderRepository)
		return reg
	}); err != nil {
		return err
	}

	// Register validator registry with all catalog validator implementations
	if err := container.Provide(func() *ValidatorRegistry {
		reg := NewValidatorRegistry()
		reg.Register(entities.ValidatorBOM, validatorRepo.NewBOMCatalogValidator)
		reg.Register(entities.ValidatorCommand, validatorRepo.NewCommandCatalogValidator)
		return reg
	}); err != nil {
		return err
	}

	return nil
}
