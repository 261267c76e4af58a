package repositories

import (
	"fmt"
	"sort"

	"github.com/rios0rios0/catalog-gate/internal/domain/entities"
	domainRepos "github.com/rios0rios0/catalog-gate/internal/domain/repositories"
)

// ValidatorFactory builds a catalog validator from its settings.
type ValidatorFactory func(settings entities.ValidatorSettings) domainRepos.CatalogValidator

// ValidatorRegistry manages all registered catalog validator implementations.
type ValidatorRegistry struct {
	validators map[string]ValidatorFactory
}

// NewValidatorRegistry creates an empty validator registry.
func NewValidatorRegistry() *ValidatorRegistry {
	return &ValidatorRegistry{
		validators: make(map[string]ValidatorFactory),
	}
}

// Register adds a validator factory under its name.
func (r *ValidatorRegistry) Register(name string, factory ValidatorFactory) {
	r.validators[name] = factory
}

// Get returns the validator selected by settings.Type.
func (r *ValidatorRegistry) Get(settings entities.ValidatorSettings) (domainRepos.CatalogValidator, error) {
	factory, ok := r.validators[settings.Type]
	if !ok {
		return nil, fmt.Errorf("unknown validator type: %q", settings.Type)
	}
	return factory(settings), nil
}

// Names returns the sorted list of registered validator names.
func (r *ValidatorRegistry) Names() []string {
	names := make([]string, 0, len(r.validators))
	for name := range r.validators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
