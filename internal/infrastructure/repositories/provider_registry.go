package repositories

import (
	"fmt"
	"sort"

	domainRepos "github.com/rios0rios0/catalog-gate/internal/domain/repositories"
)

// ProviderFactory is a constructor function that creates a PullRequestRepository given an auth token.
type ProviderFactory func(token string) domainRepos.PullRequestRepository

// ProviderRegistry manages all registered Git hosting provider implementations.
type ProviderRegistry struct {
	providers map[string]ProviderFactory
}

// NewProviderRegistry creates an empty provider registry.
func NewProviderRegistry() *ProviderRegistry {
	return &ProviderRegistry{
		providers: make(map[string]ProviderFactory),
	}
}

// Register adds a provider factory under the given name (e.g. "github").
func (r *ProviderRegistry) Register(name string, factory ProviderFactory) {
	r.providers[name] = factory
}

// Get returns a configured provider instance for the given name and token.
func (r *ProviderRegistry) Get(name, token string) (domainRepos.PullRequestRepository, error) {
	factory, ok := r.providers[name]
	if !ok {
		return nil, fmt.Errorf("unknown provider type: %q", name)
	}
	return factory(token), nil
}

// ForURL returns the first provider, by name, that hosts rawURL.
func (r *ProviderRegistry) ForURL(rawURL, token string) (domainRepos.PullRequestRepository, bool) {
	for _, name := range r.Names() {
		provider := r.providers[name](token)
		if provider.MatchesURL(rawURL) {
			return provider, true
		}
	}
	return nil, false
}

// Names returns the sorted list of registered provider names.
func (r *ProviderRegistry) Names() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
