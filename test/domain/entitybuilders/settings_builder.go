//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"time"

	testkit "github.com/rios0rios0/testkit/pkg/test"

	"github.com/rios0rios0/catalog-gate/internal/domain/entities"
)

const defaultPullRequestNumber = 42

// SettingsBuilder helps create test settings with a fluent interface.
type SettingsBuilder struct {
	*testkit.BaseBuilder
	repositoryURI     string
	pullRequestNumber int
	fileToDiff        string
	failFast          bool
	ambiguousPolicy   string
	entryTimeout      time.Duration
	maxResourceErrors int
	inspect           bool
	validator         entities.ValidatorSettings
}

// NewSettingsBuilder creates a new settings builder with sensible defaults.
func NewSettingsBuilder() *SettingsBuilder {
	b := &SettingsBuilder{BaseBuilder: testkit.NewBaseBuilder()}
	b.defaults()
	return b
}

func (b *SettingsBuilder) defaults() {
	b.repositoryURI = "https://example.com/directory.git"
	b.pullRequestNumber = defaultPullRequestNumber
	b.fileToDiff = entities.DefaultFileToDiff
	b.failFast = false
	b.ambiguousPolicy = entities.AmbiguousDiffFail
	b.entryTimeout = 0
	b.maxResourceErrors = entities.DefaultMaxResourceErrors
	b.inspect = false
	b.validator = entities.ValidatorSettings{Type: entities.ValidatorBOM}
}

// WithRepositoryURI sets the directory repository URL.
func (b *SettingsBuilder) WithRepositoryURI(uri string) *SettingsBuilder {
	b.repositoryURI = uri
	return b
}

// WithPullRequestNumber sets the pull request number.
func (b *SettingsBuilder) WithPullRequestNumber(number int) *SettingsBuilder {
	b.pullRequestNumber = number
	return b
}

// WithFileToDiff sets the tracked index file.
func (b *SettingsBuilder) WithFileToDiff(path string) *SettingsBuilder {
	b.fileToDiff = path
	return b
}

// WithFailFast sets the fail-fast flag.
func (b *SettingsBuilder) WithFailFast(failFast bool) *SettingsBuilder {
	b.failFast = failFast
	return b
}

// WithAmbiguousDiffPolicy sets the ambiguous diff policy.
func (b *SettingsBuilder) WithAmbiguousDiffPolicy(policy string) *SettingsBuilder {
	b.ambiguousPolicy = policy
	return b
}

// WithEntryTimeout sets the per-entry time budget.
func (b *SettingsBuilder) WithEntryTimeout(timeout time.Duration) *SettingsBuilder {
	b.entryTimeout = timeout
	return b
}

// WithMaxResourceErrors sets the consecutive resource error limit.
func (b *SettingsBuilder) WithMaxResourceErrors(limit int) *SettingsBuilder {
	b.maxResourceErrors = limit
	return b
}

// WithPullRequestInspection enables the provider metadata cross-check.
func (b *SettingsBuilder) WithPullRequestInspection(inspect bool) *SettingsBuilder {
	b.inspect = inspect
	return b
}

// WithValidator sets the validator selection.
func (b *SettingsBuilder) WithValidator(validator entities.ValidatorSettings) *SettingsBuilder {
	b.validator = validator
	return b
}

// Build creates the settings (satisfies testkit.Builder interface).
func (b *SettingsBuilder) Build() interface{} {
	return b.BuildSettings()
}

// BuildSettings creates the settings with a concrete return type.
func (b *SettingsBuilder) BuildSettings() *entities.Settings {
	settings := entities.DefaultSettings()
	settings.RepositoryURI = b.repositoryURI
	settings.PullRequestNumber = b.pullRequestNumber
	settings.FileToDiff = b.fileToDiff
	settings.FailFast = b.failFast
	settings.AmbiguousDiffPolicy = b.ambiguousPolicy
	settings.EntryTimeout = b.entryTimeout
	settings.MaxResourceErrors = b.maxResourceErrors
	settings.InspectPullRequest = b.inspect
	settings.Validator = b.validator
	return settings
}

// Reset clears the builder state, allowing it to be reused.
func (b *SettingsBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.defaults()
	return b
}

// Clone creates a deep copy of the SettingsBuilder.
func (b *SettingsBuilder) Clone() testkit.Builder {
	clone := *b
	clone.BaseBuilder = b.BaseBuilder.Clone().(*testkit.BaseBuilder)
	clone.validator.Command = append([]string(nil), b.validator.Command...)
	return &clone
}
