package entities

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sethvargo/go-envconfig"
	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	DefaultRepositoryURI     = "https://github.com/brooklyncentral/blueprint-repository"
	DefaultBranch            = "master"
	DefaultFileToDiff        = "directory.yaml"
	DefaultMaxResourceErrors = 3
	DefaultPullRequestSource = "refs/pull/%d/head"

	AmbiguousDiffFail = "fail"
	AmbiguousDiffWarn = "warn"

	ValidatorBOM     = "bom"
	ValidatorCommand = "command"
)

// Settings is the configuration of one validation run. It is built once and
// handed to every component, so nothing reads process-wide state.
type Settings struct {
	RepositoryURI       string            `yaml:"repository_uri"        validate:"required"`
	PullRequestNumber   int               `yaml:"pull_request_number"   validate:"required,gt=0"`
	PullRequestSource   string            `yaml:"pull_request_source"   validate:"required,contains=%d"`
	AuthToken           string            `yaml:"auth_token"`
	BaselineBranch      string            `yaml:"baseline_branch"       validate:"required"`
	BranchToTest        string            `yaml:"branch_to_test"        validate:"required"`
	FileToDiff          string            `yaml:"file_to_diff"          validate:"required"`
	DefaultCatalogFile  string            `yaml:"default_catalog_file"  validate:"required"`
	RecordMarker        string            `yaml:"record_marker"         validate:"required"`
	FailFast            bool              `yaml:"fail_fast"`
	AmbiguousDiffPolicy string            `yaml:"ambiguous_diff_policy" validate:"oneof=fail warn"`
	EntryTimeout        time.Duration     `yaml:"entry_timeout"         validate:"gte=0"`
	MaxResourceErrors   int               `yaml:"max_resource_errors"   validate:"gte=1"`
	InspectPullRequest  bool              `yaml:"inspect_pull_request"`
	Validator           ValidatorSettings `yaml:"validator"`
}

// ValidatorSettings selects the catalog validator implementation.
type ValidatorSettings struct {
	Type    string   `yaml:"type"    validate:"required,oneof=bom command"`
	Command []string `yaml:"command" validate:"required_if=Type command"`
}

// environmentOverrides lists the variables that may override the file settings.
type environmentOverrides struct {
	RepositoryURI     string        `env:"DIRECTORY_REPO_URI"`
	PullRequestNumber int           `env:"PR_NUMBER"`
	AuthToken         string        `env:"AUTH_TOKEN"`
	FailFast          string        `env:"FAIL_FAST"`
	EntryTimeout      time.Duration `env:"ENTRY_TIMEOUT"`
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() *Settings {
	return &Settings{
		RepositoryURI:       DefaultRepositoryURI,
		PullRequestSource:   DefaultPullRequestSource,
		BaselineBranch:      DefaultBranch,
		BranchToTest:        DefaultBranch,
		FileToDiff:          DefaultFileToDiff,
		DefaultCatalogFile:  DefaultCatalogFile,
		RecordMarker:        DefaultRecordMarker,
		AmbiguousDiffPolicy: AmbiguousDiffFail,
		MaxResourceErrors:   DefaultMaxResourceErrors,
		InspectPullRequest:  true,
		Validator:           ValidatorSettings{Type: ValidatorBOM},
	}
}

// NewSettings reads a YAML configuration file on top of the defaults.
func NewSettings(path string) (*Settings, error) {
	settings := DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	if unmarshalErr := yaml.Unmarshal(data, settings); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
	}

	settings.AuthToken = resolveToken(settings.AuthToken)
	return settings, nil
}

// configFileNames are tried in order inside every search directory.
var configFileNames = []string{
	".catalog-gate.yaml",
	".catalog-gate.yml",
	"catalog-gate.yaml",
	"catalog-gate.yml",
}

// FindConfigFile returns the first configuration file found in the working
// directory, ".config", "configs", then the home directory and its ".config".
func FindConfigFile() (string, error) {
	for _, dir := range configSearchDirs() {
		for _, name := range configFileNames {
			candidate := filepath.Join(dir, name)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate, nil
			}
		}
	}
	return "", errors.New("no catalog-gate config file in the default locations")
}

func configSearchDirs() []string {
	dirs := []string{".", ".config", "configs"}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		dirs = append(dirs, home, filepath.Join(home, ".config"))
	}
	return dirs
}

// ApplyEnvironment overrides settings with the variables found by lookuper.
// A nil lookuper reads the process environment.
func (s *Settings) ApplyEnvironment(ctx context.Context, lookuper envconfig.Lookuper) error {
	if lookuper == nil {
		lookuper = envconfig.OsLookuper()
	}

	var env environmentOverrides
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &env,
		Lookuper: lookuper,
	}); err != nil {
		return fmt.Errorf("failed to read environment: %w", err)
	}

	if env.RepositoryURI != "" {
		s.RepositoryURI = env.RepositoryURI
	}
	if env.PullRequestNumber != 0 {
		s.PullRequestNumber = env.PullRequestNumber
	}
	if env.AuthToken != "" {
		s.AuthToken = env.AuthToken
	}
	if env.FailFast != "" {
		failFast, err := strconv.ParseBool(env.FailFast)
		if err != nil {
			return fmt.Errorf("invalid FAIL_FAST value %q: %w", env.FailFast, err)
		}
		s.FailFast = failFast
	}
	if env.EntryTimeout != 0 {
		s.EntryTimeout = env.EntryTimeout
	}

	return nil
}

// Validate checks for required configuration values.
func (s *Settings) Validate() error {
	if s.PullRequestNumber <= 0 {
		return ErrMissingPullRequest
	}

	err := validator.New().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	messages := make([]string, 0, len(fieldErrs))
	for _, fieldErr := range fieldErrs {
		messages = append(messages, fmt.Sprintf(
			"%s: failed %q constraint (value %v)",
			fieldErr.Namespace(), fieldErr.Tag(), fieldErr.Value(),
		))
	}
	return fmt.Errorf("invalid settings: %s", strings.Join(messages, "; "))
}

// PullRequestRef is the remote-tracking ref that receives the pull request head.
func (s *Settings) PullRequestRef() string {
	return fmt.Sprintf("refs/remotes/origin/pr/%d", s.PullRequestNumber)
}

// PullRequestRefSpec maps the pull request head onto PullRequestRef. The
// source ref is PullRequestSource with the number filled in, e.g.
// "refs/merge-requests/%d/head" for GitLab.
func (s *Settings) PullRequestRefSpec() string {
	source := s.PullRequestSource
	if source == "" {
		source = DefaultPullRequestSource
	}
	return "+" + fmt.Sprintf(source, s.PullRequestNumber) + ":" + s.PullRequestRef()
}

// BaselineRef is the local branch ref created by the clone.
func (s *Settings) BaselineRef() string {
	return "refs/heads/" + s.BaselineBranch
}

// resolveToken turns the configured auth_token into the token itself. ${VAR}
// references are replaced by the variable's value, and a result naming a
// regular file is replaced by the file's trimmed content.
func resolveToken(raw string) string {
	if raw == "" {
		return raw
	}

	token := expandEnvReferences(raw)
	if info, err := os.Stat(token); err != nil || !info.Mode().IsRegular() {
		return token
	}

	content, err := os.ReadFile(token)
	if err != nil {
		logger.Warnf("Cannot read token file %q, using the value as is: %v", token, err)
		return token
	}
	logger.Infof("Using token from file %q", token)
	return strings.TrimSpace(string(content))
}

func expandEnvReferences(raw string) string {
	return envVarPattern.ReplaceAllStringFunc(raw, func(reference string) string {
		name := envVarPattern.FindStringSubmatch(reference)[1]
		value, ok := os.LookupEnv(name)
		if !ok || value == "" {
			logger.Warnf("auth_token references %q, which is not set", name)
		}
		return value
	})
}
