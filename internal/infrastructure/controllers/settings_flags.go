package controllers

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/catalog-gate/internal/domain/entities"
)

const (
	flagConfig       = "config"
	flagToken        = "token"
	flagVerbose      = "verbose"
	flagRepository   = "repository"
	flagPR           = "pr"
	flagFailFast     = "fail-fast"
	flagEntryTimeout = "entry-timeout"
	flagValidator    = "validator"
)

// addPullRequestFlags adds the flags shared by every pull request command.
func addPullRequestFlags(cmd *cobra.Command) {
	cmd.Flags().String(flagRepository, "",
		fmt.Sprintf("Directory repository to diff (default %s, or DIRECTORY_REPO_URI)", entities.DefaultRepositoryURI))
	cmd.Flags().Int(flagPR, 0, "Pull request number to validate (or PR_NUMBER)")
}

// loadSettings layers defaults, the config file, the environment and finally
// the flags that were set explicitly on the command line.
func loadSettings(ctx context.Context, cmd *cobra.Command) (*entities.Settings, error) {
	if verbose, _ := cmd.Flags().GetBool(flagVerbose); verbose {
		logger.SetLevel(logger.DebugLevel)
	}

	settings, err := loadSettingsFile(cmd)
	if err != nil {
		return nil, err
	}

	if envErr := settings.ApplyEnvironment(ctx, nil); envErr != nil {
		return nil, envErr
	}

	applyFlags(cmd, settings)
	return settings, nil
}

func loadSettingsFile(cmd *cobra.Command) (*entities.Settings, error) {
	cfgPath, _ := cmd.Flags().GetString(flagConfig)
	if cfgPath == "" {
		found, err := entities.FindConfigFile()
		if err != nil {
			logger.Debugf("No config file found, using defaults: %v", err)
			return entities.DefaultSettings(), nil
		}
		cfgPath = found
	}

	logger.Infof("Using config file: %s", cfgPath)
	settings, err := entities.NewSettings(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return settings, nil
}

func applyFlags(cmd *cobra.Command, settings *entities.Settings) {
	flags := cmd.Flags()

	if flags.Changed(flagRepository) {
		settings.RepositoryURI, _ = flags.GetString(flagRepository)
	}
	if flags.Changed(flagPR) {
		settings.PullRequestNumber, _ = flags.GetInt(flagPR)
	}
	if flags.Changed(flagToken) {
		settings.AuthToken, _ = flags.GetString(flagToken)
	}
	if flags.Changed(flagFailFast) {
		settings.FailFast, _ = flags.GetBool(flagFailFast)
	}
	if flags.Changed(flagEntryTimeout) {
		settings.EntryTimeout, _ = flags.GetDuration(flagEntryTimeout)
	}
	if flags.Changed(flagValidator) {
		settings.Validator.Type, _ = flags.GetString(flagValidator)
	}
}
