package sweep

import "strings"

const (
	remoteConfigurationKeySuffixConstant    = ".remote"
	dryRunConfigurationKeySuffixConstant    = ".dry_run"
	assumeYesConfigurationKeySuffixConstant = ".assume_yes"
	protectedConfigurationKeySuffixConstant = ".protected"
	defaultRemoteNameConstant               = "origin"
)

// CommandConfiguration captures configuration values for the sweep command.
type CommandConfiguration struct {
	RemoteName        string   `mapstructure:"remote"`
	DryRun            bool     `mapstructure:"dry_run"`
	AssumeYes         bool     `mapstructure:"assume_yes"`
	ProtectedBranches []string `mapstructure:"protected"`
}

// DefaultCommandConfiguration provides baseline configuration values for the sweep command.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		RemoteName:        defaultRemoteNameConstant,
		DryRun:            false,
		AssumeYes:         false,
		ProtectedBranches: nil,
	}
}

// DefaultConfigurationValues exposes configuration defaults keyed under the
// provided prefix. Every configuration key is registered, including the
// protected list, so environment overrides resolve for each of them.
func DefaultConfigurationValues(configurationKeyPrefix string) map[string]any {
	return map[string]any{
		configurationKeyPrefix + remoteConfigurationKeySuffixConstant:    defaultRemoteNameConstant,
		configurationKeyPrefix + dryRunConfigurationKeySuffixConstant:    false,
		configurationKeyPrefix + assumeYesConfigurationKeySuffixConstant: false,
		configurationKeyPrefix + protectedConfigurationKeySuffixConstant: []string{},
	}
}

// sanitize trims configuration values without applying implicit defaults.
func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	sanitized := configuration

	sanitized.RemoteName = strings.TrimSpace(configuration.RemoteName)
	sanitized.ProtectedBranches = sanitizeBranchNames(configuration.ProtectedBranches)

	return sanitized
}

func sanitizeBranchNames(raw []string) []string {
	sanitized := make([]string, 0, len(raw))
	for _, candidate := range raw {
		trimmed := strings.TrimSpace(candidate)
		if len(trimmed) == 0 {
			continue
		}
		sanitized = append(sanitized, trimmed)
	}
	return sanitized
}
