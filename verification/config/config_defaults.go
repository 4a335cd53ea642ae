package config

import "github.com/rs/zerolog"

const (
	// DefaultWorkers is the default number of registry entries verified concurrently.
	DefaultWorkers = 10

	// DefaultMaxDiffChars is the default bound on how many hex characters of each operand participate in a
	// diagnostic diff for creation-code mismatches.
	DefaultMaxDiffChars = 4096
)

// GetDefaultProjectConfig obtains the default configuration for an attestor project.
func GetDefaultProjectConfig() *ProjectConfig {
	return &ProjectConfig{
		Verification: VerificationConfig{
			RegistryPath: "attestor.registry.json",
			RPCURL:       "",
			Workers:      DefaultWorkers,
			DiffDisabled: false,
			MaxDiffChars: DefaultMaxDiffChars,
			Logging: LoggingConfig{
				Level:        zerolog.InfoLevel,
				LogDirectory: "",
			},
		},
	}
}
