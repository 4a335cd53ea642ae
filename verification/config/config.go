package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// ProjectConfig describes the root configuration object for an attestor project.
type ProjectConfig struct {
	// Verification describes the configuration used by verification runs.
	Verification VerificationConfig `json:"verification" yaml:"verification"`
}

// VerificationConfig describes the configuration options used by the verification.Verifier and its collaborators.
type VerificationConfig struct {
	// RegistryPath describes the location of the registry file listing the contracts to verify.
	RegistryPath string `json:"registry" yaml:"registry"`

	// RPCURL describes the JSON-RPC endpoint of the execution-layer node to fetch on-chain evidence from.
	RPCURL string `json:"rpcUrl" yaml:"rpcUrl"`

	// Workers describes the number of registry entries to verify concurrently.
	Workers int `json:"workers" yaml:"workers"`

	// DiffDisabled describes whether the diagnostic diff for creation-code mismatches should be skipped. Diffing
	// large mismatched bytecodes can be expensive, so non-interactive runs may want this on.
	DiffDisabled bool `json:"diffDisabled" yaml:"diffDisabled"`

	// MaxDiffChars bounds how many hex characters of each operand participate in a diagnostic diff.
	MaxDiffChars int `json:"maxDiffChars" yaml:"maxDiffChars"`

	// Logging describes the configuration used for logging.
	Logging LoggingConfig `json:"loggingConfig" yaml:"loggingConfig"`
}

// LoggingConfig describes the configuration options used for logging.
type LoggingConfig struct {
	// Level describes whether logs of certain severity levels (eg info, warning, etc.) will be emitted or discarded.
	// Increasing level values represent more severe logs.
	Level zerolog.Level `json:"level" yaml:"level"`

	// LogDirectory describes the directory where structured log files will be outputted. If the string is empty,
	// then no log files are kept.
	LogDirectory string `json:"logDirectory" yaml:"logDirectory"`
}

// ReadProjectConfigFromFile reads the project configuration from the provided file path. The file may be JSON or,
// by extension (.yaml/.yml), YAML. Fields absent from the file keep their default values.
func ReadProjectConfigFromFile(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	projectConfig := GetDefaultProjectConfig()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, projectConfig)
	default:
		err = json.Unmarshal(data, projectConfig)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "could not parse config file %s", path)
	}

	// Note: validation is deferred to the caller, since command-line flags may still override fields read here.
	return projectConfig, nil
}

// WriteToFile writes the project configuration as indented JSON to the provided file path.
func (p *ProjectConfig) WriteToFile(path string) error {
	data, err := json.MarshalIndent(p, "", "\t")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate ensures the project configuration is usable, returning an error describing the first violation found.
func (p *ProjectConfig) Validate() error {
	if p.Verification.Workers <= 0 {
		return errors.New("verification.workers must be a positive number")
	}
	if p.Verification.RPCURL == "" {
		return errors.New("verification.rpcUrl must be provided")
	}
	if p.Verification.MaxDiffChars < 0 {
		return errors.New("verification.maxDiffChars must not be negative")
	}
	return nil
}
