// Package config resolves the fleet configuration once at startup. The
// resulting Config is a plain value passed to every command; nothing in it is
// mutated after Load returns.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

const (
	// DirName is the per-user configuration directory under $HOME
	DirName = ".fleet"

	// LocalFileName is the project-local config file looked up in the working directory
	LocalFileName = ".fleet.json"

	// DefaultRepoRoot is used when no other source names a root
	DefaultRepoRoot = "/var/www/services"

	// DefaultServiceAccount owns the service checkouts
	DefaultServiceAccount = "www-data"
)

// Environment variable names
const (
	EnvRepoRoot        = "FLEET_REPO_ROOT"
	EnvServiceAccount  = "FLEET_SERVICE_ACCOUNT"
	EnvGitHubToken     = "GITHUB_TOKEN"
	EnvGHToken         = "GH_TOKEN"
	EnvOpenAIKey       = "OPENAI_API_KEY"
	EnvOpenAIModel     = "OPENAI_MODEL"
	EnvOpenAIMaxTokens = "OPENAI_MAX_TOKENS"
	EnvJiraURL         = "JIRA_BASE_URL"
	EnvJiraUser        = "JIRA_USERNAME"
	EnvJiraToken       = "JIRA_TOKEN"

	// envFileRepoRoot is the repo root key inside the secrets file
	envFileRepoRoot = "REPO_ROOT"
)

// Source identifies where the repository root came from
type Source string

const (
	SourceFlag    Source = "flag"
	SourceEnv     Source = "environment"
	SourceLocal   Source = "local config"
	SourceHome    Source = "home config"
	SourceEnvFile Source = "env file"
	SourceDefault Source = "default"
)

const defaultMaxTokens = 2048

// Config is the resolved, immutable configuration for one invocation
type Config struct {
	RepoRoot       string
	RepoRootSource Source
	ConfigDir      string
	LogDir         string
	ServiceAccount string
	Verbose        bool
	Secrets        Secrets
	Toolchains     Toolchains
}

// Options carries the raw inputs configuration is resolved from
type Options struct {
	RepoRoot  string // --repo-root flag value
	Verbose   bool
	WorkDir   string
	HomeDir   string
	LookupEnv func(string) (string, bool)
}

// DefaultOptions fills WorkDir, HomeDir and LookupEnv from the process
func DefaultOptions(repoRoot string, verbose bool) (Options, error) {
	wd, err := os.Getwd()
	if err != nil {
		return Options{}, fmt.Errorf("failed to get working directory: %w", err)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return Options{}, fmt.Errorf("failed to get home directory: %w", err)
	}
	return Options{
		RepoRoot:  repoRoot,
		Verbose:   verbose,
		WorkDir:   wd,
		HomeDir:   home,
		LookupEnv: os.LookupEnv,
	}, nil
}

func (o Options) getenv(key string) string {
	if o.LookupEnv == nil {
		return ""
	}
	v, _ := o.LookupEnv(key)
	return v
}

// ConfigDir returns $HOME/.fleet
func (o Options) ConfigDir() string {
	return filepath.Join(o.HomeDir, DirName)
}

// HomeConfigPath returns the path of the per-user config file
func (o Options) HomeConfigPath() string {
	return filepath.Join(o.ConfigDir(), "config.json")
}

// LocalConfigPath returns the path of the project-local config file
func (o Options) LocalConfigPath() string {
	return filepath.Join(o.WorkDir, LocalFileName)
}

// EnvFilePath returns the path of the secrets file
func (o Options) EnvFilePath() string {
	return filepath.Join(o.ConfigDir(), ".env")
}

// ToolchainsPath returns the path of the dependency toolchain table
func (o Options) ToolchainsPath() string {
	return filepath.Join(o.ConfigDir(), "toolchains.yaml")
}

// Load resolves the full configuration
func Load(opts Options) (Config, error) {
	envFile, err := ReadEnvFile(opts.EnvFilePath())
	if err != nil {
		return Config{}, err
	}

	root, source, err := resolveRoot(opts, envFile)
	if err != nil {
		return Config{}, err
	}

	toolchains, err := LoadToolchains(opts.ToolchainsPath())
	if err != nil {
		return Config{}, err
	}

	account := DefaultServiceAccount
	if v, ok := lookup(opts, envFile, EnvServiceAccount); ok {
		account = v
	}

	return Config{
		RepoRoot:       root,
		RepoRootSource: source,
		ConfigDir:      opts.ConfigDir(),
		LogDir:         filepath.Join(opts.ConfigDir(), "logs"),
		ServiceAccount: account,
		Verbose:        opts.Verbose,
		Secrets:        secretsFrom(opts, envFile),
		Toolchains:     toolchains,
	}, nil
}

// ResolveRoot returns the repository root and where it came from.
// Precedence: flag, environment, local config, home config, env file, default.
func ResolveRoot(opts Options) (string, Source, error) {
	envFile, err := ReadEnvFile(opts.EnvFilePath())
	if err != nil {
		return "", "", err
	}
	return resolveRoot(opts, envFile)
}

func resolveRoot(opts Options, envFile map[string]string) (string, Source, error) {
	if opts.RepoRoot != "" {
		return opts.RepoRoot, SourceFlag, nil
	}
	if v := opts.getenv(EnvRepoRoot); v != "" {
		return v, SourceEnv, nil
	}

	for _, candidate := range []struct {
		path   string
		source Source
	}{
		{opts.LocalConfigPath(), SourceLocal},
		{opts.HomeConfigPath(), SourceHome},
	} {
		fc, err := ReadFile(candidate.path)
		if err != nil {
			return "", "", err
		}
		if fc != nil && fc.RepoRoot != "" {
			return fc.RepoRoot, candidate.source, nil
		}
	}

	if v := envFile[envFileRepoRoot]; v != "" {
		return v, SourceEnvFile, nil
	}
	return DefaultRepoRoot, SourceDefault, nil
}

// lookup checks the process environment first, then the env file
func lookup(opts Options, envFile map[string]string, key string) (string, bool) {
	if opts.LookupEnv != nil {
		if v, ok := opts.LookupEnv(key); ok {
			return v, true
		}
	}
	v, ok := envFile[key]
	return v, ok
}

func secretsFrom(opts Options, envFile map[string]string) Secrets {
	get := func(keys ...string) string {
		for _, k := range keys {
			if v, ok := lookup(opts, envFile, k); ok && v != "" {
				return v
			}
		}
		return ""
	}

	maxTokens := defaultMaxTokens
	if raw := get(EnvOpenAIMaxTokens); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			maxTokens = n
		}
	}

	return Secrets{
		GitHubToken:     get(EnvGitHubToken, EnvGHToken),
		OpenAIKey:       get(EnvOpenAIKey),
		OpenAIModel:     get(EnvOpenAIModel),
		OpenAIMaxTokens: maxTokens,
		JiraURL:         get(EnvJiraURL),
		JiraUser:        get(EnvJiraUser),
		JiraToken:       get(EnvJiraToken),
	}
}
