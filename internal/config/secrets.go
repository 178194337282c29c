package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Secrets holds API credentials for the optional collaborators
type Secrets struct {
	GitHubToken     string
	OpenAIKey       string
	OpenAIModel     string
	OpenAIMaxTokens int
	JiraURL         string
	JiraUser        string
	JiraToken       string
}

// HasAI reports whether an AI provider key is configured
func (s Secrets) HasAI() bool {
	return s.OpenAIKey != ""
}

// HasGitHubToken reports whether a GitHub API token is configured
func (s Secrets) HasGitHubToken() bool {
	return s.GitHubToken != ""
}

// HasJira reports whether all Jira credentials are configured
func (s Secrets) HasJira() bool {
	return s.JiraURL != "" && s.JiraUser != "" && s.JiraToken != ""
}

// ReadEnvFile reads KEY=value lines. A missing file yields an empty map.
func ReadEnvFile(path string) (map[string]string, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return map[string]string{}, nil
	}
	values, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read env file %s: %w", path, err)
	}
	return values, nil
}

// UpdateEnvFile merges updates into the env file, keeping unrelated keys.
// Empty values remove the key. The file is written with mode 0600.
func UpdateEnvFile(path string, updates map[string]string) error {
	values, err := ReadEnvFile(path)
	if err != nil {
		return err
	}
	for k, v := range updates {
		if v == "" {
			delete(values, k)
			continue
		}
		values[k] = v
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	content, err := godotenv.Marshal(values)
	if err != nil {
		return fmt.Errorf("failed to encode env file: %w", err)
	}

	// CreateTemp opens the file 0600; it replaces path only once complete
	tmp, err := os.CreateTemp(filepath.Dir(path), ".env-*")
	if err != nil {
		return fmt.Errorf("failed to write env file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(content + "\n"); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write env file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write env file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace env file: %w", err)
	}
	return nil
}
