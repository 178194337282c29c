package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Package managers a service can use
const (
	ManagerComposer = "composer"
	ManagerNPM      = "npm"
	ManagerNone     = "none"
)

// Toolchain describes how dependencies are installed for one service.
// Command is the executable prefix, e.g. ["php8.2", "/usr/local/bin/composer"].
type Toolchain struct {
	Manager string   `yaml:"manager"`
	Command []string `yaml:"command,omitempty"`
}

// Toolchains maps service name to its toolchain
type Toolchains map[string]Toolchain

type toolchainsFile struct {
	Services Toolchains `yaml:"services"`
}

// DefaultToolchains is the reference deployment's table. Entries in
// toolchains.yaml override it per service.
func DefaultToolchains() Toolchains {
	composer := func(php string) Toolchain {
		return Toolchain{Manager: ManagerComposer, Command: []string{php, "/usr/local/bin/composer"}}
	}
	return Toolchains{
		"admin":         composer("php8.1"),
		"api":           composer("php8.2"),
		"auth":          composer("php8.2"),
		"billing":       composer("php8.1"),
		"cms":           composer("php7.4"),
		"frontend":      {Manager: ManagerNPM, Command: []string{"npm"}},
		"notifications": {Manager: ManagerNPM, Command: []string{"npm"}},
		"orders":        composer("php8.2"),
		"payments":      composer("php8.1"),
		"reports":       composer("php8.0"),
	}
}

// LoadToolchains merges the YAML table at path over DefaultToolchains.
func LoadToolchains(path string) (Toolchains, error) {
	table := DefaultToolchains()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return table, nil
		}
		return nil, fmt.Errorf("failed to read toolchains %s: %w", path, err)
	}

	var f toolchainsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse toolchains %s: %w", path, err)
	}

	for name, tc := range f.Services {
		if err := tc.validate(); err != nil {
			return nil, fmt.Errorf("toolchain for %s: %w", name, err)
		}
		table[name] = tc
	}
	return table, nil
}

// Lookup returns the toolchain for a service, or a "none" toolchain.
func (t Toolchains) Lookup(service string) Toolchain {
	if tc, ok := t[service]; ok {
		return tc
	}
	return Toolchain{Manager: ManagerNone}
}

func (tc Toolchain) validate() error {
	switch tc.Manager {
	case ManagerComposer, ManagerNPM:
		if len(tc.Command) == 0 {
			return fmt.Errorf("manager %s requires a command", tc.Manager)
		}
	case ManagerNone:
	default:
		return fmt.Errorf("unknown manager %q", tc.Manager)
	}
	return nil
}
