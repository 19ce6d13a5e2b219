// Package settings loads per-user defaults shared by the dir-stats commands.
package settings

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/datatug/dirstats/pkg/fsutils"
)

const (
	UserDir  = "~/.dirstats"
	FileName = "settings.yaml"

	// EnvPath names an environment variable that overrides the settings file path.
	EnvPath = "DIRSTATS_SETTINGS"
)

// HTML holds defaults for dir-stats-ini2html.
type HTML struct {
	Prefix    string `yaml:"prefix,omitempty"`
	Suffix    string `yaml:"suffix,omitempty"`
	Extension string `yaml:"extension,omitempty"`
	Title     string `yaml:"title,omitempty"`
}

// Settings are defaults that command line flags override. Zero values mean
// "not set".
type Settings struct {
	Style      string   `yaml:"style,omitempty"`
	Extensions []string `yaml:"extensions,omitempty"`
	Exclude    []string `yaml:"exclude,omitempty"`
	Limit      *int64   `yaml:"limit,omitempty"`
	Words      []string `yaml:"words,omitempty"`
	HTML       HTML     `yaml:"html,omitempty"`
}

var osUserHomeDir = os.UserHomeDir
var osGetenv = os.Getenv
var readYAMLFile = fsutils.ReadYAMLFile

func GetUserDir() (string, error) {
	userHomeDir, err := osUserHomeDir()
	if err != nil {
		return UserDir, err
	}
	return filepath.Join(userHomeDir, UserDir[2:]), nil
}

// Path returns the settings file location.
func Path() (string, error) {
	if p := osGetenv(EnvPath); p != "" {
		return fsutils.ExpandHome(p), nil
	}
	userDir, err := GetUserDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(userDir, FileName), nil
}

// Load reads the settings file. A missing file yields empty settings.
func Load() (Settings, error) {
	var s Settings
	p, err := Path()
	if err != nil {
		return s, err
	}
	if err = readYAMLFile(p, false, &s); err != nil {
		return Settings{}, fmt.Errorf("failed to read settings from %s: %w", p, err)
	}
	return s, nil
}
