package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/TomShaoquan/arduino-panda/internal/constants"
	"github.com/TomShaoquan/arduino-panda/internal/errors"
)

// GlobalConfigDir returns the path to the global panda configuration directory.
// This is typically ~/.panda on Unix systems.
//
// Returns an error if the home directory cannot be determined.
func GlobalConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get home directory")
	}
	return filepath.Join(home, constants.PandaHome), nil
}

// ProjectConfigDir returns the relative path to the project configuration directory.
// This is always .panda relative to the sketch workspace root.
func ProjectConfigDir() string {
	return constants.PandaHome
}

// GlobalConfigPath returns the full path to the global configuration file.
// This is typically ~/.panda/config.yaml on Unix systems.
//
// Returns an error if the home directory cannot be determined.
func GlobalConfigPath() (string, error) {
	dir, err := GlobalConfigDir()
	if err != nil {
		return "", fmt.Errorf("get global config path: %w", err)
	}
	return filepath.Join(dir, constants.GlobalConfigName), nil
}

// ProjectConfigPath returns the relative path to the project configuration file.
// This is always .panda/config.yaml relative to the sketch workspace root.
func ProjectConfigPath() string {
	return filepath.Join(ProjectConfigDir(), constants.GlobalConfigName)
}

// ExpandOutput expands the build output template against a sketch workspace
// root. The ${root} token is replaced with root, and a relative result is
// resolved against root so build output never escapes into the working
// directory by accident.
//
// An empty template expands the built-in default.
func ExpandOutput(template, root string) string {
	if template == "" {
		template = constants.DefaultBuildOutputTemplate
	}

	expanded := strings.ReplaceAll(template, constants.BuildOutputRootToken, root)

	// A template without the token may still be relative ("build/out");
	// anchor it at the root. A token-bearing template is already anchored.
	if !filepath.IsAbs(expanded) && !strings.Contains(template, constants.BuildOutputRootToken) {
		expanded = filepath.Join(root, expanded)
	}
	return filepath.Clean(expanded)
}
