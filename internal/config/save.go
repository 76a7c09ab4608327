package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/TomShaoquan/arduino-panda/internal/constants"
	"github.com/TomShaoquan/arduino-panda/internal/errors"
)

// Save writes the configuration to the given path as YAML with a generated
// header comment. The parent directory is created if missing. The file is
// written with restrictive permissions since it may carry user-specific
// device paths.
//
// The source string names what produced the file and appears in the header,
// e.g. "panda init" or "panda select".
func Save(cfg *Config, path, source string) error {
	if cfg == nil {
		return errors.ErrConfigNil
	}

	// Create parent directory with restrictive permissions
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return errors.Wrapf(err, "failed to create config directory for %s", path)
	}

	// Marshal config to YAML
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}

	// Add header comment
	header := fmt.Sprintf("# panda configuration\n# Generated by %s on %s\n\n",
		source, time.Now().Format(constants.TimeFormatISO))
	content := header + string(data)

	// Write config file with restrictive permissions
	if err = os.WriteFile(path, []byte(content), 0o600); err != nil {
		return errors.Wrapf(err, "failed to write config file %s", path)
	}

	return nil
}

// SaveGlobal writes the configuration to ~/.panda/config.yaml.
func SaveGlobal(cfg *Config, source string) error {
	path, err := GlobalConfigPath()
	if err != nil {
		return err
	}
	return Save(cfg, path, source)
}

// SaveProject writes the configuration to .panda/config.yaml relative to the
// current working directory.
func SaveProject(cfg *Config, source string) error {
	return Save(cfg, ProjectConfigPath(), source)
}
