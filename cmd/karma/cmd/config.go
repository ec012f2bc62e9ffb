package cmd

import (
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
)

const configFileName = ".karmarc.yaml"

// fileConfig is the shape of .karmarc.yaml. Pointer fields distinguish
// "absent from file" from "explicitly false", so loadConfig's caller
// can apply flags > file > defaults precedence.
type fileConfig struct {
	Color           *bool `yaml:"color"`
	WarnSemicolons  *bool `yaml:"warnSemicolons"`
	WarnConversions *bool `yaml:"warnConversions"`
}

// loadConfig reads .karmarc.yaml from the current directory, falling
// back to $HOME/.karmarc.yaml. A missing file is not an error; it just
// yields a zero-value fileConfig, so every field falls through to
// built-in defaults.
func loadConfig() (fileConfig, error) {
	for _, dir := range configSearchDirs() {
		path := filepath.Join(dir, configFileName)
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return fileConfig{}, err
		}
		var cfg fileConfig
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return fileConfig{}, err
		}
		return cfg, nil
	}
	return fileConfig{}, nil
}

func configSearchDirs() []string {
	dirs := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, home)
	}
	return dirs
}

// resolveBool applies flags > file > default precedence. flagSet
// reports whether the flag was explicitly passed on the command line.
func resolveBool(flagSet bool, flagValue bool, fileValue *bool, def bool) bool {
	if flagSet {
		return flagValue
	}
	if fileValue != nil {
		return *fileValue
	}
	return def
}
