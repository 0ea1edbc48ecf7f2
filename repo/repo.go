// Package repo manages the on-disk home of a local DAO deployment: the toml
// config file and the state directory next to it.
package repo

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	rootPathEnvVar = "TEIA_DAO_PATH"
	envPrefix      = "TEIADAO"

	cfgFileName = "dao.toml"

	defaultRepoRoot = "~/.teia-dao"
)

type Repo struct {
	Config *Config
}

// Load reads the config under repoRoot, writing the defaults first if no
// config file exists yet. An empty repoRoot falls back to the TEIA_DAO_PATH
// environment variable and then to ~/.teia-dao.
func Load(repoRoot string) (*Repo, error) {
	rootPath, err := resolveRoot(repoRoot)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig(rootPath)

	cfgPath := filepath.Join(rootPath, cfgFileName)
	if _, err := os.Stat(cfgPath); err != nil {
		if !os.IsNotExist(err) {
			return nil, errors.Wrap(err, "stat config file")
		}
		if err := os.MkdirAll(rootPath, 0o755); err != nil {
			return nil, errors.Wrap(err, "create repo root")
		}
		if err := writeConfig(cfgPath, cfg); err != nil {
			return nil, errors.Wrap(err, "write default config")
		}
	}
	if err := readConfig(cfgPath, cfg); err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	cfg.RepoRoot = rootPath

	return &Repo{Config: cfg}, nil
}

// Flush writes the current config back to disk.
func (r *Repo) Flush() error {
	cfgPath := filepath.Join(r.Config.RepoRoot, cfgFileName)
	return errors.Wrap(writeConfig(cfgPath, r.Config), "write config")
}

// StateDir returns the absolute path of the Badger state directory, or an
// empty string when the config asks for in-memory state.
func (r *Repo) StateDir() string {
	if r.Config.DataDir == "" {
		return ""
	}
	if filepath.IsAbs(r.Config.DataDir) {
		return r.Config.DataDir
	}
	return filepath.Join(r.Config.RepoRoot, r.Config.DataDir)
}

func resolveRoot(repoRoot string) (string, error) {
	if repoRoot == "" {
		repoRoot = os.Getenv(rootPathEnvVar)
	}
	if repoRoot == "" {
		repoRoot = defaultRepoRoot
	}
	return homedir.Expand(repoRoot)
}

func writeConfig(cfgPath string, cfg *Config) error {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	enc.SetArraysMultiline(true)
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	return os.WriteFile(cfgPath, buf.Bytes(), 0o644)
}

func readConfig(cfgPath string, cfg *Config) error {
	vp := viper.New()
	vp.SetConfigFile(cfgPath)
	vp.SetConfigType("toml")
	vp.AutomaticEnv()
	vp.SetEnvPrefix(envPrefix)
	vp.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := vp.ReadInConfig(); err != nil {
		return err
	}
	return vp.Unmarshal(cfg)
}
