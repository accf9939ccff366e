package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const noLarchTomlMessage = "no larch.toml found\nplease specify the target explicitly, e.g.:\n  larch check path/to/file.lr"

type projectManifest struct {
	Path   string
	Root   string
	Config projectConfig
}

type projectConfig struct {
	Package packageConfig `toml:"package"`
	Check   checkConfig   `toml:"check"`
}

type packageConfig struct {
	Name string `toml:"name"`
}

type checkConfig struct {
	Entry   string   `toml:"entry"`
	Include []string `toml:"include"`
}

// EntryPath returns the manifest's check entry resolved against the
// manifest root.
func (m *projectManifest) EntryPath() string {
	return filepath.Join(m.Root, m.Config.Check.Entry)
}

// CheckTargets returns the entry followed by every [check].include path,
// all resolved against the manifest root. Include entries may be globs; a
// glob that matches nothing contributes nothing, while a literal path is
// kept so a missing file surfaces as an error.
func (m *projectManifest) CheckTargets() ([]string, error) {
	targets := []string{m.EntryPath()}
	for _, pattern := range m.Config.Check.Include {
		resolved := filepath.Join(m.Root, pattern)
		matches, err := filepath.Glob(resolved)
		if err != nil {
			return nil, fmt.Errorf("%s: bad [check].include pattern %q: %w", m.Path, pattern, err)
		}
		if len(matches) == 0 {
			if !strings.ContainsAny(pattern, "*?[") {
				targets = append(targets, resolved)
			}
			continue
		}
		targets = append(targets, matches...)
	}
	return targets, nil
}

func findLarchToml(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "larch.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

func loadProjectManifest(startDir string) (*projectManifest, bool, error) {
	manifestPath, ok, err := findLarchToml(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := loadProjectConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &projectManifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

func loadProjectConfig(path string) (projectConfig, error) {
	var cfg projectConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return projectConfig{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return projectConfig{}, fmt.Errorf("%s: missing [package]", path)
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return projectConfig{}, fmt.Errorf("%s: missing [package].name", path)
	}
	if !meta.IsDefined("check", "entry") || strings.TrimSpace(cfg.Check.Entry) == "" {
		return projectConfig{}, fmt.Errorf("%s: missing [check].entry", path)
	}
	for i, inc := range cfg.Check.Include {
		if strings.TrimSpace(inc) == "" {
			return projectConfig{}, fmt.Errorf("%s: empty [check].include entry %d", path, i+1)
		}
	}
	return cfg, nil
}
