package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/ben-ranford/cmdtransport/internal/safeio"
	"github.com/ben-ranford/cmdtransport/internal/transport"
)

const (
	readConfigFileErrFmt = "read config file %s: %w"
	parseConfigErrFmt    = "parse config file %s: %w"
)

var configFileNames = []string{".transport.yml", ".transport.yaml", "transport.toml", "transport.json"}

type rawConfig struct {
	Idleading *string               `yaml:"idleading" toml:"idleading" json:"idleading"`
	Include   *string               `yaml:"include" toml:"include" json:"include"`
	Ignore    any                   `yaml:"ignore" toml:"ignore" json:"ignore"`
	StyleBox  *bool                 `yaml:"style_box" toml:"style_box" json:"style_box"`
	Rename    []transport.AffixRule `yaml:"rename" toml:"rename" json:"rename"`
	Workers   *int                  `yaml:"workers" toml:"workers" json:"workers"`
}

// Load finds and parses the transport config of the package at pkgPath. An
// explicit path wins over discovery. The returned path is empty when no
// config file exists.
func Load(pkgPath, explicitPath string) (Overrides, string, error) {
	pkgAbs, err := filepath.Abs(pkgPath)
	if err != nil {
		return Overrides{}, "", fmt.Errorf("resolve package path: %w", err)
	}
	explicitPath = strings.TrimSpace(explicitPath)

	configPath, found, err := resolveConfigPath(pkgAbs, explicitPath)
	if err != nil {
		return Overrides{}, "", err
	}
	if !found {
		return Overrides{}, "", nil
	}

	data, err := readConfigFile(pkgAbs, configPath, explicitPath != "")
	if err != nil {
		return Overrides{}, "", fmt.Errorf(readConfigFileErrFmt, configPath, err)
	}
	cfg, err := parseConfig(configPath, data)
	if err != nil {
		return Overrides{}, "", fmt.Errorf(parseConfigErrFmt, configPath, err)
	}
	overrides, err := cfg.toOverrides()
	if err != nil {
		return Overrides{}, "", fmt.Errorf(parseConfigErrFmt, configPath, err)
	}
	if err := overrides.Apply(Defaults()).Validate(); err != nil {
		return Overrides{}, "", fmt.Errorf(parseConfigErrFmt, configPath, err)
	}
	return overrides, configPath, nil
}

func resolveConfigPath(pkgPath, explicitPath string) (string, bool, error) {
	if explicitPath != "" {
		candidate := explicitPath
		if !filepath.IsAbs(candidate) {
			candidate = filepath.Join(pkgPath, candidate)
		}
		candidate = filepath.Clean(candidate)
		if _, err := os.Stat(candidate); err != nil {
			if os.IsNotExist(err) {
				return "", false, fmt.Errorf("config file not found: %s", candidate)
			}
			return "", false, fmt.Errorf(readConfigFileErrFmt, candidate, err)
		}
		return candidate, true, nil
	}

	for _, name := range configFileNames {
		candidate := filepath.Join(pkgPath, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !os.IsNotExist(err) {
			return "", false, fmt.Errorf(readConfigFileErrFmt, candidate, err)
		}
	}
	return "", false, nil
}

func readConfigFile(pkgPath, path string, explicitProvided bool) ([]byte, error) {
	if !explicitProvided || isPathUnderRoot(pkgPath, path) {
		return safeio.ReadFileUnder(pkgPath, path)
	}
	return safeio.ReadFile(path)
}

func isPathUnderRoot(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(os.PathSeparator))
}

func parseConfig(path string, data []byte) (rawConfig, error) {
	var cfg rawConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return rawConfig{}, fmt.Errorf("invalid JSON config: %w", err)
		}
		if decoder.More() {
			return rawConfig{}, fmt.Errorf("invalid JSON config: multiple JSON values")
		}
	case ".toml":
		decoder := toml.NewDecoder(bytes.NewReader(data))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return rawConfig{}, fmt.Errorf("invalid TOML config: %w", err)
		}
	default:
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(&cfg); err != nil {
			return rawConfig{}, fmt.Errorf("invalid YAML config: %w", err)
		}
	}
	return cfg, nil
}

func (c rawConfig) toOverrides() (Overrides, error) {
	ignore, err := stringList("ignore", c.Ignore)
	if err != nil {
		return Overrides{}, err
	}
	return Overrides{
		Idleading: c.Idleading,
		Include:   c.Include,
		Ignore:    ignore,
		StyleBox:  c.StyleBox,
		Rename:    c.Rename,
		Workers:   c.Workers,
	}, nil
}

// stringList accepts either a single string or a list of strings.
func stringList(field string, value any) ([]string, error) {
	switch typed := value.(type) {
	case nil:
		return nil, nil
	case string:
		return SplitList(typed), nil
	case []any:
		items := make([]string, 0, len(typed))
		for i, item := range typed {
			text, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%s[%d] must be a string", field, i)
			}
			if text = strings.TrimSpace(text); text != "" {
				items = append(items, text)
			}
		}
		return items, nil
	default:
		return nil, fmt.Errorf("%s must be a string or a list of strings", field)
	}
}

// SplitList splits a comma separated value, dropping empty entries.
func SplitList(value string) []string {
	items := make([]string, 0)
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	return items
}
