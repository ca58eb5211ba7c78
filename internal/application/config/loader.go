package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/grand-thief-cash/workplan/internal/application/consts"
)

type Loader struct {
	env        string
	configPath string
	bizConfig  any // project supplied pointer for the biz_config subtree
}

func NewLoader(env string, configPath string) *Loader {
	if env == "" {
		env = consts.ENV_DEVELOPMENT
	}
	if configPath == "" {
		configPath = consts.DEFAULT_CONFIG_PATH
	}
	return &Loader{env: env, configPath: configPath}
}

// SetBizConfig injects the project config pointer (e.g. &MyBizConfig{}).
// Must be called before LoadConfig; must be a pointer so defaults survive.
func (l *Loader) SetBizConfig(b any) {
	if b == nil {
		return
	}
	if reflect.TypeOf(b).Kind() != reflect.Ptr {
		panic("SetBizConfig expects a pointer, e.g. &MyBizConfig{}")
	}
	l.bizConfig = b
}

// LoadConfig parses AppConfig as a whole, then re-decodes the biz_config
// subtree into the project pointer. yaml.v3 replaces interface values with
// maps, so the two-pass decode is required to fill the typed struct.
func (l *Loader) LoadConfig() (*AppConfig, error) {
	data, err := os.ReadFile(l.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg AppConfig
	ext := strings.ToLower(filepath.Ext(l.configPath))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file format: %s", ext)
	}

	if l.bizConfig != nil && cfg.BizConfig != nil {
		if err := l.decodeBizSection(ext, cfg.BizConfig, l.bizConfig); err != nil {
			return nil, fmt.Errorf("decode biz_config failed: %w", err)
		}
		cfg.BizConfig = l.bizConfig
	} else if l.bizConfig != nil && cfg.BizConfig == nil {
		// file has no biz_config; keep the caller defaults
		cfg.BizConfig = l.bizConfig
	}

	return &cfg, nil
}

func (l *Loader) decodeBizSection(ext string, raw any, target any) error {
	var (
		bytes []byte
		err   error
	)
	switch ext {
	case ".yaml", ".yml":
		bytes, err = yaml.Marshal(raw)
	case ".json":
		bytes, err = json.Marshal(raw)
	default:
		return fmt.Errorf("unsupported format: %s", ext)
	}
	if err != nil {
		return fmt.Errorf("re-marshal biz_config failed: %w", err)
	}
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(bytes, target); err != nil {
			return fmt.Errorf("unmarshal biz_config into target failed: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(bytes, target); err != nil {
			return fmt.Errorf("unmarshal biz_config into target failed: %w", err)
		}
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
