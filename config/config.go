package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/rabwill/fieldops/core/dispatch"
	"github.com/rabwill/fieldops/core/dispatch/audit"
	"github.com/rabwill/fieldops/core/metrics"
	"github.com/rabwill/fieldops/infra/mqtt"
	"github.com/rabwill/fieldops/mcpserver"
)

// DataConfig points the repositories at their seed files. Empty paths fall
// back to the embedded demo dataset.
type DataConfig struct {
	AssignmentsFile string `json:"assignments_file"`
	TechniciansFile string `json:"technicians_file"`
}

type Config struct {
	Server   mcpserver.Config `json:"server"`
	Dispatch dispatch.Config  `json:"dispatch"`
	Metrics  metrics.Config   `json:"metrics"`
	Audit    audit.Config     `json:"audit"`
	Notify   mqtt.Config      `json:"notify"`
	Data     DataConfig       `json:"data"`
}

func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("FIELDOPS_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "fieldops_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Server.SetDefaults()
	cfg.Dispatch.SetDefaults()
	cfg.Metrics.SetDefaults()
	cfg.Audit.SetDefaults()
	cfg.Notify.SetDefaults()
	if err := cfg.Dispatch.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Audit.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
