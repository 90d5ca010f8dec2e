package app

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	EngineMemory = "memory"
	EngineDuckDB = "duckdb"
	EngineSQLite = "sqlite"
)

type Config struct {
	InputPath  string `yaml:"input,omitempty"`
	Engine     string `yaml:"engine,omitempty"`
	DBPath     string `yaml:"db,omitempty"`
	ChartsPath string `yaml:"charts,omitempty"`
	ReportPath string `yaml:"report,omitempty"`
	ListenAddr string `yaml:"listen,omitempty"`
	LogLevel   string `yaml:"log_level,omitempty"`
	LogFormat  string `yaml:"log_format,omitempty"`
}

func Default() Config {
	return Config{
		InputPath:  "access.log",
		Engine:     EngineMemory,
		ChartsPath: "charts.html",
		LogLevel:   "info",
		LogFormat:  "console",
	}
}

// LoadFile 读取 YAML 配置文件。
func LoadFile(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("读取配置文件失败：%w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("解析配置文件失败：%w", err)
	}
	return cfg, nil
}

// Merge 用 override 中的非零值覆盖 base。
func Merge(base, override Config) Config {
	result := base
	if override.InputPath != "" {
		result.InputPath = override.InputPath
	}
	if override.Engine != "" {
		result.Engine = override.Engine
	}
	if override.DBPath != "" {
		result.DBPath = override.DBPath
	}
	if override.ChartsPath != "" {
		result.ChartsPath = override.ChartsPath
	}
	if override.ReportPath != "" {
		result.ReportPath = override.ReportPath
	}
	if override.ListenAddr != "" {
		result.ListenAddr = override.ListenAddr
	}
	if override.LogLevel != "" {
		result.LogLevel = override.LogLevel
	}
	if override.LogFormat != "" {
		result.LogFormat = override.LogFormat
	}
	return result
}

// FromEnv 读取 LOGSTAT_* 环境变量。
func FromEnv(base Config) Config {
	return Merge(base, Config{
		InputPath:  os.Getenv("LOGSTAT_INPUT"),
		Engine:     os.Getenv("LOGSTAT_ENGINE"),
		DBPath:     os.Getenv("LOGSTAT_DB"),
		ChartsPath: os.Getenv("LOGSTAT_CHARTS"),
		ReportPath: os.Getenv("LOGSTAT_REPORT"),
		ListenAddr: os.Getenv("LOGSTAT_LISTEN"),
		LogLevel:   os.Getenv("LOGSTAT_LOG_LEVEL"),
		LogFormat:  os.Getenv("LOGSTAT_LOG_FORMAT"),
	})
}

func (c Config) Validate() error {
	if c.InputPath == "" {
		return fmt.Errorf("input 不能为空")
	}
	if c.ChartsPath == "" {
		return fmt.Errorf("charts 不能为空")
	}
	switch strings.ToLower(c.Engine) {
	case EngineMemory, EngineDuckDB, EngineSQLite:
	default:
		return fmt.Errorf("engine 非法：%q（可选 memory/duckdb/sqlite）", c.Engine)
	}
	return nil
}
