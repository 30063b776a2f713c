// Package config handles configuration loading and management.
package config

import "time"

// Config holds all citymesh settings.
type Config struct {
	Generator  GeneratorConfig  `yaml:"generator"`
	Parser     ParserConfig     `yaml:"parser"`
	Simulation SimulationConfig `yaml:"simulation"`
	Server     ServerConfig     `yaml:"server"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// GeneratorConfig holds default building-mesh parameters.
type GeneratorConfig struct {
	Sides        int     `yaml:"sides"`
	Height       float32 `yaml:"height"`
	RadiusBottom float32 `yaml:"radius_bottom"`
	RadiusTop    float32 `yaml:"radius_top"`
	OutputDir    string  `yaml:"output_dir"`
}

// ParserConfig holds OBJ reader settings.
type ParserConfig struct {
	// ExcludePrefixes lists sub-object name prefixes whose faces are
	// treated as authoring decoration and excluded from parsed geometry.
	ExcludePrefixes []string `yaml:"exclude_prefixes"`
}

// SimulationConfig holds traffic model settings.
type SimulationConfig struct {
	MapFile       string `yaml:"map_file"`
	SpawnInterval int    `yaml:"spawn_interval"`
	Seed          int64  `yaml:"seed"`
}

// ServerConfig holds position API settings.
type ServerConfig struct {
	ListenAddr   string        `yaml:"listen_addr"`
	StepInterval time.Duration `yaml:"step_interval"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Generator: GeneratorConfig{
			Sides:        8,
			Height:       6.0,
			RadiusBottom: 1.0,
			RadiusTop:    0.8,
			OutputDir:    ".",
		},
		Parser: ParserConfig{
			ExcludePrefixes: []string{"WGT-", "Plane"},
		},
		Simulation: SimulationConfig{
			MapFile:       "city_files/base.txt",
			SpawnInterval: 10,
			Seed:          42,
		},
		Server: ServerConfig{
			ListenAddr:   "127.0.0.1:8585",
			StepInterval: time.Second,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
