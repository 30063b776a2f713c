package config

import "flag"

var (
	flagConfig = flag.String("config", "", "Path to config file")
	flagDebug  = flag.Bool("debug", false, "Enable debug logging")
	flagListen = flag.String("listen", "", "Position API listen address")
	flagMap    = flag.String("map", "", "City map file")
	flagSeed   = flag.Int64("seed", 0, "Simulation random seed")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagListen != "" {
		cfg.Server.ListenAddr = *flagListen
	}
	if *flagMap != "" {
		cfg.Simulation.MapFile = *flagMap
	}
	if *flagSeed != 0 {
		cfg.Simulation.Seed = *flagSeed
	}
}
