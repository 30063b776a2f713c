// citysim runs the traffic simulation and serves the position API.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/citymesh/internal/config"
	"github.com/Faultbox/citymesh/internal/logger"
	"github.com/Faultbox/citymesh/internal/server"
	"github.com/Faultbox/citymesh/internal/sim"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== CityMesh Traffic Simulation ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	factory := func() (*sim.Model, error) {
		cityMap, err := sim.ParseMapFile(cfg.Simulation.MapFile, sim.DefaultLegend())
		if err != nil {
			return nil, err
		}
		return sim.NewModel(cityMap, cfg.Simulation.SpawnInterval, cfg.Simulation.Seed), nil
	}

	srv, err := server.New(cfg.Server, factory)
	if err != nil {
		logger.Error("failed to create server", zap.Error(err))
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error("server error", zap.Error(err))
		os.Exit(1)
	}
}
