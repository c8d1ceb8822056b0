// Package config holds the server configuration and its validation.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/artem-pershin/checkers/internal/model"
)

// ErrInvalidConfig indicates invalid configuration values.
var ErrInvalidConfig = errors.New("invalid configuration")

const (
	DefaultPort      = 3000
	DefaultBoardSize = 8
	MinBoardSize     = 4
	MaxBoardSize     = 26 // squares are named a..z
)

// Config holds everything the server needs to start.
type Config struct {
	Port          int    `json:"port"`
	AllowOrigins  string `json:"allow_origins"`
	BoardSize     int    `json:"board_size"`
	RobotWhite    bool   `json:"robot_white"`
	PlacementFile string `json:"placement_file"`
	LogLevel      string `json:"log_level"`
	PrettyLogs    bool   `json:"pretty_logs"`
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		Port:         DefaultPort,
		AllowOrigins: "http://localhost:5173",
		BoardSize:    DefaultBoardSize,
		RobotWhite:   false,
		LogLevel:     "info",
	}
}

// Validate reports the first invalid value, wrapped in ErrInvalidConfig.
func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("%w: port %d out of range", ErrInvalidConfig, c.Port)
	}
	if c.BoardSize < MinBoardSize || c.BoardSize > MaxBoardSize {
		return fmt.Errorf("%w: board size %d not in [%d, %d]", ErrInvalidConfig, c.BoardSize, MinBoardSize, MaxBoardSize)
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Placement returns the starting position: the placement file when one is
// configured, the standard opening otherwise.
func (c Config) Placement() (model.Placement, error) {
	if c.PlacementFile == "" {
		return model.DefaultPlacement(c.BoardSize), nil
	}
	return model.LoadPlacement(c.PlacementFile, c.BoardSize)
}

// Settings builds the per-game settings from the configuration.
func (c Config) Settings() (model.Settings, error) {
	placement, err := c.Placement()
	if err != nil {
		return model.Settings{}, err
	}
	return model.Settings{
		BoardSize:  c.BoardSize,
		RobotWhite: c.RobotWhite,
		Placement:  placement,
	}, nil
}

// Origins splits AllowOrigins into its trimmed, non-empty entries.
func (c Config) Origins() []string {
	var origins []string
	for _, o := range strings.Split(c.AllowOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
