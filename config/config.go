package config

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"disastle/meta"

	"github.com/caarlos0/env/v11"
)

// Config holds the command line configuration.
type Config struct {
	Players      []string `env:"DISASTLE_PLAYERS"       envSeparator:"," envDefault:"alice,bob"`
	Disasters    int      `env:"DISASTLE_DISASTERS"`
	Catastrophes int      `env:"DISASTLE_CATASTROPHES"`
	SafeCards    int      `env:"DISASTLE_SAFE_CARDS"`
	ShopSize     int      `env:"DISASTLE_SHOP_SIZE"`

	// Seed fixes the random source; zero seeds from the clock.
	Seed     uint64 `env:"DISASTLE_SEED"`
	Rounds   int    `env:"DISASTLE_ROUNDS"`
	LogLevel string `env:"DISASTLE_LOG_LEVEL"        envDefault:"info"`
	Pretty   bool   `env:"DISASTLE_LOG_PRETTY"       envDefault:"true"`

	ReportDir string `env:"DISASTLE_REPORT_DIR"`

	// Optional catalog tables replacing the built-in ones.
	RoomsFile        string `env:"DISASTLE_ROOMS_FILE"`
	DisastersFile    string `env:"DISASTLE_DISASTERS_FILE"`
	CatastrophesFile string `env:"DISASTLE_CATASTROPHES_FILE"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// ParseConfig reads the environment, then lets flags override it.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := Config{
		Disasters:    meta.Disasters,
		Catastrophes: meta.Catastrophes,
		SafeCards:    meta.SafeCards,
		ShopSize:     meta.ShopSize,
	}
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	players := strings.Join(cfg.Players, ",")
	fs.StringVar(&players, "players", players, "comma separated player names")
	fs.IntVar(&cfg.Disasters, "disasters", cfg.Disasters, "disasters shuffled into the deck")
	fs.IntVar(&cfg.Catastrophes, "catastrophes", cfg.Catastrophes, "catastrophes shuffled into the deck")
	fs.IntVar(&cfg.SafeCards, "safe", cfg.SafeCards, "rooms kept free of disasters on top of the deck")
	fs.IntVar(&cfg.ShopSize, "shop", cfg.ShopSize, "rooms dealt to the shop each round")
	fs.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "random seed (0 uses the clock)")
	fs.IntVar(&cfg.Rounds, "rounds", cfg.Rounds, "rounds to play with random legal actions")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	fs.BoolVar(&cfg.Pretty, "pretty", cfg.Pretty, "human readable console logs")
	fs.StringVar(&cfg.ReportDir, "report", cfg.ReportDir, "directory for forecast csv reports")
	fs.StringVar(&cfg.RoomsFile, "rooms", cfg.RoomsFile, "room table json file")
	fs.StringVar(&cfg.DisastersFile, "disaster-table", cfg.DisastersFile, "disaster table json file")
	fs.StringVar(&cfg.CatastrophesFile, "catastrophe-table", cfg.CatastrophesFile, "catastrophe table json file")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg.Players = nil
	for _, name := range strings.Split(players, ",") {
		if name = strings.TrimSpace(name); name != "" {
			cfg.Players = append(cfg.Players, name)
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch {
	case len(c.Players) == 0:
		return errors.New("at least one player is required")
	case c.ShopSize <= 0:
		return fmt.Errorf("shop size must be positive, got %d", c.ShopSize)
	case c.SafeCards < c.ShopSize:
		return fmt.Errorf("%d safe rooms cannot cover a shop of %d", c.SafeCards, c.ShopSize)
	case c.Disasters < 0 || c.Catastrophes < 0:
		return errors.New("disaster counts cannot be negative")
	case c.Rounds < 0:
		return fmt.Errorf("rounds must not be negative, got %d", c.Rounds)
	case (c.DisastersFile == "") != (c.CatastrophesFile == ""):
		return errors.New("disaster and catastrophe tables must be given together")
	}
	return nil
}
