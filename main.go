package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"disastle/config"
	"disastle/disaster"
	"disastle/game"
	"disastle/report"
	"disastle/room"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

func main() {
	cfg, err := config.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	setupLogging(cfg)

	if err := run(cfg); err != nil {
		log.Fatal().Err(err).Msg("disastle failed")
	}
}

func setupLogging(cfg config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if cfg.Pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

func loadCatalogs(cfg config.Config) (*room.Catalog, *disaster.Catalog, error) {
	rooms, disasters := room.Standard(), disaster.Standard()
	if cfg.RoomsFile != "" {
		f, err := os.Open(cfg.RoomsFile)
		if err != nil {
			return nil, nil, err
		}
		defer f.Close()
		if rooms, err = room.LoadCatalog(f); err != nil {
			return nil, nil, fmt.Errorf("%s: %w", cfg.RoomsFile, err)
		}
	}
	if cfg.DisastersFile != "" {
		d, err := os.Open(cfg.DisastersFile)
		if err != nil {
			return nil, nil, err
		}
		defer d.Close()
		c, err := os.Open(cfg.CatastrophesFile)
		if err != nil {
			return nil, nil, err
		}
		defer c.Close()
		if disasters, err = disaster.LoadCatalog(d, c); err != nil {
			return nil, nil, err
		}
	}
	return rooms, disasters, nil
}

// recorder collects the forecast of every round for the report.
type recorder struct {
	draws    []report.DrawRecord
	damages  []report.DamageRecord
	expected []report.ExpectedRecord
}

func (r *recorder) record(g *game.Game) error {
	state := g.ForecastState()
	draws, err := g.Forecaster().DrawDistribution(state)
	if err != nil {
		return err
	}
	r.draws = append(r.draws, report.DrawRecords(g.Round(), draws)...)

	for _, id := range g.TurnOrder() {
		c, err := g.Castle(id)
		if err != nil {
			return err
		}
		totals := c.ConnectorTotals()
		dist, err := g.Forecaster().DamageDistribution(state, totals, totals.Wild)
		if err != nil {
			return err
		}
		expected := disaster.Damage{
			Diamond: dist.Diamond.ExpectedValue(),
			Cross:   dist.Cross.ExpectedValue(),
			Moon:    dist.Moon.ExpectedValue(),
			Total:   dist.Total.ExpectedValue(),
		}
		r.damages = append(r.damages, report.DamageRecords(g.Round(), id, dist)...)
		r.expected = append(r.expected, report.ExpectedRecord{Round: g.Round(), Player: id, Damage: expected})

		log.Info().Int("round", g.Round()).Str("player", id).Int("rooms", c.Len()).
			Float64("expected_damage", expected.Total).Msg("forecast")
	}
	return nil
}

func (r *recorder) write(dir string) error {
	w, err := report.NewWriter(dir)
	if err != nil {
		return err
	}
	if err := w.WriteDrawRecords(r.draws); err != nil {
		return err
	}
	if err := w.WriteDamageRecords(r.damages); err != nil {
		return err
	}
	if err := w.WriteExpectedRecords(r.expected); err != nil {
		return err
	}
	log.Info().Str("dir", w.Dir()).Msg("report written")
	return nil
}

func run(cfg config.Config) error {
	rooms, disasters, err := loadCatalogs(cfg)
	if err != nil {
		return err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewSource(seed))

	thrones := rooms.Thrones()
	if len(cfg.Players) > len(thrones) {
		return fmt.Errorf("%d players but only %d throne rooms", len(cfg.Players), len(thrones))
	}
	seats := make([]game.Seat, 0, len(cfg.Players))
	for i, name := range cfg.Players {
		seats = append(seats, game.Seat{ID: name, Name: name, Throne: thrones[i]})
	}

	g, err := game.New(rng, rooms, disasters, seats,
		game.WithShopSize(cfg.ShopSize),
		game.WithSafeCards(cfg.SafeCards),
		game.WithDisasters(cfg.Disasters),
		game.WithCatastrophes(cfg.Catastrophes),
	)
	if err != nil {
		return err
	}
	log.Info().Str("game", g.ID().String()).Uint64("seed", seed).Ints("shop", g.Shop()).Msg("opening shop")

	rec := &recorder{}
	if err := rec.record(g); err != nil {
		return err
	}
	for g.Round() < cfg.Rounds && g.Phase() != game.PhaseOver {
		round := g.Round()
		for g.Round() == round && g.Phase() != game.PhaseOver {
			if err := step(g, rng); err != nil {
				return err
			}
		}
		if err := rec.record(g); err != nil {
			return err
		}
	}
	if g.Phase() == game.PhaseOver {
		log.Info().Int("rounds", g.Round()).Strs("resolved", g.Resolved()).Msg("all disasters resolved")
	}

	if cfg.ReportDir == "" {
		return nil
	}
	return rec.write(cfg.ReportDir)
}

// step plays one uniformly random legal action.
func step(g *game.Game, rng *rand.Rand) error {
	players := g.TurnOrder()
	if g.Phase() == game.PhaseMain {
		players = []string{g.Player()}
	}
	for _, id := range players {
		actions, err := g.LegalActions(id)
		if err != nil {
			return err
		}
		if len(actions) == 0 {
			continue
		}
		action := actions[rng.Intn(len(actions))]
		log.Debug().Stringer("action", action).Msg("playing")
		return g.Play(action)
	}
	return errors.New("no player can act")
}
