// Command selfplay plays bot-vs-bot games and writes one JSONL record per
// game: every turn's position as seen by the seat to move, with the encoded
// value-network features, plus the final outcome. The records are training
// data for the value.onnx model used by the hard-gonnx bots.
//
// Usage:
//
//	go run ./cmd/selfplay -n 100 --workers 8 -o games.jsonl
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/freeeve/settlers/internal/bot"
	"github.com/freeeve/settlers/internal/bot/neural"
	"github.com/freeeve/settlers/internal/config"
	"github.com/freeeve/settlers/internal/logger"
	"github.com/freeeve/settlers/pkg/catan"
)

type CLI struct {
	Players  string `short:"p" help:"Seat config (e.g. 0=medium,*=easy; default from config)"`
	Seats    int    `default:"4" help:"Number of seats (3 or 4)"`
	Games    int    `short:"n" default:"10" help:"Number of games to play"`
	Workers  int    `default:"1" help:"Parallel games"`
	MaxTurns int    `help:"Turn cap (0 = config)"`
	Seed     int64  `help:"Base seed; game i uses seed+i (0 = random)"`
	Output   string `short:"o" default:"-" help:"Output file (- for stdout)"`
	Features bool   `default:"true" negatable:"" help:"Include encoded value-network features"`
	Config   string `type:"path" help:"YAML match file"`
}

// gameRecord is one finished game.
type gameRecord struct {
	GameID      string           `json:"game_id"`
	Seed        int64            `json:"seed"`
	Strategies  []string         `json:"strategies"`
	Names       []string         `json:"names"`
	Winner      *int             `json:"winner"` // null when nobody won
	Turns       int              `json:"turns"`
	FinalPoints []int            `json:"final_points"`
	Positions   []positionRecord `json:"positions"`
}

// positionRecord is the board at the start of one turn.
type positionRecord struct {
	Turn     int       `json:"turn"`
	Seat     int       `json:"seat"`
	Position string    `json:"position"`
	Points   []int     `json:"points"`
	Features []float32 `json:"features,omitempty"`
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("selfplay"),
		kong.Description("Generate self-play training data."))

	logger.Init()
	cfg, err := config.LoadFile(cli.Config)
	kctx.FatalIfErrorf(err)
	bot.GonnxModelPath = cfg.ModelPath
	bot.ExternalEnginePath = cfg.EnginePath

	if cli.MaxTurns == 0 {
		cli.MaxTurns = cfg.MaxTurns
	}
	if cli.Workers < 1 {
		cli.Workers = 1
	}

	out := io.Writer(os.Stdout)
	if cli.Output != "-" {
		f, err := os.Create(cli.Output)
		kctx.FatalIfErrorf(err)
		defer f.Close()
		out = f
	}
	w := bufio.NewWriter(out)
	defer w.Flush()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		log.Info().Msg("Shutting down...")
		cancel()
	}()

	seats := resolveSeats(cli, cfg)
	names := cfg.SeatNames()
	if len(names) != len(seats) {
		names = nil
	}
	written, err := run(ctx, cli, seats, names, w)
	log.Info().Int("games", written).Str("output", cli.Output).Msg("Self-play finished")
	kctx.FatalIfErrorf(err)
}

// resolveSeats picks the seat difficulties from --players, then the match
// file's seat list, then its players string.
func resolveSeats(cli CLI, cfg *config.Config) []string {
	switch {
	case cli.Players != "":
		return bot.ParsePlayerConfig(cli.Players, cli.Seats)
	case len(cfg.SeatDifficulties()) > 0:
		return cfg.SeatDifficulties()
	default:
		return bot.ParsePlayerConfig(cfg.Players, cli.Seats)
	}
}

// run plays cli.Games games on cli.Workers goroutines and writes each record
// as soon as its game ends. Failed games are logged and skipped.
func run(ctx context.Context, cli CLI, seats, names []string, w io.Writer) (int, error) {
	var mu sync.Mutex
	enc := json.NewEncoder(w)
	written := 0

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cli.Workers)
	for i := 0; i < cli.Games; i++ {
		g.Go(func() error {
			seed := cli.Seed
			if seed != 0 {
				seed += int64(i)
			}
			rec, err := playOne(gctx, bot.ArenaConfig{
				GameName:     fmt.Sprintf("selfplay-%d", i+1),
				PlayerConfig: seats,
				Names:        names,
				MaxTurns:     cli.MaxTurns,
				Seed:         seed,
			}, cli.Features)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				log.Error().Err(err).Int("game", i+1).Msg("Self-play game failed")
				return nil
			}

			mu.Lock()
			defer mu.Unlock()
			if err := enc.Encode(rec); err != nil {
				return fmt.Errorf("write game %d: %w", i+1, err)
			}
			written++
			return nil
		})
	}
	err := g.Wait()
	return written, err
}

// playOne runs one game, snapshotting the position each time a turn starts.
func playOne(ctx context.Context, cfg bot.ArenaConfig, features bool) (*gameRecord, error) {
	var gs *catan.GameState
	var positions []positionRecord

	cfg.OnStart = func(g *catan.GameState) { gs = g }
	cfg.Notifier = func(e catan.Event) {
		if e.Kind != catan.EventTurn || gs == nil {
			return
		}
		pr := positionRecord{
			Turn:     gs.Turn,
			Seat:     int(e.Player),
			Position: catan.EncodePosition(gs, e.Player),
			Points:   points(gs),
		}
		if features {
			pr.Features = neural.EncodeState(gs, e.Player)
		}
		positions = append(positions, pr)
	}

	result, err := bot.RunGame(ctx, cfg)
	if err != nil {
		return nil, err
	}
	rec := &gameRecord{
		GameID:      result.GameID,
		Seed:        result.Seed,
		Strategies:  result.Strategies,
		Names:       result.Names,
		Turns:       result.Turns,
		FinalPoints: result.Points,
		Positions:   positions,
	}
	if result.Winner >= 0 {
		winner := result.Winner
		rec.Winner = &winner
	}
	return rec, nil
}

// points returns every seat's full score.
func points(gs *catan.GameState) []int {
	out := make([]int, gs.NumPlayers())
	for i := range gs.Players {
		out[i] = gs.Players[i].VictoryPoints()
	}
	return out
}
