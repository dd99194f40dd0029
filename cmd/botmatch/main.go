package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"sync"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/freeeve/settlers/internal/bot"
	"github.com/freeeve/settlers/internal/config"
	"github.com/freeeve/settlers/internal/logger"
)

type CLI struct {
	Players  string        `short:"p" help:"Seat config (e.g. 0=medium,*=easy)"`
	Matchup  string        `help:"Shorthand tier-vs-tier (e.g. medium-vs-easy)"`
	Seats    int           `default:"4" help:"Number of seats (3 or 4)"`
	Games    int           `short:"n" default:"1" help:"Number of games to run"`
	Workers  int           `default:"1" help:"Concurrency (parallel games)"`
	MaxTurns int           `help:"Turn cap before a game is abandoned (0 = config)"`
	VP       int           `help:"Victory point target (0 = config)"`
	Seed     int64         `help:"Base seed (0 = config or random)"`
	Timeout  time.Duration `help:"Wall clock budget per game (0 = none)"`
	Config   string        `type:"path" help:"YAML match file"`
	JSON     bool          `help:"Output results as JSON"`
}

var headerStyle = lipgloss.NewStyle().Bold(true)

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("botmatch"),
		kong.Description("Run bot-vs-bot games and summarize the results."))

	logger.Init()
	cfg, err := config.LoadFile(cli.Config)
	kctx.FatalIfErrorf(err)
	bot.GonnxModelPath = cfg.ModelPath
	bot.ExternalEnginePath = cfg.EnginePath

	seats := resolveSeats(cli, cfg)
	if cli.MaxTurns == 0 {
		cli.MaxTurns = cfg.MaxTurns
	}
	if cli.VP == 0 {
		cli.VP = cfg.VictoryTarget
	}
	if cli.Seed == 0 {
		cli.Seed = cfg.Seed
	}
	if cli.Workers < 1 {
		cli.Workers = 1
	}
	// The shared bot random source is only deterministic single-threaded.
	if cli.Seed != 0 && cli.Workers == 1 {
		bot.SeedBotRng(cli.Seed)
	}

	label := buildLabel(seats)
	names := cfg.SeatNames()
	if len(names) != len(seats) {
		names = nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		log.Info().Msg("Shutting down...")
		cancel()
	}()

	results := make([]*bot.ArenaResult, cli.Games)
	var mu sync.Mutex
	errCount := 0

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cli.Workers)
	for i := 0; i < cli.Games; i++ {
		g.Go(func() error {
			gameSeed := cli.Seed
			if gameSeed != 0 {
				gameSeed += int64(i)
			}
			result, err := bot.RunGame(gctx, bot.ArenaConfig{
				GameName:      fmt.Sprintf("%s-%d", label, i+1),
				PlayerConfig:  seats,
				Names:         names,
				VictoryTarget: cli.VP,
				MaxTurns:      cli.MaxTurns,
				Seed:          gameSeed,
				Timeout:       cli.Timeout,
			})
			if err != nil {
				log.Error().Err(err).Int("game", i+1).Msg("Game failed")
				mu.Lock()
				errCount++
				mu.Unlock()
				return nil
			}

			mu.Lock()
			results[i] = result
			mu.Unlock()

			log.Info().Int("game", i+1).Str("winner", result.WinnerName).Int("turns", result.Turns).Msg("Game completed")
			return nil
		})
	}
	_ = g.Wait()

	if cli.JSON {
		printJSON(results, cli.Games, errCount)
	} else {
		printSummary(results, seats, cli.MaxTurns, errCount, label)
	}
}

// resolveSeats picks the seat difficulties from flags, then the match file.
func resolveSeats(cli CLI, cfg *config.Config) []string {
	switch {
	case cli.Players != "":
		return bot.ParsePlayerConfig(cli.Players, cli.Seats)
	case cli.Matchup != "":
		return parseTierVsTier(cli.Matchup, cli.Seats)
	case len(cfg.SeatDifficulties()) > 0:
		return cfg.SeatDifficulties()
	default:
		return bot.ParsePlayerConfig(cfg.Players, cli.Seats)
	}
}

// parseTierVsTier handles "hard-vs-easy" style matchup strings.
func parseTierVsTier(s string, n int) []string {
	parts := strings.SplitN(s, "-vs-", 2)
	if len(parts) != 2 {
		// Treat as uniform difficulty
		return bot.ParseMatchup(s, n)
	}
	// First tier goes to seat 0, rest get second tier
	return bot.ParsePlayerConfig(fmt.Sprintf("0=%s,*=%s", parts[0], parts[1]), n)
}

func buildLabel(seats []string) string {
	diffs := make(map[string]int)
	for _, d := range seats {
		diffs[d]++
	}
	if len(diffs) == 1 {
		return "all-" + seats[0]
	}
	var parts []string
	for d, c := range diffs {
		name := d
		if c > 1 {
			name += "s"
		}
		parts = append(parts, fmt.Sprintf("%d %s", c, name))
	}
	sort.Strings(parts)
	return strings.Join(parts, " vs ")
}

// seatStats aggregates one seat's results across games.
type seatStats struct {
	wins        int
	points      int
	longestRoad int
	largestArmy int
	games       int
}

func aggregate(results []*bot.ArenaResult, seats int) (stats []seatStats, completed, unfinished, turns int) {
	stats = make([]seatStats, seats)
	for _, r := range results {
		if r == nil {
			continue
		}
		completed++
		turns += r.Turns
		if r.Winner < 0 {
			unfinished++
		}
		for i := range stats {
			s := &stats[i]
			s.games++
			if i < len(r.Points) {
				s.points += r.Points[i]
			}
			if r.Winner == i {
				s.wins++
			}
			if r.LongestRoad == i {
				s.longestRoad++
			}
			if r.LargestArmy == i {
				s.largestArmy++
			}
		}
	}
	return stats, completed, unfinished, turns
}

func printSummary(results []*bot.ArenaResult, seats []string, maxTurns, errCount int, label string) {
	stats, completed, unfinished, turns := aggregate(results, len(seats))

	fmt.Println()
	fmt.Println(headerStyle.Render(fmt.Sprintf("Results: %s (%d games, max %d turns)", label, completed, maxTurns)))
	if errCount > 0 {
		fmt.Printf("  (%d games failed)\n", errCount)
	}
	if completed > 0 {
		fmt.Printf("  avg turns: %.1f, no winner: %d\n", float64(turns)/float64(completed), unfinished)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  seat\tbot\twins\tavg VP\tlongest road\tlargest army")
	for i, s := range stats {
		avg := 0.0
		if s.games > 0 {
			avg = float64(s.points) / float64(s.games)
		}
		fmt.Fprintf(w, "  %d\t%s\t%d\t%.1f\t%d\t%d\n", i, seats[i], s.wins, avg, s.longestRoad, s.largestArmy)
	}
	w.Flush()
}

func printJSON(results []*bot.ArenaResult, total, errCount int) {
	out := struct {
		Total   int                `json:"total"`
		Errors  int                `json:"errors"`
		Results []*bot.ArenaResult `json:"results"`
	}{
		Total:   total,
		Errors:  errCount,
		Results: results,
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.Encode(out)
}
