package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"

	"github.com/freeeve/settlers/internal/bot"
	"github.com/freeeve/settlers/internal/config"
	"github.com/freeeve/settlers/internal/logger"
	"github.com/freeeve/settlers/pkg/catan"
)

type CLI struct {
	Seat   int    `default:"0" help:"Seat for the human player"`
	Name   string `default:"you" help:"Human player name"`
	Bots   string `help:"Difficulty for bot seats (random, easy, medium, hard-gonnx, external); default from the match file seats, else medium"`
	Seats  int    `default:"4" help:"Number of seats (3 or 4); ignored when the match file lists seats"`
	VP     int    `help:"Victory point target (0 = config)"`
	Seed   int64  `help:"Game seed (0 = config or random)"`
	Watch  bool   `help:"Only bots play; print the game as it happens"`
	Config string `type:"path" help:"YAML match file"`
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	eventStyles = map[catan.EventKind]lipgloss.Style{
		catan.EventRoll:     lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		catan.EventProduce:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		catan.EventRobber:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		catan.EventSteal:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		catan.EventBonus:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		catan.EventGameOver: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		catan.EventTurn:     lipgloss.NewStyle().Bold(true),
	}
)

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("catan"),
		kong.Description("Play a game against the bots on the terminal."))

	logger.InitWriter(os.Stderr)
	cfg, err := config.LoadFile(cli.Config)
	kctx.FatalIfErrorf(err)
	bot.GonnxModelPath = cfg.ModelPath
	bot.ExternalEnginePath = cfg.EnginePath

	difficulties, seatNames := resolveSeats(cli, cfg)
	n := len(difficulties)
	if n < catan.MinPlayers || n > catan.MaxPlayers {
		kctx.Fatalf("--seats must be %d-%d", catan.MinPlayers, catan.MaxPlayers)
	}
	if !cli.Watch && (cli.Seat < 0 || cli.Seat >= n) {
		kctx.Fatalf("--seat must be 0-%d", n-1)
	}
	if cli.VP == 0 {
		cli.VP = cfg.VictoryTarget
	}
	if cli.Seed == 0 {
		cli.Seed = cfg.Seed
	}

	strategies, names := buildSeats(cli, difficulties, seatNames, os.Stdin, os.Stdout)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		cancel()
	}()

	result, err := bot.RunGame(ctx, bot.ArenaConfig{
		GameName:      "interactive",
		Strategies:    strategies,
		Names:         names,
		VictoryTarget: cli.VP,
		MaxTurns:      cfg.MaxTurns,
		Seed:          cli.Seed,
		Notifier:      printEvent(os.Stdout),
		OnStart:       func(gs *catan.GameState) { printBoard(os.Stdout, gs) },
	})
	kctx.FatalIfErrorf(err)
	printResult(os.Stdout, result)
}

// resolveSeats returns each seat's bot difficulty and, when the match file
// names every seat, their names. --bots overrides the match file.
func resolveSeats(cli CLI, cfg *config.Config) ([]string, []string) {
	if cli.Bots == "" && len(cfg.Seats) > 0 {
		return cfg.SeatDifficulties(), cfg.SeatNames()
	}
	bots := cli.Bots
	if bots == "" {
		bots = "medium"
	}
	return bot.ParseMatchup(bots, cli.Seats), nil
}

// buildSeats puts a human on cli.Seat (unless watching) and bots of the
// given difficulties elsewhere.
func buildSeats(cli CLI, difficulties, seatNames []string, in io.Reader, out io.Writer) ([]bot.Strategy, []string) {
	strategies := make([]bot.Strategy, len(difficulties))
	names := make([]string, len(difficulties))
	copy(names, bot.SeatNames)
	if len(seatNames) == len(names) {
		copy(names, seatNames)
	}
	for i := range strategies {
		if !cli.Watch && i == cli.Seat {
			strategies[i] = bot.NewHumanStrategy(in, out)
			names[i] = cli.Name
			continue
		}
		strategies[i] = bot.StrategyForDifficulty(difficulties[i])
		names[i] = fmt.Sprintf("%s (%s)", names[i], strategies[i].Name())
	}
	return strategies, names
}

func printEvent(w io.Writer) catan.Notifier {
	return func(e catan.Event) {
		style, ok := eventStyles[e.Kind]
		if !ok {
			fmt.Fprintln(w, e.Message)
			return
		}
		fmt.Fprintln(w, style.Render(e.Message))
	}
}

// printBoard lists every hex with its terrain, number and corners, then the
// harbours, so vertex and edge ids can be typed at the prompt.
func printBoard(w io.Writer, gs *catan.GameState) {
	topo := gs.Board.Topo
	fmt.Fprintln(w, titleStyle.Render("Board"))
	for _, slot := range topo.Hexes {
		tile := gs.Board.Tiles[slot.ID]
		robber := ""
		if tile.Robber {
			robber = " (robber)"
		}
		fmt.Fprintf(w, "  hex %2d  %-6s %2d%s  corners %v  edges %v\n",
			slot.ID, tile.Resource, tile.Number, robber, slot.Vertices, slot.Edges)
	}
	fmt.Fprintln(w, titleStyle.Render("Harbours"))
	for _, p := range topo.Ports {
		fmt.Fprintf(w, "  %-8s at vertices %d and %d\n", p.Kind, p.Vertices[0], p.Vertices[1])
	}
	fmt.Fprintln(w, "type help at your turn for commands")
}

func printResult(w io.Writer, r *bot.ArenaResult) {
	fmt.Fprintln(w)
	switch {
	case r.Winner >= 0:
		fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("%s wins after %d turns", r.WinnerName, r.Turns)))
	default:
		fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("No winner after %d turns", r.Turns)))
	}
	for i, name := range r.Names {
		fmt.Fprintf(w, "  %-20s %2d points\n", name, r.Points[i])
	}
}
