package bot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/coder/quartz"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/freeeve/settlers/internal/logger"
	"github.com/freeeve/settlers/pkg/catan"
)

// Limits that keep a misbehaving strategy from stalling a game.
const (
	defaultMaxTurns   = 500
	maxActionsPerTurn = 100
	maxRejections     = 20
)

// ErrTradeDeclined is reported to a RejectionObserver when the partner of a
// proposed trade says no.
var ErrTradeDeclined = errors.New("trade declined")

// SeatNames are the default player names, in seat order.
var SeatNames = []string{"red", "blue", "white", "orange"}

// ArenaConfig configures a single bot-vs-bot game.
type ArenaConfig struct {
	GameName      string
	PlayerConfig  []string   // seat -> difficulty level
	Names         []string   // seat names; defaults to SeatNames
	Strategies    []Strategy // overrides PlayerConfig when set
	VictoryTarget int        // 0 = catan.DefaultVictoryTarget
	MaxTurns      int        // cap on turns before the game is abandoned
	Seed          int64      // 0 = random
	Timeout       time.Duration
	Clock         quartz.Clock              // nil = real clock
	Notifier      catan.Notifier            // nil = debug log
	OnStart       func(gs *catan.GameState) // called once the board is dealt
}

// ArenaResult describes the outcome of a completed arena game.
type ArenaResult struct {
	GameID      string        `json:"gameId"`
	GameName    string        `json:"gameName,omitempty"`
	Seed        int64         `json:"seed"`
	Winner      int           `json:"winner"` // seat, or -1 when nobody won
	WinnerName  string        `json:"winnerName,omitempty"`
	Turns       int           `json:"turns"`
	Points      []int         `json:"points"`
	Names       []string      `json:"names"`
	Strategies  []string      `json:"strategies"`
	LongestRoad int           `json:"longestRoad"`
	LargestArmy int           `json:"largestArmy"`
	Rejected    int           `json:"rejected"`
	TimedOut    bool          `json:"timedOut,omitempty"`
	Duration    time.Duration `json:"duration"`
	DiceStats   [13]int       `json:"diceStats"`
}

// arena holds one running game and its seats.
type arena struct {
	gs         *catan.GameState
	strategies []Strategy
	rng        *rand.Rand
	clock      quartz.Clock
	start      time.Time
	timeout    time.Duration
	log        zerolog.Logger
	result     *ArenaResult
}

// RunGame plays a full game between bot strategies. It stops when a player
// wins, after cfg.MaxTurns turns, or when cfg.Timeout of clock time has
// passed. Cancelling ctx aborts the game with ctx's error.
func RunGame(ctx context.Context, cfg ArenaConfig) (*ArenaResult, error) {
	if cfg.MaxTurns == 0 {
		cfg.MaxTurns = defaultMaxTurns
	}
	clock := cfg.Clock
	if clock == nil {
		clock = quartz.NewReal()
	}

	strategies, err := buildStrategies(cfg)
	if err != nil {
		return nil, err
	}
	if len(cfg.Strategies) == 0 {
		defer closeStrategies(strategies)
	}
	names := cfg.Names
	if len(names) == 0 {
		names = SeatNames[:len(strategies)]
	}
	if len(names) != len(strategies) {
		return nil, fmt.Errorf("arena: %d names for %d seats", len(names), len(strategies))
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = botInt63()
	}
	gameID := uuid.NewString()
	l := logger.ForGame(gameID)

	notifier := cfg.Notifier
	if notifier == nil {
		notifier = func(e catan.Event) {
			l.Debug().Str("event", string(e.Kind)).Int("player", int(e.Player)).Msg(e.Message)
		}
	}

	rng := rand.New(rand.NewSource(seed))
	gs, err := catan.NewGame(catan.Options{
		Names:         names,
		Rand:          rng,
		VictoryTarget: cfg.VictoryTarget,
		Notifier:      notifier,
	})
	if err != nil {
		return nil, err
	}

	a := &arena{
		gs:         gs,
		strategies: strategies,
		rng:        rng,
		clock:      clock,
		start:      clock.Now(),
		timeout:    cfg.Timeout,
		log:        l,
		result: &ArenaResult{
			GameID:   gameID,
			GameName: cfg.GameName,
			Seed:     seed,
			Names:    names,
		},
	}
	for _, s := range strategies {
		a.result.Strategies = append(a.result.Strategies, s.Name())
	}

	if cfg.OnStart != nil {
		cfg.OnStart(gs)
	}
	if err := a.setup(); err != nil {
		return nil, fmt.Errorf("setup: %w", err)
	}

	for !gs.IsGameOver() && gs.Turn < cfg.MaxTurns {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if a.expired() {
			break
		}
		if err := a.playTurn(); err != nil {
			return nil, fmt.Errorf("turn %d: %w", gs.Turn, err)
		}
	}

	a.finish()
	r := a.result
	switch {
	case r.Winner >= 0:
		l.Info().Str("winner", r.WinnerName).Int("turns", r.Turns).Msg("Arena game won")
	case r.TimedOut:
		l.Info().Int("turns", r.Turns).Dur("elapsed", r.Duration).Msg("Arena game timed out")
	default:
		l.Info().Int("turns", r.Turns).Msg("Arena game ended without a winner (turn limit)")
	}
	return r, nil
}

func buildStrategies(cfg ArenaConfig) ([]Strategy, error) {
	if len(cfg.Strategies) > 0 {
		return checkSeats(cfg.Strategies)
	}
	diffs := cfg.PlayerConfig
	if len(diffs) == 0 {
		diffs = ParsePlayerConfig("", catan.MaxPlayers)
	}
	strategies := make([]Strategy, len(diffs))
	for i, d := range diffs {
		strategies[i] = StrategyForDifficulty(d)
	}
	if _, err := checkSeats(strategies); err != nil {
		closeStrategies(strategies)
		return nil, err
	}
	return strategies, nil
}

// closeStrategies releases strategies that hold a process or model.
func closeStrategies(s []Strategy) {
	for _, st := range s {
		if c, ok := st.(io.Closer); ok {
			c.Close()
		}
	}
}

func checkSeats(s []Strategy) ([]Strategy, error) {
	if len(s) < catan.MinPlayers || len(s) > catan.MaxPlayers {
		return nil, fmt.Errorf("arena: need %d-%d seats, got %d", catan.MinPlayers, catan.MaxPlayers, len(s))
	}
	return s, nil
}

func (a *arena) expired() bool {
	if a.timeout <= 0 || a.clock.Since(a.start) < a.timeout {
		return false
	}
	a.result.TimedOut = true
	return true
}

// reject records a rejected decision and tells the strategy if it listens.
func (a *arena) reject(p catan.PlayerID, act catan.Action, err error) {
	a.result.Rejected++
	a.log.Debug().Err(err).Str("seat", a.gs.Player(p).Name).Str("action", act.String()).Msg("Action rejected")
	if o, ok := a.strategies[p].(RejectionObserver); ok {
		o.ActionRejected(a.gs, p, act, err)
	}
}

// setup runs the snake-order placements, replacing a rejected choice with the
// first legal spot.
func (a *arena) setup() error {
	gs := a.gs
	start := catan.StartingPlayer(a.rng, gs.NumPlayers())
	for _, p := range gs.SetupOrder(start) {
		v, e := a.strategies[p].ChooseSetup(gs, p)
		if _, err := gs.PlaceSetup(p, v, e); err != nil {
			a.reject(p, catan.BuildSettlement(v), err)
			v, e = firstSetup(gs, p)
			if _, err := gs.PlaceSetup(p, v, e); err != nil {
				return err
			}
		}
	}
	gs.FinishSetup(start)
	return nil
}

// playTurn rolls for the current player, resolves a 7, then lets the player
// act until it ends its turn.
func (a *arena) playTurn() error {
	gs := a.gs
	p := gs.Current
	s := a.strategies[p]

	roll, _, err := gs.Roll()
	if err != nil {
		return err
	}
	if roll == 7 {
		a.resolveSeven(p)
	}

	rejected := 0
	for i := 0; i < maxActionsPerTurn && !gs.IsGameOver(); i++ {
		if a.expired() {
			return nil
		}
		act := s.ProposeAction(gs, p)
		if act.Kind == catan.ActEndTurn {
			break
		}
		if err := a.apply(p, act); err != nil {
			a.reject(p, act, err)
			if rejected++; rejected >= maxRejections {
				break
			}
		}
	}
	if gs.IsGameOver() {
		return nil
	}
	return gs.EndTurn()
}

// apply performs act for p, asking the partner first for a player trade.
func (a *arena) apply(p catan.PlayerID, act catan.Action) error {
	gs := a.gs
	if act.Kind == catan.ActTradePlayer {
		q := act.Partner
		if q < 0 || int(q) >= gs.NumPlayers() || q == p {
			return fmt.Errorf("%w: no partner %d", catan.ErrInvalidTrade, q)
		}
		if !a.strategies[q].AcceptTrade(gs, q, p, act.Offer, act.Request) {
			return ErrTradeDeclined
		}
	}
	return gs.Apply(p, act)
}

// resolveSeven collects discards from every seat over the limit, then has p
// move the robber.
func (a *arena) resolveSeven(p catan.PlayerID) {
	gs := a.gs
	for i := range gs.Players {
		q := catan.PlayerID(i)
		n := gs.DiscardCount(q)
		if n == 0 {
			continue
		}
		hand := a.strategies[q].ChooseDiscard(gs, q, n)
		if err := gs.Discard(q, hand); err != nil {
			a.log.Debug().Err(err).Str("seat", gs.Player(q).Name).Msg("Discard rejected, discarding automatically")
			a.result.Rejected++
			gs.AutoDiscard(q)
		}
	}

	h, victim := a.strategies[p].ChooseRobberTarget(gs, p)
	if _, err := gs.MoveRobber(p, h, victim); err != nil {
		a.reject(p, catan.PlayKnight(h, victim), err)
		// Any other hex with a random victim is always legal.
		_, _ = gs.MoveRobber(p, pick(gs.RobberSpots()), catan.RandomVictim)
	}
}

func (a *arena) finish() {
	gs := a.gs
	r := a.result
	r.Turns = gs.Turn
	r.Duration = a.clock.Since(a.start)
	r.DiceStats = gs.DiceStats
	r.Winner = int(gs.Winner())
	if r.Winner >= 0 {
		r.WinnerName = gs.Player(gs.Winner()).Name
	}
	r.LongestRoad = int(gs.LongestRoadHolder())
	r.LargestArmy = int(gs.LargestArmyHolder())
	r.Points = make([]int, gs.NumPlayers())
	for i := range gs.Players {
		r.Points[i] = gs.Players[i].VictoryPoints()
	}
}
