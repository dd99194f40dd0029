package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/freeeve/settlers/pkg/catan"
	"github.com/freeeve/settlers/pkg/sei"
)

// ExternalOption configures an ExternalStrategy before launch.
type ExternalOption func(*ExternalStrategy)

// WithMoveTime sets the per-decision time budget passed to the engine.
func WithMoveTime(ms int) ExternalOption {
	return func(e *ExternalStrategy) {
		e.moveTimeMs = ms
	}
}

// WithTimeout sets how long to wait for an answer before sending stop.
func WithTimeout(d time.Duration) ExternalOption {
	return func(e *ExternalStrategy) {
		e.timeout = d
	}
}

// WithEngineOption queues a "setoption" command sent after the handshake.
func WithEngineOption(name, value string) ExternalOption {
	return func(e *ExternalStrategy) {
		e.options = append(e.options, engineOption{name: name, value: value})
	}
}

type engineOption struct {
	name  string
	value string
}

// ExternalStrategy delegates decisions to an external settlers engine. Any
// answer that fails to parse or is illegal in the current position is
// replaced by the heuristic's choice, and after a rejected action the rest
// of that turn is played by the heuristic.
type ExternalStrategy struct {
	engine     *sei.Engine
	moveTimeMs int
	timeout    time.Duration
	options    []engineOption

	fallback HeuristicStrategy
	memo     turnMemo
	rejected bool
}

// NewExternalStrategy starts the engine, performs the handshake and sends
// any queued options.
func NewExternalStrategy(enginePath string, opts ...ExternalOption) (*ExternalStrategy, error) {
	e := &ExternalStrategy{
		engine:     sei.NewEngine(enginePath),
		moveTimeMs: 1000,
		timeout:    5 * time.Second,
	}
	for _, o := range opts {
		o(e)
	}

	ctx, cancel := context.WithTimeout(context.Background(), e.timeout)
	defer cancel()
	if err := e.engine.Init(ctx); err != nil {
		return nil, fmt.Errorf("external strategy: %w", err)
	}
	for _, opt := range e.options {
		e.engine.SetOption(opt.name, opt.value)
	}
	if err := e.engine.IsReady(ctx); err != nil {
		e.engine.Close()
		return nil, fmt.Errorf("external strategy: %w", err)
	}
	e.engine.NewGame()
	return e, nil
}

// Name reports the engine's advertised name when it gave one.
func (e *ExternalStrategy) Name() string {
	if e.engine.ID.Name != "" {
		return "external:" + e.engine.ID.Name
	}
	return "external"
}

// Close shuts the engine down.
func (e *ExternalStrategy) Close() error {
	return e.engine.Close()
}

// query sends the position as seen by p and asks for one decision.
func (e *ExternalStrategy) query(gs *catan.GameState, p catan.PlayerID, decision string, args ...string) (string, error) {
	e.engine.Position(catan.EncodePosition(gs, p))

	ctx, cancel := context.WithTimeout(context.Background(), e.timeout)
	defer cancel()
	res, err := e.engine.Go(ctx, sei.GoParams{Decision: decision, Args: args, MoveTime: e.moveTimeMs})
	if err != nil {
		return "", err
	}
	if n := len(res.Infos); n > 0 {
		last := res.Infos[n-1]
		log.Debug().Str("decision", decision).Int("depth", last.Depth).Int("score", last.Score).
			Str("pv", last.PV).Msg("Engine search")
	}
	return strings.TrimSpace(res.BestAction), nil
}

func (e *ExternalStrategy) warn(decision, answer string, err error) {
	log.Warn().Err(err).Str("decision", decision).Str("answer", answer).Msg("External engine answer unusable, using heuristic")
}

func (e *ExternalStrategy) ChooseSetup(gs *catan.GameState, p catan.PlayerID) (catan.VertexID, catan.EdgeID) {
	answer, err := e.query(gs, p, sei.DecideSetup)
	if err == nil {
		var nums []int
		if nums, err = parseInts(strings.Fields(answer), 2); err == nil {
			v, edge := catan.VertexID(nums[0]), catan.EdgeID(nums[1])
			if err = gs.CheckSettlement(p, v, true); err == nil {
				if err = gs.CheckSetupRoad(p, v, edge); err == nil {
					return v, edge
				}
			}
		}
	}
	e.warn(sei.DecideSetup, answer, err)
	return e.fallback.ChooseSetup(gs, p)
}

func (e *ExternalStrategy) ProposeAction(gs *catan.GameState, p catan.PlayerID) catan.Action {
	if e.memo.turn != gs.Turn || e.memo.seat != p {
		e.rejected = false
	}
	e.memo.sync(gs, p)
	if e.rejected {
		return e.fallback.ProposeAction(gs, p)
	}

	answer, err := e.query(gs, p, sei.DecideAction)
	if err == nil {
		var a catan.Action
		if a, err = ParseCommand(answer); err == nil {
			return a
		}
	}
	e.warn(sei.DecideAction, answer, err)
	return e.fallback.ProposeAction(gs, p)
}

// ActionRejected hands the rest of the turn to the heuristic.
func (e *ExternalStrategy) ActionRejected(_ *catan.GameState, _ catan.PlayerID, a catan.Action, err error) {
	log.Debug().Err(err).Str("action", a.String()).Msg("External engine action rejected")
	e.rejected = true
}

func (e *ExternalStrategy) ChooseDiscard(gs *catan.GameState, p catan.PlayerID, n int) catan.Resources {
	answer, err := e.query(gs, p, sei.DecideDiscard, strconv.Itoa(n))
	if err == nil {
		var rs catan.Resources
		if rs, err = ParseResources(answer); err == nil {
			if rs.Total() == n && gs.Player(p).Resources.Covers(rs) {
				return rs
			}
			err = fmt.Errorf("need exactly %d held cards", n)
		}
	}
	e.warn(sei.DecideDiscard, answer, err)
	return e.fallback.ChooseDiscard(gs, p, n)
}

func (e *ExternalStrategy) ChooseRobberTarget(gs *catan.GameState, p catan.PlayerID) (catan.HexID, catan.PlayerID) {
	answer, err := e.query(gs, p, sei.DecideRobber)
	if err == nil {
		var h catan.HexID
		var victim catan.PlayerID
		if h, victim, err = parseRobber(strings.Fields(answer)); err == nil {
			if err = gs.CheckRobberMove(p, h, victim); err == nil {
				return h, victim
			}
		}
	}
	e.warn(sei.DecideRobber, answer, err)
	return e.fallback.ChooseRobberTarget(gs, p)
}

func (e *ExternalStrategy) AcceptTrade(gs *catan.GameState, p, from catan.PlayerID, offer, request catan.Resources) bool {
	answer, err := e.query(gs, p, sei.DecideTrade,
		strconv.Itoa(int(from)), FormatResources(offer), "for", FormatResources(request))
	if err != nil {
		e.warn(sei.DecideTrade, answer, err)
		return e.fallback.AcceptTrade(gs, p, from, offer, request)
	}
	switch strings.ToLower(answer) {
	case "yes", "y":
		return true
	case "no", "n":
		return false
	}
	e.warn(sei.DecideTrade, answer, fmt.Errorf("want yes or no"))
	return e.fallback.AcceptTrade(gs, p, from, offer, request)
}

// FormatResources writes a hand in the form ParseResources reads, such as
// "wood=2,ore=1". An empty hand is "none".
func FormatResources(rs catan.Resources) string {
	var parts []string
	for r, n := range rs {
		if n > 0 {
			parts = append(parts, fmt.Sprintf("%s=%d", catan.Resource(r), n))
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ",")
}
