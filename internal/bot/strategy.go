package bot

import (
	"github.com/rs/zerolog/log"

	"github.com/freeeve/settlers/pkg/catan"
)

// Strategy makes every decision for one seat. The driver calls it with the
// live game state; implementations must not mutate gs (clone it to look
// ahead).
type Strategy interface {
	Name() string
	// ChooseSetup picks a setup settlement and a road touching it.
	ChooseSetup(gs *catan.GameState, p catan.PlayerID) (catan.VertexID, catan.EdgeID)
	// ProposeAction returns the next action of p's turn. Returning EndTurn
	// ends the turn.
	ProposeAction(gs *catan.GameState, p catan.PlayerID) catan.Action
	// ChooseDiscard returns exactly n cards from p's hand.
	ChooseDiscard(gs *catan.GameState, p catan.PlayerID, n int) catan.Resources
	// ChooseRobberTarget picks where the robber goes and whom to rob
	// (catan.NoPlayer for nobody).
	ChooseRobberTarget(gs *catan.GameState, p catan.PlayerID) (catan.HexID, catan.PlayerID)
	// AcceptTrade answers a trade proposed by another seat: p would give
	// request and receive offer.
	AcceptTrade(gs *catan.GameState, p, from catan.PlayerID, offer, request catan.Resources) bool
}

// RejectionObserver is told when one of its actions was rejected by the
// engine. Not all strategies care; use a type assertion to check.
type RejectionObserver interface {
	ActionRejected(gs *catan.GameState, p catan.PlayerID, a catan.Action, err error)
}

// GonnxModelPath is the directory containing value.onnx. Set at startup from
// the GONNX_MODEL_PATH env var.
var GonnxModelPath string

// ExternalEnginePath is the settlers engine binary used by the "external"
// difficulty. Set at startup from the SETTLERS_ENGINE env var.
var ExternalEnginePath string

// Difficulties lists the names accepted by StrategyForDifficulty.
var Difficulties = []string{"random", "easy", "medium", "hard-gonnx", "external"}

// StrategyForDifficulty returns the appropriate strategy for a bot difficulty level.
func StrategyForDifficulty(difficulty string) Strategy {
	switch difficulty {
	case "random":
		return &RandomStrategy{}
	case "easy":
		return &GreedyStrategy{}
	case "hard-gonnx", "hard":
		return newGonnxOrFallback()
	case "medium":
		return &HeuristicStrategy{}
	case "external":
		return newExternalOrFallback()
	default:
		log.Warn().Str("difficulty", difficulty).Msg("Unknown difficulty, using medium")
		return &HeuristicStrategy{}
	}
}

// newExternalOrFallback starts the configured engine, or returns the
// heuristic when no engine is configured or it fails to start.
func newExternalOrFallback() Strategy {
	if ExternalEnginePath == "" {
		log.Warn().Msg("External difficulty requested but no engine path set, using medium")
		return &HeuristicStrategy{}
	}
	es, err := NewExternalStrategy(ExternalEnginePath)
	if err != nil {
		log.Warn().Err(err).Str("engine", ExternalEnginePath).Msg("External engine failed to start, using medium")
		return &HeuristicStrategy{}
	}
	return es
}

// firstSetup returns the first legal setup placement, used when a strategy
// returns something the engine rejects.
func firstSetup(gs *catan.GameState, p catan.PlayerID) (catan.VertexID, catan.EdgeID) {
	spots := gs.SetupSettlements(p)
	if len(spots) == 0 {
		return catan.NoVertex, catan.NoEdge
	}
	v := spots[0]
	roads := gs.SetupRoads(p, v)
	if len(roads) == 0 {
		return v, catan.NoEdge
	}
	return v, roads[0]
}
