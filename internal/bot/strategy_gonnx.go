package bot

import (
	"errors"
	"fmt"
	"math/rand"
	"path/filepath"
	"sync"

	gonnx "github.com/advancedclimatesystems/gonnx"
	"github.com/rs/zerolog/log"

	"github.com/freeeve/settlers/internal/bot/neural"
	"github.com/freeeve/settlers/pkg/catan"
)

// Model file and tensor names expected by GonnxStrategy.
const (
	valueModelFile = "value.onnx"
	valueInput     = "state"
	valueOutput    = "value"
)

// newGonnxOrFallback attempts to create a GonnxStrategy. If loading fails,
// it falls back to HeuristicStrategy.
func newGonnxOrFallback() Strategy {
	s, err := newGonnxStrategy()
	if err != nil {
		log.Warn().Err(err).Msg("hard-gonnx requested but model load failed, falling back to medium")
		return &HeuristicStrategy{}
	}
	return s
}

// GonnxStrategy uses gonnx (pure Go ONNX runtime) to score the position after
// each legal action with a value network and plays the best one. Setup,
// discards, robber moves and trade answers use the heuristic bot.
type GonnxStrategy struct {
	HeuristicStrategy

	value *gonnx.Model
	mu    sync.Mutex
}

func newGonnxStrategy() (*GonnxStrategy, error) {
	path := GonnxModelPath
	if path == "" {
		path = "models"
	}
	value, err := gonnx.NewModelFromFile(filepath.Join(path, valueModelFile))
	if err != nil {
		return nil, err
	}
	return &GonnxStrategy{value: value}, nil
}

func (s *GonnxStrategy) Name() string { return "hard-gonnx" }

// ProposeAction plays every candidate on a copy of the game, evaluates the
// resulting positions in one batch, and returns the highest valued action.
// Ending the turn is always a candidate, scored on the current position.
func (s *GonnxStrategy) ProposeAction(gs *catan.GameState, p catan.PlayerID) catan.Action {
	candidates := neural.ValidActions(gs, p)
	if len(candidates) == 0 {
		return catan.EndTurn()
	}

	states := [][]float32{neural.EncodeState(gs, p)}
	actions := []catan.Action{catan.EndTurn()}
	for _, a := range candidates {
		sim := gs.Clone()
		sim.SetRand(rand.New(rand.NewSource(botInt63())))
		if err := sim.Apply(p, a); err != nil {
			continue
		}
		states = append(states, neural.EncodeState(sim, p))
		actions = append(actions, a)
	}

	values, err := s.evaluate(states)
	if err != nil {
		log.Warn().Err(err).Msg("value inference failed, falling back to medium")
		return s.HeuristicStrategy.ProposeAction(gs, p)
	}
	best := 0
	for i, v := range values {
		if v > values[best] {
			best = i
		}
	}
	return actions[best]
}

// evaluate runs the value model on a batch of encoded states, returning one
// score per state.
func (s *GonnxStrategy) evaluate(states [][]float32) ([]float32, error) {
	batch, err := neural.NewBatch(states)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	outputs, err := s.value.Run(gonnx.Tensors{valueInput: batch})
	s.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("value run error: %w", err)
	}

	out, ok := outputs[valueOutput]
	if !ok {
		// Try first output key if name doesn't match.
		for _, v := range outputs {
			out = v
			break
		}
	}
	if out == nil {
		return nil, errors.New("no output tensor from value model")
	}
	values, err := neural.Float32s(out)
	if err != nil {
		return nil, err
	}
	if len(values) < len(states) {
		return nil, fmt.Errorf("value output too short: %d for %d states", len(values), len(states))
	}
	return values[:len(states)], nil
}
