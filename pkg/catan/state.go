package catan

import (
	"errors"
	"fmt"
)

// DefaultVictoryTarget is the score that ends the game.
const DefaultVictoryTarget = 10

// Options configures a new game.
type Options struct {
	Names         []string // 3 or 4 seats, in seat order
	Rand          Rand     // required
	Board         *Board   // nil deals a fresh board from Rand
	VictoryTarget int      // 0 means DefaultVictoryTarget
	Notifier      Notifier // optional event sink
}

// GameState is everything that changes during one game. All engine
// operations take it by pointer and run synchronously; a GameState must not
// be shared between goroutines.
type GameState struct {
	Board    *Board
	Bank     Bank
	DevCards DevCardStack
	Players  []Player

	Current       PlayerID
	Phase         Phase
	Turn          int // completed main-phase turns
	VictoryTarget int

	LastRoll      int
	DiceStats     [13]int // index = roll total
	RobberPending bool    // a 7 was rolled and the robber has not moved yet

	rng    Rand
	notify Notifier
}

// NewGame creates a game in the setup phase with player 0 to act.
func NewGame(opts Options) (*GameState, error) {
	if opts.Rand == nil {
		return nil, errors.New("catan: Options.Rand is required")
	}
	if n := len(opts.Names); n < MinPlayers || n > MaxPlayers {
		return nil, fmt.Errorf("catan: need %d-%d players, got %d", MinPlayers, MaxPlayers, n)
	}
	b := opts.Board
	if b == nil {
		b = NewBoard(opts.Rand)
	}
	target := opts.VictoryTarget
	if target <= 0 {
		target = DefaultVictoryTarget
	}

	gs := &GameState{
		Board:         b,
		Bank:          NewBank(),
		DevCards:      NewDevCardStack(),
		Current:       0,
		Phase:         PhaseSetup,
		VictoryTarget: target,
		rng:           opts.Rand,
		notify:        opts.Notifier,
	}
	for i, name := range opts.Names {
		gs.Players = append(gs.Players, newPlayer(PlayerID(i), name))
	}
	return gs, nil
}

// Clone returns a deep copy of the game state. The clone shares the random
// source and has no notifier.
func (gs *GameState) Clone() *GameState {
	c := *gs
	c.Board = gs.Board.Clone()
	c.Players = make([]Player, len(gs.Players))
	for i := range gs.Players {
		c.Players[i] = gs.Players[i].clone()
	}
	c.notify = nil
	return &c
}

// SetNotifier replaces the event sink.
func (gs *GameState) SetNotifier(n Notifier) {
	gs.notify = n
}

// SetRand replaces the random source.
func (gs *GameState) SetRand(r Rand) {
	gs.rng = r
}

// Player returns the seat with the given id.
func (gs *GameState) Player(id PlayerID) *Player {
	return &gs.Players[id]
}

// NumPlayers returns the seat count.
func (gs *GameState) NumPlayers() int {
	return len(gs.Players)
}

// Opponents returns every seat except p, in seat order.
func (gs *GameState) Opponents(p PlayerID) []PlayerID {
	out := make([]PlayerID, 0, len(gs.Players)-1)
	for i := range gs.Players {
		if PlayerID(i) != p {
			out = append(out, PlayerID(i))
		}
	}
	return out
}

// ResourceTotals returns, per resource, the cards held by players plus the
// bank. Outside of bugs this is always BankStart for every resource.
func (gs *GameState) ResourceTotals() Resources {
	total := gs.Bank.Resources
	for i := range gs.Players {
		total = total.Add(gs.Players[i].Resources)
	}
	return total
}

func (gs *GameState) validPlayer(p PlayerID) bool {
	return p >= 0 && int(p) < len(gs.Players)
}
