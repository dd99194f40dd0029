package catan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// drainBank leaves only n cards of r in the bank, parking the rest with
// player p so the card total stays at BankStart.
func drainBank(t *testing.T, gs *GameState, p PlayerID, r Resource, n int) {
	t.Helper()
	give(t, gs, p, cards(r, gs.Bank.Supply(r)-n))
}

func cards(r Resource, n int) Resources {
	var rs Resources
	rs[r] = n
	return rs
}

func TestProduceContestedShortageGivesNobody(t *testing.T) {
	gs := newTestGame(t, 3)
	h := hexOf(t, gs, Ore)
	corners := gs.Board.Topo.Hexes[h].Vertices
	put(gs, 0, corners[0], City)
	put(gs, 0, corners[2], Settlement)
	put(gs, 1, corners[4], City)
	drainBank(t, gs, 2, Ore, 2)
	oreBefore := [3]int{gs.Players[0].Resources[Ore], gs.Players[1].Resources[Ore], gs.Players[2].Resources[Ore]}

	prod := gs.Produce(gs.Board.Tiles[h].Number)

	assert.Equal(t, 3, prod.Demand[0][Ore])
	assert.Equal(t, 2, prod.Demand[1][Ore])
	assert.Equal(t, 0, prod.Grants[0][Ore])
	assert.Equal(t, 0, prod.Grants[1][Ore])
	assert.Equal(t, 5, prod.Withheld[Ore])
	assert.Equal(t, 2, gs.Bank.Supply(Ore), "bank untouched")
	for i, n := range oreBefore {
		assert.Equal(t, n, gs.Players[i].Resources[Ore])
	}
	assertConserved(t, gs)
}

func TestProduceSoleClaimantTakesRemainder(t *testing.T) {
	gs := newTestGame(t, 3)
	h := hexOf(t, gs, Ore)
	corners := gs.Board.Topo.Hexes[h].Vertices
	put(gs, 0, corners[0], City)
	put(gs, 0, corners[2], Settlement)
	drainBank(t, gs, 2, Ore, 2)

	prod := gs.Produce(gs.Board.Tiles[h].Number)

	assert.Equal(t, 2, prod.Grants[0][Ore])
	assert.Equal(t, 1, prod.Withheld[Ore])
	assert.Equal(t, 2, gs.Players[0].Resources[Ore])
	assert.Equal(t, 0, gs.Bank.Supply(Ore))
	assertConserved(t, gs)
}

func TestProduceFullSupplyPaysEveryone(t *testing.T) {
	gs := newTestGame(t, 4)
	h := hexOf(t, gs, Wheat)
	corners := gs.Board.Topo.Hexes[h].Vertices
	put(gs, 0, corners[0], Settlement)
	put(gs, 1, corners[2], City)
	put(gs, 3, corners[4], Settlement)

	roll := gs.Board.Tiles[h].Number
	prod := gs.Produce(roll)

	assert.Equal(t, 1, prod.Grants[0][Wheat])
	assert.Equal(t, 2, prod.Grants[1][Wheat])
	assert.Equal(t, 0, prod.Grants[2].Total())
	assert.Equal(t, 1, prod.Grants[3][Wheat])
	assert.Equal(t, Resources{}, prod.Withheld)
	assert.Equal(t, BankStart-4, gs.Bank.Supply(Wheat))
	assertConserved(t, gs)
}

func TestRobberBlocksProduction(t *testing.T) {
	gs := newTestGame(t, 3)
	h := hexOf(t, gs, Sheep)
	put(gs, 0, gs.Board.Topo.Hexes[h].Vertices[1], City)

	_, err := gs.MoveRobber(1, h, NoPlayer)
	require.NoError(t, err)

	prod := gs.Produce(gs.Board.Tiles[h].Number)
	assert.Equal(t, 0, prod.Demand[0][Sheep])
	assert.Equal(t, 0, gs.Players[0].Resources.Total())
	assert.Equal(t, BankStart, gs.Bank.Supply(Sheep))
}

func TestSevenProducesNothing(t *testing.T) {
	gs := newTestGame(t, 3)
	put(gs, 0, gs.Board.Topo.Hexes[0].Vertices[0], City)
	gs.Phase = PhaseRoll
	prod := gs.ApplyRoll(7)
	for _, g := range prod.Grants {
		assert.Equal(t, 0, g.Total())
	}
	assert.True(t, gs.RobberPending)
	assert.Equal(t, PhaseMain, gs.Phase)
	assert.Equal(t, 1, gs.DiceStats[7])

	require.ErrorIs(t, gs.Apply(0, EndTurn()), ErrWrongPhase, "robber must move first")
	_, err := gs.MoveRobber(0, 0, NoPlayer)
	require.NoError(t, err)
	assert.False(t, gs.RobberPending)
	require.NoError(t, gs.Apply(0, EndTurn()))
	assert.Equal(t, PlayerID(1), gs.Current)
}

func TestDiscardCount(t *testing.T) {
	gs := newTestGame(t, 3)
	give(t, gs, 0, Resources{Wood: 7})
	assert.Equal(t, 0, gs.DiscardCount(0), "seven cards are safe")
	give(t, gs, 0, Resources{Ore: 2})
	assert.Equal(t, 4, gs.DiscardCount(0))
	give(t, gs, 0, Resources{Ore: 1})
	assert.Equal(t, 5, gs.DiscardCount(0))
}

func TestAutoDiscardHighestFirst(t *testing.T) {
	gs := newTestGame(t, 3)
	give(t, gs, 1, Resources{Wood: 5, Brick: 3, Ore: 1})

	hand := gs.AutoDiscard(1)

	assert.Equal(t, Resources{Wood: 3, Brick: 1}, hand)
	assert.Equal(t, Resources{Wood: 2, Brick: 2, Ore: 1}, gs.Players[1].Resources)
	assertConserved(t, gs)
}

func TestDiscardRejectsWrongHand(t *testing.T) {
	gs := newTestGame(t, 3)
	give(t, gs, 0, Resources{Wood: 4, Wheat: 4})

	err := gs.Discard(0, Resources{Wood: 3})
	assert.ErrorIs(t, err, ErrInsufficientResources, "too few cards")
	err = gs.Discard(0, Resources{Ore: 4})
	assert.ErrorIs(t, err, ErrInsufficientResources, "cards not held")
	err = gs.Discard(0, Resources{Wood: 5, Wheat: -1})
	assert.ErrorIs(t, err, ErrInsufficientResources, "negative count")
	assert.Equal(t, 8, gs.Players[0].Resources.Total())

	require.NoError(t, gs.Discard(0, Resources{Wood: 2, Wheat: 2}))
	assert.Equal(t, Resources{Wood: 2, Wheat: 2}, gs.Players[0].Resources)
	assertConserved(t, gs)
}
