package catan

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupOrderSnakes(t *testing.T) {
	gs := newTestGame(t, 4)
	assert.Equal(t, []PlayerID{2, 3, 0, 1, 1, 0, 3, 2}, gs.SetupOrder(2))

	gs = newTestGame(t, 3)
	assert.Equal(t, []PlayerID{0, 1, 2, 2, 1, 0}, gs.SetupOrder(0))
}

func TestStartingPlayerInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	seen := map[PlayerID]bool{}
	for i := 0; i < 200; i++ {
		p := StartingPlayer(rng, 4)
		require.True(t, p >= 0 && p < 4, "got %d", p)
		seen[p] = true
	}
	assert.Len(t, seen, 4, "every seat should win a roll-off eventually")
}

func TestSetupSecondSettlementCollects(t *testing.T) {
	gs := newTestGame(t, 3)
	gs.Phase = PhaseSetup
	topo := gs.Board.Topo

	first := topo.Hexes[0].Vertices[0]
	_, err := gs.PlaceSetup(1, first, gs.SetupRoads(1, first)[0])
	require.NoError(t, err)

	// An interior vertex away from the desert touches three producing hexes.
	var second VertexID = NoVertex
	for _, v := range gs.SetupSettlements(1) {
		hexes := topo.HexesOf(v)
		if len(hexes) == 3 && !slices.Contains(hexes, DesertSlot) {
			second = v
			break
		}
	}
	require.NotEqual(t, NoVertex, second)

	var want Resources
	for _, h := range topo.HexesOf(second) {
		want[gs.Board.Tiles[h].Resource]++
	}
	got, err := gs.PlaceSetup(1, second, gs.SetupRoads(1, second)[0])
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, want, gs.Players[1].Resources)
	assert.Equal(t, 3, got.Total())
	assertConserved(t, gs)

	_, err = gs.PlaceSetup(1, topo.Hexes[18].Vertices[3], topo.Hexes[18].Edges[3])
	assert.ErrorIs(t, err, ErrOutOfPieces, "only two setup placements")
}

func TestFinishSetup(t *testing.T) {
	gs := newTestGame(t, 3)
	gs.Phase = PhaseSetup
	_, _, err := gs.Roll()
	require.ErrorIs(t, err, ErrWrongPhase)
	require.ErrorIs(t, gs.Apply(0, EndTurn()), ErrWrongPhase)

	gs.FinishSetup(2)
	assert.Equal(t, PhaseRoll, gs.Phase)
	assert.Equal(t, PlayerID(2), gs.Current)

	_, err = gs.PlaceSetup(2, 0, 0)
	assert.ErrorIs(t, err, ErrWrongPhase)
	assert.ErrorIs(t, gs.Apply(2, BuildRoad(0)), ErrWrongPhase, "roll first")
	assert.ErrorIs(t, gs.Apply(0, EndTurn()), ErrWrongPhase, "not your turn")

	total, _, err := gs.Roll()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, total, 2)
	assert.LessOrEqual(t, total, 12)
	assert.Equal(t, PhaseMain, gs.Phase)
}

func TestGameOverAtTarget(t *testing.T) {
	gs := newTestGame(t, 3)
	gs.Players[0].VictoryCards = 9
	gs.Players[0].DevCards[Knight] = 3
	gs.Players[0].KnightsPlayed = 2
	assert.False(t, gs.CheckGameOver())

	require.NoError(t, gs.Apply(0, PlayKnight(4, NoPlayer)))
	assert.True(t, gs.IsGameOver(), "largest army brings player 0 to 11")
	assert.Equal(t, PlayerID(0), gs.Winner())
	assert.ErrorIs(t, gs.Apply(0, EndTurn()), ErrWrongPhase)
}
