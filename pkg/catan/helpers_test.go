package catan

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// fixedTiles lays the standard terrain and numbers out in hex order with the
// desert in the centre.
func fixedTiles() []Tile {
	tiles := make([]Tile, HexCount)
	k := 0
	for i := range tiles {
		if HexID(i) == DesertSlot {
			tiles[i] = Tile{Resource: Desert}
			continue
		}
		tiles[i] = Tile{Resource: StandardTerrain[k], Number: StandardNumbers[k]}
		k++
	}
	return tiles
}

// newTestGame returns a game on the fixed layout, past setup, with player 0
// in the main phase.
func newTestGame(t *testing.T, n int) *GameState {
	t.Helper()
	b, err := NewBoardFromTiles(fixedTiles())
	require.NoError(t, err)
	names := []string{"alice", "bob", "carol", "dave"}[:n]
	gs, err := NewGame(Options{Names: names, Rand: rand.New(rand.NewSource(7)), Board: b})
	require.NoError(t, err)
	gs.Phase = PhaseMain
	return gs
}

// give moves cards from the bank to p.
func give(t *testing.T, gs *GameState, p PlayerID, rs Resources) {
	t.Helper()
	require.NoError(t, gs.Bank.WithdrawAll(rs))
	gs.Players[p].Resources = gs.Players[p].Resources.Add(rs)
}

// put places a building directly, bypassing placement rules.
func put(gs *GameState, p PlayerID, v VertexID, kind BuildingKind) {
	gs.Board.Buildings[v] = Building{Kind: kind, Owner: p}
	pl := &gs.Players[p]
	switch kind {
	case Settlement:
		pl.Settlements = append(pl.Settlements, v)
		pl.SettlementsLeft--
	case City:
		pl.Cities = append(pl.Cities, v)
		pl.CitiesLeft--
	}
}

// lay places roads directly and refreshes the longest road tracker.
func lay(gs *GameState, p PlayerID, edges ...EdgeID) {
	for _, e := range edges {
		gs.Board.Roads[e] = p
		gs.Players[p].Roads = append(gs.Players[p].Roads, e)
		gs.Players[p].RoadsLeft--
	}
	gs.UpdateLongestRoad()
}

// hexOf returns the first hex with resource r.
func hexOf(t *testing.T, gs *GameState, r Resource) HexID {
	t.Helper()
	for i, tile := range gs.Board.Tiles {
		if tile.Resource == r {
			return HexID(i)
		}
	}
	t.Fatalf("no %s hex", r)
	return NoHex
}

func assertConserved(t *testing.T, gs *GameState) {
	t.Helper()
	for r, n := range gs.ResourceTotals() {
		if n != BankStart {
			t.Fatalf("%s total = %d, want %d", Resource(r), n, BankStart)
		}
	}
}
