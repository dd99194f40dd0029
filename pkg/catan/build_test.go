package catan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistanceRuleAppliesToAllPlayers(t *testing.T) {
	gs := newTestGame(t, 3)
	topo := gs.Board.Topo
	v := topo.Hexes[0].Vertices[0]
	put(gs, 0, v, Settlement)

	for _, n := range topo.Vertices[v].Neighbors {
		for _, p := range []PlayerID{0, 1} {
			err := gs.CheckSettlement(p, n, true)
			assert.ErrorIs(t, err, ErrIllegalPlacement, "player %d at %d", p, n)
		}
	}
	assert.ErrorIs(t, gs.CheckSettlement(1, v, true), ErrIllegalPlacement)
	assert.NotContains(t, gs.SetupSettlements(1), v)
}

func TestSettlementNeedsRoadAfterSetup(t *testing.T) {
	gs := newTestGame(t, 3)
	topo := gs.Board.Topo
	home := topo.Hexes[4].Vertices[0]
	put(gs, 0, home, Settlement)
	give(t, gs, 0, SettlementCost)

	// Two steps out along a road.
	e1 := topo.Vertices[home].Edges[0]
	mid := topo.Edges[e1].Other(home)
	var e2 EdgeID = NoEdge
	var far VertexID
	for i, n := range topo.Vertices[mid].Neighbors {
		if n != home {
			e2, far = topo.Vertices[mid].Edges[i], n
			break
		}
	}
	require.NotEqual(t, NoEdge, e2)

	err := gs.BuildSettlement(0, far, false)
	require.ErrorIs(t, err, ErrIllegalPlacement)

	lay(gs, 0, e1, e2)
	assert.Contains(t, gs.PotentialSettlements(0), far)
	assert.NotContains(t, gs.PotentialSettlements(0), mid, "mid is next to home")
	require.NoError(t, gs.BuildSettlement(0, far, false))
	assert.Equal(t, Resources{}, gs.Players[0].Resources)
	assert.Equal(t, MaxSettlements-2, gs.Players[0].SettlementsLeft)
	assert.Equal(t, Settlement, gs.Board.Buildings[far].Kind)
}

func TestBuildFailureLeavesStateUnchanged(t *testing.T) {
	gs := newTestGame(t, 3)
	topo := gs.Board.Topo
	home := topo.Hexes[4].Vertices[0]
	put(gs, 0, home, Settlement)
	give(t, gs, 0, Resources{Wood: 1})

	before := gs.Clone()
	err := gs.BuildRoad(0, topo.Vertices[home].Edges[0], false)
	require.ErrorIs(t, err, ErrInsufficientResources)
	assert.Equal(t, before.Players, gs.Players)
	assert.Equal(t, before.Bank, gs.Bank)
	assert.Equal(t, before.Board.Roads, gs.Board.Roads)

	var ae *ActionError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, PlayerID(0), ae.Player)
}

func TestOutOfPiecesIndependentOfResources(t *testing.T) {
	gs := newTestGame(t, 3)
	topo := gs.Board.Topo
	home := topo.Hexes[4].Vertices[0]
	put(gs, 0, home, Settlement)
	gs.Players[0].RoadsLeft = 0

	// No cards at all: the piece check still comes first.
	err := gs.BuildRoad(0, topo.Vertices[home].Edges[0], false)
	assert.ErrorIs(t, err, ErrOutOfPieces)
	err = gs.BuildRoad(0, topo.Vertices[home].Edges[0], true)
	assert.ErrorIs(t, err, ErrOutOfPieces)

	gs.Players[0].CitiesLeft = 0
	assert.ErrorIs(t, gs.BuildCity(0, home, true), ErrOutOfPieces)
}

func TestBuildCity(t *testing.T) {
	gs := newTestGame(t, 3)
	topo := gs.Board.Topo
	v := topo.Hexes[4].Vertices[0]

	assert.ErrorIs(t, gs.BuildCity(0, v, true), ErrIllegalPlacement, "no settlement yet")

	put(gs, 1, v, Settlement)
	assert.ErrorIs(t, gs.BuildCity(0, v, true), ErrIllegalPlacement, "someone else's settlement")
	assert.Empty(t, gs.PotentialCities(0))
	assert.Equal(t, []VertexID{v}, gs.PotentialCities(1))

	give(t, gs, 1, CityCost)
	require.NoError(t, gs.BuildCity(1, v, false))
	pl := gs.Players[1]
	assert.Equal(t, City, gs.Board.Buildings[v].Kind)
	assert.Empty(t, pl.Settlements)
	assert.Equal(t, []VertexID{v}, pl.Cities)
	assert.Equal(t, MaxSettlements, pl.SettlementsLeft, "settlement piece returns")
	assert.Equal(t, MaxCities-1, pl.CitiesLeft)
	assert.Equal(t, 2, pl.VisibleVictoryPoints())
	assertConserved(t, gs)
}

func TestRoadConnectivity(t *testing.T) {
	gs := newTestGame(t, 3)
	topo := gs.Board.Topo
	home := topo.Hexes[4].Vertices[0]
	put(gs, 0, home, Settlement)

	roads := gs.PotentialRoads(0)
	assert.ElementsMatch(t, topo.Vertices[home].Edges, roads)

	far := topo.Hexes[16].Edges[3]
	assert.ErrorIs(t, gs.CheckRoad(0, far), ErrIllegalPlacement)

	lay(gs, 0, roads[0])
	assert.ErrorIs(t, gs.CheckRoad(1, roads[0]), ErrIllegalPlacement, "edge is taken")

	next := topo.Edges[roads[0]].Other(home)
	for _, e := range topo.Vertices[next].Edges {
		if e != roads[0] {
			assert.NoError(t, gs.CheckRoad(0, e), "road extends the network")
		}
	}
}

func TestSetupRoadMustTouchNewSettlement(t *testing.T) {
	gs := newTestGame(t, 3)
	gs.Phase = PhaseSetup
	topo := gs.Board.Topo
	v := topo.Hexes[4].Vertices[0]

	roads := gs.SetupRoads(0, v)
	assert.ElementsMatch(t, topo.Vertices[v].Edges, roads)

	other := topo.Hexes[16].Edges[0]
	_, err := gs.PlaceSetup(0, v, other)
	require.ErrorIs(t, err, ErrIllegalPlacement)
	assert.False(t, gs.Board.Occupied(v), "failed placement leaves the board unchanged")

	_, err = gs.PlaceSetup(0, v, roads[0])
	require.NoError(t, err)
	assert.Equal(t, 1, gs.Players[0].VisibleVictoryPoints())
	assert.Equal(t, Resources{}, gs.Players[0].Resources, "first placement collects nothing")
}

func TestSettlementGrantsPort(t *testing.T) {
	gs := newTestGame(t, 3)
	port := gs.Board.Topo.Ports[1]
	gs.Phase = PhaseSetup
	v := port.Vertices[0]
	_, err := gs.PlaceSetup(0, v, gs.SetupRoads(0, v)[0])
	require.NoError(t, err)
	assert.True(t, gs.Players[0].HasPort(port.Kind))
}

func TestBuildPaysBank(t *testing.T) {
	gs := newTestGame(t, 4)
	topo := gs.Board.Topo
	home := topo.Hexes[4].Vertices[0]
	put(gs, 2, home, Settlement)
	give(t, gs, 2, RoadCost.Add(RoadCost))
	assertConserved(t, gs)

	gs.Current = 2
	e := topo.Vertices[home].Edges[0]
	require.NoError(t, gs.Apply(2, BuildRoad(e)))
	assert.Equal(t, RoadCost, gs.Players[2].Resources)
	assert.Equal(t, BankStart-1, gs.Bank.Supply(Wood))
	assertConserved(t, gs)
}
