package catan

import "slices"

// CheckSettlement returns nil if p may place a settlement on v. Setup
// placements skip the road connection requirement.
func (gs *GameState) CheckSettlement(p PlayerID, v VertexID, setup bool) error {
	const action = "build settlement"
	topo := gs.Board.Topo
	if !topo.ValidVertex(v) {
		return actionErr(action, p, ErrIllegalPlacement, "no vertex %d", v)
	}
	if gs.Board.Occupied(v) {
		return actionErr(action, p, ErrIllegalPlacement, "vertex %d is occupied", v)
	}
	for _, n := range topo.Vertices[v].Neighbors {
		if gs.Board.Occupied(n) {
			return actionErr(action, p, ErrIllegalPlacement, "vertex %d is next to a building at %d", v, n)
		}
	}
	if !setup && !gs.hasRoadAt(p, v) {
		return actionErr(action, p, ErrIllegalPlacement, "vertex %d is not on one of your roads", v)
	}
	return nil
}

// CheckCity returns nil if p may upgrade the settlement on v.
func (gs *GameState) CheckCity(p PlayerID, v VertexID) error {
	const action = "build city"
	if !gs.Board.Topo.ValidVertex(v) {
		return actionErr(action, p, ErrIllegalPlacement, "no vertex %d", v)
	}
	b := gs.Board.Buildings[v]
	if b.Kind != Settlement || b.Owner != p {
		return actionErr(action, p, ErrIllegalPlacement, "vertex %d has no settlement of yours", v)
	}
	return nil
}

// CheckRoad returns nil if p may build a road on e.
func (gs *GameState) CheckRoad(p PlayerID, e EdgeID) error {
	const action = "build road"
	topo := gs.Board.Topo
	if !topo.ValidEdge(e) {
		return actionErr(action, p, ErrIllegalPlacement, "no edge %d", e)
	}
	if gs.Board.Roads[e] != NoPlayer {
		return actionErr(action, p, ErrIllegalPlacement, "edge %d already has a road", e)
	}
	edge := topo.Edges[e]
	for _, v := range [2]VertexID{edge.A, edge.B} {
		if gs.Board.OwnerAt(v) == p || gs.hasRoadAt(p, v) {
			return nil
		}
	}
	return actionErr(action, p, ErrIllegalPlacement, "edge %d does not touch your network", e)
}

// CheckSetupRoad returns nil if p may place a setup road on e next to the
// settlement just placed on v.
func (gs *GameState) CheckSetupRoad(p PlayerID, v VertexID, e EdgeID) error {
	const action = "build road"
	topo := gs.Board.Topo
	if !topo.ValidEdge(e) {
		return actionErr(action, p, ErrIllegalPlacement, "no edge %d", e)
	}
	if gs.Board.Roads[e] != NoPlayer {
		return actionErr(action, p, ErrIllegalPlacement, "edge %d already has a road", e)
	}
	edge := topo.Edges[e]
	if edge.A != v && edge.B != v {
		return actionErr(action, p, ErrIllegalPlacement, "edge %d does not touch vertex %d", e, v)
	}
	return nil
}

// hasRoadAt reports whether p owns a road incident to v.
func (gs *GameState) hasRoadAt(p PlayerID, v VertexID) bool {
	for _, e := range gs.Board.Topo.Vertices[v].Edges {
		if gs.Board.Roads[e] == p {
			return true
		}
	}
	return false
}

// PotentialSettlements returns the vertices where p may build a settlement,
// ignoring cost and piece supply.
func (gs *GameState) PotentialSettlements(p PlayerID) []VertexID {
	var out []VertexID
	for v := range gs.Board.Topo.Vertices {
		if gs.CheckSettlement(p, VertexID(v), false) == nil {
			out = append(out, VertexID(v))
		}
	}
	return out
}

// SetupSettlements returns the vertices open for a setup settlement.
func (gs *GameState) SetupSettlements(p PlayerID) []VertexID {
	var out []VertexID
	for v := range gs.Board.Topo.Vertices {
		if gs.CheckSettlement(p, VertexID(v), true) == nil {
			out = append(out, VertexID(v))
		}
	}
	return out
}

// PotentialCities returns p's settlements, in vertex order.
func (gs *GameState) PotentialCities(p PlayerID) []VertexID {
	var out []VertexID
	for v, b := range gs.Board.Buildings {
		if b.Kind == Settlement && b.Owner == p {
			out = append(out, VertexID(v))
		}
	}
	return out
}

// PotentialRoads returns the edges where p may build a road.
func (gs *GameState) PotentialRoads(p PlayerID) []EdgeID {
	var out []EdgeID
	for e := range gs.Board.Topo.Edges {
		if gs.CheckRoad(p, EdgeID(e)) == nil {
			out = append(out, EdgeID(e))
		}
	}
	return out
}

// SetupRoads returns the unbuilt edges touching the settlement on v.
func (gs *GameState) SetupRoads(p PlayerID, v VertexID) []EdgeID {
	if !gs.Board.Topo.ValidVertex(v) {
		return nil
	}
	var out []EdgeID
	for _, e := range gs.Board.Topo.Vertices[v].Edges {
		if gs.Board.Roads[e] == NoPlayer {
			out = append(out, e)
		}
	}
	slices.Sort(out)
	return out
}
