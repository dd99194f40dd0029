package catan

// pay moves cost from p's hand to the bank, unless free.
func (gs *GameState) pay(action string, p PlayerID, cost Resources, free bool) error {
	if free {
		return nil
	}
	pl := &gs.Players[p]
	if !pl.Resources.Covers(cost) {
		return actionErr(action, p, ErrInsufficientResources, "need %s, have %s", cost, pl.Resources)
	}
	pl.Resources = pl.Resources.Sub(cost)
	_ = gs.Bank.DepositAll(cost)
	return nil
}

// BuildSettlement places a settlement on v. With free set no cards are paid.
// On failure the state is unchanged.
func (gs *GameState) BuildSettlement(p PlayerID, v VertexID, free bool) error {
	if err := gs.CheckSettlement(p, v, false); err != nil {
		return err
	}
	return gs.placeSettlement(p, v, free)
}

func (gs *GameState) placeSettlement(p PlayerID, v VertexID, free bool) error {
	const action = "build settlement"
	pl := &gs.Players[p]
	if pl.SettlementsLeft == 0 {
		return actionErr(action, p, ErrOutOfPieces, "no settlements left")
	}
	if err := gs.pay(action, p, SettlementCost, free); err != nil {
		return err
	}

	gs.Board.Buildings[v] = Building{Kind: Settlement, Owner: p}
	pl.Settlements = append(pl.Settlements, v)
	pl.SettlementsLeft--
	if k := gs.Board.Topo.PortAt(v); k != PortNone && !pl.HasPort(k) {
		pl.Ports = append(pl.Ports, k)
	}
	gs.emit(EventBuild, p, "%s builds a settlement at %d", pl.Name, v)
	gs.UpdateLongestRoad()
	return nil
}

// BuildCity upgrades p's settlement on v. The settlement piece returns to the
// player's supply.
func (gs *GameState) BuildCity(p PlayerID, v VertexID, free bool) error {
	const action = "build city"
	if err := gs.CheckCity(p, v); err != nil {
		return err
	}
	pl := &gs.Players[p]
	if pl.CitiesLeft == 0 {
		return actionErr(action, p, ErrOutOfPieces, "no cities left")
	}
	if err := gs.pay(action, p, CityCost, free); err != nil {
		return err
	}

	gs.Board.Buildings[v] = Building{Kind: City, Owner: p}
	pl.Settlements = removeVertex(pl.Settlements, v)
	pl.Cities = append(pl.Cities, v)
	pl.SettlementsLeft++
	pl.CitiesLeft--
	gs.emit(EventBuild, p, "%s builds a city at %d", pl.Name, v)
	return nil
}

// BuildRoad places a road on e, then recomputes road lengths and the longest
// road holder.
func (gs *GameState) BuildRoad(p PlayerID, e EdgeID, free bool) error {
	if err := gs.CheckRoad(p, e); err != nil {
		return err
	}
	return gs.placeRoad(p, e, free)
}

func (gs *GameState) placeRoad(p PlayerID, e EdgeID, free bool) error {
	const action = "build road"
	pl := &gs.Players[p]
	if pl.RoadsLeft == 0 {
		return actionErr(action, p, ErrOutOfPieces, "no roads left")
	}
	if err := gs.pay(action, p, RoadCost, free); err != nil {
		return err
	}

	gs.Board.Roads[e] = p
	pl.Roads = append(pl.Roads, e)
	pl.RoadsLeft--
	edge := gs.Board.Topo.Edges[e]
	gs.emit(EventBuild, p, "%s builds a road %d-%d", pl.Name, edge.A, edge.B)
	gs.UpdateLongestRoad()
	return nil
}
