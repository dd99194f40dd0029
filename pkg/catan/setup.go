package catan

// StartingPlayer runs the opening roll-off among n seats: everyone rolls two
// dice and those tied for highest roll again until one remains.
func StartingPlayer(rng Rand, n int) PlayerID {
	contenders := make([]PlayerID, n)
	for i := range contenders {
		contenders[i] = PlayerID(i)
	}
	for {
		best := -1
		var top []PlayerID
		for _, p := range contenders {
			d1, d2 := RollDice(rng)
			switch roll := d1 + d2; {
			case roll > best:
				best = roll
				top = []PlayerID{p}
			case roll == best:
				top = append(top, p)
			}
		}
		if len(top) == 1 {
			return top[0]
		}
		contenders = top
	}
}

// SetupOrder returns the snake order of setup placements: every seat from
// start forward, then the same seats in reverse.
func (gs *GameState) SetupOrder(start PlayerID) []PlayerID {
	n := len(gs.Players)
	order := make([]PlayerID, 0, 2*n)
	for i := 0; i < n; i++ {
		order = append(order, PlayerID((int(start)+i)%n))
	}
	for i := n - 1; i >= 0; i-- {
		order = append(order, order[i])
	}
	return order
}

// PlaceSetup places a free settlement on v and a free road on e touching it.
// After a player's second settlement they collect one card per adjacent
// producing hex; the collected cards are returned.
func (gs *GameState) PlaceSetup(p PlayerID, v VertexID, e EdgeID) (Resources, error) {
	const action = "setup placement"
	if gs.Phase != PhaseSetup {
		return Resources{}, actionErr(action, p, ErrWrongPhase, "phase is %s", gs.Phase)
	}
	if !gs.validPlayer(p) {
		return Resources{}, actionErr(action, p, ErrWrongPhase, "no such player")
	}
	pl := &gs.Players[p]
	if len(pl.Settlements) >= 2 {
		return Resources{}, actionErr(action, p, ErrOutOfPieces, "setup placements already made")
	}
	if err := gs.CheckSettlement(p, v, true); err != nil {
		return Resources{}, err
	}
	if err := gs.CheckSetupRoad(p, v, e); err != nil {
		return Resources{}, err
	}

	gs.Current = p
	// Checked above; setup pieces are free and always in supply.
	_ = gs.placeSettlement(p, v, true)
	_ = gs.placeRoad(p, e, true)

	var got Resources
	if len(pl.Settlements) == 2 {
		for _, h := range gs.Board.Topo.HexesOf(v) {
			r := gs.Board.Tiles[h].Resource
			if r.Valid() && gs.Bank.Withdraw(r, 1) == nil {
				got[r]++
			}
		}
		pl.Resources = pl.Resources.Add(got)
		if got.Total() > 0 {
			gs.emit(EventProduce, p, "%s collects %s from the second settlement", pl.Name, got)
		}
	}
	return got, nil
}

// FinishSetup ends the setup phase and starts start's first turn.
func (gs *GameState) FinishSetup(start PlayerID) {
	gs.Phase = PhaseRoll
	gs.Current = start
	gs.BeginTurn(start)
	gs.emit(EventTurn, start, "%s's turn", gs.name(start))
}
