package catan

// RandomVictim asks MoveRobber to pick uniformly among eligible victims.
const RandomVictim PlayerID = -2

// Theft records a card taken by the robber.
type Theft struct {
	Victim   PlayerID
	Resource Resource
}

// RobberSpots returns every hex the robber may move to: all but its current
// one.
func (gs *GameState) RobberSpots() []HexID {
	cur := gs.Board.RobberHex()
	out := make([]HexID, 0, HexCount-1)
	for i := range gs.Board.Tiles {
		if HexID(i) != cur {
			out = append(out, HexID(i))
		}
	}
	return out
}

// StealCandidates returns the opponents of p with a building on h and at
// least one resource card.
func (gs *GameState) StealCandidates(p PlayerID, h HexID) []PlayerID {
	var out []PlayerID
	for _, o := range gs.Board.OwnersAround(h) {
		if o != p && gs.Players[o].Resources.Total() > 0 {
			out = append(out, o)
		}
	}
	return out
}

// CheckRobberMove returns nil if p may move the robber to h and rob victim.
// victim may be NoPlayer (no theft) or RandomVictim.
func (gs *GameState) CheckRobberMove(p PlayerID, h HexID, victim PlayerID) error {
	const action = "move robber"
	if !gs.Board.Topo.ValidHex(h) {
		return actionErr(action, p, ErrIllegalPlacement, "no hex %d", h)
	}
	if gs.Board.Tiles[h].Robber {
		return actionErr(action, p, ErrIllegalPlacement, "robber is already on hex %d", h)
	}
	if victim == NoPlayer || victim == RandomVictim {
		return nil
	}
	for _, c := range gs.StealCandidates(p, h) {
		if c == victim {
			return nil
		}
	}
	return actionErr(action, p, ErrIllegalPlacement, "cannot rob %s at hex %d", gs.name(victim), h)
}

// MoveRobber relocates the robber to h, clearing the old hex, then steals one
// random card from victim. With RandomVictim the victim is drawn from
// StealCandidates; if there is none, nothing is stolen.
func (gs *GameState) MoveRobber(p PlayerID, h HexID, victim PlayerID) (*Theft, error) {
	if err := gs.CheckRobberMove(p, h, victim); err != nil {
		return nil, err
	}
	if old := gs.Board.RobberHex(); old != NoHex {
		gs.Board.Tiles[old].Robber = false
	}
	gs.Board.Tiles[h].Robber = true
	gs.RobberPending = false
	gs.emit(EventRobber, p, "%s moves the robber to hex %d", gs.name(p), h)

	if victim == RandomVictim {
		cands := gs.StealCandidates(p, h)
		if len(cands) == 0 {
			return nil, nil
		}
		victim = cands[gs.rng.Intn(len(cands))]
	}
	if victim == NoPlayer {
		return nil, nil
	}

	r := gs.randomCard(victim)
	gs.Players[victim].Resources[r]--
	gs.Players[p].Resources[r]++
	gs.emit(EventSteal, p, "%s steals a card from %s", gs.name(p), gs.name(victim))
	return &Theft{Victim: victim, Resource: r}, nil
}

// randomCard picks one of p's cards uniformly. p must hold at least one.
func (gs *GameState) randomCard(p PlayerID) Resource {
	hand := gs.Players[p].Resources
	k := gs.rng.Intn(hand.Total())
	for r, c := range hand {
		if k < c {
			return Resource(r)
		}
		k -= c
	}
	return Wood
}
