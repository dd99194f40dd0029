package catan

// Bonus thresholds.
const (
	MinLongestRoad = 5
	MinLargestArmy = 3
	BonusPoints    = 2
)

// edgeSet is a bitset over the board's edges.
type edgeSet [(EdgeCount + 63) / 64]uint64

func (s *edgeSet) has(e EdgeID) bool { return s[e/64]&(1<<(uint(e)%64)) != 0 }
func (s *edgeSet) add(e EdgeID)      { s[e/64] |= 1 << (uint(e) % 64) }
func (s *edgeSet) remove(e EdgeID)   { s[e/64] &^= 1 << (uint(e) % 64) }

// LongestTrail returns the length of p's longest trail: the most edges in a
// connected walk over p's roads that never reuses an edge. Vertices may be
// revisited.
func (gs *GameState) LongestTrail(p PlayerID) int {
	pl := &gs.Players[p]
	if len(pl.Roads) == 0 {
		return 0
	}
	topo := gs.Board.Topo
	roads := gs.Board.Roads
	limit := len(pl.Roads)

	best := 0
	var used edgeSet
	var walk func(v VertexID, depth int)
	walk = func(v VertexID, depth int) {
		if depth > best {
			best = depth
		}
		if depth >= limit {
			return
		}
		for _, e := range topo.Vertices[v].Edges {
			if roads[e] != p || used.has(e) {
				continue
			}
			used.add(e)
			walk(topo.Edges[e].Other(v), depth+1)
			used.remove(e)
		}
	}

	var started [VertexCount]bool
	for _, e := range pl.Roads {
		edge := topo.Edges[e]
		for _, v := range [2]VertexID{edge.A, edge.B} {
			if started[v] {
				continue
			}
			started[v] = true
			walk(v, 0)
			if best == limit {
				return best
			}
		}
	}
	return best
}

// UpdateLongestRoad recomputes every player's MaxRoadLength and reassigns the
// longest road bonus: the unique longest trail of at least MinLongestRoad
// holds it, otherwise nobody does. It is idempotent and returns the holder.
func (gs *GameState) UpdateLongestRoad() PlayerID {
	for i := range gs.Players {
		gs.Players[i].MaxRoadLength = gs.LongestTrail(PlayerID(i))
	}
	winner := uniqueLeader(len(gs.Players), MinLongestRoad, func(i int) int {
		return gs.Players[i].MaxRoadLength
	})

	for i := range gs.Players {
		pl := &gs.Players[i]
		holds := PlayerID(i) == winner
		if pl.LongestRoadFlag == holds {
			continue
		}
		pl.LongestRoadFlag = holds
		if holds {
			gs.emit(EventBonus, pl.ID, "%s takes Longest Road (%d)", pl.Name, pl.MaxRoadLength)
		} else {
			gs.emit(EventBonus, pl.ID, "%s loses Longest Road", pl.Name)
		}
	}
	return winner
}

// UpdateLargestArmy reassigns the largest army bonus: the unique strict
// maximum of KnightsPlayed, at least MinLargestArmy, holds it. Idempotent.
func (gs *GameState) UpdateLargestArmy() PlayerID {
	winner := uniqueLeader(len(gs.Players), MinLargestArmy, func(i int) int {
		return gs.Players[i].KnightsPlayed
	})

	for i := range gs.Players {
		pl := &gs.Players[i]
		holds := PlayerID(i) == winner
		if pl.LargestArmyFlag == holds {
			continue
		}
		pl.LargestArmyFlag = holds
		if holds {
			gs.emit(EventBonus, pl.ID, "%s takes Largest Army (%d knights)", pl.Name, pl.KnightsPlayed)
		} else {
			gs.emit(EventBonus, pl.ID, "%s loses Largest Army", pl.Name)
		}
	}
	return winner
}

// uniqueLeader returns the only index whose score is the maximum and at least
// threshold, or NoPlayer.
func uniqueLeader(n, threshold int, score func(int) int) PlayerID {
	leader := NoPlayer
	best := -1
	tied := false
	for i := 0; i < n; i++ {
		s := score(i)
		switch {
		case s > best:
			best, leader, tied = s, PlayerID(i), false
		case s == best:
			tied = true
		}
	}
	if tied || best < threshold {
		return NoPlayer
	}
	return leader
}

// LongestRoadHolder returns the current holder or NoPlayer.
func (gs *GameState) LongestRoadHolder() PlayerID {
	for i := range gs.Players {
		if gs.Players[i].LongestRoadFlag {
			return PlayerID(i)
		}
	}
	return NoPlayer
}

// LargestArmyHolder returns the current holder or NoPlayer.
func (gs *GameState) LargestArmyHolder() PlayerID {
	for i := range gs.Players {
		if gs.Players[i].LargestArmyFlag {
			return PlayerID(i)
		}
	}
	return NoPlayer
}
