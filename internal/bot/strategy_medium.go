package bot

import (
	"github.com/freeeve/settlers/pkg/catan"
)

// roadsPerTurn caps how many roads the heuristic bots build in one turn so
// they save cards for settlements.
const roadsPerTurn = 2

// HeuristicStrategy scores placements by expected production and plays
// development cards when they help: knights to free its own tiles, road
// builders toward new settlement spots, year of plenty for missing city or
// settlement cards, and monopoly on the resource opponents hold most.
type HeuristicStrategy struct {
	memo turnMemo
}

func (*HeuristicStrategy) Name() string { return "medium" }

// ChooseSetup takes the best scoring spot and points its road at the best
// spot reachable from it.
func (*HeuristicStrategy) ChooseSetup(gs *catan.GameState, p catan.PlayerID) (catan.VertexID, catan.EdgeID) {
	v := bestSetupVertex(gs, p)
	if v == catan.NoVertex {
		return catan.NoVertex, catan.NoEdge
	}
	roads := gs.SetupRoads(p, v)
	if len(roads) == 0 {
		return v, catan.NoEdge
	}

	// Score roads as if the settlement were already down, so the new
	// settlement's own spot does not count.
	sim := gs.Clone()
	sim.Board.Buildings[v] = catan.Building{Kind: catan.Settlement, Owner: p}
	return v, bestRoad(sim, p, roads)
}

func (s *HeuristicStrategy) ProposeAction(gs *catan.GameState, p catan.PlayerID) catan.Action {
	s.memo.sync(gs, p)
	pl := gs.Player(p)
	hand := pl.Resources

	if a, ok := s.devCardPlay(gs, p); ok {
		return a
	}
	if a, ok := surplusTrade(gs, p); ok {
		return a
	}
	if hand.Covers(catan.SettlementCost) && pl.SettlementsLeft > 0 {
		if spots := gs.PotentialSettlements(p); len(spots) > 0 {
			return catan.BuildSettlement(bestVertex(spots, func(v catan.VertexID) float64 {
				return vertexPips(gs, v)
			}))
		}
	}
	if hand.Covers(catan.CityCost) && pl.CitiesLeft > 0 {
		if spots := gs.PotentialCities(p); len(spots) > 0 {
			return catan.BuildCity(bestVertex(spots, func(v catan.VertexID) float64 {
				return vertexPips(gs, v)
			}))
		}
	}
	if hand.Covers(catan.RoadCost) && pl.RoadsLeft > 0 && s.memo.roads < roadsPerTurn {
		if roads := gs.PotentialRoads(p); len(roads) > 0 {
			s.memo.roads++
			return catan.BuildRoad(bestRoad(gs, p, roads))
		}
	}
	if hand.Covers(catan.DevCardCost) && gs.DevCards.Remaining() > 0 && !s.memo.drew {
		s.memo.drew = true
		if botIntn(3) == 0 {
			return catan.DrawDevCard()
		}
	}
	return catan.EndTurn()
}

// devCardPlay picks a development card to play this turn, if any is worth it.
func (s *HeuristicStrategy) devCardPlay(gs *catan.GameState, p catan.PlayerID) (catan.Action, bool) {
	pl := gs.Player(p)
	if pl.DevCardPlayedThisTurn {
		return catan.Action{}, false
	}
	playable := func(c catan.DevCard) bool { return gs.CanPlay(p, c) == nil }

	if playable(catan.Knight) && (robberBlocksOwn(gs, p) || pl.DevCards[catan.Knight] > 1) {
		h, victim := robberTarget(gs, p)
		return catan.PlayKnight(h, victim), true
	}
	if playable(catan.RoadBuilder) && pl.RoadsLeft > 0 {
		if roads := gs.PotentialRoads(p); len(roads) > 0 {
			e1 := bestRoad(gs, p, roads)
			e2 := catan.NoEdge
			if pl.RoadsLeft > 1 {
				sim := gs.Clone()
				if err := sim.BuildRoad(p, e1, true); err == nil {
					e2 = bestRoad(sim, p, sim.PotentialRoads(p))
				}
			}
			return catan.PlayRoadBuilder(e1, e2), true
		}
	}
	if playable(catan.YearOfPlenty) {
		if needs := neededResources(pl.Resources); len(needs) > 0 {
			r2 := needs[0]
			if len(needs) > 1 {
				r2 = needs[1]
			}
			return catan.PlayYearOfPlenty(needs[0], r2), true
		}
	}
	if playable(catan.Monopoly) {
		var held catan.Resources
		for _, o := range gs.Opponents(p) {
			held = held.Add(gs.Player(o).Resources)
		}
		if r := held.Max(); held[r] > 0 {
			return catan.PlayMonopoly(r), true
		}
	}
	return catan.Action{}, false
}

func (*HeuristicStrategy) ChooseDiscard(gs *catan.GameState, p catan.PlayerID, n int) catan.Resources {
	return discardHighest(gs.Player(p).Resources, n)
}

func (*HeuristicStrategy) ChooseRobberTarget(gs *catan.GameState, p catan.PlayerID) (catan.HexID, catan.PlayerID) {
	return robberTarget(gs, p)
}

func (*HeuristicStrategy) AcceptTrade(gs *catan.GameState, p, _ catan.PlayerID, offer, request catan.Resources) bool {
	return acceptIfUseful(gs, p, offer, request)
}
