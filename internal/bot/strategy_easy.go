package bot

import (
	"github.com/freeeve/settlers/internal/bot/neural"
	"github.com/freeeve/settlers/pkg/catan"
)

// endTurnChance is how often RandomStrategy ends its turn while it still has
// legal actions.
const endTurnChance = 0.25

// RandomStrategy picks uniformly among legal moves.
type RandomStrategy struct{}

func (RandomStrategy) Name() string { return "random" }

func (RandomStrategy) ChooseSetup(gs *catan.GameState, p catan.PlayerID) (catan.VertexID, catan.EdgeID) {
	spots := gs.SetupSettlements(p)
	if len(spots) == 0 {
		return catan.NoVertex, catan.NoEdge
	}
	v := pick(spots)
	roads := gs.SetupRoads(p, v)
	if len(roads) == 0 {
		return v, catan.NoEdge
	}
	return v, pick(roads)
}

func (RandomStrategy) ProposeAction(gs *catan.GameState, p catan.PlayerID) catan.Action {
	actions := neural.ValidActions(gs, p)
	if len(actions) == 0 || botFloat64() < endTurnChance {
		return catan.EndTurn()
	}
	return pick(actions)
}

// ChooseDiscard throws away n cards chosen one at a time at random.
func (RandomStrategy) ChooseDiscard(gs *catan.GameState, p catan.PlayerID, n int) catan.Resources {
	hand := gs.Player(p).Resources
	var out catan.Resources
	for ; n > 0 && hand.Total() > 0; n-- {
		k := botIntn(hand.Total())
		for r, c := range hand {
			if k < c {
				hand[r]--
				out[r]++
				break
			}
			k -= c
		}
	}
	return out
}

func (RandomStrategy) ChooseRobberTarget(gs *catan.GameState, p catan.PlayerID) (catan.HexID, catan.PlayerID) {
	h := pick(gs.RobberSpots())
	victims := gs.StealCandidates(p, h)
	if len(victims) == 0 {
		return h, catan.NoPlayer
	}
	return h, pick(victims)
}

func (RandomStrategy) AcceptTrade(gs *catan.GameState, p, _ catan.PlayerID, _, request catan.Resources) bool {
	return gs.Player(p).Resources.Covers(request) && botFloat64() < 0.5
}

// GreedyStrategy builds whatever it can afford as soon as it can, preferring
// cities over settlements over roads, with random targets. It never plays
// development cards.
type GreedyStrategy struct {
	memo turnMemo
}

func (*GreedyStrategy) Name() string { return "easy" }

func (*GreedyStrategy) ChooseSetup(gs *catan.GameState, p catan.PlayerID) (catan.VertexID, catan.EdgeID) {
	v := bestSetupVertex(gs, p)
	if v == catan.NoVertex {
		return catan.NoVertex, catan.NoEdge
	}
	roads := gs.SetupRoads(p, v)
	if len(roads) == 0 {
		return v, catan.NoEdge
	}
	return v, pick(roads)
}

func (s *GreedyStrategy) ProposeAction(gs *catan.GameState, p catan.PlayerID) catan.Action {
	s.memo.sync(gs, p)
	pl := gs.Player(p)
	hand := pl.Resources

	if a, ok := surplusTrade(gs, p); ok {
		return a
	}
	if hand.Covers(catan.CityCost) && pl.CitiesLeft > 0 {
		if spots := gs.PotentialCities(p); len(spots) > 0 {
			return catan.BuildCity(pick(spots))
		}
	}
	if hand.Covers(catan.SettlementCost) && pl.SettlementsLeft > 0 {
		if spots := gs.PotentialSettlements(p); len(spots) > 0 {
			return catan.BuildSettlement(pick(spots))
		}
	}
	if hand.Covers(catan.RoadCost) && pl.RoadsLeft > 0 && s.memo.roads < roadsPerTurn {
		if roads := gs.PotentialRoads(p); len(roads) > 0 {
			s.memo.roads++
			return catan.BuildRoad(pick(roads))
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

func (*GreedyStrategy) ChooseDiscard(gs *catan.GameState, p catan.PlayerID, n int) catan.Resources {
	return discardHighest(gs.Player(p).Resources, n)
}

func (*GreedyStrategy) ChooseRobberTarget(gs *catan.GameState, p catan.PlayerID) (catan.HexID, catan.PlayerID) {
	return robberTarget(gs, p)
}

func (*GreedyStrategy) AcceptTrade(gs *catan.GameState, p, _ catan.PlayerID, offer, request catan.Resources) bool {
	return acceptIfUseful(gs, p, offer, request)
}
