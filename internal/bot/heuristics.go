package bot

import "github.com/freeeve/settlers/pkg/catan"

// pips is the number of ways to roll each production number with two dice.
var pips = [13]float64{0, 0, 1, 2, 3, 4, 5, 0, 5, 4, 3, 2, 1}

// Setup scoring weights: every distinct terrain at a vertex and every
// resource the player does not produce yet earn a bonus on top of the pips.
const (
	diversityBonus   = 2.0
	newResourceBonus = 2.5
)

// surplusThreshold is the hand count of one resource at which bots trade the
// excess with the bank.
const surplusThreshold = 6

// vertexPips sums the expected production of the hexes around v.
func vertexPips(gs *catan.GameState, v catan.VertexID) float64 {
	total := 0.0
	for _, h := range gs.Board.Topo.HexesOf(v) {
		total += pips[gs.Board.Tiles[h].Number]
	}
	return total
}

// producedBy returns the resources p's buildings already touch.
func producedBy(gs *catan.GameState, p catan.PlayerID) [catan.NumResources]bool {
	var out [catan.NumResources]bool
	for _, v := range gs.Player(p).Buildings() {
		for _, h := range gs.Board.Topo.HexesOf(v) {
			if r := gs.Board.Tiles[h].Resource; r.Valid() {
				out[r] = true
			}
		}
	}
	return out
}

// setupScore values a settlement spot by pips, terrain diversity, and new
// resources for p.
func setupScore(gs *catan.GameState, p catan.PlayerID, v catan.VertexID, have [catan.NumResources]bool) float64 {
	score := vertexPips(gs, v)
	var seen [catan.NumResources + 1]bool
	for _, h := range gs.Board.Topo.HexesOf(v) {
		r := gs.Board.Tiles[h].Resource
		if seen[r] {
			continue
		}
		seen[r] = true
		score += diversityBonus
		if r.Valid() && !have[r] {
			score += newResourceBonus
		}
	}
	return score
}

// bestVertex returns the highest scoring vertex of spots, or NoVertex. Ties
// go to the earliest.
func bestVertex(spots []catan.VertexID, score func(catan.VertexID) float64) catan.VertexID {
	best := catan.NoVertex
	bestScore := 0.0
	for _, v := range spots {
		if s := score(v); best == catan.NoVertex || s > bestScore {
			best, bestScore = v, s
		}
	}
	return best
}

// bestSetupVertex picks p's setup settlement by setupScore.
func bestSetupVertex(gs *catan.GameState, p catan.PlayerID) catan.VertexID {
	have := producedBy(gs, p)
	return bestVertex(gs.SetupSettlements(p), func(v catan.VertexID) float64 {
		return setupScore(gs, p, v, have)
	})
}

// roadScore values a road by the best settlement spot it opens up: the far
// end itself or one step beyond it.
func roadScore(gs *catan.GameState, p catan.PlayerID, e catan.EdgeID) float64 {
	topo := gs.Board.Topo
	edge := topo.Edges[e]
	best := 0.0
	for _, end := range [2]catan.VertexID{edge.A, edge.B} {
		if gs.Board.OwnerAt(end) == p {
			continue
		}
		candidates := append([]catan.VertexID{end}, topo.Vertices[end].Neighbors...)
		for i, v := range candidates {
			if gs.CheckSettlement(p, v, true) != nil {
				continue
			}
			s := vertexPips(gs, v)
			if i > 0 {
				s *= 0.8
			}
			if s > best {
				best = s
			}
		}
	}
	return best
}

// bestRoad returns the highest scoring edge of roads, or NoEdge.
func bestRoad(gs *catan.GameState, p catan.PlayerID, roads []catan.EdgeID) catan.EdgeID {
	best := catan.NoEdge
	bestScore := -1.0
	for _, e := range roads {
		if s := roadScore(gs, p, e); s > bestScore {
			best, bestScore = e, s
		}
	}
	return best
}

// discardHighest removes n cards from hand one at a time, always from the
// resource held most.
func discardHighest(hand catan.Resources, n int) catan.Resources {
	var out catan.Resources
	for ; n > 0 && hand.Total() > 0; n-- {
		r := hand.Max()
		hand[r]--
		out[r]++
	}
	return out
}

// robberTarget scores every legal robber hex by the visible points of the
// opponents around it minus p's own, and robs the strongest opponent there
// who holds cards. Without any robbable opponent it picks a random hex and
// robs nobody.
func robberTarget(gs *catan.GameState, p catan.PlayerID) (catan.HexID, catan.PlayerID) {
	own := gs.Player(p).VisibleVictoryPoints()
	bestHex, bestVictim := catan.NoHex, catan.NoPlayer
	bestScore := 0
	spots := gs.RobberSpots()
	for _, h := range spots {
		score := 0
		victim, victimVP := catan.NoPlayer, 0
		for _, v := range gs.Board.Topo.Hexes[h].Vertices {
			o := gs.Board.OwnerAt(v)
			switch {
			case o == catan.NoPlayer:
			case o == p:
				score -= own
			default:
				vp := gs.Player(o).VisibleVictoryPoints()
				score += vp
				if vp >= victimVP && gs.Player(o).Resources.Total() > 0 {
					victim, victimVP = o, vp
				}
			}
		}
		if victim != catan.NoPlayer && (bestHex == catan.NoHex || score >= bestScore) {
			bestHex, bestVictim, bestScore = h, victim, score
		}
	}
	if bestHex == catan.NoHex {
		return pick(spots), catan.NoPlayer
	}
	return bestHex, bestVictim
}

// robberBlocksOwn reports whether the robber sits on a hex next to one of
// p's buildings.
func robberBlocksOwn(gs *catan.GameState, p catan.PlayerID) bool {
	rh := gs.Board.RobberHex()
	for _, v := range gs.Board.Topo.Hexes[rh].Vertices {
		if gs.Board.OwnerAt(v) == p {
			return true
		}
	}
	return false
}

// neededResources lists, in canonical order, the resources p lacks for a
// city and then for a settlement, without repeats.
func neededResources(hand catan.Resources) []catan.Resource {
	var out []catan.Resource
	var added [catan.NumResources]bool
	add := func(r catan.Resource) {
		if !added[r] {
			added[r] = true
			out = append(out, r)
		}
	}
	if hand[catan.Ore] < catan.CityCost[catan.Ore] {
		add(catan.Ore)
	}
	if hand[catan.Wheat] < catan.CityCost[catan.Wheat] {
		add(catan.Wheat)
	}
	for _, r := range catan.AllResources() {
		if catan.SettlementCost[r] > 0 && hand[r] == 0 {
			add(r)
		}
	}
	return out
}

// surplusTrade finds a bank trade giving a resource held at least
// surplusThreshold times for one p holds none of.
func surplusTrade(gs *catan.GameState, p catan.PlayerID) (catan.Action, bool) {
	hand := gs.Player(p).Resources
	for _, give := range catan.AllResources() {
		if hand[give] < surplusThreshold || hand[give] < gs.TradeRatio(p, give) {
			continue
		}
		for _, get := range catan.AllResources() {
			if hand[get] == 0 && gs.Bank.Supply(get) > 0 {
				return catan.TradeBank(give, get), true
			}
		}
	}
	return catan.Action{}, false
}

// acceptIfUseful accepts a trade when p can pay and the offer brings a
// resource p has none of.
func acceptIfUseful(gs *catan.GameState, p catan.PlayerID, offer, request catan.Resources) bool {
	hand := gs.Player(p).Resources
	if !hand.Covers(request) {
		return false
	}
	for r, n := range offer {
		if n > 0 && hand[r] == 0 {
			return true
		}
	}
	return false
}

// turnMemo tracks what a strategy already did this turn.
type turnMemo struct {
	turn  int
	seat  catan.PlayerID
	roads int
	drew  bool
}

// sync resets the memo when a new turn has started.
func (m *turnMemo) sync(gs *catan.GameState, p catan.PlayerID) {
	if m.turn != gs.Turn || m.seat != p {
		*m = turnMemo{turn: gs.Turn, seat: p}
	}
}
