package neural

import "github.com/freeeve/settlers/pkg/catan"

// ValidActions enumerates the actions p may take now in the main phase,
// excluding ending the turn and trading with players. Every returned action
// passes the engine's checks; development card plays are expanded over their
// targets (robber hex, road pair, resource choice).
func ValidActions(gs *catan.GameState, p catan.PlayerID) []catan.Action {
	if gs.Phase != catan.PhaseMain || gs.Current != p || gs.RobberPending {
		return nil
	}
	pl := gs.Player(p)
	var out []catan.Action

	if pl.SettlementsLeft > 0 && pl.Resources.Covers(catan.SettlementCost) {
		for _, v := range gs.PotentialSettlements(p) {
			out = append(out, catan.BuildSettlement(v))
		}
	}
	if pl.CitiesLeft > 0 && pl.Resources.Covers(catan.CityCost) {
		for _, v := range gs.PotentialCities(p) {
			out = append(out, catan.BuildCity(v))
		}
	}
	if pl.RoadsLeft > 0 && pl.Resources.Covers(catan.RoadCost) {
		for _, e := range gs.PotentialRoads(p) {
			out = append(out, catan.BuildRoad(e))
		}
	}
	if gs.DevCards.Remaining() > 0 && pl.Resources.Covers(catan.DevCardCost) {
		out = append(out, catan.DrawDevCard())
	}

	out = append(out, devCardPlays(gs, p)...)

	for _, give := range catan.AllResources() {
		if pl.Resources[give] < gs.TradeRatio(p, give) {
			continue
		}
		for _, get := range catan.AllResources() {
			if get != give && gs.Bank.Supply(get) > 0 {
				out = append(out, catan.TradeBank(give, get))
			}
		}
	}
	return out
}

func devCardPlays(gs *catan.GameState, p catan.PlayerID) []catan.Action {
	var out []catan.Action

	if gs.CanPlay(p, catan.Knight) == nil {
		for _, h := range gs.RobberSpots() {
			victims := gs.StealCandidates(p, h)
			if len(victims) == 0 {
				out = append(out, catan.PlayKnight(h, catan.NoPlayer))
			}
			for _, v := range victims {
				out = append(out, catan.PlayKnight(h, v))
			}
		}
	}

	if gs.CanPlay(p, catan.RoadBuilder) == nil && gs.Player(p).RoadsLeft > 0 {
		out = append(out, roadBuilderPairs(gs, p)...)
	}

	if gs.CanPlay(p, catan.YearOfPlenty) == nil {
		rs := catan.AllResources()
		for i, r1 := range rs {
			for _, r2 := range rs[i:] {
				out = append(out, catan.PlayYearOfPlenty(r1, r2))
			}
		}
	}

	if gs.CanPlay(p, catan.Monopoly) == nil {
		for _, r := range catan.AllResources() {
			for _, o := range gs.Opponents(p) {
				if gs.Player(o).Resources[r] > 0 {
					out = append(out, catan.PlayMonopoly(r))
					break
				}
			}
		}
	}
	return out
}

// roadBuilderPairs lists the distinct road pairs p could place with a road
// builder card, each pair once.
func roadBuilderPairs(gs *catan.GameState, p catan.PlayerID) []catan.Action {
	first := gs.PotentialRoads(p)
	if gs.Player(p).RoadsLeft < 2 {
		out := make([]catan.Action, 0, len(first))
		for _, e := range first {
			out = append(out, catan.PlayRoadBuilder(e, catan.NoEdge))
		}
		return out
	}

	type pair struct{ a, b catan.EdgeID }
	seen := make(map[pair]bool)
	var out []catan.Action
	for _, e1 := range first {
		sim := gs.Clone()
		if err := sim.BuildRoad(p, e1, true); err != nil {
			continue
		}
		for _, e2 := range sim.PotentialRoads(p) {
			k := pair{min(e1, e2), max(e1, e2)}
			if seen[k] {
				continue
			}
			seen[k] = true
			out = append(out, catan.PlayRoadBuilder(e1, e2))
		}
	}
	if len(out) == 0 {
		for _, e := range first {
			out = append(out, catan.PlayRoadBuilder(e, catan.NoEdge))
		}
	}
	return out
}
