package neural

import "github.com/freeeve/settlers/pkg/catan"

// seatSlot returns the encoding slot of seat q from p's point of view: p is
// slot 0 and the others follow in turn order.
func seatSlot(gs *catan.GameState, p, q catan.PlayerID) int {
	n := gs.NumPlayers()
	return (int(q) - int(p) + n) % n
}

// EncodeState encodes gs from player p's point of view into a flat
// [StateSize] float32 vector. Hidden information (opponents' hands by
// resource, development cards, victory point cards) is not encoded.
func EncodeState(gs *catan.GameState, p catan.PlayerID) []float32 {
	out := make([]float32, StateSize)
	b := gs.Board

	for v, bld := range b.Buildings {
		var val float32
		switch bld.Kind {
		case catan.Settlement:
			val = 1
		case catan.City:
			val = 2
		default:
			continue
		}
		if bld.Owner != p {
			val = -val
		}
		out[FeatVertices+v] = val
	}

	for e, owner := range b.Roads {
		switch {
		case owner == catan.NoPlayer:
		case owner == p:
			out[FeatEdges+e] = 1
		default:
			out[FeatEdges+e] = -1
		}
	}

	target := float32(gs.VictoryTarget)
	for i := range gs.Players {
		pl := &gs.Players[i]
		slot := seatSlot(gs, p, pl.ID)
		out[FeatPoints+slot] = float32(pl.VisibleVictoryPoints()) / target
		out[FeatCards+slot] = float32(pl.Resources.Total()) / cardScale
	}

	own := gs.Player(p)
	for r, c := range own.Resources {
		out[FeatHand+r] = float32(c) / catan.BankStart
	}

	for h, tile := range b.Tiles {
		base := FeatTiles + h*TileFeatures
		out[base+int(tile.Resource)] = 1
		out[base+TileFeatures-1] = float32(tile.Number) / 12
		if tile.Robber {
			out[FeatRobber+h] = 1
		}
	}

	for c, n := range own.DevCards {
		out[FeatDevCards+c] = float32(n) / devCardsScale
	}
	if own.LongestRoadFlag {
		out[FeatBonuses] = 1
	}
	if own.LargestArmyFlag {
		out[FeatBonuses+1] = 1
	}
	return out
}
