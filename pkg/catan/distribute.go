package catan

// DiscardLimit is the hand size above which a 7 forces a discard.
const DiscardLimit = 7

// Production reports the outcome of a non-7 roll.
type Production struct {
	Roll     int
	Demand   []Resources // per player, before allocation
	Grants   []Resources // per player, what was received
	Withheld Resources   // demand nobody received because of contention or a dry bank
}

// Demand computes each player's claim on the bank for roll: one card per
// adjacent settlement and two per adjacent city, from every hex with that
// number that does not hold the robber.
func (gs *GameState) Demand(roll int) []Resources {
	demand := make([]Resources, len(gs.Players))
	b := gs.Board
	for _, h := range b.HexesForRoll(roll) {
		tile := b.Tiles[h]
		if tile.Robber {
			continue
		}
		for _, v := range b.Topo.Hexes[h].Vertices {
			bld := b.Buildings[v]
			switch bld.Kind {
			case Settlement:
				demand[bld.Owner][tile.Resource]++
			case City:
				demand[bld.Owner][tile.Resource] += 2
			}
		}
	}
	return demand
}

// Produce distributes resources for a non-7 roll. For each resource
// independently: if the bank covers total demand everyone is paid in full;
// otherwise a sole claimant receives what is left; otherwise nobody receives
// any and the bank is untouched.
func (gs *GameState) Produce(roll int) Production {
	prod := Production{
		Roll:   roll,
		Demand: gs.Demand(roll),
		Grants: make([]Resources, len(gs.Players)),
	}
	if roll == 7 {
		return prod
	}

	for _, r := range AllResources() {
		total := 0
		claimants := 0
		last := NoPlayer
		for i, d := range prod.Demand {
			if d[r] > 0 {
				total += d[r]
				claimants++
				last = PlayerID(i)
			}
		}
		if total == 0 {
			continue
		}

		supply := gs.Bank.Supply(r)
		switch {
		case supply >= total:
			for i, d := range prod.Demand {
				prod.Grants[i][r] = d[r]
			}
		case claimants == 1 && supply > 0:
			prod.Grants[last][r] = supply
			prod.Withheld[r] = total - supply
		default:
			prod.Withheld[r] = total
		}
	}

	for i, g := range prod.Grants {
		if g.Total() == 0 {
			continue
		}
		// Grants never exceed supply, so this cannot fail.
		_ = gs.Bank.WithdrawAll(g)
		gs.Players[i].Resources = gs.Players[i].Resources.Add(g)
		gs.emit(EventProduce, PlayerID(i), "%s collects %s", gs.Players[i].Name, g)
	}
	return prod
}

// DiscardCount returns how many cards p must discard on a 7: half the hand,
// rounded down, when the hand exceeds DiscardLimit.
func (gs *GameState) DiscardCount(p PlayerID) int {
	n := gs.Players[p].Resources.Total()
	if n <= DiscardLimit {
		return 0
	}
	return n / 2
}

// Discard returns the chosen cards to the bank. The hand must be exactly
// DiscardCount cards that p holds.
func (gs *GameState) Discard(p PlayerID, hand Resources) error {
	const action = "discard"
	pl := &gs.Players[p]
	want := gs.DiscardCount(p)
	for _, c := range hand {
		if c < 0 {
			return actionErr(action, p, ErrInsufficientResources, "negative count in %v", hand)
		}
	}
	if hand.Total() != want {
		return actionErr(action, p, ErrInsufficientResources, "must discard %d cards, got %d", want, hand.Total())
	}
	if !pl.Resources.Covers(hand) {
		return actionErr(action, p, ErrInsufficientResources, "cannot discard %s from %s", hand, pl.Resources)
	}
	pl.Resources = pl.Resources.Sub(hand)
	_ = gs.Bank.DepositAll(hand)
	if want > 0 {
		gs.emit(EventDiscard, p, "%s discards %s", pl.Name, hand)
	}
	return nil
}

// AutoDiscardHand picks DiscardCount cards for p, one at a time from whichever
// resource p holds most of.
func (gs *GameState) AutoDiscardHand(p PlayerID) Resources {
	var hand Resources
	left := gs.Players[p].Resources
	for n := gs.DiscardCount(p); n > 0; n-- {
		r := left.Max()
		left[r]--
		hand[r]++
	}
	return hand
}

// AutoDiscard discards AutoDiscardHand for p and returns it.
func (gs *GameState) AutoDiscard(p PlayerID) Resources {
	hand := gs.AutoDiscardHand(p)
	// The hand is built from p's own cards with the required size.
	_ = gs.Discard(p, hand)
	return hand
}
