package catan

import "fmt"

// DevCard is a development card kind.
type DevCard int

const (
	Knight DevCard = iota
	RoadBuilder
	YearOfPlenty
	Monopoly
	VictoryPoint
)

// NumDevCardKinds is the number of development card kinds.
const NumDevCardKinds = 5

var devCardNames = [NumDevCardKinds]string{"knight", "road builder", "year of plenty", "monopoly", "victory point"}

func (c DevCard) String() string {
	if c < 0 || int(c) >= NumDevCardKinds {
		return fmt.Sprintf("devcard(%d)", int(c))
	}
	return devCardNames[c]
}

// DevCardStack is the count of undrawn cards per kind.
type DevCardStack [NumDevCardKinds]int

// NewDevCardStack returns the standard 25-card stack.
func NewDevCardStack() DevCardStack {
	return DevCardStack{Knight: 14, RoadBuilder: 2, YearOfPlenty: 2, Monopoly: 2, VictoryPoint: 5}
}

// Remaining returns the number of undrawn cards.
func (s DevCardStack) Remaining() int {
	n := 0
	for _, c := range s {
		n += c
	}
	return n
}

// draw removes one card chosen uniformly among the remaining cards.
func (s *DevCardStack) draw(rng Rand) (DevCard, bool) {
	n := s.Remaining()
	if n == 0 {
		return 0, false
	}
	k := rng.Intn(n)
	for kind, c := range s {
		if k < c {
			s[kind]--
			return DevCard(kind), true
		}
		k -= c
	}
	return 0, false
}

// DrawDevCard pays DevCardCost and draws a card. Victory point cards score
// at once (hidden); other cards become playable on p's next turn.
func (gs *GameState) DrawDevCard(p PlayerID) (DevCard, error) {
	const action = "draw development card"
	if gs.DevCards.Remaining() == 0 {
		return 0, actionErr(action, p, ErrNoCardsAvailable, "stack is empty")
	}
	pl := &gs.Players[p]
	if !pl.Resources.Covers(DevCardCost) {
		return 0, actionErr(action, p, ErrNoCardsAvailable, "need %s, have %s", DevCardCost, pl.Resources)
	}
	card, _ := gs.DevCards.draw(gs.rng)
	pl.Resources = pl.Resources.Sub(DevCardCost)
	_ = gs.Bank.DepositAll(DevCardCost)

	if card == VictoryPoint {
		pl.VictoryCards++
	} else {
		pl.NewDevCards = append(pl.NewDevCards, card)
	}
	gs.emit(EventDevCard, p, "%s draws a development card", pl.Name)
	return card, nil
}

// BeginTurn makes cards drawn on earlier turns playable and resets the
// one-card-per-turn latch.
func (gs *GameState) BeginTurn(p PlayerID) {
	pl := &gs.Players[p]
	for _, c := range pl.NewDevCards {
		pl.DevCards[c]++
	}
	pl.NewDevCards = pl.NewDevCards[:0]
	pl.DevCardPlayedThisTurn = false
}

// CanPlay returns nil if p may play a card of kind c now.
func (gs *GameState) CanPlay(p PlayerID, c DevCard) error {
	const action = "play development card"
	pl := &gs.Players[p]
	switch {
	case c == VictoryPoint || c < 0 || int(c) >= NumDevCardKinds:
		return actionErr(action, p, ErrInvalidCardPlay, "%s cannot be played", c)
	case pl.DevCardPlayedThisTurn:
		return actionErr(action, p, ErrInvalidCardPlay, "already played a card this turn")
	case pl.DevCards[c] == 0:
		return actionErr(action, p, ErrInvalidCardPlay, "no playable %s", c)
	}
	return nil
}

func (gs *GameState) spend(p PlayerID, c DevCard) {
	pl := &gs.Players[p]
	pl.DevCards[c]--
	pl.DevCardPlayedThisTurn = true
	gs.emit(EventDevCard, p, "%s plays %s", pl.Name, c)
}

// PlayKnight moves the robber to h (stealing from victim as MoveRobber does)
// and re-evaluates largest army.
func (gs *GameState) PlayKnight(p PlayerID, h HexID, victim PlayerID) (*Theft, error) {
	if err := gs.CanPlay(p, Knight); err != nil {
		return nil, err
	}
	if err := gs.CheckRobberMove(p, h, victim); err != nil {
		return nil, err
	}
	gs.spend(p, Knight)
	gs.Players[p].KnightsPlayed++
	theft, _ := gs.MoveRobber(p, h, victim)
	gs.UpdateLargestArmy()
	return theft, nil
}

// PlayRoadBuilder builds up to two free roads. e2 may be NoEdge; it is
// checked as if e1 were already built, so it may extend it. With a single
// road piece left only e1 is built and e2 is ignored. Otherwise either both
// roads are built or neither is.
func (gs *GameState) PlayRoadBuilder(p PlayerID, e1, e2 EdgeID) error {
	const action = "play road builder"
	if err := gs.CanPlay(p, RoadBuilder); err != nil {
		return err
	}
	if gs.Players[p].RoadsLeft == 0 {
		return actionErr(action, p, ErrOutOfPieces, "no roads left")
	}
	if gs.Players[p].RoadsLeft == 1 {
		e2 = NoEdge
	}
	if err := gs.CheckRoad(p, e1); err != nil {
		return err
	}
	if e2 != NoEdge {
		if err := gs.checkRoadAfter(p, e2, e1); err != nil {
			return err
		}
	}

	gs.spend(p, RoadBuilder)
	// Both placements were checked above and are free.
	_ = gs.placeRoad(p, e1, true)
	if e2 != NoEdge {
		_ = gs.placeRoad(p, e2, true)
	}
	return nil
}

// checkRoadAfter checks e as if p had already built a road on prev.
func (gs *GameState) checkRoadAfter(p PlayerID, e, prev EdgeID) error {
	if e == prev {
		return actionErr("build road", p, ErrIllegalPlacement, "edge %d chosen twice", e)
	}
	err := gs.CheckRoad(p, e)
	if err == nil || !gs.Board.Topo.ValidEdge(e) || gs.Board.Roads[e] != NoPlayer {
		return err
	}
	a, b := gs.Board.Topo.Edges[e], gs.Board.Topo.Edges[prev]
	if a.A == b.A || a.A == b.B || a.B == b.A || a.B == b.B {
		return nil
	}
	return err
}

// PlayYearOfPlenty takes r1 and r2 from the bank. A resource the bank has run
// out of is skipped. It returns what was received.
func (gs *GameState) PlayYearOfPlenty(p PlayerID, r1, r2 Resource) (Resources, error) {
	const action = "play year of plenty"
	if err := gs.CanPlay(p, YearOfPlenty); err != nil {
		return Resources{}, err
	}
	if !r1.Valid() || !r2.Valid() {
		return Resources{}, actionErr(action, p, ErrInvalidCardPlay, "invalid resources %v, %v", r1, r2)
	}
	gs.spend(p, YearOfPlenty)

	var got Resources
	for _, r := range [2]Resource{r1, r2} {
		if gs.Bank.Withdraw(r, 1) == nil {
			got[r]++
		}
	}
	pl := &gs.Players[p]
	pl.Resources = pl.Resources.Add(got)
	gs.emit(EventDevCard, p, "%s takes %s from the bank", pl.Name, got)
	return got, nil
}

// PlayMonopoly moves every opponent's cards of r to p. The bank is not
// involved. Playing it when no opponent holds r is rejected.
func (gs *GameState) PlayMonopoly(p PlayerID, r Resource) (int, error) {
	const action = "play monopoly"
	if err := gs.CanPlay(p, Monopoly); err != nil {
		return 0, err
	}
	if !r.Valid() {
		return 0, actionErr(action, p, ErrInvalidCardPlay, "invalid resource %v", r)
	}
	held := 0
	for _, o := range gs.Opponents(p) {
		held += gs.Players[o].Resources[r]
	}
	if held == 0 {
		return 0, actionErr(action, p, ErrInvalidCardPlay, "no opponent holds %s", r)
	}
	gs.spend(p, Monopoly)

	for _, o := range gs.Opponents(p) {
		gs.Players[o].Resources[r] = 0
	}
	gs.Players[p].Resources[r] += held
	gs.emit(EventDevCard, p, "%s takes %d %s by monopoly", gs.Players[p].Name, held, r)
	return held, nil
}
