package catan

// TradeRatio returns how many cards of r p must give the bank for one card:
// 2 with a matching harbour, 3 with a generic one, else 4.
func (gs *GameState) TradeRatio(p PlayerID, r Resource) int {
	pl := &gs.Players[p]
	switch {
	case pl.HasPort(PortFor(r)):
		return 2
	case pl.HasPort(PortGeneric):
		return 3
	default:
		return 4
	}
}

// TradeWithBank exchanges TradeRatio cards of give for one card of get.
func (gs *GameState) TradeWithBank(p PlayerID, give, get Resource) error {
	const action = "trade with bank"
	if !give.Valid() || !get.Valid() || give == get {
		return actionErr(action, p, ErrInvalidTrade, "cannot trade %s for %s", give, get)
	}
	ratio := gs.TradeRatio(p, give)
	pl := &gs.Players[p]
	if pl.Resources[give] < ratio {
		return actionErr(action, p, ErrInsufficientResources, "need %d %s, have %d", ratio, give, pl.Resources[give])
	}
	if err := gs.Bank.Withdraw(get, 1); err != nil {
		return &ActionError{Action: action, Player: p, Err: ErrBankDepleted, Detail: err.Error()}
	}
	pl.Resources[give] -= ratio
	pl.Resources[get]++
	_ = gs.Bank.Deposit(give, ratio)
	gs.emit(EventTrade, p, "%s trades %d %s for 1 %s with the bank", pl.Name, ratio, give, get)
	return nil
}

// TradeWithPlayer swaps offer from a for request from b. Both sides must
// hold their cards; consent is the caller's concern.
func (gs *GameState) TradeWithPlayer(a, b PlayerID, offer, request Resources) error {
	const action = "trade with player"
	if a == b || !gs.validPlayer(b) {
		return actionErr(action, a, ErrInvalidTrade, "invalid partner %d", b)
	}
	for r := range offer {
		if offer[r] < 0 || request[r] < 0 || (offer[r] > 0 && request[r] > 0) {
			return actionErr(action, a, ErrInvalidTrade, "offer %s for %s", offer, request)
		}
	}
	if offer.Total() == 0 || request.Total() == 0 {
		return actionErr(action, a, ErrInvalidTrade, "trade must move cards both ways")
	}
	pa, pb := &gs.Players[a], &gs.Players[b]
	if !pa.Resources.Covers(offer) {
		return actionErr(action, a, ErrInsufficientResources, "%s lacks %s", pa.Name, offer)
	}
	if !pb.Resources.Covers(request) {
		return actionErr(action, a, ErrInsufficientResources, "%s lacks %s", pb.Name, request)
	}
	pa.Resources = pa.Resources.Sub(offer).Add(request)
	pb.Resources = pb.Resources.Sub(request).Add(offer)
	gs.emit(EventTrade, a, "%s gives %s to %s for %s", pa.Name, offer, pb.Name, request)
	return nil
}
