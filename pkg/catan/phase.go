package catan

// Phase is the stage of the game or of the current turn.
type Phase int

const (
	PhaseSetup Phase = iota // initial placements
	PhaseRoll               // current player has not rolled
	PhaseMain               // rolled; may build, trade, play cards
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseSetup:
		return "setup"
	case PhaseRoll:
		return "roll"
	case PhaseMain:
		return "main"
	case PhaseGameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// RollDice rolls two six-sided dice.
func RollDice(rng Rand) (int, int) {
	return rng.Intn(6) + 1, rng.Intn(6) + 1
}

// Roll rolls for the current player and applies the result.
func (gs *GameState) Roll() (int, Production, error) {
	if gs.Phase != PhaseRoll {
		return 0, Production{}, actionErr("roll", gs.Current, ErrWrongPhase, "phase is %s", gs.Phase)
	}
	d1, d2 := RollDice(gs.rng)
	return d1 + d2, gs.ApplyRoll(d1 + d2), nil
}

// ApplyRoll records a dice total and distributes resources for it. A 7
// produces nothing; discards and the robber are left to the caller.
func (gs *GameState) ApplyRoll(total int) Production {
	gs.LastRoll = total
	if total >= 2 && total <= 12 {
		gs.DiceStats[total]++
	}
	if gs.Phase == PhaseRoll {
		gs.Phase = PhaseMain
	}
	gs.emit(EventRoll, gs.Current, "%s rolls %d", gs.name(gs.Current), total)
	if total == 7 {
		gs.RobberPending = true
	}
	return gs.Produce(total)
}

// EndTurn passes play to the next seat and starts its turn.
func (gs *GameState) EndTurn() error {
	if gs.Phase != PhaseMain {
		return actionErr("end turn", gs.Current, ErrWrongPhase, "phase is %s", gs.Phase)
	}
	if gs.RobberPending {
		return actionErr("end turn", gs.Current, ErrWrongPhase, "move the robber first")
	}
	if gs.CheckGameOver() {
		return nil
	}
	gs.Current = PlayerID((int(gs.Current) + 1) % len(gs.Players))
	gs.Turn++
	gs.Phase = PhaseRoll
	gs.BeginTurn(gs.Current)
	gs.emit(EventTurn, gs.Current, "%s's turn", gs.name(gs.Current))
	return nil
}

// CheckGameOver ends the game if the current player has reached the target.
func (gs *GameState) CheckGameOver() bool {
	if gs.Phase == PhaseGameOver {
		return true
	}
	if gs.Phase == PhaseSetup {
		return false
	}
	pl := &gs.Players[gs.Current]
	if pl.VictoryPoints() < gs.VictoryTarget {
		return false
	}
	gs.Phase = PhaseGameOver
	gs.emit(EventGameOver, pl.ID, "%s wins with %d points", pl.Name, pl.VictoryPoints())
	return true
}

// IsGameOver reports whether someone has won.
func (gs *GameState) IsGameOver() bool {
	return gs.Phase == PhaseGameOver
}

// Winner returns the winning seat, or NoPlayer while the game is running.
func (gs *GameState) Winner() PlayerID {
	if gs.Phase != PhaseGameOver {
		return NoPlayer
	}
	return gs.Current
}
