package catan

import (
	"errors"
	"fmt"
)

// Failure categories. Every failed operation leaves the game unchanged.
var (
	ErrIllegalPlacement      = errors.New("illegal placement")
	ErrInsufficientResources = errors.New("insufficient resources")
	ErrOutOfPieces           = errors.New("out of pieces")
	ErrBankDepleted          = errors.New("bank depleted")
	ErrNoCardsAvailable      = errors.New("no development cards available")
	ErrInvalidCardPlay       = errors.New("invalid card play")
	ErrInvalidTrade          = errors.New("invalid trade")
	ErrWrongPhase            = errors.New("action not allowed in this phase")
)

// ActionError describes why an action was rejected.
type ActionError struct {
	Action string
	Player PlayerID
	Err    error
	Detail string
}

func (e *ActionError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s by player %d: %v", e.Action, e.Player, e.Err)
	}
	return fmt.Sprintf("%s by player %d: %v: %s", e.Action, e.Player, e.Err, e.Detail)
}

func (e *ActionError) Unwrap() error { return e.Err }

func actionErr(action string, p PlayerID, err error, format string, args ...any) error {
	return &ActionError{Action: action, Player: p, Err: err, Detail: fmt.Sprintf(format, args...)}
}
