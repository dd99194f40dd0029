package catan

import "fmt"

// EventKind groups engine notifications.
type EventKind string

const (
	EventBuild    EventKind = "build"
	EventProduce  EventKind = "produce"
	EventRoll     EventKind = "roll"
	EventDiscard  EventKind = "discard"
	EventRobber   EventKind = "robber"
	EventSteal    EventKind = "steal"
	EventDevCard  EventKind = "devcard"
	EventBonus    EventKind = "bonus"
	EventTrade    EventKind = "trade"
	EventTurn     EventKind = "turn"
	EventGameOver EventKind = "gameover"
)

// Event is a human-readable description of something that happened.
type Event struct {
	Kind    EventKind
	Player  PlayerID
	Message string
}

// Notifier receives events as they happen.
type Notifier func(Event)

func (gs *GameState) emit(kind EventKind, p PlayerID, format string, args ...any) {
	if gs.notify == nil {
		return
	}
	gs.notify(Event{Kind: kind, Player: p, Message: fmt.Sprintf(format, args...)})
}

func (gs *GameState) name(p PlayerID) string {
	if !gs.validPlayer(p) {
		return "nobody"
	}
	return gs.Players[p].Name
}
