package catan

import "fmt"

// ActionKind enumerates what a player can do on their turn.
type ActionKind int

const (
	ActEndTurn ActionKind = iota
	ActBuildSettlement
	ActBuildCity
	ActBuildRoad
	ActDrawDevCard
	ActPlayKnight
	ActPlayRoadBuilder
	ActPlayYearOfPlenty
	ActPlayMonopoly
	ActTradeBank
	ActTradePlayer
)

var actionKindNames = [...]string{
	"end_turn", "build_settlement", "build_city", "build_road", "draw_dev_card",
	"play_knight", "play_road_builder", "play_year_of_plenty", "play_monopoly",
	"trade_bank", "trade_player",
}

func (k ActionKind) String() string {
	if k < 0 || int(k) >= len(actionKindNames) {
		return fmt.Sprintf("action(%d)", int(k))
	}
	return actionKindNames[k]
}

// Action is one move proposed by a player. Only the fields used by Kind are
// read.
type Action struct {
	Kind   ActionKind
	Vertex VertexID // settlement, city
	Edge   EdgeID   // road, first road builder road
	Edge2  EdgeID   // second road builder road, or NoEdge
	Hex    HexID    // knight
	Victim PlayerID // knight: NoPlayer, RandomVictim, or a seat

	Give Resource // bank trade, year of plenty (first)
	Get  Resource // bank trade, year of plenty (second), monopoly

	Partner PlayerID // player trade
	Offer   Resources
	Request Resources
}

// Convenience constructors.
func EndTurn() Action                   { return Action{Kind: ActEndTurn} }
func BuildSettlement(v VertexID) Action { return Action{Kind: ActBuildSettlement, Vertex: v} }
func BuildCity(v VertexID) Action       { return Action{Kind: ActBuildCity, Vertex: v} }
func BuildRoad(e EdgeID) Action         { return Action{Kind: ActBuildRoad, Edge: e} }
func DrawDevCard() Action               { return Action{Kind: ActDrawDevCard} }
func PlayKnight(h HexID, victim PlayerID) Action {
	return Action{Kind: ActPlayKnight, Hex: h, Victim: victim}
}
func PlayRoadBuilder(e1, e2 EdgeID) Action {
	return Action{Kind: ActPlayRoadBuilder, Edge: e1, Edge2: e2}
}
func PlayYearOfPlenty(r1, r2 Resource) Action {
	return Action{Kind: ActPlayYearOfPlenty, Give: r1, Get: r2}
}
func PlayMonopoly(r Resource) Action { return Action{Kind: ActPlayMonopoly, Get: r} }
func TradeBank(give, get Resource) Action {
	return Action{Kind: ActTradeBank, Give: give, Get: get}
}
func TradePlayer(partner PlayerID, offer, request Resources) Action {
	return Action{Kind: ActTradePlayer, Partner: partner, Offer: offer, Request: request}
}

func (a Action) String() string {
	switch a.Kind {
	case ActBuildSettlement, ActBuildCity:
		return fmt.Sprintf("%s %d", a.Kind, a.Vertex)
	case ActBuildRoad:
		return fmt.Sprintf("%s %d", a.Kind, a.Edge)
	case ActPlayKnight:
		return fmt.Sprintf("%s hex=%d victim=%d", a.Kind, a.Hex, a.Victim)
	case ActPlayRoadBuilder:
		return fmt.Sprintf("%s %d %d", a.Kind, a.Edge, a.Edge2)
	case ActPlayYearOfPlenty:
		return fmt.Sprintf("%s %s %s", a.Kind, a.Give, a.Get)
	case ActPlayMonopoly:
		return fmt.Sprintf("%s %s", a.Kind, a.Get)
	case ActTradeBank:
		return fmt.Sprintf("%s %s->%s", a.Kind, a.Give, a.Get)
	case ActTradePlayer:
		return fmt.Sprintf("%s with %d: %s for %s", a.Kind, a.Partner, a.Offer, a.Request)
	default:
		return a.Kind.String()
	}
}

// Apply performs a for player p, who must be the current player. Knights may
// be played before rolling; everything else needs the roll first. After a
// successful action the game ends if p has reached the victory target.
func (gs *GameState) Apply(p PlayerID, a Action) error {
	if gs.Phase == PhaseGameOver || gs.Phase == PhaseSetup {
		return actionErr(a.Kind.String(), p, ErrWrongPhase, "phase is %s", gs.Phase)
	}
	if p != gs.Current {
		return actionErr(a.Kind.String(), p, ErrWrongPhase, "not your turn")
	}
	if gs.Phase == PhaseRoll && a.Kind != ActPlayKnight {
		return actionErr(a.Kind.String(), p, ErrWrongPhase, "roll first")
	}
	if gs.RobberPending {
		return actionErr(a.Kind.String(), p, ErrWrongPhase, "move the robber first")
	}

	var err error
	switch a.Kind {
	case ActEndTurn:
		return gs.EndTurn()
	case ActBuildSettlement:
		err = gs.BuildSettlement(p, a.Vertex, false)
	case ActBuildCity:
		err = gs.BuildCity(p, a.Vertex, false)
	case ActBuildRoad:
		err = gs.BuildRoad(p, a.Edge, false)
	case ActDrawDevCard:
		_, err = gs.DrawDevCard(p)
	case ActPlayKnight:
		_, err = gs.PlayKnight(p, a.Hex, a.Victim)
	case ActPlayRoadBuilder:
		err = gs.PlayRoadBuilder(p, a.Edge, a.Edge2)
	case ActPlayYearOfPlenty:
		_, err = gs.PlayYearOfPlenty(p, a.Give, a.Get)
	case ActPlayMonopoly:
		_, err = gs.PlayMonopoly(p, a.Get)
	case ActTradeBank:
		err = gs.TradeWithBank(p, a.Give, a.Get)
	case ActTradePlayer:
		err = gs.TradeWithPlayer(p, a.Partner, a.Offer, a.Request)
	default:
		return actionErr(a.Kind.String(), p, ErrWrongPhase, "unknown action")
	}
	if err != nil {
		return err
	}
	gs.CheckGameOver()
	return nil
}
