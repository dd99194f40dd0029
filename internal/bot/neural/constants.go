package neural

import "github.com/freeeve/settlers/pkg/catan"

// NumSeats is the number of seat slots in the encoding. Three-player games
// leave the last slot zeroed.
const NumSeats = catan.MaxPlayers

// TileFeatures is the number of features per hex: a terrain one-hot over the
// five resources plus desert, and the production number scaled to [0, 1].
const TileFeatures = catan.NumResources + 2

// Feature offsets into the flat state vector. Seat-indexed blocks are
// rotated so slot 0 is always the player being encoded for.
const (
	FeatVertices  = 0                                       // [54] +1/+2 own settlement/city, -1/-2 opponent
	FeatEdges     = FeatVertices + catan.VertexCount        // [72] +1 own road, -1 opponent road
	FeatPoints    = FeatEdges + catan.EdgeCount             // [4] visible victory points / target
	FeatCards     = FeatPoints + NumSeats                   // [4] resource cards held / 20
	FeatHand      = FeatCards + NumSeats                    // [5] own hand per resource / BankStart
	FeatTiles     = FeatHand + catan.NumResources           // [19*7] terrain one-hot + number
	FeatRobber    = FeatTiles + catan.HexCount*TileFeatures // [19] robber one-hot
	FeatDevCards  = FeatRobber + catan.HexCount             // [5] own playable development cards
	FeatBonuses   = FeatDevCards + catan.NumDevCardKinds    // [2] own longest road, largest army
	StateSize     = FeatBonuses + 2
	cardScale     = 20
	devCardsScale = 5
)

// ActionType is the coarse category of a valid action, matching the action
// space used for training.
type ActionType int

const (
	BuildSettlement ActionType = iota
	BuildCity
	BuildRoad
	DrawDevCard
	PlayDevCard
	TradeBank
)

var actionTypeNames = [...]string{
	"BUILD_SETTLEMENT", "BUILD_CITY", "BUILD_ROAD", "DRAW_DEV_CARD", "PLAY_DEV_CARD", "TRADE_BANK",
}

func (t ActionType) String() string {
	if t < 0 || int(t) >= len(actionTypeNames) {
		return "UNKNOWN"
	}
	return actionTypeNames[t]
}

// TypeOf maps an engine action to its training category. EndTurn and player
// trades have no category and return -1.
func TypeOf(a catan.Action) ActionType {
	switch a.Kind {
	case catan.ActBuildSettlement:
		return BuildSettlement
	case catan.ActBuildCity:
		return BuildCity
	case catan.ActBuildRoad:
		return BuildRoad
	case catan.ActDrawDevCard:
		return DrawDevCard
	case catan.ActPlayKnight, catan.ActPlayRoadBuilder, catan.ActPlayYearOfPlenty, catan.ActPlayMonopoly:
		return PlayDevCard
	case catan.ActTradeBank:
		return TradeBank
	default:
		return -1
	}
}
